package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/vectordb"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Semantically search previously analyzed chunks",
	Long: `Searches the chunk index persisted by a prior analyze run (index_dir must
be set in the config) and returns the most similar paragraphs.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 10, "maximum number of results")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	queryText := args[0]

	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.IndexDir == "" {
		return fmt.Errorf("index_dir is not configured; set it and re-run `docsift analyze` to build the index")
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	store, err := vectordb.NewChromemStore(embedder)
	if err != nil {
		return fmt.Errorf("creating search index: %w", err)
	}
	if err := store.Load(ctx, cfg.IndexDir); err != nil {
		return fmt.Errorf("loading search index from %s: %w\nRun `docsift analyze` first to build the index", cfg.IndexDir, err)
	}
	if store.Count() == 0 {
		fmt.Println("Search index is empty. Run `docsift analyze` first.")
		return nil
	}

	results, err := store.Search(ctx, queryText, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	if jsonOutput {
		return printSearchResultsJSON(results)
	}
	printSearchResultsTable(results)
	return nil
}

type searchResultJSON struct {
	Rank       int     `json:"rank"`
	Similarity float64 `json:"similarity"`
	Document   string  `json:"document"`
	PageNumber int     `json:"page_number"`
	Text       string  `json:"text"`
}

func printSearchResultsJSON(results []vectordb.SearchResult) error {
	var out []searchResultJSON
	for i, r := range results {
		out = append(out, searchResultJSON{
			Rank:       i + 1,
			Similarity: float64(r.Similarity),
			Document:   r.Document.Metadata.Document,
			PageNumber: r.Document.Metadata.Page,
			Text:       truncate(r.Document.Content, 200),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printSearchResultsTable(results []vectordb.SearchResult) {
	fmt.Printf("Found %d results:\n\n", len(results))
	for i, r := range results {
		fmt.Printf("  %d. [%.1f%%] %s (page %d)\n", i+1, r.Similarity*100,
			r.Document.Metadata.Document, r.Document.Metadata.Page)
		fmt.Printf("     %s\n\n", truncate(r.Document.Content, 120))
	}
}
