package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/analyzer"
	"github.com/docsift/docsift/internal/progress"
	"github.com/docsift/docsift/internal/vectordb"
	"github.com/docsift/docsift/internal/walker"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Rank PDF sections against a persona and job-to-be-done",
	Long: `Extracts paragraphs from every PDF under the input directory, embeds them
with the configured model, ranks them against the persona + job query by
cosine similarity, and writes a JSON report of the top sections with a
per-section best sentence.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("input", "", "input directory of PDFs (overrides config)")
	analyzeCmd.Flags().String("output", "", "report output path (overrides config)")
	analyzeCmd.Flags().String("persona", "", "persona description (overrides config)")
	analyzeCmd.Flags().String("job", "", "job-to-be-done description (overrides config)")
	analyzeCmd.Flags().Int("top-k", 0, "number of top sections to report (overrides config)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Flag overrides.
	if v, _ := cmd.Flags().GetString("input"); v != "" {
		cfg.InputDir = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Output = v
	}
	if v, _ := cmd.Flags().GetString("persona"); v != "" {
		cfg.Persona = v
	}
	if v, _ := cmd.Flags().GetString("job"); v != "" {
		cfg.JobToBeDone = v
	}
	if v, _ := cmd.Flags().GetInt("top-k"); v > 0 {
		cfg.TopK = v
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning for PDFs in %s...\n", cfg.InputDir)
	}

	files, err := walker.Walk(walker.WalkerConfig{
		RootDir: cfg.InputDir,
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	})
	if err != nil {
		return fmt.Errorf("walking input directory: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no PDF files found in %s", cfg.InputDir)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Found %d PDF files\n", len(files))
	}

	extractor, err := createExtractorFromConfig(cfg)
	if err != nil {
		return err
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Embedder: %s (%d dimensions), extractor: %s\n",
			embedder.Name(), embedder.Dimensions(), extractor.Name())
	}

	var store vectordb.Store
	if cfg.IndexDir != "" {
		chromemStore, err := vectordb.NewChromemStore(embedder)
		if err != nil {
			return fmt.Errorf("creating search index: %w", err)
		}
		store = chromemStore
	}

	pipeline := analyzer.NewPipeline(extractor, embedder, store, cfg)

	reporter := progress.NewReporter()
	reporter.Start(len(files))
	pipeline.SetProgressFunc(func(processed, total int, document string) {
		reporter.Update(processed, document)
	})

	result, err := pipeline.Run(ctx, files)
	reporter.Finish()
	if err != nil {
		return err
	}

	if err := result.Report.Write(cfg.Output); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Analysis complete!")
	fmt.Printf("  Documents processed: %d\n", result.DocumentsProcessed)
	fmt.Printf("  Documents skipped:   %d (unreadable)\n", result.DocumentsSkipped)
	fmt.Printf("  Paragraphs ranked:   %d\n", result.ChunksRanked)
	fmt.Printf("  Sections reported:   %d\n", len(result.Report.ExtractedSections))
	fmt.Printf("  Duration:            %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("  Output:              %s\n", cfg.Output)

	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stderr, "\nWarnings (%d):\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "  - %v\n", e)
		}
	}

	// An all-failed batch still writes a report; surface it in the exit code
	// only when nothing at all was readable.
	if result.DocumentsProcessed == 0 {
		return errors.New("no documents could be read")
	}
	return nil
}
