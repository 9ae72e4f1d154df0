package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/outline"
	"github.com/docsift/docsift/internal/walker"
)

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Extract heading outlines from PDFs",
	Long: `Scores text spans by relative font size, emphasis, casing and centering to
detect H1/H2/H3 headings, and writes one {title, outline} JSON file per
input PDF.`,
	RunE: runOutline,
}

func init() {
	outlineCmd.Flags().String("input", "", "input directory of PDFs (overrides config)")
	outlineCmd.Flags().String("output-dir", "outlines", "directory for the per-PDF outline JSON files")
	rootCmd.AddCommand(outlineCmd)
}

func runOutline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("input"); v != "" {
		cfg.InputDir = v
	}
	outputDir, _ := cmd.Flags().GetString("output-dir")

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

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	written := 0
	for _, f := range files {
		if verbose {
			fmt.Fprintf(os.Stderr, "Processing %s...\n", f.Name)
		}
		o, err := outline.Extract(f.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", f.Name, err)
			continue
		}

		name := strings.TrimSuffix(f.Name, filepath.Ext(f.Name)) + ".json"
		data, err := json.MarshalIndent(o, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling outline for %s: %w", f.Name, err)
		}
		if err := os.WriteFile(filepath.Join(outputDir, name), data, 0644); err != nil {
			return fmt.Errorf("writing outline for %s: %w", f.Name, err)
		}
		written++
	}

	if written == 0 {
		return fmt.Errorf("no outlines could be extracted")
	}
	fmt.Printf("Wrote %d outline files to %s\n", written, outputDir)
	return nil
}
