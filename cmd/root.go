package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docsift",
	Short: "Persona-driven section ranking for PDF collections",
	Long: `Docsift extracts paragraphs from a directory of PDF documents and ranks
them against a persona and job-to-be-done using sentence embeddings and
cosine similarity, producing a JSON report of the most relevant sections.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".docsift.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
