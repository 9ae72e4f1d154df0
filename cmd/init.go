package cmd

import (
	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize docsift configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure docsift and generates a .docsift.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
