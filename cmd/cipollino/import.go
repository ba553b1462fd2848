package main

import (
	"github.com/aretw0/cipollino/internal/cli"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Move files into the project and save it",
	Long: `Moves each file into the target folder, renaming it to "name (n).ext"
if the name is taken, loads it and saves the project.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, _ := cmd.Flags().GetString("folder")
		return cli.RunImport(cmd.Context(), opts, folder, args)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringP("folder", "f", "", "Target folder, slash-separated from the project root")
}
