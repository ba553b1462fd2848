package main

import (
	"github.com/aretw0/cipollino/internal/cli"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the contents of a project and any load problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		mermaid, _ := cmd.Flags().GetBool("mermaid")
		plain, _ := cmd.Flags().GetBool("plain")
		return cli.RunInfo(cmd.Context(), opts, cli.InfoOptions{Mermaid: mermaid, Plain: plain})
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().Bool("mermaid", false, "Print the project tree as a Mermaid flowchart")
	infoCmd.Flags().Bool("plain", false, "Print raw markdown even on a terminal")
}
