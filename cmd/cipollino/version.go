package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/cipollino"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cipollino",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cipollino version %s\n", strings.TrimSpace(cipollino.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
