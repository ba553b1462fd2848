package main

import (
	"context"

	"github.com/aretw0/cipollino/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the project session over HTTP",
	Long:  `Opens the project and exposes its tree, history, save and metrics endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := opts.Config.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}
		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()
		err := cli.RunServe(sc, opts, addr)
		if sig := sc.Signal(); sig != nil {
			opts.Logger.Info("stopped by signal", "signal", sig.String())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "localhost:8080", "Address to listen on")
}
