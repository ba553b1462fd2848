package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/cipollino/internal/cli"
	"github.com/aretw0/cipollino/internal/config"
	"github.com/aretw0/cipollino/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cipollino",
	Short: "Cipollino manages 2D animation projects",
	Long: `Cipollino projects are directories of graphics, palettes and audio files.
This tool creates, inspects and serves them without the editor.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// opts is filled in by setup before any command runs.
var opts cli.Options

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("dir", ".", "Project directory")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	rootCmd.PersistentFlags().String("config", "", "Settings file (default <dir>/"+config.FileName+")")
}

// setup reads the settings file and applies flag overrides.
func setup(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = filepath.Join(dir, config.FileName)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	opts = cli.Options{
		Dir:    dir,
		Config: cfg,
		Logger: logging.New(level),
		Out:    cmd.OutOrStdout(),
		Err:    cmd.ErrOrStderr(),
	}
	return nil
}
