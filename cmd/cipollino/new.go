package main

import (
	"github.com/aretw0/cipollino/internal/cli"
	"github.com/aretw0/cipollino/pkg/project"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [dir]",
	Short: "Create an empty project",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("dir") && len(args) > 0 {
			opts.Dir = args[0]
		}
		fps, _ := cmd.Flags().GetFloat32("fps")
		rate, _ := cmd.Flags().GetFloat32("sample-rate")
		return cli.RunNew(cmd.Context(), opts, cli.NewOptions{FPS: fps, SampleRate: rate})
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().Float32("fps", project.DefaultFPS, "Frames per second")
	newCmd.Flags().Float32("sample-rate", project.DefaultSampleRate, "Audio sample rate in Hz")
}
