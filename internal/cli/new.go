package cli

import (
	"context"

	"github.com/aretw0/cipollino"
	"github.com/aretw0/cipollino/internal/presentation/tui"
	"github.com/aretw0/cipollino/pkg/project"
)

// NewOptions are the settings of a new project.
type NewOptions struct {
	FPS        float32
	SampleRate float32
}

// RunNew creates an empty project in o.Dir.
func RunNew(ctx context.Context, o Options, n NewOptions) error {
	o = o.withDefaults()
	opts := append(o.editorOptions(), cipollino.WithProjectOptions(
		project.WithFPS(n.FPS),
		project.WithSampleRate(n.SampleRate),
	))
	ed, err := cipollino.Create(ctx, o.Dir, opts...)
	if err != nil {
		return err
	}
	if isTerminal(o.Out) {
		tui.PrintBanner(o.Out, cipollino.Version)
	}
	o.Logger.Info("project created", "dir", ed.Dir())
	printSystemMessage(o.Out, "Created project in %s", ed.Dir())
	return nil
}
