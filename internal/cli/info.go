package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/cipollino"
	"github.com/aretw0/cipollino/internal/presentation/graph"
	"github.com/aretw0/cipollino/internal/presentation/tui"
	"github.com/aretw0/cipollino/pkg/editor"
)

// InfoOptions selects the output of RunInfo.
type InfoOptions struct {
	Mermaid bool
	// Plain disables styling even on a terminal.
	Plain bool
}

// RunInfo prints the contents of the project in o.Dir and any problems
// found while loading it.
func RunInfo(ctx context.Context, o Options, i InfoOptions) error {
	o = o.withDefaults()
	ed, err := cipollino.Open(ctx, o.Dir, o.editorOptions()...)
	if err != nil {
		return err
	}

	summary := tui.Summary{Dir: ed.Dir(), Report: ed.Report}
	var ok bool
	ed.Session.With(func(st *editor.State) {
		p := st.Project
		summary.FPS = p.FPS
		summary.SampleRate = p.SampleRate
		summary.Objects = p.ObjectCount()
		summary.Tree, ok = p.Outline(p.RootFolder())
	})
	if !ok {
		return fmt.Errorf("failed to describe %s: root folder missing", ed.Dir())
	}

	if i.Mermaid {
		_, err := fmt.Fprint(o.Out, graph.GenerateMermaid(summary.Tree, nil))
		return err
	}

	render := tui.NewRenderer(i.Plain || !isTerminal(o.Out))
	out, err := render(summary.Markdown())
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	fmt.Fprint(o.Out, out)
	tui.PrintWarnings(o.Err, ed.Report)
	return nil
}
