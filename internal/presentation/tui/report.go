package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/cipollino/pkg/persistence"
	"github.com/aretw0/cipollino/pkg/project"
	"github.com/muesli/termenv"
)

// Summary is what `info` shows about a loaded project.
type Summary struct {
	Dir        string
	FPS        float32
	SampleRate float32
	Objects    int
	Tree       project.Node
	Report     *persistence.LoadReport
}

// Markdown renders the summary as a markdown document.
func (s Summary) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", s.Tree.Name)
	fmt.Fprintf(&sb, "| Setting | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Directory | `%s` |\n", s.Dir)
	fmt.Fprintf(&sb, "| Frame rate | %g fps |\n", s.FPS)
	fmt.Fprintf(&sb, "| Sample rate | %g Hz |\n", s.SampleRate)
	fmt.Fprintf(&sb, "| Objects | %d |\n\n", s.Objects)

	sb.WriteString("## Contents\n\n")
	if len(s.Tree.Children) == 0 {
		sb.WriteString("_empty_\n")
	}
	for _, child := range s.Tree.Children {
		writeNode(&sb, child, 0)
	}

	if r := s.Report; r != nil && !r.Clean() {
		sb.WriteString("\n## Problems\n\n")
		for _, w := range r.Warnings() {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
		for _, e := range r.Errors {
			fmt.Fprintf(&sb, "- %s\n", e.Error())
		}
		for _, d := range r.Damaged {
			fmt.Fprintf(&sb, "- `%s`: field `%s` of %s kept its default\n", d.Path, d.Field, d.Object)
		}
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, n project.Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(sb, "- **%s** %s", n.Name, n.Kind)
	if n.Detail != "" {
		fmt.Fprintf(sb, " _(%s)_", n.Detail)
	}
	sb.WriteString("\n")
	for _, child := range n.Children {
		writeNode(sb, child, depth+1)
	}
}

// PrintWarnings writes one coloured line per load warning.
func PrintWarnings(w io.Writer, r *persistence.LoadReport) {
	if r == nil {
		return
	}
	p := termenv.EnvColorProfile()
	for _, msg := range r.Warnings() {
		fmt.Fprintln(w, termenv.String("warning: "+msg).Foreground(p.Color("#fbbf24")))
	}
}
