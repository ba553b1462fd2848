package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/cipollino/pkg/project"
)

// Overlay marks parts of the outline to highlight.
type Overlay struct {
	// Current is the id (kind_key) of the open graphic, if any.
	Current string
}

// NodeID returns the Mermaid id used for an outline node with a key.
func NodeID(kind string, key uint64) string {
	return fmt.Sprintf("%s_%d", kind, key)
}

// GenerateMermaid produces a Mermaid flowchart of a project outline.
// Shapes follow the kind of object:
// - Folder: [Rectangle]
// - Graphic: ((Circle))
// - Layer: [[Subroutine]]
// - Palette: [/Parallelogram/]
// - Audio: {{Hexagon}}, linked with a dotted arrow when missing
func GenerateMermaid(root project.Node, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	g := &generator{sb: &sb}
	g.node(root, "")

	if overlay != nil && overlay.Current != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.Current)))
	}
	if g.missing > 0 {
		sb.WriteString("    classDef missing fill:#ffcdd2,stroke:#b71c1c,color:#000;\n")
	}
	return sb.String()
}

type generator struct {
	sb      *strings.Builder
	audio   int
	missing int
}

func (g *generator) node(n project.Node, parent string) {
	var id string
	if n.Key != 0 {
		id = sanitizeMermaidID(NodeID(n.Kind, uint64(n.Key)))
	} else {
		g.audio++
		id = fmt.Sprintf("%s_%d", sanitizeMermaidID(n.Kind), g.audio)
	}

	opener, closer := "[", "]"
	switch n.Kind {
	case "graphic":
		opener, closer = "((", "))"
	case "layer":
		opener, closer = "[[", "]]"
	case "palette":
		opener, closer = "[/", "/]"
	case "audio":
		opener, closer = "{{", "}}"
	}
	label := strings.ReplaceAll(n.Name, "\"", "'")
	g.sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, label, closer))

	if parent != "" {
		arrow := "-->"
		if n.Detail == "missing" {
			arrow = "-.->"
		}
		g.sb.WriteString(fmt.Sprintf("    %s %s %s\n", parent, arrow, id))
	}
	if n.Kind == "audio" && n.Detail == "missing" {
		g.missing++
		g.sb.WriteString(fmt.Sprintf("    class %s missing;\n", id))
	}

	for _, child := range n.Children {
		g.node(child, id)
	}
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
