package project

import (
	"fmt"

	"github.com/aretw0/cipollino/pkg/domain"
)

// Node is one entry of a project outline: folders, assets, layers and
// audio references. Frames, strokes and sounds are summarised in Detail.
type Node struct {
	Kind     string     `json:"kind"`
	Key      domain.Key `json:"key,omitempty"`
	Name     string     `json:"name"`
	Detail   string     `json:"detail,omitempty"`
	Children []Node     `json:"children,omitempty"`
}

// Outline describes folder f and everything below it.
func (p *Project) Outline(f domain.Ptr[domain.Folder]) (Node, bool) {
	folder, ok := p.Folders.Get(f)
	if !ok {
		return Node{}, false
	}
	n := Node{Kind: domain.KindFolder.String(), Key: f.Key(), Name: folder.Name}
	for _, b := range folder.Folders {
		if child, ok := p.Outline(b.Ptr()); ok {
			n.Children = append(n.Children, child)
		}
	}
	for _, b := range folder.Graphics {
		gfx, ok := p.Graphics.Get(b.Ptr())
		if !ok {
			continue
		}
		g := Node{
			Kind:   domain.KindGraphic.String(),
			Key:    b.Key(),
			Name:   gfx.Name,
			Detail: fmt.Sprintf("%d frames, %dx%d", gfx.Length, gfx.Width, gfx.Height),
		}
		for _, l := range gfx.Layers {
			if ln, ok := p.layerNode(l.Ptr(), 0); ok {
				g.Children = append(g.Children, ln)
			}
		}
		n.Children = append(n.Children, g)
	}
	for _, b := range folder.Palettes {
		if pl, ok := p.Palettes.Get(b.Ptr()); ok {
			n.Children = append(n.Children, Node{
				Kind:   domain.KindPalette.String(),
				Key:    b.Key(),
				Name:   pl.Name,
				Detail: fmt.Sprintf("%d colors", len(pl.Colors)),
			})
		}
	}
	for _, ref := range folder.Audios {
		detail := ""
		if _, ok := p.AudioFiles.Resolve(ref); !ok {
			detail = "missing"
		}
		n.Children = append(n.Children, Node{Kind: "audio", Name: ref.Path, Detail: detail})
	}
	return n, true
}

func (p *Project) layerNode(l domain.Ptr[domain.Layer], depth int) (Node, bool) {
	layer, ok := p.Layers.Get(l)
	if !ok || depth > p.Layers.Len() {
		return Node{}, false
	}
	strokes := 0
	for _, fb := range layer.Frames {
		if fr, ok := p.Frames.Get(fb.Ptr()); ok {
			strokes += len(fr.Strokes)
		}
	}
	detail := string(layer.Type)
	switch {
	case len(layer.Frames) > 0:
		detail += fmt.Sprintf(", %d frames, %d strokes", len(layer.Frames), strokes)
	case len(layer.Sounds) > 0:
		detail += fmt.Sprintf(", %d sounds", len(layer.Sounds))
	}
	if !layer.Show {
		detail += ", hidden"
	}
	n := Node{Kind: domain.KindLayer.String(), Key: l.Key(), Name: layer.Name, Detail: detail}
	for _, child := range layer.Layers {
		if cn, ok := p.layerNode(child.Ptr(), depth+1); ok {
			n.Children = append(n.Children, cn)
		}
	}
	return n, true
}
