package persistence

import (
	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/project"
)

// EncodeGraphic encodes a graphic and everything it owns. The name is not
// stored: it comes from the file name.
func EncodeGraphic(p *project.Project, g domain.Ptr[domain.Graphic]) (*AssetFile, bool) {
	gfx, ok := p.Graphics.Get(g)
	if !ok {
		return nil, false
	}
	f := newAssetFile(domain.KindGraphic, g.Key())
	f.put(domain.KindGraphic, g.Key(), Fields{
		"length": gfx.Length,
		"clip":   gfx.Clip,
		"width":  gfx.Width,
		"height": gfx.Height,
		"layers": keys(gfx.Layers),
	})
	for _, l := range gfx.Layers {
		encodeLayer(p, l.Ptr(), f)
	}
	return f, true
}

// EncodePalette encodes a palette.
func EncodePalette(p *project.Project, pl domain.Ptr[domain.Palette]) (*AssetFile, bool) {
	palette, ok := p.Palettes.Get(pl)
	if !ok {
		return nil, false
	}
	f := newAssetFile(domain.KindPalette, pl.Key())
	colors := make([][]float32, 0, len(palette.Colors))
	for _, c := range palette.Colors {
		colors = append(colors, append([]float32(nil), c[:]...))
	}
	f.put(domain.KindPalette, pl.Key(), Fields{"colors": colors})
	return f, true
}

func encodeLayer(p *project.Project, l domain.Ptr[domain.Layer], f *AssetFile) {
	layer, ok := p.Layers.Get(l)
	if !ok {
		return
	}
	f.put(domain.KindLayer, l.Key(), Fields{
		"name":   layer.Name,
		"show":   layer.Show,
		"type":   string(layer.Type),
		"frames": keys(layer.Frames),
		"sounds": keys(layer.Sounds),
		"layers": keys(layer.Layers),
	})
	for _, fr := range layer.Frames {
		encodeFrame(p, fr.Ptr(), f)
	}
	for _, s := range layer.Sounds {
		encodeSound(p, s.Ptr(), f)
	}
	for _, child := range layer.Layers {
		encodeLayer(p, child.Ptr(), f)
	}
}

func encodeFrame(p *project.Project, fr domain.Ptr[domain.Frame], f *AssetFile) {
	frame, ok := p.Frames.Get(fr)
	if !ok {
		return
	}
	f.put(domain.KindFrame, fr.Key(), Fields{
		"time":    frame.Time,
		"strokes": keys(frame.Strokes),
	})
	for _, s := range frame.Strokes {
		encodeStroke(p, s.Ptr(), f)
	}
}

func encodeStroke(p *project.Project, s domain.Ptr[domain.Stroke], f *AssetFile) {
	stroke, ok := p.Strokes.Get(s)
	if !ok {
		return
	}
	points := stroke.Points
	if points == nil {
		points = [][]domain.BezierPoint{}
	}
	f.put(domain.KindStroke, s.Key(), Fields{
		"color":  stroke.Color[:],
		"radius": stroke.Radius,
		"filled": stroke.Filled,
		"points": points,
	})
}

func encodeSound(p *project.Project, s domain.Ptr[domain.SoundInstance], f *AssetFile) {
	sound, ok := p.Sounds.Get(s)
	if !ok {
		return
	}
	f.put(domain.KindSound, s.Key(), Fields{
		"audio":  sound.Audio,
		"begin":  sound.Begin,
		"end":    sound.End,
		"offset": sound.Offset,
	})
}

func keys[T any](boxes []domain.Box[T]) []domain.Key {
	out := make([]domain.Key, 0, len(boxes))
	for _, b := range boxes {
		out = append(out, b.Key())
	}
	return out
}
