package project

import (
	"path/filepath"

	"github.com/aretw0/cipollino/pkg/domain"
)

// FrameAt returns the frame shown at time t: the latest frame whose time is
// not after t.
func (p *Project) FrameAt(l domain.Ptr[domain.Layer], t int32) (domain.Ptr[domain.Frame], bool) {
	return p.pickFrame(l, func(ft int32) bool { return ft <= t }, func(a, b int32) bool { return a > b })
}

// FrameExactlyAt returns the first frame whose time equals t.
func (p *Project) FrameExactlyAt(l domain.Ptr[domain.Layer], t int32) (domain.Ptr[domain.Frame], bool) {
	layer, ok := p.Layers.Get(l)
	if !ok {
		return domain.Ptr[domain.Frame]{}, false
	}
	for _, box := range layer.Frames {
		if f, ok := p.Frames.Get(box.Ptr()); ok && f.Time == t {
			return box.Ptr(), true
		}
	}
	return domain.Ptr[domain.Frame]{}, false
}

// FrameBefore returns the nearest frame strictly before t.
func (p *Project) FrameBefore(l domain.Ptr[domain.Layer], t int32) (domain.Ptr[domain.Frame], bool) {
	return p.pickFrame(l, func(ft int32) bool { return ft < t }, func(a, b int32) bool { return a > b })
}

// FrameAfter returns the nearest frame strictly after t.
func (p *Project) FrameAfter(l domain.Ptr[domain.Layer], t int32) (domain.Ptr[domain.Frame], bool) {
	return p.pickFrame(l, func(ft int32) bool { return ft > t }, func(a, b int32) bool { return a < b })
}

// pickFrame returns the frame accepted by keep that is best according to
// better. Ties keep the first frame in list order.
func (p *Project) pickFrame(l domain.Ptr[domain.Layer], keep func(int32) bool, better func(a, b int32) bool) (domain.Ptr[domain.Frame], bool) {
	layer, ok := p.Layers.Get(l)
	if !ok {
		return domain.Ptr[domain.Frame]{}, false
	}
	var (
		best     domain.Ptr[domain.Frame]
		bestTime int32
		found    bool
	)
	for _, box := range layer.Frames {
		f, ok := p.Frames.Get(box.Ptr())
		if !ok || !keep(f.Time) {
			continue
		}
		if !found || better(f.Time, bestTime) {
			best, bestTime, found = box.Ptr(), f.Time, true
		}
	}
	return best, found
}

// RootGraphic returns the graphic a layer ultimately belongs to.
func (p *Project) RootGraphic(l domain.Ptr[domain.Layer]) (domain.Ptr[domain.Graphic], bool) {
	limit := p.Layers.Len() + 1
	for i := 0; i <= limit; i++ {
		layer, ok := p.Layers.Get(l)
		if !ok {
			return domain.Ptr[domain.Graphic]{}, false
		}
		if g, ok := layer.Parent.Graphic(); ok {
			return g, p.Graphics.Contains(g)
		}
		l, _ = layer.Parent.Layer()
	}
	return domain.Ptr[domain.Graphic]{}, false
}

// FolderPath returns the directory a folder maps to on disk. The root
// folder maps to the project directory itself.
func (p *Project) FolderPath(f domain.Ptr[domain.Folder]) (string, bool) {
	var names []string
	limit := p.Folders.Len() + 1
	for i := 0; i <= limit; i++ {
		folder, ok := p.Folders.Get(f)
		if !ok {
			return "", false
		}
		if folder.Parent.IsNull() {
			parts := append([]string{p.Dir}, reverse(names)...)
			return filepath.Join(parts...), true
		}
		names = append(names, folder.Name)
		f = folder.Parent
	}
	return "", false
}

// Assets lists everything directly inside folder, sub-folders first, for
// heterogeneous folder views.
func (p *Project) Assets(f domain.Ptr[domain.Folder]) []domain.AssetPtr {
	folder, ok := p.Folders.Get(f)
	if !ok {
		return nil
	}
	out := make([]domain.AssetPtr, 0, len(folder.Folders)+len(folder.Graphics)+len(folder.Palettes))
	for _, b := range folder.Folders {
		out = append(out, domain.FolderAsset(b.Ptr()))
	}
	for _, b := range folder.Graphics {
		out = append(out, domain.GraphicAsset(b.Ptr()))
	}
	for _, b := range folder.Palettes {
		out = append(out, domain.PaletteAsset(b.Ptr()))
	}
	return out
}

// Asset resolves an asset handle to its capability view.
func (p *Project) Asset(a domain.AssetPtr) (domain.Asset, bool) {
	switch a.Kind() {
	case domain.KindFolder:
		if f, ok := p.Folders.GetMut(domain.Cast[domain.Folder](a.Any())); ok {
			return f, true
		}
	case domain.KindGraphic:
		if g, ok := p.Graphics.GetMut(domain.Cast[domain.Graphic](a.Any())); ok {
			return g, true
		}
	case domain.KindPalette:
		if pl, ok := p.Palettes.GetMut(domain.Cast[domain.Palette](a.Any())); ok {
			return pl, true
		}
	}
	return nil, false
}

func reverse(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// LayerAncestors returns the group layers above l, nearest first. The walk
// is bounded by the layer count; a longer chain yields ErrCorruptHierarchy.
func (p *Project) LayerAncestors(l domain.Ptr[domain.Layer]) ([]domain.Ptr[domain.Layer], error) {
	var out []domain.Ptr[domain.Layer]
	limit := p.Layers.Len() + 1
	for i := 0; i <= limit; i++ {
		layer, ok := p.Layers.Get(l)
		if !ok {
			return out, domain.ErrStaleHandle
		}
		parent, ok := layer.Parent.Layer()
		if !ok {
			return out, nil
		}
		out = append(out, parent)
		l = parent
	}
	return out, domain.ErrCorruptHierarchy
}

// Walk visits folder and everything it owns depth-first, parents before
// children, in list order. Returning false from fn stops the walk.
func (p *Project) Walk(f domain.Ptr[domain.Folder], fn func(domain.AnyPtr) bool) {
	p.walkFolder(f, fn)
}

func (p *Project) walkFolder(f domain.Ptr[domain.Folder], fn func(domain.AnyPtr) bool) bool {
	folder, ok := p.Folders.Get(f)
	if !ok || !fn(domain.Erase(f)) {
		return false
	}
	for _, b := range folder.Folders {
		if !p.walkFolder(b.Ptr(), fn) {
			return false
		}
	}
	for _, b := range folder.Graphics {
		gfx, ok := p.Graphics.Get(b.Ptr())
		if !ok {
			continue
		}
		if !fn(domain.Erase(b.Ptr())) {
			return false
		}
		for _, l := range gfx.Layers {
			if !p.walkLayer(l.Ptr(), fn) {
				return false
			}
		}
	}
	for _, b := range folder.Palettes {
		if !fn(domain.Erase(b.Ptr())) {
			return false
		}
	}
	return true
}

func (p *Project) walkLayer(l domain.Ptr[domain.Layer], fn func(domain.AnyPtr) bool) bool {
	layer, ok := p.Layers.Get(l)
	if !ok {
		return true
	}
	if !fn(domain.Erase(l)) {
		return false
	}
	for _, fb := range layer.Frames {
		frame, ok := p.Frames.Get(fb.Ptr())
		if !ok {
			continue
		}
		if !fn(domain.Erase(fb.Ptr())) {
			return false
		}
		for _, sb := range frame.Strokes {
			if !fn(domain.Erase(sb.Ptr())) {
				return false
			}
		}
	}
	for _, sb := range layer.Sounds {
		if !fn(domain.Erase(sb.Ptr())) {
			return false
		}
	}
	for _, child := range layer.Layers {
		if !p.walkLayer(child.Ptr(), fn) {
			return false
		}
	}
	return true
}
