package project

import (
	"github.com/aretw0/cipollino/pkg/domain"
)

// childOps describes how objects of type T hang from parents of type P.
// The list is found by parent value rather than parent instance so sum
// typed parents (LayerParent) work the same as plain handles.
type childOps[T any, P comparable] struct {
	store  func(*Project) *domain.Store[T]
	parent func(*T) *P
	list   func(*Project, P) (*[]domain.Box[T], bool)
	// strip clears owned child lists of a detached value so that restoring
	// it never resurrects boxes whose objects are restored separately.
	strip func(*T)
	// inside reports whether moving child under parent would make child its
	// own ancestor. Nil for types that cannot form cycles.
	inside func(p *Project, child domain.Ptr[T], parent P) (bool, error)
}

var folderOps = childOps[domain.Folder, domain.Ptr[domain.Folder]]{
	store:  folders,
	parent: func(f *domain.Folder) *domain.Ptr[domain.Folder] { return &f.Parent },
	list: func(p *Project, parent domain.Ptr[domain.Folder]) (*[]domain.Box[domain.Folder], bool) {
		f, ok := p.Folders.GetMut(parent)
		if !ok {
			return nil, false
		}
		return &f.Folders, true
	},
	strip: func(f *domain.Folder) {
		f.Folders, f.Graphics, f.Palettes = nil, nil, nil
	},
	inside: folderInside,
}

var graphicOps = childOps[domain.Graphic, domain.Ptr[domain.Folder]]{
	store:  graphics,
	parent: func(g *domain.Graphic) *domain.Ptr[domain.Folder] { return &g.Folder },
	list: func(p *Project, parent domain.Ptr[domain.Folder]) (*[]domain.Box[domain.Graphic], bool) {
		f, ok := p.Folders.GetMut(parent)
		if !ok {
			return nil, false
		}
		return &f.Graphics, true
	},
	strip: func(g *domain.Graphic) { g.Layers = nil },
}

var paletteOps = childOps[domain.Palette, domain.Ptr[domain.Folder]]{
	store:  palettes,
	parent: func(pl *domain.Palette) *domain.Ptr[domain.Folder] { return &pl.Folder },
	list: func(p *Project, parent domain.Ptr[domain.Folder]) (*[]domain.Box[domain.Palette], bool) {
		f, ok := p.Folders.GetMut(parent)
		if !ok {
			return nil, false
		}
		return &f.Palettes, true
	},
	strip: func(*domain.Palette) {},
}

var layerOps = childOps[domain.Layer, domain.LayerParent]{
	store:  layers,
	parent: func(l *domain.Layer) *domain.LayerParent { return &l.Parent },
	list: func(p *Project, parent domain.LayerParent) (*[]domain.Box[domain.Layer], bool) {
		if g, ok := parent.Graphic(); ok {
			gfx, ok := p.Graphics.GetMut(g)
			if !ok {
				return nil, false
			}
			return &gfx.Layers, true
		}
		if l, ok := parent.Layer(); ok {
			layer, ok := p.Layers.GetMut(l)
			if !ok {
				return nil, false
			}
			return &layer.Layers, true
		}
		return nil, false
	},
	strip: func(l *domain.Layer) {
		l.Frames, l.Sounds, l.Layers = nil, nil, nil
	},
	inside: layerInside,
}

var frameOps = childOps[domain.Frame, domain.Ptr[domain.Layer]]{
	store:  frames,
	parent: func(f *domain.Frame) *domain.Ptr[domain.Layer] { return &f.Layer },
	list: func(p *Project, parent domain.Ptr[domain.Layer]) (*[]domain.Box[domain.Frame], bool) {
		l, ok := p.Layers.GetMut(parent)
		if !ok {
			return nil, false
		}
		return &l.Frames, true
	},
	strip: func(f *domain.Frame) { f.Strokes = nil },
}

var strokeOps = childOps[domain.Stroke, domain.Ptr[domain.Frame]]{
	store:  strokes,
	parent: func(s *domain.Stroke) *domain.Ptr[domain.Frame] { return &s.Frame },
	list: func(p *Project, parent domain.Ptr[domain.Frame]) (*[]domain.Box[domain.Stroke], bool) {
		f, ok := p.Frames.GetMut(parent)
		if !ok {
			return nil, false
		}
		return &f.Strokes, true
	},
	strip: func(*domain.Stroke) {},
}

var soundOps = childOps[domain.SoundInstance, domain.Ptr[domain.Layer]]{
	store:  sounds,
	parent: func(s *domain.SoundInstance) *domain.Ptr[domain.Layer] { return &s.Layer },
	list: func(p *Project, parent domain.Ptr[domain.Layer]) (*[]domain.Box[domain.SoundInstance], bool) {
		l, ok := p.Layers.GetMut(parent)
		if !ok {
			return nil, false
		}
		return &l.Sounds, true
	},
	strip: func(*domain.SoundInstance) {},
}

// attach inserts box into the parent's list at index, or appends when index
// is out of range.
func attach[T any, P comparable](p *Project, ops childOps[T, P], parent P, box domain.Box[T], index int) bool {
	list, ok := ops.list(p, parent)
	if !ok {
		return false
	}
	if index < 0 || index >= len(*list) {
		*list = append(*list, box)
		return true
	}
	*list = append(*list, domain.Box[T]{})
	copy((*list)[index+1:], (*list)[index:])
	(*list)[index] = box
	return true
}

// detach removes the box of ptr from the parent's list and returns it with
// the index it occupied.
func detach[T any, P comparable](p *Project, ops childOps[T, P], parent P, ptr domain.Ptr[T]) (domain.Box[T], int, bool) {
	list, ok := ops.list(p, parent)
	if !ok {
		return domain.Box[T]{}, -1, false
	}
	for i, box := range *list {
		if box.Ptr() == ptr {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return box, i, true
		}
	}
	return domain.Box[T]{}, -1, false
}

// indexIn returns the position of ptr in its parent's list.
func indexIn[T any, P comparable](p *Project, ops childOps[T, P], parent P, ptr domain.Ptr[T]) int {
	list, ok := ops.list(p, parent)
	if !ok {
		return -1
	}
	for i, box := range *list {
		if box.Ptr() == ptr {
			return i
		}
	}
	return -1
}

// restore re-inserts value under its original identity and parent slot.
func restore[T any, P comparable](p *Project, ops childOps[T, P], key domain.Key, value T, index int) bool {
	box, ok := ops.store(p).Insert(key, value)
	if !ok {
		return false
	}
	if !attach(p, ops, *ops.parent(&value), box, index) {
		ops.store(p).Remove(box.Ptr())
		return false
	}
	return true
}

// unlink removes a single object (not its children) from its store and its
// parent's list. The returned value has its child lists stripped.
func unlink[T any, P comparable](p *Project, ops childOps[T, P], ptr domain.Ptr[T]) (T, int, bool) {
	value, ok := ops.store(p).Remove(ptr)
	if !ok {
		var zero T
		return zero, -1, false
	}
	_, index, _ := detach(p, ops, *ops.parent(&value), ptr)
	ops.strip(&value)
	return value, index, true
}

// removal unlinks ptr and returns the action that re-applies or reverts
// that single step.
func removal[T any, P comparable](p *Project, ops childOps[T, P], ptr domain.Ptr[T]) *Action {
	value, index, ok := unlink(p, ops, ptr)
	if !ok {
		return nil
	}
	key := ptr.Key()
	return NewAction(
		func(p *Project) { unlink(p, ops, ptr) },
		func(p *Project) { restore(p, ops, key, value, index) },
	)
}

// add inserts a new object under parent. del is the type's cascading
// delete, used to revert the addition.
func add[T any, P comparable](p *Project, ops childOps[T, P], parent P, value T, del func(*Project, domain.Ptr[T]) []*Action) (domain.Box[T], *Action, error) {
	if _, ok := ops.list(p, parent); !ok {
		return domain.Box[T]{}, nil, domain.ErrStaleHandle
	}
	*ops.parent(&value) = parent
	ops.strip(&value)
	box := ops.store(p).Add(value)
	attach(p, ops, parent, box, -1)

	ptr := box.Ptr()
	key := box.Key()
	index := indexIn(p, ops, parent, ptr)
	return box, NewAction(
		func(p *Project) { restore(p, ops, key, value, index) },
		func(p *Project) { del(p, ptr) },
	), nil
}

// move relocates ptr under parent at index, refusing cycles.
func move[T any, P comparable](p *Project, ops childOps[T, P], ptr domain.Ptr[T], parent P, index int) (P, int, error) {
	var zero P
	obj, ok := ops.store(p).GetMut(ptr)
	if !ok {
		return zero, -1, domain.ErrStaleHandle
	}
	if _, ok := ops.list(p, parent); !ok {
		return zero, -1, domain.ErrStaleHandle
	}
	if ops.inside != nil {
		cyclic, err := ops.inside(p, ptr, parent)
		if err != nil {
			return zero, -1, err
		}
		if cyclic {
			return zero, -1, domain.ErrCycle
		}
	}

	old := *ops.parent(obj)
	box, oldIndex, ok := detach(p, ops, old, ptr)
	if !ok {
		// Nobody owns ptr: the graph is already inconsistent.
		return zero, -1, domain.ErrCorruptHierarchy
	}
	attach(p, ops, parent, box, index)
	*ops.parent(obj) = parent
	return old, oldIndex, nil
}

// transfer moves ptr to the end of parent's list and returns the inverse
// capable action. A cycle yields ErrCycle and leaves the graph untouched.
func transfer[T any, P comparable](p *Project, ops childOps[T, P], ptr domain.Ptr[T], parent P) (*Action, error) {
	old, oldIndex, err := move(p, ops, ptr, parent, -1)
	if err != nil {
		return nil, err
	}
	return NewAction(
		func(p *Project) { _, _, _ = move(p, ops, ptr, parent, -1) },
		func(p *Project) { _, _, _ = move(p, ops, ptr, old, oldIndex) },
	), nil
}

func layerInside(p *Project, layer domain.Ptr[domain.Layer], parent domain.LayerParent) (bool, error) {
	// Bounded walk: a healthy chain is never longer than the layer count.
	limit := p.Layers.Len() + 1
	for i := 0; i <= limit; i++ {
		l, ok := parent.Layer()
		if !ok {
			return false, nil
		}
		if l == layer {
			return true, nil
		}
		obj, ok := p.Layers.Get(l)
		if !ok {
			return false, nil
		}
		parent = obj.Parent
	}
	return false, domain.ErrCorruptHierarchy
}

func folderInside(p *Project, folder domain.Ptr[domain.Folder], parent domain.Ptr[domain.Folder]) (bool, error) {
	limit := p.Folders.Len() + 1
	for i := 0; i <= limit; i++ {
		if parent.IsNull() {
			return false, nil
		}
		if parent == folder {
			return true, nil
		}
		obj, ok := p.Folders.Get(parent)
		if !ok {
			return false, nil
		}
		parent = obj.Parent
	}
	return false, domain.ErrCorruptHierarchy
}
