package project

import (
	"path"

	"github.com/aretw0/cipollino/pkg/domain"
)

// Asset names become file names, so siblings of one kind must differ even
// on filesystems that ignore case.

// freeName returns name made unique among the same-kind siblings in folder,
// ignoring self.
func freeName[T any](p *Project, ops childOps[T, domain.Ptr[domain.Folder]], folder domain.Ptr[domain.Folder], self domain.Ptr[T], name string, nameOf func(*T) string) string {
	list, ok := ops.list(p, folder)
	if !ok {
		return name
	}
	taken := make([]string, 0, len(*list))
	for _, b := range *list {
		if b.Ptr() == self {
			continue
		}
		if obj, ok := ops.store(p).Get(b.Ptr()); ok {
			taken = append(taken, nameOf(&obj))
		}
	}
	return domain.UniqueNameFold(name, taken)
}

func folderName(f *domain.Folder) string    { return f.Name }
func graphicName(g *domain.Graphic) string  { return g.Name }
func paletteName(pl *domain.Palette) string { return pl.Name }

// SiblingNames returns the file names the children of folder occupy in its
// directory: sub-folders, "<name>.cipgfx", "<name>.cippal" and audio files.
func (p *Project) SiblingNames(f domain.Ptr[domain.Folder]) []string {
	folder, ok := p.Folders.Get(f)
	if !ok {
		return nil
	}
	var names []string
	for _, b := range folder.Folders {
		if sub, ok := p.Folders.Get(b.Ptr()); ok {
			names = append(names, sub.Name)
		}
	}
	for _, b := range folder.Graphics {
		if g, ok := p.Graphics.Get(b.Ptr()); ok {
			names = append(names, g.Name+"."+domain.ExtGraphic)
		}
	}
	for _, b := range folder.Palettes {
		if pl, ok := p.Palettes.Get(b.Ptr()); ok {
			names = append(names, pl.Name+"."+domain.ExtPalette)
		}
	}
	for _, ref := range folder.Audios {
		names = append(names, path.Base(ref.Path))
	}
	return names
}

// renameAfterMove keeps a transferred asset's name free in its new folder.
// The rename is part of the returned action.
func renameAfterMove(moved *Action, rename func() (*Action, bool)) *Action {
	r, ok := rename()
	if !ok {
		return moved
	}
	return Composite(moved, r)
}
