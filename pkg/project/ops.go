package project

import (
	"github.com/aretw0/cipollino/pkg/domain"
)

// Structural edits. Every Add returns the owning handle (already placed in
// the parent's list) and the action that reverts it. Every Delete cascades
// to owned objects and returns one composite action for the whole cascade.

// AddFolder creates a sub-folder. The name is made unique among sibling
// folders.
func (p *Project) AddFolder(parent domain.Ptr[domain.Folder], name string) (domain.Box[domain.Folder], *Action, error) {
	f := domain.NewFolder(parent)
	if name != "" {
		f.Name = name
	}
	f.Name = freeName(p, folderOps, parent, domain.Null[domain.Folder](), f.Name, folderName)
	return add(p, folderOps, parent, f, deleteFolder)
}

// AddGraphic creates a graphic in folder with a unique name.
func (p *Project) AddGraphic(folder domain.Ptr[domain.Folder], name string) (domain.Box[domain.Graphic], *Action, error) {
	g := domain.NewGraphic(folder)
	if name != "" {
		g.Name = name
	}
	g.Name = freeName(p, graphicOps, folder, domain.Null[domain.Graphic](), g.Name, graphicName)
	return add(p, graphicOps, folder, g, deleteGraphic)
}

// AddPalette creates a palette in folder with a unique name.
func (p *Project) AddPalette(folder domain.Ptr[domain.Folder], name string, colors []domain.Color) (domain.Box[domain.Palette], *Action, error) {
	pl := domain.NewPalette(folder)
	if name != "" {
		pl.Name = name
	}
	pl.Colors = cloneColors(colors)
	pl.Name = freeName(p, paletteOps, folder, domain.Null[domain.Palette](), pl.Name, paletteName)
	return add(p, paletteOps, folder, pl, deletePalette)
}

// AddLayer appends a layer to a graphic or group layer.
func (p *Project) AddLayer(parent domain.LayerParent, name string, t domain.LayerType) (domain.Box[domain.Layer], *Action, error) {
	l := domain.NewLayer(parent)
	if name != "" {
		l.Name = name
	}
	if t.Valid() {
		l.Type = t
	}
	return add(p, layerOps, parent, l, deleteLayer)
}

// AddFrame creates a keyframe at time on layer.
func (p *Project) AddFrame(layer domain.Ptr[domain.Layer], time int32) (domain.Box[domain.Frame], *Action, error) {
	return add(p, frameOps, layer, domain.NewFrame(layer, time), deleteFrame)
}

// AddStroke adds s to frame. The Frame field of s is overwritten and its
// points are copied.
func (p *Project) AddStroke(frame domain.Ptr[domain.Frame], s domain.Stroke) (domain.Box[domain.Stroke], *Action, error) {
	s.Points = domain.ClonePoints(s.Points)
	return add(p, strokeOps, frame, s, deleteStroke)
}

// AddSound places an audio file on layer between begin and end.
func (p *Project) AddSound(layer domain.Ptr[domain.Layer], audio domain.FileRef, begin, end int32) (domain.Box[domain.SoundInstance], *Action, error) {
	s := domain.NewSoundInstance(layer, audio)
	s.Begin, s.End = begin, end
	return add(p, soundOps, layer, s, deleteSound)
}

// DeleteFolder removes a folder and everything under it. The root folder
// cannot be deleted.
func (p *Project) DeleteFolder(f domain.Ptr[domain.Folder]) (*Action, error) {
	if f == p.Root.Ptr() {
		return nil, domain.ErrRootFolder
	}
	return deletion(p, f, folders, deleteFolder)
}

func (p *Project) DeleteGraphic(g domain.Ptr[domain.Graphic]) (*Action, error) {
	return deletion(p, g, graphics, deleteGraphic)
}

func (p *Project) DeletePalette(pl domain.Ptr[domain.Palette]) (*Action, error) {
	return deletion(p, pl, palettes, deletePalette)
}

// DeleteLayer removes a layer with its frames, sounds and sub-layers.
func (p *Project) DeleteLayer(l domain.Ptr[domain.Layer]) (*Action, error) {
	return deletion(p, l, layers, deleteLayer)
}

// DeleteFrame removes a frame and its strokes.
func (p *Project) DeleteFrame(f domain.Ptr[domain.Frame]) (*Action, error) {
	return deletion(p, f, frames, deleteFrame)
}

func (p *Project) DeleteStroke(s domain.Ptr[domain.Stroke]) (*Action, error) {
	return deletion(p, s, strokes, deleteStroke)
}

func (p *Project) DeleteSound(s domain.Ptr[domain.SoundInstance]) (*Action, error) {
	return deletion(p, s, sounds, deleteSound)
}

func deletion[T any](p *Project, ptr domain.Ptr[T], store func(*Project) *domain.Store[T], del func(*Project, domain.Ptr[T]) []*Action) (*Action, error) {
	if !store(p).Contains(ptr) {
		return nil, domain.ErrStaleHandle
	}
	return Composite(del(p, ptr)...), nil
}

// The cascade functions below return the inverse-capable steps in deletion
// order: children first (last child first), the object itself last.

func deleteStroke(p *Project, s domain.Ptr[domain.Stroke]) []*Action {
	return single(removal(p, strokeOps, s))
}

func deleteSound(p *Project, s domain.Ptr[domain.SoundInstance]) []*Action {
	return single(removal(p, soundOps, s))
}

func deletePalette(p *Project, pl domain.Ptr[domain.Palette]) []*Action {
	return single(removal(p, paletteOps, pl))
}

func deleteFrame(p *Project, f domain.Ptr[domain.Frame]) []*Action {
	frame, ok := p.Frames.Get(f)
	if !ok {
		return nil
	}
	var acts []*Action
	for i := len(frame.Strokes) - 1; i >= 0; i-- {
		acts = append(acts, deleteStroke(p, frame.Strokes[i].Ptr())...)
	}
	return append(acts, single(removal(p, frameOps, f))...)
}

func deleteLayer(p *Project, l domain.Ptr[domain.Layer]) []*Action {
	layer, ok := p.Layers.Get(l)
	if !ok {
		return nil
	}
	var acts []*Action
	for i := len(layer.Layers) - 1; i >= 0; i-- {
		acts = append(acts, deleteLayer(p, layer.Layers[i].Ptr())...)
	}
	for i := len(layer.Sounds) - 1; i >= 0; i-- {
		acts = append(acts, deleteSound(p, layer.Sounds[i].Ptr())...)
	}
	for i := len(layer.Frames) - 1; i >= 0; i-- {
		acts = append(acts, deleteFrame(p, layer.Frames[i].Ptr())...)
	}
	return append(acts, single(removal(p, layerOps, l))...)
}

func deleteGraphic(p *Project, g domain.Ptr[domain.Graphic]) []*Action {
	gfx, ok := p.Graphics.Get(g)
	if !ok {
		return nil
	}
	var acts []*Action
	for i := len(gfx.Layers) - 1; i >= 0; i-- {
		acts = append(acts, deleteLayer(p, gfx.Layers[i].Ptr())...)
	}
	return append(acts, single(removal(p, graphicOps, g))...)
}

func deleteFolder(p *Project, f domain.Ptr[domain.Folder]) []*Action {
	folder, ok := p.Folders.Get(f)
	if !ok {
		return nil
	}
	var acts []*Action
	for i := len(folder.Folders) - 1; i >= 0; i-- {
		acts = append(acts, deleteFolder(p, folder.Folders[i].Ptr())...)
	}
	for i := len(folder.Graphics) - 1; i >= 0; i-- {
		acts = append(acts, deleteGraphic(p, folder.Graphics[i].Ptr())...)
	}
	for i := len(folder.Palettes) - 1; i >= 0; i-- {
		acts = append(acts, deletePalette(p, folder.Palettes[i].Ptr())...)
	}
	return append(acts, single(removal(p, folderOps, f))...)
}

func single(a *Action) []*Action {
	if a == nil {
		return nil
	}
	return []*Action{a}
}

// TransferFolder moves a folder under another folder. Moving a folder into
// itself or one of its descendants returns domain.ErrCycle. A name clash in
// the new parent is resolved with the " (n)" suffix, as are the other asset
// transfers.
func (p *Project) TransferFolder(f domain.Ptr[domain.Folder], parent domain.Ptr[domain.Folder]) (*Action, error) {
	if f == p.Root.Ptr() {
		return nil, domain.ErrRootFolder
	}
	a, err := transfer(p, folderOps, f, parent)
	if err != nil {
		return nil, err
	}
	return renameAfterMove(a, func() (*Action, bool) {
		folder, _ := p.Folders.Get(f)
		return p.SetFolderName(f, folder.Name)
	}), nil
}

func (p *Project) TransferGraphic(g domain.Ptr[domain.Graphic], folder domain.Ptr[domain.Folder]) (*Action, error) {
	a, err := transfer(p, graphicOps, g, folder)
	if err != nil {
		return nil, err
	}
	return renameAfterMove(a, func() (*Action, bool) {
		gfx, _ := p.Graphics.Get(g)
		return p.SetGraphicName(g, gfx.Name)
	}), nil
}

func (p *Project) TransferPalette(pl domain.Ptr[domain.Palette], folder domain.Ptr[domain.Folder]) (*Action, error) {
	a, err := transfer(p, paletteOps, pl, folder)
	if err != nil {
		return nil, err
	}
	return renameAfterMove(a, func() (*Action, bool) {
		palette, _ := p.Palettes.Get(pl)
		return p.SetPaletteName(pl, palette.Name)
	}), nil
}

// TransferLayer moves a layer under a graphic or a group layer. Moving a
// layer under itself or any of its descendants returns domain.ErrCycle and
// leaves the graph unchanged.
func (p *Project) TransferLayer(l domain.Ptr[domain.Layer], parent domain.LayerParent) (*Action, error) {
	return transfer(p, layerOps, l, parent)
}

func (p *Project) TransferFrame(f domain.Ptr[domain.Frame], layer domain.Ptr[domain.Layer]) (*Action, error) {
	return transfer(p, frameOps, f, layer)
}

func (p *Project) TransferStroke(s domain.Ptr[domain.Stroke], frame domain.Ptr[domain.Frame]) (*Action, error) {
	return transfer(p, strokeOps, s, frame)
}

func (p *Project) TransferSound(s domain.Ptr[domain.SoundInstance], layer domain.Ptr[domain.Layer]) (*Action, error) {
	return transfer(p, soundOps, s, layer)
}
