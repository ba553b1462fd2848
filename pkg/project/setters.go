package project

import "github.com/aretw0/cipollino/pkg/domain"

// fieldSetter returns an undoable setter for one field of T. The returned
// action's effects call the setter again with the new or the captured
// previous value, so replay goes through exactly the same path as an edit.
func fieldSetter[T, V any](
	store func(*Project) *domain.Store[T],
	field func(*T) *V,
	clone func(V) V,
) func(*Project, domain.Ptr[T], V) (*Action, bool) {
	var set func(*Project, domain.Ptr[T], V) (*Action, bool)
	set = func(p *Project, ptr domain.Ptr[T], value V) (*Action, bool) {
		obj, ok := store(p).GetMut(ptr)
		if !ok {
			return nil, false
		}
		prev := *field(obj)
		next := clone(value)
		*field(obj) = clone(next)
		return NewAction(
			func(p *Project) { set(p, ptr, next) },
			func(p *Project) { set(p, ptr, prev) },
		), true
	}
	return set
}

func same[V any](v V) V { return v }

func cloneColors(c []domain.Color) []domain.Color {
	if c == nil {
		return nil
	}
	return append([]domain.Color(nil), c...)
}

var (
	setFolderName = fieldSetter(folders, func(f *domain.Folder) *string { return &f.Name }, same[string])

	setGraphicName   = fieldSetter(graphics, func(g *domain.Graphic) *string { return &g.Name }, same[string])
	setGraphicLength = fieldSetter(graphics, func(g *domain.Graphic) *int32 { return &g.Length }, same[int32])
	setGraphicClip   = fieldSetter(graphics, func(g *domain.Graphic) *bool { return &g.Clip }, same[bool])
	setGraphicWidth  = fieldSetter(graphics, func(g *domain.Graphic) *uint32 { return &g.Width }, same[uint32])
	setGraphicHeight = fieldSetter(graphics, func(g *domain.Graphic) *uint32 { return &g.Height }, same[uint32])

	setPaletteName   = fieldSetter(palettes, func(pl *domain.Palette) *string { return &pl.Name }, same[string])
	setPaletteColors = fieldSetter(palettes, func(pl *domain.Palette) *[]domain.Color { return &pl.Colors }, cloneColors)

	setLayerName = fieldSetter(layers, func(l *domain.Layer) *string { return &l.Name }, same[string])
	setLayerShow = fieldSetter(layers, func(l *domain.Layer) *bool { return &l.Show }, same[bool])
	setLayerType = fieldSetter(layers, func(l *domain.Layer) *domain.LayerType { return &l.Type }, same[domain.LayerType])

	setFrameTime = fieldSetter(frames, func(f *domain.Frame) *int32 { return &f.Time }, same[int32])

	setStrokeColor  = fieldSetter(strokes, func(s *domain.Stroke) *domain.Color { return &s.Color }, same[domain.Color])
	setStrokeRadius = fieldSetter(strokes, func(s *domain.Stroke) *float32 { return &s.Radius }, same[float32])
	setStrokeFilled = fieldSetter(strokes, func(s *domain.Stroke) *bool { return &s.Filled }, same[bool])
	setStrokePoints = fieldSetter(strokes, func(s *domain.Stroke) *[][]domain.BezierPoint { return &s.Points }, domain.ClonePoints)

	setSoundAudio  = fieldSetter(sounds, func(s *domain.SoundInstance) *domain.FileRef { return &s.Audio }, same[domain.FileRef])
	setSoundBegin  = fieldSetter(sounds, func(s *domain.SoundInstance) *int32 { return &s.Begin }, same[int32])
	setSoundEnd    = fieldSetter(sounds, func(s *domain.SoundInstance) *int32 { return &s.End }, same[int32])
	setSoundOffset = fieldSetter(sounds, func(s *domain.SoundInstance) *int32 { return &s.Offset }, same[int32])
)

// SetFolderName renames a folder. Like every asset rename, a name already
// used by a sibling of the same kind gets the " (n)" suffix.
func (p *Project) SetFolderName(f domain.Ptr[domain.Folder], name string) (*Action, bool) {
	folder, ok := p.Folders.Get(f)
	if !ok {
		return nil, false
	}
	return setFolderName(p, f, freeName(p, folderOps, folder.Parent, f, name, folderName))
}

func (p *Project) SetGraphicName(g domain.Ptr[domain.Graphic], name string) (*Action, bool) {
	gfx, ok := p.Graphics.Get(g)
	if !ok {
		return nil, false
	}
	return setGraphicName(p, g, freeName(p, graphicOps, gfx.Folder, g, name, graphicName))
}

// SetGraphicLength sets the clip duration in frames.
func (p *Project) SetGraphicLength(g domain.Ptr[domain.Graphic], length int32) (*Action, bool) {
	return setGraphicLength(p, g, length)
}

func (p *Project) SetGraphicClip(g domain.Ptr[domain.Graphic], clip bool) (*Action, bool) {
	return setGraphicClip(p, g, clip)
}

// SetGraphicSize sets the canvas size as a single history entry.
func (p *Project) SetGraphicSize(g domain.Ptr[domain.Graphic], width, height uint32) (*Action, bool) {
	w, ok := setGraphicWidth(p, g, width)
	if !ok {
		return nil, false
	}
	h, _ := setGraphicHeight(p, g, height)
	return Composite(w, h), true
}

func (p *Project) SetPaletteName(pl domain.Ptr[domain.Palette], name string) (*Action, bool) {
	palette, ok := p.Palettes.Get(pl)
	if !ok {
		return nil, false
	}
	return setPaletteName(p, pl, freeName(p, paletteOps, palette.Folder, pl, name, paletteName))
}

func (p *Project) SetPaletteColors(pl domain.Ptr[domain.Palette], colors []domain.Color) (*Action, bool) {
	return setPaletteColors(p, pl, colors)
}

func (p *Project) SetLayerName(l domain.Ptr[domain.Layer], name string) (*Action, bool) {
	return setLayerName(p, l, name)
}

// SetLayerShow toggles layer visibility.
func (p *Project) SetLayerShow(l domain.Ptr[domain.Layer], show bool) (*Action, bool) {
	return setLayerShow(p, l, show)
}

func (p *Project) SetLayerType(l domain.Ptr[domain.Layer], t domain.LayerType) (*Action, bool) {
	return setLayerType(p, l, t)
}

// SetFrameTime moves a keyframe. Uniqueness of times within the layer is
// left to the caller.
func (p *Project) SetFrameTime(f domain.Ptr[domain.Frame], time int32) (*Action, bool) {
	return setFrameTime(p, f, time)
}

func (p *Project) SetStrokeColor(s domain.Ptr[domain.Stroke], c domain.Color) (*Action, bool) {
	return setStrokeColor(p, s, c)
}

func (p *Project) SetStrokeRadius(s domain.Ptr[domain.Stroke], r float32) (*Action, bool) {
	return setStrokeRadius(p, s, r)
}

func (p *Project) SetStrokeFilled(s domain.Ptr[domain.Stroke], filled bool) (*Action, bool) {
	return setStrokeFilled(p, s, filled)
}

// SetStrokePoints replaces the bezier chains. The input is copied.
func (p *Project) SetStrokePoints(s domain.Ptr[domain.Stroke], points [][]domain.BezierPoint) (*Action, bool) {
	return setStrokePoints(p, s, points)
}

func (p *Project) SetSoundAudio(s domain.Ptr[domain.SoundInstance], audio domain.FileRef) (*Action, bool) {
	return setSoundAudio(p, s, audio)
}

// SetSoundRange sets begin, end and offset of a sound instance together.
func (p *Project) SetSoundRange(s domain.Ptr[domain.SoundInstance], begin, end, offset int32) (*Action, bool) {
	b, ok := setSoundBegin(p, s, begin)
	if !ok {
		return nil, false
	}
	e, _ := setSoundEnd(p, s, end)
	o, _ := setSoundOffset(p, s, offset)
	return Composite(b, e, o), true
}
