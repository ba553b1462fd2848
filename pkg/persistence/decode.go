package persistence

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/project"
	"github.com/mitchellh/mapstructure"
)

// decoder rebuilds the objects of one asset file inside a project.
type decoder struct {
	p      *project.Project
	file   *AssetFile
	path   string
	tr     *Translation
	report *LoadReport
}

func newDecoder(p *project.Project, file *AssetFile, path string, report *LoadReport) *decoder {
	return &decoder{p: p, file: file, path: path, tr: newTranslation(), report: report}
}

// decodeValue decodes raw into target with weak typing. target is only
// written when decoding succeeds, so a bad value leaves the default alone.
func decodeValue(raw, target any) error {
	dst := reflect.ValueOf(target).Elem()
	tmp := reflect.New(dst.Type())
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           tmp.Interface(),
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return err
	}
	dst.Set(tmp.Elem())
	return nil
}

// fields decodes every known field present in obj. Missing fields keep
// their defaults, unknown ones are ignored, damaged ones are reported.
func (d *decoder) fields(obj Fields, owner domain.AnyPtr, targets map[string]any) {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		raw, ok := obj[name]
		if !ok {
			continue
		}
		if err := decodeValue(raw, targets[name]); err != nil {
			d.report.damage(d.path, owner, name, err)
		}
	}
}

func (d *decoder) children(obj Fields, owner domain.AnyPtr, field string) []domain.Key {
	var out []domain.Key
	d.fields(obj, owner, map[string]any{field: &out})
	return out
}

func (d *decoder) object(kind domain.Kind, disk domain.Key) (Fields, bool) {
	obj, ok := d.file.get(kind, disk)
	if !ok {
		d.report.fail(d.path, "decode", fmt.Errorf("%s#%d referenced but not stored", kind, disk))
	}
	return obj, ok
}

func (d *decoder) duplicate(kind domain.Kind, disk domain.Key) {
	d.report.fail(d.path, "decode", fmt.Errorf("%s#%d referenced more than once", kind, disk))
}

// graphic decodes the root graphic of the file into folder. The caller
// names it and links it into the folder.
func (d *decoder) graphic(disk domain.Key, folder domain.Ptr[domain.Folder]) (domain.Box[domain.Graphic], bool) {
	obj, ok := d.object(domain.KindGraphic, disk)
	if !ok {
		return domain.Box[domain.Graphic]{}, false
	}
	box, ok := claim(d.tr, d.p.Graphics, disk)
	if !ok {
		d.duplicate(domain.KindGraphic, disk)
		return box, false
	}
	owner := domain.Erase(box.Ptr())

	g := domain.NewGraphic(folder)
	d.fields(obj, owner, map[string]any{
		"length": &g.Length,
		"clip":   &g.Clip,
		"width":  &g.Width,
		"height": &g.Height,
	})
	for _, k := range d.children(obj, owner, "layers") {
		if l, ok := d.layer(k, domain.GraphicParent(box.Ptr())); ok {
			g.Layers = append(g.Layers, l)
		}
	}
	*mustGet(d.p.Graphics, box) = g
	return box, true
}

func (d *decoder) palette(disk domain.Key, folder domain.Ptr[domain.Folder]) (domain.Box[domain.Palette], bool) {
	obj, ok := d.object(domain.KindPalette, disk)
	if !ok {
		return domain.Box[domain.Palette]{}, false
	}
	box, ok := claim(d.tr, d.p.Palettes, disk)
	if !ok {
		d.duplicate(domain.KindPalette, disk)
		return box, false
	}

	pl := domain.NewPalette(folder)
	d.fields(obj, domain.Erase(box.Ptr()), map[string]any{"colors": &pl.Colors})
	*mustGet(d.p.Palettes, box) = pl
	return box, true
}

func (d *decoder) layer(disk domain.Key, parent domain.LayerParent) (domain.Box[domain.Layer], bool) {
	obj, ok := d.object(domain.KindLayer, disk)
	if !ok {
		return domain.Box[domain.Layer]{}, false
	}
	box, ok := claim(d.tr, d.p.Layers, disk)
	if !ok {
		d.duplicate(domain.KindLayer, disk)
		return box, false
	}
	owner := domain.Erase(box.Ptr())

	l := domain.NewLayer(parent)
	var layerType domain.LayerType
	d.fields(obj, owner, map[string]any{
		"name": &l.Name,
		"show": &l.Show,
		"type": &layerType,
	})
	switch {
	case layerType.Valid():
		l.Type = layerType
	case layerType != "":
		d.report.damage(d.path, owner, "type", fmt.Errorf("unknown layer type %q", layerType))
	}

	for _, k := range d.children(obj, owner, "frames") {
		if f, ok := d.frame(k, box.Ptr()); ok {
			l.Frames = append(l.Frames, f)
		}
	}
	for _, k := range d.children(obj, owner, "sounds") {
		if s, ok := d.sound(k, box.Ptr()); ok {
			l.Sounds = append(l.Sounds, s)
		}
	}
	for _, k := range d.children(obj, owner, "layers") {
		if child, ok := d.layer(k, domain.LayerParentOf(box.Ptr())); ok {
			l.Layers = append(l.Layers, child)
		}
	}
	*mustGet(d.p.Layers, box) = l
	return box, true
}

func (d *decoder) frame(disk domain.Key, layer domain.Ptr[domain.Layer]) (domain.Box[domain.Frame], bool) {
	obj, ok := d.object(domain.KindFrame, disk)
	if !ok {
		return domain.Box[domain.Frame]{}, false
	}
	box, ok := claim(d.tr, d.p.Frames, disk)
	if !ok {
		d.duplicate(domain.KindFrame, disk)
		return box, false
	}
	owner := domain.Erase(box.Ptr())

	f := domain.NewFrame(layer, 0)
	d.fields(obj, owner, map[string]any{"time": &f.Time})
	for _, k := range d.children(obj, owner, "strokes") {
		if s, ok := d.stroke(k, box.Ptr()); ok {
			f.Strokes = append(f.Strokes, s)
		}
	}
	*mustGet(d.p.Frames, box) = f
	return box, true
}

func (d *decoder) stroke(disk domain.Key, frame domain.Ptr[domain.Frame]) (domain.Box[domain.Stroke], bool) {
	obj, ok := d.object(domain.KindStroke, disk)
	if !ok {
		return domain.Box[domain.Stroke]{}, false
	}
	box, ok := claim(d.tr, d.p.Strokes, disk)
	if !ok {
		d.duplicate(domain.KindStroke, disk)
		return box, false
	}

	s := domain.NewStroke(frame)
	d.fields(obj, domain.Erase(box.Ptr()), map[string]any{
		"color":  &s.Color,
		"radius": &s.Radius,
		"filled": &s.Filled,
		"points": &s.Points,
	})
	*mustGet(d.p.Strokes, box) = s
	return box, true
}

func (d *decoder) sound(disk domain.Key, layer domain.Ptr[domain.Layer]) (domain.Box[domain.SoundInstance], bool) {
	obj, ok := d.object(domain.KindSound, disk)
	if !ok {
		return domain.Box[domain.SoundInstance]{}, false
	}
	box, ok := claim(d.tr, d.p.Sounds, disk)
	if !ok {
		d.duplicate(domain.KindSound, disk)
		return box, false
	}

	s := domain.NewSoundInstance(layer, domain.FileRef{})
	d.fields(obj, domain.Erase(box.Ptr()), map[string]any{
		"audio":  &s.Audio,
		"begin":  &s.Begin,
		"end":    &s.End,
		"offset": &s.Offset,
	})
	*mustGet(d.p.Sounds, box) = s
	return box, true
}

// mustGet returns the placeholder claim inserted for box.
func mustGet[T any](s *domain.Store[T], box domain.Box[T]) *T {
	obj, ok := s.GetMut(box.Ptr())
	if !ok {
		panic(fmt.Sprintf("persistence: claimed %v vanished", box.Ptr()))
	}
	return obj
}
