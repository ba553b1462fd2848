package persistence_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/persistence"
	"github.com/aretw0/cipollino/pkg/project"
	"github.com/stretchr/testify/require"
)

var boop = []byte("ID3 boop boop boop")

func writeFile(t *testing.T, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0755))
	require.NoError(t, os.WriteFile(name, data, 0644))
}

// sample builds, saves and returns a project with a nested folder, a graphic
// with a plain and a group layer, strokes, a palette and a sound instance
// referencing sfx/boop.mp3. Folder names sort after "sfx" so that the
// reloaded child order matches the order they were added in.
func sample(t *testing.T) *project.Project {
	t.Helper()
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "proj")
	writeFile(t, filepath.Join(dir, "sfx", "boop.mp3"), boop)

	p, _, err := persistence.Load(ctx, dir)
	require.NoError(t, err)
	ref, ok := p.AudioFiles.ByPath("sfx/boop.mp3")
	require.True(t, ok)

	shots, _, err := p.AddFolder(p.RootFolder(), "shots")
	require.NoError(t, err)
	props, _, err := p.AddFolder(shots.Ptr(), "Props")
	require.NoError(t, err)
	_, _, err = p.AddGraphic(props.Ptr(), "Hat")
	require.NoError(t, err)

	gfx, _, err := p.AddGraphic(shots.Ptr(), "Walk")
	require.NoError(t, err)
	_, ok = p.SetGraphicSize(gfx.Ptr(), 640, 480)
	require.True(t, ok)

	bg, _, err := p.AddLayer(domain.GraphicParent(gfx.Ptr()), "bg", domain.LayerAnimation)
	require.NoError(t, err)
	group, _, err := p.AddLayer(domain.GraphicParent(gfx.Ptr()), "fx", domain.LayerGroup)
	require.NoError(t, err)
	music, _, err := p.AddLayer(domain.LayerParentOf(group.Ptr()), "music", domain.LayerAudio)
	require.NoError(t, err)
	_, ok = p.SetLayerShow(music.Ptr(), false)
	require.True(t, ok)

	for _, tm := range []int32{0, 12} {
		frame, _, err := p.AddFrame(bg.Ptr(), tm)
		require.NoError(t, err)
		s := domain.NewStroke(frame.Ptr())
		s.Color = domain.Color{0.5, 0.25, 1, 1}
		s.Radius = 0.5
		s.Filled = tm > 0
		s.Points = [][]domain.BezierPoint{{
			{A: domain.Vec2{X: -1, Y: 0}, P: domain.Vec2{X: 0, Y: 0}, B: domain.Vec2{X: 1, Y: 0}},
			{A: domain.Vec2{X: 2, Y: 2.5}, P: domain.Vec2{X: 3, Y: 3}, B: domain.Vec2{X: 4, Y: 3.5}},
		}}
		_, _, err = p.AddStroke(frame.Ptr(), s)
		require.NoError(t, err)
	}
	snd, _, err := p.AddSound(music.Ptr(), ref, 4, 40)
	require.NoError(t, err)
	_, ok = p.SetSoundRange(snd.Ptr(), 4, 40, 2)
	require.True(t, ok)

	_, _, err = p.AddPalette(p.RootFolder(), "Skin", []domain.Color{domain.Black, domain.White})
	require.NoError(t, err)

	report, err := persistence.Save(ctx, p)
	require.NoError(t, err)
	require.NoError(t, report.Err())
	return p
}

// shape renders the hierarchy with every persisted field but without keys,
// so projects can be compared across a save and load.
func shape(p *project.Project) string {
	var b strings.Builder
	var layer func(l domain.Ptr[domain.Layer], depth int)
	layer = func(l domain.Ptr[domain.Layer], depth int) {
		v, _ := p.Layers.Get(l)
		ind := strings.Repeat("  ", depth)
		fmt.Fprintf(&b, "%slayer %s show=%v type=%s\n", ind, v.Name, v.Show, v.Type)
		for _, fb := range v.Frames {
			f, _ := p.Frames.Get(fb.Ptr())
			fmt.Fprintf(&b, "%s  frame t=%d\n", ind, f.Time)
			for _, sb := range f.Strokes {
				s, _ := p.Strokes.Get(sb.Ptr())
				fmt.Fprintf(&b, "%s    stroke %v r=%v filled=%v %v\n", ind, s.Color, s.Radius, s.Filled, s.Points)
			}
		}
		for _, sb := range v.Sounds {
			s, _ := p.Sounds.Get(sb.Ptr())
			fmt.Fprintf(&b, "%s  sound %s %d-%d+%d\n", ind, s.Audio.Path, s.Begin, s.End, s.Offset)
		}
		for _, child := range v.Layers {
			layer(child.Ptr(), depth+1)
		}
	}
	var folder func(f domain.Ptr[domain.Folder], depth int)
	folder = func(f domain.Ptr[domain.Folder], depth int) {
		v, _ := p.Folders.Get(f)
		ind := strings.Repeat("  ", depth)
		fmt.Fprintf(&b, "%sfolder %s audios=%v\n", ind, v.Name, v.Audios)
		for _, gb := range v.Graphics {
			g, _ := p.Graphics.Get(gb.Ptr())
			fmt.Fprintf(&b, "%s  graphic %s len=%d clip=%v %dx%d\n", ind, g.Name, g.Length, g.Clip, g.Width, g.Height)
			for _, lb := range g.Layers {
				layer(lb.Ptr(), depth+2)
			}
		}
		for _, pb := range v.Palettes {
			pl, _ := p.Palettes.Get(pb.Ptr())
			fmt.Fprintf(&b, "%s  palette %s %v\n", ind, pl.Name, pl.Colors)
		}
		for _, sub := range v.Folders {
			folder(sub.Ptr(), depth+1)
		}
	}
	folder(p.RootFolder(), 0)
	return b.String()
}
