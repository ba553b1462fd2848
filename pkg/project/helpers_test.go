package project_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/project"
	"github.com/stretchr/testify/require"
)

// dump renders every store in key order. fmt prints nil and empty slices
// alike, which is what we want when comparing states across undo/redo.
func dump(p *project.Project) string {
	var b strings.Builder
	dumpStore(&b, "folder", p.Folders)
	dumpStore(&b, "graphic", p.Graphics)
	dumpStore(&b, "layer", p.Layers)
	dumpStore(&b, "frame", p.Frames)
	dumpStore(&b, "stroke", p.Strokes)
	dumpStore(&b, "palette", p.Palettes)
	dumpStore(&b, "sound", p.Sounds)
	return b.String()
}

func dumpStore[T any](b *strings.Builder, name string, s *domain.Store[T]) {
	for _, k := range s.Keys() {
		v, _ := s.Get(domain.PtrFromKey[T](k))
		fmt.Fprintf(b, "%s %d %+v\n", name, k, v)
	}
}

type fixture struct {
	p       *project.Project
	scene   domain.Ptr[domain.Folder]
	gfx     domain.Ptr[domain.Graphic]
	bg      domain.Ptr[domain.Layer]
	group   domain.Ptr[domain.Layer]
	inner   domain.Ptr[domain.Layer]
	frame   domain.Ptr[domain.Frame]
	strokes []domain.Ptr[domain.Stroke]
}

// newFixture builds root/Scene/Graphic with layers bg and group{inner},
// and one frame on bg holding three strokes.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	p := project.New("/tmp/proj")
	f := &fixture{p: p}

	scene, _, err := p.AddFolder(p.RootFolder(), "Scene")
	require.NoError(t, err)
	f.scene = scene.Ptr()

	gfx, _, err := p.AddGraphic(f.scene, "Walk")
	require.NoError(t, err)
	f.gfx = gfx.Ptr()

	bg, _, err := p.AddLayer(domain.GraphicParent(f.gfx), "bg", domain.LayerAnimation)
	require.NoError(t, err)
	f.bg = bg.Ptr()

	group, _, err := p.AddLayer(domain.GraphicParent(f.gfx), "group", domain.LayerGroup)
	require.NoError(t, err)
	f.group = group.Ptr()

	inner, _, err := p.AddLayer(domain.LayerParentOf(f.group), "inner", domain.LayerAnimation)
	require.NoError(t, err)
	f.inner = inner.Ptr()

	frame, _, err := p.AddFrame(f.bg, 0)
	require.NoError(t, err)
	f.frame = frame.Ptr()

	for i := 0; i < 3; i++ {
		s := domain.NewStroke(f.frame)
		s.Radius = float32(i + 1)
		s.Points = [][]domain.BezierPoint{{{P: domain.Vec2{X: float32(i), Y: 1}}}}
		box, _, err := p.AddStroke(f.frame, s)
		require.NoError(t, err)
		f.strokes = append(f.strokes, box.Ptr())
	}
	return f
}

// requireSingleOwnership walks the tree from the root and checks that
// every live object is owned exactly once and that nothing is orphaned.
func requireSingleOwnership(t *testing.T, p *project.Project) {
	t.Helper()
	seen := map[domain.AnyPtr]int{}
	var walkLayer func(l domain.Ptr[domain.Layer])
	walkLayer = func(l domain.Ptr[domain.Layer]) {
		seen[domain.Erase(l)]++
		layer, ok := p.Layers.Get(l)
		require.True(t, ok, "owned layer %v missing from store", l)
		for _, fb := range layer.Frames {
			seen[domain.Erase(fb.Ptr())]++
			frame, ok := p.Frames.Get(fb.Ptr())
			require.True(t, ok)
			require.Equal(t, l, frame.Layer)
			for _, sb := range frame.Strokes {
				seen[domain.Erase(sb.Ptr())]++
			}
		}
		for _, sb := range layer.Sounds {
			seen[domain.Erase(sb.Ptr())]++
		}
		for _, child := range layer.Layers {
			walkLayer(child.Ptr())
		}
	}
	var walkFolder func(f domain.Ptr[domain.Folder])
	walkFolder = func(f domain.Ptr[domain.Folder]) {
		seen[domain.Erase(f)]++
		folder, ok := p.Folders.Get(f)
		require.True(t, ok)
		for _, gb := range folder.Graphics {
			seen[domain.Erase(gb.Ptr())]++
			gfx, ok := p.Graphics.Get(gb.Ptr())
			require.True(t, ok)
			for _, lb := range gfx.Layers {
				walkLayer(lb.Ptr())
			}
		}
		for _, pb := range folder.Palettes {
			seen[domain.Erase(pb.Ptr())]++
		}
		for _, sub := range folder.Folders {
			walkFolder(sub.Ptr())
		}
	}
	walkFolder(p.RootFolder())

	for ptr, n := range seen {
		require.Equal(t, 1, n, "%v owned %d times", ptr, n)
	}
	require.Equal(t, p.ObjectCount(), len(seen), "orphaned objects in stores")
}
