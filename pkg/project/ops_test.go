package project_test

import (
	"testing"

	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_UndoRedo(t *testing.T) {
	p := project.New("")
	before := dump(p)

	box, act, err := p.AddGraphic(p.RootFolder(), "Clip")
	require.NoError(t, err)
	after := dump(p)
	requireSingleOwnership(t, p)

	act.Backward(p)
	assert.Equal(t, before, dump(p))
	assert.False(t, p.Graphics.Contains(box.Ptr()))

	act.Forward(p)
	assert.Equal(t, after, dump(p))
	assert.True(t, p.Graphics.Contains(box.Ptr()), "redo must restore the same identity")
	requireSingleOwnership(t, p)
}

func TestAdd_StaleParent(t *testing.T) {
	p := project.New("")
	_, act, err := p.AddFrame(domain.PtrFromKey[domain.Layer](42), 0)
	assert.ErrorIs(t, err, domain.ErrStaleHandle)
	assert.Nil(t, act)
	assert.Equal(t, 0, p.Frames.Len())
}

func TestAddFolder_CollisionNaming(t *testing.T) {
	p := project.New("")
	names := []string{}
	for i := 0; i < 3; i++ {
		box, _, err := p.AddFolder(p.RootFolder(), "Scene")
		require.NoError(t, err)
		f, _ := p.Folders.Get(box.Ptr())
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Scene", "Scene (1)", "Scene (2)"}, names)

	// Graphics are named against graphics only.
	g, _, err := p.AddGraphic(p.RootFolder(), "Scene")
	require.NoError(t, err)
	gfx, _ := p.Graphics.Get(g.Ptr())
	assert.Equal(t, "Scene", gfx.Name)
}

func TestDeleteFrame_Cascade(t *testing.T) {
	f := newFixture(t)
	p := f.p

	before := dump(p)
	var originals []domain.Stroke
	for _, s := range f.strokes {
		v, _ := p.Strokes.Get(s)
		originals = append(originals, v)
	}

	act, err := p.DeleteFrame(f.frame)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Strokes.Len(), "every stroke of the frame must go")
	assert.False(t, p.Frames.Contains(f.frame))
	requireSingleOwnership(t, p)
	after := dump(p)

	act.Backward(p)
	assert.Equal(t, before, dump(p))
	frame, ok := p.Frames.Get(f.frame)
	require.True(t, ok)
	require.Len(t, frame.Strokes, 3)
	for i, box := range frame.Strokes {
		assert.Equal(t, f.strokes[i], box.Ptr(), "stroke order must be restored")
		v, _ := p.Strokes.Get(box.Ptr())
		assert.Equal(t, originals[i], v)
	}
	requireSingleOwnership(t, p)

	act.Forward(p)
	assert.Equal(t, after, dump(p))
}

func TestDeleteFolder_DeepCascade(t *testing.T) {
	f := newFixture(t)
	p := f.p
	_, _, err := p.AddPalette(f.scene, "Skin", nil)
	require.NoError(t, err)
	sub, _, err := p.AddFolder(f.scene, "Props")
	require.NoError(t, err)
	_, _, err = p.AddGraphic(sub.Ptr(), "Hat")
	require.NoError(t, err)

	before := dump(p)
	act, err := p.DeleteFolder(f.scene)
	require.NoError(t, err)
	assert.Equal(t, 1, p.ObjectCount(), "only the root folder should remain")

	act.Backward(p)
	assert.Equal(t, before, dump(p))
	requireSingleOwnership(t, p)

	_, err = p.DeleteFolder(p.RootFolder())
	assert.ErrorIs(t, err, domain.ErrRootFolder)
}

func TestDelete_Stale(t *testing.T) {
	f := newFixture(t)
	_, err := f.p.DeleteStroke(f.strokes[0])
	require.NoError(t, err)
	_, err = f.p.DeleteStroke(f.strokes[0])
	assert.ErrorIs(t, err, domain.ErrStaleHandle)
}

func TestTransferLayer_CycleGuard(t *testing.T) {
	f := newFixture(t)
	p := f.p
	before := dump(p)

	t.Run("under itself", func(t *testing.T) {
		act, err := p.TransferLayer(f.group, domain.LayerParentOf(f.group))
		assert.ErrorIs(t, err, domain.ErrCycle)
		assert.Nil(t, act)
		assert.Equal(t, before, dump(p))
	})

	t.Run("under a descendant", func(t *testing.T) {
		act, err := p.TransferLayer(f.group, domain.LayerParentOf(f.inner))
		assert.ErrorIs(t, err, domain.ErrCycle)
		assert.Nil(t, act)
		assert.Equal(t, before, dump(p))
	})

	t.Run("sibling into group", func(t *testing.T) {
		act, err := p.TransferLayer(f.bg, domain.LayerParentOf(f.group))
		require.NoError(t, err)
		group, _ := p.Layers.Get(f.group)
		assert.Equal(t, f.bg, group.Layers[len(group.Layers)-1].Ptr())
		bg, _ := p.Layers.Get(f.bg)
		assert.Equal(t, domain.LayerParentOf(f.group), bg.Parent)
		requireSingleOwnership(t, p)

		g, ok := p.RootGraphic(f.bg)
		assert.True(t, ok)
		assert.Equal(t, f.gfx, g)

		act.Backward(p)
		assert.Equal(t, before, dump(p), "undo must restore the original slot")
		gfx, _ := p.Graphics.Get(f.gfx)
		assert.Equal(t, f.bg, gfx.Layers[0].Ptr())
	})
}

func TestTransferFolder_CycleGuard(t *testing.T) {
	f := newFixture(t)
	p := f.p
	sub, _, err := p.AddFolder(f.scene, "Props")
	require.NoError(t, err)

	_, err = p.TransferFolder(f.scene, sub.Ptr())
	assert.ErrorIs(t, err, domain.ErrCycle)
	_, err = p.TransferFolder(p.RootFolder(), sub.Ptr())
	assert.ErrorIs(t, err, domain.ErrRootFolder)

	act, err := p.TransferFolder(sub.Ptr(), p.RootFolder())
	require.NoError(t, err)
	path, ok := p.FolderPath(sub.Ptr())
	require.True(t, ok)
	assert.Equal(t, "/tmp/proj/Props", path)
	act.Backward(p)
	path, _ = p.FolderPath(sub.Ptr())
	assert.Equal(t, "/tmp/proj/Scene/Props", path)
}

func TestTransfer_StrokeAndFrame(t *testing.T) {
	f := newFixture(t)
	p := f.p
	other, _, err := p.AddFrame(f.inner, 3)
	require.NoError(t, err)

	before := dump(p)
	act, err := p.TransferStroke(f.strokes[1], other.Ptr())
	require.NoError(t, err)
	requireSingleOwnership(t, p)
	s, _ := p.Strokes.Get(f.strokes[1])
	assert.Equal(t, other.Ptr(), s.Frame)

	act.Backward(p)
	assert.Equal(t, before, dump(p))

	act2, err := p.TransferFrame(f.frame, f.inner)
	require.NoError(t, err)
	_, ok := p.FrameExactlyAt(f.inner, 0)
	assert.True(t, ok)
	act2.Backward(p)
	assert.Equal(t, before, dump(p))
}

func TestFrameLookups(t *testing.T) {
	p := project.New("")
	gfx, _, _ := p.AddGraphic(p.RootFolder(), "")
	layer, _, _ := p.AddLayer(domain.GraphicParent(gfx.Ptr()), "", "")
	l := layer.Ptr()

	times := map[int32]domain.Ptr[domain.Frame]{}
	for _, tm := range []int32{10, 0, 5} {
		box, _, err := p.AddFrame(l, tm)
		require.NoError(t, err)
		times[tm] = box.Ptr()
	}

	tests := []struct {
		name  string
		fn    func(domain.Ptr[domain.Layer], int32) (domain.Ptr[domain.Frame], bool)
		at    int32
		want  int32
		found bool
	}{
		{"at exact", p.FrameAt, 5, 5, true},
		{"at between", p.FrameAt, 7, 5, true},
		{"at after last", p.FrameAt, 99, 10, true},
		{"at before first", p.FrameAt, -1, 0, false},
		{"exactly hit", p.FrameExactlyAt, 10, 10, true},
		{"exactly miss", p.FrameExactlyAt, 6, 0, false},
		{"before", p.FrameBefore, 5, 0, true},
		{"before none", p.FrameBefore, 0, 0, false},
		{"after", p.FrameAfter, 5, 10, true},
		{"after none", p.FrameAfter, 10, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.fn(l, tt.at)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, times[tt.want], got)
			}
		})
	}

	_, ok := p.FrameAt(domain.PtrFromKey[domain.Layer](99), 0)
	assert.False(t, ok)
}

func TestAssets(t *testing.T) {
	f := newFixture(t)
	p := f.p
	pal, _, _ := p.AddPalette(f.scene, "Skin", nil)

	assets := p.Assets(f.scene)
	require.Len(t, assets, 2)
	assert.Equal(t, domain.KindGraphic, assets[0].Kind())
	assert.Equal(t, domain.PaletteAsset(pal.Ptr()), assets[1])

	a, ok := p.Asset(assets[0])
	require.True(t, ok)
	assert.Equal(t, "Walk", a.AssetName())
	assert.Equal(t, domain.ExtGraphic, a.Extension())

	_, ok = p.Asset(domain.GraphicAsset(domain.PtrFromKey[domain.Graphic](77)))
	assert.False(t, ok)

	assert.ElementsMatch(t, []string{"Walk.cipgfx", "Skin.cippal"}, p.SiblingNames(f.scene))
}

func TestLayerAncestors(t *testing.T) {
	f := newFixture(t)
	up, err := f.p.LayerAncestors(f.inner)
	require.NoError(t, err)
	assert.Equal(t, []domain.Ptr[domain.Layer]{f.group}, up)

	up, err = f.p.LayerAncestors(f.bg)
	require.NoError(t, err)
	assert.Empty(t, up)

	_, err = f.p.LayerAncestors(domain.PtrFromKey[domain.Layer](99))
	assert.ErrorIs(t, err, domain.ErrStaleHandle)
}

func TestWalk(t *testing.T) {
	f := newFixture(t)
	var seen []domain.AnyPtr
	f.p.Walk(f.p.RootFolder(), func(a domain.AnyPtr) bool {
		seen = append(seen, a)
		return true
	})
	assert.Len(t, seen, f.p.ObjectCount())
	assert.Equal(t, domain.Erase(f.p.RootFolder()), seen[0])
	assert.Equal(t, domain.Erase(f.scene), seen[1])

	var n int
	f.p.Walk(f.p.RootFolder(), func(a domain.AnyPtr) bool {
		n++
		return a.Kind != domain.KindGraphic
	})
	assert.Equal(t, 3, n, "walk must stop at the first graphic")
}
