package project_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRename_KeepsSiblingNamesUnique(t *testing.T) {
	f := newFixture(t)
	p := f.p
	run, _, err := p.AddGraphic(f.scene, "Run")
	require.NoError(t, err)

	before := dump(p)
	a, ok := p.SetGraphicName(run.Ptr(), "walk")
	require.True(t, ok)
	g, _ := p.Graphics.Get(run.Ptr())
	assert.Equal(t, "walk (1)", g.Name, "names differing only in case clash on disk")

	// Renaming to its own name is not a clash.
	_, ok = p.SetGraphicName(f.gfx, "Walk")
	require.True(t, ok)
	g, _ = p.Graphics.Get(f.gfx)
	assert.Equal(t, "Walk", g.Name)

	a.Backward(p)
	assert.Equal(t, before, dump(p))

	t.Run("palettes and folders", func(t *testing.T) {
		_, _, err := p.AddPalette(f.scene, "Skin", nil)
		require.NoError(t, err)
		other, _, err := p.AddPalette(f.scene, "Other", nil)
		require.NoError(t, err)
		_, ok := p.SetPaletteName(other.Ptr(), "Skin")
		require.True(t, ok)
		pl, _ := p.Palettes.Get(other.Ptr())
		assert.Equal(t, "Skin (1)", pl.Name)

		props, _, err := p.AddFolder(p.RootFolder(), "Props")
		require.NoError(t, err)
		_, ok = p.SetFolderName(props.Ptr(), "Scene")
		require.True(t, ok)
		folder, _ := p.Folders.Get(props.Ptr())
		assert.Equal(t, "Scene (1)", folder.Name)
	})

	t.Run("graphic and palette may share a name", func(t *testing.T) {
		pal, _, err := p.AddPalette(f.scene, "Walk", nil)
		require.NoError(t, err)
		pl, _ := p.Palettes.Get(pal.Ptr())
		assert.Equal(t, "Walk", pl.Name)
	})
}

func TestTransfer_RenamesOnClash(t *testing.T) {
	f := newFixture(t)
	p := f.p
	other, _, err := p.AddFolder(p.RootFolder(), "Other")
	require.NoError(t, err)
	walk, _, err := p.AddGraphic(other.Ptr(), "Walk")
	require.NoError(t, err)
	skin, _, err := p.AddPalette(other.Ptr(), "Skin", nil)
	require.NoError(t, err)
	_, _, err = p.AddPalette(f.scene, "skin", nil)
	require.NoError(t, err)
	nested, _, err := p.AddFolder(other.Ptr(), "Scene")
	require.NoError(t, err)

	before := dump(p)

	moveGfx, err := p.TransferGraphic(walk.Ptr(), f.scene)
	require.NoError(t, err)
	movePal, err := p.TransferPalette(skin.Ptr(), f.scene)
	require.NoError(t, err)
	moveFolder, err := p.TransferFolder(nested.Ptr(), p.RootFolder())
	require.NoError(t, err)

	g, _ := p.Graphics.Get(walk.Ptr())
	assert.Equal(t, "Walk (1)", g.Name)
	pl, _ := p.Palettes.Get(skin.Ptr())
	assert.Equal(t, "Skin (1)", pl.Name)
	folder, _ := p.Folders.Get(nested.Ptr())
	assert.Equal(t, "Scene (1)", folder.Name)
	assert.ElementsMatch(t,
		[]string{"Walk.cipgfx", "Walk (1).cipgfx", "skin.cippal", "Skin (1).cippal"},
		p.SiblingNames(f.scene))

	after := dump(p)
	moveFolder.Backward(p)
	movePal.Backward(p)
	moveGfx.Backward(p)
	assert.Equal(t, before, dump(p), "undo restores both the parent and the name")

	moveGfx.Forward(p)
	movePal.Forward(p)
	moveFolder.Forward(p)
	assert.Equal(t, after, dump(p))

	t.Run("no clash keeps the name", func(t *testing.T) {
		run, _, err := p.AddGraphic(other.Ptr(), "Run")
		require.NoError(t, err)
		_, err = p.TransferGraphic(run.Ptr(), f.scene)
		require.NoError(t, err)
		g, _ := p.Graphics.Get(run.Ptr())
		assert.Equal(t, "Run", g.Name)
		assert.Equal(t, f.scene, g.Folder)
	})

}
