package persistence_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/persistence"
	"github.com/aretw0/cipollino/pkg/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImport_DeleteUndoKeepsIdentities(t *testing.T) {
	ctx := context.Background()

	// Run.cipgfx comes from another project, so its graphic and layer carry
	// the same on-disk keys as the first objects of any project.
	other := project.New(filepath.Join(t.TempDir(), "other"))
	run, _, err := other.AddGraphic(other.RootFolder(), "Run")
	require.NoError(t, err)
	_, _, err = other.AddLayer(domain.GraphicParent(run.Ptr()), "sketch", domain.LayerAnimation)
	require.NoError(t, err)
	_, err = persistence.Save(ctx, other)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(other.Dir, "Run.cipgfx"))
	require.NoError(t, err)
	incoming := filepath.Join(t.TempDir(), "Run.cipgfx")
	writeFile(t, incoming, data)

	p := project.New(filepath.Join(t.TempDir(), "proj"))
	_, err = persistence.Save(ctx, p)
	require.NoError(t, err)
	walk, _, err := p.AddGraphic(p.RootFolder(), "Walk")
	require.NoError(t, err)
	ink, _, err := p.AddLayer(domain.GraphicParent(walk.Ptr()), "ink", domain.LayerAnimation)
	require.NoError(t, err)
	require.Equal(t, run.Key(), walk.Key())

	del, err := p.DeleteGraphic(walk.Ptr())
	require.NoError(t, err)

	_, err = persistence.Import(ctx, p, incoming, p.RootFolder(), nil)
	require.NoError(t, err)
	root, _ := p.Folders.Get(p.RootFolder())
	require.Len(t, root.Graphics, 1)
	imported := root.Graphics[0].Ptr()
	assert.NotEqual(t, walk.Key(), imported.Key(), "a deleted key stays reserved for undo")

	del.Backward(p)

	root, _ = p.Folders.Get(p.RootFolder())
	assert.Len(t, root.Graphics, 2)

	g, ok := p.Graphics.Get(walk.Ptr())
	require.True(t, ok)
	assert.Equal(t, "Walk", g.Name)
	require.Len(t, g.Layers, 1)
	assert.Equal(t, ink.Ptr(), g.Layers[0].Ptr())
	layer, ok := p.Layers.Get(ink.Ptr())
	require.True(t, ok)
	assert.Equal(t, "ink", layer.Name)
	parent, _ := layer.Parent.Graphic()
	assert.Equal(t, walk.Ptr(), parent)

	gi, ok := p.Graphics.Get(imported)
	require.True(t, ok)
	assert.Equal(t, "Run", gi.Name)
	require.Len(t, gi.Layers, 1)
	sketch, _ := p.Layers.Get(gi.Layers[0].Ptr())
	assert.Equal(t, "sketch", sketch.Name)
	assert.NotEqual(t, ink.Ptr(), gi.Layers[0].Ptr())
}

func TestSave_DuplicateNameIsReported(t *testing.T) {
	ctx := context.Background()
	p := project.New(filepath.Join(t.TempDir(), "proj"))
	_, _, err := p.AddGraphic(p.RootFolder(), "A")
	require.NoError(t, err)
	b, _, err := p.AddGraphic(p.RootFolder(), "B")
	require.NoError(t, err)

	// Renames go through the collision rule, so force the clash directly.
	g, _ := p.Graphics.GetMut(b.Ptr())
	g.Name = "a"

	report, err := persistence.Save(ctx, p)
	require.NoError(t, err)
	require.Len(t, report.Errors, 1)
	assert.ErrorIs(t, report.Err(), persistence.ErrDuplicateName)
	assert.Equal(t, "a.cipgfx", report.Errors[0].Path)
	assert.Equal(t, []string{"A.cipgfx", persistence.DescriptorName}, report.Written)
}

func TestSave_RenameClashSurvivesReload(t *testing.T) {
	ctx := context.Background()
	p := project.New(filepath.Join(t.TempDir(), "proj"))
	_, _, err := p.AddGraphic(p.RootFolder(), "A")
	require.NoError(t, err)
	b, _, err := p.AddGraphic(p.RootFolder(), "B")
	require.NoError(t, err)
	_, ok := p.SetGraphicName(b.Ptr(), "A")
	require.True(t, ok)

	report, err := persistence.Save(ctx, p, persistence.WithPrune(true))
	require.NoError(t, err)
	require.NoError(t, report.Err())
	assert.ElementsMatch(t, []string{"A.cipgfx", "A (1).cipgfx", persistence.DescriptorName}, report.Written)

	loaded, _, err := persistence.Load(ctx, p.Dir)
	require.NoError(t, err)
	root, _ := loaded.Folders.Get(loaded.RootFolder())
	assert.Len(t, root.Graphics, 2)
}

func TestSave_PruneKeepsSkippedDuplicates(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "proj")
	src := project.New(dir)
	_, _, err := src.AddGraphic(src.RootFolder(), "Walk")
	require.NoError(t, err)
	_, err = persistence.Save(ctx, src)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "Walk.cipgfx"))
	require.NoError(t, err)
	writeFile(t, filepath.Join(dir, "walk.cipgfx"), data)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	if len(entries) < 3 {
		t.Skip("filesystem ignores case")
	}

	p, _, err := persistence.Load(ctx, dir)
	require.NoError(t, err)
	report, err := persistence.Save(ctx, p, persistence.WithPrune(true))
	require.NoError(t, err)
	assert.ErrorIs(t, report.Err(), persistence.ErrDuplicateName)
	assert.Empty(t, report.Pruned)
	assert.FileExists(t, filepath.Join(dir, "Walk.cipgfx"))
	assert.FileExists(t, filepath.Join(dir, "walk.cipgfx"))
}

func TestImport_AvoidsUnsavedSiblings(t *testing.T) {
	ctx := context.Background()
	p := sample(t)
	_, _, err := p.AddPalette(p.RootFolder(), "Walk", nil)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(p.Dir, "Walk.cippal"))

	data, err := os.ReadFile(filepath.Join(p.Dir, "Skin.cippal"))
	require.NoError(t, err)
	incoming := filepath.Join(t.TempDir(), "walk.cippal")
	writeFile(t, incoming, data)

	dest, err := persistence.Import(ctx, p, incoming, p.RootFolder(), nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(p.Dir, "walk (1).cippal"), dest)

	root, _ := p.Folders.Get(p.RootFolder())
	var names []string
	for _, b := range root.Palettes {
		pl, _ := p.Palettes.Get(b.Ptr())
		names = append(names, pl.Name)
	}
	assert.ElementsMatch(t, []string{"Skin", "Walk", "walk (1)"}, names)

	report, err := persistence.Save(ctx, p)
	require.NoError(t, err)
	assert.NoError(t, report.Err())
}

func TestFlush_PruneKeepsSkippedDuplicates(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "proj")
	src := project.New(dir)
	_, _, err := src.AddGraphic(src.RootFolder(), "Walk")
	require.NoError(t, err)
	_, err = persistence.Save(ctx, src)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "Walk.cipgfx"))
	require.NoError(t, err)
	writeFile(t, filepath.Join(dir, "walk.cipgfx"), data)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	if len(entries) < 3 {
		t.Skip("filesystem ignores case")
	}

	p, _, err := persistence.Load(ctx, dir)
	require.NoError(t, err)
	snap, encoded := persistence.Snapshot(ctx, p)
	assert.NotContains(t, snap, "walk.cipgfx")

	report, err := persistence.Flush(ctx, snap, encoded, dir, persistence.WithPrune(true))
	require.NoError(t, err)
	assert.ErrorIs(t, report.Err(), persistence.ErrDuplicateName)
	assert.Empty(t, report.Pruned)
	assert.FileExists(t, filepath.Join(dir, "walk.cipgfx"))
}
