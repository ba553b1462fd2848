package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunProjectStoreContract runs a suite of tests to verify that a
// ProjectStore implementation adheres to the interface contract.
func RunProjectStoreContract(t *testing.T, store ProjectStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		p := contractProject(t)
		_, err := store.Save(ctx, name, p)
		require.NoError(t, err, "Save should not return error")

		loaded, report, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		require.NotNil(t, report)
		assert.Empty(t, report.Errors)
		assert.Equal(t, p.ObjectCount(), loaded.ObjectCount())
		assert.Equal(t, float32(12), loaded.FPS)

		root, _ := loaded.Folders.Get(loaded.RootFolder())
		require.Len(t, root.Folders, 1)
		scene, _ := loaded.Folders.Get(root.Folders[0].Ptr())
		assert.Equal(t, "Scene", scene.Name)
		require.Len(t, scene.Graphics, 1)
		gfx, _ := loaded.Graphics.Get(scene.Graphics[0].Ptr())
		assert.Equal(t, "Walk", gfx.Name)
		require.Len(t, gfx.Layers, 2)
		ink, _ := loaded.Layers.Get(gfx.Layers[0].Ptr())
		assert.Equal(t, "ink", ink.Name)
		require.Len(t, ink.Frames, 1)
		frame, _ := loaded.Frames.Get(ink.Frames[0].Ptr())
		require.Len(t, frame.Strokes, 1)
		stroke, _ := loaded.Strokes.Get(frame.Strokes[0].Ptr())
		assert.Equal(t, float32(2), stroke.Radius)
		require.Len(t, root.Palettes, 1)
	})

	t.Run("Save replaces", func(t *testing.T) {
		p := contractProject(t)
		_, err := store.Save(ctx, name, p)
		require.NoError(t, err)

		root, _ := p.Folders.Get(p.RootFolder())
		_, err = p.DeletePalette(root.Palettes[0].Ptr())
		require.NoError(t, err)
		_, err = store.Save(ctx, name, p)
		require.NoError(t, err)

		loaded, _, err := store.Load(ctx, name)
		require.NoError(t, err)
		root, _ = loaded.Folders.Get(loaded.RootFolder())
		assert.Empty(t, root.Palettes, "a deleted asset must not come back")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, _, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		_, err := store.Save(ctx, name, contractProject(t))
		require.NoError(t, err)

		err = store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, _, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrProjectNotFound, "Load after Delete should return ErrProjectNotFound")
		assert.NoError(t, store.Delete(ctx, name), "Delete is idempotent")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		_, _ = store.Save(ctx, id1, contractProject(t))
		_, _ = store.Save(ctx, id2, contractProject(t))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
	})
}

func contractProject(t *testing.T) *project.Project {
	t.Helper()
	p := project.New("", project.WithFPS(12))
	scene, _, err := p.AddFolder(p.RootFolder(), "Scene")
	require.NoError(t, err)
	gfx, _, err := p.AddGraphic(scene.Ptr(), "Walk")
	require.NoError(t, err)
	ink, _, err := p.AddLayer(domain.GraphicParent(gfx.Ptr()), "ink", domain.LayerAnimation)
	require.NoError(t, err)
	_, _, err = p.AddLayer(domain.GraphicParent(gfx.Ptr()), "paper", domain.LayerAnimation)
	require.NoError(t, err)
	frame, _, err := p.AddFrame(ink.Ptr(), 0)
	require.NoError(t, err)
	s := domain.NewStroke(frame.Ptr())
	s.Radius = 2
	_, _, err = p.AddStroke(frame.Ptr(), s)
	require.NoError(t, err)
	_, _, err = p.AddPalette(p.RootFolder(), "Skin", []domain.Color{domain.Black})
	require.NoError(t, err)
	return p
}
