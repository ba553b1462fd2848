package persistence_test

import (
	"context"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/aretw0/cipollino/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles_FS(t *testing.T) {
	files := persistence.Files{}
	require.NoError(t, files.MkdirAll("empty"))
	require.NoError(t, files.WriteFile("proj.cip", []byte("version: 1\n")))
	require.NoError(t, files.WriteFile("shots/Walk.cipgfx", []byte("kind: graphic\n")))
	require.NoError(t, files.WriteFile("shots/blank.txt", nil))

	require.NoError(t, fstest.TestFS(files, "proj.cip", "shots/Walk.cipgfx", "shots/blank.txt", "empty"))

	assert.True(t, files.IsDir("shots"), "parents are implied")
	assert.True(t, files.IsDir("empty"))
	assert.False(t, files.IsDir("proj.cip"))

	data, err := fs.ReadFile(files, "shots/blank.txt")
	require.NoError(t, err)
	assert.Empty(t, data)

	_, err = files.Open("missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	_, err = files.Open("../escape")
	assert.ErrorIs(t, err, fs.ErrInvalid)

	require.NoError(t, files.Remove("shots/Walk.cipgfx"))
	entries, err := fs.ReadDir(files, "shots")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "blank.txt", entries[0].Name())
}

func TestSnapshot_LoadsBack(t *testing.T) {
	ctx := context.Background()
	p := sample(t)

	snap, report := persistence.Snapshot(ctx, p)
	require.NoError(t, report.Err())
	assert.True(t, snap.IsDir("shots/Props"))
	assert.NotContains(t, snap, "sfx/boop.mp3", "audio is never encoded")
	require.NoError(t, snap.WriteFile("sfx/boop.mp3", boop))

	loaded, lr, err := persistence.LoadFS(ctx, snap, "snap")
	require.NoError(t, err)
	assert.True(t, lr.Clean())
	assert.Equal(t, shape(p), shape(loaded))
}
