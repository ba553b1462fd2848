package project_test

import (
	"testing"

	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutline(t *testing.T) {
	f := newFixture(t)
	p := f.p
	_, ok := p.SetLayerShow(f.inner, false)
	require.True(t, ok)
	_, _, err := p.AddPalette(p.RootFolder(), "Skin", []domain.Color{domain.White})
	require.NoError(t, err)
	root, _ := p.Folders.GetMut(p.RootFolder())
	root.Audios = append(root.Audios, domain.FileRef{Path: "gone.wav", Hash: "x"})

	n, ok := p.Outline(p.RootFolder())
	require.True(t, ok)
	assert.Equal(t, "proj", n.Name)
	require.Len(t, n.Children, 3)

	scene := n.Children[0]
	assert.Equal(t, "folder", scene.Kind)
	walk := scene.Children[0]
	assert.Equal(t, "Walk", walk.Name)
	assert.Equal(t, "100 frames, 1920x1080", walk.Detail)
	require.Len(t, walk.Children, 2)
	assert.Equal(t, "animation, 1 frames, 3 strokes", walk.Children[0].Detail)
	assert.Equal(t, "animation, hidden", walk.Children[1].Children[0].Detail)

	assert.Equal(t, "1 colors", n.Children[1].Detail)
	assert.Equal(t, "audio", n.Children[2].Kind)
	assert.Equal(t, "missing", n.Children[2].Detail)

	_, ok = p.Outline(domain.PtrFromKey[domain.Folder](404))
	assert.False(t, ok)
}
