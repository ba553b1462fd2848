package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/cipollino/internal/presentation/graph"
	"github.com/aretw0/cipollino/pkg/project"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	root := project.Node{Kind: "folder", Key: 1, Name: "demo", Children: []project.Node{
		{Kind: "graphic", Key: 2, Name: `Walk "cycle"`, Children: []project.Node{
			{Kind: "layer", Key: 7, Name: "ink"},
		}},
		{Kind: "palette", Key: 3, Name: "Skin"},
		{Kind: "audio", Name: "sfx/boop.mp3"},
		{Kind: "audio", Name: "gone.wav", Detail: "missing"},
	}}

	out := graph.GenerateMermaid(root, &graph.Overlay{Current: graph.NodeID("graphic", 2)})

	for _, want := range []string{
		"graph TD\n",
		`folder_1["demo"]`,
		`graphic_2(("Walk 'cycle'"))`,
		`layer_7[["ink"]]`,
		`palette_3[/"Skin"/]`,
		`audio_1{{"sfx/boop.mp3"}}`,
		"folder_1 --> graphic_2",
		"graphic_2 --> layer_7",
		"folder_1 -.-> audio_2",
		"class audio_2 missing;",
		"class graphic_2 current;",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, graph.GenerateMermaid(root, nil), "class graphic_2 current")
	assert.Equal(t, 1, strings.Count(out, "classDef missing"))
}
