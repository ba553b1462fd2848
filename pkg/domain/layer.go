package domain

// LayerType selects how a layer is interpreted by the renderer and mixer.
type LayerType string

const (
	LayerAnimation LayerType = "animation"
	LayerAudio     LayerType = "audio"
	LayerGroup     LayerType = "group"
)

// Valid reports whether t is one of the known layer types.
func (t LayerType) Valid() bool {
	switch t {
	case LayerAnimation, LayerAudio, LayerGroup:
		return true
	}
	return false
}

// Layer is a track inside a Graphic. Group layers nest other layers,
// audio layers carry sound instances.
type Layer struct {
	Parent LayerParent
	Name   string
	Show   bool
	Type   LayerType

	Frames []Box[Frame]
	Sounds []Box[SoundInstance]
	Layers []Box[Layer]
}

func (Layer) Kind() Kind { return KindLayer }

func NewLayer(parent LayerParent) Layer {
	return Layer{
		Parent: parent,
		Name:   "Layer",
		Show:   true,
		Type:   LayerAnimation,
	}
}
