package domain

// Graphic is one animated clip. Its layers hold the actual animation.
type Graphic struct {
	Name   string
	Folder Ptr[Folder]

	// Length is the clip duration in frames.
	Length int32
	Clip   bool
	Width  uint32
	Height uint32

	Layers []Box[Layer]
}

func (Graphic) Kind() Kind { return KindGraphic }

// NewGraphic returns a 1920x1080, 100 frame graphic.
func NewGraphic(folder Ptr[Folder]) Graphic {
	return Graphic{
		Name:   "Graphic",
		Folder: folder,
		Length: 100,
		Width:  1920,
		Height: 1080,
	}
}

func (g *Graphic) AssetName() string         { return g.Name }
func (g *Graphic) SetAssetName(name string)  { g.Name = name }
func (Graphic) Extension() string            { return ExtGraphic }
func (Graphic) Icon() string                 { return IconGraphic }
func (g *Graphic) ParentFolder() Ptr[Folder] { return g.Folder }
