package domain

// Color is a linear RGBA colour.
type Color [4]float32

var (
	Black = Color{0, 0, 0, 1}
	White = Color{1, 1, 1, 1}
)

// Palette is a named set of colours stored as its own asset file.
type Palette struct {
	Name   string
	Folder Ptr[Folder]
	Colors []Color
}

func (Palette) Kind() Kind { return KindPalette }

func NewPalette(folder Ptr[Folder]) Palette {
	return Palette{
		Name:   "Palette",
		Folder: folder,
	}
}

func (p *Palette) AssetName() string         { return p.Name }
func (p *Palette) SetAssetName(name string)  { p.Name = name }
func (Palette) Extension() string            { return ExtPalette }
func (Palette) Icon() string                 { return IconPalette }
func (p *Palette) ParentFolder() Ptr[Folder] { return p.Folder }
