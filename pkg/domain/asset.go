package domain

// File extensions of the typed asset files.
const (
	ExtGraphic = "cipgfx"
	ExtPalette = "cippal"
)

// Icon tags consumed by the UI.
const (
	IconFolder  = "folder"
	IconGraphic = "film-strip"
	IconPalette = "palette"
	IconAudio   = "music-note"
)

// Asset is implemented by entities that show up in folder listings and map
// to something on disk.
type Asset interface {
	Object
	AssetName() string
	SetAssetName(name string)
	Extension() string
	Icon() string
	ParentFolder() Ptr[Folder]
}

// AssetPtr is a type-erased handle restricted to asset kinds.
type AssetPtr struct {
	ptr AnyPtr
}

func FolderAsset(p Ptr[Folder]) AssetPtr { return AssetPtr{ptr: AnyPtr{Kind: KindFolder, Key: p.key}} }
func GraphicAsset(p Ptr[Graphic]) AssetPtr {
	return AssetPtr{ptr: AnyPtr{Kind: KindGraphic, Key: p.key}}
}
func PaletteAsset(p Ptr[Palette]) AssetPtr {
	return AssetPtr{ptr: AnyPtr{Kind: KindPalette, Key: p.key}}
}

// Any returns the erased form.
func (a AssetPtr) Any() AnyPtr { return a.ptr }

// Kind returns the asset's entity kind.
func (a AssetPtr) Kind() Kind { return a.ptr.Kind }

var (
	_ Asset = (*Folder)(nil)
	_ Asset = (*Graphic)(nil)
	_ Asset = (*Palette)(nil)
)
