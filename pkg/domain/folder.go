package domain

// Folder groups assets the way a filesystem directory does. The root folder
// has a null Parent and maps to the project directory itself.
type Folder struct {
	Name   string
	Parent Ptr[Folder]

	Graphics []Box[Graphic]
	Palettes []Box[Palette]
	Audios   []FileRef
	Folders  []Box[Folder]
}

func (Folder) Kind() Kind { return KindFolder }

// NewFolder returns a folder with the default name under parent.
func NewFolder(parent Ptr[Folder]) Folder {
	return Folder{
		Name:   "Folder",
		Parent: parent,
	}
}

func (f *Folder) AssetName() string         { return f.Name }
func (f *Folder) SetAssetName(name string)  { f.Name = name }
func (Folder) Extension() string            { return "" }
func (Folder) Icon() string                 { return IconFolder }
func (f *Folder) ParentFolder() Ptr[Folder] { return f.Parent }
