package persistence

import (
	"fmt"

	"github.com/aretw0/cipollino/pkg/domain"
	"gopkg.in/yaml.v3"
)

// FormatVersion is written into every asset file. Newer files are still
// read: unknown fields are ignored.
const FormatVersion = 1

// Fields is the encoded payload of one object. Parent references are never
// stored; owned children are listed by on-disk key.
type Fields = map[string]any

// AssetFile is the container of one graphic or palette and its subtree.
type AssetFile struct {
	Version int                              `yaml:"version"`
	Kind    string                           `yaml:"kind"`
	Root    domain.Key                       `yaml:"root"`
	Objects map[string]map[domain.Key]Fields `yaml:"objects"`
}

func newAssetFile(kind domain.Kind, root domain.Key) *AssetFile {
	return &AssetFile{
		Version: FormatVersion,
		Kind:    kind.String(),
		Root:    root,
		Objects: make(map[string]map[domain.Key]Fields),
	}
}

func (f *AssetFile) put(kind domain.Kind, key domain.Key, fields Fields) {
	byKey, ok := f.Objects[kind.String()]
	if !ok {
		byKey = make(map[domain.Key]Fields)
		f.Objects[kind.String()] = byKey
	}
	byKey[key] = fields
}

func (f *AssetFile) get(kind domain.Kind, key domain.Key) (Fields, bool) {
	fields, ok := f.Objects[kind.String()][key]
	return fields, ok
}

// Marshal encodes the file as YAML.
func (f *AssetFile) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal asset file: %w", err)
	}
	return data, nil
}

// ParseAssetFile decodes an asset file and checks that its root object is
// present.
func ParseAssetFile(data []byte) (*AssetFile, error) {
	var f AssetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse asset file: %w", err)
	}
	kind, ok := domain.ParseKind(f.Kind)
	if !ok {
		return nil, fmt.Errorf("failed to parse asset file: unknown kind %q", f.Kind)
	}
	if _, ok := f.get(kind, f.Root); !ok {
		return nil, fmt.Errorf("failed to parse asset file: root %s#%d not found", kind, f.Root)
	}
	return &f, nil
}

// Translation maps on-disk keys to the keys objects actually got in memory
// during one file load.
type Translation struct {
	keys map[domain.Kind]map[domain.Key]domain.Key
}

func newTranslation() *Translation {
	return &Translation{keys: make(map[domain.Kind]map[domain.Key]domain.Key)}
}

// Lookup returns the in-memory key of an on-disk key.
func (t *Translation) Lookup(kind domain.Kind, disk domain.Key) (domain.Key, bool) {
	k, ok := t.keys[kind][disk]
	return k, ok
}

// Remapped counts the objects that could not keep their on-disk key.
func (t *Translation) Remapped() int {
	n := 0
	for _, byKey := range t.keys {
		for disk, mem := range byKey {
			if disk != mem {
				n++
			}
		}
	}
	return n
}

func (t *Translation) record(kind domain.Kind, disk, mem domain.Key) {
	byKey, ok := t.keys[kind]
	if !ok {
		byKey = make(map[domain.Key]domain.Key)
		t.keys[kind] = byKey
	}
	byKey[disk] = mem
}

// claim gives the object stored under disk its in-memory identity: the
// same key when it was never handed out, the store's next key otherwise. A placeholder is
// inserted right away so nested claims can never pick the same key. A disk
// key seen before in this file is refused, so one object is never owned
// twice.
func claim[T any, PT interface {
	*T
	domain.Object
}](t *Translation, s *domain.Store[T], disk domain.Key) (domain.Box[T], bool) {
	var zero T
	kind := PT(&zero).Kind()
	if _, seen := t.Lookup(kind, disk); seen {
		return domain.Box[T]{}, false
	}
	box, ok := s.Claim(disk, zero)
	if !ok {
		box = s.Add(zero)
	}
	t.record(kind, disk, box.Key())
	return box, true
}
