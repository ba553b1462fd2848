package domain

import "fmt"

// Key is the per-type identifier of an object inside its Store.
// The zero Key is reserved for the null handle.
type Key uint64

// Kind tags the concrete entity type behind a type-erased handle.
type Kind uint8

const (
	KindNone Kind = iota
	KindFolder
	KindGraphic
	KindLayer
	KindFrame
	KindStroke
	KindPalette
	KindSound
)

var kindNames = map[Kind]string{
	KindNone:    "none",
	KindFolder:  "folder",
	KindGraphic: "graphic",
	KindLayer:   "layer",
	KindFrame:   "frame",
	KindStroke:  "stroke",
	KindPalette: "palette",
	KindSound:   "sound",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s && k != KindNone {
			return k, true
		}
	}
	return KindNone, false
}

// Object is implemented by every entity that lives in a Store.
// Kind must be callable on the zero value.
type Object interface {
	Kind() Kind
}

// Ptr is a typed, non-owning handle to an object of type T.
// It is comparable and can be used as a map key.
type Ptr[T any] struct {
	key Key
}

// Null returns the null handle for T.
func Null[T any]() Ptr[T] {
	return Ptr[T]{}
}

// PtrFromKey builds a handle from a raw identifier.
// Only persistence code should need this.
func PtrFromKey[T any](key Key) Ptr[T] {
	return Ptr[T]{key: key}
}

// Key returns the raw identifier.
func (p Ptr[T]) Key() Key {
	return p.key
}

// IsNull reports whether the handle refers to no object.
func (p Ptr[T]) IsNull() bool {
	return p.key == 0
}

func (p Ptr[T]) String() string {
	var zero T
	if o, ok := any(&zero).(Object); ok {
		return fmt.Sprintf("%s#%d", o.Kind(), p.key)
	}
	return fmt.Sprintf("#%d", p.key)
}

// Box is the owning handle of an object. Exactly one child collection
// holds the Box of any live object.
type Box[T any] struct {
	ptr Ptr[T]
}

// Ptr returns the non-owning handle.
func (b Box[T]) Ptr() Ptr[T] {
	return b.ptr
}

// Key returns the raw identifier.
func (b Box[T]) Key() Key {
	return b.ptr.key
}

// AnyPtr is a type-erased handle used where the target type is only known
// at runtime (heterogeneous listings, sum-typed parents).
type AnyPtr struct {
	Kind Kind
	Key  Key
}

// Erase converts a typed handle into an AnyPtr.
func Erase[T any, PT interface {
	*T
	Object
}](p Ptr[T]) AnyPtr {
	return AnyPtr{Kind: kindOf[T, PT](), Key: p.key}
}

// Is reports whether the erased handle points to a T.
func Is[T any, PT interface {
	*T
	Object
}](p AnyPtr) bool {
	return p.Kind == kindOf[T, PT]()
}

// Cast converts an AnyPtr back into a typed handle.
// A mismatched cast is a programming error and panics.
func Cast[T any, PT interface {
	*T
	Object
}](p AnyPtr) Ptr[T] {
	if want := kindOf[T, PT](); p.Kind != want {
		panic(fmt.Sprintf("invalid ptr cast: %s to %s", p.Kind, want))
	}
	return Ptr[T]{key: p.Key}
}

func kindOf[T any, PT interface {
	*T
	Object
}]() Kind {
	var zero T
	return PT(&zero).Kind()
}

// IsNull reports whether the erased handle refers to no object.
func (p AnyPtr) IsNull() bool {
	return p.Key == 0
}

func (p AnyPtr) String() string {
	return fmt.Sprintf("%s#%d", p.Kind, p.Key)
}

// LayerParent is the closed set of things a Layer may hang from:
// a Graphic or another Layer.
type LayerParent struct {
	ptr AnyPtr
}

// GraphicParent places a layer directly under a graphic.
func GraphicParent(g Ptr[Graphic]) LayerParent {
	return LayerParent{ptr: AnyPtr{Kind: KindGraphic, Key: g.key}}
}

// LayerParentOf places a layer inside a group layer.
func LayerParentOf(l Ptr[Layer]) LayerParent {
	return LayerParent{ptr: AnyPtr{Kind: KindLayer, Key: l.key}}
}

// LayerParentFromAny narrows an AnyPtr. Panics if the kind can never be a
// layer parent.
func LayerParentFromAny(p AnyPtr) LayerParent {
	switch p.Kind {
	case KindGraphic, KindLayer:
		return LayerParent{ptr: p}
	default:
		panic(fmt.Sprintf("invalid ptr cast: %s is not a layer parent", p.Kind))
	}
}

// Graphic returns the parent graphic, if the parent is one.
func (lp LayerParent) Graphic() (Ptr[Graphic], bool) {
	if lp.ptr.Kind != KindGraphic {
		return Ptr[Graphic]{}, false
	}
	return Ptr[Graphic]{key: lp.ptr.Key}, true
}

// Layer returns the parent layer, if the parent is one.
func (lp LayerParent) Layer() (Ptr[Layer], bool) {
	if lp.ptr.Kind != KindLayer {
		return Ptr[Layer]{}, false
	}
	return Ptr[Layer]{key: lp.ptr.Key}, true
}

// Any returns the erased form.
func (lp LayerParent) Any() AnyPtr {
	return lp.ptr
}

func (lp LayerParent) IsNull() bool {
	return lp.ptr.Key == 0
}

func (lp LayerParent) String() string {
	return lp.ptr.String()
}
