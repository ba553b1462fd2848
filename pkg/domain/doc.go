/*
Package domain contains the core object model of a Cipollino project.

It defines typed handles, the per-type object Store, and the plain entity
structs (Folder, Graphic, Layer, Frame, Stroke, Palette, SoundInstance).
The package is kept free of I/O and of the Project aggregate so that every
other layer can depend on it.

# Handles

  - Ptr[T]: a comparable, non-owning reference. Lookups through a stale Ptr
    return "not found" instead of panicking.
  - Box[T]: the owning reference. Exactly one child collection holds it.
  - AnyPtr: a type-erased reference with a checked Cast back to Ptr[T].
  - LayerParent: the closed {Graphic, Layer} variant used by layers.
*/
package domain
