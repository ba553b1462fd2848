package domain

import "errors"

// ErrStaleHandle is returned when an operation targets an object that no
// longer exists (or never existed) in its store.
var ErrStaleHandle = errors.New("stale handle")

// ErrCycle is returned when a transfer would make an object its own ancestor.
var ErrCycle = errors.New("transfer would create a parent cycle")

// ErrCorruptHierarchy is returned when an ancestor walk does not terminate
// within the number of live objects, i.e. the graph already holds a cycle.
var ErrCorruptHierarchy = errors.New("corrupt hierarchy")

// ErrUnknownExtension is returned when a file cannot be mapped to an asset codec.
var ErrUnknownExtension = errors.New("unknown file extension")

// ErrProjectNotFound is returned when a project path does not exist.
var ErrProjectNotFound = errors.New("project not found")

// ErrRootFolder is returned when an edit would delete or re-parent the root folder.
var ErrRootFolder = errors.New("root folder cannot be removed or moved")
