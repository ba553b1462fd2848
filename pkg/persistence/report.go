package persistence

import (
	"fmt"

	"github.com/aretw0/cipollino/pkg/domain"
)

// FileError names the file an I/O or format failure happened on.
type FileError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// MissingFile is a descriptor reference that matched nothing on disk.
// Changed is set when a file still exists at the path but its bytes no
// longer hash the same.
type MissingFile struct {
	Ref     domain.FileRef
	Changed bool
}

// DamagedField is a field that could not be decoded and kept its default.
type DamagedField struct {
	Path   string
	Object domain.AnyPtr
	Field  string
	Err    error
}

// LoadReport collects everything a load tolerated. It only grows.
type LoadReport struct {
	// ID correlates log lines of one load.
	ID      string
	Missing []MissingFile
	Errors  []FileError
	Damaged []DamagedField
}

// Warnings returns one user-facing line per unresolved external file.
func (r *LoadReport) Warnings() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.Missing))
	for _, m := range r.Missing {
		out = append(out, fmt.Sprintf("File '%s' missing.", m.Ref.Path))
	}
	return out
}

// Clean reports whether the load tolerated nothing at all.
func (r *LoadReport) Clean() bool {
	return r == nil || len(r.Missing)+len(r.Errors)+len(r.Damaged) == 0
}

func (r *LoadReport) fail(path, op string, err error) {
	if r != nil {
		r.Errors = append(r.Errors, FileError{Path: path, Op: op, Err: err})
	}
}

func (r *LoadReport) damage(path string, obj domain.AnyPtr, field string, err error) {
	if r != nil {
		r.Damaged = append(r.Damaged, DamagedField{Path: path, Object: obj, Field: field, Err: err})
	}
}

// SaveReport lists what a save wrote, removed and failed on. Paths are
// slash-separated and relative to the project root.
type SaveReport struct {
	Written []string
	Pruned  []string
	Errors  []FileError
}

// Err returns the first failure, if any.
func (r *SaveReport) Err() error {
	if r == nil || len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}
