package persistence

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
)

// Sink receives the files of a save. Names are slash-separated and relative
// to the project root.
type Sink interface {
	MkdirAll(dir string) error
	WriteFile(name string, data []byte) error
	Remove(name string) error
}

// DirSink writes into a directory on the local filesystem.
type DirSink struct {
	Root string
}

func (s DirSink) native(name string) string {
	return filepath.Join(s.Root, filepath.FromSlash(path.Clean(name)))
}

func (s DirSink) MkdirAll(dir string) error {
	if err := os.MkdirAll(s.native(dir), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// WriteFile replaces name atomically: the data goes to a hidden temp file in
// the same directory, is synced, and is then renamed over the destination.
func (s DirSink) WriteFile(name string, data []byte) error {
	return writeAtomic(s.native(name), data)
}

func (s DirSink) Remove(name string) error {
	if err := os.Remove(s.native(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

func writeAtomic(dest string, data []byte) error {
	// Same directory so the rename stays on one filesystem. The leading dot
	// keeps a crashed save's leftovers out of the next load.
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tmp-"+filepath.Base(dest)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename does not replace an existing file on Windows.
	if _, err := os.Stat(dest); err == nil && runtime.GOOS == "windows" {
		if err := os.Remove(dest); err != nil {
			return fmt.Errorf("failed to remove existing file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
