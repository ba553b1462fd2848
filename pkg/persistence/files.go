package persistence

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// Files is an encoded project held in memory, keyed by slash-separated path
// relative to the project root. A nil value marks a directory; files always
// hold a non-nil slice, even when empty.
//
// Files implements fs.FS, so a snapshot can be read back with LoadFS.
// Parent directories of stored paths exist implicitly.
type Files map[string][]byte

// MkdirAll records dir. Parents are implied by the path.
func (m Files) MkdirAll(dir string) error {
	dir = path.Clean(dir)
	if dir == "." {
		return nil
	}
	if _, ok := m[dir]; !ok {
		m[dir] = nil
	}
	return nil
}

func (m Files) WriteFile(name string, data []byte) error {
	m[path.Clean(name)] = append([]byte{}, data...)
	return nil
}

func (m Files) Remove(name string) error {
	delete(m, path.Clean(name))
	return nil
}

// IsDir reports whether name is a directory, stored or implied.
func (m Files) IsDir(name string) bool {
	if name == "." {
		return true
	}
	if data, ok := m[name]; ok {
		return data == nil
	}
	prefix := name + "/"
	for p := range m {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func (m Files) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	if data, ok := m[name]; ok && data != nil {
		return &memFile{info: memInfo{name: path.Base(name), size: int64(len(data))}, r: bytes.NewReader(data)}, nil
	}
	if !m.IsDir(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	entries, _ := m.ReadDir(name)
	return &memDir{info: memInfo{name: path.Base(name), dir: true}, entries: entries}, nil
}

func (m Files) ReadFile(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	data, ok := m[name]
	if !ok || data == nil {
		err := fs.ErrNotExist
		if m.IsDir(name) {
			err = fs.ErrInvalid
		}
		return nil, &fs.PathError{Op: "read", Path: name, Err: err}
	}
	return append([]byte{}, data...), nil
}

// ReadDir lists the direct children of name, sorted by name.
func (m Files) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}
	if !m.IsDir(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	prefix := name + "/"
	if name == "." {
		prefix = ""
	}
	children := make(map[string]memInfo)
	for p, data := range m {
		rest, ok := strings.CutPrefix(p, prefix)
		if !ok || rest == "" {
			continue
		}
		if child, _, deeper := strings.Cut(rest, "/"); deeper {
			children[child] = memInfo{name: child, dir: true}
		} else if _, seen := children[child]; !seen {
			children[child] = memInfo{name: child, size: int64(len(data)), dir: data == nil}
		}
	}
	entries := make([]fs.DirEntry, 0, len(children))
	for _, info := range children {
		entries = append(entries, info)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

type memInfo struct {
	name string
	size int64
	dir  bool
}

func (i memInfo) Name() string { return i.name }
func (i memInfo) Size() int64  { return i.size }
func (i memInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0755
	}
	return 0644
}
func (i memInfo) ModTime() time.Time         { return time.Time{} }
func (i memInfo) IsDir() bool                { return i.dir }
func (i memInfo) Sys() any                   { return nil }
func (i memInfo) Type() fs.FileMode          { return i.Mode().Type() }
func (i memInfo) Info() (fs.FileInfo, error) { return i, nil }

type memFile struct {
	info memInfo
	r    *bytes.Reader
}

func (f *memFile) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *memFile) Read(b []byte) (int, error) { return f.r.Read(b) }
func (f *memFile) Close() error               { return nil }

type memDir struct {
	info    memInfo
	entries []fs.DirEntry
	offset  int
}

func (d *memDir) Stat() (fs.FileInfo, error) { return d.info, nil }
func (d *memDir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.info.name, Err: fs.ErrInvalid}
}
func (d *memDir) Close() error { return nil }

func (d *memDir) ReadDir(n int) ([]fs.DirEntry, error) {
	rest := d.entries[d.offset:]
	if n <= 0 {
		d.offset = len(d.entries)
		return rest, nil
	}
	if len(rest) == 0 {
		return nil, io.EOF
	}
	if n > len(rest) {
		n = len(rest)
	}
	d.offset += n
	return rest[:n], nil
}
