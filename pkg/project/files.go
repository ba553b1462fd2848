package project

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
	"path/filepath"
	"sort"

	"github.com/aretw0/cipollino/pkg/domain"
)

// HashBytes returns the content hash used by FileRef.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FileList indexes content-addressed files twice: by project-relative path
// and by content hash. The same bytes reached through another path resolve
// to the same AudioFile.
type FileList struct {
	byHash map[string]*domain.AudioFile
	byPath map[string]string // path -> hash

	// expected holds references read from the project descriptor. They are
	// what the saved project pointed at, whether or not the files still exist.
	expected map[string]domain.FileRef
}

func NewFileList() *FileList {
	return &FileList{
		byHash:   make(map[string]*domain.AudioFile),
		byPath:   make(map[string]string),
		expected: make(map[string]domain.FileRef),
	}
}

// CleanPath normalises a relative path to the slash form used as index key.
func CleanPath(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// Register records a file found on disk and returns its reference.
func (l *FileList) Register(relPath string, data []byte) domain.FileRef {
	ref := domain.FileRef{Path: CleanPath(relPath), Hash: HashBytes(data)}
	l.byPath[ref.Path] = ref.Hash
	if f, ok := l.byHash[ref.Hash]; ok {
		// Same bytes under another name: keep the first path as canonical.
		return domain.FileRef{Path: ref.Path, Hash: f.Ref.Hash}
	}
	l.byHash[ref.Hash] = &domain.AudioFile{Ref: ref, Size: int64(len(data))}
	return ref
}

// Expect records a reference read from the descriptor.
func (l *FileList) Expect(ref domain.FileRef) {
	ref.Path = CleanPath(ref.Path)
	l.expected[ref.Path] = ref
}

// Expected returns the descriptor references sorted by path.
func (l *FileList) Expected() []domain.FileRef {
	out := make([]domain.FileRef, 0, len(l.expected))
	for _, ref := range l.expected {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// ByPath returns the reference currently registered at path.
func (l *FileList) ByPath(p string) (domain.FileRef, bool) {
	p = CleanPath(p)
	hash, ok := l.byPath[p]
	if !ok {
		return domain.FileRef{}, false
	}
	return domain.FileRef{Path: p, Hash: hash}, true
}

// ByHash returns the file with the given content hash.
func (l *FileList) ByHash(hash string) (*domain.AudioFile, bool) {
	f, ok := l.byHash[hash]
	return f, ok
}

// Resolve finds the file a reference points at: first by path (only if the
// bytes there still hash the same), then by hash alone, which covers
// renamed or moved files.
func (l *FileList) Resolve(ref domain.FileRef) (*domain.AudioFile, bool) {
	if hash, ok := l.byPath[CleanPath(ref.Path)]; ok && hash == ref.Hash {
		return l.byHash[hash], true
	}
	return l.ByHash(ref.Hash)
}

// Refs returns every registered path with its hash, sorted by path.
func (l *FileList) Refs() []domain.FileRef {
	out := make([]domain.FileRef, 0, len(l.byPath))
	for p, h := range l.byPath {
		out = append(out, domain.FileRef{Path: p, Hash: h})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Len returns the number of distinct files (by content).
func (l *FileList) Len() int {
	return len(l.byHash)
}
