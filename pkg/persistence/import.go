package persistence

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/project"
)

// Import moves src into the directory of folder and loads it there. When
// the name is taken, on disk or by an unsaved sibling, the file becomes
// "name (n).ext" with the smallest free n. It returns the destination path.
func Import(ctx context.Context, p *project.Project, src string, folder domain.Ptr[domain.Folder], report *LoadReport, opts ...Option) (string, error) {
	if p.Dir == "" {
		return "", ErrNoDirectory
	}
	dir, ok := p.FolderPath(folder)
	if !ok {
		return "", fmt.Errorf("failed to import %s: %w", src, domain.ErrStaleHandle)
	}
	dest, err := Place(src, dir, p.SiblingNames(folder))
	if err != nil {
		return "", err
	}
	newConfig(opts).logger.DebugContext(ctx, "file imported", "src", src, "dest", dest)
	return dest, LoadFile(ctx, p, dest, folder, report, opts...)
}

// Place moves src into dir without loading it, renaming on collision like
// Import. taken lists names the project already uses in dir, usually
// Project.SiblingNames. Callers holding a project lock use it to keep the
// move outside.
func Place(src, dir string, taken []string) (string, error) {
	info, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("failed to import %s: %w", src, err)
	}
	dest := filepath.Join(dir, freeName(dir, filepath.Base(src), info.IsDir(), taken))
	if err := move(src, dest, info); err != nil {
		return "", fmt.Errorf("failed to move file: %w", err)
	}
	return dest, nil
}

// freeName picks the file name for name in dir. Entries already in dir and
// taken both count, compared without case. Files keep their extension and
// get the suffix on the stem.
func freeName(dir, name string, isDir bool, taken []string) string {
	used := append([]string(nil), taken...)
	if entries, err := os.ReadDir(dir); err == nil {
		for _, e := range entries {
			used = append(used, e.Name())
		}
	}
	if isDir {
		return domain.UniqueNameFold(name, used)
	}
	ext := filepath.Ext(name)
	stems := make([]string, 0, len(used))
	for _, u := range used {
		if strings.EqualFold(filepath.Ext(u), ext) {
			stems = append(stems, strings.TrimSuffix(u, filepath.Ext(u)))
		}
	}
	return domain.UniqueNameFold(strings.TrimSuffix(name, ext), stems) + ext
}

// move renames src to dest, falling back to copy and delete for regular
// files when the rename crosses filesystems.
func move(src, dest string, info os.FileInfo) error {
	err := os.Rename(src, dest)
	if err == nil || info.IsDir() {
		return err
	}
	if err := copyFile(src, dest, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dest string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return err
	}
	return out.Close()
}
