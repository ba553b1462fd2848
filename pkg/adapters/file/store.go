package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/cipollino/pkg/persistence"
	"github.com/aretw0/cipollino/pkg/project"
)

// Store implements ports.ProjectStore on the local filesystem. Every
// project is a directory under BasePath.
type Store struct {
	BasePath string
	opts     []persistence.Option
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".cipollino/projects".
func New(basePath string, opts ...persistence.Option) *Store {
	if basePath == "" {
		basePath = filepath.Join(".cipollino", "projects")
	}
	return &Store{BasePath: basePath, opts: opts}
}

func (s *Store) dir(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid project name %q", name)
	}
	return filepath.Join(s.BasePath, name), nil
}

// Save writes the project tree. Asset files left over from an earlier save
// are pruned.
func (s *Store) Save(ctx context.Context, name string, p *project.Project) (*persistence.SaveReport, error) {
	dir, err := s.dir(name)
	if err != nil {
		return nil, err
	}
	sink := persistence.DirSink{Root: dir}
	if err := sink.MkdirAll("."); err != nil {
		return nil, fmt.Errorf("failed to ensure project directory: %w", err)
	}
	opts := append([]persistence.Option{persistence.WithPrune(true)}, s.opts...)
	report := persistence.SaveTo(ctx, p, sink, os.DirFS(dir), opts...)
	return report, report.Err()
}

// Load reads the project tree.
func (s *Store) Load(ctx context.Context, name string) (*project.Project, *persistence.LoadReport, error) {
	dir, err := s.dir(name)
	if err != nil {
		return nil, nil, err
	}
	return persistence.Load(ctx, dir, s.opts...)
}

// Delete removes the project directory.
func (s *Store) Delete(ctx context.Context, name string) error {
	dir, err := s.dir(name)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// List returns the directories under BasePath that hold a descriptor.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		desc := filepath.Join(s.BasePath, entry.Name(), persistence.DescriptorName)
		if _, err := os.Stat(desc); err == nil {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Exists reports whether a project is stored under name.
func (s *Store) Exists(name string) bool {
	dir, err := s.dir(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(filepath.Join(dir, persistence.DescriptorName))
	return err == nil
}
