package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/persistence"
	"github.com/aretw0/cipollino/pkg/project"
)

// Store implements ports.ProjectStore in memory. Projects are kept in their
// encoded on-disk form, so a load goes through the same decoder as a real
// directory and never shares objects with the saved project.
// Safe for concurrent use.
type Store struct {
	data map[string]persistence.Files
	mu   sync.RWMutex
	opts []persistence.Option
}

// NewStore creates a new in-memory store.
func NewStore(opts ...persistence.Option) *Store {
	return &Store{
		data: make(map[string]persistence.Files),
		opts: opts,
	}
}

// Save encodes p into a fresh snapshot that replaces the previous one.
func (s *Store) Save(ctx context.Context, name string, p *project.Project) (*persistence.SaveReport, error) {
	snap, report := persistence.Snapshot(ctx, p, s.opts...)
	if err := report.Err(); err != nil {
		return report, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = snap
	return report, nil
}

// Load decodes the snapshot stored under name.
func (s *Store) Load(ctx context.Context, name string) (*project.Project, *persistence.LoadReport, error) {
	s.mu.RLock()
	snap, ok := s.data[name]
	s.mu.RUnlock()
	if !ok {
		return nil, nil, fmt.Errorf("failed to load %s: %w", name, domain.ErrProjectNotFound)
	}
	// Snapshots are never written after Save stores them.
	return persistence.LoadFS(ctx, snap, name, s.opts...)
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored names in order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Files returns the encoded files of a stored project, for inspection.
func (s *Store) Files(name string) (map[string][]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[name]
	if !ok {
		return nil, false
	}
	out := make(map[string][]byte, len(snap))
	for p, data := range snap {
		if data != nil {
			out[p] = append([]byte{}, data...)
		}
	}
	return out, true
}
