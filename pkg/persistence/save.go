package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/project"
)

// ErrNoDirectory is returned when saving a project that has no directory.
var ErrNoDirectory = errors.New("project has no directory")

// ErrInvalidName is reported for assets whose name cannot be a file name.
var ErrInvalidName = errors.New("invalid file name")

// ErrDuplicateName is reported for an asset whose file would overwrite one
// already written by the same save.
var ErrDuplicateName = errors.New("duplicate file name")

// Save writes p into p.Dir. Only a failure to create the project directory
// is returned as an error; per-file failures are in the report.
func Save(ctx context.Context, p *project.Project, opts ...Option) (*SaveReport, error) {
	if p.Dir == "" {
		return nil, ErrNoDirectory
	}
	sink := DirSink{Root: p.Dir}
	if err := sink.MkdirAll("."); err != nil {
		return nil, fmt.Errorf("failed to create project directory: %w", err)
	}
	return SaveTo(ctx, p, sink, os.DirFS(p.Dir), opts...), nil
}

// SaveTo writes p into sink. existing lists what the sink already holds and
// is only consulted when pruning; it may be nil.
func SaveTo(ctx context.Context, p *project.Project, sink Sink, existing fs.FS, opts ...Option) *SaveReport {
	c := newConfig(opts)
	s := &saver{
		p:       p,
		sink:    sink,
		cfg:     c,
		logger:  c.logger.With("project", p.Dir),
		report:  &SaveReport{},
		written: make(map[string]bool),
		targets: make(map[string]bool),
		keep:    make(map[string]bool),
	}
	s.folder(ctx, p.RootFolder(), ".")

	if data, err := describe(p).marshal(); err != nil {
		s.fail(ctx, DescriptorName, "encode", "descriptor", err)
	} else {
		s.write(ctx, DescriptorName, "descriptor", data)
	}

	if c.prune && existing != nil && ctx.Err() == nil {
		s.prune(ctx, existing)
	}
	return s.report
}

type saver struct {
	p       *project.Project
	sink    Sink
	cfg     *config
	logger  *slog.Logger
	report  *SaveReport
	written map[string]bool
	// targets holds the lower-cased paths claimed so far.
	targets map[string]bool
	// keep lists skipped duplicates, whose files prune must not touch.
	keep map[string]bool
}

// target claims name for one asset. A second asset on the same path, up
// to case, is reported and skipped.
func (s *saver) target(ctx context.Context, name, kind string) bool {
	key := strings.ToLower(name)
	if s.targets[key] {
		s.keep[name] = true
		s.fail(ctx, name, "save", kind, fmt.Errorf("%w: %q", ErrDuplicateName, name))
		return false
	}
	s.targets[key] = true
	return true
}

func (s *saver) folder(ctx context.Context, f domain.Ptr[domain.Folder], dir string) {
	if err := ctx.Err(); err != nil {
		s.fail(ctx, dir, "save", "folder", err)
		return
	}
	folder, ok := s.p.Folders.Get(f)
	if !ok {
		return
	}

	for _, b := range folder.Graphics {
		gfx, ok := s.p.Graphics.Get(b.Ptr())
		if !ok {
			continue
		}
		name, err := fileName(dir, gfx.Name, domain.ExtGraphic)
		if err != nil {
			s.fail(ctx, path.Join(dir, gfx.Name), "save", "graphic", err)
			continue
		}
		if !s.target(ctx, name, "graphic") {
			continue
		}
		file, _ := EncodeGraphic(s.p, b.Ptr())
		s.encode(ctx, name, "graphic", file)
	}

	for _, b := range folder.Palettes {
		pl, ok := s.p.Palettes.Get(b.Ptr())
		if !ok {
			continue
		}
		name, err := fileName(dir, pl.Name, domain.ExtPalette)
		if err != nil {
			s.fail(ctx, path.Join(dir, pl.Name), "save", "palette", err)
			continue
		}
		if !s.target(ctx, name, "palette") {
			continue
		}
		file, _ := EncodePalette(s.p, b.Ptr())
		s.encode(ctx, name, "palette", file)
	}

	for _, b := range folder.Folders {
		sub, ok := s.p.Folders.Get(b.Ptr())
		if !ok {
			continue
		}
		name, err := fileName(dir, sub.Name, "")
		if err != nil {
			s.fail(ctx, path.Join(dir, sub.Name), "save", "folder", err)
			continue
		}
		if !s.target(ctx, name, "folder") {
			continue
		}
		if err := s.sink.MkdirAll(name); err != nil {
			s.fail(ctx, name, "create", "folder", err)
			continue
		}
		s.folder(ctx, b.Ptr(), name)
	}
}

func (s *saver) encode(ctx context.Context, name, kind string, file *AssetFile) {
	data, err := file.Marshal()
	if err != nil {
		s.fail(ctx, name, "encode", kind, err)
		return
	}
	s.write(ctx, name, kind, data)
}

func (s *saver) write(ctx context.Context, name, kind string, data []byte) {
	if err := s.sink.WriteFile(name, data); err != nil {
		s.fail(ctx, name, "write", kind, err)
		return
	}
	s.written[name] = true
	s.report.Written = append(s.report.Written, name)
	s.logger.DebugContext(ctx, "file saved", "path", name)
	s.cfg.hooks.EmitFile(ctx, domain.EventFileSaved, name, kind, nil)
}

func (s *saver) fail(ctx context.Context, name, op, kind string, err error) {
	s.report.Errors = append(s.report.Errors, FileError{Path: name, Op: op, Err: err})
	s.logger.WarnContext(ctx, "save failed", "path", name, "op", op, "error", err)
	s.cfg.hooks.EmitFile(ctx, domain.EventFileFailed, name, kind, err)
}

// prune removes asset files the save did not write.
func (s *saver) prune(ctx context.Context, existing fs.FS) {
	var stale []string
	err := fs.WalkDir(existing, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if name != "." && hidden(name) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || s.written[name] || s.keep[name] {
			return nil
		}
		switch extOf(name) {
		case domain.ExtGraphic, domain.ExtPalette:
			stale = append(stale, name)
		}
		return nil
	})
	if err != nil {
		s.fail(ctx, ".", "prune", "folder", err)
	}
	for _, name := range stale {
		if err := s.sink.Remove(name); err != nil {
			s.fail(ctx, name, "remove", "asset", err)
			continue
		}
		s.report.Pruned = append(s.report.Pruned, name)
		s.logger.DebugContext(ctx, "file pruned", "path", name)
	}
}

// fileName joins an asset name and extension under dir. Names that would
// escape dir or vanish on the next load are refused.
func fileName(dir, name, ext string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || hidden(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if ext != "" {
		name += "." + ext
	}
	return path.Join(dir, name), nil
}

func hidden(name string) bool {
	return strings.HasPrefix(path.Base(name), ".")
}

func extOf(name string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
}
