package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/project"
	"github.com/google/uuid"
)

// Load reads the project stored in dir. dir may also name the proj.cip file
// itself. Only a missing or unreadable project root is returned as an
// error; everything else ends up in the report.
func Load(ctx context.Context, dir string, opts ...Option) (*project.Project, *LoadReport, error) {
	if filepath.Base(dir) == DescriptorName {
		if info, err := os.Stat(dir); err == nil && !info.IsDir() {
			dir = filepath.Dir(dir)
		}
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("failed to load %s: %w", dir, domain.ErrProjectNotFound)
		}
		return nil, nil, fmt.Errorf("failed to load %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("failed to load %s: not a directory", dir)
	}
	return LoadFS(ctx, os.DirFS(dir), dir, opts...)
}

// LoadFS reads a project from fsys, whose root is the project root. dir
// becomes the project's Dir and names its root folder.
func LoadFS(ctx context.Context, fsys fs.FS, dir string, opts ...Option) (*project.Project, *LoadReport, error) {
	report := &LoadReport{ID: uuid.NewString()}
	l := newLoader(fsys, newConfig(opts), report)
	l.logger = l.logger.With("load_id", report.ID)

	desc := DefaultDescriptor()
	data, err := fs.ReadFile(fsys, DescriptorName)
	if err == nil {
		desc, err = parseDescriptor(data)
	}
	if err != nil {
		l.fail(ctx, DescriptorName, "read", "descriptor", err)
	}

	p := project.New(dir, project.WithFPS(desc.FPS), project.WithSampleRate(desc.SampleRate))
	for _, ref := range desc.AudioFiles {
		p.AudioFiles.Expect(ref)
	}
	l.p = p

	l.dir(ctx, ".", p.RootFolder())
	if err := ctx.Err(); err != nil {
		return p, report, fmt.Errorf("failed to load %s: %w", dir, err)
	}
	l.resolve(ctx)
	l.logger.InfoContext(ctx, "project loaded",
		"dir", dir,
		"objects", p.ObjectCount(),
		"missing", len(report.Missing),
		"errors", len(report.Errors),
		"damaged", len(report.Damaged),
	)
	return p, report, nil
}

// LoadFile loads one file or directory below p.Dir into folder, the way the
// project load does for every entry it finds. Unknown extensions yield
// domain.ErrUnknownExtension.
func LoadFile(ctx context.Context, p *project.Project, file string, folder domain.Ptr[domain.Folder], report *LoadReport, opts ...Option) error {
	if p.Dir == "" {
		return ErrNoDirectory
	}
	if !p.Folders.Contains(folder) {
		return fmt.Errorf("failed to load %s: %w", file, domain.ErrStaleHandle)
	}
	rel := file
	if filepath.IsAbs(file) {
		var err error
		if rel, err = filepath.Rel(p.Dir, file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	rel = filepath.ToSlash(filepath.Clean(rel))
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return fmt.Errorf("failed to load %s: outside project directory %s", file, p.Dir)
	}

	fsys := os.DirFS(p.Dir)
	info, err := fs.Stat(fsys, rel)
	if err != nil {
		return &FileError{Path: rel, Op: "stat", Err: err}
	}
	l := newLoader(fsys, newConfig(opts), report)
	l.p = p
	return l.entry(ctx, rel, info.IsDir(), folder)
}

// LoadFileToRoot is LoadFile into the root folder.
func LoadFileToRoot(ctx context.Context, p *project.Project, file string, report *LoadReport, opts ...Option) error {
	return LoadFile(ctx, p, file, p.RootFolder(), report, opts...)
}

type loader struct {
	p      *project.Project
	fsys   fs.FS
	cfg    *config
	logger *slog.Logger
	report *LoadReport
}

func newLoader(fsys fs.FS, cfg *config, report *LoadReport) *loader {
	if report == nil {
		report = &LoadReport{}
	}
	return &loader{fsys: fsys, cfg: cfg, logger: cfg.logger, report: report}
}

func (l *loader) dir(ctx context.Context, dir string, folder domain.Ptr[domain.Folder]) {
	entries, err := fs.ReadDir(l.fsys, dir)
	if err != nil {
		l.fail(ctx, dir, "read", "folder", err)
		return
	}
	for _, e := range entries {
		if ctx.Err() != nil {
			return
		}
		if hidden(e.Name()) || (dir == "." && e.Name() == DescriptorName) {
			continue
		}
		// Unknown extensions are skipped; other failures are already reported.
		_ = l.entry(ctx, path.Join(dir, e.Name()), e.IsDir(), folder)
	}
}

func (l *loader) entry(ctx context.Context, name string, isDir bool, folder domain.Ptr[domain.Folder]) error {
	if isDir {
		sub, _, err := l.p.AddFolder(folder, path.Base(name))
		if err != nil {
			return err
		}
		l.dir(ctx, name, sub.Ptr())
		return nil
	}

	switch ext := extOf(name); {
	case ext == domain.ExtGraphic:
		return l.asset(ctx, name, domain.KindGraphic, folder)
	case ext == domain.ExtPalette:
		return l.asset(ctx, name, domain.KindPalette, folder)
	case l.cfg.audioExts[ext]:
		return l.audio(ctx, name, folder)
	default:
		return fmt.Errorf("failed to load %s: %w", name, domain.ErrUnknownExtension)
	}
}

func (l *loader) asset(ctx context.Context, name string, want domain.Kind, folder domain.Ptr[domain.Folder]) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return l.fail(ctx, name, "read", want.String(), err)
	}
	file, err := ParseAssetFile(data)
	if err != nil {
		return l.fail(ctx, name, "parse", want.String(), err)
	}
	if file.Kind != want.String() {
		return l.fail(ctx, name, "parse", want.String(), fmt.Errorf("holds a %s, expected a %s", file.Kind, want))
	}

	f, ok := l.p.Folders.GetMut(folder)
	if !ok {
		return l.fail(ctx, name, "load", want.String(), domain.ErrStaleHandle)
	}
	stem := strings.TrimSuffix(path.Base(name), path.Ext(name))
	d := newDecoder(l.p, file, name, l.report)

	switch want {
	case domain.KindGraphic:
		box, ok := d.graphic(file.Root, folder)
		if !ok {
			return l.fail(ctx, name, "decode", want.String(), errors.New("root object unreadable"))
		}
		g, _ := l.p.Graphics.GetMut(box.Ptr())
		g.Name = stem
		f.Graphics = append(f.Graphics, box)
	case domain.KindPalette:
		box, ok := d.palette(file.Root, folder)
		if !ok {
			return l.fail(ctx, name, "decode", want.String(), errors.New("root object unreadable"))
		}
		pl, _ := l.p.Palettes.GetMut(box.Ptr())
		pl.Name = stem
		f.Palettes = append(f.Palettes, box)
	}

	if n := d.tr.Remapped(); n > 0 {
		l.logger.DebugContext(ctx, "asset keys remapped", "path", name, "remapped", n)
	}
	l.cfg.hooks.EmitFile(ctx, domain.EventFileLoaded, name, want.String(), nil)
	return nil
}

func (l *loader) audio(ctx context.Context, name string, folder domain.Ptr[domain.Folder]) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return l.fail(ctx, name, "read", "audio", err)
	}
	f, ok := l.p.Folders.GetMut(folder)
	if !ok {
		return l.fail(ctx, name, "load", "audio", domain.ErrStaleHandle)
	}
	ref := l.p.AudioFiles.Register(name, data)
	f.Audios = append(f.Audios, ref)
	l.cfg.hooks.EmitFile(ctx, domain.EventFileLoaded, name, "audio", nil)
	return nil
}

// resolve checks every descriptor reference against the files found on disk.
func (l *loader) resolve(ctx context.Context) {
	for _, ref := range l.p.AudioFiles.Expected() {
		if _, ok := l.p.AudioFiles.Resolve(ref); ok {
			continue
		}
		_, changed := l.p.AudioFiles.ByPath(ref.Path)
		l.report.Missing = append(l.report.Missing, MissingFile{Ref: ref, Changed: changed})
		l.logger.WarnContext(ctx, "audio file missing", "path", ref.Path, "changed", changed)
		l.cfg.hooks.EmitFile(ctx, domain.EventFileMissing, ref.Path, "audio", nil)
	}
}

func (l *loader) fail(ctx context.Context, name, op, kind string, err error) error {
	l.report.fail(name, op, err)
	l.logger.WarnContext(ctx, "load failed", "path", name, "op", op, "error", err)
	l.cfg.hooks.EmitFile(ctx, domain.EventFileFailed, name, kind, err)
	return &FileError{Path: name, Op: op, Err: err}
}
