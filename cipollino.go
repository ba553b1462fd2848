package cipollino

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/cipollino/internal/logging"
	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/editor"
	"github.com/aretw0/cipollino/pkg/history"
	"github.com/aretw0/cipollino/pkg/persistence"
	"github.com/aretw0/cipollino/pkg/project"
)

// Version of the library and CLI.
const Version = "0.1.0"

// ErrProjectExists is returned by Create when dir already holds a project.
var ErrProjectExists = errors.New("project already exists")

// Editor is an open project together with its editing session.
type Editor struct {
	Session *editor.Shared
	// Report describes what went wrong while loading. Empty for Create.
	Report *persistence.LoadReport

	dir          string
	logger       *slog.Logger
	hooks        domain.LifecycleHooks
	historyLimit int
	persist      []persistence.Option
	projectOpts  []project.Option
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger shared by history and persistence.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks for history and files.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Editor) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithHistoryLimit caps the undo stack.
func WithHistoryLimit(n int) Option {
	return func(e *Editor) {
		e.historyLimit = n
	}
}

// WithPersistence passes extra options to every save and load.
func WithPersistence(opts ...persistence.Option) Option {
	return func(e *Editor) {
		e.persist = append(e.persist, opts...)
	}
}

// WithProjectOptions sets the settings of a project made by Create.
func WithProjectOptions(opts ...project.Option) Option {
	return func(e *Editor) {
		e.projectOpts = append(e.projectOpts, opts...)
	}
}

func newEditor(dir string, opts []Option) (*Editor, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	e := &Editor{dir: abs, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Editor) persistOpts() []persistence.Option {
	base := []persistence.Option{
		persistence.WithLogger(e.logger),
		persistence.WithHooks(e.hooks),
	}
	return append(base, e.persist...)
}

func (e *Editor) start(p *project.Project) {
	st := editor.NewState(p,
		history.WithLogger(e.logger),
		history.WithHooks(e.hooks),
		history.WithLimit(e.historyLimit),
	)
	e.Session = editor.NewShared(st)
}

// Open loads the project in dir. Problems with individual files end up in
// Editor.Report; only an unreadable project directory is an error.
func Open(ctx context.Context, dir string, opts ...Option) (*Editor, error) {
	e, err := newEditor(dir, opts)
	if err != nil {
		return nil, err
	}
	p, report, err := persistence.Load(ctx, e.dir, e.persistOpts()...)
	if err != nil {
		return nil, err
	}
	if !report.Clean() {
		e.logger.WarnContext(ctx, "project loaded with problems",
			"load_id", report.ID,
			"missing", len(report.Missing),
			"errors", len(report.Errors),
			"damaged", len(report.Damaged))
	}
	e.Report = report
	e.start(p)
	return e, nil
}

// Create makes a new empty project in dir and writes its descriptor.
func Create(ctx context.Context, dir string, opts ...Option) (*Editor, error) {
	e, err := newEditor(dir, opts)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(e.dir, persistence.DescriptorName)); err == nil {
		return nil, fmt.Errorf("failed to create %s: %w", e.dir, ErrProjectExists)
	}
	e.Report = &persistence.LoadReport{}
	e.start(project.New(e.dir, e.projectOpts...))
	report, err := e.Save(ctx)
	if err != nil {
		return nil, err
	}
	if err := report.Err(); err != nil {
		return nil, err
	}
	return e, nil
}

// Dir returns the absolute project directory.
func (e *Editor) Dir() string {
	return e.dir
}

// Save encodes the project under the session lock and writes it after
// releasing the lock.
func (e *Editor) Save(ctx context.Context) (*persistence.SaveReport, error) {
	var (
		snap    persistence.Files
		encoded *persistence.SaveReport
	)
	opts := e.persistOpts()
	e.Session.With(func(st *editor.State) {
		snap, encoded = persistence.Snapshot(ctx, st.Project, opts...)
	})
	return persistence.Flush(ctx, snap, encoded, e.dir, opts...)
}

// Import moves src into folder's directory and loads it. Only the decode
// runs under the session lock.
func (e *Editor) Import(ctx context.Context, src string, folder domain.Ptr[domain.Folder]) (string, error) {
	var (
		dir   string
		taken []string
		ok    bool
	)
	e.Session.With(func(st *editor.State) {
		dir, ok = st.Project.FolderPath(folder)
		taken = st.Project.SiblingNames(folder)
	})
	if !ok {
		return "", fmt.Errorf("failed to import %s: %w", src, domain.ErrStaleHandle)
	}
	dest, err := persistence.Place(src, dir, taken)
	if err != nil {
		return "", err
	}
	e.Session.With(func(st *editor.State) {
		err = persistence.LoadFile(ctx, st.Project, dest, folder, e.Report, e.persistOpts()...)
	})
	return dest, err
}
