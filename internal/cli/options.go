package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/cipollino"
	"github.com/aretw0/cipollino/internal/config"
	"github.com/aretw0/cipollino/internal/logging"
	"github.com/aretw0/cipollino/pkg/domain"
)

// Options is shared by every command.
type Options struct {
	Dir    string
	Config config.Config
	Logger *slog.Logger
	Out    io.Writer
	Err    io.Writer
	// Hooks are added to the ones every command installs.
	Hooks domain.LifecycleHooks
}

func (o Options) withDefaults() Options {
	if o.Dir == "" {
		o.Dir = "."
	}
	if o.Logger == nil {
		o.Logger = logging.NewNop()
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	return o
}

// editorOptions maps settings and flags onto the library.
func (o Options) editorOptions() []cipollino.Option {
	return []cipollino.Option{
		cipollino.WithLogger(o.Logger),
		cipollino.WithLifecycleHooks(createDebugHooks(o.Logger)),
		cipollino.WithLifecycleHooks(o.Hooks),
		cipollino.WithHistoryLimit(o.Config.HistoryLimit),
		cipollino.WithPersistence(o.Config.PersistenceOptions()...),
	}
}
