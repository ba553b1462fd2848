package persistence

import (
	"log/slog"
	"strings"

	"github.com/aretw0/cipollino/internal/logging"
	"github.com/aretw0/cipollino/pkg/domain"
)

// DescriptorName is the project descriptor file at the project root.
const DescriptorName = "proj.cip"

// DefaultAudioExtensions are the extensions registered as audio files.
var DefaultAudioExtensions = []string{"mp3", "wav", "ogg", "flac"}

type config struct {
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	prune     bool
	audioExts map[string]bool
}

// Option configures Save, Load and Import.
type Option func(*config)

// WithLogger sets the logger for per-file diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHooks registers lifecycle hooks fired for every file saved, loaded,
// failed or found missing.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// WithPrune makes Save remove graphic and palette files that the save did
// not write, e.g. left behind by a rename.
func WithPrune(prune bool) Option {
	return func(c *config) {
		c.prune = prune
	}
}

// WithAudioExtensions replaces the set of extensions loaded as audio.
// An empty list keeps the defaults.
func WithAudioExtensions(exts ...string) Option {
	return func(c *config) {
		if len(exts) == 0 {
			return
		}
		c.audioExts = extSet(exts)
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		logger:    logging.NewNop(),
		audioExts: extSet(DefaultAudioExtensions),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func extSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		set[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}
	return set
}
