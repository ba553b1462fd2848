package project

import (
	"path/filepath"

	"github.com/aretw0/cipollino/pkg/domain"
)

// Default project settings.
const (
	DefaultFPS        float32 = 24
	DefaultSampleRate float32 = 44100
)

// Project is the single aggregate that owns every object of a document.
// It is passed explicitly to every operation; nothing in this package keeps
// global state. A Project is not safe for concurrent use.
type Project struct {
	Folders  *domain.Store[domain.Folder]
	Graphics *domain.Store[domain.Graphic]
	Layers   *domain.Store[domain.Layer]
	Frames   *domain.Store[domain.Frame]
	Strokes  *domain.Store[domain.Stroke]
	Palettes *domain.Store[domain.Palette]
	Sounds   *domain.Store[domain.SoundInstance]

	// AudioFiles indexes externally stored audio by path and by content hash.
	AudioFiles *FileList

	Root domain.Box[domain.Folder]

	// Dir is the project root directory. It may be empty for a project that
	// was never saved.
	Dir        string
	FPS        float32
	SampleRate float32
}

// Option configures a new Project.
type Option func(*Project)

// WithFPS sets the frame rate.
func WithFPS(fps float32) Option {
	return func(p *Project) {
		if fps > 0 {
			p.FPS = fps
		}
	}
}

// WithSampleRate sets the audio sample rate.
func WithSampleRate(rate float32) Option {
	return func(p *Project) {
		if rate > 0 {
			p.SampleRate = rate
		}
	}
}

// New creates an empty project rooted at dir. The root folder is named
// after the directory.
func New(dir string, opts ...Option) *Project {
	p := &Project{
		Folders:    domain.NewStore[domain.Folder](),
		Graphics:   domain.NewStore[domain.Graphic](),
		Layers:     domain.NewStore[domain.Layer](),
		Frames:     domain.NewStore[domain.Frame](),
		Strokes:    domain.NewStore[domain.Stroke](),
		Palettes:   domain.NewStore[domain.Palette](),
		Sounds:     domain.NewStore[domain.SoundInstance](),
		AudioFiles: NewFileList(),
		Dir:        dir,
		FPS:        DefaultFPS,
		SampleRate: DefaultSampleRate,
	}
	for _, opt := range opts {
		opt(p)
	}

	root := domain.NewFolder(domain.Null[domain.Folder]())
	if dir != "" {
		root.Name = filepath.Base(dir)
	}
	p.Root = p.Folders.Add(root)
	return p
}

// RootFolder returns the non-owning handle of the root folder.
func (p *Project) RootFolder() domain.Ptr[domain.Folder] {
	return p.Root.Ptr()
}

// FrameLength returns the duration of one frame in seconds.
func (p *Project) FrameLength() float64 {
	return 1 / float64(p.FPS)
}

// FrameAtTime converts a playhead position in seconds to a frame index.
func (p *Project) FrameAtTime(seconds float64) int32 {
	if seconds < 0 {
		return 0
	}
	return int32(seconds * float64(p.FPS))
}

// ObjectCount returns the number of live objects across all stores.
func (p *Project) ObjectCount() int {
	return p.Folders.Len() + p.Graphics.Len() + p.Layers.Len() + p.Frames.Len() +
		p.Strokes.Len() + p.Palettes.Len() + p.Sounds.Len()
}

// store accessors shared by the generic helpers.
func folders(p *Project) *domain.Store[domain.Folder]       { return p.Folders }
func graphics(p *Project) *domain.Store[domain.Graphic]     { return p.Graphics }
func layers(p *Project) *domain.Store[domain.Layer]         { return p.Layers }
func frames(p *Project) *domain.Store[domain.Frame]         { return p.Frames }
func strokes(p *Project) *domain.Store[domain.Stroke]       { return p.Strokes }
func palettes(p *Project) *domain.Store[domain.Palette]     { return p.Palettes }
func sounds(p *Project) *domain.Store[domain.SoundInstance] { return p.Sounds }
