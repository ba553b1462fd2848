package editor

import (
	"context"
	"errors"

	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/history"
	"github.com/aretw0/cipollino/pkg/project"
)

// ErrNoGraphic is returned by playback controls when no graphic is open.
var ErrNoGraphic = errors.New("no graphic open")

// State is the editing session. It is not safe for concurrent use; wrap it
// in Shared.
type State struct {
	Project *project.Project
	History *history.Manager

	// OpenGraphic is the graphic shown and played back. It may be null.
	OpenGraphic domain.Ptr[domain.Graphic]
	// Time is the playhead in seconds.
	Time    float64
	Playing bool
}

// NewState starts a session on p with an empty history.
func NewState(p *project.Project, opts ...history.Option) *State {
	return &State{
		Project: p,
		History: history.NewManager(opts...),
	}
}

// Frame returns the frame under the playhead.
func (s *State) Frame() int32 {
	return s.Project.FrameAtTime(s.Time)
}

// Do records an action that has already been applied to the project.
// A nil action (a setter that found nothing to change) is ignored.
func (s *State) Do(ctx context.Context, a *project.Action) {
	s.History.Record(ctx, a)
}

func (s *State) Undo(ctx context.Context) bool {
	return s.History.Undo(ctx, s.Project)
}

func (s *State) Redo(ctx context.Context) bool {
	return s.History.Redo(ctx, s.Project)
}

// Open selects the graphic to show and rewinds the playhead.
func (s *State) Open(g domain.Ptr[domain.Graphic]) bool {
	if !s.Project.Graphics.Contains(g) {
		return false
	}
	s.OpenGraphic = g
	s.Time = 0
	return true
}

// Replace swaps in another project, e.g. after loading. History entries of
// the old project would be meaningless and are dropped.
func (s *State) Replace(p *project.Project) {
	s.Project = p
	s.History.Clear()
	s.OpenGraphic = domain.Null[domain.Graphic]()
	s.Time = 0
	s.Playing = false
}

// SetPlaying starts or stops playback.
func (s *State) SetPlaying(play bool) error {
	if play && !s.Project.Graphics.Contains(s.OpenGraphic) {
		return ErrNoGraphic
	}
	s.Playing = play
	return nil
}

// advance moves the playhead by dt seconds, wrapping past the end of the
// open graphic.
func (s *State) advance(dt float64) {
	gfx, ok := s.Project.Graphics.Get(s.OpenGraphic)
	if !ok {
		s.Playing = false
		return
	}
	s.Time += dt
	if s.Time > float64(gfx.Length)*s.Project.FrameLength() {
		s.Time = 0
	}
}
