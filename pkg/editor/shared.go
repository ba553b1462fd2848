package editor

import (
	"context"
	"sync"

	"github.com/aretw0/cipollino/pkg/playback"
	"github.com/aretw0/cipollino/pkg/project"
)

// Shared guards a State with a single lock.
type Shared struct {
	mu    sync.Mutex
	state *State
}

func NewShared(s *State) *Shared {
	return &Shared{state: s}
}

// With runs fn with exclusive access to the state. fn must not retain the
// pointer or block on I/O.
func (s *Shared) With(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// Edit runs an operation against the project and records the resulting
// action. An operation that returns an error leaves history untouched.
func (s *Shared) Edit(ctx context.Context, op func(*project.Project) (*project.Action, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := op(s.state.Project)
	if err != nil {
		return err
	}
	s.state.Do(ctx, a)
	return nil
}

func (s *Shared) Undo(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Undo(ctx)
}

func (s *Shared) Redo(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Redo(ctx)
}

// Block is what the mixer needs to render n samples.
type Block struct {
	Frame  int32
	Voices []playback.Voice
}

// NextAudioBlock reports the voices under the playhead and, while playing,
// advances it by n samples. It returns an empty block when paused.
func (s *Shared) NextAudioBlock(n int) Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if !st.Playing {
		return Block{}
	}
	frame := st.Frame()
	b := Block{
		Frame:  frame,
		Voices: playback.ActiveSounds(st.Project, st.OpenGraphic, frame),
	}
	if rate := st.Project.SampleRate; rate > 0 {
		st.advance(float64(n) / float64(rate))
	}
	return b
}
