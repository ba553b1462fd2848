package history

import (
	"context"
	"log/slog"

	"github.com/aretw0/cipollino/internal/logging"
	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/project"
)

// Manager holds the undo and redo stacks. It is not safe for concurrent use;
// callers share it under the same lock as the project it edits.
type Manager struct {
	undo []*project.Action
	redo []*project.Action

	limit  int
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for history events.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithHooks registers lifecycle hooks fired after every stack change.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = m.hooks.Merge(hooks)
	}
}

// WithLimit caps the undo stack. The oldest entries are dropped first.
// Zero means unbounded.
func WithLimit(n int) Option {
	return func(m *Manager) {
		if n >= 0 {
			m.limit = n
		}
	}
}

// NewManager creates an empty history.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Record pushes an action that has already been applied and clears the
// redo stack. Nil actions are ignored so callers can pass the result of a
// setter that found nothing to edit.
func (m *Manager) Record(ctx context.Context, a *project.Action) {
	if a == nil {
		return
	}
	m.undo = append(m.undo, a)
	if m.limit > 0 && len(m.undo) > m.limit {
		m.undo = append(m.undo[:0], m.undo[len(m.undo)-m.limit:]...)
	}
	m.redo = nil
	m.logger.DebugContext(ctx, "history record", "undo", len(m.undo))
	m.hooks.EmitHistory(ctx, domain.EventRecord, len(m.undo), len(m.redo))
}

// Undo reverts the most recent action. It reports false when there is
// nothing to undo.
func (m *Manager) Undo(ctx context.Context, p *project.Project) bool {
	if len(m.undo) == 0 {
		return false
	}
	a := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	a.Backward(p)
	m.redo = append(m.redo, a)
	m.logger.DebugContext(ctx, "history undo", "undo", len(m.undo), "redo", len(m.redo))
	m.hooks.EmitHistory(ctx, domain.EventUndo, len(m.undo), len(m.redo))
	return true
}

// Redo re-applies the most recently undone action.
func (m *Manager) Redo(ctx context.Context, p *project.Project) bool {
	if len(m.redo) == 0 {
		return false
	}
	a := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	a.Forward(p)
	m.undo = append(m.undo, a)
	m.logger.DebugContext(ctx, "history redo", "undo", len(m.undo), "redo", len(m.redo))
	m.hooks.EmitHistory(ctx, domain.EventRedo, len(m.undo), len(m.redo))
	return true
}

func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// Len returns the depth of the undo and redo stacks.
func (m *Manager) Len() (undo, redo int) {
	return len(m.undo), len(m.redo)
}

// Clear drops both stacks, e.g. after loading a different project.
func (m *Manager) Clear() {
	m.undo, m.redo = nil, nil
}
