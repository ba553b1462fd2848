package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRecord      EventType = "record"
	EventUndo        EventType = "undo"
	EventRedo        EventType = "redo"
	EventFileSaved   EventType = "file_saved"
	EventFileLoaded  EventType = "file_loaded"
	EventFileFailed  EventType = "file_failed"
	EventFileMissing EventType = "file_missing"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// HistoryEvent is emitted whenever the undo/redo stacks change.
type HistoryEvent struct {
	EventBase
	UndoDepth int `json:"undo_depth"`
	RedoDepth int `json:"redo_depth"`
}

// FileEvent is emitted for every file touched by save/load.
type FileEvent struct {
	EventBase
	Path  string `json:"path"`
	Kind  string `json:"kind"` // graphic, palette, audio, descriptor
	Error error  `json:"-"`
}

// LifecycleHooks defines callbacks for observability. Nil hooks are skipped.
type LifecycleHooks struct {
	OnHistory func(context.Context, *HistoryEvent)
	OnFile    func(context.Context, *FileEvent)
}

// EmitHistory calls OnHistory if set.
func (h LifecycleHooks) EmitHistory(ctx context.Context, t EventType, undo, redo int) {
	if h.OnHistory == nil {
		return
	}
	h.OnHistory(ctx, &HistoryEvent{
		EventBase: EventBase{Timestamp: time.Now(), Type: t},
		UndoDepth: undo,
		RedoDepth: redo,
	})
}

// EmitFile calls OnFile if set.
func (h LifecycleHooks) EmitFile(ctx context.Context, t EventType, path, kind string, err error) {
	if h.OnFile == nil {
		return
	}
	h.OnFile(ctx, &FileEvent{
		EventBase: EventBase{Timestamp: time.Now(), Type: t},
		Path:      path,
		Kind:      kind,
		Error:     err,
	})
}

// Merge returns hooks that call both h and other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnHistory: func(ctx context.Context, e *HistoryEvent) {
			if h.OnHistory != nil {
				h.OnHistory(ctx, e)
			}
			if other.OnHistory != nil {
				other.OnHistory(ctx, e)
			}
		},
		OnFile: func(ctx context.Context, e *FileEvent) {
			if h.OnFile != nil {
				h.OnFile(ctx, e)
			}
			if other.OnFile != nil {
				other.OnFile(ctx, e)
			}
		},
	}
}
