package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/project"
	"golang.org/x/term"
)

// SignalContext is cancelled by SIGINT or SIGTERM and remembers which one
// arrived, so the caller can tell an interrupt from a normal return.
type SignalContext struct {
	context.Context
	Cancel context.CancelFunc

	mu  sync.Mutex
	sig os.Signal
}

func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{Context: ctx, Cancel: cancel}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			sc.mu.Lock()
			sc.sig = sig
			sc.mu.Unlock()
			cancel()
		case <-ctx.Done():
		}
	}()
	return sc
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sig
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// isTerminal reports whether w is an interactive terminal. Anything that is
// not an *os.File (buffers in tests) counts as a pipe.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnHistory: func(ctx context.Context, e *domain.HistoryEvent) {
			logger.DebugContext(ctx, "history", "type", e.Type, "undo", e.UndoDepth, "redo", e.RedoDepth)
		},
		OnFile: func(ctx context.Context, e *domain.FileEvent) {
			if e.Error != nil {
				logger.DebugContext(ctx, "file", "type", e.Type, "path", e.Path, "kind", e.Kind, "err", e.Error)
				return
			}
			logger.DebugContext(ctx, "file", "type", e.Type, "path", e.Path, "kind", e.Kind)
		},
	}
}

// findFolder resolves a slash-separated folder path below the root.
// "" and "." name the root itself.
func findFolder(p *project.Project, path string) (domain.Ptr[domain.Folder], error) {
	cur := p.RootFolder()
	for _, name := range strings.Split(strings.Trim(path, "/"), "/") {
		if name == "" || name == "." {
			continue
		}
		folder, _ := p.Folders.Get(cur)
		next := domain.Null[domain.Folder]()
		for _, b := range folder.Folders {
			if sub, ok := p.Folders.Get(b.Ptr()); ok && sub.Name == name {
				next = b.Ptr()
				break
			}
		}
		if next.IsNull() {
			return next, fmt.Errorf("folder %q not found in %q", name, path)
		}
		cur = next
	}
	return cur, nil
}
