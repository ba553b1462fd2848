package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aretw0/cipollino"
	httpAdapter "github.com/aretw0/cipollino/pkg/adapters/http"
	"github.com/aretw0/cipollino/pkg/observability"
	"github.com/aretw0/cipollino/pkg/persistence"
)

const shutdownTimeout = 5 * time.Second

// RunServe opens the project in o.Dir and serves its session over HTTP
// until ctx is cancelled.
func RunServe(ctx context.Context, o Options, addr string) error {
	o = o.withDefaults()
	metrics := observability.NewMetrics()
	streams := httpAdapter.NewStreamManager()

	opts := append(o.editorOptions(),
		cipollino.WithLifecycleHooks(metrics.Hooks()),
		cipollino.WithLifecycleHooks(streams.Hooks()),
	)
	ed, err := cipollino.Open(ctx, o.Dir, opts...)
	if err != nil {
		return err
	}

	handler := httpAdapter.NewHandler(ed.Session,
		httpAdapter.WithLogger(o.Logger),
		httpAdapter.WithStreams(streams),
		httpAdapter.WithMetrics(metrics.Handler()),
		httpAdapter.WithPersistence(o.Config.PersistenceOptions()...),
		httpAdapter.WithPersistence(
			persistence.WithLogger(o.Logger),
			persistence.WithHooks(metrics.Hooks()),
		),
	)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		o.Logger.Info("server starting", "addr", addr, "dir", ed.Dir())
		printSystemMessage(o.Out, "Serving %s on %s", ed.Dir(), addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			o.Logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			return srv.Close()
		}
		printSystemMessage(o.Out, "Server stopped")
		return nil
	}
}
