package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/cipollino"
	"github.com/aretw0/cipollino/internal/logging"
	"github.com/aretw0/cipollino/pkg/editor"
	"github.com/aretw0/cipollino/pkg/persistence"
	"github.com/go-chi/chi/v5"
)

// Server exposes a shared editing session over HTTP.
type Server struct {
	Editor  *editor.Shared
	Streams *StreamManager

	logger  *slog.Logger
	metrics http.Handler
	persist []persistence.Option
}

// Option configures the Server.
type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMetrics mounts h under /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithStreams shares a StreamManager whose hooks are already attached to
// the session's history.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) { s.Streams = sm }
}

// WithPersistence passes options through to every save.
func WithPersistence(opts ...persistence.Option) Option {
	return func(s *Server) { s.persist = append(s.persist, opts...) }
}

// NewHandler creates the HTTP handler for a session.
func NewHandler(ed *editor.Shared, opts ...Option) http.Handler {
	s := &Server{
		Editor: ed,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager()
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/tree", s.GetTree)
	r.Get("/history", s.GetHistory)
	r.Post("/undo", s.Undo)
	r.Post("/redo", s.Redo)
	r.Post("/save", s.Save)
	r.Get("/events", s.SubscribeEvents)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HistoryResponse is the body of /history, /undo and /redo.
type HistoryResponse struct {
	Undo    int  `json:"undo"`
	Redo    int  `json:"redo"`
	Applied bool `json:"applied,omitempty"`
}

// SaveResponse is the body of /save.
type SaveResponse struct {
	Written []string `json:"written"`
	Pruned  []string `json:"pruned,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"app":     "cipollino-http",
		"version": strings.TrimSpace(cipollino.Version),
	}
	s.Editor.With(func(st *editor.State) {
		resp["dir"] = st.Project.Dir
		resp["fps"] = st.Project.FPS
		resp["sample_rate"] = st.Project.SampleRate
		resp["objects"] = st.Project.ObjectCount()
	})
	s.writeJSON(w, http.StatusOK, resp)
}

// GetTree handles GET /tree.
func (s *Server) GetTree(w http.ResponseWriter, r *http.Request) {
	var (
		tree any
		ok   bool
	)
	s.Editor.With(func(st *editor.State) {
		tree, ok = st.Project.Outline(st.Project.RootFolder())
	})
	if !ok {
		http.Error(w, "Project has no root folder", http.StatusInternalServerError)
		s.logger.Error("GetTree: root folder missing")
		return
	}
	s.writeJSON(w, http.StatusOK, tree)
}

func (s *Server) history(applied bool) HistoryResponse {
	resp := HistoryResponse{Applied: applied}
	s.Editor.With(func(st *editor.State) {
		resp.Undo, resp.Redo = st.History.Len()
	})
	return resp
}

// GetHistory handles GET /history.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.history(false))
}

// Undo handles POST /undo. It answers 409 when there is nothing to undo.
func (s *Server) Undo(w http.ResponseWriter, r *http.Request) {
	if !s.Editor.Undo(r.Context()) {
		s.writeJSON(w, http.StatusConflict, s.history(false))
		return
	}
	s.writeJSON(w, http.StatusOK, s.history(true))
}

// Redo handles POST /redo.
func (s *Server) Redo(w http.ResponseWriter, r *http.Request) {
	if !s.Editor.Redo(r.Context()) {
		s.writeJSON(w, http.StatusConflict, s.history(false))
		return
	}
	s.writeJSON(w, http.StatusOK, s.history(true))
}

// Save handles POST /save. The project is encoded under the session lock
// and written after it is released.
func (s *Server) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		dir     string
		snap    persistence.Files
		encoded *persistence.SaveReport
	)
	s.Editor.With(func(st *editor.State) {
		dir = st.Project.Dir
		snap, encoded = persistence.Snapshot(ctx, st.Project, s.persist...)
	})

	written, err := persistence.Flush(ctx, snap, encoded, dir, s.persist...)
	if err != nil {
		s.saveError(w, err)
		return
	}

	resp := SaveResponse{Written: written.Written, Pruned: written.Pruned}
	for _, e := range written.Errors {
		resp.Errors = append(resp.Errors, e.Error())
	}
	status := http.StatusOK
	if len(resp.Errors) > 0 {
		status = http.StatusMultiStatus
		s.logger.Warn("Save finished with errors", "errors", len(resp.Errors))
	}
	s.Streams.Broadcast("save")
	s.writeJSON(w, status, resp)
}

func (s *Server) saveError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, persistence.ErrNoDirectory) {
		status = http.StatusConflict
	}
	http.Error(w, fmt.Sprintf("Save error: %v", err), status)
	s.logger.Error("Save failed", "error", err)
}
