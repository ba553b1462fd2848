package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/editor"
	"github.com/aretw0/cipollino/pkg/history"
	"github.com/aretw0/cipollino/pkg/observability"
	"github.com/aretw0/cipollino/pkg/persistence"
	"github.com/aretw0/cipollino/pkg/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	handler http.Handler
	shared  *editor.Shared
	streams *StreamManager
	dir     string
}

func newFixture(t *testing.T, dir string) fixture {
	t.Helper()
	streams := NewStreamManager()
	metrics := observability.NewMetrics()
	p := project.New(dir)
	st := editor.NewState(p, history.WithHooks(streams.Hooks()), history.WithHooks(metrics.Hooks()))
	shared := editor.NewShared(st)

	ctx := context.Background()
	require.NoError(t, shared.Edit(ctx, func(p *project.Project) (*project.Action, error) {
		_, a, err := p.AddGraphic(p.RootFolder(), "Walk")
		return a, err
	}))

	h := NewHandler(shared,
		WithStreams(streams),
		WithMetrics(metrics.Handler()),
		WithPersistence(persistence.WithPrune(true)),
	)
	return fixture{handler: h, shared: shared, streams: streams, dir: dir}
}

func (f fixture) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestTree(t *testing.T) {
	f := newFixture(t, filepath.Join(t.TempDir(), "demo"))
	w := f.do(t, http.MethodGet, "/tree")
	require.Equal(t, http.StatusOK, w.Code)

	var root project.Node
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &root))
	assert.Equal(t, "demo", root.Name)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "Walk", root.Children[0].Name)
	assert.Equal(t, "graphic", root.Children[0].Kind)
}

func TestUndoRedo(t *testing.T) {
	f := newFixture(t, "")

	var h HistoryResponse
	w := f.do(t, http.MethodPost, "/undo")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &h))
	assert.Equal(t, HistoryResponse{Undo: 0, Redo: 1, Applied: true}, h)

	assert.Equal(t, http.StatusConflict, f.do(t, http.MethodPost, "/undo").Code)

	w = f.do(t, http.MethodPost, "/redo")
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/history")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &h))
	assert.Equal(t, HistoryResponse{Undo: 1, Redo: 0}, h)

	assert.Equal(t, http.StatusMethodNotAllowed, f.do(t, http.MethodGet, "/undo").Code)

	w = f.do(t, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `cipollino_history_operations_total{op="undo"} 1`)
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	f := newFixture(t, dir)

	w := f.do(t, http.MethodPost, "/save")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp SaveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Walk.cipgfx", persistence.DescriptorName}, resp.Written)
	assert.FileExists(t, filepath.Join(dir, "Walk.cipgfx"))

	// A rename followed by a save prunes the old file.
	require.NoError(t, f.shared.Edit(context.Background(), func(p *project.Project) (*project.Action, error) {
		root, _ := p.Folders.Get(p.RootFolder())
		a, _ := p.SetGraphicName(root.Graphics[0].Ptr(), "Run")
		return a, nil
	}))
	w = f.do(t, http.MethodPost, "/save")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Walk.cipgfx"}, resp.Pruned)
	_, err := os.Stat(filepath.Join(dir, "Walk.cipgfx"))
	assert.True(t, os.IsNotExist(err))

	assert.Equal(t, http.StatusConflict, newFixture(t, "").do(t, http.MethodPost, "/save").Code)
}

func TestSave_ReportsBadNames(t *testing.T) {
	f := newFixture(t, filepath.Join(t.TempDir(), "demo"))
	require.NoError(t, f.shared.Edit(context.Background(), func(p *project.Project) (*project.Action, error) {
		_, a, err := p.AddPalette(p.RootFolder(), "a/b", nil)
		return a, err
	}))

	w := f.do(t, http.MethodPost, "/save")
	require.Equal(t, http.StatusMultiStatus, w.Code)
	var resp SaveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "invalid file name")
	assert.Contains(t, resp.Written, "Walk.cipgfx")
}

func TestInfo(t *testing.T) {
	f := newFixture(t, "")
	w := f.do(t, http.MethodGet, "/info")
	require.Equal(t, http.StatusOK, w.Code)
	var info map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "cipollino-http", info["app"])
	assert.EqualValues(t, 24, info["fps"])
	assert.JSONEq(t, `{"status":"ok"}`, f.do(t, http.MethodGet, "/health").Body.String())
}

func TestSubscribeEvents(t *testing.T) {
	f := newFixture(t, "")
	srv := httptest.NewServer(f.handler)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	next := func() string {
		for lines.Scan() {
			if line := lines.Text(); strings.HasPrefix(line, "data: ") {
				return strings.TrimPrefix(line, "data: ")
			}
		}
		return ""
	}
	// The ping is written after the subscription is registered.
	require.Equal(t, "connected", next())

	undo, err := srv.Client().Post(srv.URL+"/undo", "application/json", nil)
	require.NoError(t, err)
	undo.Body.Close()

	var e domain.HistoryEvent
	require.NoError(t, json.Unmarshal([]byte(next()), &e))
	assert.Equal(t, domain.EventUndo, e.Type)
	assert.Equal(t, 1, e.RedoDepth)
}
