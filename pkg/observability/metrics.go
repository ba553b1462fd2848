package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cipollino"

// Metrics owns a private registry so several editors (or tests) in one
// process do not collide on the default one.
type Metrics struct {
	Registry *prometheus.Registry

	historyOps *prometheus.CounterVec
	undoDepth  prometheus.Gauge
	redoDepth  prometheus.Gauge
	fileOps    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		historyOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_operations_total",
			Help:      "Record, undo and redo operations applied to the project.",
		}, []string{"op"}),
		undoDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_undo_depth",
			Help:      "Actions available to undo.",
		}),
		redoDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_redo_depth",
			Help:      "Actions available to redo.",
		}),
		fileOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "file_events_total",
			Help:      "Files saved, loaded, failed or missing, by asset kind.",
		}, []string{"event", "kind"}),
	}
	m.Registry.MustRegister(m.historyOps, m.undoDepth, m.redoDepth, m.fileOps)
	return m
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnHistory: func(_ context.Context, e *domain.HistoryEvent) {
			m.historyOps.WithLabelValues(string(e.Type)).Inc()
			m.undoDepth.Set(float64(e.UndoDepth))
			m.redoDepth.Set(float64(e.RedoDepth))
		},
		OnFile: func(_ context.Context, e *domain.FileEvent) {
			m.fileOps.WithLabelValues(string(e.Type), e.Kind).Inc()
		},
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
