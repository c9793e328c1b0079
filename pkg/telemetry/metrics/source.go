package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/provconf/pkg/config"
)

// SourceMetrics tracks document reads and watch mode revalidations.
type SourceMetrics struct {
	documentsLoaded *prometheus.CounterVec
	reloadsTotal    *prometheus.CounterVec
	lastReload      prometheus.Gauge
}

// NewSourceMetrics creates and registers source metrics with the provided registry.
func NewSourceMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *SourceMetrics {
	sm := &SourceMetrics{
		documentsLoaded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "documents_loaded_total",
				Help:      "Total number of source documents read",
			},
			[]string{"format", "result"},
		),

		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watch_reloads_total",
				Help:      "Total number of watch mode revalidations",
			},
			[]string{"result"},
		),

		lastReload: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "last_reload_timestamp_seconds",
				Help:      "Unix time of the last watch mode revalidation",
			},
		),
	}

	registry.MustRegister(sm.documentsLoaded, sm.reloadsTotal, sm.lastReload)
	return sm
}

// RecordLoad counts one document read.
func (sm *SourceMetrics) RecordLoad(format string, ok bool) {
	sm.documentsLoaded.WithLabelValues(format, result(ok)).Inc()
}

// RecordReload counts one revalidation finished at now.
func (sm *SourceMetrics) RecordReload(ok bool, now time.Time) {
	sm.reloadsTotal.WithLabelValues(result(ok)).Inc()
	sm.lastReload.Set(float64(now.Unix()))
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}
