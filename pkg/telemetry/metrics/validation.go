package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/provconf/pkg/config"
	"mercator-hq/provconf/pkg/errors"
)

// ValidationMetrics tracks validation calls and the errors they report.
type ValidationMetrics struct {
	validationsTotal *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	providerTotal    *prometheus.CounterVec
}

// NewValidationMetrics creates and registers validation metrics with the provided registry.
func NewValidationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ValidationMetrics {
	vm := &ValidationMetrics{
		validationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validations_total",
				Help:      "Total number of validation calls",
			},
			[]string{"target", "outcome"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validation_errors_total",
				Help:      "Total number of reported validation errors by code",
			},
			[]string{"code"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validation_duration_seconds",
				Help:      "Duration of validation calls in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"target"},
		),

		providerTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "provider_validations_total",
				Help:      "Total number of validation calls per provider",
			},
			[]string{"provider", "outcome"},
		),
	}

	registry.MustRegister(
		vm.validationsTotal,
		vm.errorsTotal,
		vm.duration,
		vm.providerTotal,
	)

	return vm
}

// RecordValidation counts one call and observes its duration.
func (vm *ValidationMetrics) RecordValidation(target Target, outcome string, duration time.Duration) {
	vm.validationsTotal.WithLabelValues(string(target), outcome).Inc()
	vm.duration.WithLabelValues(string(target)).Observe(duration.Seconds())
}

// RecordError counts one reported error.
func (vm *ValidationMetrics) RecordError(code errors.Code) {
	vm.errorsTotal.WithLabelValues(string(code)).Inc()
}

// RecordProvider counts one call for providerID.
func (vm *ValidationMetrics) RecordProvider(providerID, outcome string) {
	vm.providerTotal.WithLabelValues(providerID, outcome).Inc()
}
