package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/provconf/pkg/config"
	"mercator-hq/provconf/pkg/errors"
)

// Target names what a validation call checked.
type Target string

const (
	TargetField                Target = "field"
	TargetProvider             Target = "provider"
	TargetConfiguration        Target = "configuration"
	TargetPartialConfiguration Target = "partial_configuration"
	TargetDocument             Target = "document"
)

// Outcome labels.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
)

// DefaultMaxProviders bounds the provider label of provider_validations_total.
const DefaultMaxProviders = 1000

// Collector owns a private registry and every provconf metric.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	validationMetrics *ValidationMetrics
	sourceMetrics     *SourceMetrics

	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a metrics collector. A nil registry gets a fresh
// one; a nil cfg uses the configuration defaults.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if cfg == nil {
		cfg = &config.Default().Telemetry.Metrics
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = append([]float64(nil), config.DefaultDurationBuckets...)
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		validationMetrics:  NewValidationMetrics(cfg, registry),
		sourceMetrics:      NewSourceMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(DefaultMaxProviders),
	}
}

// Enabled reports whether recording is active.
func (c *Collector) Enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordValidation records one validation call. providerID may be empty.
//
// Example:
//
//	start := time.Now()
//	result := validator.Validate(values, decls)
//	collector.RecordValidation(metrics.TargetConfiguration, "openai", result, time.Since(start))
func (c *Collector) RecordValidation(target Target, providerID string, result errors.Result, duration time.Duration) {
	if !c.Enabled() {
		return
	}

	outcome := OutcomeValid
	if !result.Valid {
		outcome = OutcomeInvalid
	}

	c.validationMetrics.RecordValidation(target, outcome, duration)
	for _, err := range result.Errors {
		if err != nil {
			c.validationMetrics.RecordError(err.Code)
		}
	}

	if providerID != "" {
		if !c.cardinalityLimiter.Allow(fmt.Sprintf("provider:%s", providerID)) {
			providerID = "other"
		}
		c.validationMetrics.RecordProvider(providerID, outcome)
	}
}

// RecordDocumentLoad records reading one source document.
func (c *Collector) RecordDocumentLoad(format string, err error) {
	if !c.Enabled() {
		return
	}
	if format == "" {
		format = "unknown"
	}
	c.sourceMetrics.RecordLoad(format, err == nil)
}

// RecordReload records one watch mode revalidation.
func (c *Collector) RecordReload(success bool) {
	if !c.Enabled() {
		return
	}
	c.sourceMetrics.RecordReload(success, time.Now())
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label combinations per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow returns true if the label set already exists or if the limit has
// not been reached yet.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[labelSet]; exists {
		return true
	}
	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
