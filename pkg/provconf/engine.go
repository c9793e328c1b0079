package provconf

import (
	"log/slog"
	"time"

	"mercator-hq/provconf/pkg/document"
	"mercator-hq/provconf/pkg/errors"
	"mercator-hq/provconf/pkg/fields"
	"mercator-hq/provconf/pkg/format"
	"mercator-hq/provconf/pkg/schema"
	"mercator-hq/provconf/pkg/telemetry/metrics"
	"mercator-hq/provconf/pkg/validator"
)

// Options configures an Engine. Every field is optional.
type Options struct {
	// CurrentVersion is the supported document schema version.
	// Default: document.CurrentSchemaVersion
	CurrentVersion string

	// Formatter renders errors for Format and CheckFile.
	// Default: production mode
	Formatter *format.Formatter

	// Logger receives one debug record per validation call.
	Logger *slog.Logger

	// Metrics records every validation call when set.
	Metrics *metrics.Collector
}

// Engine validates declarations, values and documents. It is safe for
// concurrent use.
type Engine struct {
	checker   *document.Checker
	formatter *format.Formatter
	logger    *slog.Logger
	metrics   *metrics.Collector
}

// New creates an Engine, filling in defaults.
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Formatter == nil {
		opts.Formatter = format.New(format.Config{})
	}
	return &Engine{
		checker: document.NewChecker(document.CheckerConfig{
			CurrentVersion: opts.CurrentVersion,
			Logger:         opts.Logger,
		}),
		formatter: opts.Formatter,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
	}
}

// Formatter returns the engine's formatter.
func (e *Engine) Formatter() *format.Formatter {
	return e.formatter
}

// CurrentVersion returns the supported document schema version.
func (e *Engine) CurrentVersion() string {
	return e.checker.CurrentVersion()
}

// ValidateField checks one untyped field declaration.
func (e *Engine) ValidateField(raw any) (fields.FieldDeclaration, errors.Result) {
	start := time.Now()
	decl, issues := schema.ValidateField(raw)
	result := errors.NewResult(schema.ToValidationErrors(issues))
	e.record(metrics.TargetField, "", result, start)
	if !result.Valid {
		return nil, result
	}
	return decl, result
}

// ValidateProvider checks one untyped provider declaration, including every
// field it declares.
func (e *Engine) ValidateProvider(raw any) (*fields.ProviderDeclaration, errors.Result) {
	start := time.Now()
	provider, issues := schema.ValidateProvider(raw)
	result := errors.NewResult(schema.ToValidationErrors(issues))

	providerID := ""
	if provider != nil {
		providerID = provider.ID
	}
	e.record(metrics.TargetProvider, providerID, result, start)
	return provider, result
}

// ValidateConfigurationValues checks a complete set of values: every present
// value is checked and every required field must be present.
func (e *Engine) ValidateConfigurationValues(values fields.Values, decls []fields.FieldDeclaration) errors.Result {
	start := time.Now()
	result := validator.Validate(values, decls)
	e.record(metrics.TargetConfiguration, "", result, start)
	return result
}

// ValidatePartialConfigurationValues checks only the values present.
func (e *Engine) ValidatePartialConfigurationValues(values fields.Values, decls []fields.FieldDeclaration) errors.Result {
	start := time.Now()
	result := validator.ValidatePartial(values, decls)
	e.record(metrics.TargetPartialConfiguration, "", result, start)
	return result
}

// ValidateProviderValues checks values against provider's fields. It is
// ValidateConfigurationValues, or ValidatePartialConfigurationValues when
// partial is set, recorded under the provider's id.
func (e *Engine) ValidateProviderValues(provider fields.ProviderDeclaration, values fields.Values, partial bool) errors.Result {
	start := time.Now()
	target := metrics.TargetConfiguration
	var result errors.Result
	if partial {
		target = metrics.TargetPartialConfiguration
		result = validator.ValidatePartial(values, provider.Fields())
	} else {
		result = validator.Validate(values, provider.Fields())
	}
	e.record(target, provider.ID, result, start)
	return result
}

// ValidateFile checks an untyped providers document tree.
func (e *Engine) ValidateFile(raw any) (*document.ProvidersDocument, errors.Result) {
	start := time.Now()
	doc, result := e.checker.Validate(raw)
	e.record(metrics.TargetDocument, "", result, start)
	return doc, result
}

// Format renders result with the engine's formatter. decls, when given,
// lets development mode keep values of non-secret fields only.
func (e *Engine) Format(result errors.Result, decls []fields.FieldDeclaration) errors.Result {
	if result.Valid {
		return result
	}
	return errors.NewResult(e.formatter.FormatErrors(result.Errors, decls))
}

func (e *Engine) record(target metrics.Target, providerID string, result errors.Result, start time.Time) {
	duration := time.Since(start)
	e.metrics.RecordValidation(target, providerID, result, duration)
	e.logger.Debug("validation finished",
		"target", string(target),
		"provider", providerID,
		"valid", result.Valid,
		"error_count", len(result.Errors),
		"duration", duration,
	)
}
