package config

import "time"

// Config is the root configuration structure for the provconf tool.
type Config struct {
	// Format controls how validation errors are rendered.
	Format FormatConfig `yaml:"format"`

	// Schema controls document version checks.
	Schema SchemaConfig `yaml:"schema"`

	// Watch controls `validate --watch`.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// FormatConfig contains error formatting configuration.
type FormatConfig struct {
	// Mode is "development" or "production".
	// Default: "production"
	Mode string `yaml:"mode"`

	// MaxErrorCount caps the number of reported errors.
	// Default: 10
	MaxErrorCount int `yaml:"max_error_count"`
}

// SchemaConfig contains document version configuration.
type SchemaConfig struct {
	// CurrentVersion is the schema version documents are checked against.
	// Default: "1.0.0"
	CurrentVersion string `yaml:"current_version"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the quiet period before a changed file is revalidated.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`

	// SkipHidden ignores dot files in watched directories.
	// Default: true
	SkipHidden bool `yaml:"skip_hidden"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "console"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	AddSource bool `yaml:"add_source"`

	// Redact masks API keys, passwords and secure-text values in logs.
	// Default: true
	Redact bool `yaml:"redact"`

	// RedactPatterns contains additional redaction patterns.
	RedactPatterns []RedactPattern `yaml:"redact_patterns"`
}

// RedactPattern defines a custom redaction pattern.
type RedactPattern struct {
	// Name is a descriptive name for the pattern.
	Name string `yaml:"name"`

	// Pattern is the regular expression to match.
	Pattern string `yaml:"pattern"`

	// Replacement is the string to replace matches with.
	Replacement string `yaml:"replacement"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are recorded.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "provconf"
	Namespace string `yaml:"namespace"`

	// Subsystem is the optional metric subsystem name.
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets defines histogram buckets for validation duration (seconds).
	DurationBuckets []float64 `yaml:"duration_buckets"`

	// TextfilePath is where metrics are written after a run, in the
	// node-exporter textfile format. Empty disables the export.
	TextfilePath string `yaml:"textfile_path"`

	// ListenAddress serves Path over HTTP while watching. Empty disables it.
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path of the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`
}
