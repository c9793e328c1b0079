package config

import "time"

// Default values for configuration fields.
const (
	DefaultFormatMode    = "production"
	DefaultMaxErrorCount = 10

	DefaultSchemaVersion = "1.0.0"

	DefaultWatchDebounce   = 100 * time.Millisecond
	DefaultWatchSkipHidden = true

	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "console"
	DefaultLoggingRedact = true

	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "provconf"
	DefaultMetricsPath      = "/metrics"
)

// DefaultDurationBuckets covers validation runs from 10µs to about 1s.
var DefaultDurationBuckets = []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}

// Default returns a configuration holding every default value.
func Default() *Config {
	cfg := &Config{
		Watch: WatchConfig{SkipHidden: DefaultWatchSkipHidden},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{Redact: DefaultLoggingRedact},
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets defaults for fields that have zero values.
// Boolean defaults are seeded by Default, since a zero bool cannot be told
// apart from an explicit false. ApplyDefaults is idempotent.
func ApplyDefaults(cfg *Config) {
	if cfg.Format.Mode == "" {
		cfg.Format.Mode = DefaultFormatMode
	}
	if cfg.Format.MaxErrorCount == 0 {
		cfg.Format.MaxErrorCount = DefaultMaxErrorCount
	}

	if cfg.Schema.CurrentVersion == "" {
		cfg.Schema.CurrentVersion = DefaultSchemaVersion
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}

	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if len(cfg.Telemetry.Metrics.DurationBuckets) == 0 {
		cfg.Telemetry.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}
}
