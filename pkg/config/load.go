package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "provconf.yaml"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values and validates the result. Environment
// variables are not consulted; use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}
	return finish(cfg)
}

// Load is LoadConfigWithEnvOverrides that tolerates a missing file: when
// path does not exist and optional is true, the defaults plus environment
// overrides are used.
func Load(path string, optional bool) (*Config, error) {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err == nil {
		return cfg, nil
	}
	if optional && errors.Is(err, fs.ErrNotExist) {
		return finish(Default())
	}
	return nil, err
}

func parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(cfg)
	return cfg, nil
}

func finish(cfg *Config) (*Config, error) {
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies PROVCONF_SECTION_FIELD overrides. A value that
// cannot be parsed for its field is reported as a FieldError.
func applyEnvOverrides(cfg *Config) error {
	var errs []FieldError

	str := func(name string, dst *string) {
		if val, ok := os.LookupEnv(name); ok && val != "" {
			*dst = val
		}
	}
	integer := func(name, field string, dst *int) {
		if val, ok := os.LookupEnv(name); ok && val != "" {
			i, err := strconv.Atoi(val)
			if err != nil {
				errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("%s: %q is not an integer", name, val)})
				return
			}
			*dst = i
		}
	}
	boolean := func(name, field string, dst *bool) {
		if val, ok := os.LookupEnv(name); ok && val != "" {
			b, err := strconv.ParseBool(val)
			if err != nil {
				errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("%s: %q is not a boolean", name, val)})
				return
			}
			*dst = b
		}
	}
	duration := func(name, field string, dst *time.Duration) {
		if val, ok := os.LookupEnv(name); ok && val != "" {
			d, err := time.ParseDuration(val)
			if err != nil {
				errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("%s: %q is not a duration", name, val)})
				return
			}
			*dst = d
		}
	}

	// Format overrides
	str("PROVCONF_FORMAT_MODE", &cfg.Format.Mode)
	integer("PROVCONF_FORMAT_MAX_ERROR_COUNT", "format.max_error_count", &cfg.Format.MaxErrorCount)

	// Schema overrides
	str("PROVCONF_SCHEMA_CURRENT_VERSION", &cfg.Schema.CurrentVersion)

	// Watch overrides
	duration("PROVCONF_WATCH_DEBOUNCE", "watch.debounce", &cfg.Watch.Debounce)
	boolean("PROVCONF_WATCH_SKIP_HIDDEN", "watch.skip_hidden", &cfg.Watch.SkipHidden)

	// Telemetry overrides
	str("PROVCONF_TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	str("PROVCONF_TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	boolean("PROVCONF_TELEMETRY_LOGGING_REDACT", "telemetry.logging.redact", &cfg.Telemetry.Logging.Redact)
	boolean("PROVCONF_TELEMETRY_METRICS_ENABLED", "telemetry.metrics.enabled", &cfg.Telemetry.Metrics.Enabled)
	str("PROVCONF_TELEMETRY_METRICS_TEXTFILE_PATH", &cfg.Telemetry.Metrics.TextfilePath)
	str("PROVCONF_TELEMETRY_METRICS_LISTEN_ADDRESS", &cfg.Telemetry.Metrics.ListenAddress)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
