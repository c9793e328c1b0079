// Package config provides configuration management for the provconf tool.
//
// Configuration is read from a YAML file (provconf.yaml by default) with
// environment variable overrides:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("provconf.yaml")
//
// A missing file is not an error for Load, which falls back to the defaults
// so the CLI works without any configuration file.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention PROVCONF_SECTION_FIELD:
//
//   - PROVCONF_FORMAT_MODE overrides format.mode
//   - PROVCONF_FORMAT_MAX_ERROR_COUNT overrides format.max_error_count
//   - PROVCONF_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based configuration.
// Only this package reads the environment; the validation engine never does.
//
// # Configuration Precedence
//
//  1. Default values (defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Validation, which reports every invalid field at once
//
// # Example Configuration
//
//	format:
//	  mode: development
//	  max_error_count: 20
//
//	schema:
//	  current_version: "1.0.0"
//
//	watch:
//	  debounce: 250ms
//
//	telemetry:
//	  logging:
//	    level: debug
//	    format: console
//	  metrics:
//	    enabled: true
//	    textfile_path: /var/lib/node_exporter/provconf.prom
package config
