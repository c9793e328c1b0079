// Package telemetry groups the observability packages of provconf.
//
//   - logging: structured slog logging with secret redaction
//   - metrics: Prometheus counters and histograms for validation calls
//   - health: liveness and readiness of watched documents
//
// Library packages only ever receive a *slog.Logger and a
// *metrics.Collector; both are optional and default to no-ops.
package telemetry
