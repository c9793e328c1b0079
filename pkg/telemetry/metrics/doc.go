// Package metrics provides Prometheus metrics for provconf validation runs.
//
// # Metrics
//
//   - provconf_validations_total{target,outcome}: validation calls by
//     target (field, provider, configuration, partial_configuration,
//     document) and outcome (valid, invalid)
//   - provconf_validation_errors_total{code}: reported errors by code
//   - provconf_validation_duration_seconds{target}: validation latency
//   - provconf_provider_validations_total{provider,outcome}: per-provider
//     outcomes, with provider ids past the cardinality limit folded into
//     "other"
//   - provconf_documents_loaded_total{format,result}: source documents read
//   - provconf_watch_reloads_total{result}: watch mode revalidations
//   - provconf_last_reload_timestamp_seconds: time of the last revalidation
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordValidation(metrics.TargetDocument, "", result, time.Since(start))
//
//	// one-shot CLI runs export for the node-exporter textfile collector
//	if err := collector.WriteTextfile("/var/lib/node_exporter/provconf.prom"); err != nil {
//		return err
//	}
//
// Long-running watch mode can serve Handler instead.
package metrics
