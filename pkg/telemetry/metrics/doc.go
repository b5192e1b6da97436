// Package metrics provides Prometheus metrics for the trace query service.
//
// The metrics answer the operational questions the advisory engine exists
// for: how often do unsafe queries arrive (optimizations_total), how
// expensive does the estimator think the traffic is (estimate_score,
// estimated_duration_total), and how do the executed queries actually behave
// (queries_total, query_duration_seconds).
//
// # Basic Usage
//
//	registry := prometheus.NewRegistry()
//	qm := metrics.NewQueryMetrics(&cfg.Telemetry.Metrics, registry)
//
//	qm.RecordOptimizations(optimized.Optimizations)
//	qm.RecordQuery("success", elapsed)
//
//	mux.Handle(cfg.Telemetry.Metrics.Path, metrics.Handler(registry))
package metrics
