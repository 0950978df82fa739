// Package metrics exposes Prometheus metrics for the report service.
//
// Metrics:
//   - verf_report_query_duration_seconds{source,outcome}: report lookup latency
//   - verf_report_reports_total{status}: reports generated, by summary status
//   - verf_report_database_up{database}: 1 when the last probe connected
//   - verf_report_database_probe_latency_seconds{database}: last successful probe latency
//   - verf_report_build_info{version,commit}: constant 1
//
// All collectors live on a private registry so tests and multiple instances do not
// collide on the global default registry.
package metrics
