package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rickgao/verf-report/internal/health"
	"github.com/rickgao/verf-report/internal/model"
	"github.com/rickgao/verf-report/internal/version"
)

// Namespace prefixes every metric name.
const Namespace = "verf_report"

// Metrics holds the service collectors.
type Metrics struct {
	registry *prometheus.Registry

	queryDuration *prometheus.HistogramVec
	reports       *prometheus.CounterVec
	databaseUp    *prometheus.GaugeVec
	probeLatency  *prometheus.GaugeVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		queryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "query_duration_seconds",
			Help:      "Latency of report lookups against the external databases",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"source", "outcome"}),
		reports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "reports_total",
			Help:      "Reports generated, by summary status",
		}, []string{"status"}),
		databaseUp: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "database_up",
			Help:      "1 when the last liveness probe connected, 0 otherwise",
		}, []string{"database"}),
		probeLatency: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "database_probe_latency_seconds",
			Help:      "Latency of the last successful liveness probe",
		}, []string{"database"}),
	}

	factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "build_info",
		Help:      "Build information, constant 1",
	}, []string{"version", "commit"}).WithLabelValues(version.Version, version.Commit).Set(1)

	return m
}

// ObserveQuery records one lookup.
func (m *Metrics) ObserveQuery(source string, latencyMs int64, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.queryDuration.WithLabelValues(source, outcome).Observe(float64(latencyMs) / 1000)
}

// ObserveReport counts one generated report.
func (m *Metrics) ObserveReport(status model.Status) {
	m.reports.WithLabelValues(string(status)).Inc()
}

// ObserveHealth records the outcome of a health check.
func (m *Metrics) ObserveHealth(r health.Report) {
	for _, t := range r.Targets {
		if t.Connected {
			m.databaseUp.WithLabelValues(t.Key).Set(1)
			m.probeLatency.WithLabelValues(t.Key).Set(float64(t.LatencyMs) / 1000)
		} else {
			m.databaseUp.WithLabelValues(t.Key).Set(0)
		}
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
