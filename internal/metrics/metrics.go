// Package metrics records export metrics in a private prometheus registry.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "scenepack"

// Export outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the collectors of one process.
type Metrics struct {
	registry      *prometheus.Registry
	stageDuration *prometheus.HistogramVec
	warnings      *prometheus.CounterVec
	exports       *prometheus.CounterVec
	unresolved    *prometheus.CounterVec
	includes      prometheus.Gauge
}

// New creates the collectors and registers them.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each export stage.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"stage"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_total",
			Help:      "Warnings recorded during exports, by stage.",
		}, []string{"stage"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Finished exports, by outcome.",
		}, []string{"outcome"}),
		unresolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unresolved_identifiers_total",
			Help:      "Identifiers that generated no code, by kind.",
		}, []string{"kind"}),
		includes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bundle_includes",
			Help:      "Number of files loaded by the last exported bundle.",
		}),
	}
	m.registry.MustRegister(m.stageDuration, m.warnings, m.exports, m.unresolved, m.includes)
	return m
}

// ObserveStage records how long a stage took.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// Warning counts a warning raised by stage.
func (m *Metrics) Warning(stage string) {
	m.warnings.WithLabelValues(stage).Inc()
}

// Export counts a finished export.
func (m *Metrics) Export(outcome string) {
	m.exports.WithLabelValues(outcome).Inc()
}

// Unresolved counts an identifier of the given kind that generated no code.
func (m *Metrics) Unresolved(kind string) {
	m.unresolved.WithLabelValues(kind).Inc()
}

// Includes sets the number of files of the last bundle.
func (m *Metrics) Includes(n int) {
	m.includes.Set(float64(n))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the text exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WriteToTextfile writes the metrics to path for the node exporter textfile
// collector.
func (m *Metrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
