package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the dashboard.
type Metrics struct {
	BindingInvocations *prometheus.CounterVec   // labels: binding, chart, action={update,skip}
	BindingDuration    *prometheus.HistogramVec // labels: binding
	EventsRejected     prometheus.Counter
	DatasetRecords     prometheus.Gauge
}

// NewMetrics creates and registers all collectors with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.BindingInvocations,
		m.BindingDuration,
		m.EventsRejected,
		m.DatasetRecords,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		BindingInvocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_dashboard",
			Name:      "binding_results_total",
			Help:      "Chart results produced by reactive bindings, by binding, chart and action.",
		}, []string{"binding", "chart", "action"}),
		BindingDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_dashboard",
			Name:      "binding_duration_seconds",
			Help:      "Time spent computing a binding's output.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"binding"}),
		EventsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_dashboard",
			Name:      "events_rejected_total",
			Help:      "Control events rejected as malformed or out of range.",
		}),
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_dashboard",
			Name:      "dataset_records",
			Help:      "Number of records in the loaded dataset.",
		}),
	}
}
