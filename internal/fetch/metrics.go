package fetch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for todo fetches.
type Metrics struct {
	fetchTotal    *prometheus.CounterVec
	fetchDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todoview_fetch_total",
				Help: "Total number of todo fetches by outcome",
			},
			[]string{"outcome"},
		),
		fetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "todoview_fetch_duration_seconds",
				Help:    "Duration of todo fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	registry.MustRegister(m.fetchTotal, m.fetchDuration)

	return m
}

// observe records one fetch. A nil receiver is a no-op so the fetcher
// can run without metrics.
func (m *Metrics) observe(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.fetchTotal.WithLabelValues(outcome).Inc()
	m.fetchDuration.Observe(elapsed.Seconds())
}
