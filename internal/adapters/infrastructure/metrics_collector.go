package infrastructure

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetricsCollector implements the MetricsCollector port with
// Prometheus counters and histograms, exposed on /metrics.
type PrometheusMetricsCollector struct {
	fetches     *prometheus.CounterVec
	durations   *prometheus.HistogramVec
	transitions *prometheus.CounterVec
}

var globalCollector *PrometheusMetricsCollector

// NewPrometheusMetricsCollector returns the process-wide metrics collector.
// promauto registers on the default registry, so collectors are created once.
func NewPrometheusMetricsCollector() *PrometheusMetricsCollector {
	if globalCollector == nil {
		globalCollector = &PrometheusMetricsCollector{
			fetches: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weather_fetch_total",
					Help: "The total number of weather fetches by method and outcome",
				},
				[]string{"method", "outcome"},
			),
			durations: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "weather_fetch_duration_seconds",
					Help:    "Weather fetch duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method"},
			),
			transitions: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "session_transitions_total",
					Help: "The total number of session state transitions",
				},
				[]string{"transition"},
			),
		}
	}
	return globalCollector
}

// RecordWeatherFetch counts one fetch attempt by method and outcome kind
func (c *PrometheusMetricsCollector) RecordWeatherFetch(ctx context.Context, method, outcome string) {
	c.fetches.WithLabelValues(method, outcome).Inc()
}

// ObserveFetchDuration records the duration of one fetch attempt
func (c *PrometheusMetricsCollector) ObserveFetchDuration(ctx context.Context, method string, seconds float64) {
	c.durations.WithLabelValues(method).Observe(seconds)
}

// RecordSessionTransition counts one state machine transition
func (c *PrometheusMetricsCollector) RecordSessionTransition(ctx context.Context, transition string) {
	c.transitions.WithLabelValues(transition).Inc()
}
