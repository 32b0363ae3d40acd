// Package middleware provides cross-cutting concerns for the evaluation
// engine: metrics and tracing decorators around the ports.Evaluator
// contract.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ahrav/mi-rubric/internal/ports"
)

var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It tracks evaluation throughput, score distribution, and
// evaluation latency per rubric version.
type PrometheusMetrics struct {
	evaluationsTotal *prometheus.CounterVec
	scorePercent     *prometheus.HistogramVec
	evalDuration     *prometheus.HistogramVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and
// registers all metrics with the given registerer.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	return &PrometheusMetrics{
		evaluationsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "rubric_evaluations_total",
				Help: "Total number of rubric evaluations performed.",
			},
			[]string{"rubric", "band", "status"},
		),
		scorePercent: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rubric_score_percent",
				Help:    "Distribution of evaluation percentage scores.",
				Buckets: prometheus.LinearBuckets(0, 10, 11),
			},
			[]string{"rubric"},
		),
		evalDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rubric_evaluation_duration_seconds",
				Help:    "Time spent evaluating a single feedback text.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"rubric"},
		),
	}
}

// RecordEvaluation implements ports.MetricsCollector.
func (pm *PrometheusMetrics) RecordEvaluation(rubric, band, status string) {
	pm.evaluationsTotal.WithLabelValues(rubric, band, status).Inc()
}

// RecordScore implements ports.MetricsCollector.
func (pm *PrometheusMetrics) RecordScore(rubric string, percentage float64) {
	pm.scorePercent.WithLabelValues(rubric).Observe(percentage)
}

// RecordLatency implements ports.MetricsCollector.
func (pm *PrometheusMetrics) RecordLatency(rubric string, d time.Duration) {
	pm.evalDuration.WithLabelValues(rubric).Observe(d.Seconds())
}
