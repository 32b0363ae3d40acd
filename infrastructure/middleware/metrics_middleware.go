package middleware

import (
	"context"
	"time"

	"github.com/ahrav/mi-rubric/internal/domain"
	"github.com/ahrav/mi-rubric/internal/ports"
)

var _ ports.Evaluator = (*MetricsMiddleware)(nil)

// MetricsMiddleware decorates an Evaluator with metrics recording.
// The pure scoring core stays free of observability dependencies; all
// instrumentation happens at this boundary.
type MetricsMiddleware struct {
	next    ports.Evaluator
	metrics ports.MetricsCollector
}

// NewMetricsMiddleware wraps an Evaluator with the given collector.
func NewMetricsMiddleware(next ports.Evaluator, metrics ports.MetricsCollector) *MetricsMiddleware {
	return &MetricsMiddleware{next: next, metrics: metrics}
}

// Evaluate implements ports.Evaluator, recording throughput, latency,
// and score distribution around the wrapped evaluation.
func (m *MetricsMiddleware) Evaluate(ctx context.Context, req ports.EvaluationRequest) (domain.AdjustedResult, error) {
	start := time.Now()

	result, err := m.next.Evaluate(ctx, req)

	rubric := string(req.RubricVersion)
	if rubric == "" {
		rubric = "default"
	}
	m.metrics.RecordLatency(rubric, time.Since(start))

	if err != nil {
		m.metrics.RecordEvaluation(rubric, "", "error")
		return result, err
	}

	m.metrics.RecordEvaluation(string(result.Result.RubricVersion), result.Result.PerformanceBand, "ok")
	m.metrics.RecordScore(string(result.Result.RubricVersion), result.FinalPercentage())
	return result, nil
}
