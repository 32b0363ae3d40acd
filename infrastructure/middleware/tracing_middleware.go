package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/mi-rubric/internal/domain"
	"github.com/ahrav/mi-rubric/internal/ports"
)

var _ ports.Evaluator = (*TracingMiddleware)(nil)

// TracingMiddleware decorates an Evaluator with OpenTelemetry spans.
// Each evaluation produces one span carrying the rubric version,
// session context, and score outcome as attributes.
type TracingMiddleware struct {
	next   ports.Evaluator
	tracer trace.Tracer
}

// NewTracingMiddleware wraps an Evaluator with tracing using the global
// tracer provider.
func NewTracingMiddleware(next ports.Evaluator) *TracingMiddleware {
	return &TracingMiddleware{
		next:   next,
		tracer: otel.Tracer("mi-rubric/evaluator"),
	}
}

// Evaluate implements ports.Evaluator.
func (t *TracingMiddleware) Evaluate(ctx context.Context, req ports.EvaluationRequest) (domain.AdjustedResult, error) {
	ctx, span := t.tracer.Start(ctx, "Evaluator.Evaluate",
		trace.WithAttributes(
			attribute.String("rubric.version", string(req.RubricVersion)),
			attribute.String("session.type", req.SessionType),
			attribute.Bool("evaluation.strict", req.Strict),
			attribute.Bool("evaluation.leniency", req.LeniencyEnabled),
			attribute.Int("feedback.length", len(req.FeedbackText)),
		),
	)
	defer span.End()

	result, err := t.next.Evaluate(ctx, req)
	if err != nil {
		span.RecordError(err)
		return result, err
	}

	span.SetAttributes(
		attribute.Float64("score.total", result.Result.TotalScore),
		attribute.Float64("score.final", result.FinalScore()),
		attribute.Float64("score.percentage", result.Result.Percentage),
		attribute.String("score.band", result.Result.PerformanceBand),
	)
	return result, nil
}
