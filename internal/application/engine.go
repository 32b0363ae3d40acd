// Package application wires the feedback parser and scorer into the
// ports.Evaluator contract: it resolves rubric versions, assigns result
// identity, gates the leniency adjustment, and runs bounded-concurrency
// batch evaluation.
package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ahrav/mi-rubric/internal/domain"
	"github.com/ahrav/mi-rubric/internal/parser"
	"github.com/ahrav/mi-rubric/internal/ports"
	"github.com/ahrav/mi-rubric/internal/scoring"
)

var _ ports.Evaluator = (*Engine)(nil)

// Engine is the application-layer evaluator. It holds one parser per
// rubric version plus the scorer and leniency adjuster, all immutable
// after construction, so a single Engine serves concurrent requests
// without coordination.
type Engine struct {
	config    EngineConfig
	evaluator *scoring.Evaluator
	adjuster  *scoring.LeniencyAdjuster
	parsers   map[domain.RubricVersion]*parser.Parser

	// now supplies result timestamps; replaceable in tests.
	now func() time.Time
}

// EngineOption configures optional Engine behavior.
type EngineOption func(*Engine)

// WithClock overrides the timestamp source for evaluation results.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an Engine from validated configuration.
func NewEngine(config EngineConfig, opts ...EngineOption) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	evaluator, err := scoring.NewEvaluator(config.Evaluator)
	if err != nil {
		return nil, err
	}
	adjuster, err := scoring.NewLeniencyAdjuster(config.Leniency)
	if err != nil {
		return nil, err
	}

	parsers := make(map[domain.RubricVersion]*parser.Parser, 2)
	for _, version := range []domain.RubricVersion{domain.RubricVersionStandard, domain.RubricVersionLegacy} {
		rubric, err := domain.RubricFor(version)
		if err != nil {
			return nil, err
		}
		parsers[version] = parser.New(rubric, parser.WithMaxCategoryDistance(config.FuzzyCategoryDistance))
	}

	e := &Engine{
		config:    config,
		evaluator: evaluator,
		adjuster:  adjuster,
		parsers:   parsers,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Evaluate implements ports.Evaluator. It parses the feedback text with
// the rubric-appropriate parser, scores it, stamps identity onto the
// result, and applies the leniency adjustment only when the request
// opts in.
func (e *Engine) Evaluate(ctx context.Context, req ports.EvaluationRequest) (domain.AdjustedResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.AdjustedResult{}, err
	}

	version := req.RubricVersion
	if version == "" {
		version = domain.RubricVersion(e.config.DefaultRubric)
	}
	p, ok := e.parsers[version]
	if !ok {
		return domain.AdjustedResult{}, fmt.Errorf("evaluate: %w: %s", domain.ErrUnknownRubricVersion, version)
	}

	var parsed map[string]domain.ParsedAssessment
	if req.Strict {
		var err error
		if parsed, err = p.ParseStrict(req.FeedbackText); err != nil {
			return domain.AdjustedResult{}, fmt.Errorf("evaluate: %w", err)
		}
	} else {
		parsed = p.Parse(req.FeedbackText)
	}

	opts := []scoring.EvaluateOption{scoring.WithNotes(req.Notes)}
	if req.ResponseLatencySeconds != nil {
		opts = append(opts, scoring.WithResponseLatency(*req.ResponseLatencySeconds))
	}

	result, err := e.evaluator.Evaluate(parsed, version, domain.ParseSessionContext(req.SessionType), opts...)
	if err != nil {
		return domain.AdjustedResult{}, err
	}
	result.ID = uuid.NewString()
	result.EvaluatedAt = e.now()

	if !req.LeniencyEnabled {
		return domain.AdjustedResult{Result: result}, nil
	}
	return e.adjuster.Apply(result, req.AttemptNumber, len(req.FeedbackText)), nil
}

// EvaluateBatch evaluates independent requests concurrently, bounded by
// the configured limit. Results are order-preserving: results[i]
// corresponds to reqs[i]. The first failing request cancels the rest.
func (e *Engine) EvaluateBatch(ctx context.Context, reqs []ports.EvaluationRequest) ([]domain.AdjustedResult, error) {
	results := make([]domain.AdjustedResult, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.MaxConcurrency)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			result, err := e.Evaluate(gctx, req)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
