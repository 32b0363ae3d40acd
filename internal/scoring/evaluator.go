package scoring

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/mi-rubric/internal/domain"
)

// Evaluator applies a rubric table to parsed assessments. It is
// stateless after construction and safe for concurrent use; every call
// produces a fresh EvaluationResult.
type Evaluator struct {
	config EvaluatorConfig
}

// NewEvaluator creates an Evaluator with validated configuration.
func NewEvaluator(config EvaluatorConfig) (*Evaluator, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("evaluator configuration validation failed: %w", err)
	}
	return &Evaluator{config: config}, nil
}

// Config returns the evaluator's active configuration.
func (e *Evaluator) Config() EvaluatorConfig { return e.config }

// UnmarshalParameters decodes YAML configuration parameters and returns
// a new Evaluator with the updated configuration. The receiver is never
// mutated, preserving thread safety.
func (e *Evaluator) UnmarshalParameters(params yaml.Node) (*Evaluator, error) {
	var config EvaluatorConfig
	if err := params.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode parameters: %w", err)
	}
	return NewEvaluator(config)
}

// EvaluateOption adjusts a single evaluation call.
type EvaluateOption func(*evaluateOptions)

type evaluateOptions struct {
	responseLatency *float64
	notes           map[string]string
}

// WithResponseLatency supplies the measured average reply latency in
// seconds. When set, the Response Factor category is auto-assessed
// against the configured threshold, overriding any text-parsed value.
func WithResponseLatency(seconds float64) EvaluateOption {
	return func(o *evaluateOptions) { o.responseLatency = &seconds }
}

// WithNotes supplies per-category free-text notes keyed by canonical
// category name. A caller-supplied note replaces the note parsed from
// feedback text for that category.
func WithNotes(notes map[string]string) EvaluateOption {
	return func(o *evaluateOptions) { o.notes = notes }
}

// Evaluate combines parsed assessments with the selected rubric table
// into an EvaluationResult. Categories are scored in canonical rubric
// order regardless of parse order. A category missing from the parsed
// input is fail-closed to the rubric's lowest-credit level; it still
// appears in the components with zero points, never silently dropped
// from the total.
func (e *Evaluator) Evaluate(
	parsed map[string]domain.ParsedAssessment,
	version domain.RubricVersion,
	sctx domain.SessionContext,
	opts ...EvaluateOption,
) (domain.EvaluationResult, error) {
	rubric, err := domain.RubricFor(version)
	if err != nil {
		return domain.EvaluationResult{}, fmt.Errorf("evaluate: %w", err)
	}

	var options evaluateOptions
	for _, opt := range opts {
		opt(&options)
	}

	components := make([]domain.ComponentScore, 0, len(rubric.Categories))
	total := 0.0

	for _, category := range rubric.Categories {
		level := rubric.LowestCredit()
		note := ""

		if assessment, ok := parsed[category.Name]; ok {
			level = assessment.Level
			note = assessment.Note
		}
		// Levels outside this rubric's vocabulary fail closed rather
		// than erroring; the parser normally normalizes them, but the
		// scorer holds the invariant on its own.
		if !category.Recognizes(level) {
			level = rubric.LowestCredit()
		}

		// A measured reply latency is authoritative for Response Factor:
		// it overrides whatever the feedback text claimed.
		if category.Name == domain.CategoryResponseFactor && options.responseLatency != nil {
			if *options.responseLatency <= e.config.ResponseThresholdSeconds {
				level = domain.LevelMeetsCriteria
			} else {
				level = domain.LevelNeedsImprovement
			}
		}

		if callerNote, ok := options.notes[category.Name]; ok {
			note = callerNote
		}

		criteria, err := rubric.CriteriaText(category.Name, level, sctx)
		if err != nil {
			return domain.EvaluationResult{}, fmt.Errorf("evaluate %s: %w", category.Name, err)
		}

		points := category.Points(level)
		total += points
		components = append(components, domain.ComponentScore{
			Category:      category.Name,
			Level:         level,
			PointsAwarded: points,
			MaxPoints:     category.MaxPoints,
			CriteriaText:  criteria,
			Note:          note,
		})
	}

	return domain.EvaluationResult{
		RubricVersion:    version,
		Context:          sctx,
		TotalScore:       total,
		MaxPossibleScore: rubric.TotalPossible,
		Percentage:       total / rubric.TotalPossible * 100,
		PerformanceBand:  rubric.PerformanceBand(total),
		Components:       components,
	}, nil
}
