package scoring

import (
	"fmt"
	"math"

	"github.com/ahrav/mi-rubric/internal/domain"
)

// partialCreditFloor is the fraction of a category's points that counts
// as effort for the leniency ratio. Half credit or better qualifies.
const partialCreditFloor = 0.5

// LeniencyAdjuster applies the opt-in legacy leniency adjustment: a
// capped effort bonus plus a text-length time factor. Callers that do
// not opt in never see adjusted scores; the adjuster exists purely for
// backward compatibility with the older scoring path.
type LeniencyAdjuster struct {
	config LeniencyConfig
}

// NewLeniencyAdjuster creates a LeniencyAdjuster with validated
// constants.
func NewLeniencyAdjuster(config LeniencyConfig) (*LeniencyAdjuster, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &LeniencyAdjuster{config: config}, nil
}

// Apply computes the leniency adjustment for a base result.
//
// The effort ratio is the fraction of categories at or above half
// credit. The bonus is min(MaxEffortBonus, ratio*EffortScale) plus
// min(MaxAttemptBonus, AttemptBonusStep*(attemptNumber-1)). The time
// factor rewards longer feedback text at two thresholds. The adjusted
// score is min(base*timeFactor + bonus, maxPossible): the cap is the
// non-negotiable invariant, so no combination of inputs can push the
// score past the rubric maximum.
//
// The base result is returned unchanged for audit; the adjustment
// lives only in the metadata.
func (l *LeniencyAdjuster) Apply(
	base domain.EvaluationResult, attemptNumber int, feedbackTextLength int,
) domain.AdjustedResult {
	if attemptNumber < 1 {
		attemptNumber = 1
	}

	effortRatio := 0.0
	if len(base.Components) > 0 {
		qualifying := 0
		for _, c := range base.Components {
			if c.MaxPoints > 0 && c.PointsAwarded/c.MaxPoints >= partialCreditFloor {
				qualifying++
			}
		}
		effortRatio = float64(qualifying) / float64(len(base.Components))
	}

	effortBonus := math.Min(l.config.MaxEffortBonus, effortRatio*l.config.EffortScale) +
		math.Min(l.config.MaxAttemptBonus, l.config.AttemptBonusStep*float64(attemptNumber-1))

	timeFactor := 1.0
	switch {
	case feedbackTextLength > l.config.LongTextThreshold:
		timeFactor = l.config.LongTextFactor
	case feedbackTextLength > l.config.MediumTextThreshold:
		timeFactor = l.config.MediumTextFactor
	}

	adjusted := math.Min(base.TotalScore*timeFactor+effortBonus, base.MaxPossibleScore)

	return domain.AdjustedResult{
		Result: base,
		Adjustment: &domain.AdjustmentMetadata{
			AttemptNumber: attemptNumber,
			EffortRatio:   effortRatio,
			EffortBonus:   effortBonus,
			TimeFactor:    timeFactor,
			BaseScore:     base.TotalScore,
			AdjustedScore: adjusted,
		},
	}
}

// ApplyLeniency is the functional form of the adjustment. When enabled
// is false the base result passes through untouched with nil metadata,
// preserving pre-existing behavior for callers that do not opt in.
func ApplyLeniency(
	base domain.EvaluationResult,
	attemptNumber int,
	feedbackTextLength int,
	enabled bool,
	config LeniencyConfig,
) (domain.AdjustedResult, error) {
	if !enabled {
		return domain.AdjustedResult{Result: base}, nil
	}
	adjuster, err := NewLeniencyAdjuster(config)
	if err != nil {
		return domain.AdjustedResult{}, fmt.Errorf("apply leniency: %w", err)
	}
	return adjuster.Apply(base, attemptNumber, feedbackTextLength), nil
}
