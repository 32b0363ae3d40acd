package domain

import "time"

// ComponentScore is the scored outcome for a single rubric category.
type ComponentScore struct {
	// Category is the canonical category name.
	Category string `json:"category"`

	// Level is the assessment level the score was computed from.
	Level AssessmentLevel `json:"assessment_level"`

	// PointsAwarded is the credit earned, always within
	// [0, MaxPoints].
	PointsAwarded float64 `json:"points_awarded"`

	// MaxPoints is the category's maximum point value.
	MaxPoints float64 `json:"max_points"`

	// CriteriaText is the rubric prose for this category at this level,
	// with the session context substituted.
	CriteriaText string `json:"criteria_text,omitempty"`

	// Note carries the evaluator's free-text remark for this category.
	Note string `json:"note,omitempty"`
}

// EvaluationResult is the engine's output for one evaluated session.
// It is constructed fresh per evaluation and immutable once returned;
// storage, PDF, and display collaborators consume it without re-parsing
// feedback text.
type EvaluationResult struct {
	// ID uniquely identifies this result (a UUID assigned at the
	// application boundary; empty when produced by the pure scorer).
	ID string `json:"id,omitempty"`

	// RubricVersion tags which rubric table produced this result.
	RubricVersion RubricVersion `json:"rubric_version"`

	// Context records the session topic the criteria text was rendered for.
	Context SessionContext `json:"context"`

	// TotalScore is the sum of points awarded across all components.
	TotalScore float64 `json:"total_score"`

	// MaxPossibleScore is the rubric's total possible score.
	MaxPossibleScore float64 `json:"max_possible_score"`

	// Percentage is TotalScore/MaxPossibleScore*100, unrounded.
	// Display layers decide rounding.
	Percentage float64 `json:"percentage"`

	// PerformanceBand is the label of the band the total score reached.
	PerformanceBand string `json:"performance_band"`

	// Components holds one score per rubric category in canonical
	// rubric order.
	Components []ComponentScore `json:"components"`

	// EvaluatedAt records when the result was produced. Assigned at the
	// application boundary; the zero value means the caller did not
	// supply a clock.
	EvaluatedAt time.Time `json:"evaluated_at,omitzero"`
}

// AdjustmentMetadata records how a leniency adjustment transformed a
// base score. It is a structurally separate type so presentation layers
// never see it unless they ask for it; audit consumers may still read
// the full breakdown.
type AdjustmentMetadata struct {
	// AttemptNumber is the retry count the bonus was computed from.
	AttemptNumber int `json:"attempt_number"`

	// EffortRatio is the fraction of categories at or above partial credit.
	EffortRatio float64 `json:"effort_ratio"`

	// EffortBonus is the capped additive bonus applied to the base score.
	EffortBonus float64 `json:"effort_bonus"`

	// TimeFactor is the multiplier derived from feedback text length.
	TimeFactor float64 `json:"time_factor"`

	// BaseScore is the unadjusted total score.
	BaseScore float64 `json:"base_score"`

	// AdjustedScore is min(BaseScore*TimeFactor+EffortBonus, max).
	// It never exceeds the rubric's maximum possible score.
	AdjustedScore float64 `json:"adjusted_score"`
}

// AdjustedResult pairs an unmodified base result with optional leniency
// metadata. The base breakdown is retained untouched for audit; the
// Final* accessors report the effective values after adjustment.
type AdjustedResult struct {
	// Result is the original evaluation, unchanged by any adjustment.
	Result EvaluationResult `json:"result"`

	// Adjustment is nil when leniency was not applied.
	Adjustment *AdjustmentMetadata `json:"adjustment,omitempty"`
}

// FinalScore returns the effective total score: the adjusted score when
// leniency was applied, otherwise the base total.
func (a AdjustedResult) FinalScore() float64 {
	if a.Adjustment != nil {
		return a.Adjustment.AdjustedScore
	}
	return a.Result.TotalScore
}

// FinalPercentage returns the effective percentage, unrounded.
func (a AdjustedResult) FinalPercentage() float64 {
	return a.FinalScore() / a.Result.MaxPossibleScore * 100
}
