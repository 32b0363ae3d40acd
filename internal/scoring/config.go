// Package scoring converts parsed category assessments into bounded,
// auditable evaluation results. All computation here is deterministic
// and clock-independent; identity and timestamps are assigned by the
// application layer.
package scoring

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Default scoring configuration values.
const (
	// DefaultResponseThresholdSeconds is the reply-latency boundary for
	// the Response Factor category: at or below it the category is
	// auto-assessed as meeting criteria.
	DefaultResponseThresholdSeconds = 2.5
)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()

// EvaluatorConfig defines the caller-supplied evaluation parameters.
// The core never reads the environment; embedding callers own all
// configuration.
type EvaluatorConfig struct {
	// ResponseThresholdSeconds is the latency boundary used when a
	// measured reply latency overrides the Response Factor assessment.
	ResponseThresholdSeconds float64 `yaml:"response_threshold_seconds" json:"response_threshold_seconds" validate:"gt=0"`
}

// DefaultEvaluatorConfig returns an EvaluatorConfig with the documented
// defaults.
func DefaultEvaluatorConfig() EvaluatorConfig {
	return EvaluatorConfig{ResponseThresholdSeconds: DefaultResponseThresholdSeconds}
}

// LeniencyConfig carries the constants of the leniency adjustment
// formula. The values have no documented pedagogical justification, so
// they are configuration rather than hardcoded law; the defaults
// preserve the existing behavioral contract exactly.
type LeniencyConfig struct {
	// MaxEffortBonus caps the effort-ratio contribution to the bonus.
	MaxEffortBonus float64 `yaml:"max_effort_bonus" json:"max_effort_bonus" validate:"min=0"`

	// EffortScale multiplies the effort ratio before capping.
	EffortScale float64 `yaml:"effort_scale" json:"effort_scale" validate:"min=0"`

	// MaxAttemptBonus caps the per-retry contribution to the bonus.
	MaxAttemptBonus float64 `yaml:"max_attempt_bonus" json:"max_attempt_bonus" validate:"min=0"`

	// AttemptBonusStep is the bonus added per retry beyond the first
	// attempt, before capping.
	AttemptBonusStep float64 `yaml:"attempt_bonus_step" json:"attempt_bonus_step" validate:"min=0"`

	// MediumTextThreshold is the feedback length (in characters) above
	// which the medium time factor applies.
	MediumTextThreshold int `yaml:"medium_text_threshold" json:"medium_text_threshold" validate:"min=0"`

	// LongTextThreshold is the feedback length above which the long
	// time factor applies. Must exceed MediumTextThreshold.
	LongTextThreshold int `yaml:"long_text_threshold" json:"long_text_threshold" validate:"min=0"`

	// MediumTextFactor is the score multiplier for medium-length feedback.
	MediumTextFactor float64 `yaml:"medium_text_factor" json:"medium_text_factor" validate:"min=1"`

	// LongTextFactor is the score multiplier for long feedback. This is
	// the time-factor ceiling.
	LongTextFactor float64 `yaml:"long_text_factor" json:"long_text_factor" validate:"min=1"`
}

// DefaultLeniencyConfig returns the behavior-compatible leniency
// constants: bonus = min(2.0, ratio*2.5) + min(1.0, 0.5*(attempt-1)),
// time factor 1.05 above 800 characters and 1.03 above 400.
func DefaultLeniencyConfig() LeniencyConfig {
	return LeniencyConfig{
		MaxEffortBonus:      2.0,
		EffortScale:         2.5,
		MaxAttemptBonus:     1.0,
		AttemptBonusStep:    0.5,
		MediumTextThreshold: 400,
		LongTextThreshold:   800,
		MediumTextFactor:    1.03,
		LongTextFactor:      1.05,
	}
}

// Validate checks the leniency constants for structural consistency.
func (c LeniencyConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("leniency configuration validation failed: %w", err)
	}
	if c.LongTextThreshold <= c.MediumTextThreshold {
		return fmt.Errorf("long_text_threshold (%d) must exceed medium_text_threshold (%d)",
			c.LongTextThreshold, c.MediumTextThreshold)
	}
	if c.LongTextFactor < c.MediumTextFactor {
		return fmt.Errorf("long_text_factor (%.3f) must be at least medium_text_factor (%.3f)",
			c.LongTextFactor, c.MediumTextFactor)
	}
	return nil
}
