package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/mi-rubric/internal/scoring"
)

func TestDefaultEngineConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultEngineConfig().Validate())
}

func TestParseEngineConfig(t *testing.T) {
	yaml := `
default_rubric: legacy-30pt
max_concurrency: 4
evaluator:
  response_threshold_seconds: 3.0
leniency:
  max_effort_bonus: 2.0
  effort_scale: 2.5
  max_attempt_bonus: 1.0
  attempt_bonus_step: 0.5
  medium_text_threshold: 400
  long_text_threshold: 800
  medium_text_factor: 1.03
  long_text_factor: 1.05
`
	config, err := ParseEngineConfig([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "legacy-30pt", config.DefaultRubric)
	assert.Equal(t, 4, config.MaxConcurrency)
	assert.Equal(t, 3.0, config.Evaluator.ResponseThresholdSeconds)
	// Unset fields keep their defaults.
	assert.Equal(t, DefaultEngineConfig().FuzzyCategoryDistance, config.FuzzyCategoryDistance)
}

func TestParseEngineConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown rubric", "default_rubric: v3"},
		{"zero threshold", "evaluator:\n  response_threshold_seconds: 0"},
		{"excessive concurrency", "max_concurrency: 1000"},
		{"malformed yaml", "default_rubric: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEngineConfig([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestEngineConfigLeniencyDefaultsMatchContract(t *testing.T) {
	leniency := DefaultEngineConfig().Leniency
	assert.Equal(t, scoring.LeniencyConfig{
		MaxEffortBonus:      2.0,
		EffortScale:         2.5,
		MaxAttemptBonus:     1.0,
		AttemptBonusStep:    0.5,
		MediumTextThreshold: 400,
		LongTextThreshold:   800,
		MediumTextFactor:    1.03,
		LongTextFactor:      1.05,
	}, leniency)
}
