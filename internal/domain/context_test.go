package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSessionContext(t *testing.T) {
	tests := []struct {
		name        string
		sessionType string
		want        SessionContext
	}{
		{"uppercase HPV", "HPV", ContextHPV},
		{"embedded hpv", "session-hpv-2024", ContextHPV},
		{"uppercase OHI", "OHI", ContextOHI},
		{"oral keyword", "Oral Health Instruction", ContextOHI},
		{"unknown falls back to HPV", "diabetes", ContextHPV},
		{"empty falls back to HPV", "", ContextHPV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSessionContext(tt.sessionType))
		})
	}
}

func TestSessionContextPhrase(t *testing.T) {
	assert.Equal(t, "HPV vaccination", ContextHPV.Phrase())
	assert.Equal(t, "oral health", ContextOHI.Phrase())
}

func TestAssessmentLevelDisplay(t *testing.T) {
	assert.Equal(t, "Meets Criteria", LevelMeetsCriteria.Display())
	assert.Equal(t, "Needs Improvement", LevelNeedsImprovement.Display())
	assert.Equal(t, "Partially Met", LevelPartiallyMet.Display())
}

func TestAdjustedResultFinalScore(t *testing.T) {
	base := EvaluationResult{TotalScore: 21, MaxPossibleScore: 40}

	plain := AdjustedResult{Result: base}
	assert.Equal(t, 21.0, plain.FinalScore())
	assert.InDelta(t, 52.5, plain.FinalPercentage(), 1e-9)

	adjusted := AdjustedResult{
		Result:     base,
		Adjustment: &AdjustmentMetadata{BaseScore: 21, AdjustedScore: 24.63},
	}
	assert.Equal(t, 24.63, adjusted.FinalScore())
}
