package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/mi-rubric/internal/domain"
)

func newEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	e, err := NewEvaluator(DefaultEvaluatorConfig())
	require.NoError(t, err)
	return e
}

func assessments(levels map[string]domain.AssessmentLevel) map[string]domain.ParsedAssessment {
	parsed := make(map[string]domain.ParsedAssessment, len(levels))
	for category, level := range levels {
		parsed[category] = domain.ParsedAssessment{Category: category, Level: level}
	}
	return parsed
}

func TestNewEvaluator(t *testing.T) {
	_, err := NewEvaluator(EvaluatorConfig{ResponseThresholdSeconds: 0})
	require.Error(t, err)

	e, err := NewEvaluator(EvaluatorConfig{ResponseThresholdSeconds: 3.0})
	require.NoError(t, err)
	assert.Equal(t, 3.0, e.Config().ResponseThresholdSeconds)
}

// All six categories at Meets Criteria give a perfect standard score.
func TestEvaluatePerfectScore(t *testing.T) {
	e := newEvaluator(t)

	parsed := assessments(map[string]domain.AssessmentLevel{
		domain.CategoryCollaboration:  domain.LevelMeetsCriteria,
		domain.CategoryAcceptance:     domain.LevelMeetsCriteria,
		domain.CategoryCompassion:     domain.LevelMeetsCriteria,
		domain.CategoryEvocation:      domain.LevelMeetsCriteria,
		domain.CategorySummary:        domain.LevelMeetsCriteria,
		domain.CategoryResponseFactor: domain.LevelMeetsCriteria,
	})

	result, err := e.Evaluate(parsed, domain.RubricVersionStandard, domain.ContextHPV)
	require.NoError(t, err)

	assert.Equal(t, 40.0, result.TotalScore)
	assert.Equal(t, 40.0, result.MaxPossibleScore)
	assert.Equal(t, 100.0, result.Percentage)
	assert.Equal(t, "Excellent MI skills demonstrated", result.PerformanceBand)
}

func TestEvaluateMixedScore(t *testing.T) {
	e := newEvaluator(t)

	parsed := assessments(map[string]domain.AssessmentLevel{
		domain.CategoryCollaboration:  domain.LevelMeetsCriteria,
		domain.CategoryAcceptance:     domain.LevelMeetsCriteria,
		domain.CategoryCompassion:     domain.LevelNeedsImprovement,
		domain.CategoryEvocation:      domain.LevelMeetsCriteria,
		domain.CategorySummary:        domain.LevelNeedsImprovement,
		domain.CategoryResponseFactor: domain.LevelNeedsImprovement,
	})

	result, err := e.Evaluate(parsed, domain.RubricVersionStandard, domain.ContextHPV)
	require.NoError(t, err)

	assert.Equal(t, 21.0, result.TotalScore)
	assert.InDelta(t, 52.5, result.Percentage, 1e-9)
	assert.Equal(t, "Basic MI awareness, significant practice needed", result.PerformanceBand)

	// Sum consistency: the total equals the component sum exactly.
	sum := 0.0
	for _, c := range result.Components {
		sum += c.PointsAwarded
	}
	assert.Equal(t, result.TotalScore, sum)
}

func TestEvaluateLegacyPartialCredit(t *testing.T) {
	e := newEvaluator(t)

	parsed := assessments(map[string]domain.AssessmentLevel{
		domain.CategoryCollaboration: domain.LevelMet,
		domain.CategoryAcceptance:    domain.LevelPartiallyMet,
		domain.CategoryCompassion:    domain.LevelMet,
		domain.CategoryEvocation:     domain.LevelPartiallyMet,
	})

	result, err := e.Evaluate(parsed, domain.RubricVersionLegacy, domain.ContextOHI)
	require.NoError(t, err)

	assert.Equal(t, 22.5, result.TotalScore)
	assert.Equal(t, 30.0, result.MaxPossibleScore)
	assert.InDelta(t, 75.0, result.Percentage, 1e-9)

	wantPoints := []float64{7.5, 3.75, 7.5, 3.75}
	require.Len(t, result.Components, 4)
	for i, c := range result.Components {
		assert.Equal(t, wantPoints[i], c.PointsAwarded, c.Category)
	}
}

// A missing category fails closed: lowest-credit level, zero points,
// still present in the breakdown.
func TestEvaluateMissingCategoryFailsClosed(t *testing.T) {
	e := newEvaluator(t)

	parsed := assessments(map[string]domain.AssessmentLevel{
		domain.CategoryCollaboration: domain.LevelMeetsCriteria,
	})

	result, err := e.Evaluate(parsed, domain.RubricVersionStandard, domain.ContextHPV)
	require.NoError(t, err)

	assert.Equal(t, 9.0, result.TotalScore)
	require.Len(t, result.Components, 6)
	for _, c := range result.Components[1:] {
		assert.Equal(t, domain.LevelNeedsImprovement, c.Level, c.Category)
		assert.Zero(t, c.PointsAwarded, c.Category)
	}
}

// Components are emitted in canonical rubric order regardless of parse
// order.
func TestEvaluateCanonicalOrdering(t *testing.T) {
	e := newEvaluator(t)

	result, err := e.Evaluate(nil, domain.RubricVersionStandard, domain.ContextHPV)
	require.NoError(t, err)

	got := make([]string, len(result.Components))
	for i, c := range result.Components {
		got[i] = c.Category
	}
	assert.Equal(t, []string{
		domain.CategoryCollaboration,
		domain.CategoryAcceptance,
		domain.CategoryCompassion,
		domain.CategoryEvocation,
		domain.CategorySummary,
		domain.CategoryResponseFactor,
	}, got)
}

func TestEvaluateLatencyOverride(t *testing.T) {
	e := newEvaluator(t)

	tests := []struct {
		name       string
		latency    float64
		textLevel  domain.AssessmentLevel
		wantLevel  domain.AssessmentLevel
		wantPoints float64
	}{
		{
			name:       "fast reply overrides needs improvement",
			latency:    1.8,
			textLevel:  domain.LevelNeedsImprovement,
			wantLevel:  domain.LevelMeetsCriteria,
			wantPoints: 10,
		},
		{
			name:       "slow reply overrides meets criteria",
			latency:    4.0,
			textLevel:  domain.LevelMeetsCriteria,
			wantLevel:  domain.LevelNeedsImprovement,
			wantPoints: 0,
		},
		{
			name:       "latency exactly at threshold meets criteria",
			latency:    2.5,
			textLevel:  domain.LevelNeedsImprovement,
			wantLevel:  domain.LevelMeetsCriteria,
			wantPoints: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := assessments(map[string]domain.AssessmentLevel{
				domain.CategoryResponseFactor: tt.textLevel,
			})

			result, err := e.Evaluate(parsed, domain.RubricVersionStandard, domain.ContextHPV,
				WithResponseLatency(tt.latency))
			require.NoError(t, err)

			rf := result.Components[len(result.Components)-1]
			require.Equal(t, domain.CategoryResponseFactor, rf.Category)
			assert.Equal(t, tt.wantLevel, rf.Level)
			assert.Equal(t, tt.wantPoints, rf.PointsAwarded)
		})
	}
}

func TestEvaluateConfigurableThreshold(t *testing.T) {
	e, err := NewEvaluator(EvaluatorConfig{ResponseThresholdSeconds: 1.0})
	require.NoError(t, err)

	result, err := e.Evaluate(nil, domain.RubricVersionStandard, domain.ContextHPV,
		WithResponseLatency(1.8))
	require.NoError(t, err)

	rf := result.Components[len(result.Components)-1]
	assert.Equal(t, domain.LevelNeedsImprovement, rf.Level)
}

func TestEvaluateNotesOverrideParsedNotes(t *testing.T) {
	e := newEvaluator(t)

	parsed := map[string]domain.ParsedAssessment{
		domain.CategoryCollaboration: {
			Category: domain.CategoryCollaboration,
			Level:    domain.LevelMeetsCriteria,
			Note:     "from feedback text",
		},
	}

	result, err := e.Evaluate(parsed, domain.RubricVersionStandard, domain.ContextHPV,
		WithNotes(map[string]string{domain.CategoryCollaboration: "from the instructor"}))
	require.NoError(t, err)

	assert.Equal(t, "from the instructor", result.Components[0].Note)
}

func TestEvaluateCriteriaTextUsesContext(t *testing.T) {
	e := newEvaluator(t)

	result, err := e.Evaluate(nil, domain.RubricVersionStandard, domain.ContextOHI)
	require.NoError(t, err)

	for _, c := range result.Components {
		assert.Contains(t, c.CriteriaText, "oral health", c.Category)
	}
}

func TestEvaluateUnknownVersion(t *testing.T) {
	e := newEvaluator(t)

	_, err := e.Evaluate(nil, domain.RubricVersion("v3"), domain.ContextHPV)
	require.ErrorIs(t, err, domain.ErrUnknownRubricVersion)
}

// Score bounds hold for arbitrary level combinations, including levels
// from the wrong vocabulary.
func TestEvaluateBounds(t *testing.T) {
	e := newEvaluator(t)

	levels := []domain.AssessmentLevel{
		domain.LevelMeetsCriteria,
		domain.LevelNeedsImprovement,
		domain.AssessmentLevel("garbage"),
	}
	categories := []string{
		domain.CategoryCollaboration,
		domain.CategoryAcceptance,
		domain.CategoryCompassion,
		domain.CategoryEvocation,
		domain.CategorySummary,
		domain.CategoryResponseFactor,
	}

	for i := 0; i < len(levels); i++ {
		parsed := make(map[string]domain.ParsedAssessment)
		for j, category := range categories {
			parsed[category] = domain.ParsedAssessment{
				Category: category,
				Level:    levels[(i+j)%len(levels)],
			}
		}

		result, err := e.Evaluate(parsed, domain.RubricVersionStandard, domain.ContextHPV)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.TotalScore, 0.0)
		assert.LessOrEqual(t, result.TotalScore, result.MaxPossibleScore)
		assert.GreaterOrEqual(t, result.Percentage, 0.0)
		assert.LessOrEqual(t, result.Percentage, 100.0)

		for _, c := range result.Components {
			assert.GreaterOrEqual(t, c.PointsAwarded, 0.0)
			assert.LessOrEqual(t, c.PointsAwarded, c.MaxPoints)
		}
	}
}

func TestUnmarshalParameters(t *testing.T) {
	e := newEvaluator(t)

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("response_threshold_seconds: 3.5"), &node))
	require.Len(t, node.Content, 1)

	updated, err := e.UnmarshalParameters(*node.Content[0])
	require.NoError(t, err)
	assert.Equal(t, 3.5, updated.Config().ResponseThresholdSeconds)
	// The original evaluator is untouched.
	assert.Equal(t, DefaultResponseThresholdSeconds, e.Config().ResponseThresholdSeconds)

	require.NoError(t, yaml.Unmarshal([]byte("response_threshold_seconds: -1"), &node))
	_, err = e.UnmarshalParameters(*node.Content[0])
	require.Error(t, err)
}
