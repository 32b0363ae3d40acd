package domain

// AssessmentLevel identifies how well a learner performed on a single
// rubric category. The binary rubric uses the MeetsCriteria and
// NeedsImprovement levels; the legacy partial-credit rubric uses the
// three-level Met, PartiallyMet, and NotMet vocabulary.
type AssessmentLevel string

const (
	// LevelMeetsCriteria indicates the category criteria were satisfied.
	// Binary rubric: awards full points for the category.
	LevelMeetsCriteria AssessmentLevel = "meets_criteria"

	// LevelNeedsImprovement indicates the category criteria were not
	// satisfied. Binary rubric: awards zero points.
	LevelNeedsImprovement AssessmentLevel = "needs_improvement"

	// LevelMet indicates full achievement under the legacy partial-credit
	// rubric. Awards the category's full point value.
	LevelMet AssessmentLevel = "met"

	// LevelPartiallyMet indicates partial achievement under the legacy
	// rubric. Awards half the category's point value.
	LevelPartiallyMet AssessmentLevel = "partially_met"

	// LevelNotMet indicates no achievement under the legacy rubric.
	// Awards zero points.
	LevelNotMet AssessmentLevel = "not_met"
)

// String returns the canonical machine identifier for the level.
func (l AssessmentLevel) String() string { return string(l) }

// Display returns the human-readable form of the level as it appears
// in feedback text and rendered reports.
func (l AssessmentLevel) Display() string {
	switch l {
	case LevelMeetsCriteria:
		return "Meets Criteria"
	case LevelNeedsImprovement:
		return "Needs Improvement"
	case LevelMet:
		return "Met"
	case LevelPartiallyMet:
		return "Partially Met"
	case LevelNotMet:
		return "Not Met"
	default:
		return string(l)
	}
}

// creditMultiplier is the legacy partial-credit multiplier table.
// Levels outside the legacy vocabulary resolve to zero credit, which
// keeps unrecognized input fail-closed.
var creditMultiplier = map[AssessmentLevel]float64{
	LevelMet:          1.0,
	LevelPartiallyMet: 0.5,
	LevelNotMet:       0.0,
}

// ParsedAssessment is one category assessment extracted from free-text
// feedback. Categories absent from the feedback produce no
// ParsedAssessment; the scorer treats absence as the lowest-credit level.
type ParsedAssessment struct {
	// Category is the canonical rubric category name.
	Category string `json:"category"`

	// Level is the assessment level resolved from the feedback text.
	Level AssessmentLevel `json:"level"`

	// Note carries the free-text remark that followed the assessment
	// token on the feedback line. May be empty.
	Note string `json:"note,omitempty"`
}
