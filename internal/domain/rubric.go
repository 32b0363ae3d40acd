// Package domain defines the rubric tables, assessment vocabulary, and
// result types for the MI training evaluation engine. Everything in
// this package is pure data and computation: no I/O, no clocks, and no
// mutation after package initialization, so all values are safe for
// concurrent reads.
package domain

import "strings"

// RubricVersion selects which rubric table an evaluation runs against.
// Selection is always an explicit caller decision; the engine never
// infers the version from the shape of the feedback text.
type RubricVersion string

const (
	// RubricVersionStandard is the current six-category, 40-point binary
	// rubric. Each category awards full points or zero.
	RubricVersionStandard RubricVersion = "standard-40pt"

	// RubricVersionLegacy is the older four-category, 30-point
	// partial-credit rubric with the Met/Partially Met/Not Met vocabulary.
	RubricVersionLegacy RubricVersion = "legacy-30pt"
)

// String returns the version tag.
func (v RubricVersion) String() string { return string(v) }

// ScoringMode determines how an assessment level converts to points
// for a category.
type ScoringMode string

const (
	// ScoringModeBinary awards full points for MeetsCriteria and zero
	// for anything else.
	ScoringModeBinary ScoringMode = "binary"

	// ScoringModePartialCredit awards max_points scaled by the legacy
	// multiplier table (Met 1.0, Partially Met 0.5, Not Met 0.0).
	ScoringModePartialCredit ScoringMode = "partial_credit"
)

// Canonical category names shared by both rubric tables.
const (
	CategoryCollaboration  = "Collaboration"
	CategoryAcceptance     = "Acceptance"
	CategoryCompassion     = "Compassion"
	CategoryEvocation      = "Evocation"
	CategorySummary        = "Summary"
	CategoryResponseFactor = "Response Factor"
)

// Category is one scored dimension of a rubric.
type Category struct {
	// Name is the canonical category name.
	Name string `json:"name"`

	// MaxPoints is the most this category can contribute to the total.
	MaxPoints float64 `json:"max_points"`

	// Mode selects binary or partial-credit point conversion.
	Mode ScoringMode `json:"mode"`

	// criteria maps each assessment level to its criteria prose
	// template. Templates contain the {context} placeholder.
	criteria map[AssessmentLevel]string
}

// Points converts an assessment level to the points awarded for this
// category. Unrecognized levels award zero in either mode, which keeps
// malformed input fail-closed rather than raising.
func (c Category) Points(level AssessmentLevel) float64 {
	switch c.Mode {
	case ScoringModePartialCredit:
		return c.MaxPoints * creditMultiplier[level]
	default:
		if level == LevelMeetsCriteria {
			return c.MaxPoints
		}
		return 0
	}
}

// Recognizes reports whether this category's scoring mode defines the
// given assessment level.
func (c Category) Recognizes(level AssessmentLevel) bool {
	_, ok := c.criteria[level]
	return ok
}

// PerformanceBand labels a percentage range of the total score.
type PerformanceBand struct {
	// MinPercentage is the inclusive lower bound for this band.
	MinPercentage float64 `json:"min_percentage"`

	// Label is the human-readable band description.
	Label string `json:"label"`
}

// RubricDefinition is an immutable rubric table: the ordered categories,
// the total possible score, and the performance bands. Both process-wide
// definitions are built at init and never mutated, so a single
// RubricDefinition may be shared across concurrent evaluations.
type RubricDefinition struct {
	// Version tags which rubric this table describes.
	Version RubricVersion `json:"version"`

	// Categories holds the scored dimensions in canonical order.
	// Evaluation iterates this order, never parse order, so output
	// ordering is stable and reproducible.
	Categories []Category `json:"categories"`

	// TotalPossible is the sum of all category max points.
	TotalPossible float64 `json:"total_possible"`

	// Bands are the performance bands ordered highest threshold first.
	Bands []PerformanceBand `json:"bands"`
}

// RubricFor returns the immutable rubric table for the given version.
// The returned definition is shared; callers must not modify it.
func RubricFor(version RubricVersion) (*RubricDefinition, error) {
	switch version {
	case RubricVersionStandard:
		return standardRubric, nil
	case RubricVersionLegacy:
		return legacyRubric, nil
	default:
		return nil, ErrUnknownRubricVersion
	}
}

// Category looks up a category by canonical name.
// Returns an UnknownCategoryError if the name is not in this table.
func (r *RubricDefinition) Category(name string) (Category, error) {
	for _, c := range r.Categories {
		if c.Name == name {
			return c, nil
		}
	}
	return Category{}, &UnknownCategoryError{Category: name, Version: r.Version}
}

// CategoryPoints returns the maximum points for the named category.
func (r *RubricDefinition) CategoryPoints(name string) (float64, error) {
	c, err := r.Category(name)
	if err != nil {
		return 0, err
	}
	return c.MaxPoints, nil
}

// CategoryNames returns the canonical category names in rubric order.
func (r *RubricDefinition) CategoryNames() []string {
	names := make([]string, len(r.Categories))
	for i, c := range r.Categories {
		names[i] = c.Name
	}
	return names
}

// CriteriaText returns the rubric prose for a category at a given
// assessment level, with every occurrence of the {context} placeholder
// replaced by the session context's topic phrase.
func (r *RubricDefinition) CriteriaText(category string, level AssessmentLevel, sctx SessionContext) (string, error) {
	c, err := r.Category(category)
	if err != nil {
		return "", err
	}
	tmpl, ok := c.criteria[level]
	if !ok {
		return "", ErrUnknownAssessmentLevel
	}
	return strings.ReplaceAll(tmpl, contextToken, sctx.Phrase()), nil
}

// LowestCredit returns the fail-closed default level for this rubric's
// vocabulary: NeedsImprovement for the binary rubric, NotMet for the
// legacy partial-credit rubric.
func (r *RubricDefinition) LowestCredit() AssessmentLevel {
	if r.Version == RubricVersionLegacy {
		return LevelNotMet
	}
	return LevelNeedsImprovement
}

// PerformanceBand returns the label of the highest band whose threshold
// the score reaches. Boundary scores resolve to the higher band. If no
// band matches, the lowest band's label is returned as a fail-safe;
// with bands covering [0, 100] this only triggers on out-of-range input.
func (r *RubricDefinition) PerformanceBand(score float64) string {
	pct := score / r.TotalPossible * 100
	for _, b := range r.Bands {
		if pct >= b.MinPercentage {
			return b.Label
		}
	}
	return r.Bands[len(r.Bands)-1].Label
}

// standardBands cover [0, 100] with no gaps, highest threshold first.
var standardBands = []PerformanceBand{
	{MinPercentage: 90, Label: "Excellent MI skills demonstrated"},
	{MinPercentage: 75, Label: "Good MI skills with minor gaps"},
	{MinPercentage: 60, Label: "Developing MI skills, more practice recommended"},
	{MinPercentage: 40, Label: "Basic MI awareness, significant practice needed"},
	{MinPercentage: 0, Label: "Fundamental MI concepts not yet demonstrated"},
}

var standardRubric = &RubricDefinition{
	Version: RubricVersionStandard,
	Categories: []Category{
		{
			Name: CategoryCollaboration, MaxPoints: 9, Mode: ScoringModeBinary,
			criteria: map[AssessmentLevel]string{
				LevelMeetsCriteria:    "Builds a genuine partnership with the patient, inviting their perspective on {context} rather than lecturing.",
				LevelNeedsImprovement: "Directs the conversation one-sidedly; the patient's own perspective on {context} is not invited or built upon.",
			},
		},
		{
			Name: CategoryAcceptance, MaxPoints: 6, Mode: ScoringModeBinary,
			criteria: map[AssessmentLevel]string{
				LevelMeetsCriteria:    "Respects the patient's autonomy to decide about {context}, affirming their right to choose without pressure.",
				LevelNeedsImprovement: "Pressures or dismisses the patient's autonomy regarding {context} instead of affirming their right to decide.",
			},
		},
		{
			Name: CategoryCompassion, MaxPoints: 6, Mode: ScoringModeBinary,
			criteria: map[AssessmentLevel]string{
				LevelMeetsCriteria:    "Responds to the patient's concerns about {context} with warmth and places the patient's wellbeing first.",
				LevelNeedsImprovement: "Overlooks the patient's concerns about {context}; responses feel procedural rather than caring.",
			},
		},
		{
			Name: CategoryEvocation, MaxPoints: 6, Mode: ScoringModeBinary,
			criteria: map[AssessmentLevel]string{
				LevelMeetsCriteria:    "Draws out the patient's own motivations for {context} through open questions and reflective listening.",
				LevelNeedsImprovement: "Supplies reasons for {context} instead of evoking the patient's own motivations and change talk.",
			},
		},
		{
			Name: CategorySummary, MaxPoints: 3, Mode: ScoringModeBinary,
			criteria: map[AssessmentLevel]string{
				LevelMeetsCriteria:    "Closes with an accurate summary of the patient's views and any next steps agreed about {context}.",
				LevelNeedsImprovement: "Ends the conversation without summarizing the patient's views or the agreed next steps about {context}.",
			},
		},
		{
			Name: CategoryResponseFactor, MaxPoints: 10, Mode: ScoringModeBinary,
			criteria: map[AssessmentLevel]string{
				LevelMeetsCriteria:    "Keeps a natural conversational pace, responding to the patient promptly throughout the {context} discussion.",
				LevelNeedsImprovement: "Long pauses before responses disrupt the flow of the {context} discussion.",
			},
		},
	},
	TotalPossible: 40,
	Bands:         standardBands,
}

var legacyRubric = &RubricDefinition{
	Version: RubricVersionLegacy,
	Categories: []Category{
		{
			Name: CategoryCollaboration, MaxPoints: 7.5, Mode: ScoringModePartialCredit,
			criteria: map[AssessmentLevel]string{
				LevelMet:          "Consistently partners with the patient when discussing {context}.",
				LevelPartiallyMet: "Partners with the patient at times, but slips into lecturing about {context}.",
				LevelNotMet:       "Does not engage the patient as a partner in the {context} discussion.",
			},
		},
		{
			Name: CategoryAcceptance, MaxPoints: 7.5, Mode: ScoringModePartialCredit,
			criteria: map[AssessmentLevel]string{
				LevelMet:          "Fully affirms the patient's autonomy to decide about {context}.",
				LevelPartiallyMet: "Acknowledges autonomy about {context} inconsistently, with occasional pressure.",
				LevelNotMet:       "Disregards the patient's autonomy to decide about {context}.",
			},
		},
		{
			Name: CategoryCompassion, MaxPoints: 7.5, Mode: ScoringModePartialCredit,
			criteria: map[AssessmentLevel]string{
				LevelMet:          "Consistently responds with warmth to concerns about {context}.",
				LevelPartiallyMet: "Shows warmth about {context} concerns at times, but misses cues.",
				LevelNotMet:       "Shows little warmth toward the patient's concerns about {context}.",
			},
		},
		{
			Name: CategoryEvocation, MaxPoints: 7.5, Mode: ScoringModePartialCredit,
			criteria: map[AssessmentLevel]string{
				LevelMet:          "Reliably evokes the patient's own motivations regarding {context}.",
				LevelPartiallyMet: "Evokes some patient motivation about {context}, but often supplies reasons instead.",
				LevelNotMet:       "Does not attempt to evoke the patient's own motivations regarding {context}.",
			},
		},
	},
	TotalPossible: 30,
	Bands:         standardBands,
}
