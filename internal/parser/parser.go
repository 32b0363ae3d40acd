// Package parser turns free-text LLM feedback into structured category
// assessments. The parser is heuristic by design: real LLM output
// varies in markdown decoration, numbering, and separator style, so
// each line is normalized and then tried against an ordered table of
// independent patterns. Lines that match no pattern are skipped
// silently; feedback routinely contains prose paragraphs and headers.
package parser

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"github.com/ahrav/mi-rubric/internal/domain"
)

// DefaultMaxCategoryDistance is the default Levenshtein edit-distance
// budget for fuzzy category-name matching. Two edits recover common
// LLM misspellings ("Colaboration") without letting unrelated words
// match a category.
const DefaultMaxCategoryDistance = 2

// foldCaser is a package-level Unicode case folder shared by all
// parsers. This avoids creating a new caser per string comparison.
var foldCaser = cases.Fold()

// linePattern pairs a compiled expression with a name for diagnostics.
// Every pattern exposes the named groups "category" and "level", and
// optionally "note". Patterns are tried in table order; the first match
// wins.
type linePattern struct {
	name string
	re   *regexp.Regexp
}

// linePatterns is the ordered pattern table. Each entry tolerates an
// optional leading ordinal ("1. " or "1) "), an optional point
// annotation ("(9 pts)" or "(7.5 pts)"), and optional brackets around
// the assessment token. Markdown emphasis is stripped before matching.
//
//	colon-level-dash-note:  Category (9 pts): [Level] - note text
//	colon-level:            Category: Level
//	dash-level:             Category (9 pts) - [Level]
var linePatterns = []linePattern{
	{
		name: "colon-level-dash-note",
		re: regexp.MustCompile(`^(?:\d+\s*[.)]\s*)?(?P<category>[A-Za-z][A-Za-z ]*?)\s*` +
			`(?:\(\s*\d+(?:\.\d+)?\s*pts?\.?\s*\))?\s*:\s*` +
			`\[?(?P<level>[A-Za-z][A-Za-z ]*?)\]?\s*[-–—]\s*(?P<note>\S.*)$`),
	},
	{
		name: "colon-level",
		re: regexp.MustCompile(`^(?:\d+\s*[.)]\s*)?(?P<category>[A-Za-z][A-Za-z ]*?)\s*` +
			`(?:\(\s*\d+(?:\.\d+)?\s*pts?\.?\s*\))?\s*:\s*` +
			`\[?(?P<level>[A-Za-z][A-Za-z ]*?)\]?\s*$`),
	},
	{
		name: "dash-level",
		re: regexp.MustCompile(`^(?:\d+\s*[.)]\s*)?(?P<category>[A-Za-z][A-Za-z ]*?)\s*` +
			`(?:\(\s*\d+(?:\.\d+)?\s*pts?\.?\s*\))?\s*[-–—]\s*` +
			`\[?(?P<level>[A-Za-z][A-Za-z ]*?)\]?\s*$`),
	},
}

// binaryAliases maps case-folded assessment tokens to levels for the
// binary rubric vocabulary.
var binaryAliases = map[string]domain.AssessmentLevel{
	"meets criteria":    domain.LevelMeetsCriteria,
	"meets":             domain.LevelMeetsCriteria,
	"met":               domain.LevelMeetsCriteria,
	"criteria met":      domain.LevelMeetsCriteria,
	"pass":              domain.LevelMeetsCriteria,
	"passed":            domain.LevelMeetsCriteria,
	"needs improvement": domain.LevelNeedsImprovement,
	"needs work":        domain.LevelNeedsImprovement,
	"not met":           domain.LevelNeedsImprovement,
	"unmet":             domain.LevelNeedsImprovement,
	"fail":              domain.LevelNeedsImprovement,
	"failed":            domain.LevelNeedsImprovement,
}

// legacyAliases maps case-folded assessment tokens to levels for the
// legacy three-level vocabulary.
var legacyAliases = map[string]domain.AssessmentLevel{
	"met":                domain.LevelMet,
	"fully met":          domain.LevelMet,
	"achieved":           domain.LevelMet,
	"meets criteria":     domain.LevelMet,
	"partially met":      domain.LevelPartiallyMet,
	"partial":            domain.LevelPartiallyMet,
	"partially achieved": domain.LevelPartiallyMet,
	"somewhat met":       domain.LevelPartiallyMet,
	"not met":            domain.LevelNotMet,
	"unmet":              domain.LevelNotMet,
	"not achieved":       domain.LevelNotMet,
	"missed":             domain.LevelNotMet,
}

// Parser extracts category assessments from feedback text for one
// rubric table. A Parser is stateless after construction and safe for
// concurrent use.
type Parser struct {
	rubric      *domain.RubricDefinition
	maxDistance int
	aliases     map[string]domain.AssessmentLevel
	// foldedNames caches the case-folded canonical names in rubric order.
	foldedNames []string
}

// Option configures optional Parser behavior.
type Option func(*Parser)

// WithMaxCategoryDistance overrides the Levenshtein edit-distance
// budget for fuzzy category matching. Zero disables fuzzy matching
// entirely, leaving only exact case-insensitive matches.
func WithMaxCategoryDistance(d int) Option {
	return func(p *Parser) { p.maxDistance = d }
}

// New creates a Parser bound to the given rubric table. The rubric
// determines both the recognizable category names and which assessment
// vocabulary (binary or legacy) tokens resolve against.
func New(rubric *domain.RubricDefinition, opts ...Option) *Parser {
	p := &Parser{
		rubric:      rubric,
		maxDistance: DefaultMaxCategoryDistance,
		aliases:     binaryAliases,
	}
	if rubric.Version == domain.RubricVersionLegacy {
		p.aliases = legacyAliases
	}
	for _, name := range rubric.CategoryNames() {
		p.foldedNames = append(p.foldedNames, foldCaser.String(name))
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts category assessments from feedback text. The result
// maps canonical category names to their parsed assessment; categories
// the text never mentions are absent. When the same category appears on
// multiple lines, the last occurrence wins. Parse never fails on
// malformed input: unmatched lines are skipped and unknown assessment
// tokens resolve to the rubric's lowest-credit level.
func (p *Parser) Parse(feedback string) map[string]domain.ParsedAssessment {
	parsed := make(map[string]domain.ParsedAssessment)
	for _, raw := range strings.Split(feedback, "\n") {
		line := normalizeLine(raw)
		if line == "" {
			continue
		}
		assessment, ok := p.parseLine(line)
		if !ok {
			continue
		}
		parsed[assessment.Category] = assessment
	}
	return parsed
}

// ParseStrict behaves like Parse but returns ErrEmptyParseResult when
// zero category lines were recognized. An empty result almost always
// means the text is not rubric feedback at all, so strict callers can
// surface an unscored state instead of a silent zero.
func (p *Parser) ParseStrict(feedback string) (map[string]domain.ParsedAssessment, error) {
	parsed := p.Parse(feedback)
	if len(parsed) == 0 {
		return nil, domain.ErrEmptyParseResult
	}
	return parsed, nil
}

// parseLine tries the pattern table in order against one normalized line.
func (p *Parser) parseLine(line string) (domain.ParsedAssessment, bool) {
	for _, pat := range linePatterns {
		m := pat.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		groups := groupMap(pat.re, m)

		category, ok := p.matchCategory(groups["category"])
		if !ok {
			// The line is shaped like an assessment but names no rubric
			// category; treat it as prose.
			continue
		}

		return domain.ParsedAssessment{
			Category: category,
			Level:    p.resolveLevel(groups["level"]),
			Note:     strings.TrimSpace(groups["note"]),
		}, true
	}
	return domain.ParsedAssessment{}, false
}

// matchCategory resolves a raw category token to a canonical rubric
// name. Matching is case-insensitive; when no exact match exists, the
// closest name within the edit-distance budget is chosen.
func (p *Parser) matchCategory(raw string) (string, bool) {
	folded := foldCaser.String(strings.TrimSpace(raw))
	if folded == "" {
		return "", false
	}

	names := p.rubric.CategoryNames()
	for i, fn := range p.foldedNames {
		if folded == fn {
			return names[i], true
		}
	}

	if p.maxDistance <= 0 {
		return "", false
	}
	best, bestDist := "", p.maxDistance+1
	for i, fn := range p.foldedNames {
		if d := levenshtein.ComputeDistance(folded, fn); d < bestDist {
			best, bestDist = names[i], d
		}
	}
	return best, best != ""
}

// resolveLevel maps an assessment token to a level via the alias table.
// Unknown tokens resolve to the rubric's lowest-credit level; parsing
// never raises on a malformed status.
func (p *Parser) resolveLevel(raw string) domain.AssessmentLevel {
	if level, ok := p.aliases[foldCaser.String(strings.TrimSpace(raw))]; ok {
		return level
	}
	return p.rubric.LowestCredit()
}

// normalizeLine strips markdown decoration that varies between LLM
// outputs: emphasis markers, inline code ticks, header prefixes, and
// surrounding whitespace.
func normalizeLine(raw string) string {
	line := strings.ReplaceAll(raw, "*", "")
	line = strings.ReplaceAll(line, "`", "")
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "#")
	line = strings.Trim(line, "_")
	return strings.TrimSpace(line)
}

// groupMap extracts named capture groups from a regexp match.
func groupMap(re *regexp.Regexp, match []string) map[string]string {
	groups := make(map[string]string, len(match))
	for i, name := range re.SubexpNames() {
		if name != "" && i < len(match) {
			groups[name] = match[i]
		}
	}
	return groups
}
