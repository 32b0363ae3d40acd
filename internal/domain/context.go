package domain

import "strings"

// SessionContext selects which clinical topic a training session covers.
// It determines the noun phrase substituted into rubric criteria prose.
type SessionContext string

const (
	// ContextHPV covers HPV vaccination counseling sessions.
	ContextHPV SessionContext = "HPV"

	// ContextOHI covers oral health instruction sessions.
	ContextOHI SessionContext = "OHI"
)

// contextToken is the placeholder in criteria prose replaced by the
// session context's topic phrase. Replacement is literal and applies to
// every occurrence.
const contextToken = "{context}"

// Phrase returns the noun phrase substituted into criteria text for
// this context.
func (c SessionContext) Phrase() string {
	if c == ContextOHI {
		return "oral health"
	}
	return "HPV vaccination"
}

// String returns the canonical context tag.
func (c SessionContext) String() string { return string(c) }

// ParseSessionContext maps a caller-supplied session type string to a
// SessionContext. Matching is case-insensitive substring detection:
// "HPV" selects ContextHPV, "OHI" or "ORAL" selects ContextOHI, and
// anything else falls back to ContextHPV. The fallback is documented
// behavior, not an error.
func ParseSessionContext(sessionType string) SessionContext {
	s := strings.ToLower(sessionType)
	switch {
	case strings.Contains(s, "hpv"):
		return ContextHPV
	case strings.Contains(s, "ohi"), strings.Contains(s, "oral"):
		return ContextOHI
	default:
		return ContextHPV
	}
}
