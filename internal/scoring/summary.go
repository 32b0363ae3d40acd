package scoring

import (
	"strconv"
	"strings"

	"github.com/ahrav/mi-rubric/internal/domain"
)

// FormatSummary renders a fixed-order plain-text summary of a result:
// total/max with percentage, the performance band, then one line per
// category. Numbers pass through as computed; no rounding policy is
// hidden here, so display layers decide precision. This exists for the
// PDF and CLI consumers that need a canonical diagnostic text form.
func FormatSummary(result domain.EvaluationResult) string {
	var b strings.Builder

	b.WriteString("Score: ")
	b.WriteString(formatNumber(result.TotalScore))
	b.WriteString("/")
	b.WriteString(formatNumber(result.MaxPossibleScore))
	b.WriteString(" (")
	b.WriteString(formatNumber(result.Percentage))
	b.WriteString("%)\n")

	b.WriteString("Performance: ")
	b.WriteString(result.PerformanceBand)
	b.WriteString("\n")

	b.WriteString("Rubric: ")
	b.WriteString(result.RubricVersion.String())
	b.WriteString("\n")

	b.WriteString("Context: ")
	b.WriteString(result.Context.String())
	b.WriteString("\n")

	for _, c := range result.Components {
		b.WriteString("- ")
		b.WriteString(c.Category)
		b.WriteString(": ")
		b.WriteString(formatNumber(c.PointsAwarded))
		b.WriteString("/")
		b.WriteString(formatNumber(c.MaxPoints))
		b.WriteString(" (")
		b.WriteString(c.Level.Display())
		b.WriteString(")")
		if c.Note != "" {
			b.WriteString(" - ")
			b.WriteString(c.Note)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// formatNumber renders a float with the shortest exact representation,
// leaving display rounding to callers.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
