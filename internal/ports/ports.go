// Package ports defines the interfaces between the evaluation core and
// its external collaborators (transcript acquisition, storage, display,
// observability). These contracts enable dependency inversion and keep
// the core embeddable and testable.
package ports

import (
	"context"
	"time"

	"github.com/ahrav/mi-rubric/internal/domain"
)

// EvaluationRequest carries everything a caller supplies for one
// evaluation: the LLM feedback text plus session context. The core
// never reads configuration from the environment; thresholds and flags
// arrive through engine configuration and this request.
type EvaluationRequest struct {
	// FeedbackText is the free-text rubric feedback produced by the
	// external LLM collaborator.
	FeedbackText string `json:"feedback_text"`

	// SessionType selects the clinical context. Strings containing
	// "HPV" map to the HPV context, "OHI" or "ORAL" to oral health;
	// anything else falls back to HPV.
	SessionType string `json:"session_type"`

	// RubricVersion selects the rubric table. Empty uses the engine's
	// configured default. The version is never inferred from the
	// feedback's shape; the caller's session era is authoritative.
	RubricVersion domain.RubricVersion `json:"rubric_version,omitempty"`

	// ResponseLatencySeconds, when non-nil, is the measured average
	// reply latency and overrides the text-parsed Response Factor
	// assessment.
	ResponseLatencySeconds *float64 `json:"response_latency_seconds,omitempty"`

	// AttemptNumber is the learner's retry count, used only by the
	// leniency adjustment. Values below 1 are treated as 1.
	AttemptNumber int `json:"attempt_number,omitempty"`

	// Notes are caller-supplied per-category remarks that replace the
	// notes parsed from feedback text.
	Notes map[string]string `json:"notes,omitempty"`

	// Strict makes an evaluation fail with ErrEmptyParseResult when the
	// feedback yields zero recognizable category lines.
	Strict bool `json:"strict,omitempty"`

	// LeniencyEnabled opts this evaluation into the legacy leniency
	// adjustment. Disabled by default.
	LeniencyEnabled bool `json:"leniency_enabled,omitempty"`
}

// Evaluator is the core evaluation contract consumed by transports,
// middleware, and the CLI. Implementations must be safe for concurrent
// use and must never return a score outside [0, max], regardless of how
// malformed the feedback text is.
type Evaluator interface {
	// Evaluate parses the request's feedback text, scores it against
	// the selected rubric, and applies the leniency adjustment when the
	// request opts in. The context is honored for cancellation between
	// requests in batch settings; a single evaluation is synchronous
	// pure computation.
	Evaluate(ctx context.Context, req EvaluationRequest) (domain.AdjustedResult, error)
}

// FeedbackSource supplies feedback text from an external collaborator,
// such as the LLM pipeline or a file. The core only ever consumes the
// final text; prompting and transcript handling live behind this
// interface.
type FeedbackSource interface {
	// FeedbackText returns the complete feedback text to evaluate.
	FeedbackText(ctx context.Context) (string, error)
}

// MetricsCollector abstracts metrics recording so the evaluation path
// can be instrumented without binding the core to a metrics backend.
type MetricsCollector interface {
	// RecordEvaluation records one completed evaluation with its rubric
	// version, performance band, and outcome status ("ok" or "error").
	RecordEvaluation(rubric, band, status string)

	// RecordScore records the percentage score of a successful
	// evaluation for distribution tracking.
	RecordScore(rubric string, percentage float64)

	// RecordLatency records how long an evaluation took.
	RecordLatency(rubric string, d time.Duration)
}
