package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ahrav/mi-rubric/infrastructure/middleware"
	"github.com/ahrav/mi-rubric/internal/application"
	"github.com/ahrav/mi-rubric/internal/domain"
	"github.com/ahrav/mi-rubric/internal/ports"
	"github.com/ahrav/mi-rubric/internal/scoring"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a feedback text against the MI rubric",
	Long: "Reads LLM feedback text from a file (or stdin), evaluates it against " +
		"the selected rubric version, and prints the score summary.",
	RunE: runEvaluate,
}

var (
	evalInputFile   string
	evalConfigFile  string
	evalRubric      string
	evalSessionType string
	evalLatency     float64
	evalThreshold   float64
	evalAttempt     int
	evalLeniency    bool
	evalStrict      bool
	evalJSON        bool
)

func init() {
	evaluateCmd.Flags().StringVarP(&evalInputFile, "input", "i", "", "Path to feedback text file (default: stdin)")
	evaluateCmd.Flags().StringVarP(&evalConfigFile, "config", "c", "", "Path to engine config YAML")
	evaluateCmd.Flags().StringVarP(&evalRubric, "rubric", "r", string(domain.RubricVersionStandard), "Rubric version (standard-40pt or legacy-30pt)")
	evaluateCmd.Flags().StringVarP(&evalSessionType, "session-type", "s", "HPV", "Session type (selects HPV or OHI context)")
	evaluateCmd.Flags().Float64VarP(&evalLatency, "latency", "l", -1, "Measured average reply latency in seconds (overrides Response Factor)")
	evaluateCmd.Flags().Float64VarP(&evalThreshold, "threshold", "t", 0, "Response Factor latency threshold in seconds (default from config)")
	evaluateCmd.Flags().IntVarP(&evalAttempt, "attempt", "a", 1, "Attempt number (used by leniency)")
	evaluateCmd.Flags().BoolVar(&evalLeniency, "leniency", false, "Apply the legacy leniency adjustment")
	evaluateCmd.Flags().BoolVar(&evalStrict, "strict", false, "Fail when no rubric categories are found in the text")
	evaluateCmd.Flags().BoolVar(&evalJSON, "json", false, "Emit the full result structure as JSON")

	rootCmd.AddCommand(evaluateCmd)
}

// fileSource reads feedback text from a file or stdin.
type fileSource struct {
	path string
}

var _ ports.FeedbackSource = fileSource{}

// FeedbackText implements ports.FeedbackSource.
func (f fileSource) FeedbackText(_ context.Context) (string, error) {
	if f.path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read feedback from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("failed to read feedback file: %w", err)
	}
	return string(data), nil
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	config := application.DefaultEngineConfig()
	if evalConfigFile != "" {
		data, err := os.ReadFile(evalConfigFile)
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if config, err = application.ParseEngineConfig(data); err != nil {
			return err
		}
	}

	if evalThreshold > 0 {
		config.Evaluator.ResponseThresholdSeconds = evalThreshold
	}

	engine, err := application.NewEngine(config)
	if err != nil {
		return err
	}
	var evaluator ports.Evaluator = middleware.NewTracingMiddleware(engine)

	ctx := cmd.Context()
	feedback, err := fileSource{path: evalInputFile}.FeedbackText(ctx)
	if err != nil {
		return err
	}

	req := ports.EvaluationRequest{
		FeedbackText:    feedback,
		SessionType:     evalSessionType,
		RubricVersion:   domain.RubricVersion(evalRubric),
		AttemptNumber:   evalAttempt,
		Strict:          evalStrict,
		LeniencyEnabled: evalLeniency,
	}
	if evalLatency >= 0 {
		req.ResponseLatencySeconds = &evalLatency
	}

	result, err := evaluator.Evaluate(ctx, req)
	if err != nil {
		return err
	}

	if evalJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), scoring.FormatSummary(result.Result))
	if result.Adjustment != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Adjusted score: %.2f/%.0f (attempt %d)\n",
			result.Adjustment.AdjustedScore, result.Result.MaxPossibleScore, result.Adjustment.AttemptNumber)
	}
	return nil
}
