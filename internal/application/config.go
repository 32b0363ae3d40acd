package application

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/mi-rubric/internal/parser"
	"github.com/ahrav/mi-rubric/internal/scoring"
)

// DefaultMaxConcurrency bounds concurrent batch evaluations when the
// configuration does not specify a limit.
const DefaultMaxConcurrency = 8

var validate = validator.New()

// EngineConfig is the complete caller-supplied configuration for an
// evaluation Engine. It is typically decoded from YAML by the embedding
// application; the engine itself performs no file I/O.
type EngineConfig struct {
	// DefaultRubric is the rubric version used when a request does not
	// name one.
	DefaultRubric string `yaml:"default_rubric" json:"default_rubric" validate:"required,oneof=standard-40pt legacy-30pt"`

	// Evaluator holds the scoring parameters (response threshold).
	Evaluator scoring.EvaluatorConfig `yaml:"evaluator" json:"evaluator"`

	// Leniency holds the opt-in adjustment constants.
	Leniency scoring.LeniencyConfig `yaml:"leniency" json:"leniency"`

	// MaxConcurrency bounds concurrent evaluations in EvaluateBatch.
	MaxConcurrency int `yaml:"max_concurrency" json:"max_concurrency" validate:"min=1,max=64"`

	// FuzzyCategoryDistance is the parser's edit-distance budget for
	// category-name matching. Zero disables fuzzy matching.
	FuzzyCategoryDistance int `yaml:"fuzzy_category_distance" json:"fuzzy_category_distance" validate:"min=0,max=5"`
}

// DefaultEngineConfig returns the documented default configuration:
// standard rubric, 2.5 s response threshold, behavior-compatible
// leniency constants.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		DefaultRubric:         "standard-40pt",
		Evaluator:             scoring.DefaultEvaluatorConfig(),
		Leniency:              scoring.DefaultLeniencyConfig(),
		MaxConcurrency:        DefaultMaxConcurrency,
		FuzzyCategoryDistance: parser.DefaultMaxCategoryDistance,
	}
}

// ParseEngineConfig decodes an EngineConfig from YAML bytes, filling
// unset fields from the defaults and validating the result. The caller
// owns reading the bytes; the core performs no file I/O.
func ParseEngineConfig(data []byte) (EngineConfig, error) {
	config := DefaultEngineConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return EngineConfig{}, fmt.Errorf("failed to decode engine config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return EngineConfig{}, err
	}
	return config, nil
}

// Validate checks the configuration for structural consistency.
func (c EngineConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("engine configuration validation failed: %w", err)
	}
	if err := validate.Struct(c.Evaluator); err != nil {
		return fmt.Errorf("engine configuration validation failed: %w", err)
	}
	return c.Leniency.Validate()
}
