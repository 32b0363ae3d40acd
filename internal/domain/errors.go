package domain

import (
	"errors"
	"fmt"
)

// Common domain errors returned by rubric lookups and evaluation.
var (
	// ErrUnknownCategory indicates a lookup for a category name that is
	// not part of the active rubric table. This is a programmer error,
	// not a property of user input, and is always surfaced.
	ErrUnknownCategory = errors.New("unknown rubric category")

	// ErrUnknownRubricVersion indicates an evaluation was requested
	// against a rubric version that does not exist.
	ErrUnknownRubricVersion = errors.New("unknown rubric version")

	// ErrUnknownAssessmentLevel indicates a criteria-text lookup for a
	// level the category's scoring mode does not define.
	ErrUnknownAssessmentLevel = errors.New("unknown assessment level")

	// ErrEmptyParseResult indicates strict-mode parsing recognized zero
	// category lines, which usually means the text is not rubric feedback.
	ErrEmptyParseResult = errors.New("no rubric categories found in feedback text")

	// ErrInvalidConfiguration indicates configuration that failed
	// structural validation.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// UnknownCategoryError reports which category name failed a rubric
// lookup and under which rubric version.
type UnknownCategoryError struct {
	// Category is the name that was requested.
	Category string

	// Version identifies the rubric table that was consulted.
	Version RubricVersion
}

// Error implements the error interface for UnknownCategoryError.
func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown rubric category %q in rubric %s", e.Category, e.Version)
}

// Unwrap returns ErrUnknownCategory so callers can match with errors.Is.
func (e *UnknownCategoryError) Unwrap() error { return ErrUnknownCategory }
