package score

import (
	"fmt"

	"github.com/PulkiD/rel-scoring/internal/validate"
)

// The four error kinds are distinct and non-overlapping. Callers match
// with errors.As and act per kind; none is ever swallowed or retried.

// InputValidationError reports that the raw scoring input failed schema
// validation. Raised only during construction, never during scoring.
type InputValidationError struct {
	Fields []validate.FieldError
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("input validation failed: %s", validate.Summarize(e.Fields))
}

// ConfigurationError reports a missing, malformed, or unsupported
// configuration value, or a mention source type absent from the weight
// table. Raised during construction for method selectors and required
// keys, or during calculation for the source-type-lookup case.
type ConfigurationError struct {
	Key     string // Configuration key or source type involved
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Key == "" {
		return "configuration error: " + e.Message
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Message)
}

// CalculationError wraps an internal computation fault with the score
// and, where known, the mention it occurred on.
type CalculationError struct {
	Score     string // Which score was being computed
	MentionID string // Offending mention, if identifiable
	Err       error
}

func (e *CalculationError) Error() string {
	if e.MentionID != "" {
		return fmt.Sprintf("calculation error in %s (mention %s): %v", e.Score, e.MentionID, e.Err)
	}
	return fmt.Sprintf("calculation error in %s: %v", e.Score, e.Err)
}

func (e *CalculationError) Unwrap() error { return e.Err }

// InitializationError is the umbrella for any construction failure not
// classified as input validation or configuration.
type InitializationError struct {
	Err error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("scoring initialization failed: %v", e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }
