// Package validate checks raw scoring input against the mention set
// schema, producing structured per-field diagnostics.
package validate

import (
	"fmt"
	"strings"

	"github.com/PulkiD/rel-scoring/internal/model"
)

// Years before this are rejected as implausible for any indexed source.
const minPlausibleYear = 1900

// FieldError describes a single schema violation
type FieldError struct {
	Field   string `json:"field"`   // Dotted path into the input (e.g. "relationship_mentions[2].year")
	Message string `json:"message"` // What is wrong
	Value   any    `json:"value,omitempty"`
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Summarize renders a list of field errors as a single line for error
// messages and log output.
func Summarize(fields []FieldError) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, "; ")
}

// Input validates a raw scoring input against the mention set schema.
// It returns every violation found, not just the first, so callers can
// surface complete diagnostics in one pass.
func Input(input model.ScoringInput) []FieldError {
	var fields []FieldError

	if len(input.RelationshipMentions) == 0 {
		fields = append(fields, FieldError{
			Field:   "relationship_mentions",
			Message: "at least one mention is required",
		})
	}

	for i, m := range input.RelationshipMentions {
		prefix := fmt.Sprintf("relationship_mentions[%d]", i)
		if m.SourceType == "" {
			fields = append(fields, FieldError{
				Field:   prefix + ".source_type",
				Message: "source_type must be a non-empty string",
			})
		}
		if m.Year <= minPlausibleYear {
			fields = append(fields, FieldError{
				Field:   prefix + ".year",
				Message: fmt.Sprintf("year must be > %d", minPlausibleYear),
				Value:   m.Year,
			})
		}
		if !m.Sentiment.Valid() {
			fields = append(fields, FieldError{
				Field:   prefix + ".sentiment",
				Message: `sentiment must be one of "Positive", "Negative", "Neutral"`,
				Value:   string(m.Sentiment),
			})
		}
	}

	fields = append(fields, entityFields("entity_a_metadata", input.EntityAMetadata)...)
	fields = append(fields, entityFields("entity_b_metadata", input.EntityBMetadata)...)

	return fields
}

func entityFields(prefix string, meta model.EntityMetadata) []FieldError {
	var fields []FieldError
	if meta.ID == "" {
		fields = append(fields, FieldError{
			Field:   prefix + ".id",
			Message: "id must be a non-empty string",
		})
	}
	if meta.OverallProminence < 0 {
		fields = append(fields, FieldError{
			Field:   prefix + ".overall_prominence",
			Message: "overall_prominence must be >= 0",
			Value:   meta.OverallProminence,
		})
	}
	return fields
}
