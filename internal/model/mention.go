package model

// Sentiment is the pre-classified polarity of a single mention
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Valid reports whether s is one of the supported sentiment labels
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// DominantSentiment is the aggregate polarity of a whole relationship.
// It extends Sentiment with "Mixed" for qualifying ties.
type DominantSentiment string

const (
	DominantPositive DominantSentiment = "Positive"
	DominantNegative DominantSentiment = "Negative"
	DominantNeutral  DominantSentiment = "Neutral"
	DominantMixed    DominantSentiment = "Mixed"
)

// Mention represents one recorded co-occurrence of the two entities
// from a single source. Mentions are immutable once validated.
type Mention struct {
	SourceType string    `json:"source_type"`          // Evidentiary category (e.g. "Guideline", "Phase 3 CT")
	Year       int       `json:"year"`                 // Publication/recording year, > 1900
	Sentiment  Sentiment `json:"sentiment"`            // Pre-classified polarity
	MentionID  string    `json:"mention_id,omitempty"` // Optional source identifier (e.g. "pmid:12345678")
}

// EntityMetadata describes one side of the relationship
type EntityMetadata struct {
	ID                string  `json:"id"`                 // Unique entity identifier
	OverallProminence float64 `json:"overall_prominence"` // Pre-computed corpus-wide importance, >= 0
}

// ScoringInput is the raw construction input for a scoring session.
// Field names are the external contract and must not change.
type ScoringInput struct {
	RelationshipMentions []Mention      `json:"relationship_mentions"`
	EntityAMetadata      EntityMetadata `json:"entity_a_metadata"`
	EntityBMetadata      EntityMetadata `json:"entity_b_metadata"`
}

// MentionSet is the validated aggregate a scoring session operates on:
// the ordered mention sequence (input order preserved, at least one
// element) plus the two entity descriptors. It is owned by a single
// orchestrator and never mutated after validation.
type MentionSet struct {
	Mentions []Mention
	EntityA  EntityMetadata
	EntityB  EntityMetadata
}
