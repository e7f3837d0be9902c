package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestScoreResult_JSONShape(t *testing.T) {
	result := ScoreResult{
		EvidenceStrength: 6.93,
		SentimentScores: SentimentScores{
			PositiveScore:     10,
			NegativeScore:     3,
			NeutralScore:      0,
			NetScore:          7,
			DominantSentiment: DominantPositive,
			Detailed:          true,
		},
		TrendScores: TrendScores{
			RecencyWeighted:     8.1,
			RateOfChange:        2.5,
			EvidenceProgression: 10,
		},
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Field names and nesting are a compatibility surface.
	for _, key := range []string{
		`"evidence_strength"`,
		`"sentiment_scores"`,
		`"positive_score"`,
		`"negative_score"`,
		`"neutral_score"`,
		`"net_score"`,
		`"dominant_sentiment"`,
		`"trend_scores"`,
		`"recency_weighted"`,
		`"rate_of_change"`,
		`"evidence_progression"`,
	} {
		if !strings.Contains(string(data), key) {
			t.Errorf("Expected key %s in output: %s", key, data)
		}
	}
}

func TestSentimentScores_DominantOnlyOmitsBreakdown(t *testing.T) {
	scores := SentimentScores{DominantSentiment: DominantMixed}

	data, err := json.Marshal(scores)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if strings.Contains(string(data), "positive_score") {
		t.Errorf("Expected breakdown omitted, got %s", data)
	}
	if !strings.Contains(string(data), `"dominant_sentiment":"Mixed"`) {
		t.Errorf("Expected dominant label, got %s", data)
	}
}

func TestSentimentScores_JSONRoundTrip(t *testing.T) {
	original := SentimentScores{
		PositiveScore:     4,
		NegativeScore:     4,
		NetScore:          0,
		DominantSentiment: DominantMixed,
		Detailed:          true,
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var decoded SentimentScores
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if decoded != original {
		t.Errorf("Round trip mismatch: %+v vs %+v", decoded, original)
	}
	if !decoded.Detailed {
		t.Error("Expected detailed flag restored from breakdown presence")
	}
}

func TestScoringInput_JSONFieldNames(t *testing.T) {
	raw := `{
		"relationship_mentions": [
			{"source_type": "Guideline", "year": 2024, "sentiment": "Positive", "mention_id": "NCT00001234"}
		],
		"entity_a_metadata": {"id": "CHEMBL25", "overall_prominence": 4.2},
		"entity_b_metadata": {"id": "EFO:0000270", "overall_prominence": 1.1}
	}`

	var input ScoringInput
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(input.RelationshipMentions) != 1 {
		t.Fatalf("Expected 1 mention, got %d", len(input.RelationshipMentions))
	}
	m := input.RelationshipMentions[0]
	if m.SourceType != "Guideline" || m.Year != 2024 || m.Sentiment != SentimentPositive || m.MentionID != "NCT00001234" {
		t.Errorf("Unexpected mention: %+v", m)
	}
	if input.EntityAMetadata.ID != "CHEMBL25" || input.EntityAMetadata.OverallProminence != 4.2 {
		t.Errorf("Unexpected entity a: %+v", input.EntityAMetadata)
	}
}
