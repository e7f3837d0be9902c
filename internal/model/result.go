package model

import "encoding/json"

// ScoreResult is the complete ensemble score output.
// The JSON shape is a compatibility surface; field names and nesting
// must not change without a version bump.
type ScoreResult struct {
	EvidenceStrength float64         `json:"evidence_strength"` // Normalized weighted evidence score
	SentimentScores  SentimentScores `json:"sentiment_scores"`  // Detailed sentiment breakdown
	TrendScores      TrendScores     `json:"trend_scores"`      // Momentum sub-scores
}

// SentimentScores is the weighted sentiment breakdown for a relationship.
// When the DominantWeighted aggregation method is selected only the
// dominant label is populated and the detailed fields are omitted from
// JSON output.
type SentimentScores struct {
	PositiveScore     float64           `json:"positive_score"`
	NegativeScore     float64           `json:"negative_score"`
	NeutralScore      float64           `json:"neutral_score"`
	NetScore          float64           `json:"net_score"` // positive_score - negative_score
	DominantSentiment DominantSentiment `json:"dominant_sentiment"`

	// Detailed reports whether the breakdown fields are meaningful.
	// True for NetScoreDetailed, false for DominantWeighted.
	Detailed bool `json:"-"`
}

// MarshalJSON omits the breakdown fields when only the dominant label
// was computed (DominantWeighted short-circuit).
func (s SentimentScores) MarshalJSON() ([]byte, error) {
	if !s.Detailed {
		return json.Marshal(struct {
			DominantSentiment DominantSentiment `json:"dominant_sentiment"`
		}{s.DominantSentiment})
	}
	type detailed struct {
		PositiveScore     float64           `json:"positive_score"`
		NegativeScore     float64           `json:"negative_score"`
		NeutralScore      float64           `json:"neutral_score"`
		NetScore          float64           `json:"net_score"`
		DominantSentiment DominantSentiment `json:"dominant_sentiment"`
	}
	return json.Marshal(detailed{
		PositiveScore:     s.PositiveScore,
		NegativeScore:     s.NegativeScore,
		NeutralScore:      s.NeutralScore,
		NetScore:          s.NetScore,
		DominantSentiment: s.DominantSentiment,
	})
}

// UnmarshalJSON accepts both the detailed and the dominant-only shape.
func (s *SentimentScores) UnmarshalJSON(data []byte) error {
	type alias struct {
		PositiveScore     *float64          `json:"positive_score"`
		NegativeScore     float64           `json:"negative_score"`
		NeutralScore      float64           `json:"neutral_score"`
		NetScore          float64           `json:"net_score"`
		DominantSentiment DominantSentiment `json:"dominant_sentiment"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	s.Detailed = a.PositiveScore != nil
	if a.PositiveScore != nil {
		s.PositiveScore = *a.PositiveScore
	}
	s.NegativeScore = a.NegativeScore
	s.NeutralScore = a.NeutralScore
	s.NetScore = a.NetScore
	s.DominantSentiment = a.DominantSentiment
	return nil
}

// TrendScores holds the three independent momentum sub-scores,
// always computed and returned together.
type TrendScores struct {
	RecencyWeighted     float64 `json:"recency_weighted"`     // Exponential-decay weighted sum
	RateOfChange        float64 `json:"rate_of_change"`       // Recent window total minus prior window total
	EvidenceProgression float64 `json:"evidence_progression"` // Max progression points reached recently
}
