package model

import "fmt"

// Config is the complete scoring configuration, loaded once per
// scoring session and shared read-only across all calculators.
type Config struct {
	SourceWeights    map[string]float64     `yaml:"source_weights" json:"source_weights"`
	EvidenceStrength EvidenceStrengthConfig `yaml:"evidence_strength" json:"evidence_strength"`
	Sentiment        SentimentConfig        `yaml:"sentiment" json:"sentiment"`
	Trend            TrendConfig            `yaml:"trend" json:"trend"`
	Logging          LoggingConfig          `yaml:"logging" json:"logging"`
}

// EvidenceStrengthConfig selects the evidence strength strategies
type EvidenceStrengthConfig struct {
	FrequencyAggregation string `yaml:"frequency_aggregation" json:"frequency_aggregation"` // Logarithmic | SimpleSum
	NormalizationMethod  string `yaml:"normalization_method" json:"normalization_method"`   // PMI-like | RelativeFrequency | None
	ProminenceCombiner   string `yaml:"prominence_combiner,omitempty" json:"prominence_combiner,omitempty"`
}

// SentimentConfig selects the sentiment aggregation method
type SentimentConfig struct {
	AggregationMethod string `yaml:"aggregation_method" json:"aggregation_method"` // NetScoreDetailed | DominantWeighted
}

// TrendConfig holds the parameters for the three trend sub-scores
type TrendConfig struct {
	RecencyWeighted     RecencyWeightedConfig     `yaml:"recency_weighted" json:"recency_weighted"`
	RateOfChange        RateOfChangeConfig        `yaml:"rate_of_change" json:"rate_of_change"`
	EvidenceProgression EvidenceProgressionConfig `yaml:"evidence_progression" json:"evidence_progression"`
}

// RecencyWeightedConfig controls exponential time decay
type RecencyWeightedConfig struct {
	DecayRate *float64 `yaml:"decay_rate" json:"decay_rate"` // >= 0; larger discounts older evidence faster
}

// RateOfChangeConfig controls the comparison windows
type RateOfChangeConfig struct {
	WindowYears *float64 `yaml:"window_years" json:"window_years"` // > 0; width of each comparison window
}

// EvidenceProgressionConfig rewards recently reaching a higher evidence tier
type EvidenceProgressionConfig struct {
	RecentYearsThreshold *float64           `yaml:"recent_years_threshold" json:"recent_years_threshold"` // >= 0
	ProgressionPoints    map[string]float64 `yaml:"progression_points" json:"progression_points"`         // source type -> points
}

// LoggingConfig controls process-wide log output
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`   // debug | info | warn | error
	Format string `yaml:"format" json:"format"` // text | json
}

func floatPtr(v float64) *float64 { return &v }

// DefaultConfig returns the built-in scoring configuration with the
// standard biomedical source vocabulary
func DefaultConfig() *Config {
	return &Config{
		SourceWeights: map[string]float64{
			"Guideline":           10,
			"Label":               9,
			"Phase 4 CT":          8,
			"Phase 3 CT":          7,
			"Phase 2 CT":          5,
			"Phase 1 CT":          4,
			"PubMed":              3,
			"Review":              3,
			"Conference Abstract": 2,
			"Preclinical":         1,
			"Other":               0.5,
		},
		EvidenceStrength: EvidenceStrengthConfig{
			FrequencyAggregation: "Logarithmic",
			NormalizationMethod:  "None",
			ProminenceCombiner:   "product",
		},
		Sentiment: SentimentConfig{
			AggregationMethod: "NetScoreDetailed",
		},
		Trend: TrendConfig{
			RecencyWeighted: RecencyWeightedConfig{DecayRate: floatPtr(0.2)},
			RateOfChange:    RateOfChangeConfig{WindowYears: floatPtr(3)},
			EvidenceProgression: EvidenceProgressionConfig{
				RecentYearsThreshold: floatPtr(2),
				ProgressionPoints: map[string]float64{
					"Guideline":  10,
					"Label":      8,
					"Phase 4 CT": 7,
					"Phase 3 CT": 6,
					"Phase 2 CT": 4,
					"Phase 1 CT": 3,
					"PubMed":     2,
					"Review":     2,
				},
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks structural invariants that do not depend on any
// particular mention set: weight ranges and required trend parameters.
// Method-name resolution happens in the score package where the closed
// strategy sets live.
func (c *Config) Validate() error {
	if len(c.SourceWeights) == 0 {
		return fmt.Errorf("source_weights: at least one source type is required")
	}
	for sourceType, weight := range c.SourceWeights {
		if weight < 0 {
			return fmt.Errorf("source_weights[%q]: weight must be >= 0, got %g", sourceType, weight)
		}
	}
	if c.Trend.RecencyWeighted.DecayRate == nil {
		return fmt.Errorf("trend.recency_weighted.decay_rate: required key missing")
	}
	if *c.Trend.RecencyWeighted.DecayRate < 0 {
		return fmt.Errorf("trend.recency_weighted.decay_rate: must be >= 0, got %g", *c.Trend.RecencyWeighted.DecayRate)
	}
	if c.Trend.RateOfChange.WindowYears == nil {
		return fmt.Errorf("trend.rate_of_change.window_years: required key missing")
	}
	if *c.Trend.RateOfChange.WindowYears <= 0 {
		return fmt.Errorf("trend.rate_of_change.window_years: must be > 0, got %g", *c.Trend.RateOfChange.WindowYears)
	}
	if c.Trend.EvidenceProgression.RecentYearsThreshold == nil {
		return fmt.Errorf("trend.evidence_progression.recent_years_threshold: required key missing")
	}
	if *c.Trend.EvidenceProgression.RecentYearsThreshold < 0 {
		return fmt.Errorf("trend.evidence_progression.recent_years_threshold: must be >= 0, got %g", *c.Trend.EvidenceProgression.RecentYearsThreshold)
	}
	if c.Trend.EvidenceProgression.ProgressionPoints == nil {
		return fmt.Errorf("trend.evidence_progression.progression_points: required key missing")
	}
	for sourceType, points := range c.Trend.EvidenceProgression.ProgressionPoints {
		if points < 0 {
			return fmt.Errorf("trend.evidence_progression.progression_points[%q]: must be >= 0, got %g", sourceType, points)
		}
	}
	return nil
}
