package score

import (
	"errors"
	"math"
	"testing"

	"github.com/PulkiD/rel-scoring/internal/model"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= floatTolerance
}

func testWeights() map[string]float64 {
	return map[string]float64{
		"Guideline": 10,
		"PubMed":    3,
		"Review":    3,
	}
}

func testSet(mentions ...model.Mention) model.MentionSet {
	return model.MentionSet{
		Mentions: mentions,
		EntityA:  model.EntityMetadata{ID: "CHEMBL25", OverallProminence: 4},
		EntityB:  model.EntityMetadata{ID: "EFO:0000270", OverallProminence: 2},
	}
}

func TestEvidenceCalculator_LogarithmicSingleMention(t *testing.T) {
	calc, err := newEvidenceCalculator(model.EvidenceStrengthConfig{
		FrequencyAggregation: "Logarithmic",
		NormalizationMethod:  "None",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	set := testSet(model.Mention{SourceType: "Guideline", Year: 2024, Sentiment: model.SentimentPositive})
	got, err := calc.Compute(set, testWeights())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := 10 * math.Log(2)
	if !almostEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestEvidenceCalculator_Aggregations(t *testing.T) {
	set := testSet(
		model.Mention{SourceType: "PubMed", Year: 2022, Sentiment: model.SentimentNeutral},
		model.Mention{SourceType: "PubMed", Year: 2021, Sentiment: model.SentimentPositive},
		model.Mention{SourceType: "Guideline", Year: 2024, Sentiment: model.SentimentPositive},
	)

	tests := []struct {
		name        string
		aggregation string
		want        float64
	}{
		{
			name:        "simple sum counts every mention",
			aggregation: "SimpleSum",
			want:        3*2 + 10*1,
		},
		{
			name:        "logarithmic dampens repeats",
			aggregation: "Logarithmic",
			want:        3*math.Log(3) + 10*math.Log(2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, err := newEvidenceCalculator(model.EvidenceStrengthConfig{
				FrequencyAggregation: tt.aggregation,
				NormalizationMethod:  "None",
			})
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			got, err := calc.Compute(set, testWeights())
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEvidenceCalculator_RelativeFrequency(t *testing.T) {
	calc, err := newEvidenceCalculator(model.EvidenceStrengthConfig{
		FrequencyAggregation: "SimpleSum",
		NormalizationMethod:  "RelativeFrequency",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	set := testSet(
		model.Mention{SourceType: "Guideline", Year: 2024, Sentiment: model.SentimentPositive},
		model.Mention{SourceType: "PubMed", Year: 2020, Sentiment: model.SentimentNeutral},
	)
	got, err := calc.Compute(set, testWeights())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := (10.0 + 3.0) / 2.0
	if !almostEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestEvidenceCalculator_PMILikeCombiners(t *testing.T) {
	set := testSet(model.Mention{SourceType: "Guideline", Year: 2024, Sentiment: model.SentimentPositive})
	raw := 10 * math.Log(2)

	tests := []struct {
		name     string
		combiner string
		want     float64
	}{
		{"product", "product", raw / (4 * 2)},
		{"sum", "sum", raw / (4 + 2)},
		{"geometric mean", "geometric-mean", raw / math.Sqrt(4*2)},
		{"default is product", "", raw / (4 * 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, err := newEvidenceCalculator(model.EvidenceStrengthConfig{
				FrequencyAggregation: "Logarithmic",
				NormalizationMethod:  "PMI-like",
				ProminenceCombiner:   tt.combiner,
			})
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			got, err := calc.Compute(set, testWeights())
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEvidenceCalculator_PMILikeZeroProminenceFallsBack(t *testing.T) {
	calc, err := newEvidenceCalculator(model.EvidenceStrengthConfig{
		FrequencyAggregation: "Logarithmic",
		NormalizationMethod:  "PMI-like",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	set := model.MentionSet{
		Mentions: []model.Mention{{SourceType: "Guideline", Year: 2024, Sentiment: model.SentimentPositive}},
		EntityA:  model.EntityMetadata{ID: "a", OverallProminence: 0},
		EntityB:  model.EntityMetadata{ID: "b", OverallProminence: 0},
	}
	got, err := calc.Compute(set, testWeights())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Zero combined prominence must fall back to the raw score, not
	// divide by zero.
	want := 10 * math.Log(2)
	if !almostEqual(got, want) {
		t.Errorf("Expected raw score %v, got %v", want, got)
	}
}

func TestEvidenceCalculator_UnknownSourceType(t *testing.T) {
	calc, err := newEvidenceCalculator(model.EvidenceStrengthConfig{
		FrequencyAggregation: "Logarithmic",
		NormalizationMethod:  "None",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	set := testSet(model.Mention{SourceType: "Preprint", Year: 2024, Sentiment: model.SentimentPositive})
	_, err = calc.Compute(set, testWeights())

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected *ConfigurationError, got %v", err)
	}
}

func TestEvidenceCalculator_UnsupportedMethods(t *testing.T) {
	tests := []struct {
		name string
		cfg  model.EvidenceStrengthConfig
	}{
		{"bad aggregation", model.EvidenceStrengthConfig{FrequencyAggregation: "Quadratic", NormalizationMethod: "None"}},
		{"bad normalization", model.EvidenceStrengthConfig{FrequencyAggregation: "SimpleSum", NormalizationMethod: "ZScore"}},
		{"bad combiner", model.EvidenceStrengthConfig{FrequencyAggregation: "SimpleSum", NormalizationMethod: "PMI-like", ProminenceCombiner: "harmonic"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newEvidenceCalculator(tt.cfg)
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected *ConfigurationError, got %v", err)
			}
		})
	}
}
