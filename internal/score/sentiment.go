package score

import (
	"strconv"

	"github.com/PulkiD/rel-scoring/internal/model"
)

// SentimentAggregation is the closed set of sentiment aggregation
// methods
type SentimentAggregation int

const (
	// AggregationNetScoreDetailed returns the full weighted breakdown:
	// per-category totals, net score, and the dominant label.
	AggregationNetScoreDetailed SentimentAggregation = iota
	// AggregationDominantWeighted short-circuits to the dominant label
	// only; the detailed fields are omitted from output.
	AggregationDominantWeighted
)

func parseSentimentAggregation(name string) (SentimentAggregation, error) {
	switch name {
	case "NetScoreDetailed":
		return AggregationNetScoreDetailed, nil
	case "DominantWeighted":
		return AggregationDominantWeighted, nil
	default:
		return 0, &ConfigurationError{
			Key:     "sentiment.aggregation_method",
			Message: "unsupported method " + strconv.Quote(name),
		}
	}
}

// SentimentCalculator aggregates per-mention sentiment into weighted
// category totals. Every mention contributes its own source weight;
// repeats are not frequency-collapsed here.
type SentimentCalculator struct {
	aggregation SentimentAggregation
}

func newSentimentCalculator(cfg model.SentimentConfig) (*SentimentCalculator, error) {
	aggregation, err := parseSentimentAggregation(cfg.AggregationMethod)
	if err != nil {
		return nil, err
	}
	return &SentimentCalculator{aggregation: aggregation}, nil
}

// Compute returns the weighted sentiment breakdown for the mention set
func (c *SentimentCalculator) Compute(set model.MentionSet, weights map[string]float64) (model.SentimentScores, error) {
	var positive, negative, neutral float64

	for _, m := range set.Mentions {
		weight, ok := weights[m.SourceType]
		if !ok {
			return model.SentimentScores{}, unknownSourceType(m.SourceType)
		}
		switch m.Sentiment {
		case model.SentimentPositive:
			positive += weight
		case model.SentimentNegative:
			negative += weight
		case model.SentimentNeutral:
			neutral += weight
		}
	}

	dominant := dominantSentiment(positive, negative, neutral)

	if c.aggregation == AggregationDominantWeighted {
		return model.SentimentScores{DominantSentiment: dominant}, nil
	}

	return model.SentimentScores{
		PositiveScore:     positive,
		NegativeScore:     negative,
		NeutralScore:      neutral,
		NetScore:          positive - negative,
		DominantSentiment: dominant,
		Detailed:          true,
	}, nil
}

// dominantSentiment picks the category with the strictly largest
// accumulated weight. Any tie at the top is ambiguous and reported as
// Mixed, except the all-zero case: no weighted evidence defaults to
// Neutral.
func dominantSentiment(positive, negative, neutral float64) model.DominantSentiment {
	if positive == 0 && negative == 0 && neutral == 0 {
		return model.DominantNeutral
	}
	switch {
	case positive > negative && positive > neutral:
		return model.DominantPositive
	case negative > positive && negative > neutral:
		return model.DominantNegative
	case neutral > positive && neutral > negative:
		return model.DominantNeutral
	}
	return model.DominantMixed
}
