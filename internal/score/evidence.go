package score

import (
	"math"
	"strconv"

	"github.com/PulkiD/rel-scoring/internal/model"
)

// FrequencyAggregation is the closed set of per-source-type frequency
// aggregation strategies. Selector strings resolve once at scorer
// construction; unknown names fail there, never at calculation time.
type FrequencyAggregation int

const (
	AggregationLogarithmic FrequencyAggregation = iota // weight * log(1 + count)
	AggregationSimpleSum                               // weight * count
)

func parseFrequencyAggregation(name string) (FrequencyAggregation, error) {
	switch name {
	case "Logarithmic":
		return AggregationLogarithmic, nil
	case "SimpleSum":
		return AggregationSimpleSum, nil
	default:
		return 0, &ConfigurationError{
			Key:     "evidence_strength.frequency_aggregation",
			Message: "unsupported method " + strconv.Quote(name),
		}
	}
}

// Normalization is the closed set of evidence strength normalizations
type Normalization int

const (
	NormalizationNone              Normalization = iota // raw score unchanged
	NormalizationRelativeFrequency                      // divide by total mention count
	NormalizationPMILike                                // divide by combined entity prominence
)

func parseNormalization(name string) (Normalization, error) {
	switch name {
	case "None":
		return NormalizationNone, nil
	case "RelativeFrequency":
		return NormalizationRelativeFrequency, nil
	case "PMI-like":
		return NormalizationPMILike, nil
	default:
		return 0, &ConfigurationError{
			Key:     "evidence_strength.normalization_method",
			Message: "unsupported method " + strconv.Quote(name),
		}
	}
}

// ProminenceCombiner picks how the two entity prominence values fold
// into a single PMI-like divisor. The exact combination is not fixed by
// the scoring model, so it is a documented configuration choice; every
// variant is monotonically increasing in each prominence.
type ProminenceCombiner int

const (
	CombinerProduct ProminenceCombiner = iota
	CombinerSum
	CombinerGeometricMean
)

func parseProminenceCombiner(name string) (ProminenceCombiner, error) {
	switch name {
	case "", "product": // product is the default
		return CombinerProduct, nil
	case "sum":
		return CombinerSum, nil
	case "geometric-mean":
		return CombinerGeometricMean, nil
	default:
		return 0, &ConfigurationError{
			Key:     "evidence_strength.prominence_combiner",
			Message: "unsupported combiner " + strconv.Quote(name),
		}
	}
}

func (c ProminenceCombiner) combine(a, b float64) float64 {
	switch c {
	case CombinerSum:
		return a + b
	case CombinerGeometricMean:
		return math.Sqrt(a * b)
	default:
		return a * b
	}
}

// EvidenceCalculator aggregates per-source-type frequency and weight
// into a single normalized score. Pure with respect to the mention set
// and weight table it is given.
type EvidenceCalculator struct {
	aggregation   FrequencyAggregation
	normalization Normalization
	combiner      ProminenceCombiner
}

func newEvidenceCalculator(cfg model.EvidenceStrengthConfig) (*EvidenceCalculator, error) {
	aggregation, err := parseFrequencyAggregation(cfg.FrequencyAggregation)
	if err != nil {
		return nil, err
	}
	normalization, err := parseNormalization(cfg.NormalizationMethod)
	if err != nil {
		return nil, err
	}
	combiner, err := parseProminenceCombiner(cfg.ProminenceCombiner)
	if err != nil {
		return nil, err
	}
	return &EvidenceCalculator{
		aggregation:   aggregation,
		normalization: normalization,
		combiner:      combiner,
	}, nil
}

// Compute returns the evidence strength score: non-negative, no fixed
// upper bound.
func (c *EvidenceCalculator) Compute(set model.MentionSet, weights map[string]float64) (float64, error) {
	counts := make(map[string]int)
	for _, m := range set.Mentions {
		if _, ok := weights[m.SourceType]; !ok {
			return 0, unknownSourceType(m.SourceType)
		}
		counts[m.SourceType]++
	}

	var raw float64
	for sourceType, count := range counts {
		weight := weights[sourceType]
		switch c.aggregation {
		case AggregationSimpleSum:
			raw += weight * float64(count)
		default:
			raw += weight * math.Log1p(float64(count))
		}
	}

	switch c.normalization {
	case NormalizationRelativeFrequency:
		// Validated mention sets are non-empty, but an empty set still
		// yields a defined score here.
		if len(set.Mentions) == 0 {
			return 0, nil
		}
		return raw / float64(len(set.Mentions)), nil
	case NormalizationPMILike:
		divisor := c.combiner.combine(set.EntityA.OverallProminence, set.EntityB.OverallProminence)
		if divisor == 0 {
			// Zero prominence carries no de-biasing information; keep
			// the raw score rather than divide by zero.
			return raw, nil
		}
		return raw / divisor, nil
	default:
		return raw, nil
	}
}

func unknownSourceType(sourceType string) error {
	return &ConfigurationError{
		Key:     "source_weights",
		Message: "source type " + strconv.Quote(sourceType) + " has no configured weight",
	}
}
