package score

import (
	"math"

	"github.com/PulkiD/rel-scoring/internal/model"
)

// TrendCalculator produces the three momentum sub-scores. All time
// arithmetic is anchored to an explicit reference year supplied by the
// orchestrator, never to ad-hoc wall-clock reads, so results are
// reproducible.
type TrendCalculator struct {
	decayRate            float64
	windowYears          float64
	recentYearsThreshold float64
	progressionPoints    map[string]float64
}

func newTrendCalculator(cfg model.TrendConfig) (*TrendCalculator, error) {
	// Required keys and ranges are enforced by Config.Validate before
	// construction reaches this point; re-check presence so a directly
	// constructed config still fails cleanly.
	if cfg.RecencyWeighted.DecayRate == nil {
		return nil, &ConfigurationError{Key: "trend.recency_weighted.decay_rate", Message: "required key missing"}
	}
	if cfg.RateOfChange.WindowYears == nil {
		return nil, &ConfigurationError{Key: "trend.rate_of_change.window_years", Message: "required key missing"}
	}
	if cfg.EvidenceProgression.RecentYearsThreshold == nil {
		return nil, &ConfigurationError{Key: "trend.evidence_progression.recent_years_threshold", Message: "required key missing"}
	}
	if cfg.EvidenceProgression.ProgressionPoints == nil {
		return nil, &ConfigurationError{Key: "trend.evidence_progression.progression_points", Message: "required key missing"}
	}
	return &TrendCalculator{
		decayRate:            *cfg.RecencyWeighted.DecayRate,
		windowYears:          *cfg.RateOfChange.WindowYears,
		recentYearsThreshold: *cfg.EvidenceProgression.RecentYearsThreshold,
		progressionPoints:    cfg.EvidenceProgression.ProgressionPoints,
	}, nil
}

// Compute returns all three sub-scores together
func (c *TrendCalculator) Compute(set model.MentionSet, weights map[string]float64, referenceYear int) (model.TrendScores, error) {
	recency, err := c.recencyWeighted(set, weights, referenceYear)
	if err != nil {
		return model.TrendScores{}, err
	}
	rate, err := c.rateOfChange(set, weights, referenceYear)
	if err != nil {
		return model.TrendScores{}, err
	}
	progression := c.evidenceProgression(set, referenceYear)
	return model.TrendScores{
		RecencyWeighted:     recency,
		RateOfChange:        rate,
		EvidenceProgression: progression,
	}, nil
}

// recencyWeighted sums weight * exp(-decay * age) over all mentions.
// Age is clamped at zero so future-dated mentions never invert the
// decay into amplification.
func (c *TrendCalculator) recencyWeighted(set model.MentionSet, weights map[string]float64, referenceYear int) (float64, error) {
	var total float64
	for _, m := range set.Mentions {
		weight, ok := weights[m.SourceType]
		if !ok {
			return 0, unknownSourceType(m.SourceType)
		}
		age := math.Max(0, float64(referenceYear-m.Year))
		total += weight * math.Exp(-c.decayRate*age)
	}
	return total, nil
}

// rateOfChange compares two consecutive windows of windowYears ending
// at the reference year: recent = (ref-W, ref], prior = (ref-2W, ref-W].
// Mentions older than both windows, or dated after the reference year,
// are excluded. Empty windows contribute zero.
func (c *TrendCalculator) rateOfChange(set model.MentionSet, weights map[string]float64, referenceYear int) (float64, error) {
	ref := float64(referenceYear)
	var recent, prior float64

	for _, m := range set.Mentions {
		weight, ok := weights[m.SourceType]
		if !ok {
			return 0, unknownSourceType(m.SourceType)
		}
		year := float64(m.Year)
		switch {
		case year > ref:
			// Future-dated mentions belong to no window.
		case year > ref-c.windowYears:
			recent += weight
		case year > ref-2*c.windowYears:
			prior += weight
		}
	}

	return recent - prior, nil
}

// evidenceProgression returns the maximum progression points among
// mentions whose age is within the recency threshold, rewarding a
// recently reached evidence tier independent of mention count. Source
// types without a points entry score zero; the points table only lists
// tiers that count as progression.
func (c *TrendCalculator) evidenceProgression(set model.MentionSet, referenceYear int) float64 {
	var best float64
	for _, m := range set.Mentions {
		age := math.Max(0, float64(referenceYear-m.Year))
		if age > c.recentYearsThreshold {
			continue
		}
		if points, ok := c.progressionPoints[m.SourceType]; ok && points > best {
			best = points
		}
	}
	return best
}
