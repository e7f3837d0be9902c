// Package score is the relationship scoring engine: it turns a
// validated mention set plus two entity prominence values into an
// ensemble of evidence strength, sentiment, and trend scores. All
// calculation strategies resolve from configuration at construction;
// a constructed Scorer is immutable and its methods are pure.
package score

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/PulkiD/rel-scoring/internal/model"
	"github.com/PulkiD/rel-scoring/internal/validate"
)

// Scorer orchestrates the ensemble calculation for one relationship.
// It owns a validated mention set and the resolved strategies for the
// lifetime of a scoring session. Safe for concurrent use: nothing is
// mutated after construction.
type Scorer struct {
	set     model.MentionSet
	weights map[string]float64

	evidence  *EvidenceCalculator
	sentiment *SentimentCalculator
	trend     *TrendCalculator

	referenceYear int
	sessionID     string
	logger        *slog.Logger
}

// Option configures a Scorer at construction
type Option func(*options)

type options struct {
	referenceYear int
	now           func() time.Time
	logger        *slog.Logger
}

// WithReferenceYear pins the reference year used by all trend
// calculations. Without it the current calendar year is used; tests
// must pin it for reproducible results.
func WithReferenceYear(year int) Option {
	return func(o *options) { o.referenceYear = year }
}

// WithClock injects the time source used to derive the default
// reference year
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger injects the logger used for session and calculation
// milestones. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// NewScorer validates the raw input and configuration and constructs a
// ready scorer. Errors are typed: *InputValidationError for schema
// violations, *ConfigurationError for bad configuration, and
// *InitializationError for anything else that prevents readiness.
func NewScorer(input model.ScoringInput, cfg *model.Config, opts ...Option) (*Scorer, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	if fields := validate.Input(input); len(fields) > 0 {
		return nil, &InputValidationError{Fields: fields}
	}

	if cfg == nil {
		return nil, &InitializationError{Err: fmt.Errorf("nil configuration")}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigurationError{Message: err.Error()}
	}

	evidence, err := newEvidenceCalculator(cfg.EvidenceStrength)
	if err != nil {
		return nil, err
	}
	sentiment, err := newSentimentCalculator(cfg.Sentiment)
	if err != nil {
		return nil, err
	}
	trend, err := newTrendCalculator(cfg.Trend)
	if err != nil {
		return nil, err
	}

	referenceYear := o.referenceYear
	if referenceYear == 0 {
		referenceYear = o.now().Year()
	}

	s := &Scorer{
		set: model.MentionSet{
			Mentions: append([]model.Mention(nil), input.RelationshipMentions...),
			EntityA:  input.EntityAMetadata,
			EntityB:  input.EntityBMetadata,
		},
		weights:       cfg.SourceWeights,
		evidence:      evidence,
		sentiment:     sentiment,
		trend:         trend,
		referenceYear: referenceYear,
		sessionID:     uuid.NewString(),
		logger:        o.logger,
	}

	s.logger.Info("scoring session initialized",
		"session", s.sessionID,
		"entity_a", s.set.EntityA.ID,
		"entity_b", s.set.EntityB.ID,
		"mentions", len(s.set.Mentions),
		"reference_year", s.referenceYear,
	)

	return s, nil
}

// SessionID returns the identifier attached to this session's log lines
func (s *Scorer) SessionID() string { return s.sessionID }

// ReferenceYear returns the year all trend calculations are anchored to
func (s *Scorer) ReferenceYear() int { return s.referenceYear }

// EvidenceStrength computes the normalized weighted evidence score
func (s *Scorer) EvidenceStrength() (float64, error) {
	score, err := s.evidence.Compute(s.set, s.weights)
	if err != nil {
		return 0, err
	}
	if err := checkFinite("evidence_strength", score); err != nil {
		return 0, err
	}
	s.logger.Debug("evidence strength calculated", "session", s.sessionID, "score", score)
	return score, nil
}

// SentimentScores computes the weighted sentiment breakdown
func (s *Scorer) SentimentScores() (model.SentimentScores, error) {
	scores, err := s.sentiment.Compute(s.set, s.weights)
	if err != nil {
		return model.SentimentScores{}, err
	}
	if err := checkFinite("sentiment_scores", scores.NetScore); err != nil {
		return model.SentimentScores{}, err
	}
	s.logger.Debug("sentiment scores calculated",
		"session", s.sessionID,
		"dominant", scores.DominantSentiment,
		"net", scores.NetScore,
	)
	return scores, nil
}

// TrendScores computes all three momentum sub-scores
func (s *Scorer) TrendScores() (model.TrendScores, error) {
	scores, err := s.trend.Compute(s.set, s.weights, s.referenceYear)
	if err != nil {
		return model.TrendScores{}, err
	}
	for name, v := range map[string]float64{
		"trend.recency_weighted":     scores.RecencyWeighted,
		"trend.rate_of_change":       scores.RateOfChange,
		"trend.evidence_progression": scores.EvidenceProgression,
	} {
		if err := checkFinite(name, v); err != nil {
			return model.TrendScores{}, err
		}
	}
	s.logger.Debug("trend scores calculated",
		"session", s.sessionID,
		"recency_weighted", scores.RecencyWeighted,
		"rate_of_change", scores.RateOfChange,
		"evidence_progression", scores.EvidenceProgression,
	)
	return scores, nil
}

// AllScores computes the full ensemble. A failure in any calculator
// aborts the whole call; no partial result is returned.
func (s *Scorer) AllScores() (*model.ScoreResult, error) {
	evidence, err := s.EvidenceStrength()
	if err != nil {
		return nil, err
	}
	sentiment, err := s.SentimentScores()
	if err != nil {
		return nil, err
	}
	trend, err := s.TrendScores()
	if err != nil {
		return nil, err
	}

	result := &model.ScoreResult{
		EvidenceStrength: evidence,
		SentimentScores:  sentiment,
		TrendScores:      trend,
	}

	s.logger.Info("ensemble scores calculated",
		"session", s.sessionID,
		"evidence_strength", result.EvidenceStrength,
		"dominant_sentiment", result.SentimentScores.DominantSentiment,
	)

	return result, nil
}

// checkFinite guards against NaN and infinite results escaping to
// callers as silent garbage
func checkFinite(score string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &CalculationError{Score: score, Err: fmt.Errorf("non-finite result %v", v)}
	}
	return nil
}
