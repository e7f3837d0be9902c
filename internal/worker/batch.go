package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/PulkiD/rel-scoring/internal/model"
	"github.com/PulkiD/rel-scoring/internal/score"
)

// ScoreJob scores one relationship input file
type ScoreJob struct {
	Path    string
	Config  *model.Config
	Options []score.Option
	Logger  *slog.Logger
}

// Execute loads the input, constructs a scorer, and computes the full
// ensemble
func (j *ScoreJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &ScoreOutcome{Path: j.Path, Error: err}
	}

	input, err := ReadInputFile(j.Path)
	if err != nil {
		return &ScoreOutcome{Path: j.Path, Error: err}
	}

	opts := j.Options
	if j.Logger != nil {
		opts = append(append([]score.Option(nil), opts...), score.WithLogger(j.Logger))
	}

	scorer, err := score.NewScorer(*input, j.Config, opts...)
	if err != nil {
		return &ScoreOutcome{Path: j.Path, Error: err}
	}

	result, err := scorer.AllScores()
	if err != nil {
		return &ScoreOutcome{Path: j.Path, Error: err}
	}

	return &ScoreOutcome{
		Path:    j.Path,
		EntityA: input.EntityAMetadata.ID,
		EntityB: input.EntityBMetadata.ID,
		Result:  result,
	}
}

// ScoreOutcome is the result of scoring one input file
type ScoreOutcome struct {
	Path    string             `json:"path"`
	EntityA string             `json:"entity_a,omitempty"`
	EntityB string             `json:"entity_b,omitempty"`
	Result  *model.ScoreResult `json:"scores,omitempty"`
	Error   error              `json:"-"`
}

// GetError returns the error from the outcome
func (o *ScoreOutcome) GetError() error { return o.Error }

// BatchProcessor scores multiple relationship input files concurrently
type BatchProcessor struct {
	cfg         *model.Config
	concurrency int
	options     []score.Option
	logger      *slog.Logger
}

// NewBatchProcessor creates a batch processor. Scoring options apply to
// every job (e.g. a pinned reference year for reproducible runs).
func NewBatchProcessor(cfg *model.Config, concurrency int, logger *slog.Logger, opts ...score.Option) *BatchProcessor {
	return &BatchProcessor{
		cfg:         cfg,
		concurrency: concurrency,
		options:     opts,
		logger:      logger,
	}
}

// ProcessPaths scores the given input files concurrently. Outcomes are
// returned in completion order, one per input path.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*ScoreOutcome {
	if len(paths) == 0 {
		return []*ScoreOutcome{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&ScoreJob{
			Path:    path,
			Config:  b.cfg,
			Options: b.options,
			Logger:  b.logger,
		})
	}

	results := pool.Wait()

	outcomes := make([]*ScoreOutcome, len(results))
	for i, result := range results {
		outcomes[i] = result.(*ScoreOutcome)
	}

	return outcomes
}

// ProcessFile reads input paths from a manifest file (one per line) and
// scores them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, manifestPath string) ([]*ScoreOutcome, error) {
	paths, err := ReadPathsFromFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadInputFile parses one relationship scoring input from a JSON file
func ReadInputFile(path string) (*model.ScoringInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", path, err)
	}

	var input model.ScoringInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("parse input %s: %w", path, err)
	}

	return &input, nil
}

// ReadPathsFromFile reads input file paths from a manifest, one per
// line; blank lines, comments, and duplicates are skipped
func ReadPathsFromFile(manifestPath string) ([]string, error) {
	file, err := os.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		paths = append(paths, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no input paths found in %s", manifestPath)
	}

	return paths, nil
}
