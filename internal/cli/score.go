package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PulkiD/rel-scoring/internal/config"
	"github.com/PulkiD/rel-scoring/internal/logging"
	"github.com/PulkiD/rel-scoring/internal/score"
	"github.com/PulkiD/rel-scoring/internal/worker"
)

var (
	scoreInput    string
	scoreOut      string
	referenceYear int
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one relationship input file",
	Long: `Score reads a relationship input file (mentions plus the two entity
descriptors), validates it, and computes the full score ensemble:
evidence strength, weighted sentiment breakdown, and the three trend
sub-scores.

Example:
  relscore score --input pair.json
  relscore score --input pair.json --config scoring.yaml --out scores.json
  relscore score --input pair.json --reference-year 2024`,
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVar(&scoreInput, "input", "", "relationship input JSON file (required)")
	scoreCmd.Flags().StringVar(&scoreOut, "out", "", "output JSON path (default: stdout)")
	scoreCmd.Flags().IntVar(&referenceYear, "reference-year", 0, "reference year for trend calculations (default: current year)")
	_ = scoreCmd.MarkFlagRequired("input")
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().Load(configPath())
	if err != nil {
		return err
	}

	logging.Init(effectiveLogLevel(cfg.Logging.Level), cfg.Logging.Format)

	input, err := worker.ReadInputFile(scoreInput)
	if err != nil {
		return err
	}

	var opts []score.Option
	if referenceYear != 0 {
		opts = append(opts, score.WithReferenceYear(referenceYear))
	}

	scorer, err := score.NewScorer(*input, cfg, opts...)
	if err != nil {
		return err
	}

	result, err := scorer.AllScores()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	data = append(data, '\n')

	if scoreOut == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(scoreOut, data, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Scores written to %s\n", scoreOut)
	}
	return nil
}

// effectiveLogLevel applies the flag override and the verbose shortcut
// on top of the configured level
func effectiveLogLevel(configured string) string {
	if logLevel != "" {
		return logLevel
	}
	if verbose {
		return "debug"
	}
	return configured
}
