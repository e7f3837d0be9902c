package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/PulkiD/rel-scoring/internal/config"
	"github.com/PulkiD/rel-scoring/internal/logging"
	"github.com/PulkiD/rel-scoring/internal/score"
	"github.com/PulkiD/rel-scoring/internal/worker"
)

var (
	batchConcurrency int
	batchOut         string
	batchRefYear     int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Score many relationship input files concurrently",
	Long: `Batch reads a manifest file listing relationship input JSON files
(one path per line, # for comments) and scores them concurrently.
Results are written as JSON lines, one outcome per input file. A file
that fails validation or scoring is reported and does not stop the run.

Example:
  relscore batch pairs.txt
  relscore batch pairs.txt --concurrency 8 --out outcomes.jsonl
  relscore batch pairs.txt --reference-year 2024`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "number of concurrent scoring sessions")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "output JSON-lines path (default: stdout)")
	batchCmd.Flags().IntVar(&batchRefYear, "reference-year", 0, "reference year for trend calculations (default: current year)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().Load(configPath())
	if err != nil {
		return err
	}

	logging.Init(effectiveLogLevel(cfg.Logging.Level), cfg.Logging.Format)

	var opts []score.Option
	if batchRefYear != 0 {
		opts = append(opts, score.WithReferenceYear(batchRefYear))
	}

	processor := worker.NewBatchProcessor(cfg, batchConcurrency, slog.Default(), opts...)
	outcomes, err := processor.ProcessFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if batchOut != "" {
		f, err := os.Create(batchOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	failures := 0
	enc := json.NewEncoder(out)
	for _, outcome := range outcomes {
		if outcome.Error != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", outcome.Path, outcome.Error)
			continue
		}
		if err := enc.Encode(outcome); err != nil {
			return fmt.Errorf("encode outcome: %w", err)
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Scored %d of %d inputs\n", len(outcomes)-failures, len(outcomes))
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d inputs failed", failures, len(outcomes))
	}
	return nil
}
