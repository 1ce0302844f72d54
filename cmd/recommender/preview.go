package main

import (
	"fmt"

	"github.com/jonathan/task-recommender/internal/logx"
	"github.com/jonathan/task-recommender/internal/observability"
	"github.com/jonathan/task-recommender/internal/ranking"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Rank the built-in demo tasks for the demo workers",
	Long: "Ranks a sample board of 30 tasks for 5 sample workers with the configured vector " +
		"model and prints the top tasks for each worker. Every demo tag must be in the model.",
	RunE: runPreview,
}

var (
	previewLimit int
)

func init() {
	previewCmd.Flags().IntVarP(&previewLimit, "limit", "n", 5, "Tasks to show per worker (0 shows all)")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	if previewLimit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", previewLimit)
	}

	cfg, err := loadRankingConfig(cmd)
	if err != nil {
		return err
	}

	ranker, closeFn, err := buildRanker(cmd.Context(), cfg)
	defer closeFn()
	if err != nil {
		return err
	}

	results, err := ranker.RankMany(cmd.Context(), demoWorkers, demoTasks, cfg.Concurrency)
	if err != nil {
		return fmt.Errorf("failed to rank demo tasks: %w", err)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout()).WithMaxItems(0)
	for i, ranked := range results {
		logx.Log.Debug().Int("worker", i+1).Int("kept", len(ranked)).Msg("ranked demo tasks")
		printer.PrintPreview(fmt.Sprintf("Worker %d", i+1), demoWorkers[i], ranking.Top(ranked, previewLimit))
	}
	return nil
}
