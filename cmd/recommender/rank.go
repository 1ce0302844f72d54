package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/task-recommender/internal/logx"
	"github.com/jonathan/task-recommender/internal/observability"
	"github.com/jonathan/task-recommender/internal/ranking"
	"github.com/jonathan/task-recommender/internal/schemas"
	"github.com/jonathan/task-recommender/internal/types"
	docschemas "github.com/jonathan/task-recommender/schemas"
	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank tasks from a file for one worker",
	Long: "Reads a worker and a task list (object or [complexity, time, tags] tuple form), " +
		"ranks the tasks whose tag similarity reaches the threshold and writes them as JSON.",
	RunE: runRank,
}

var (
	rankWorker  string
	rankTasks   string
	rankOutput  string
	rankLimit   int
	rankExplain bool
	rankFormat  string
	rankPretty  bool
)

func init() {
	rankCmd.Flags().StringVarP(&rankWorker, "worker", "w", "", "Path to the worker JSON file (required)")
	rankCmd.Flags().StringVarP(&rankTasks, "tasks", "t", "", "Path to the task list JSON file (required)")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Path to the output JSON file (default stdout)")
	rankCmd.Flags().IntVarP(&rankLimit, "limit", "n", 0, "Maximum number of tasks to return (0 returns all)")
	rankCmd.Flags().BoolVar(&rankExplain, "explain", false, "Include input index and similarity scores")
	rankCmd.Flags().StringVar(&rankFormat, "format", "object", "Task output format: object or tuple")
	rankCmd.Flags().BoolVar(&rankPretty, "pretty", false, "Print a human-readable summary instead of JSON")

	if err := rankCmd.MarkFlagRequired("worker"); err != nil {
		panic(fmt.Sprintf("failed to mark worker flag as required: %v", err))
	}
	if err := rankCmd.MarkFlagRequired("tasks"); err != nil {
		panic(fmt.Sprintf("failed to mark tasks flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	if rankLimit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", rankLimit)
	}
	if rankFormat != "object" && rankFormat != "tuple" {
		return fmt.Errorf("--format must be \"object\" or \"tuple\", got %q", rankFormat)
	}
	if rankExplain && rankFormat == "tuple" {
		return fmt.Errorf("--explain cannot be combined with --format tuple")
	}

	cfg, err := loadRankingConfig(cmd)
	if err != nil {
		return err
	}

	// 1. Load worker and tasks
	var worker types.Entity
	if err := readEntityFile(rankWorker, docschemas.Entity, &worker); err != nil {
		return fmt.Errorf("failed to load worker: %w", err)
	}
	var tasks []types.Entity
	if err := readEntityFile(rankTasks, docschemas.EntityList, &tasks); err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	// 2. Rank
	ranker, closeFn, err := buildRanker(cmd.Context(), cfg)
	defer closeFn()
	if err != nil {
		return err
	}

	candidates, err := ranker.Score(cmd.Context(), worker, tasks)
	if err != nil {
		return fmt.Errorf("failed to rank tasks: %w", err)
	}
	logx.Log.Debug().
		Int("tasks", len(tasks)).
		Int("kept", len(candidates)).
		Float64("threshold", ranker.Threshold()).
		Msg("ranked tasks")

	limit := rankLimit
	if limit == 0 {
		limit = cfg.Limit
	}
	candidates = ranking.Top(candidates, limit)

	recs := make([]types.Recommendation, len(candidates))
	for i, c := range candidates {
		recs[i] = c.Recommendation()
	}

	// 3. Output
	if rankPretty {
		printer := observability.NewPrinter(cmd.OutOrStdout()).WithMaxItems(0)
		printer.PrintWorker("worker", worker)
		printer.PrintRecommendations(recs, len(tasks))
		return nil
	}

	var out any
	switch {
	case rankExplain:
		out = recs
	case rankFormat == "tuple":
		tuples := make([][]any, len(candidates))
		for i, c := range candidates {
			tuples[i] = c.Task.Tuple()
		}
		out = tuples
	default:
		out = ranking.Entities(candidates)
	}
	if err := writeJSON(cmd.OutOrStdout(), rankOutput, out); err != nil {
		return err
	}

	if rankOutput != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Successfully ranked %d of %d tasks to %s\n", len(candidates), len(tasks), rankOutput)
	}
	return nil
}

// readEntityFile validates path against the named schema and decodes it into dst.
func readEntityFile(path, schema string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := schemas.Validate(schema, data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
