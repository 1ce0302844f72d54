package ranking

import (
	"context"
	"fmt"

	"github.com/jonathan/task-recommender/internal/types"
	"golang.org/x/sync/errgroup"
)

// RankMany ranks the same task list for each worker independently and in
// parallel. Result i belongs to workers[i]. concurrency <= 0 means no limit.
func (r *Ranker) RankMany(ctx context.Context, workers []types.Entity, tasks []types.Entity, concurrency int) ([][]types.Entity, error) {
	results := make([][]types.Entity, len(workers))

	g, gCtx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i := range workers {
		g.Go(func() error {
			ranked, err := r.Rank(gCtx, workers[i], tasks)
			if err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}
			results[i] = ranked
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
