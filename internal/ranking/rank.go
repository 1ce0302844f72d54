// Package ranking orders candidate tasks by how well they fit a worker.
package ranking

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/jonathan/task-recommender/internal/embedding"
	"github.com/jonathan/task-recommender/internal/similarity"
	"github.com/jonathan/task-recommender/internal/types"
)

// DefaultThreshold is the minimum tag similarity a task needs to be recommended.
const DefaultThreshold = 0.45

// Candidate is a task that passed the tag threshold, with its scores.
type Candidate struct {
	Index               int // position in the input task list
	Task                types.Entity
	TagSimilarity       float64
	AttributeSimilarity float64
}

// Recommendation converts the candidate to its API representation.
func (c Candidate) Recommendation() types.Recommendation {
	return types.Recommendation{
		Index:               c.Index,
		Task:                c.Task,
		TagSimilarity:       c.TagSimilarity,
		AttributeSimilarity: c.AttributeSimilarity,
	}
}

// Ranker scores and orders tasks for a worker. It holds no per-call state and
// is safe for concurrent use when its embedding provider is.
type Ranker struct {
	embedder  *embedding.Embedder
	scorer    similarity.Scorer
	threshold float64
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithScorer overrides the default similarity scorer.
func WithScorer(s similarity.Scorer) Option {
	return func(r *Ranker) { r.scorer = s }
}

// WithThreshold overrides DefaultThreshold.
func WithThreshold(threshold float64) Option {
	return func(r *Ranker) { r.threshold = threshold }
}

// New creates a Ranker.
func New(embedder *embedding.Embedder, opts ...Option) *Ranker {
	r := &Ranker{
		embedder:  embedder,
		scorer:    similarity.NewScorer(),
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Threshold returns the tag similarity cut-off in use.
func (r *Ranker) Threshold() float64 {
	return r.threshold
}

// Score returns the tasks whose tag similarity reaches the threshold, ordered
// by tag similarity then attribute similarity, both descending. Attribute
// similarity only breaks exact tag-similarity ties; full ties keep input order.
func (r *Ranker) Score(ctx context.Context, worker types.Entity, tasks []types.Entity) ([]Candidate, error) {
	if err := worker.Validate(); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	tagLists := make([][]string, len(tasks))
	for i := range tasks {
		if err := tasks[i].Validate(); err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		tagLists[i] = tasks[i].Tags
	}

	workerVec, err := r.embedder.Embed(ctx, worker.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to embed worker tags: %w", err)
	}
	taskVecs, err := r.embedder.EmbedBatch(ctx, tagLists)
	if err != nil {
		return nil, fmt.Errorf("failed to embed task tags: %w", err)
	}

	workerAttrs := worker.Attributes()
	candidates := make([]Candidate, 0, len(tasks))
	for i, vec := range taskVecs {
		tagSim := r.scorer.TagSimilarity(workerVec, vec)
		// NaN never reaches the threshold
		if !(tagSim >= r.threshold) {
			continue
		}
		candidates = append(candidates, Candidate{
			Index:               i,
			Task:                cloneEntity(tasks[i]),
			TagSimilarity:       tagSim,
			AttributeSimilarity: r.scorer.AttributeSimilarity(workerAttrs, tasks[i].Attributes()),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return ranksBefore(candidates[i], candidates[j])
	})
	return candidates, nil
}

// Rank returns the recommended tasks in order, without scores.
func (r *Ranker) Rank(ctx context.Context, worker types.Entity, tasks []types.Entity) ([]types.Entity, error) {
	candidates, err := r.Score(ctx, worker, tasks)
	if err != nil {
		return nil, err
	}
	return Entities(candidates), nil
}

// Entities strips the scores from ranked candidates.
func Entities(candidates []Candidate) []types.Entity {
	out := make([]types.Entity, len(candidates))
	for i, c := range candidates {
		out[i] = c.Task
	}
	return out
}

// Top returns at most the first n items; n <= 0 keeps everything.
func Top[T any](items []T, n int) []T {
	if n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}

func ranksBefore(a, b Candidate) bool {
	if a.TagSimilarity != b.TagSimilarity {
		return a.TagSimilarity > b.TagSimilarity
	}
	return a.AttributeSimilarity > b.AttributeSimilarity
}

func cloneEntity(e types.Entity) types.Entity {
	e.Tags = slices.Clone(e.Tags)
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return e
}
