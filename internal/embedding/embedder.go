// Package embedding turns skill tags into fixed-length vectors.
package embedding

import (
	"context"
	"fmt"
)

// Vector is a dense embedding.
type Vector []float64

// Provider looks up the vector of a single tag.
type Provider interface {
	// Lookup returns the vector for tag. The match is exact and case-sensitive;
	// a tag with no entry fails with *UnknownTagError.
	Lookup(ctx context.Context, tag string) (Vector, error)

	// Dimension returns the length of every vector the provider serves.
	Dimension() int
}

// Embedder averages tag vectors into one vector per entity.
type Embedder struct {
	provider Provider
}

// NewEmbedder creates an Embedder backed by the given provider.
func NewEmbedder(provider Provider) *Embedder {
	return &Embedder{provider: provider}
}

// Dimension returns the provider's vector length.
func (e *Embedder) Dimension() int {
	return e.provider.Dimension()
}

// Embed returns the component-wise mean of the tag vectors, or the zero
// vector when tags is empty.
func (e *Embedder) Embed(ctx context.Context, tags []string) (Vector, error) {
	dim := e.provider.Dimension()
	sum := make(Vector, dim)
	if len(tags) == 0 {
		return sum, nil
	}

	// Each term is divided before summing so large components cannot overflow.
	n := float64(len(tags))
	for _, tag := range tags {
		vec, err := e.provider.Lookup(ctx, tag)
		if err != nil {
			return nil, err
		}
		if len(vec) != dim {
			return nil, &DimensionError{Tag: tag, Want: dim, Got: len(vec)}
		}
		for i, v := range vec {
			sum[i] += v / n
		}
	}
	return sum, nil
}

// EmbedBatch embeds each tag list in order. The result for every entry is
// identical to calling Embed on it alone.
func (e *Embedder) EmbedBatch(ctx context.Context, tagLists [][]string) ([]Vector, error) {
	vectors := make([]Vector, len(tagLists))
	for i, tags := range tagLists {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vec, err := e.Embed(ctx, tags)
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
		vectors[i] = vec
	}
	return vectors, nil
}
