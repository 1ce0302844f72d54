// Package similarity scores how close a worker is to a task.
package similarity

import (
	"math"

	"github.com/jonathan/task-recommender/internal/embedding"
	"github.com/jonathan/task-recommender/internal/types"
)

// DefaultTagWeight scales both tag vectors before the cosine is taken.
// With the same weight on both sides it cancels out; it is kept so that
// per-side weighting can be introduced without changing callers.
const DefaultTagWeight = 30.0

// Scorer computes tag and attribute similarity.
type Scorer struct {
	TagWeight float64
}

// NewScorer returns a Scorer using DefaultTagWeight.
func NewScorer() Scorer {
	return Scorer{TagWeight: DefaultTagWeight}
}

// TagSimilarity is the cosine of the weighted tag vectors.
func (s Scorer) TagSimilarity(a, b embedding.Vector) float64 {
	return Cosine(weighted(a, s.TagWeight), weighted(b, s.TagWeight))
}

// AttributeSimilarity is the cosine of the raw (complexity, time) pairs.
func (s Scorer) AttributeSimilarity(a, b types.AttributePair) float64 {
	return Cosine(a[:], b[:])
}

// Cosine returns dot(u,v) / (|u| |v|). A zero-norm operand, a length
// mismatch or a non-finite component yields 0. Operands are rescaled by their
// largest magnitude first, so finite inputs of any size never overflow.
func Cosine(u, v []float64) float64 {
	if len(u) != len(v) || len(u) == 0 {
		return 0
	}
	su, sv := maxAbs(u), maxAbs(v)
	if su == 0 || sv == 0 || !isFinite(su) || !isFinite(sv) {
		return 0
	}

	var dot, nu, nv float64
	for i := range u {
		x, y := u[i]/su, v[i]/sv
		dot += x * y
		nu += x * x
		nv += y * y
	}
	c := dot / (math.Sqrt(nu) * math.Sqrt(nv))
	if !isFinite(c) {
		return 0
	}
	return c
}

// weighted returns v rescaled to a largest magnitude of w. The direction,
// and so the cosine, is unchanged.
func weighted(v embedding.Vector, w float64) []float64 {
	out := make([]float64, len(v))
	m := maxAbs(v)
	if m == 0 || !isFinite(m) {
		copy(out, v)
		return out
	}
	for i, x := range v {
		out[i] = x / m * w
	}
	return out
}

// maxAbs returns the largest absolute component, or NaN if any component is NaN.
func maxAbs(v []float64) float64 {
	var m float64
	for _, x := range v {
		if math.IsNaN(x) {
			return math.NaN()
		}
		m = math.Max(m, math.Abs(x))
	}
	return m
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
