// Package embeddings provides vector utilities for embedding pipelines
// (mean pooling and L2 normalization).
package embeddings

import (
	"math"
)

// MeanPool averages a sequence of token vectors into a single vector.
// All token vectors must have the same length. Returns nil for an empty input.
func MeanPool(tokens [][]float32) []float32 {
	if len(tokens) == 0 {
		return nil
	}

	dims := len(tokens[0])
	sums := make([]float64, dims)

	for _, tok := range tokens {
		for i, v := range tok {
			sums[i] += float64(v)
		}
	}

	pooled := make([]float32, dims)
	n := float64(len(tokens))

	for i := range sums {
		pooled[i] = float32(sums[i] / n)
	}

	return pooled
}

// NormalizeL2 scales a vector to unit Euclidean length, in place.
// With unit-norm vectors, cosine similarity reduces to a dot product,
// which is what the nearest-neighbor queries rely on.
func NormalizeL2(vector []float32) {
	var sumSquares float64

	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}

	// A zero vector has no direction; leave it unchanged.
	if sumSquares == 0 {
		return
	}

	magnitude := math.Sqrt(sumSquares)

	for i := range vector {
		vector[i] = float32(float64(vector[i]) / magnitude)
	}
}
