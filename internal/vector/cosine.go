// Package vector implements cosine similarity scoring and ranking over
// stored organization embeddings.
package vector

import "math"

// epsilon guards against near-zero norms producing NaN or Inf scores.
const epsilon = 1e-9

// Cosine returns the cosine similarity dot(a,b)/(|a|*|b|) in float64
// precision. Mismatched lengths and (near-)zero norms score exactly 0 rather
// than erroring: the all-zero vector is the "no text" sentinel and must be
// orthogonal to everything.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA < epsilon || normB < epsilon {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
