package matching

import "math"

// Cosine returns the cosine similarity of two embedding vectors:
// dot(a,b) / (|a| * |b|). It is defined to be 0 when either vector's norm
// is exactly 0, guarding a degenerate all-zero embedding instead of
// dividing by zero. Vectors of different lengths compare over the shorter.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Score scales a cosine similarity to a match score: round(sim*100, 2),
// clamped to the [0,100] display range. Embedding models of this class
// produce positive similarities for non-trivial inputs, so the clamp is a
// guard for the rare negative cosine rather than an expected path.
func Score(similarity float64) float64 {
	score := math.Round(similarity*100*100) / 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
