package rank

import (
	"math"
	"sort"

	"github.com/docsift/docsift/internal/chunker"
)

// Scored pairs a chunk with its similarity to the query and final rank.
type Scored struct {
	Chunk chunker.Chunk
	Score float64
	Rank  int // 1-based importance rank.
}

// Cosine computes the cosine similarity dot(a,b)/(|a||b|) between two
// vectors, accumulating in float64. Returns 0 when either vector has zero
// norm or the lengths differ.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Rank scores every chunk against the query vector and returns the topK
// highest scorers in descending score order. vectors[i] must correspond to
// chunks[i]. The sort is stable so ties keep the original chunk order,
// making the ranking reproducible.
func Rank(query []float32, chunks []chunker.Chunk, vectors [][]float32, topK int) []Scored {
	scored := make([]Scored, len(chunks))
	for i := range chunks {
		scored[i] = Scored{
			Chunk: chunks[i],
			Score: Cosine(query, vectors[i]),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	if topK > 0 && topK < len(scored) {
		scored = scored[:topK]
	}
	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored
}

// Best returns the index of the highest-scoring vector against the query,
// or -1 for an empty set. Ties keep the earliest index.
func Best(query []float32, vectors [][]float32) int {
	best := -1
	bestScore := math.Inf(-1)
	for i, v := range vectors {
		if s := Cosine(query, v); s > bestScore {
			best = i
			bestScore = s
		}
	}
	return best
}
