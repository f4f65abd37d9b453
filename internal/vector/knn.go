// Package vector provides similarity search over embedding vectors and a
// small binary on-disk store for embedded documents.
package vector

import (
	"container/heap"
	"math"
	"sort"
)

// Embedder is anything that exposes an embedding vector.
type Embedder interface {
	Embedding() []float32
}

// Match pairs a searched item with its similarity to the query.
type Match[T Embedder] struct {
	Item  T
	Score float32
}

// Search returns the k items most similar to query by dot product, highest
// first. It keeps a bounded min-heap of the best k seen so far, so the cost
// is O(n log k) regardless of corpus size. k larger than the corpus returns
// everything; k <= 0 returns nil.
func Search[T Embedder](query []float32, items []T, k int) []Match[T] {
	if k <= 0 {
		return nil
	}

	h := make(matchHeap[T], 0, k)
	for _, item := range items {
		score := Dot(query, item.Embedding())
		if h.Len() < k {
			heap.Push(&h, Match[T]{Item: item, Score: score})
		} else if h[0].Score < score {
			heap.Pop(&h)
			heap.Push(&h, Match[T]{Item: item, Score: score})
		}
	}

	results := []Match[T](h)
	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// matchHeap is a min-heap ordered by score: the root is the weakest of the
// current top-k and the first to be evicted.
type matchHeap[T Embedder] []Match[T]

func (h matchHeap[T]) Len() int            { return len(h) }
func (h matchHeap[T]) Less(i, j int) bool  { return h[i].Score < h[j].Score }
func (h matchHeap[T]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *matchHeap[T]) Push(x any)         { *h = append(*h, x.(Match[T])) }
func (h *matchHeap[T]) Pop() any {
	old := *h
	n := len(old)
	m := old[n-1]
	*h = old[:n-1]
	return m
}

// Dot computes the dot product of two vectors. Mismatched lengths score 0.
func Dot(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Cosine computes the cosine of the angle between two vectors: 1.0 means
// identical direction, 0.0 unrelated. Mismatched or zero vectors score 0.
func Cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, magA, magB float32
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	denom := float32(math.Sqrt(float64(magA))) * float32(math.Sqrt(float64(magB)))
	if denom == 0 {
		return 0
	}
	return dot / denom
}
