package vector

import (
	"testing"
)

type item struct {
	name string
	vec  []float32
}

func (i item) Embedding() []float32 { return i.vec }

func TestSearch_TopKOrdering(t *testing.T) {
	query := []float32{1, 0}
	items := []item{
		{"orthogonal", []float32{0, 1}},
		{"best", []float32{3, 0}},
		{"good", []float32{2, 0}},
		{"ok", []float32{1, 0}},
	}

	results := Search(query, items, 2)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Item.name != "best" {
		t.Errorf("results[0] = %q, want best", results[0].Item.name)
	}
	if results[1].Item.name != "good" {
		t.Errorf("results[1] = %q, want good", results[1].Item.name)
	}
	if results[0].Score < results[1].Score {
		t.Error("results should be sorted by score descending")
	}
}

func TestSearch_KLargerThanCorpus(t *testing.T) {
	query := []float32{1}
	items := []item{
		{"a", []float32{1}},
		{"b", []float32{2}},
	}

	results := Search(query, items, 10)
	if len(results) != 2 {
		t.Fatalf("expected all items, got %d", len(results))
	}
	if results[0].Item.name != "b" {
		t.Errorf("results[0] = %q, want b", results[0].Item.name)
	}
}

func TestSearch_NonPositiveK(t *testing.T) {
	items := []item{{"a", []float32{1}}}
	if got := Search([]float32{1}, items, 0); got != nil {
		t.Errorf("k=0 should return nil, got %v", got)
	}
	if got := Search([]float32{1}, items, -1); got != nil {
		t.Errorf("k=-1 should return nil, got %v", got)
	}
}

func TestSearch_EmptyCorpus(t *testing.T) {
	results := Search([]float32{1, 2}, []item{}, 5)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestDot(t *testing.T) {
	tests := []struct {
		a, b []float32
		want float32
	}{
		{[]float32{1, 2, 3}, []float32{4, 5, 6}, 32},
		{[]float32{1, 0}, []float32{0, 1}, 0},
		{[]float32{1, 2}, []float32{1, 2, 3}, 0}, // Mismatched lengths.
		{nil, nil, 0},
	}
	for _, tt := range tests {
		if got := Dot(tt.a, tt.b); got != tt.want {
			t.Errorf("Dot(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCosine_IdenticalVectors(t *testing.T) {
	a := []float32{1, 2, 3}
	if score := Cosine(a, a); score < 0.999 {
		t.Errorf("identical vectors should score ~1.0, got %f", score)
	}
}

func TestCosine_OrthogonalVectors(t *testing.T) {
	if score := Cosine([]float32{1, 0, 0}, []float32{0, 1, 0}); score > 0.001 {
		t.Errorf("orthogonal vectors should score ~0.0, got %f", score)
	}
}

func TestCosine_Guards(t *testing.T) {
	if score := Cosine([]float32{1, 2}, []float32{1, 2, 3}); score != 0 {
		t.Errorf("mismatched lengths should score 0, got %f", score)
	}
	if score := Cosine([]float32{}, []float32{}); score != 0 {
		t.Errorf("empty vectors should score 0, got %f", score)
	}
	if score := Cosine([]float32{0, 0}, []float32{1, 2}); score != 0 {
		t.Errorf("zero vector should score 0, got %f", score)
	}
}
