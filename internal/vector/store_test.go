package vector

import (
	"path/filepath"
	"testing"
)

func useTempStore(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	orig := storePath
	storePath = func() string { return filepath.Join(tmpDir, "vectors.bin") }
	t.Cleanup(func() { storePath = orig })
}

func TestStore_AddAndLen(t *testing.T) {
	s := NewStore()
	if s.Len() != 0 {
		t.Errorf("new store should be empty, got %d", s.Len())
	}
	s.Add(Document{Text: "doc", Source: "test", Vector: []float32{1, 2}})
	if s.Len() != 1 {
		t.Errorf("expected 1 doc, got %d", s.Len())
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	useTempStore(t)

	s := NewStore()
	s.Add(Document{
		Text:   "how to check disk space",
		Source: "manual",
		Vector: []float32{0.1, 0.2, 0.3, 0.4, 0.5},
	})
	s.Add(Document{
		Text:   "kill a process",
		Source: "manual",
		Vector: []float32{0.5, 0.4, 0.3, 0.2, 0.1},
	})

	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := NewStore()
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("expected 2 docs after load, got %d", loaded.Len())
	}
	if loaded.docs[0].Text != "how to check disk space" {
		t.Errorf("text = %q", loaded.docs[0].Text)
	}
	if loaded.docs[1].Source != "manual" {
		t.Errorf("source = %q", loaded.docs[1].Source)
	}
	if len(loaded.docs[0].Vector) != 5 || loaded.docs[0].Vector[2] != 0.3 {
		t.Errorf("vector = %v", loaded.docs[0].Vector)
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	useTempStore(t)

	s := NewStore()
	if err := s.Load(); err == nil {
		t.Fatal("expected error for missing store file")
	}
}

func TestStore_SearchReturnsNearest(t *testing.T) {
	s := NewStore()
	s.Add(Document{Text: "near", Vector: []float32{1, 0}})
	s.Add(Document{Text: "far", Vector: []float32{0, 1}})
	s.Add(Document{Text: "nearest", Vector: []float32{2, 0}})

	results := s.Search([]float32{1, 0}, 2)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Item.Text != "nearest" {
		t.Errorf("results[0] = %q", results[0].Item.Text)
	}
	if results[1].Item.Text != "near" {
		t.Errorf("results[1] = %q", results[1].Item.Text)
	}
}

func TestStore_Flush(t *testing.T) {
	useTempStore(t)

	s := NewStore()
	s.Add(Document{Text: "doc", Vector: []float32{1}})
	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := s.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("flush should empty the store, got %d docs", s.Len())
	}

	// Flushing an already-clean store is fine.
	if err := s.Flush(); err != nil {
		t.Errorf("second flush should be a no-op, got: %v", err)
	}
}

func TestStore_EmptySaveLoad(t *testing.T) {
	useTempStore(t)

	s := NewStore()
	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded := NewStore()
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Len() != 0 {
		t.Errorf("expected empty store, got %d", loaded.Len())
	}
}
