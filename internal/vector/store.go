package vector

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mzashi/plugkit/internal/config"
)

const storeFileName = "vectors.bin"

// storeFormatVersion is the binary format version written in the header.
const storeFormatVersion uint32 = 1

// Document is a single entry in the vector store: the original text, where
// it came from, and its embedding.
type Document struct {
	Text   string
	Source string
	Vector []float32
}

// Embedding satisfies Embedder so documents can be searched directly.
func (d Document) Embedding() []float32 {
	return d.Vector
}

// Store is an in-memory collection of documents backed by a binary file on
// disk. Load reads the entire file; Save rewrites it. Fine for the corpus
// sizes an embeddings index on one machine reaches.
type Store struct {
	docs []Document
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add inserts a document in memory only; call Save to persist.
func (s *Store) Add(doc Document) {
	s.docs = append(s.docs, doc)
}

// Len returns the number of documents in the store.
func (s *Store) Len() int {
	return len(s.docs)
}

// Search returns the k documents most similar to the query vector,
// highest dot-product first.
func (s *Store) Search(query []float32, k int) []Match[Document] {
	return Search(query, s.docs, k)
}

// storePath returns the full path to the binary vector file.
// It's a variable so tests can override it.
var storePath = func() string {
	return filepath.Join(config.Dir(), storeFileName)
}

// Save writes all documents to disk.
//
// Binary format (little-endian):
//
//	[4 bytes] format version (uint32)
//	[4 bytes] number of documents (uint32)
//	For each document:
//	  [4 bytes] text length, [N bytes] text (UTF-8)
//	  [4 bytes] source length, [N bytes] source (UTF-8)
//	  [4 bytes] vector dimension, [dim*4 bytes] float32 array
//
// Binary instead of JSON because a 1536-dim float32 vector is 6KB raw but
// roughly double that as decimal text, and parsing floats is slow.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(storePath()), 0o700); err != nil {
		return err
	}

	f, err := os.Create(storePath())
	if err != nil {
		return fmt.Errorf("failed to create vector store: %w", err)
	}
	defer f.Close()

	if err := binary.Write(f, binary.LittleEndian, storeFormatVersion); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(len(s.docs))); err != nil {
		return err
	}

	for _, doc := range s.docs {
		if err := writeString(f, doc.Text); err != nil {
			return err
		}
		if err := writeString(f, doc.Source); err != nil {
			return err
		}
		if err := binary.Write(f, binary.LittleEndian, uint32(len(doc.Vector))); err != nil {
			return err
		}
		if err := binary.Write(f, binary.LittleEndian, doc.Vector); err != nil {
			return err
		}
	}

	return nil
}

// Load reads the binary vector store from disk into memory, replacing any
// documents already held.
func (s *Store) Load() error {
	f, err := os.Open(storePath())
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("vector store not found, run 'plugkit index' first")
		}
		return fmt.Errorf("failed to open vector store: %w", err)
	}
	defer f.Close()

	var version uint32
	if err := binary.Read(f, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("failed to read store header: %w", err)
	}
	if version != storeFormatVersion {
		return fmt.Errorf("unsupported vector store version %d", version)
	}

	var count uint32
	if err := binary.Read(f, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("failed to read document count: %w", err)
	}

	s.docs = make([]Document, count)
	for i := uint32(0); i < count; i++ {
		text, err := readString(f)
		if err != nil {
			return err
		}
		source, err := readString(f)
		if err != nil {
			return err
		}

		var dim uint32
		if err := binary.Read(f, binary.LittleEndian, &dim); err != nil {
			return err
		}
		vec := make([]float32, dim)
		if err := binary.Read(f, binary.LittleEndian, vec); err != nil {
			return err
		}

		s.docs[i] = Document{Text: text, Source: source, Vector: vec}
	}

	return nil
}

// Flush deletes the vector store file from disk and empties the in-memory
// set. Returns nil if the file doesn't exist (already clean).
func (s *Store) Flush() error {
	if err := os.Remove(storePath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete vector store: %w", err)
	}
	s.docs = nil
	return nil
}

// writeString writes a length-prefixed UTF-8 string.
func writeString(f *os.File, s string) error {
	b := []byte(s)
	if err := binary.Write(f, binary.LittleEndian, uint32(len(b))); err != nil {
		return err
	}
	_, err := f.Write(b)
	return err
}

// readString reads a length-prefixed UTF-8 string.
func readString(f *os.File) (string, error) {
	var length uint32
	if err := binary.Read(f, binary.LittleEndian, &length); err != nil {
		return "", err
	}
	b := make([]byte, length)
	if _, err := io.ReadFull(f, b); err != nil {
		return "", err
	}
	return string(b), nil
}
