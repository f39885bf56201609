package memory

import (
	"errors"
	"fmt"

	"embedgraph/internal/domain"
	"embedgraph/internal/vocab"
)

// Subset is an in-memory word→vector table for one language. Keys are
// lowercased and iteration follows insertion order.
type Subset struct {
	dimension int
	words     []string
	vectors   map[string]domain.Vector
}

// NewSubset creates an empty subset whose vectors must have the given dimension.
func NewSubset(dimension int) *Subset {
	return &Subset{dimension: dimension, vectors: make(map[string]domain.Vector)}
}

// Set stores a vector under the lowercased word. A word that is already
// present keeps its position and its first vector.
func (s *Subset) Set(word string, vector domain.Vector) error {
	if word == "" {
		return errors.New("empty word")
	}
	if len(vector) != s.dimension {
		return fmt.Errorf("vector dimension mismatch for %q: got %d, want %d", word, len(vector), s.dimension)
	}
	key := vocab.Fold(word)
	if _, ok := s.vectors[key]; ok {
		return nil
	}
	v := make(domain.Vector, len(vector))
	copy(v, vector)
	s.words = append(s.words, key)
	s.vectors[key] = v
	return nil
}

// Get returns the vector stored for word, matched on its lowercased form.
func (s *Subset) Get(word string) (domain.Vector, bool) {
	v, ok := s.vectors[vocab.Fold(word)]
	return v, ok
}

func (s *Subset) Len() int { return len(s.words) }

func (s *Subset) Dimension() int { return s.dimension }

// Words returns the stored keys in insertion order.
func (s *Subset) Words() []string {
	out := make([]string, len(s.words))
	copy(out, s.words)
	return out
}

// Entries returns the stored pairs in insertion order.
func (s *Subset) Entries() []domain.WordEntry {
	out := make([]domain.WordEntry, len(s.words))
	for i, w := range s.words {
		out[i] = domain.WordEntry{Word: w, Vector: s.vectors[w]}
	}
	return out
}
