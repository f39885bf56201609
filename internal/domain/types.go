package domain

import (
	"encoding/json"
	"math"
	"time"
)

// Vector is a dense embedding. All vectors of one run share a dimension.
type Vector []float64

// WordEntry is a word resolved from a corpus together with its vector.
type WordEntry struct {
	Word   string
	Vector Vector
}

// TaggedEntry is one (word, language) pair of the aggregated collection.
type TaggedEntry struct {
	Key      string
	Word     string
	Language string
	Vector   Vector
}

// Collection is the ordered result of aggregation. Its order is the node
// order of every downstream stage.
type Collection struct {
	Dimension int
	Entries   []TaggedEntry
}

// Len returns the number of entries.
func (c Collection) Len() int { return len(c.Entries) }

// Vectors returns the entry vectors in collection order.
func (c Collection) Vectors() []Vector {
	out := make([]Vector, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = e.Vector
	}
	return out
}

// Score is a similarity value. NaN marks an undefined cell (a zero-norm
// vector was involved) and is encoded as JSON null.
type Score float64

// Defined reports whether the score holds a number.
func (s Score) Defined() bool { return !math.IsNaN(float64(s)) }

// MarshalJSON implements json.Marshaler.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Defined() || math.IsInf(float64(s), 0) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(s))
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Score) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Score(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*s = Score(f)
	return nil
}

// SimilarityMatrix is an N×N symmetric matrix indexed by collection order.
type SimilarityMatrix [][]Score

// Point is a projected 2D coordinate.
type Point struct {
	X float64
	Y float64
}

// GraphNode is one node of the exported dataset.
type GraphNode struct {
	ID    int     `json:"id"`
	Label string  `json:"label"`
	Color string  `json:"color"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// GraphDataset is the terminal artifact consumed by the renderer.
type GraphDataset struct {
	Nodes []GraphNode      `json:"nodes"`
	Dists SimilarityMatrix `json:"dists"`
}

// RunInfo identifies one pipeline execution.
type RunInfo struct {
	ID        string
	StartedAt time.Time
	Languages []string
}
