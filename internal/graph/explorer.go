package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/btree"

	"embedgraph/internal/domain"
)

// Neighbor is another node ranked by its similarity to a chosen node.
type Neighbor struct {
	Node  domain.GraphNode
	Score domain.Score
	// Edge is set when the renderer would draw a link (Score above the threshold).
	Edge bool
}

// Explorer answers read-only queries over a built dataset.
type Explorer struct {
	ds        *domain.GraphDataset
	byLabel   btree.Map[string, int]
	threshold float64
}

// NewExplorer indexes ds by label. Pairs scoring above threshold count as edges.
func NewExplorer(ds *domain.GraphDataset, threshold float64) *Explorer {
	e := &Explorer{ds: ds, threshold: threshold}
	for i, n := range ds.Nodes {
		e.byLabel.Set(strings.ToLower(n.Label), i)
	}
	return e
}

func (e *Explorer) Len() int { return len(e.ds.Nodes) }

func (e *Explorer) Threshold() float64 { return e.threshold }

// Find returns up to limit nodes whose label starts with prefix, ignoring
// case, in label order.
func (e *Explorer) Find(prefix string, limit int) []domain.GraphNode {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	var out []domain.GraphNode
	e.byLabel.Ascend(prefix, func(label string, idx int) bool {
		if !strings.HasPrefix(label, prefix) || (limit > 0 && len(out) >= limit) {
			return false
		}
		out = append(out, e.ds.Nodes[idx])
		return true
	})
	return out
}

// Neighbors returns the k nodes most similar to node id, best first.
// Undefined similarities are skipped. k <= 0 returns all of them.
func (e *Explorer) Neighbors(id, k int) ([]Neighbor, error) {
	if id < 0 || id >= len(e.ds.Nodes) {
		return nil, fmt.Errorf("node %d out of range", id)
	}
	if id >= len(e.ds.Dists) {
		return nil, nil
	}
	row := e.ds.Dists[id]
	out := make([]Neighbor, 0, len(row))
	for j, s := range row {
		if j >= len(e.ds.Nodes) {
			break
		}
		if j == id || !s.Defined() {
			continue
		}
		out = append(out, Neighbor{Node: e.ds.Nodes[j], Score: s, Edge: float64(s) > e.threshold})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out, nil
}

// EdgeCount returns the number of unordered pairs scoring above the threshold.
func (e *Explorer) EdgeCount() int {
	n := 0
	for i, row := range e.ds.Dists {
		for j := i + 1; j < len(row); j++ {
			if row[j].Defined() && float64(row[j]) > e.threshold {
				n++
			}
		}
	}
	return n
}
