// Package graph combines the aggregated collection, its similarity matrix and
// its 2D projection into the exported dataset.
package graph

import (
	"fmt"

	"embedgraph/internal/domain"
)

// Assemble builds the dataset. Node i is entry i of the collection: its id is
// i, its coordinates are points[i], and the matrix is passed through as is.
func Assemble(c domain.Collection, dists domain.SimilarityMatrix, points []domain.Point, palette Palette) (*domain.GraphDataset, error) {
	n := c.Len()
	if len(points) != n {
		return nil, fmt.Errorf("have %d points for %d entries", len(points), n)
	}
	if len(dists) != n {
		return nil, fmt.Errorf("similarity matrix has %d rows for %d entries", len(dists), n)
	}
	for i, row := range dists {
		if len(row) != n {
			return nil, fmt.Errorf("similarity row %d has %d columns, want %d", i, len(row), n)
		}
	}
	if dists == nil {
		dists = domain.SimilarityMatrix{}
	}

	nodes := make([]domain.GraphNode, n)
	for i, e := range c.Entries {
		nodes[i] = domain.GraphNode{
			ID:    i,
			Label: e.Key,
			Color: palette.Color(e.Language),
			X:     points[i].X,
			Y:     points[i].Y,
		}
	}
	return &domain.GraphDataset{Nodes: nodes, Dists: dists}, nil
}
