package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"embedgraph/internal/domain"
)

func exploreDataset() *domain.GraphDataset {
	nan := domain.Score(math.NaN())
	return &domain.GraphDataset{
		Nodes: []domain.GraphNode{
			{ID: 0, Label: "king_EN"},
			{ID: 1, Label: "koning_AF"},
			{ID: 2, Label: "König_DE"},
			{ID: 3, Label: "dog_EN"},
		},
		Dists: domain.SimilarityMatrix{
			{1, 0.7, 0.5, 0.1},
			{0.7, 1, 0.3, nan},
			{0.5, 0.3, 1, 0.2},
			{0.1, nan, 0.2, 1},
		},
	}
}

func TestFind(t *testing.T) {
	e := NewExplorer(exploreDataset(), 0.4)
	var got []string
	for _, n := range e.Find("K", 0) {
		got = append(got, n.Label)
	}
	assert.Equal(t, []string{"king_EN", "koning_AF", "König_DE"}, got)

	assert.Len(t, e.Find("k", 1), 1)
	assert.Empty(t, e.Find("zebra", 5))
	assert.Len(t, e.Find("", 0), 4)
}

func TestNeighbors(t *testing.T) {
	e := NewExplorer(exploreDataset(), 0.4)
	nb, err := e.Neighbors(0, 2)
	require.NoError(t, err)
	require.Len(t, nb, 2)
	assert.Equal(t, "koning_AF", nb[0].Node.Label)
	assert.True(t, nb[0].Edge)
	assert.Equal(t, "König_DE", nb[1].Node.Label)

	nb, err = e.Neighbors(1, 0)
	require.NoError(t, err)
	require.Len(t, nb, 2, "undefined scores are skipped")
	assert.False(t, nb[1].Edge)

	_, err = e.Neighbors(9, 1)
	assert.Error(t, err)
}

func TestEdgeCount(t *testing.T) {
	assert.Equal(t, 2, NewExplorer(exploreDataset(), 0.4).EdgeCount())
	assert.Equal(t, 0, NewExplorer(exploreDataset(), 0.9).EdgeCount())
}
