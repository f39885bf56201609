package similarity

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"embedgraph/internal/domain"
)

func randomVectors(n, dim int, seed int64) []domain.Vector {
	rng := rand.New(rand.NewSource(seed))
	out := make([]domain.Vector, n)
	for i := range out {
		v := make(domain.Vector, dim)
		for j := range v {
			v[j] = rng.NormFloat64()
		}
		out[i] = v
	}
	return out
}

func TestComputeProperties(t *testing.T) {
	vecs := randomVectors(25, 300, 7)
	m, err := NewCosine().Compute(vecs)
	require.NoError(t, err)
	require.Len(t, m, 25)

	for i := range m {
		require.Len(t, m[i], 25)
		assert.Equal(t, domain.Score(1), m[i][i], "diagonal at %d", i)
		for j := range m[i] {
			assert.Equal(t, m[i][j], m[j][i], "symmetry at %d,%d", i, j)
			if i == j {
				continue
			}
			assert.GreaterOrEqual(t, float64(m[i][j]), -1.0)
			assert.LessOrEqual(t, float64(m[i][j]), 1.0)
		}
	}
}

func TestComputeMatchesPairwiseCosine(t *testing.T) {
	vecs := randomVectors(6, 17, 3)
	m, err := NewCosine().Compute(vecs)
	require.NoError(t, err)
	for i := range vecs {
		for j := i + 1; j < len(vecs); j++ {
			assert.InDelta(t, float64(Pair(vecs[i], vecs[j])), float64(m[i][j]), 1e-12)
		}
	}
}

func TestComputeKnownValues(t *testing.T) {
	m, err := NewCosine().Compute([]domain.Vector{
		{1, 0},
		{0, 2},
		{-3, 0},
		{1, 1},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, float64(m[0][1]), 1e-12)
	assert.InDelta(t, -1.0, float64(m[0][2]), 1e-12)
	assert.InDelta(t, 1/math.Sqrt2, float64(m[0][3]), 1e-12)
	assert.InDelta(t, 1/math.Sqrt2, float64(m[3][1]), 1e-12)
}

func TestComputeZeroNormIsUndefined(t *testing.T) {
	m, err := NewCosine().Compute([]domain.Vector{{1, 2}, {0, 0}, {2, 1}})
	require.NoError(t, err)
	assert.False(t, m[0][1].Defined())
	assert.False(t, m[1][2].Defined())
	assert.False(t, m[2][1].Defined())
	assert.True(t, m[0][2].Defined())
	assert.Equal(t, domain.Score(1), m[1][1])
}

func TestComputeDegenerateSizes(t *testing.T) {
	m, err := NewCosine().Compute(nil)
	require.NoError(t, err)
	assert.NotNil(t, m)
	assert.Empty(t, m)

	m, err = NewCosine().Compute([]domain.Vector{{0.3, 0.4}})
	require.NoError(t, err)
	assert.Equal(t, domain.SimilarityMatrix{{1}}, m)
}

func TestComputeRejectsRaggedInput(t *testing.T) {
	_, err := NewCosine().Compute([]domain.Vector{{1, 2}, {1}})
	assert.Error(t, err)
}

func TestPair(t *testing.T) {
	assert.InDelta(t, 1.0, float64(Pair(domain.Vector{2, 2}, domain.Vector{1, 1})), 1e-12)
	assert.False(t, Pair(domain.Vector{0, 0}, domain.Vector{1, 1}).Defined())
	assert.False(t, Pair(domain.Vector{1}, domain.Vector{1, 1}).Defined())
}
