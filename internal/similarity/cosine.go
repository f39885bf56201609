// Package similarity computes pairwise cosine similarity matrices.
package similarity

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"embedgraph/internal/domain"
)

// Cosine computes the full cosine similarity matrix through one BLAS rank-k
// update (X·Xᵀ) instead of N² separate dot products.
type Cosine struct{}

func NewCosine() *Cosine { return &Cosine{} }

func (c *Cosine) Name() string { return "cosine" }

// Compute returns the N×N matrix for vectors. Cell [i][j] for i≠j holds
// dot(a,b)/(‖a‖·‖b‖), or NaN when either norm is zero. The diagonal is 1.
func (c *Cosine) Compute(vectors []domain.Vector) (domain.SimilarityMatrix, error) {
	n := len(vectors)
	out := make(domain.SimilarityMatrix, n)
	for i := range out {
		out[i] = make([]domain.Score, n)
		out[i][i] = 1
	}
	if n < 2 {
		return out, nil
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("empty vector at row 0")
	}
	data := make([]float64, 0, n*dim)
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("row %d has dimension %d, want %d", i, len(v), dim)
		}
		data = append(data, v...)
	}
	x := mat.NewDense(n, dim, data)

	var gram mat.SymDense
	gram.SymOuterK(1, x)

	norms := make([]float64, n)
	for i := range norms {
		norms[i] = math.Sqrt(gram.At(i, i))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := cosineFrom(gram.At(i, j), norms[i], norms[j])
			out[i][j] = s
			out[j][i] = s
		}
	}
	return out, nil
}

// Pair returns the cosine similarity of a and b, NaN if either has zero norm.
func Pair(a, b domain.Vector) domain.Score {
	if len(a) != len(b) || len(a) == 0 {
		return domain.Score(math.NaN())
	}
	return cosineFrom(floats.Dot(a, b), floats.Norm(a, 2), floats.Norm(b, 2))
}

func cosineFrom(dot, na, nb float64) domain.Score {
	if na == 0 || nb == 0 {
		return domain.Score(math.NaN())
	}
	s := dot / (na * nb)
	// rounding can push parallel vectors just past ±1
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	return domain.Score(s)
}

var _ domain.SimilarityEngine = (*Cosine)(nil)
