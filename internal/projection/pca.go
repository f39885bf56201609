// Package projection reduces embeddings to 2D coordinates for plotting.
package projection

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"embedgraph/internal/domain"
)

// PCA projects mean-centered vectors onto their top two principal components.
//
// The sign of a principal axis is not defined by the decomposition. Each axis
// is flipped so its largest-magnitude loading is positive, which keeps output
// stable for a given gonum version; coordinates are still only meaningful
// relative to the other points of the same run.
type PCA struct{}

func NewPCA() *PCA { return &PCA{} }

func (p *PCA) Name() string { return "pca" }

// Project returns one point per vector in input order. No input gives no
// points and a single vector sits at the origin. Components with no variance
// (rank below two, or one-dimensional input) project to zero.
func (p *PCA) Project(vectors []domain.Vector) ([]domain.Point, error) {
	n := len(vectors)
	if n == 0 {
		return []domain.Point{}, nil
	}
	if n == 1 {
		return []domain.Point{{}}, nil
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, errors.New("empty vector at row 0")
	}
	data := make([]float64, 0, n*dim)
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("row %d has dimension %d, want %d", i, len(v), dim)
		}
		data = append(data, v...)
	}
	x := mat.NewDense(n, dim, data)
	center(x)

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return nil, errors.New("pca: svd did not converge")
	}
	var v mat.Dense
	svd.VTo(&v)
	values := svd.Values(nil)

	points := make([]domain.Point, n)
	_, k := v.Dims()
	for c := 0; c < 2 && c < k; c++ {
		if values[0] == 0 || values[c] <= values[0]*1e-12 {
			continue
		}
		axis := mat.Col(nil, c, &v)
		orient(axis)
		for i := 0; i < n; i++ {
			coord := floats.Dot(x.RawRowView(i), axis)
			if c == 0 {
				points[i].X = coord
			} else {
				points[i].Y = coord
			}
		}
	}
	return points, nil
}

func center(x *mat.Dense) {
	n, dim := x.Dims()
	col := make([]float64, n)
	for j := 0; j < dim; j++ {
		mat.Col(col, j, x)
		mean := stat.Mean(col, nil)
		for i := 0; i < n; i++ {
			x.Set(i, j, col[i]-mean)
		}
	}
}

// orient flips axis in place so that its largest-magnitude entry is positive.
func orient(axis []float64) {
	best := 0
	for i, a := range axis {
		if math.Abs(a) > math.Abs(axis[best]) {
			best = i
		}
	}
	if axis[best] < 0 {
		floats.Scale(-1, axis)
	}
}

var _ domain.Projector = (*PCA)(nil)
