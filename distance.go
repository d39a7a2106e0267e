package ward

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SqEuclidean returns the squared Euclidean distance between a and b.
func SqEuclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// PairwiseSqEuclidean returns the matrix of squared Euclidean distances
// between the rows of a and the rows of b, using the expansion
//
//	||x - y||^2 = ||x||^2 + ||y||^2 - 2 x.y
//
// so the bulk of the work is a single matrix product. Entries that come
// out slightly negative from rounding are clamped to zero.
// It panics with mat.ErrShape if a and b differ in column count.
func PairwiseSqEuclidean(a, b *mat.Dense) *mat.Dense {
	ra, ca := a.Dims()
	rb, cb := b.Dims()
	if ca != cb {
		panic(mat.ErrShape)
	}
	na := rowSqNorms(a, ra)
	nb := rowSqNorms(b, rb)

	d := mat.NewDense(ra, rb, nil)
	d.Mul(a, b.T())
	d.Apply(func(i, j int, v float64) float64 {
		v = na[i] + nb[j] - 2*v
		if v < 0 {
			return 0
		}
		return v
	}, d)
	return d
}

func rowSqNorms(m *mat.Dense, rows int) []float64 {
	norms := make([]float64, rows)
	for i := range norms {
		row := m.RawRowView(i)
		norms[i] = floats.Dot(row, row)
	}
	return norms
}

// gatherRows copies the feature rows listed in idx into a new dense matrix.
func gatherRows(features [][]float64, idx []int) *mat.Dense {
	dims := len(features[0])
	m := mat.NewDense(len(idx), dims, nil)
	for r, i := range idx {
		m.SetRow(r, features[i])
	}
	return m
}
