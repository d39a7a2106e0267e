package ward

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestSqEuclidean(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"same point", []float64{1, 2}, []float64{1, 2}, 0},
		{"3-4-5", []float64{0, 0}, []float64{3, 4}, 25},
		{"1d", []float64{-1}, []float64{2}, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SqEuclidean(tt.a, tt.b); got != tt.want {
				t.Errorf("SqEuclidean(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPairwiseSqEuclidean_MatchesDirect(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	features := make([][]float64, 12)
	for i := range features {
		features[i] = []float64{rng.Float64() * 10, rng.Float64() * 10, rng.Float64() * 10}
	}
	rows := []int{0, 3, 5, 11}
	cols := []int{1, 2, 4, 6, 7}

	d := PairwiseSqEuclidean(gatherRows(features, rows), gatherRows(features, cols))
	r, c := d.Dims()
	assert.Equal(t, len(rows), r)
	assert.Equal(t, len(cols), c)
	for i, x := range rows {
		for j, y := range cols {
			assert.InDelta(t, SqEuclidean(features[x], features[y]), d.At(i, j), 1e-9)
		}
	}
}

func TestPairwiseSqEuclidean_ClampsAtZero(t *testing.T) {
	a := mat.NewDense(1, 2, []float64{1e8 + 0.1, 1e8 + 0.3})
	d := PairwiseSqEuclidean(a, a)
	assert.GreaterOrEqual(t, d.At(0, 0), 0.0)
}

func TestPairwiseSqEuclidean_ShapeMismatchPanics(t *testing.T) {
	assert.PanicsWithValue(t, mat.ErrShape, func() {
		PairwiseSqEuclidean(mat.NewDense(1, 2, nil), mat.NewDense(1, 3, nil))
	})
}
