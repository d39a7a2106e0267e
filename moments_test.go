package ward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoments_SeedsLeaves(t *testing.T) {
	features := [][]float64{{1, 2}, {3, 4}, {5, 6}}
	m := newMoments(features, 5)

	require.Len(t, m.count, 5)
	assert.Equal(t, []float64{1, 1, 1, 0, 0}, m.count)
	assert.Equal(t, []float64{3, 4}, m.row(1))
	assert.Equal(t, []float64{0, 0}, m.row(4))

	// Seeding copies: mutating the input must not reach the moments.
	features[0][0] = 100
	assert.Equal(t, 1.0, m.row(0)[0])
}

func TestMoments_MergeSumsExactly(t *testing.T) {
	m := newMoments([][]float64{{1, 2}, {3, 4}, {5, 6}}, 5)
	m.merge(0, 1, 3)
	assert.Equal(t, 2.0, m.count[3])
	assert.Equal(t, []float64{4, 6}, m.row(3))

	m.merge(2, 3, 4)
	assert.Equal(t, 3.0, m.count[4])
	assert.Equal(t, []float64{9, 12}, m.row(4))
}

func TestMoments_WardDistance(t *testing.T) {
	tests := []struct {
		name     string
		features [][]float64
		merges   [][3]int
		a, b     int
		want     float64
	}{
		// Two singletons: half the squared distance.
		{"singletons", [][]float64{{0, 0}, {3, 4}}, nil, 1, 0, 12.5},
		// {0,2} (centroid 1) vs {10} : 2*1/3 * 81 = 54.
		{"pair vs singleton", [][]float64{{0}, {2}, {10}}, [][3]int{{0, 1, 3}}, 3, 2, 54},
		// {0,2} vs {10,12}: centroids 1 and 11, 2*2/4 * 100 = 100.
		{"pair vs pair", [][]float64{{0}, {2}, {10}, {12}}, [][3]int{{0, 1, 4}, {2, 3, 5}}, 5, 4, 100},
		{"identical points", [][]float64{{7, 7}, {7, 7}}, nil, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nNodes := 2*len(tt.features) - 1
			m := newMoments(tt.features, nNodes)
			for _, mg := range tt.merges {
				m.merge(mg[0], mg[1], mg[2])
			}
			assert.InDelta(t, tt.want, m.wardDistance(tt.a, tt.b), 1e-12)
			assert.InDelta(t, tt.want, m.wardDistance(tt.b, tt.a), 1e-12, "distance must be symmetric")
		})
	}
}
