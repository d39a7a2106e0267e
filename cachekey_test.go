package ward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeKey(t *testing.T) {
	features := [][]float64{{0, 1}, {2, 3}, {4, 5}}
	upper, err := AsConnectivity([][]int{{1}, {2}, {}})
	require.NoError(t, err)
	sym := NewAdjacency(3)
	sym.AddEdge(0, 1)
	sym.AddEdge(1, 2)
	dense, err := AsConnectivity([][]bool{
		{true, true, false},
		{true, false, true},
		{false, true, false},
	})
	require.NoError(t, err)

	base := TreeKey(features, upper, 0)
	assert.Equal(t, base, TreeKey(features, sym, 0), "layout must not matter")
	assert.Equal(t, base, TreeKey(features, dense, 0), "self-loops must not matter")

	assert.NotEqual(t, base, TreeKey(features, nil, 0))
	assert.NotEqual(t, base, TreeKey(features, NewAdjacency(3), 0))
	assert.NotEqual(t, base, TreeKey(features, upper, 1))

	changed := [][]float64{{0, 1}, {2, 3}, {4, 5.5}}
	assert.NotEqual(t, base, TreeKey(changed, upper, 0))

	// Same values, different shape.
	reshaped := [][]float64{{0, 1, 2}, {3, 4, 5}}
	assert.NotEqual(t, TreeKey(features, nil, 0), TreeKey(reshaped, nil, 0))
}
