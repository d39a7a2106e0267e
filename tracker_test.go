package ward

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphNeighborhood_SymmetrizesAndDropsSelfLoops(t *testing.T) {
	// Upper triangle only, with a self-loop and a duplicate.
	conn, _ := AsConnectivity([][]int{{0, 1, 2, 2}, {3}, {}, {}})
	g := newGraphNeighborhood(conn, 4, 7)

	assert.Equal(t, []int{1, 2}, g.lists[0])
	assert.Equal(t, []int{0, 3}, g.lists[1])
	assert.Equal(t, []int{0}, g.lists[2])
	assert.Equal(t, []int{1}, g.lists[3])

	assert.Empty(t, g.initial(0))
	assert.Equal(t, []int{0}, g.initial(1))
	assert.Equal(t, []int{0}, g.initial(2))
	assert.Equal(t, []int{1}, g.initial(3))
}

func TestGraphNeighborhood_MergeResolvesStaleIDs(t *testing.T) {
	// Path 0-1-2-3.
	conn, _ := AsConnectivity([][]int{{1}, {2}, {3}, {}})
	g := newGraphNeighborhood(conn, 4, 7)

	// 1,2 -> 4: neighbors are 0 and 3.
	got := g.merge(1, 2, 4)
	slices.Sort(got)
	assert.Equal(t, []int{0, 3}, got)
	assert.Contains(t, g.lists[0], 4)
	assert.Contains(t, g.lists[3], 4)
	assert.Nil(t, g.lists[1])
	assert.Nil(t, g.lists[2])

	// 0,4 -> 5: 0's list still names 1 (now inside 4, i.e. 5) and 4 itself;
	// both resolve to 5 and are dropped. Only 3 remains.
	assert.Equal(t, []int{3}, g.merge(0, 4, 5))

	// 3,5 -> 6: nothing left.
	assert.Empty(t, g.merge(3, 5, 6))
}

func TestGraphNeighborhood_MergeDeduplicates(t *testing.T) {
	// Triangle 0-1-2 plus 2-3: merging 0 and 1 sees 2 twice.
	conn, _ := AsConnectivity([][]int{{1, 2}, {2}, {3}, {}})
	g := newGraphNeighborhood(conn, 4, 7)
	assert.Equal(t, []int{2}, g.merge(0, 1, 4))
	assert.Equal(t, 1, g.degree(4))
}

func TestCompleteNeighborhood(t *testing.T) {
	c := newCompleteNeighborhood(4, 7)
	assert.Equal(t, []int{0, 1, 2}, c.initial(3))
	assert.Equal(t, 3, c.degree(0))

	got := c.merge(1, 3, 4)
	slices.Sort(got)
	assert.Equal(t, []int{0, 2}, got)

	got = c.merge(4, 0, 5)
	assert.Equal(t, []int{2}, got)

	assert.Empty(t, c.merge(2, 5, 6))
	assert.Equal(t, []int{6}, c.members)
}
