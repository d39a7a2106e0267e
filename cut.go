package ward

import (
	"container/heap"
	"fmt"
)

// nodeMaxHeap is a max-heap of node ids for container/heap.
type nodeMaxHeap []int

func (h nodeMaxHeap) Len() int           { return len(h) }
func (h nodeMaxHeap) Less(i, j int) bool { return h[i] > h[j] }
func (h nodeMaxHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *nodeMaxHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *nodeMaxHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// CutTree splits the merge tree into nClusters clusters and returns a label
// in [0, nClusters) for every leaf.
//
// Starting from the root it repeatedly replaces the most recently created
// remaining node with its two children until nClusters nodes remain. The
// remaining nodes are then labeled from 0 in decreasing id order and every
// leaf takes the label of the node above it.
//
// children must describe a complete tree over nLeaves leaves, as built by
// BuildTree. nClusters outside [1, nLeaves] yields ErrInvalidClusterCount
// and a malformed tree yields ErrShape, both before any work is done.
func CutTree(children [][2]int, nLeaves, nClusters int) ([]int, error) {
	if nClusters < 1 || nClusters > nLeaves {
		return nil, fmt.Errorf("%w: cannot extract %d clusters from a tree with %d leaves",
			ErrInvalidClusterCount, nClusters, nLeaves)
	}
	if err := validateChildren(children, nLeaves); err != nil {
		return nil, err
	}
	return cut(children, nLeaves, nClusters), nil
}

// CutTreeMulti cuts the same tree at each of the requested cluster counts.
// All counts are validated before any cut is made.
func CutTreeMulti(children [][2]int, nLeaves int, nClusters []int) ([][]int, error) {
	for _, k := range nClusters {
		if k < 1 || k > nLeaves {
			return nil, fmt.Errorf("%w: cannot extract %d clusters from a tree with %d leaves",
				ErrInvalidClusterCount, k, nLeaves)
		}
	}
	if err := validateChildren(children, nLeaves); err != nil {
		return nil, err
	}
	out := make([][]int, len(nClusters))
	for i, k := range nClusters {
		out[i] = cut(children, nLeaves, k)
	}
	return out, nil
}

// validateChildren checks that children is a complete tree over nLeaves
// leaves in which every child was created before its parent.
func validateChildren(children [][2]int, nLeaves int) error {
	if len(children) != nLeaves-1 {
		return fmt.Errorf("%w: %d merges for %d leaves, want %d", ErrShape, len(children), nLeaves, nLeaves-1)
	}
	for m, ch := range children {
		node := nLeaves + m
		for _, c := range ch {
			if c < 0 || c >= node {
				return fmt.Errorf("%w: node %d has child %d outside [0, %d)", ErrShape, node, c, node)
			}
		}
	}
	return nil
}

func cut(children [][2]int, nLeaves, nClusters int) []int {
	roots := nodeMaxHeap{nLeaves + len(children) - 1}
	for i := 0; i < nClusters-1; i++ {
		top := heap.Pop(&roots).(int)
		ch := children[top-nLeaves]
		heap.Push(&roots, ch[0])
		heap.Push(&roots, ch[1])
	}

	labels := make([]int, nLeaves)
	var leaves []int
	for label := 0; roots.Len() > 0; label++ {
		node := heap.Pop(&roots).(int)
		leaves = descendants(children, nLeaves, node, leaves[:0])
		for _, leaf := range leaves {
			labels[leaf] = label
		}
	}
	return labels
}
