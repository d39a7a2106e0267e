package ward

import (
	"container/heap"
	"math"
	"sort"
)

// kdNode is one node of a KDTree. Leaves own idx[start:end]; internal nodes
// have two children.
type kdNode struct {
	start, end  int
	left, right int // -1 for leaves
}

// KDTree is a KD-tree over flat row-major points, used to find nearest
// neighbors when building k-nearest-neighbor connectivity graphs.
type KDTree struct {
	data     []float64 // n*dims, row-major
	n, dims  int
	leafSize int
	idx      []int // tree order position -> original point index
	nodes    []kdNode
	// boundsMin/boundsMax hold the bounding box of node i at
	// [i*dims, (i+1)*dims).
	boundsMin []float64
	boundsMax []float64
}

// NewKDTree builds a KD-tree over n points of dimensionality dims stored
// flat row-major in data. The data is not copied. leafSize bounds the
// number of points per leaf.
func NewKDTree(data []float64, n, dims, leafSize int) *KDTree {
	t := &KDTree{
		data:     data,
		n:        n,
		dims:     dims,
		leafSize: max(leafSize, 1),
		idx:      make([]int, n),
	}
	for i := range t.idx {
		t.idx[i] = i
	}
	if n > 0 {
		t.build(0, n)
	}
	return t
}

// build creates the node for idx[start:end] and returns its index.
func (t *KDTree) build(start, end int) int {
	id := len(t.nodes)
	t.nodes = append(t.nodes, kdNode{start: start, end: end, left: -1, right: -1})
	lo, hi := t.bounds(start, end)
	t.boundsMin = append(t.boundsMin, lo...)
	t.boundsMax = append(t.boundsMax, hi...)

	if end-start <= t.leafSize {
		return id
	}

	split := 0
	spread := -1.0
	for d := 0; d < t.dims; d++ {
		if s := hi[d] - lo[d]; s > spread {
			spread = s
			split = d
		}
	}
	sub := t.idx[start:end]
	sort.Slice(sub, func(a, b int) bool {
		return t.data[sub[a]*t.dims+split] < t.data[sub[b]*t.dims+split]
	})
	mid := start + (end-start)/2

	left := t.build(start, mid)
	right := t.build(mid, end)
	t.nodes[id].left = left
	t.nodes[id].right = right
	return id
}

func (t *KDTree) bounds(start, end int) (lo, hi []float64) {
	lo = make([]float64, t.dims)
	hi = make([]float64, t.dims)
	for d := range lo {
		lo[d] = math.Inf(1)
		hi[d] = math.Inf(-1)
	}
	for _, p := range t.idx[start:end] {
		for d, v := range t.point(p) {
			lo[d] = min(lo[d], v)
			hi[d] = max(hi[d], v)
		}
	}
	return lo, hi
}

func (t *KDTree) point(i int) []float64 {
	return t.data[i*t.dims : (i+1)*t.dims]
}

// minSqDist returns a lower bound on the squared distance from q to any
// point in node.
func (t *KDTree) minSqDist(node int, q []float64) float64 {
	lo := t.boundsMin[node*t.dims : (node+1)*t.dims]
	hi := t.boundsMax[node*t.dims : (node+1)*t.dims]
	var sum float64
	for d, v := range q {
		var gap float64
		switch {
		case v < lo[d]:
			gap = lo[d] - v
		case v > hi[d]:
			gap = v - hi[d]
		}
		sum += gap * gap
	}
	return sum
}

// knnItem is a neighbor candidate in a bounded max-heap.
type knnItem struct {
	index  int
	sqDist float64
}

// knnHeap keeps the worst of the current k candidates on top.
type knnHeap []knnItem

func (h knnHeap) Len() int           { return len(h) }
func (h knnHeap) Less(i, j int) bool { return h[j].closer(h[i]) }
func (h knnHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *knnHeap) Push(x any)        { *h = append(*h, x.(knnItem)) }
func (h *knnHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// QueryKNN returns the indices of the k points nearest to query, closest
// first, excluding the point with index skip (pass -1 to skip nothing).
// Equidistant points are ordered by index.
func (t *KDTree) QueryKNN(query []float64, k, skip int) []int {
	if k <= 0 || t.n == 0 {
		return nil
	}
	h := &knnHeap{}
	t.search(0, query, k, skip, h)

	out := make([]int, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(knnItem).index
	}
	return out
}

func (t *KDTree) search(node int, q []float64, k, skip int, h *knnHeap) {
	nd := t.nodes[node]
	if nd.left < 0 {
		for _, p := range t.idx[nd.start:nd.end] {
			if p == skip {
				continue
			}
			item := knnItem{index: p, sqDist: SqEuclidean(q, t.point(p))}
			if h.Len() < k {
				heap.Push(h, item)
			} else if item.closer((*h)[0]) {
				(*h)[0] = item
				heap.Fix(h, 0)
			}
		}
		return
	}

	near, far := nd.left, nd.right
	nearDist, farDist := t.minSqDist(near, q), t.minSqDist(far, q)
	if farDist < nearDist {
		near, far = far, near
		farDist = nearDist
	}
	t.search(near, q, k, skip, h)
	if h.Len() < k || farDist <= (*h)[0].sqDist {
		t.search(far, q, k, skip, h)
	}
}

// closer reports whether a ranks before b: smaller distance first, then
// smaller index.
func (a knnItem) closer(b knnItem) bool {
	if a.sqDist != b.sqDist {
		return a.sqDist < b.sqDist
	}
	return a.index < b.index
}
