package ward

// parentMap links every merged node to the node it was merged into. It is
// the union-find half of the adjacency tracker: neighbor lists keep the ids
// they were built with, and Resolve maps a possibly stale id to the active
// cluster that now contains it.
//
// Unlike a general union-find there is no union by size: the new root is
// always the freshly created node, so ids along any path strictly increase.
type parentMap struct {
	parent []int
}

// newParentMap creates a parent map for nNodes node ids, each its own root.
func newParentMap(nNodes int) *parentMap {
	parent := make([]int, nNodes)
	for i := range parent {
		parent[i] = i
	}
	return &parentMap{parent: parent}
}

// Resolve returns the active ancestor of x, with path compression.
func (p *parentMap) Resolve(x int) int {
	root := x
	for p.parent[root] != root {
		root = p.parent[root]
	}
	for p.parent[x] != root {
		x, p.parent[x] = p.parent[x], root
	}
	return root
}

// Link records that nodes i and j were merged into k.
func (p *parentMap) Link(i, j, k int) {
	p.parent[i] = k
	p.parent[j] = k
}
