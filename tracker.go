package ward

import "slices"

// neighborhood decides which active nodes are merge candidates of a freshly
// created node. It is the adjacency tracker of the tree builder.
type neighborhood interface {
	// initial returns, for every leaf i, the eligible partners j < i.
	initial(i int) []int

	// merge records that i and j were merged into k and returns the active
	// nodes now adjacent to k.
	merge(i, j, k int) []int

	// degree returns the number of candidates node i currently has.
	degree(i int) int
}

// graphNeighborhood tracks explicit neighbor lists for a connectivity
// constrained build. Lists keep the ids they were built with; stale ids are
// resolved through the parent map when two lists are combined.
type graphNeighborhood struct {
	lists   [][]int
	parents *parentMap
	// visited[l] == k marks l as already collected while building node k.
	visited []int
}

// newGraphNeighborhood symmetrizes conn into per-node neighbor lists sized
// for nNodes nodes. Self-loops are dropped and duplicates removed.
func newGraphNeighborhood(conn Connectivity, nLeaves, nNodes int) *graphNeighborhood {
	lists := make([][]int, nNodes)
	for i := 0; i < nLeaves; i++ {
		for _, j := range conn.Neighbors(i) {
			if j == i {
				continue
			}
			lists[i] = append(lists[i], j)
			lists[j] = append(lists[j], i)
		}
	}
	for i := 0; i < nLeaves; i++ {
		slices.Sort(lists[i])
		lists[i] = slices.Compact(lists[i])
	}
	visited := make([]int, nNodes)
	for i := range visited {
		visited[i] = -1
	}
	return &graphNeighborhood{
		lists:   lists,
		parents: newParentMap(nNodes),
		visited: visited,
	}
}

func (g *graphNeighborhood) initial(i int) []int {
	row := g.lists[i]
	// Lists are sorted, so the partners below i form a prefix.
	end, _ := slices.BinarySearch(row, i)
	return row[:end]
}

func (g *graphNeighborhood) merge(i, j, k int) []int {
	g.parents.Link(i, j, k)
	g.visited[k] = k
	var out []int
	for _, src := range [2][]int{g.lists[i], g.lists[j]} {
		for _, l := range src {
			l = g.parents.Resolve(l)
			if g.visited[l] == k {
				continue
			}
			g.visited[l] = k
			out = append(out, l)
			g.lists[l] = append(g.lists[l], k)
		}
	}
	g.lists[k] = out
	g.lists[i], g.lists[j] = nil, nil
	return out
}

func (g *graphNeighborhood) degree(i int) int { return len(g.lists[i]) }

// completeNeighborhood treats every pair of active nodes as adjacent.
type completeNeighborhood struct {
	// members lists the active nodes; pos[x] is x's index in members.
	members []int
	pos     []int
}

func newCompleteNeighborhood(nLeaves, nNodes int) *completeNeighborhood {
	members := make([]int, nLeaves, nLeaves+1)
	pos := make([]int, nNodes)
	for i := range members {
		members[i] = i
		pos[i] = i
	}
	return &completeNeighborhood{members: members, pos: pos}
}

func (c *completeNeighborhood) initial(i int) []int { return c.members[:i] }

func (c *completeNeighborhood) merge(i, j, k int) []int {
	c.remove(i)
	c.remove(j)
	out := slices.Clone(c.members)
	c.pos[k] = len(c.members)
	c.members = append(c.members, k)
	return out
}

// remove deletes x from members by swapping in the last element.
func (c *completeNeighborhood) remove(x int) {
	p := c.pos[x]
	last := c.members[len(c.members)-1]
	c.members[p] = last
	c.pos[last] = p
	c.members = c.members[:len(c.members)-1]
}

func (c *completeNeighborhood) degree(int) int { return len(c.members) - 1 }
