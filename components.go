package ward

import (
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// ConnectedComponents labels the connected components of the undirected
// relation conn over n samples. It returns the number of components and a
// label in [0, count) for every sample.
//
// Components are numbered by their smallest member, so sample 0 is always
// in component 0 and labels are stable across calls.
func ConnectedComponents(conn Connectivity, n int) (int, []int) {
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	for i := 0; i < n; i++ {
		for _, j := range conn.Neighbors(i) {
			if j == i || g.HasEdgeBetween(int64(i), int64(j)) {
				continue
			}
			g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
		}
	}

	comps := topo.ConnectedComponents(g)
	firsts := make([]int, len(comps))
	for c, nodes := range comps {
		first := n
		for _, v := range nodes {
			first = min(first, int(v.ID()))
		}
		firsts[c] = first
	}
	order := make([]int, len(comps))
	for c := range order {
		order[c] = c
	}
	slices.SortFunc(order, func(a, b int) int { return firsts[a] - firsts[b] })

	labels := make([]int, n)
	for label, c := range order {
		for _, v := range comps[c] {
			labels[v.ID()] = label
		}
	}
	return len(comps), labels
}

// componentMembers groups sample indices by component label, each group in
// ascending index order.
func componentMembers(labels []int, count int) [][]int {
	members := make([][]int, count)
	for i, c := range labels {
		members[c] = append(members[c], i)
	}
	return members
}
