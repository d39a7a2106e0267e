package ward

import "golang.org/x/sync/errgroup"

// bridge is the closest pair of samples between two components.
type bridge struct {
	x, y int
}

// RepairConnectivity makes conn a single connected component by adding,
// for every pair of components, an edge between their closest samples.
// count and labels describe conn's components as returned by
// ConnectedComponents. conn itself is never modified: when count is 1 it
// is returned unchanged, otherwise a repaired copy is returned together
// with the number of edges added.
//
// Component pairs (a, b) are visited with a > b, a ascending then b
// ascending. Within a pair the closest samples are found by scanning the
// distance matrix (rows from a, columns from b) in row-major order and
// keeping the first minimum, so equidistant candidates resolve to the
// lowest row index and then the lowest column index.
//
// Distance matrices for different pairs are computed on up to workers
// goroutines; the result does not depend on workers.
func RepairConnectivity(features [][]float64, conn Connectivity, count int, labels []int, workers int) (Connectivity, int) {
	if count <= 1 {
		return conn, 0
	}
	members := componentMembers(labels, count)

	type pair struct{ a, b int }
	pairs := make([]pair, 0, count*(count-1)/2)
	for a := 0; a < count; a++ {
		for b := 0; b < a; b++ {
			pairs = append(pairs, pair{a, b})
		}
	}

	bridges := make([]bridge, len(pairs))
	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for p, pr := range pairs {
		p, pr := p, pr
		g.Go(func() error {
			bridges[p] = closestPair(features, members[pr.a], members[pr.b])
			return nil
		})
	}
	_ = g.Wait() // closestPair cannot fail

	repaired := copyAdjacency(conn)
	for _, br := range bridges {
		repaired.AddEdge(br.x, br.y)
	}
	return repaired, len(bridges)
}

// closestPair returns the first closest (x, y) with x from rows and y from
// cols, scanning the squared distance matrix in row-major order.
func closestPair(features [][]float64, rows, cols []int) bridge {
	d := PairwiseSqEuclidean(gatherRows(features, rows), gatherRows(features, cols))
	best := bridge{x: rows[0], y: cols[0]}
	bestDist := d.At(0, 0)
	for r := range rows {
		for c, v := range d.RawRowView(r) {
			if v < bestDist {
				bestDist = v
				best = bridge{x: rows[r], y: cols[c]}
			}
		}
	}
	return best
}
