package ward

import "gonum.org/v1/gonum/floats"

// moments holds the zeroth and first moments of every node in the tree:
// the number of leaves under it and the elementwise sum of their feature
// vectors. Sums are stored flat row-major, one row of dims values per node.
// All storage is allocated once for nNodes.
type moments struct {
	count []float64
	sum   []float64
	dims  int
}

// newMoments allocates moments for nNodes nodes and seeds the first
// len(features) rows from the leaf feature vectors.
func newMoments(features [][]float64, nNodes int) *moments {
	dims := 0
	if len(features) > 0 {
		dims = len(features[0])
	}
	m := &moments{
		count: make([]float64, nNodes),
		sum:   make([]float64, nNodes*dims),
		dims:  dims,
	}
	for i, row := range features {
		m.count[i] = 1
		copy(m.sum[i*dims:(i+1)*dims], row)
	}
	return m
}

// row returns the feature-sum vector of node i. The slice aliases internal
// storage.
func (m *moments) row(i int) []float64 {
	return m.sum[i*m.dims : (i+1)*m.dims]
}

// merge sets node k's moments to the sum of nodes i and j.
func (m *moments) merge(i, j, k int) {
	m.count[k] = m.count[i] + m.count[j]
	floats.AddTo(m.row(k), m.row(i), m.row(j))
}

// wardDistance returns the Ward merge cost of nodes a and b:
//
//	(n_a*n_b / (n_a+n_b)) * ||s_a/n_a - s_b/n_b||^2
//
// computed directly from the moments without materializing centroids.
func (m *moments) wardDistance(a, b int) float64 {
	ca, cb := m.count[a], m.count[b]
	sa, sb := m.row(a), m.row(b)
	var pa float64
	for j := range sa {
		d := sa[j]/ca - sb[j]/cb
		pa += d * d
	}
	return pa * (ca * cb / (ca + cb))
}
