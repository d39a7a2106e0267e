package ward

import "fmt"

// defaultLeafSize is the KD-tree leaf size used by KNeighborsGraph.
const defaultLeafSize = 40

// KNeighborsGraph returns the connectivity graph linking every sample to
// its k nearest other samples (squared Euclidean, ties by index). Edges
// are undirected, so a sample may end up with more than k neighbors.
func KNeighborsGraph(data [][]float64, k int) (*Adjacency, error) {
	if err := validateFeatures(data); err != nil {
		return nil, err
	}
	n := len(data)
	if k < 1 || k >= n {
		return nil, fmt.Errorf("ward: k must be in [1, %d), got %d", n, k)
	}
	dims := len(data[0])
	flat := make([]float64, n*dims)
	for i, row := range data {
		copy(flat[i*dims:], row)
	}

	tree := NewKDTree(flat, n, dims, defaultLeafSize)
	adj := NewAdjacency(n)
	for i, row := range data {
		for _, j := range tree.QueryKNN(row, k, i) {
			adj.AddEdge(i, j)
		}
	}
	return adj, nil
}

// GridToGraph returns the connectivity graph of an nx x ny x nz lattice of
// pixels or voxels, each linked to its face neighbors along every axis.
// Pass nz = 1 for a 2-D image. Voxel (x, y, z) has index (x*ny+y)*nz+z.
func GridToGraph(nx, ny, nz int) (*Adjacency, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, fmt.Errorf("%w: grid dimensions must be >= 1, got %dx%dx%d", ErrShape, nx, ny, nz)
	}
	index := func(x, y, z int) int { return (x*ny+y)*nz + z }
	adj := NewAdjacency(nx * ny * nz)
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				i := index(x, y, z)
				if x+1 < nx {
					adj.AddEdge(i, index(x+1, y, z))
				}
				if y+1 < ny {
					adj.AddEdge(i, index(x, y+1, z))
				}
				if z+1 < nz {
					adj.AddEdge(i, index(x, y, z+1))
				}
			}
		}
	}
	return adj, nil
}
