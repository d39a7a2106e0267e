package ward

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Connectivity is a boolean relation over samples restricting which pairs
// may be merged directly. It is treated as undirected: an entry (i, j)
// allows merging i and j regardless of whether (j, i) is also stored, so
// callers may populate a single triangle. Diagonal entries are ignored.
type Connectivity interface {
	// Dims returns the number of rows and columns of the relation.
	Dims() (r, c int)

	// Neighbors returns the column indices stored for row i. The result
	// may contain duplicates and i itself; it must not be modified.
	Neighbors(i int) []int
}

// Adjacency is a list-of-lists connectivity structure. It is the native
// representation used by the package; other representations are converted
// to it by AsConnectivity.
type Adjacency struct {
	rows, cols int
	lists      [][]int
}

// NewAdjacency returns an empty n x n adjacency structure.
func NewAdjacency(n int) *Adjacency {
	return newAdjacencyShape(n, n)
}

func newAdjacencyShape(rows, cols int) *Adjacency {
	return &Adjacency{rows: rows, cols: cols, lists: make([][]int, rows)}
}

// Dims implements Connectivity.
func (a *Adjacency) Dims() (int, int) { return a.rows, a.cols }

// Neighbors implements Connectivity.
func (a *Adjacency) Neighbors(i int) []int { return a.lists[i] }

// AddEdge stores the undirected edge (i, j) in both rows. Self-loops and
// duplicate edges are ignored. AddEdge panics if i or j is out of range.
func (a *Adjacency) AddEdge(i, j int) {
	if a.rows != a.cols || i < 0 || j < 0 || i >= a.rows || j >= a.rows {
		panic(fmt.Sprintf("ward: edge (%d, %d) out of range for %dx%d adjacency", i, j, a.rows, a.cols))
	}
	if i == j {
		return
	}
	a.set(i, j)
	a.set(j, i)
}

// set stores the directed entry (i, j) unless it is already present.
func (a *Adjacency) set(i, j int) {
	if !slices.Contains(a.lists[i], j) {
		a.lists[i] = append(a.lists[i], j)
	}
}

// HasEdge reports whether (i, j) or (j, i) is stored.
func (a *Adjacency) HasEdge(i, j int) bool {
	if i < a.rows && slices.Contains(a.lists[i], j) {
		return true
	}
	return j < a.rows && slices.Contains(a.lists[j], i)
}

// NumEdges returns the number of distinct undirected edges, excluding
// self-loops.
func (a *Adjacency) NumEdges() int {
	seen := make(map[[2]int]struct{})
	for i, row := range a.lists {
		for _, j := range row {
			if i == j {
				continue
			}
			seen[[2]int{min(i, j), max(i, j)}] = struct{}{}
		}
	}
	return len(seen)
}

// Clone returns a deep copy of a.
func (a *Adjacency) Clone() *Adjacency {
	c := newAdjacencyShape(a.rows, a.cols)
	for i, row := range a.lists {
		c.lists[i] = slices.Clone(row)
	}
	return c
}

// copyAdjacency converts any Connectivity into a fresh *Adjacency with the
// same stored entries.
func copyAdjacency(conn Connectivity) *Adjacency {
	if a, ok := conn.(*Adjacency); ok {
		return a.Clone()
	}
	r, c := conn.Dims()
	out := newAdjacencyShape(r, c)
	for i := 0; i < r; i++ {
		out.lists[i] = slices.Clone(conn.Neighbors(i))
	}
	return out
}

// AsConnectivity converts v into a Connectivity. Recognized values:
//
//   - nil, which yields a nil Connectivity (unstructured clustering)
//   - any Connectivity implementation, including *Adjacency
//   - [][]int, one neighbor list per sample
//   - [][]bool, a dense boolean matrix
//   - mat.Matrix, where every non-zero entry is an edge
//
// Anything else yields ErrConnectivityType. Indices outside the implied
// shape yield ErrShape.
func AsConnectivity(v any) (Connectivity, error) {
	switch c := v.(type) {
	case nil:
		return nil, nil
	case Connectivity:
		return c, nil
	case [][]int:
		n := len(c)
		a := NewAdjacency(n)
		for i, row := range c {
			for _, j := range row {
				if j < 0 || j >= n {
					return nil, fmt.Errorf("%w: neighbor %d of row %d outside [0, %d)", ErrShape, j, i, n)
				}
				a.set(i, j)
			}
		}
		return a, nil
	case [][]bool:
		n := len(c)
		a := NewAdjacency(n)
		for i, row := range c {
			if len(row) != n {
				return nil, fmt.Errorf("%w: dense connectivity row %d has %d columns, want %d", ErrShape, i, len(row), n)
			}
			for j, ok := range row {
				if ok {
					a.set(i, j)
				}
			}
		}
		return a, nil
	case mat.Matrix:
		r, cols := c.Dims()
		a := newAdjacencyShape(r, cols)
		for i := 0; i < r; i++ {
			for j := 0; j < cols; j++ {
				if c.At(i, j) != 0 {
					a.set(i, j)
				}
			}
		}
		return a, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrConnectivityType, v)
	}
}
