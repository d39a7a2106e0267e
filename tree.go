package ward

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"time"
)

// Tree is a complete Ward merge tree. Leaves are nodes 0..NLeaves-1; the
// node created by merge m has id NLeaves+m.
type Tree struct {
	// Children holds the two children of every internal node, in merge
	// order: Children[m] are the children of node NLeaves+m.
	Children [][2]int

	// Heights holds the Ward cost of every merge. Heights are not
	// guaranteed to be monotonic.
	Heights []float64

	// Counts holds the number of leaves under every node, leaves included.
	Counts []int

	// NLeaves is the number of samples.
	NLeaves int

	// NComponents is the number of connected components of the
	// connectivity graph the tree was built on: 1 after repair.
	NComponents int

	// Warnings lists non-fatal diagnostics, such as a disconnected
	// connectivity graph that had to be repaired.
	Warnings []Warning

	// Stats describes the work done by the build.
	Stats BuildStats
}

// NNodes returns the total number of nodes in the tree.
func (t *Tree) NNodes() int { return t.NLeaves + len(t.Children) }

// Root returns the id of the root node.
func (t *Tree) Root() int { return t.NNodes() - 1 }

// Descendants returns the leaves under node, in depth-first order with the
// first child visited first. It walks the tree with an explicit stack, so
// degenerate chain-shaped trees are fine.
func (t *Tree) Descendants(node int) []int {
	return descendants(t.Children, t.NLeaves, node, nil)
}

// descendants appends the leaves under node to dst.
func descendants(children [][2]int, nLeaves, node int, dst []int) []int {
	stack := []int{node}
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if x < nLeaves {
			dst = append(dst, x)
			continue
		}
		ch := children[x-nLeaves]
		stack = append(stack, ch[1], ch[0])
	}
	return dst
}

// Linkage returns the tree in scipy linkage format: one row per merge,
// [left, right, height, size], where size is the number of leaves under
// the new node.
func (t *Tree) Linkage() [][4]float64 {
	rows := make([][4]float64, len(t.Children))
	for m, ch := range t.Children {
		rows[m] = [4]float64{
			float64(ch[0]),
			float64(ch[1]),
			t.Heights[m],
			float64(t.Counts[t.NLeaves+m]),
		}
	}
	return rows
}

type buildOptions struct {
	components int
	workers    int
	compact    bool
	logger     *slog.Logger
	observer   Observer
}

// BuildOption configures BuildTree.
type BuildOption func(*buildOptions)

// WithComponents passes a known number of connected components of the
// connectivity graph. 0, the default, means it is computed.
func WithComponents(n int) BuildOption {
	return func(o *buildOptions) { o.components = n }
}

// WithWorkers sets the number of goroutines used for the parallel stages:
// initial pair seeding of unconstrained builds and connectivity repair.
// The merge loop is always sequential. Default: runtime.NumCPU().
func WithWorkers(n int) BuildOption {
	return func(o *buildOptions) { o.workers = n }
}

// WithHeapCompaction toggles sweeping stale candidates out of the heap
// once they make up most of it. It does not change the result. Default: on.
func WithHeapCompaction(on bool) BuildOption {
	return func(o *buildOptions) { o.compact = on }
}

// WithLogger sets the logger that receives diagnostics. Default:
// slog.Default().
func WithLogger(l *slog.Logger) BuildOption {
	return func(o *buildOptions) { o.logger = l }
}

// WithObserver sets an Observer notified of build and repair events.
func WithObserver(obs Observer) BuildOption {
	return func(o *buildOptions) { o.observer = obs }
}

// BuildTree builds the Ward merge tree of features.
//
// With a nil conn every pair of clusters may merge. Otherwise only clusters
// that contain a connected pair of samples may merge; conn must be
// len(features) x len(features), and if it has more than one connected
// component it is first repaired with RepairConnectivity and a
// WarnDisconnected warning is attached to the tree and logged.
//
// All validation happens before any work: ErrEmptyInput, ErrShape and
// ErrNonFinite are returned for bad features or connectivity.
func BuildTree(features [][]float64, conn Connectivity, opts ...BuildOption) (*Tree, error) {
	o := buildOptions{compact: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.NumCPU()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.observer == nil {
		o.observer = nopObserver{}
	}

	start := time.Now()
	if err := validateFeatures(features); err != nil {
		return nil, err
	}
	n := len(features)
	if conn != nil {
		if err := validateConnectivity(conn, n); err != nil {
			return nil, err
		}
	}

	tree := &Tree{NLeaves: n, NComponents: 1}
	var nbrs neighborhood
	nNodes := 2*n - 1

	if conn != nil {
		components := o.components
		var labels []int
		if components != 1 {
			components, labels = ConnectedComponents(conn, n)
		}
		if components > 1 {
			repaired, added := RepairConnectivity(features, conn, components, labels, o.workers)
			w := Warning{
				Kind:       WarnDisconnected,
				Components: components,
				EdgesAdded: added,
				Message: fmt.Sprintf("the number of connected components of the connectivity matrix is %d > 1; "+
					"completing it to avoid stopping the tree early", components),
			}
			tree.Warnings = append(tree.Warnings, w)
			tree.Stats.EdgesAdded = added
			o.logger.Warn("ward: "+w.Message, "components", components, "edges_added", added)
			o.observer.ObserveRepair(components, added)
			conn = repaired
		}
		nbrs = newGraphNeighborhood(conn, n, nNodes)
	} else {
		nbrs = newCompleteNeighborhood(n, nNodes)
	}

	b := newTreeBuilder(features, nNodes, nbrs, o.compact)
	if conn == nil {
		b.queue.seed(seedComplete(b.mom, n, o.workers))
	} else {
		b.seedGraph()
	}
	if err := b.run(); err != nil {
		return nil, err
	}

	tree.Children = b.children
	tree.Heights = b.heights
	tree.Counts = make([]int, nNodes)
	for i, c := range b.mom.count {
		tree.Counts[i] = int(c)
	}
	stats := b.queue.stats
	stats.EdgesAdded = tree.Stats.EdgesAdded
	stats.Elapsed = time.Since(start)
	tree.Stats = stats

	o.observer.ObserveBuild(n, conn != nil, stats)
	o.logger.Debug("ward: tree built",
		"leaves", n,
		"structured", conn != nil,
		"pushes", stats.Pushes,
		"stale_pops", stats.StalePops,
		"peak_heap", stats.PeakHeapLen,
		"elapsed", stats.Elapsed,
	)
	return tree, nil
}

// validateFeatures checks that features is a non-empty, rectangular,
// finite matrix with at least one column.
func validateFeatures(features [][]float64) error {
	if len(features) == 0 {
		return fmt.Errorf("%w: no samples", ErrEmptyInput)
	}
	dims := len(features[0])
	if dims == 0 {
		return fmt.Errorf("%w: samples have no features", ErrEmptyInput)
	}
	for i, row := range features {
		if len(row) != dims {
			return fmt.Errorf("%w: sample %d has %d features, want %d", ErrShape, i, len(row), dims)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: sample %d feature %d is %v", ErrNonFinite, i, j, v)
			}
		}
	}
	return nil
}

// validateConnectivity checks that conn is n x n and only references
// samples in [0, n).
func validateConnectivity(conn Connectivity, n int) error {
	r, c := conn.Dims()
	if r != n || c != n {
		return fmt.Errorf("%w: connectivity is %dx%d, want %dx%d", ErrShape, r, c, n, n)
	}
	for i := 0; i < n; i++ {
		for _, j := range conn.Neighbors(i) {
			if j < 0 || j >= n {
				return fmt.Errorf("%w: connectivity row %d references sample %d outside [0, %d)", ErrShape, i, j, n)
			}
		}
	}
	return nil
}

// treeBuilder owns the mutable state of one build. It is created per call
// and discarded afterwards.
type treeBuilder struct {
	nLeaves, nNodes int
	mom             *moments
	active          []bool
	nbrs            neighborhood
	queue           *candidateQueue
	children        [][2]int
	heights         []float64
}

func newTreeBuilder(features [][]float64, nNodes int, nbrs neighborhood, compact bool) *treeBuilder {
	n := len(features)
	active := make([]bool, nNodes)
	for i := 0; i < n; i++ {
		active[i] = true
	}
	return &treeBuilder{
		nLeaves:  n,
		nNodes:   nNodes,
		mom:      newMoments(features, nNodes),
		active:   active,
		nbrs:     nbrs,
		queue:    newCandidateQueue(active, compact),
		children: make([][2]int, 0, nNodes-n),
		heights:  make([]float64, 0, nNodes-n),
	}
}

// seedGraph seeds the heap with every connected leaf pair.
func (b *treeBuilder) seedGraph() {
	var cs []candidate
	for i := 0; i < b.nLeaves; i++ {
		for _, j := range b.nbrs.initial(i) {
			cs = append(cs, candidate{dist: b.mom.wardDistance(i, j), row: i, col: j})
		}
	}
	b.queue.seed(cs)
}

// run performs the merges. Each iteration pops the cheapest live
// candidate, merges its two nodes into a new node k and pushes a candidate
// for k and each of its neighbors.
func (b *treeBuilder) run() error {
	for k := b.nLeaves; k < b.nNodes; k++ {
		c, ok := b.queue.popLive()
		if !ok {
			return fmt.Errorf("%w: no candidates left after %d of %d merges",
				ErrDisconnected, k-b.nLeaves, b.nNodes-b.nLeaves)
		}
		i, j := c.row, c.col
		stale := b.nbrs.degree(i) + b.nbrs.degree(j)

		b.active[i], b.active[j] = false, false
		b.active[k] = true
		b.children = append(b.children, [2]int{i, j})
		b.heights = append(b.heights, c.dist)
		b.mom.merge(i, j, k)

		for _, l := range b.nbrs.merge(i, j, k) {
			b.queue.push(candidate{dist: b.mom.wardDistance(k, l), row: k, col: l})
		}
		b.queue.invalidate(stale)
	}
	return nil
}
