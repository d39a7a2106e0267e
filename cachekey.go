package ward

import (
	"encoding/binary"
	"math"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// TreeCache stores previously built trees so that refitting with the same
// input skips the build. See the cache package for implementations.
type TreeCache interface {
	// Get returns the tree stored under key, if any.
	Get(key uint64) (*Tree, bool, error)

	// Put stores t under key.
	Put(key uint64, t *Tree) error
}

// TreeKey returns a digest of everything BuildTree's output depends on:
// the features, the connectivity relation and the component hint. The
// connectivity is hashed as a symmetrized, sorted edge set, so the same
// graph stored in a different layout hashes the same.
func TreeKey(features [][]float64, conn Connectivity, nComponents int) uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 64)

	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(features)))
	if len(features) > 0 {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(features[0])))
	}
	_, _ = d.Write(buf)
	for _, row := range features {
		buf = buf[:0]
		for _, v := range row {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		}
		_, _ = d.Write(buf)
	}

	buf = buf[:0]
	if conn == nil {
		buf = append(buf, 0)
	} else {
		buf = append(buf, 1)
		r, c := conn.Dims()
		buf = binary.LittleEndian.AppendUint64(buf, uint64(r))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(c))
		for _, e := range edgeSet(conn) {
			buf = binary.LittleEndian.AppendUint64(buf, uint64(e[0]))
			buf = binary.LittleEndian.AppendUint64(buf, uint64(e[1]))
		}
	}
	buf = binary.LittleEndian.AppendUint64(buf, uint64(nComponents))
	_, _ = d.Write(buf)
	return d.Sum64()
}

// edgeSet returns conn's undirected edges as sorted (low, high) pairs
// without self-loops or duplicates.
func edgeSet(conn Connectivity) [][2]int {
	r, _ := conn.Dims()
	var edges [][2]int
	for i := 0; i < r; i++ {
		for _, j := range conn.Neighbors(i) {
			if i != j {
				edges = append(edges, [2]int{min(i, j), max(i, j)})
			}
		}
	}
	slices.SortFunc(edges, func(a, b [2]int) int {
		if a[0] != b[0] {
			return a[0] - b[0]
		}
		return a[1] - b[1]
	})
	return slices.Compact(edges)
}
