package ward

import "container/heap"

// candidate is a possible merge of nodes row and col (row > col) with Ward
// cost dist. Candidates are never removed when one of their nodes is merged
// away; they are discarded when popped instead.
type candidate struct {
	dist     float64
	row, col int
}

// less orders candidates by cost, then row, then col, so that merge order
// is reproducible when costs tie.
func (c candidate) less(o candidate) bool {
	if c.dist != o.dist {
		return c.dist < o.dist
	}
	if c.row != o.row {
		return c.row < o.row
	}
	return c.col < o.col
}

// candidateHeap is a min-heap of candidates for container/heap.
type candidateHeap []candidate

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return h[i].less(h[j]) }
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)        { *h = append(*h, x.(candidate)) }
func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// compactFloor is the heap size below which compaction is never attempted.
const compactFloor = 1024

// candidateQueue wraps candidateHeap with lazy deletion against a liveness
// array and optional compaction of accumulated stale entries.
type candidateQueue struct {
	h       candidateHeap
	active  []bool
	compact bool
	// stale estimates the number of stale entries in h: a merge adds the
	// degrees of the two merged nodes and each stale pop removes one.
	stale int
	stats BuildStats
}

func newCandidateQueue(active []bool, compact bool) *candidateQueue {
	return &candidateQueue{active: active, compact: compact}
}

// seed replaces the queue contents with cs and heapifies in O(len(cs)).
func (q *candidateQueue) seed(cs []candidate) {
	q.h = candidateHeap(cs)
	heap.Init(&q.h)
	q.stats.Pushes += len(cs)
	q.observeLen()
}

func (q *candidateQueue) push(c candidate) {
	heap.Push(&q.h, c)
	q.stats.Pushes++
	q.observeLen()
}

// popLive pops candidates until one with both nodes active is found.
// It reports false when the queue is exhausted.
func (q *candidateQueue) popLive() (candidate, bool) {
	for q.h.Len() > 0 {
		c := heap.Pop(&q.h).(candidate)
		q.stats.Pops++
		if q.active[c.row] && q.active[c.col] {
			return c, true
		}
		q.stats.StalePops++
		if q.stale > 0 {
			q.stale--
		}
	}
	return candidate{}, false
}

// invalidate records that the candidates of a merged node have gone stale
// and compacts the heap when they dominate it.
func (q *candidateQueue) invalidate(n int) {
	q.stale += n
	if !q.compact || len(q.h) < compactFloor || 2*q.stale < len(q.h) {
		return
	}
	live := q.h[:0]
	for _, c := range q.h {
		if q.active[c.row] && q.active[c.col] {
			live = append(live, c)
		}
	}
	q.h = live
	heap.Init(&q.h)
	q.stale = 0
	q.stats.Compactions++
}

func (q *candidateQueue) observeLen() {
	if n := len(q.h); n > q.stats.PeakHeapLen {
		q.stats.PeakHeapLen = n
	}
}
