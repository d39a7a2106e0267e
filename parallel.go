package ward

import "sync"

// seedComplete returns a candidate for every leaf pair (row > col) of an
// unconstrained build. Row i's candidates occupy the flat range starting at
// i*(i-1)/2, so workers filling disjoint row ranges never write the same
// element and the result is identical for any numWorkers.
func seedComplete(m *moments, n, numWorkers int) []candidate {
	out := make([]candidate, n*(n-1)/2)
	fill := func(start, end int) {
		for i := start; i < end; i++ {
			base := i * (i - 1) / 2
			for j := 0; j < i; j++ {
				out[base+j] = candidate{dist: m.wardDistance(i, j), row: i, col: j}
			}
		}
	}

	if numWorkers <= 1 || n <= 1 {
		fill(0, n)
		return out
	}

	// Row i costs O(i), so split rows by cumulative pair count rather than
	// row count to keep workers evenly loaded.
	var wg sync.WaitGroup
	total := len(out)
	perWorker := (total + numWorkers - 1) / numWorkers
	start := 0
	for w := 0; w < numWorkers && start < n; w++ {
		end := start
		for end < n && (end*(end-1)/2)-(start*(start-1)/2) < perWorker {
			end++
		}
		if w == numWorkers-1 {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fill(start, end)
		}(start, end)
		start = end
	}
	wg.Wait()
	return out
}
