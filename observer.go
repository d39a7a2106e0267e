package ward

import "time"

// BuildStats describes the work done by one tree build.
type BuildStats struct {
	// Pushes is the number of candidates pushed onto the heap, including
	// the initial seed.
	Pushes int
	// Pops is the number of candidates popped, live or stale.
	Pops int
	// StalePops is the number of popped candidates discarded because one
	// of their nodes had already been merged.
	StalePops int
	// Compactions is the number of times stale candidates were swept out
	// of the heap.
	Compactions int
	// PeakHeapLen is the largest heap length reached.
	PeakHeapLen int
	// EdgesAdded is the number of bridging edges added by connectivity
	// repair.
	EdgesAdded int
	// Elapsed is the wall time of the build.
	Elapsed time.Duration
}

// Observer receives build events. Implementations must be safe for
// concurrent use when builds run concurrently. See the metrics package for
// a Prometheus implementation.
type Observer interface {
	// ObserveBuild is called once per completed tree build.
	ObserveBuild(nLeaves int, structured bool, stats BuildStats)

	// ObserveRepair is called when a disconnected connectivity graph was
	// repaired.
	ObserveRepair(components, edgesAdded int)
}

type nopObserver struct{}

func (nopObserver) ObserveBuild(int, bool, BuildStats) {}
func (nopObserver) ObserveRepair(int, int)             {}
