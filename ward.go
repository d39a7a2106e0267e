package ward

import (
	"fmt"
	"log/slog"
	"runtime"
)

// Config controls Ward clustering.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// NClusters is the number of clusters to extract from the tree.
	// Must be >= 1 and at most the number of samples. Default: 2.
	NClusters int

	// Connectivity restricts merges to neighboring samples. nil means
	// unstructured clustering, where any two clusters may merge. Any value
	// accepted by AsConnectivity may be used; it must be n x n.
	Connectivity any

	// NComponents is the number of connected components of Connectivity,
	// if known. 0 means it is computed. Ignored without Connectivity.
	NComponents int

	// Workers bounds the goroutines used by the parallel stages of the
	// build. 0 means runtime.NumCPU().
	Workers int

	// DisableHeapCompaction turns off sweeping stale candidates out of the
	// merge heap. The result is the same either way; compaction only
	// bounds memory.
	DisableHeapCompaction bool

	// Logger receives the disconnected-graph warning and debug build
	// summaries. nil means slog.Default().
	Logger *slog.Logger

	// Cache, if set, stores built trees keyed by TreeKey. A later Cluster
	// call on the same data and connectivity reuses the stored tree and
	// only cuts it.
	Cache TreeCache

	// Observer, if set, is notified of builds and repairs.
	Observer Observer
}

// Result contains the output of Ward clustering.
type Result struct {
	// Labels assigns each sample a cluster in [0, NClusters).
	Labels []int

	// Tree is the full merge tree the labels were cut from.
	Tree *Tree

	// Warnings lists non-fatal diagnostics raised while building the tree.
	Warnings []Warning

	// Cached reports whether Tree came from Config.Cache.
	Cached bool
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{NClusters: 2}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if cfg.NClusters < 1 {
		return fmt.Errorf("%w: NClusters must be >= 1, got %d", ErrInvalidClusterCount, cfg.NClusters)
	}
	if cfg.NComponents < 0 {
		return fmt.Errorf("ward: NComponents must be >= 0 (0 means computed), got %d", cfg.NComponents)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("ward: Workers must be >= 0 (0 means NumCPU), got %d", cfg.Workers)
	}
	return nil
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
}

// Cluster builds the Ward tree of data, or fetches it from cfg.Cache, and
// cuts it into cfg.NClusters clusters. Each element of data is a sample;
// all samples must have the same number of features.
//
// Every argument is validated before the build starts: an unsupported
// Connectivity type yields ErrConnectivityType, a connectivity that is not
// n x n yields ErrShape, and NClusters above the number of samples yields
// ErrInvalidClusterCount.
func Cluster(data [][]float64, cfg Config) (*Result, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	conn, err := AsConnectivity(cfg.Connectivity)
	if err != nil {
		return nil, err
	}
	if err := validateFeatures(data); err != nil {
		return nil, err
	}
	n := len(data)
	if conn != nil {
		if err := validateConnectivity(conn, n); err != nil {
			return nil, err
		}
	}
	if cfg.NClusters > n {
		return nil, fmt.Errorf("%w: cannot extract %d clusters from %d samples",
			ErrInvalidClusterCount, cfg.NClusters, n)
	}

	tree, cached, err := buildOrLoad(data, conn, &cfg)
	if err != nil {
		return nil, err
	}

	labels, err := CutTree(tree.Children, tree.NLeaves, cfg.NClusters)
	if err != nil {
		return nil, err
	}
	return &Result{
		Labels:   labels,
		Tree:     tree,
		Warnings: tree.Warnings,
		Cached:   cached,
	}, nil
}

// buildOrLoad returns the tree for data and conn, consulting cfg.Cache
// first when one is configured.
func buildOrLoad(data [][]float64, conn Connectivity, cfg *Config) (*Tree, bool, error) {
	var key uint64
	if cfg.Cache != nil {
		key = TreeKey(data, conn, cfg.NComponents)
		tree, ok, err := cfg.Cache.Get(key)
		if err != nil {
			return nil, false, fmt.Errorf("ward: read tree cache: %w", err)
		}
		if ok {
			for _, w := range tree.Warnings {
				cfg.Logger.Warn("ward: "+w.Message, "components", w.Components, "edges_added", w.EdgesAdded, "cached", true)
			}
			return tree, true, nil
		}
	}

	opts := []BuildOption{
		WithComponents(cfg.NComponents),
		WithWorkers(cfg.Workers),
		WithHeapCompaction(!cfg.DisableHeapCompaction),
		WithLogger(cfg.Logger),
	}
	if cfg.Observer != nil {
		opts = append(opts, WithObserver(cfg.Observer))
	}
	tree, err := BuildTree(data, conn, opts...)
	if err != nil {
		return nil, false, err
	}

	if cfg.Cache != nil {
		if err := cfg.Cache.Put(key, tree); err != nil {
			return nil, false, fmt.Errorf("ward: write tree cache: %w", err)
		}
	}
	return tree, false, nil
}
