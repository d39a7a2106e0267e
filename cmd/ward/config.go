package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML configuration accepted by --config. Every field
// can be overridden by the matching flag.
type FileConfig struct {
	// Input is the CSV file of samples, one row per sample.
	Input string `yaml:"input"`

	// Header reports whether the first CSV row holds column names.
	Header bool `yaml:"header"`

	// Clusters is the number of clusters to extract.
	Clusters int `yaml:"clusters"`

	// Workers bounds the goroutines used by the parallel build stages.
	Workers int `yaml:"workers"`

	// CacheDir, if set, stores built trees between runs.
	CacheDir string `yaml:"cache_dir"`

	// Output is where labels or linkage rows are written. Empty means stdout.
	Output string `yaml:"output"`

	Connectivity ConnectivityConfig `yaml:"connectivity"`
	Log          LogConfig          `yaml:"log"`
}

// ConnectivityConfig selects at most one connectivity source.
type ConnectivityConfig struct {
	// Edges is a CSV file of "i,j" sample index pairs.
	Edges string `yaml:"edges"`

	// KNN links every sample to its KNN nearest neighbors when > 0.
	KNN int `yaml:"knn"`

	// Grid treats samples as an nx x ny x nz lattice.
	Grid []int `yaml:"grid"`

	// Components is the known number of connected components; 0 computes it.
	Components int `yaml:"components"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

func defaultFileConfig() FileConfig {
	return FileConfig{
		Clusters: 2,
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// loadFileConfig reads path over the defaults. An empty path returns the
// defaults unchanged.
func loadFileConfig(path string) (FileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// validate checks cross-field constraints.
func (c *FileConfig) validate() error {
	if c.Input == "" {
		return fmt.Errorf("no input file given (--input or input:)")
	}
	sources := 0
	if c.Connectivity.Edges != "" {
		sources++
	}
	if c.Connectivity.KNN > 0 {
		sources++
	}
	if len(c.Connectivity.Grid) > 0 {
		sources++
		if len(c.Connectivity.Grid) < 2 || len(c.Connectivity.Grid) > 3 {
			return fmt.Errorf("grid must have 2 or 3 dimensions, got %v", c.Connectivity.Grid)
		}
	}
	if sources > 1 {
		return fmt.Errorf("at most one of edges, knn and grid may be set")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be \"text\" or \"json\", got %q", c.Log.Format)
	}
	return nil
}
