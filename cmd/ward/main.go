// Command ward clusters the rows of a CSV file with Ward's method.
//
// Usage:
//
//	ward cluster --input points.csv --clusters 3
//	ward cluster --input pixels.csv --grid 64,64 --clusters 10
//	ward cluster --input points.csv --knn 10 --cache-dir ~/.cache/ward
//	ward linkage --input points.csv --edges edges.csv
//	ward cluster --config ward.yaml
//
// Labels (one per input row) or linkage rows are written as CSV to stdout
// or --output. Diagnostics go to stderr.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/TrevorS/ward"
)

// Exit codes.
const (
	exitOK       = 0
	exitInput    = 1
	exitInternal = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitOK
	}
	fmt.Fprintf(stderr, "ward: %v\n", err)
	return exitCode(err)
}

// exitCode maps an error to an exit code: problems with the user's input
// exit 1, everything else exits 2.
func exitCode(err error) int {
	switch {
	case errors.Is(err, errInput),
		errors.Is(err, ward.ErrShape),
		errors.Is(err, ward.ErrEmptyInput),
		errors.Is(err, ward.ErrNonFinite),
		errors.Is(err, ward.ErrInvalidClusterCount),
		errors.Is(err, ward.ErrConnectivityType):
		return exitInput
	default:
		return exitInternal
	}
}

// options carries the flag values shared by all subcommands.
type options struct {
	configPath string
	file       FileConfig
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{file: defaultFileConfig()}
	root := &cobra.Command{
		Use:           "ward",
		Short:         "Ward hierarchical clustering of CSV data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "YAML config file")
	pf.StringVarP(&opts.file.Input, "input", "i", "", "CSV file of samples")
	pf.BoolVar(&opts.file.Header, "header", false, "first CSV row is a header")
	pf.StringVar(&opts.file.Connectivity.Edges, "edges", "", "CSV file of i,j sample index pairs")
	pf.IntVar(&opts.file.Connectivity.KNN, "knn", 0, "link each sample to its k nearest neighbors")
	pf.IntSliceVar(&opts.file.Connectivity.Grid, "grid", nil, "treat samples as an nx,ny[,nz] lattice")
	pf.IntVar(&opts.file.Connectivity.Components, "components", 0, "known number of connected components (0 computes it)")
	pf.IntVar(&opts.file.Workers, "workers", 0, "goroutines for parallel build stages (0 means all CPUs)")
	pf.StringVar(&opts.file.CacheDir, "cache-dir", "", "directory caching built trees between runs")
	pf.StringVarP(&opts.file.Output, "output", "o", "", "output file (default stdout)")
	pf.StringVar(&opts.file.Log.Level, "log-level", "info", "log level: debug, info, warn, error")
	pf.StringVar(&opts.file.Log.Format, "log-format", "text", "log format: text or json")

	root.AddCommand(newClusterCmd(opts, stderr), newLinkageCmd(opts, stderr))
	return root
}

// resolve loads the config file and overlays every flag set on the
// command line.
func (o *options) resolve(cmd *cobra.Command) (FileConfig, error) {
	cfg, err := loadFileConfig(o.configPath)
	if err != nil {
		return cfg, fmt.Errorf("%w: %v", errInput, err)
	}
	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("input", func() { cfg.Input = o.file.Input })
	set("header", func() { cfg.Header = o.file.Header })
	set("edges", func() { cfg.Connectivity.Edges = o.file.Connectivity.Edges })
	set("knn", func() { cfg.Connectivity.KNN = o.file.Connectivity.KNN })
	set("grid", func() { cfg.Connectivity.Grid = o.file.Connectivity.Grid })
	set("components", func() { cfg.Connectivity.Components = o.file.Connectivity.Components })
	set("workers", func() { cfg.Workers = o.file.Workers })
	set("cache-dir", func() { cfg.CacheDir = o.file.CacheDir })
	set("output", func() { cfg.Output = o.file.Output })
	set("log-level", func() { cfg.Log.Level = o.file.Log.Level })
	set("log-format", func() { cfg.Log.Format = o.file.Log.Format })
	set("clusters", func() { cfg.Clusters = o.file.Clusters })

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("%w: %v", errInput, err)
	}
	return cfg, nil
}

// newLogger builds the process logger and tags it with a fresh run id.
func newLogger(cfg LogConfig, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("%w: log level: %v", errInput, err)
	}
	hopts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.Format == "json" {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}
	return slog.New(h).With("run_id", uuid.NewString()), nil
}

// openOutput returns the output writer and a function closing it.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errInput, err)
	}
	return f, f.Close, nil
}
