package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/TrevorS/ward"
	"github.com/TrevorS/ward/cache"
)

// job is everything a subcommand needs to build a tree.
type job struct {
	file    FileConfig
	logger  *slog.Logger
	samples [][]float64
	cfg     ward.Config
}

// prepare resolves configuration, reads the input and assembles the
// ward.Config shared by all subcommands.
func prepare(cmd *cobra.Command, opts *options, stderr io.Writer) (*job, error) {
	file, err := opts.resolve(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(file.Log, stderr)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(file.Input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInput, err)
	}
	defer f.Close()
	samples, err := readSamples(f, file.Header)
	if err != nil {
		return nil, err
	}
	conn, err := loadConnectivity(file.Connectivity, samples)
	if err != nil {
		return nil, err
	}

	cfg := ward.DefaultConfig()
	cfg.NClusters = file.Clusters
	cfg.NComponents = file.Connectivity.Components
	cfg.Workers = file.Workers
	cfg.Logger = logger
	if conn != nil {
		cfg.Connectivity = conn
	}
	if file.CacheDir != "" {
		dc, err := cache.NewDisk(file.CacheDir)
		if err != nil {
			return nil, err
		}
		cfg.Cache = dc
	}

	logger.Info("input loaded",
		"input", file.Input,
		"samples", len(samples),
		"structured", conn != nil,
	)
	return &job{file: file, logger: logger, samples: samples, cfg: cfg}, nil
}

func newClusterCmd(opts *options, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Cut the Ward tree into clusters and print one label per sample",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			j, err := prepare(cmd, opts, stderr)
			if err != nil {
				return err
			}
			res, err := ward.Cluster(j.samples, j.cfg)
			if err != nil {
				return err
			}
			j.logger.Info("clustered",
				"clusters", j.cfg.NClusters,
				"warnings", len(res.Warnings),
				"cached", res.Cached,
				"elapsed", res.Tree.Stats.Elapsed,
			)

			w, closeOut, err := openOutput(j.file.Output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := writeLabels(w, res.Labels); err != nil {
				closeOut()
				return fmt.Errorf("write labels: %w", err)
			}
			return closeOut()
		},
	}
	cmd.Flags().IntVarP(&opts.file.Clusters, "clusters", "k", 2, "number of clusters")
	return cmd
}

func newLinkageCmd(opts *options, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "linkage",
		Short: "Print the full Ward tree as left,right,height,size rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			j, err := prepare(cmd, opts, stderr)
			if err != nil {
				return err
			}
			// The tree does not depend on the cluster count; cut at 1.
			j.cfg.NClusters = 1
			res, err := ward.Cluster(j.samples, j.cfg)
			if err != nil {
				return err
			}

			w, closeOut, err := openOutput(j.file.Output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := writeLinkage(w, res.Tree.Linkage()); err != nil {
				closeOut()
				return fmt.Errorf("write linkage: %w", err)
			}
			return closeOut()
		},
	}
}
