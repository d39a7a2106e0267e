package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/TrevorS/ward"
)

// errInput marks failures caused by the user's files or flags.
var errInput = errors.New("invalid input")

// readSamples parses a CSV of numeric rows.
func readSamples(r io.Reader, header bool) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInput, err)
	}
	if header && len(records) > 0 {
		records = records[1:]
	}
	samples := make([][]float64, len(records))
	for i, rec := range records {
		row := make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %d: %v", errInput, i+1, j+1, err)
			}
			row[j] = v
		}
		samples[i] = row
	}
	return samples, nil
}

// readEdges parses a CSV of "i,j" index pairs into an n x n adjacency.
func readEdges(r io.Reader, n int) (*ward.Adjacency, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	cr.FieldsPerRecord = 2
	adj := ward.NewAdjacency(n)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return adj, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: edges: %v", errInput, err)
		}
		var ends [2]int
		for k, field := range rec {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil || v < 0 || v >= n {
				return nil, fmt.Errorf("%w: edges line %d: %q is not a sample index in [0, %d)", errInput, line, field, n)
			}
			ends[k] = v
		}
		adj.AddEdge(ends[0], ends[1])
	}
}

// loadConnectivity builds the connectivity selected by cfg, or nil.
func loadConnectivity(cfg ConnectivityConfig, samples [][]float64) (ward.Connectivity, error) {
	switch {
	case cfg.Edges != "":
		f, err := os.Open(cfg.Edges)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInput, err)
		}
		defer f.Close()
		adj, err := readEdges(f, len(samples))
		if err != nil {
			return nil, err
		}
		return adj, nil
	case cfg.KNN > 0:
		adj, err := ward.KNeighborsGraph(samples, cfg.KNN)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInput, err)
		}
		return adj, nil
	case len(cfg.Grid) > 0:
		dims := [3]int{1, 1, 1}
		copy(dims[:], cfg.Grid)
		adj, err := ward.GridToGraph(dims[0], dims[1], dims[2])
		if err != nil {
			return nil, err
		}
		return adj, nil
	default:
		return nil, nil
	}
}

func writeLabels(w io.Writer, labels []int) error {
	cw := csv.NewWriter(w)
	for _, l := range labels {
		if err := cw.Write([]string{strconv.Itoa(l)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeLinkage(w io.Writer, rows [][4]float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"left", "right", "height", "size"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(int(r[0])),
			strconv.Itoa(int(r[1])),
			strconv.FormatFloat(r[2], 'g', -1, 64),
			strconv.Itoa(int(r[3])),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
