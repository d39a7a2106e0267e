package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fourPoints = "0,0\n0,1\n5,5\n5,6\n"

func TestRun_Cluster(t *testing.T) {
	in := writeFile(t, t.TempDir(), "points.csv", fourPoints)
	var stdout, stderr bytes.Buffer
	code := run([]string{"cluster", "-i", in, "-k", "2"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Equal(t, "1\n1\n0\n0\n", stdout.String())
	assert.Contains(t, stderr.String(), "run_id=")
}

func TestRun_Linkage(t *testing.T) {
	in := writeFile(t, t.TempDir(), "points.csv", fourPoints)
	var stdout, stderr bytes.Buffer
	code := run([]string{"linkage", "--input", in}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Equal(t, "left,right,height,size\n1,0,0.5,2\n3,2,0.5,2\n5,4,50,4\n", stdout.String())
}

func TestRun_ConfigFileAndFlagOverride(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "points.csv", fourPoints)
	out := filepath.Join(dir, "labels.csv")
	cfgPath := writeFile(t, dir, "ward.yaml", "input: "+in+"\nclusters: 4\noutput: "+out+"\nlog:\n  format: json\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"cluster", "--config", cfgPath, "-k", "1"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), `"run_id"`)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "0\n0\n0\n0\n", string(got))
}

func TestRun_EdgesWithRepairWarning(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "points.csv", "0,0\n0,1\n10,0\n10,1\n")
	edges := writeFile(t, dir, "edges.csv", "0,1\n2,3\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"cluster", "-i", in, "--edges", edges}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Equal(t, "1\n1\n0\n0\n", stdout.String())
	assert.Contains(t, stderr.String(), "level=WARN")
}

func TestRun_CacheDir(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "points.csv", fourPoints)
	cacheDir := filepath.Join(dir, "cache")

	for i, wantCached := range []string{"cached=false", "cached=true"} {
		var stdout, stderr bytes.Buffer
		code := run([]string{"cluster", "-i", in, "--cache-dir", cacheDir}, &stdout, &stderr)
		require.Equal(t, exitOK, code, "run %d: %s", i, stderr.String())
		assert.Contains(t, stderr.String(), wantCached, "run %d", i)
	}
}

func TestRun_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "points.csv", fourPoints)
	bad := writeFile(t, dir, "bad.csv", "1,2\nx,y\n")

	tests := []struct {
		name string
		args []string
		want int
		msg  string
	}{
		{"no input", []string{"cluster"}, exitInput, "no input"},
		{"missing file", []string{"cluster", "-i", filepath.Join(dir, "nope.csv")}, exitInput, "nope.csv"},
		{"bad csv", []string{"cluster", "-i", bad}, exitInput, "row 2"},
		{"too many clusters", []string{"cluster", "-i", in, "-k", "9"}, exitInput, "invalid number of clusters"},
		{"grid mismatch", []string{"cluster", "-i", in, "--grid", "3,3"}, exitInput, "shape"},
		{"bad log level", []string{"cluster", "-i", in, "--log-level", "loud"}, exitInput, "log level"},
		{"unknown command", []string{"frobnicate"}, exitInternal, "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)
			assert.Equal(t, tt.want, code, stderr.String())
			assert.True(t, strings.Contains(stderr.String(), tt.msg), "stderr %q lacks %q", stderr.String(), tt.msg)
		})
	}
}
