package ward

import (
	"math/rand"
	"testing"
)

func generateBenchData(n, dims int) [][]float64 {
	rng := rand.New(rand.NewSource(42))
	data := make([][]float64, n)
	for i := range data {
		data[i] = make([]float64, dims)
		for j := range data[i] {
			data[i][j] = rng.Float64() * 100
		}
	}
	return data
}

// --- Unstructured builds ---

func benchBuildTree(b *testing.B, n int) {
	b.Helper()
	data := generateBenchData(n, 2)
	logger := quietLogger()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BuildTree(data, nil, WithLogger(logger)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildTree_100(b *testing.B)  { benchBuildTree(b, 100) }
func BenchmarkBuildTree_500(b *testing.B)  { benchBuildTree(b, 500) }
func BenchmarkBuildTree_1000(b *testing.B) { benchBuildTree(b, 1000) }

// --- Structured builds ---

func benchBuildTreeGrid(b *testing.B, side int) {
	b.Helper()
	data := generateBenchData(side*side, 1)
	conn, err := GridToGraph(side, side, 1)
	if err != nil {
		b.Fatal(err)
	}
	logger := quietLogger()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BuildTree(data, conn, WithLogger(logger)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildTreeGrid_32(b *testing.B)  { benchBuildTreeGrid(b, 32) }
func BenchmarkBuildTreeGrid_128(b *testing.B) { benchBuildTreeGrid(b, 128) }

func BenchmarkKNeighborsGraph_5000(b *testing.B) {
	data := generateBenchData(5000, 3)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := KNeighborsGraph(data, 10); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Cutting ---

func BenchmarkCutTree_10000(b *testing.B) {
	data := generateBenchData(128*128, 1)
	conn, _ := GridToGraph(128, 128, 1)
	tree, err := BuildTree(data, conn, WithLogger(quietLogger()))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := CutTree(tree.Children, tree.NLeaves, 10000); err != nil {
			b.Fatal(err)
		}
	}
}
