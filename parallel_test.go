package ward

import (
	"math/rand"
	"testing"
)

func TestSeedComplete_IdenticalForAnyWorkerCount(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	features := make([][]float64, 37)
	for i := range features {
		features[i] = []float64{rng.NormFloat64(), rng.NormFloat64()}
	}
	n := len(features)
	m := newMoments(features, 2*n-1)

	sequential := seedComplete(m, n, 1)
	if len(sequential) != n*(n-1)/2 {
		t.Fatalf("len = %d, want %d", len(sequential), n*(n-1)/2)
	}

	for _, workers := range []int{2, 3, 4, 16, 100} {
		parallel := seedComplete(m, n, workers)
		if len(parallel) != len(sequential) {
			t.Fatalf("workers=%d: length mismatch %d != %d", workers, len(parallel), len(sequential))
		}
		for i := range sequential {
			if parallel[i] != sequential[i] {
				t.Errorf("workers=%d: result[%d] = %+v, expected %+v", workers, i, parallel[i], sequential[i])
			}
		}
	}
}

func TestSeedComplete_Layout(t *testing.T) {
	features := [][]float64{{0}, {1}, {3}, {6}}
	m := newMoments(features, 7)
	got := seedComplete(m, 4, 2)

	k := 0
	for i := 1; i < 4; i++ {
		for j := 0; j < i; j++ {
			c := got[k]
			if c.row != i || c.col != j {
				t.Errorf("result[%d] = (%d, %d), want (%d, %d)", k, c.row, c.col, i, j)
			}
			d := features[i][0] - features[j][0]
			if want := d * d / 2; c.dist != want {
				t.Errorf("result[%d].dist = %v, want %v", k, c.dist, want)
			}
			k++
		}
	}
}

func TestSeedComplete_Tiny(t *testing.T) {
	m := newMoments([][]float64{{1, 2}}, 1)
	if got := seedComplete(m, 1, 4); len(got) != 0 {
		t.Errorf("single sample: got %d candidates, want 0", len(got))
	}
}
