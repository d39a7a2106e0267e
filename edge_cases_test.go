package ward

import (
	"testing"
)

func TestEdgeCase_SinglePoint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NClusters = 1
	result, err := Cluster([][]float64{{1.0, 2.0}}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Labels) != 1 || result.Labels[0] != 0 {
		t.Errorf("labels = %v, want [0]", result.Labels)
	}
	if len(result.Tree.Children) != 0 {
		t.Errorf("expected no merges, got %d", len(result.Tree.Children))
	}
}

func TestEdgeCase_SinglePointTwoClusters(t *testing.T) {
	_, err := Cluster([][]float64{{1.0, 2.0}}, DefaultConfig())
	if err == nil {
		t.Fatal("expected an error for 2 clusters of 1 sample")
	}
}

func TestEdgeCase_TwoPoints(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logger = quietLogger()
	result, err := Cluster([][]float64{{0, 0}, {1, 0}}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Labels[0] == result.Labels[1] {
		t.Errorf("labels = %v, want two clusters", result.Labels)
	}
	if h := result.Tree.Heights[0]; h != 0.5 {
		t.Errorf("height = %v, want 0.5", h)
	}
}

func TestEdgeCase_AllIdenticalPoints(t *testing.T) {
	data := make([][]float64, 10)
	for i := range data {
		data[i] = []float64{5.0, 5.0}
	}
	cfg := DefaultConfig()
	cfg.NClusters = 3
	cfg.Logger = quietLogger()
	result, err := Cluster(data, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for m, h := range result.Tree.Heights {
		if h != 0 {
			t.Errorf("height[%d] = %v, want 0", m, h)
		}
	}
	seen := map[int]bool{}
	for _, l := range result.Labels {
		seen[l] = true
	}
	if len(seen) != 3 {
		t.Errorf("got %d distinct labels, want 3", len(seen))
	}
}

func TestEdgeCase_NoEdges(t *testing.T) {
	// An empty connectivity graph has one component per sample; repair
	// links every pair, which is equivalent to unconstrained clustering.
	data := randomFeatures(41, 8, 2)
	cfg := DefaultConfig()
	cfg.Logger = quietLogger()
	cfg.Connectivity = NewAdjacency(8)
	structured, err := Cluster(data, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(structured.Warnings) != 1 || structured.Warnings[0].EdgesAdded != 28 {
		t.Fatalf("warnings = %+v, want one repair adding 28 edges", structured.Warnings)
	}

	cfg.Connectivity = nil
	free, err := Cluster(data, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for m := range free.Tree.Children {
		if free.Tree.Children[m] != structured.Tree.Children[m] {
			t.Fatalf("merge %d: structured %v, unconstrained %v", m, structured.Tree.Children[m], free.Tree.Children[m])
		}
	}
}

func TestEdgeCase_OneDimensional(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logger = quietLogger()
	result, err := Cluster([][]float64{{0}, {0.1}, {0.2}, {100}, {100.1}}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l := result.Labels
	if l[0] != l[1] || l[1] != l[2] || l[3] != l[4] || l[0] == l[3] {
		t.Errorf("labels = %v, want {0,1,2} and {3,4} split", l)
	}
}
