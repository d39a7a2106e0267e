package ward

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FeatureAgglomeration reduces the number of features by Ward-clustering
// the features themselves (each feature is a point whose coordinates are
// its values across samples) and pooling every feature cluster into one
// output feature. Config.Connectivity, if set, relates features, not
// samples.
type FeatureAgglomeration struct {
	Config Config

	// Labels assigns each input feature to an output feature. Set by Fit.
	Labels []int

	// Tree is the merge tree over features. Set by Fit.
	Tree *Tree

	// pool is the nFeatures x NClusters averaging matrix: column c holds
	// 1/|c| for every feature in cluster c.
	pool *mat.Dense
}

// NewFeatureAgglomeration returns an unfitted FeatureAgglomeration.
func NewFeatureAgglomeration(cfg Config) *FeatureAgglomeration {
	return &FeatureAgglomeration{Config: cfg}
}

// Fit clusters the features of data (n_samples x n_features).
func (f *FeatureAgglomeration) Fit(data [][]float64) error {
	if err := validateFeatures(data); err != nil {
		return err
	}
	x := denseFrom(data)
	var xt mat.Dense
	xt.CloneFrom(x.T())

	res, err := Cluster(denseRows(&xt), f.Config)
	if err != nil {
		return err
	}
	f.Labels = res.Labels
	f.Tree = res.Tree

	p, k := len(res.Labels), f.Config.NClusters
	sizes := make([]float64, k)
	for _, c := range res.Labels {
		sizes[c]++
	}
	f.pool = mat.NewDense(p, k, nil)
	for j, c := range res.Labels {
		f.pool.Set(j, c, 1/sizes[c])
	}
	return nil
}

// Transform replaces each feature cluster of data by the mean of its
// features, returning an n_samples x NClusters matrix.
func (f *FeatureAgglomeration) Transform(data [][]float64) ([][]float64, error) {
	if f.pool == nil {
		return nil, ErrNotFitted
	}
	if err := validateFeatures(data); err != nil {
		return nil, err
	}
	p, _ := f.pool.Dims()
	if len(data[0]) != p {
		return nil, fmt.Errorf("%w: data has %d features, fitted on %d", ErrShape, len(data[0]), p)
	}
	var out mat.Dense
	out.Mul(denseFrom(data), f.pool)
	return denseRows(&out), nil
}

// InverseTransform broadcasts pooled values (n_samples x NClusters) back
// to the original features: every feature takes its cluster's value.
func (f *FeatureAgglomeration) InverseTransform(pooled [][]float64) ([][]float64, error) {
	if f.pool == nil {
		return nil, ErrNotFitted
	}
	if err := validateFeatures(pooled); err != nil {
		return nil, err
	}
	_, k := f.pool.Dims()
	if len(pooled[0]) != k {
		return nil, fmt.Errorf("%w: pooled data has %d columns, want %d", ErrShape, len(pooled[0]), k)
	}
	out := make([][]float64, len(pooled))
	for i, row := range pooled {
		out[i] = make([]float64, len(f.Labels))
		for j, c := range f.Labels {
			out[i][j] = row[c]
		}
	}
	return out, nil
}

// denseFrom copies a rectangular [][]float64 into a gonum matrix.
func denseFrom(rows [][]float64) *mat.Dense {
	m := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		m.SetRow(i, row)
	}
	return m
}

// denseRows copies a gonum matrix into a [][]float64.
func denseRows(m *mat.Dense) [][]float64 {
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}
