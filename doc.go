// Package ward implements Ward's minimum-variance hierarchical agglomerative
// clustering, optionally constrained by a connectivity graph.
//
// The build starts with every sample in its own cluster and repeatedly
// merges the pair of clusters whose union increases the total within-cluster
// variance the least. With a connectivity graph only clusters containing
// connected samples may merge, which yields spatially contiguous clusters
// for images, meshes and other structured data. The complete merge tree is
// then cut into the requested number of clusters.
//
// Basic usage:
//
//	cfg := ward.DefaultConfig()
//	cfg.NClusters = 3
//	result, err := ward.Cluster(data, cfg)
//	// result.Labels[i] is the cluster of sample i
//	// result.Tree holds the full merge tree
//
// Structured clustering on a 2-D image of width w and height h:
//
//	conn, _ := ward.GridToGraph(h, w, 1)
//	cfg.Connectivity = conn
//	result, err := ward.Cluster(pixels, cfg)
//
// # Disconnected graphs
//
// If the connectivity graph has more than one connected component, the
// closest pair of samples between every two components is linked before
// the build, so the tree always spans every sample. This is reported as a
// WarnDisconnected warning on the tree and logged; it is not an error.
//
// # Lower-level API
//
// BuildTree and CutTree expose the two stages separately; a tree can be
// cut at several cluster counts without rebuilding it (CutTreeMulti).
// FeatureAgglomeration applies the same algorithm to features instead of
// samples.
package ward
