package ward

import "errors"

// Sentinel errors returned by the package. Callers match them with
// errors.Is; returned errors usually wrap one of these with context.
var (
	// ErrShape is returned when the connectivity structure is not
	// n_samples x n_samples, or when feature rows have differing lengths.
	ErrShape = errors.New("ward: shape mismatch")

	// ErrConnectivityType is returned when a connectivity value is not one
	// of the recognized representations (see AsConnectivity).
	ErrConnectivityType = errors.New("ward: unsupported connectivity type")

	// ErrInvalidClusterCount is returned when more clusters are requested
	// than the tree has leaves, or fewer than one.
	ErrInvalidClusterCount = errors.New("ward: invalid number of clusters")

	// ErrEmptyInput is returned when there is nothing to cluster.
	ErrEmptyInput = errors.New("ward: empty input")

	// ErrNonFinite is returned when features contain NaN or ±Inf.
	ErrNonFinite = errors.New("ward: non-finite feature value")

	// ErrDisconnected is returned when the candidate heap runs dry before
	// the tree is complete. Repair prevents it; seeing it means the
	// component count handed to BuildTree was wrong.
	ErrDisconnected = errors.New("ward: connectivity graph is disconnected")

	// ErrNotFitted is returned by FeatureAgglomeration methods called
	// before Fit.
	ErrNotFitted = errors.New("ward: feature agglomeration is not fitted")
)

// WarningKind classifies a non-fatal diagnostic.
type WarningKind string

// WarnDisconnected is emitted when the connectivity graph had more than one
// connected component and bridging edges were added.
const WarnDisconnected WarningKind = "disconnected"

// Warning is a non-fatal diagnostic attached to a Tree. It never stops a
// build.
type Warning struct {
	Kind WarningKind
	// Components is the number of connected components found before repair.
	Components int
	// EdgesAdded is the number of bridging edges inserted by repair.
	EdgesAdded int
	Message    string
}

func (w Warning) String() string { return w.Message }
