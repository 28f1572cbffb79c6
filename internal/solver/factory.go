package solver

// Backend names one of the three interchangeable permutation-solver
// implementations (spec.md §4.5). Selected by configuration, never by
// conditional imports (SPEC_FULL.md's "pluggable solver" design note).
type Backend int

const (
	// BackendRejectionSampling is the default backend for the production
	// problem size (spec.md §4.6: ~200 locations, ~30 distinct item kinds).
	BackendRejectionSampling Backend = iota
	BackendRandomizedBacktracking
	BackendAssignmentCP
)

func (b Backend) String() string {
	switch b {
	case BackendRejectionSampling:
		return "rejection_sampling"
	case BackendRandomizedBacktracking:
		return "randomized_backtracking"
	case BackendAssignmentCP:
		return "assignment_cp"
	default:
		return "unknown"
	}
}

// New returns a typed handle to the requested backend. K and V are the
// key/value types the caller will feed the solver.
func New[K comparable, V comparable](backend Backend) Solver[K, V] {
	switch backend {
	case BackendRandomizedBacktracking:
		return NewBacktrackingSolver[K, V]()
	case BackendAssignmentCP:
		return NewAssignmentSolver[K, V]()
	default:
		return NewRejectionSolver[K, V]()
	}
}
