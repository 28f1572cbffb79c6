package solver

import (
	"time"

	"github.com/zora-rando/zora-core/internal/rng"
)

// DefaultRejectionCap bounds Backend C's attempt count (spec.md §4.5,
// DESIGN.md's open-question decisions: "specify behavior explicitly as 'return
// absent' and expose the cap"). Reached even when at_least_one_of binds
// tightly — the backend never loops past it.
const DefaultRejectionCap = 10000

// RejectionSolver is Backend C: shuffle the value multiset, zip with keys,
// batch-check every constraint, accept or reject. No partial-state
// machinery — fastest when solution density is high (spec.md §4.5).
type RejectionSolver[K comparable, V comparable] struct {
	problem[K, V]
	AttemptCap int
}

// NewRejectionSolver returns a Backend C solver with the default attempt
// cap.
func NewRejectionSolver[K comparable, V comparable]() *RejectionSolver[K, V] {
	return &RejectionSolver[K, V]{problem: newProblem[K, V](), AttemptCap: DefaultRejectionCap}
}

func (s *RejectionSolver[K, V]) AddPermutationProblem(keys []K, values []V) {
	s.addPermutationProblem(keys, values)
}
func (s *RejectionSolver[K, V]) Forbid(key K, value V)               { s.forbid(key, value) }
func (s *RejectionSolver[K, V]) Require(key K, value V)              { s.require(key, value) }
func (s *RejectionSolver[K, V]) ForbidAll(keys []K, values []V)      { s.forbidAll(keys, values) }
func (s *RejectionSolver[K, V]) AtLeastOneOf(keys []K, values []V)   { s.atLeastOneOf(keys, values) }
func (s *RejectionSolver[K, V]) AddForbiddenSolutionMap(m map[K]V)   { s.addForbiddenSolutionMap(m) }
func (s *RejectionSolver[K, V]) ClearForbiddenSolutionMaps()         { s.clearForbiddenSolutionMaps() }

// Solve repeatedly shuffles the value multiset with an RNG seeded from
// `seed`, zips it against keys, and accepts the first candidate that
// satisfies every constraint. Determinism follows directly from rng.RNG's
// contract: the same seed always produces the same shuffle sequence.
func (s *RejectionSolver[K, V]) Solve(seed uint64, timeLimit time.Duration) (map[K]V, bool) {
	if len(s.keys) != len(s.values) {
		return nil, false
	}
	r := rng.New(seed)
	dl := deadline(timeLimit)
	cap := s.AttemptCap
	if cap <= 0 {
		cap = DefaultRejectionCap
	}

	for attempt := 0; attempt < cap; attempt++ {
		if expired(dl) {
			return nil, false
		}
		shuffled := r.ShuffleInts(indexRange(len(s.values)))
		candidate := make(map[K]V, len(s.keys))
		for i, k := range s.keys {
			candidate[k] = s.values[shuffled[i]]
		}
		if s.isValid(candidate) {
			return candidate, true
		}
	}
	return nil, false
}

func indexRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
