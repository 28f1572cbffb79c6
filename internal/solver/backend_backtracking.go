package solver

import (
	"time"

	"github.com/zora-rando/zora-core/internal/rng"
)

const (
	// DefaultBacktrackDepthBound caps the total backtrack steps per greedy
	// attempt before that attempt is abandoned (spec.md §4.5 Backend B).
	DefaultBacktrackDepthBound = 5
	// DefaultGreedyAttempts is how many bounded-backtracking attempts run
	// before falling back to full (unbounded) backtracking.
	DefaultGreedyAttempts = 100
	// maxFullBacktrackRestarts bounds how many times a full-backtracking
	// solution can be rejected by the blacklist before giving up.
	maxFullBacktrackRestarts = 32
)

// BacktrackingSolver is Backend B: shuffle keys, apply requires, then greedily
// draw a valid value per key in most-constrained-first order, backtracking a
// bounded number of steps on dead ends; falls back to unbounded backtracking
// if the bounded search never converges (spec.md §4.5).
type BacktrackingSolver[K comparable, V comparable] struct {
	problem[K, V]
	DepthBound     int
	GreedyAttempts int
}

// NewBacktrackingSolver returns a Backend B solver with default tunables.
func NewBacktrackingSolver[K comparable, V comparable]() *BacktrackingSolver[K, V] {
	return &BacktrackingSolver[K, V]{
		problem:        newProblem[K, V](),
		DepthBound:     DefaultBacktrackDepthBound,
		GreedyAttempts: DefaultGreedyAttempts,
	}
}

func (s *BacktrackingSolver[K, V]) AddPermutationProblem(keys []K, values []V) {
	s.addPermutationProblem(keys, values)
}
func (s *BacktrackingSolver[K, V]) Forbid(key K, value V)             { s.forbid(key, value) }
func (s *BacktrackingSolver[K, V]) Require(key K, value V)            { s.require(key, value) }
func (s *BacktrackingSolver[K, V]) ForbidAll(keys []K, values []V)    { s.forbidAll(keys, values) }
func (s *BacktrackingSolver[K, V]) AtLeastOneOf(keys []K, values []V) { s.atLeastOneOf(keys, values) }
func (s *BacktrackingSolver[K, V]) AddForbiddenSolutionMap(m map[K]V) { s.addForbiddenSolutionMap(m) }
func (s *BacktrackingSolver[K, V]) ClearForbiddenSolutionMaps()       { s.clearForbiddenSolutionMaps() }

// deriveSubSeed produces the "fresh internal sub-seed derived deterministically
// from the current attempt number" spec.md §4.5 calls for on blacklist
// collision. SplitMix64's mixing step is reused since it is already the
// module's documented way to expand one integer into an unrelated one.
func deriveSubSeed(seed uint64, attempt int) uint64 {
	z := seed + uint64(attempt)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Solve implements spec.md §4.5 Backend B's three-phase strategy.
func (s *BacktrackingSolver[K, V]) Solve(seed uint64, timeLimit time.Duration) (map[K]V, bool) {
	if len(s.keys) != len(s.values) {
		return nil, false
	}
	dl := deadline(timeLimit)

	attempt := 0
	for phaseAttempt := 0; phaseAttempt < s.greedyAttempts(); phaseAttempt++ {
		attempt++
		if expired(dl) {
			return nil, false
		}
		r := rng.New(deriveSubSeed(seed, attempt))
		if assignment, ok := s.attemptOnce(r, s.depthBound()); ok && s.isValid(assignment) {
			return assignment, true
		}
	}

	for restart := 0; restart < maxFullBacktrackRestarts; restart++ {
		attempt++
		if expired(dl) {
			return nil, false
		}
		r := rng.New(deriveSubSeed(seed, attempt))
		if assignment, ok := s.attemptOnce(r, -1); ok && s.isValid(assignment) {
			return assignment, true
		}
	}
	return nil, false
}

func (s *BacktrackingSolver[K, V]) greedyAttempts() int {
	if s.GreedyAttempts <= 0 {
		return DefaultGreedyAttempts
	}
	return s.GreedyAttempts
}

func (s *BacktrackingSolver[K, V]) depthBound() int {
	if s.DepthBound <= 0 {
		return DefaultBacktrackDepthBound
	}
	return s.DepthBound
}

// attemptOnce runs one randomized-backtracking pass. depthBound < 0 means
// unbounded (the "full backtracking" fallback phase).
func (s *BacktrackingSolver[K, V]) attemptOnce(r *rng.RNG, depthBound int) (map[K]V, bool) {
	assignment := make(map[K]V, len(s.keys))
	available := indexRange(len(s.values))

	// Apply requires first; each consumes exactly one matching occurrence.
	var freeKeys []K
	for _, k := range s.keys {
		if reqV, ok := s.required[k]; ok {
			idx := -1
			for i, avIdx := range available {
				if s.values[avIdx] == reqV {
					idx = i
					break
				}
			}
			if idx < 0 {
				return nil, false // require over-subscribes a value
			}
			assignment[k] = reqV
			available = append(available[:idx], available[idx+1:]...)
		} else {
			freeKeys = append(freeKeys, k)
		}
	}

	order := r.ShuffleInts(indexRange(len(freeKeys)))
	shuffledKeys := make([]K, len(freeKeys))
	for i, idx := range order {
		shuffledKeys[i] = freeKeys[idx]
	}
	sortMostConstrainedFirst(shuffledKeys, s.forbidden)

	backtracksLeft := depthBound
	unbounded := depthBound < 0
	ok := s.backtrack(r, shuffledKeys, 0, available, assignment, &backtracksLeft, unbounded)
	if !ok {
		return nil, false
	}
	return assignment, true
}

// sortMostConstrainedFirst stably reorders keys so that ones with the most
// forbidden values (hence the smallest domain) come first, matching
// spec.md §4.5's "most-constrained-first order."
func sortMostConstrainedFirst[K comparable, V comparable](keys []K, forbidden map[K]map[V]bool) {
	constraintCount := func(k K) int { return len(forbidden[k]) }
	// Insertion sort: keys count is small (locations, not screens), and this
	// keeps the sort stable without importing sort for a custom Less.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && constraintCount(keys[j]) > constraintCount(keys[j-1]); j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
}

func (s *BacktrackingSolver[K, V]) backtrack(
	r *rng.RNG,
	order []K,
	pos int,
	available []int,
	assignment map[K]V,
	backtracksLeft *int,
	unbounded bool,
) bool {
	if pos == len(order) {
		return true
	}
	key := order[pos]

	candidates := make([]int, 0, len(available))
	for _, idx := range available {
		if forbidden := s.forbidden[key]; forbidden == nil || !forbidden[s.values[idx]] {
			candidates = append(candidates, idx)
		}
	}
	if len(candidates) == 0 {
		return false
	}
	tryOrder := r.ShuffleInts(indexRange(len(candidates)))

	for _, ti := range tryOrder {
		chosenIdx := candidates[ti]
		value := s.values[chosenIdx]

		remaining := removeValue(available, chosenIdx)
		assignment[key] = value

		if s.backtrack(r, order, pos+1, remaining, assignment, backtracksLeft, unbounded) {
			return true
		}

		delete(assignment, key)
		if !unbounded {
			*backtracksLeft--
			if *backtracksLeft < 0 {
				return false
			}
		}
	}
	return false
}

func removeValue(available []int, target int) []int {
	out := make([]int, 0, len(available)-1)
	for _, v := range available {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}
