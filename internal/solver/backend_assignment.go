package solver

import (
	"time"

	"github.com/zora-rando/zora-core/internal/rng"
)

// maxAssignmentRestarts bounds how many times Backend A retries with a
// fresh sub-seed after landing on a blacklisted solution.
const maxAssignmentRestarts = 32

// AssignmentSolver is Backend A ("Assignment/CP" in spec.md §4.5): an
// integer-variable-per-key model with an all-different constraint over
// value multiplicity, solved by forward-checking search over a seed-
// permuted value domain. SPEC_FULL.md documents why this repository builds
// it on arc-consistency pruning plus search seeded through internal/rng
// rather than an external CP-SAT binding: no such Go package appears
// anywhere in the example pack.
type AssignmentSolver[K comparable, V comparable] struct {
	problem[K, V]
}

// NewAssignmentSolver returns a Backend A solver.
func NewAssignmentSolver[K comparable, V comparable]() *AssignmentSolver[K, V] {
	return &AssignmentSolver[K, V]{problem: newProblem[K, V]()}
}

func (s *AssignmentSolver[K, V]) AddPermutationProblem(keys []K, values []V) {
	s.addPermutationProblem(keys, values)
}
func (s *AssignmentSolver[K, V]) Forbid(key K, value V)             { s.forbid(key, value) }
func (s *AssignmentSolver[K, V]) Require(key K, value V)            { s.require(key, value) }
func (s *AssignmentSolver[K, V]) ForbidAll(keys []K, values []V)    { s.forbidAll(keys, values) }
func (s *AssignmentSolver[K, V]) AtLeastOneOf(keys []K, values []V) { s.atLeastOneOf(keys, values) }
func (s *AssignmentSolver[K, V]) AddForbiddenSolutionMap(m map[K]V) { s.addForbiddenSolutionMap(m) }
func (s *AssignmentSolver[K, V]) ClearForbiddenSolutionMaps()       { s.clearForbiddenSolutionMaps() }

// Solve permutes the value-index pool with the seed's RNG (spec.md §4.5:
// "value indices are randomly permuted before model construction so that
// the underlying deterministic search explores a different region per
// seed"), pre-assigns requires, then runs a forward-checking backtracking
// search: after each assignment, prune the chosen value from every other
// unassigned key's domain and fail immediately if any domain empties.
func (s *AssignmentSolver[K, V]) Solve(seed uint64, timeLimit time.Duration) (map[K]V, bool) {
	if len(s.keys) != len(s.values) {
		return nil, false
	}
	dl := deadline(timeLimit)

	for attempt := 0; attempt < maxAssignmentRestarts; attempt++ {
		if expired(dl) {
			return nil, false
		}
		r := rng.New(deriveSubSeed(seed, attempt))
		if assignment, ok := s.attempt(r); ok && s.isValid(assignment) {
			return assignment, true
		}
	}
	return nil, false
}

func (s *AssignmentSolver[K, V]) attempt(r *rng.RNG) (map[K]V, bool) {
	permutedIdx := r.ShuffleInts(indexRange(len(s.values)))
	permutedValues := make([]V, len(s.values))
	for i, idx := range permutedIdx {
		permutedValues[i] = s.values[idx]
	}

	assignment := make(map[K]V, len(s.keys))
	domains := make(map[K][]int, len(s.keys))
	var freeKeys []K
	usedValueIdx := make(map[int]bool)

	for _, k := range s.keys {
		if reqV, ok := s.required[k]; ok {
			placed := false
			for i, v := range permutedValues {
				if !usedValueIdx[i] && v == reqV {
					assignment[k] = v
					usedValueIdx[i] = true
					placed = true
					break
				}
			}
			if !placed {
				return nil, false
			}
			continue
		}
		freeKeys = append(freeKeys, k)
	}

	for _, k := range freeKeys {
		var dom []int
		for i, v := range permutedValues {
			if usedValueIdx[i] {
				continue
			}
			if forbidden := s.forbidden[k]; forbidden != nil && forbidden[v] {
				continue
			}
			dom = append(dom, i)
		}
		domains[k] = dom
	}

	return s.search(freeKeys, domains, usedValueIdx, permutedValues, assignment)
}

// search performs forward-checking backtracking: at each step it picks the
// unassigned key with the smallest remaining domain (the arc-consistency
// heuristic SPEC_FULL.md describes), tries each candidate, and prunes that
// value out of every other key's domain before recursing.
func (s *AssignmentSolver[K, V]) search(
	remaining []K,
	domains map[K][]int,
	used map[int]bool,
	values []V,
	assignment map[K]V,
) (map[K]V, bool) {
	if len(remaining) == 0 {
		return assignment, true
	}

	bestPos, bestKey := -1, remaining[0]
	bestSize := len(domains[bestKey]) + 1
	for i, k := range remaining {
		if len(domains[k]) < bestSize {
			bestSize = len(domains[k])
			bestKey = k
			bestPos = i
		}
	}
	if bestPos < 0 {
		bestPos = 0
	}

	rest := make([]K, 0, len(remaining)-1)
	rest = append(rest, remaining[:bestPos]...)
	rest = append(rest, remaining[bestPos+1:]...)

	for _, idx := range domains[bestKey] {
		if used[idx] {
			continue
		}
		v := values[idx]

		used[idx] = true
		assignment[bestKey] = v

		prunedDomains, ok := pruneDomains(rest, domains, idx)
		if ok {
			if result, found := s.search(rest, prunedDomains, used, values, assignment); found {
				return result, true
			}
		}

		delete(assignment, bestKey)
		used[idx] = false
	}
	return nil, false
}

// pruneDomains removes usedIdx from every remaining key's domain, failing
// (ok=false) if any domain empties out — the forward-check that lets the
// search abandon a branch before recursing into it.
func pruneDomains[K comparable](keys []K, domains map[K][]int, usedIdx int) (map[K][]int, bool) {
	out := make(map[K][]int, len(keys))
	for _, k := range keys {
		dom := domains[k]
		newDom := make([]int, 0, len(dom))
		for _, idx := range dom {
			if idx != usedIdx {
				newDom = append(newDom, idx)
			}
		}
		if len(newDom) == 0 {
			return nil, false
		}
		out[k] = newDom
	}
	return out, true
}
