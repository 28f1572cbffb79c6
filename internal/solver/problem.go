// Package solver implements the three interchangeable permutation-solver
// backends of spec.md §4.5 (C5) behind one shared contract. Every backend
// finds a bijection from a key sequence to a multiset of values subject to
// forbid/require/at-least-one-of constraints and a blacklist of prior
// solutions, using only the seeded RNG (internal/rng) for randomness.
package solver

import "time"

// Solver is the unified contract every backend implements (spec.md §4.5).
// K and V must be comparable so assignments can live in a plain map and be
// compared for blacklist membership.
type Solver[K comparable, V comparable] interface {
	AddPermutationProblem(keys []K, values []V)
	Forbid(key K, value V)
	Require(key K, value V)
	ForbidAll(keys []K, values []V)
	AtLeastOneOf(keys []K, values []V)
	AddForbiddenSolutionMap(m map[K]V)
	ClearForbiddenSolutionMaps()
	Solve(seed uint64, timeLimit time.Duration) (map[K]V, bool)
}

type disjunctiveConstraint[K comparable, V comparable] struct {
	keys   map[K]bool
	values map[V]bool
}

// problem is the shared intermediate representation every backend embeds.
// SPEC_FULL.md C5 calls this the "symmetric intermediate representation."
type problem[K comparable, V comparable] struct {
	keys   []K
	values []V // the full multiset, in caller-declared order

	forbidden map[K]map[V]bool
	required  map[K]V
	disjuncts []disjunctiveConstraint[K, V]
	blacklist []map[K]V
}

func newProblem[K comparable, V comparable]() problem[K, V] {
	return problem[K, V]{
		forbidden: make(map[K]map[V]bool),
		required:  make(map[K]V),
	}
}

func (p *problem[K, V]) addPermutationProblem(keys []K, values []V) {
	p.keys = append([]K(nil), keys...)
	p.values = append([]V(nil), values...)
}

func (p *problem[K, V]) forbid(key K, value V) {
	if p.forbidden[key] == nil {
		p.forbidden[key] = make(map[V]bool)
	}
	p.forbidden[key][value] = true
}

func (p *problem[K, V]) require(key K, value V) {
	p.required[key] = value
}

func (p *problem[K, V]) forbidAll(keys []K, values []V) {
	for _, k := range keys {
		for _, v := range values {
			p.forbid(k, v)
		}
	}
}

func (p *problem[K, V]) atLeastOneOf(keys []K, values []V) {
	c := disjunctiveConstraint[K, V]{keys: make(map[K]bool), values: make(map[V]bool)}
	for _, k := range keys {
		c.keys[k] = true
	}
	for _, v := range values {
		c.values[v] = true
	}
	p.disjuncts = append(p.disjuncts, c)
}

func (p *problem[K, V]) addForbiddenSolutionMap(m map[K]V) {
	cp := make(map[K]V, len(m))
	for k, v := range m {
		cp[k] = v
	}
	p.blacklist = append(p.blacklist, cp)
}

func (p *problem[K, V]) clearForbiddenSolutionMaps() {
	p.blacklist = nil
}

// isValid checks every constraint in one pass: per-key forbids, required
// pre-assignments, at-least-one-of, and blacklist membership. Bijection
// validity (multiset conservation) is guaranteed by construction in every
// backend, since they only ever draw from a shrinking copy of p.values.
func (p *problem[K, V]) isValid(assignment map[K]V) bool {
	for k, v := range assignment {
		if forbidden, ok := p.forbidden[k]; ok && forbidden[v] {
			return false
		}
	}
	for k, v := range p.required {
		if assignment[k] != v {
			return false
		}
	}
	for _, c := range p.disjuncts {
		satisfied := false
		for k := range c.keys {
			if v, ok := assignment[k]; ok && c.values[v] {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	for _, forbiddenMap := range p.blacklist {
		if mapsEqual(assignment, forbiddenMap, p.keys) {
			return false
		}
	}
	return true
}

func mapsEqual[K comparable, V comparable](a, b map[K]V, keys []K) bool {
	for _, k := range keys {
		if a[k] != b[k] {
			return false
		}
	}
	return true
}

// deadline turns a time.Duration budget into an absolute time.Time,
// consulted only between attempts/iterations (spec.md §5's cancellation
// policy: no mid-attempt elapsed checks, to avoid partial state).
func deadline(limit time.Duration) time.Time {
	if limit <= 0 {
		return time.Time{}
	}
	return time.Now().Add(limit)
}

func expired(dl time.Time) bool {
	return !dl.IsZero() && time.Now().After(dl)
}
