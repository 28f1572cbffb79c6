// Package rng implements the single deterministic randomness source shared
// by every randomizer component (spec §4.1, C1).
//
// The generator is xoshiro256** (Blackman & Vigna, 2018), a fully specified
// 64-bit generator with published constants, chosen so independent
// re-implementations produce identical sequences for the same seed. No
// component may read from the platform entropy source, system clock, or a
// hash-randomized iteration order during a run — every sequence consumed by
// the RNG must first be sorted by a stable key.
package rng

import "math/bits"

// RNG is the sole source of randomness for a generation run.
type RNG struct {
	s [4]uint64
}

// New seeds an RNG from a 64-bit run seed, expanding it into the 256-bit
// xoshiro256** state via SplitMix64. This is the generator's own documented
// seeding recipe and avoids the reachable-but-degenerate all-zero state.
func New(seed uint64) *RNG {
	r := &RNG{}
	sm := seed
	for i := range r.s {
		sm += 0x9E3779B97F4A7C15
		z := sm
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		z = z ^ (z >> 31)
		r.s[i] = z
	}
	return r
}

func rotl(x uint64, k uint) uint64 {
	return (x << k) | (x >> (64 - k))
}

// Next returns the next raw 64-bit value and advances the generator state.
func (r *RNG) Next() uint64 {
	result := rotl(r.s[1]*5, 7) * 9

	t := r.s[1] << 17

	r.s[2] ^= r.s[0]
	r.s[3] ^= r.s[1]
	r.s[1] ^= r.s[2]
	r.s[0] ^= r.s[3]

	r.s[2] ^= t

	r.s[3] = rotl(r.s[3], 45)

	return result
}

// Range returns a uniformly distributed integer in [lo, hiExclusive).
// Uses the multiply-high step of Lemire's bounded reduction over the raw
// 64-bit draw, without its rejection step, so any bias is at most
// span/2^64 and no draw is ever retried.
func (r *RNG) Range(lo, hiExclusive int) int {
	if hiExclusive <= lo {
		panic("rng: empty range")
	}
	span := uint64(hiExclusive - lo)
	hi, _ := bits.Mul64(r.Next(), span)
	return lo + int(hi)
}

// Shuffle performs an in-place Fisher–Yates shuffle over n elements, calling
// swap(i, j) for each transposition. Callers must present elements in a
// stable, pre-sorted order — the RNG never reorders them for you.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Range(0, i+1)
		swap(i, j)
	}
}

// ShuffleInts returns a freshly shuffled copy of a sorted slice of ints.
func (r *RNG) ShuffleInts(sorted []int) []int {
	out := make([]int, len(sorted))
	copy(out, sorted)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Choice returns a uniformly random element of a non-empty slice.
func Choice[T any](r *RNG, seq []T) T {
	if len(seq) == 0 {
		panic("rng: choice on empty sequence")
	}
	return seq[r.Range(0, len(seq))]
}

// Sample draws k distinct elements from seq without replacement, preserving
// no particular order guarantee beyond determinism for a given seed.
func Sample[T any](r *RNG, seq []T, k int) []T {
	if k > len(seq) {
		panic("rng: sample size exceeds sequence length")
	}
	pool := make([]T, len(seq))
	copy(pool, seq)
	r.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:k]
}

// GetCode reproduces the 4-character verification code the original
// randomizer derives from its RNG (values in [0x00, 0x23], mapping to the
// character set 0-9, A-Z). Kept for parity with the reference implementation;
// the patch engine's own verification code comes from
// patchengine.VerificationCode, not from this method.
func (r *RNG) GetCode() [4]byte {
	var code [4]byte
	for i := range code {
		code[i] = byte(r.Range(0x00, 0x24))
	}
	return code
}
