// Package patchengine is the Patch Engine of spec.md §4.9 (C9): a
// byte-addressed overlay against the base image, with a stable hash and
// byte-exact emission.
package patchengine

import (
	"sort"

	"github.com/zora-rando/zora-core/internal/applog"
	"github.com/zora-rando/zora-core/internal/memmap"
)

// Patch is a SortedMap<offset, byte> per spec.md §3: insertion order is
// irrelevant, iteration order is always sorted by offset.
type Patch struct {
	data map[int]byte
}

// New returns an empty patch.
func New() *Patch {
	return &Patch{data: make(map[int]byte)}
}

// Set writes a single byte at offset.
func (p *Patch) Set(offset int, value byte) {
	p.data[offset] = value
}

// SetRange writes a contiguous run of bytes starting at offset.
func (p *Patch) SetRange(offset int, bytes []byte) {
	for i, b := range bytes {
		p.data[offset+i] = b
	}
}

// Offsets returns every offset in the patch, sorted ascending — the only
// order spec.md permits for hashing and emission.
func (p *Patch) Offsets() []int {
	offsets := make([]int, 0, len(p.data))
	for k := range p.data {
		offsets = append(offsets, k)
	}
	sort.Ints(offsets)
	return offsets
}

// Get returns the byte at offset and whether it is present.
func (p *Patch) Get(offset int) (byte, bool) {
	b, ok := p.data[offset]
	return b, ok
}

// Len reports the number of distinct offsets in the patch.
func (p *Patch) Len() int { return len(p.data) }

// Merge folds other into p. Conflicting offsets resolve last-writer-wins;
// a conflict where both patches agree on the byte is silent, and a genuine
// conflict is logged as a warning (spec.md §4.9).
func (p *Patch) Merge(other *Patch) {
	for _, offset := range other.Offsets() {
		newByte := other.data[offset]
		if existing, ok := p.data[offset]; ok && existing != newByte {
			applog.L().WithFields(map[string]interface{}{
				"offset": offset,
				"old":    existing,
				"new":    newByte,
			}).Warn("patch merge conflict, last writer wins")
		}
		p.data[offset] = newByte
	}
}

// ApplyTo returns a new byte slice with the patch's deltas applied over
// base. base is never mutated (spec.md §5: the base image is shared by
// reference and never mutated in place).
func (p *Patch) ApplyTo(base []byte) []byte {
	out := make([]byte, len(base))
	copy(out, base)
	for offset, b := range p.data {
		if offset >= 0 && offset < len(out) {
			out[offset] = b
		}
	}
	return out
}

// ValidateAgainstMemoryMap enforces spec.md invariant 4: patch offsets lie
// within the base image, and writes to the header region are forbidden.
// Returns the first offending offset, or -1 if the patch is clean.
func (p *Patch) ValidateAgainstMemoryMap() int {
	for _, offset := range p.Offsets() {
		if offset < 0 || offset >= memmap.BaseImageSize {
			return offset
		}
		if offset < memmap.HeaderLength {
			return offset
		}
	}
	return -1
}
