package rng

import "testing"

func TestDeterministicSequence(t *testing.T) {
	a := New(12345)
	b := New(12345)
	for i := 0; i < 100; i++ {
		va, vb := a.Next(), b.Next()
		if va != vb {
			t.Fatalf("draw %d diverged: %d != %d", i, va, vb)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 32; i++ {
		if a.Next() == b.Next() {
			same++
		}
	}
	if same > 1 {
		t.Fatalf("expected near-total divergence, got %d matching draws of 32", same)
	}
}

func TestRangeWithinBounds(t *testing.T) {
	r := New(99)
	for i := 0; i < 10000; i++ {
		v := r.Range(5, 15)
		if v < 5 || v >= 15 {
			t.Fatalf("value %d out of [5,15)", v)
		}
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	r := New(7)
	in := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	out := r.ShuffleInts(in)
	seen := make(map[int]bool)
	for _, v := range out {
		seen[v] = true
	}
	if len(seen) != len(in) {
		t.Fatalf("shuffle lost or duplicated elements: %v", out)
	}
}

func TestShuffleDeterministic(t *testing.T) {
	in := []int{0, 1, 2, 3, 4, 5, 6, 7}
	a := New(42).ShuffleInts(in)
	b := New(42).ShuffleInts(in)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("shuffle diverged at %d: %v vs %v", i, a, b)
		}
	}
}

func TestChoiceAndSample(t *testing.T) {
	r := New(5)
	seq := []string{"a", "b", "c", "d", "e"}
	c := Choice(r, seq)
	found := false
	for _, s := range seq {
		if s == c {
			found = true
		}
	}
	if !found {
		t.Fatalf("choice %q not in sequence", c)
	}

	sample := Sample(r, seq, 3)
	if len(sample) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(sample))
	}
	seen := make(map[string]bool)
	for _, s := range sample {
		seen[s] = true
	}
	if len(seen) != 3 {
		t.Fatalf("sample contained duplicates: %v", sample)
	}
}

func TestGetCodeDeterministic(t *testing.T) {
	a := New(2026).GetCode()
	b := New(2026).GetCode()
	if a != b {
		t.Fatalf("GetCode not deterministic: %v vs %v", a, b)
	}
	for _, c := range a {
		if c > 0x23 {
			t.Fatalf("code byte %x out of range", c)
		}
	}
}
