package patchengine

import "testing"

func TestHashDependsOnlyOnSortedContent(t *testing.T) {
	p1 := New()
	p1.Set(100, 0xAB)
	p1.Set(50, 0xCD)

	p2 := New()
	p2.Set(50, 0xCD) // inserted in a different order
	p2.Set(100, 0xAB)

	if p1.Hash() != p2.Hash() {
		t.Fatal("hash depends on insertion order, want offset-content-only")
	}
}

func TestHashChangesWithContent(t *testing.T) {
	p1 := New()
	p1.Set(10, 1)
	p2 := New()
	p2.Set(10, 2)
	if p1.Hash() == p2.Hash() {
		t.Fatal("differing content produced identical hash")
	}
}

func TestApplyToDoesNotMutateBase(t *testing.T) {
	base := make([]byte, 20)
	p := New()
	p.Set(5, 0xFF)
	out := p.ApplyTo(base)
	if base[5] != 0 {
		t.Fatal("ApplyTo mutated the base slice in place")
	}
	if out[5] != 0xFF {
		t.Fatal("ApplyTo did not apply the delta")
	}
}

func TestMergeLastWriterWins(t *testing.T) {
	p1 := New()
	p1.Set(1, 0x10)
	p2 := New()
	p2.Set(1, 0x20)
	p1.Merge(p2)
	got, _ := p1.Get(1)
	if got != 0x20 {
		t.Fatalf("Merge = %#x, want last writer's 0x20", got)
	}
}

func TestMergeSilentOnIdenticalByte(t *testing.T) {
	p1 := New()
	p1.Set(1, 0x10)
	p2 := New()
	p2.Set(1, 0x10)
	p1.Merge(p2) // must not panic or otherwise misbehave on an identical write
	got, _ := p1.Get(1)
	if got != 0x10 {
		t.Fatal("identical merge changed the byte")
	}
}

func TestValidateAgainstMemoryMapRejectsHeaderWrite(t *testing.T) {
	p := New()
	p.Set(5, 1)
	if offset := p.ValidateAgainstMemoryMap(); offset != 5 {
		t.Fatalf("ValidateAgainstMemoryMap = %d, want 5 (header offset flagged)", offset)
	}
}

func TestValidateAgainstMemoryMapAcceptsInBoundsWrite(t *testing.T) {
	p := New()
	p.Set(1000, 1)
	if offset := p.ValidateAgainstMemoryMap(); offset != -1 {
		t.Fatalf("ValidateAgainstMemoryMap = %d, want -1 (clean)", offset)
	}
}

func TestVerificationCodeIsDeterministic(t *testing.T) {
	p := New()
	p.Set(1, 2)
	p.Set(3, 4)
	h := p.Hash()
	c1 := VerificationCode(h)
	c2 := VerificationCode(h)
	if c1 != c2 {
		t.Fatal("VerificationCode is not deterministic for the same hash")
	}
}
