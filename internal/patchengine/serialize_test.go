package patchengine

import (
	"bytes"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	p := New()
	p.Set(100, 0xAB)
	p.Set(50, 0xCD)
	p.Set(4096, 0x01)

	var buf bytes.Buffer
	if err := p.writeTo(&buf); err != nil {
		t.Fatalf("writeTo: %v", err)
	}

	got, err := readFrom(&buf)
	if err != nil {
		t.Fatalf("readFrom: %v", err)
	}
	if got.Hash() != p.Hash() {
		t.Fatalf("round-tripped patch hash %x, want %x", got.Hash(), p.Hash())
	}
	if got.Len() != p.Len() {
		t.Fatalf("round-tripped patch has %d entries, want %d", got.Len(), p.Len())
	}
	for _, offset := range p.Offsets() {
		want, _ := p.Get(offset)
		gotByte, ok := got.Get(offset)
		if !ok || gotByte != want {
			t.Fatalf("offset %d = %#x, want %#x", offset, gotByte, want)
		}
	}
}

func TestLoadRejectsWrongMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("XXXX")
	buf.Write(make([]byte, 16))
	if _, err := readFrom(&buf); err == nil {
		t.Fatal("expected an error for a file with the wrong magic header")
	}
}

func TestLoadRejectsCorruptedEntry(t *testing.T) {
	p := New()
	p.Set(1, 0x10)

	var buf bytes.Buffer
	if err := p.writeTo(&buf); err != nil {
		t.Fatalf("writeTo: %v", err)
	}
	corrupted := buf.Bytes()
	// Flip the last byte (the sole entry's value) so the recovered hash
	// no longer matches the header's recorded hash.
	corrupted[len(corrupted)-1] ^= 0xFF

	if _, err := readFrom(bytes.NewReader(corrupted)); err == nil {
		t.Fatal("expected a hash mismatch error for a corrupted entry")
	}
}
