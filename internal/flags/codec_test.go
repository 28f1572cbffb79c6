package flags

import "testing"

func TestEncodeEmptySetIsAllPad(t *testing.T) {
	s := New()
	got := Encode(s)
	want := ""
	for range got {
		want += "B"
	}
	if got != want {
		t.Fatalf("Encode(empty) = %q, want all-B string of same length", got)
	}
	if len(got) < 5 {
		t.Fatalf("Encode(empty) length %d, want >= 5", len(got))
	}
}

func TestEncodeMajorItemShuffleSetsFirstBit(t *testing.T) {
	s := New()
	s.Set("major_item_shuffle", true)
	got := Encode(s)
	if got[0] == 'B' {
		t.Fatalf("Encode(major_item_shuffle) first char = %q, want non-zero leading digit", got[0])
	}
}

func TestRoundTrip(t *testing.T) {
	cases := []*Set{
		New(),
		func() *Set { s := New(); s.Set("major_item_shuffle", true); return s }(),
		func() *Set {
			s := New()
			s.Set("major_item_shuffle", true)
			s.Set("shuffle_armos_item", true)
			s.Set("force_sword_to_open_cave", true)
			return s
		}(),
	}
	for i, want := range cases {
		enc := Encode(want)
		got, ok := Decode(enc)
		if !ok {
			t.Fatalf("case %d: Decode(%q) failed", i, enc)
		}
		for _, d := range Registry {
			if !d.Category.AffectsFlagstring() {
				continue
			}
			if got.Get(d.Key) != want.Get(d.Key) {
				t.Errorf("case %d: flag %q got %v want %v (flagstring %q)", i, d.Key, got.Get(d.Key), want.Get(d.Key), enc)
			}
		}
	}
}

func TestDecodeRejectsUnknownAlphabet(t *testing.T) {
	if _, ok := Decode("AAAAA"); ok {
		t.Fatal("Decode accepted a character outside the alphabet")
	}
}

func TestDecodeRejectsTooShort(t *testing.T) {
	if _, ok := Decode("BBBB"); ok {
		t.Fatal("Decode accepted a flagstring shorter than 5 characters")
	}
}

func TestMasterToggleForcesDependentsFalse(t *testing.T) {
	s := New()
	s.Set("major_item_shuffle", true)
	s.Set("shuffle_armos_item", true)
	s.Set("major_item_shuffle", false)
	if s.Get("shuffle_armos_item") {
		t.Fatal("disabling major_item_shuffle did not force shuffle_armos_item false")
	}
}

func TestMasterToggleEnableDoesNotCascade(t *testing.T) {
	s := New()
	s.Set("major_item_shuffle", true)
	if s.Get("shuffle_armos_item") {
		t.Fatal("enabling major_item_shuffle auto-enabled a dependent")
	}
}

func TestLegacySanitizedOnNonVanillaBase(t *testing.T) {
	s := New()
	s.Set("vanilla_shop_positions", true)
	s.Sanitize(false)
	if s.Get("vanilla_shop_positions") {
		t.Fatal("legacy flag survived Sanitize(false)")
	}
}
