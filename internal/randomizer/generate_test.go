package randomizer

import (
	"testing"

	"github.com/zora-rando/zora-core/internal/config"
	"github.com/zora-rando/zora-core/internal/flags"
	"github.com/zora-rando/zora-core/internal/memmap"
	"github.com/zora-rando/zora-core/internal/patchengine"
)

func vanillaConfig(seed uint64) config.Config {
	base := make([]byte, memmap.BaseImageSize)
	return config.Default(seed, flags.New(), base)
}

func TestGenerateVanillaIsBeatable(t *testing.T) {
	report, err := Generate(vanillaConfig(1), nil)
	if err != nil {
		t.Fatalf("Generate with no shuffle flags should always be beatable, got: %v", err)
	}
	if report.Patch.Len() == 0 {
		t.Fatal("expected a non-empty patch (vanilla seeding plus title string writes)")
	}
	if report.Attempts != 1 {
		t.Fatalf("vanilla world should validate on the first attempt, got %d", report.Attempts)
	}
}

func TestGenerateSmallShufflePoolStaysBeatable(t *testing.T) {
	cfg := vanillaConfig(42)
	cfg.Flags.Set("major_item_shuffle", true)
	cfg.Flags.Set("shuffle_wood_sword_cave_item", true)
	cfg.Flags.Set("shuffle_armos_item", true)

	report, err := Generate(cfg, nil)
	if err != nil {
		t.Fatalf("swapping the wood sword cave and Armos slot should never break beatability "+
			"since the white and magical sword caves are untouched: %v", err)
	}
	if report.Flagstring == "" {
		t.Fatal("expected a non-empty flagstring")
	}
}

func TestGenerateStampsVerificationCodeIntoTitleString(t *testing.T) {
	report, err := Generate(vanillaConfig(1), nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	titleOffset, titleLength := -1, 0
	for _, r := range memmap.Map {
		if r.Name == "title_string" {
			titleOffset, titleLength = r.Offset, r.Length
			break
		}
	}
	if titleOffset == -1 {
		t.Fatal("memmap has no title_string region")
	}

	for i, want := range report.Code {
		got, ok := report.Patch.Get(titleOffset + i)
		if !ok {
			t.Fatalf("patch has no byte at title string offset %d", i)
		}
		if got != want {
			t.Fatalf("title string byte %d = %#x, want verification code byte %#x", i, got, want)
		}
	}

	// The verification code must be derived from the patch's own content
	// hash, taken before the code bytes themselves were written in.
	withoutCode := patchengine.New()
	for _, offset := range report.Patch.Offsets() {
		if offset >= titleOffset && offset < titleOffset+titleLength {
			continue
		}
		b, _ := report.Patch.Get(offset)
		withoutCode.Set(offset, b)
	}
	want := patchengine.VerificationCode(withoutCode.Hash())
	if want != report.Code {
		t.Fatalf("verification code %v does not match the hash of the patch content it was derived from, got %v", want, report.Code)
	}
}

func TestGenerateRejectsWrongSizedBaseImage(t *testing.T) {
	cfg := config.Default(1, flags.New(), []byte{1, 2, 3})
	if _, err := Generate(cfg, nil); err == nil {
		t.Fatal("expected InvalidBaseImage for a short base image")
	}
}
