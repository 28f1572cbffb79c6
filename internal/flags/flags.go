// Package flags is the configuration surface described by spec.md §4.4: an
// ordered set of named booleans plus two out-of-band "complex" flags, and a
// bidirectional codec to and from a short consonant-only string.
package flags

import "sort"

// Category groups a flag for UI/registry purposes and controls whether it
// participates in flagstring encoding (spec.md §4.4, SPEC_FULL.md C4).
type Category uint8

const (
	CategoryItemShuffle Category = iota
	CategoryItemChanges
	CategoryOverworldRandomization
	CategoryLogicAndDifficulty
	CategoryQualityOfLife
	CategoryExperimental
	CategoryLegacy
	CategoryHidden
	CategoryCosmetic
)

// AffectsFlagstring reports whether flags in this category are encoded into
// the flagstring. Hidden and Cosmetic flags are both excluded (SPEC_FULL.md
// C4 supplement): two cosmetically different configurations must not
// collide on one flagstring, and hidden flags are never user-facing.
func (c Category) AffectsFlagstring() bool {
	return c != CategoryHidden && c != CategoryCosmetic
}

// Definition describes one boolean flag: its stable key, display metadata,
// category, and its bit position within the flagstring (only meaningful
// when the category affects the flagstring).
type Definition struct {
	Key         string
	DisplayName string
	Help        string
	Category    Category
	BitPos      int
}

// masterShuffleDependents lists the 13 shuffle flags gated by
// major_item_shuffle (SPEC_FULL.md C6 supplement, original_source
// flags/registry.py's "Major Item Shuffle" subcategory).
var masterShuffleDependents = []string{
	"shuffle_wood_sword_cave_item",
	"shuffle_white_sword_cave_item",
	"shuffle_magical_sword_cave_item",
	"shuffle_letter_cave_item",
	"shuffle_armos_item",
	"shuffle_coast_item",
	"shuffle_shop_arrows",
	"shuffle_shop_candle",
	"shuffle_shop_ring",
	"shuffle_shop_woodsword",
	"shuffle_shop_bluering",
	"shuffle_shop_bait",
	"shuffle_within_level",
}

// Registry is the ordered, immutable catalog of every known flag. Bit
// positions are assigned by declaration order among flags that affect the
// flagstring, matching spec.md's "concatenate the non-complex flag bits in
// declared order" rule.
var Registry = buildRegistry()

func buildRegistry() []Definition {
	defs := []Definition{
		{Key: "major_item_shuffle", DisplayName: "Major Item Shuffle", Category: CategoryItemShuffle,
			Help: "Master toggle for shuffling major items outside their vanilla locations."},
	}
	for _, k := range masterShuffleDependents {
		defs = append(defs, Definition{Key: k, DisplayName: k, Category: CategoryItemShuffle})
	}
	defs = append(defs,
		Definition{Key: "force_sword_to_open_cave", DisplayName: "Force sword to open cave", Category: CategoryLogicAndDifficulty},
		Definition{Key: "force_arrow_to_level_nine", DisplayName: "Force silver arrow to level 9", Category: CategoryLogicAndDifficulty},
		Definition{Key: "force_two_heart_containers_to_level_nine", DisplayName: "Force two heart containers to level 9", Category: CategoryHidden},
		Definition{Key: "allow_important_items_in_level_nine", DisplayName: "Allow important items in level 9", Category: CategoryLogicAndDifficulty},
		Definition{Key: "randomize_lost_hills", DisplayName: "Randomize Lost Hills", Category: CategoryOverworldRandomization},
		Definition{Key: "randomize_dead_woods", DisplayName: "Randomize Dead Woods", Category: CategoryOverworldRandomization},
		Definition{Key: "extra_raft_blocks", DisplayName: "Extra raft blocks", Category: CategoryOverworldRandomization},
		Definition{Key: "extra_power_bracelet_blocks", DisplayName: "Extra Power Bracelet blocks", Category: CategoryOverworldRandomization},
		Definition{Key: "shuffle_start_screen", DisplayName: "Shuffle start screen", Category: CategoryOverworldRandomization},
		Definition{Key: "avoid_required_hard_combat", DisplayName: "Avoid required hard combat", Category: CategoryQualityOfLife},
		Definition{Key: "dont_guarantee_starting_sword_or_wand", DisplayName: "Don't guarantee starting sword or wand", Category: CategoryExperimental},
		Definition{Key: "keep_health_after_death_warp", DisplayName: "Keep health after death warp", Category: CategoryQualityOfLife},
		Definition{Key: "increase_minimum_health", DisplayName: "Increase minimum health", Category: CategoryQualityOfLife},
		Definition{Key: "vanilla_shop_positions", DisplayName: "Vanilla shop positions (legacy)", Category: CategoryLegacy},
		Definition{Key: "show_seed_on_file_select", DisplayName: "Show seed on file select", Category: CategoryCosmetic},
	)

	bit := 0
	out := make([]Definition, len(defs))
	for i, d := range defs {
		if d.Category.AffectsFlagstring() {
			d.BitPos = bit
			bit++
		} else {
			d.BitPos = -1
		}
		out[i] = d
	}
	return out
}

// byKey indexes Registry for O(1) lookups; built once from the immutable
// Registry slice.
var byKey = func() map[string]Definition {
	m := make(map[string]Definition, len(Registry))
	for _, d := range Registry {
		m[d.Key] = d
	}
	return m
}()

// Lookup returns the definition for key, if any.
func Lookup(key string) (Definition, bool) {
	d, ok := byKey[key]
	return d, ok
}

// NumEncodedBits is the number of flag bits that participate in the
// flagstring, i.e. those belonging to a category other than Hidden/Cosmetic.
func NumEncodedBits() int {
	n := 0
	for _, d := range Registry {
		if d.Category.AffectsFlagstring() {
			n++
		}
	}
	return n
}

// Set is a boolean-flag configuration plus the two complex, out-of-band
// flags (spec.md §4.4).
type Set struct {
	bits map[string]bool

	// StartingItems and SkipItems are the two complex flags, transmitted
	// separately from the flagstring (spec.md: "transmitted out-of-band").
	StartingItems []string
	SkipItems     []string
}

// New returns an empty flag set (every boolean flag false).
func New() *Set {
	return &Set{bits: make(map[string]bool)}
}

// Get reports whether key is set. Unknown keys report false.
func (s *Set) Get(key string) bool {
	return s.bits[key]
}

// Set assigns a boolean flag's value, enforcing the master-toggle rule
// (spec.md §4.4): disabling major_item_shuffle atomically forces its 13
// dependents false; enabling it never auto-enables them.
func (s *Set) Set(key string, value bool) {
	s.bits[key] = value
	if key == "major_item_shuffle" && !value {
		for _, dep := range masterShuffleDependents {
			s.bits[dep] = false
		}
	}
}

// Keys returns the set's boolean-flag keys in a stable, sorted order —
// required whenever a Set is iterated for anything that could feed the RNG
// (spec.md §4.1).
func (s *Set) Keys() []string {
	keys := make([]string, 0, len(s.bits))
	for k := range s.bits {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy.
func (s *Set) Clone() *Set {
	out := New()
	for k, v := range s.bits {
		out.bits[k] = v
	}
	out.StartingItems = append([]string(nil), s.StartingItems...)
	out.SkipItems = append([]string(nil), s.SkipItems...)
	return out
}

// LegacyAllowed reports whether Legacy-category flags may be honored for the
// given base image, per spec.md §4.4: "Legacy-category flags are valid only
// when the base image is the vanilla image; otherwise they are forced
// false."
func LegacyAllowed(baseImageIsVanilla bool) bool {
	return baseImageIsVanilla
}

// Sanitize clears any Legacy-category flag when the base image is not the
// vanilla image, and re-applies the master-toggle rule so a caller cannot
// hand-construct an inconsistent Set.
func (s *Set) Sanitize(baseImageIsVanilla bool) {
	if !LegacyAllowed(baseImageIsVanilla) {
		for _, d := range Registry {
			if d.Category == CategoryLegacy {
				s.bits[d.Key] = false
			}
		}
	}
	if !s.Get("major_item_shuffle") {
		for _, dep := range masterShuffleDependents {
			s.bits[dep] = false
		}
	}
}
