// Package inventory models the accumulating bag of acquired items described
// by spec.md §4.3. Progressive classes are tracked as a tier map rather than
// by overwriting a slot, per SPEC_FULL.md's design note: upgrades are writes
// to the tier, never deletes.
package inventory

import (
	"sort"
	"strings"

	"github.com/zora-rando/zora-core/internal/worldmodel"
)

// Inventory is never decremented by validation (spec.md: "monotone
// reachability"); Keys is the only mutable state that can shrink, and only
// via UseKey, which the validator treats as consumption within one BFS path
// rather than a global decrement (SPEC_FULL.md C8 supplement).
type Inventory struct {
	tiers      map[worldmodel.ProgressiveClass]int
	nonProg    map[worldmodel.Item]int
	locations  map[string]bool
	keysByLevel map[int]int
}

// New returns an empty inventory.
func New() *Inventory {
	return &Inventory{
		tiers:       make(map[worldmodel.ProgressiveClass]int),
		nonProg:     make(map[worldmodel.Item]int),
		locations:   make(map[string]bool),
		keysByLevel: make(map[int]int),
	}
}

// Add records the acquisition of item. Progressive items raise the tier for
// their class if higher than what is already recorded; the class never
// loses a previously-seen tier. Non-progressive items increment a plain
// count. Items with Category Nothing (map, compass, rupees, etc. — spec.md
// §3) are tracked for count() but never gate reachability.
func (inv *Inventory) Add(item worldmodel.Item) {
	if class, tier, ok := worldmodel.ProgressiveInfo(item); ok {
		if tier > inv.tiers[class] {
			inv.tiers[class] = tier
		}
		return
	}
	if item == worldmodel.ItemKey {
		return // keys are tracked per-level by AddKey, not in the flat bag
	}
	inv.nonProg[item]++
}

// AddKey records a small key found in a specific dungeon level
// (SPEC_FULL.md C8: "keys are tracked per dungeon level").
func (inv *Inventory) AddKey(level int) {
	inv.keysByLevel[level]++
}

// KeysAvailable returns the number of as-yet-unused keys collected in level.
func (inv *Inventory) KeysAvailable(level int) int {
	return inv.keysByLevel[level]
}

// UseKey consumes one key from level. The caller (the validator's per-path
// BFS state) is responsible for ensuring KeysAvailable(level) > 0 first;
// this call does not touch the global bag, only the level's counter, which
// is monotone across the fixed-point but may be "spent" along a given BFS
// path — see SPEC_FULL.md's per-level key-state BFS.
func (inv *Inventory) UseKey(level int) {
	if inv.keysByLevel[level] > 0 {
		inv.keysByLevel[level]--
	}
}

// Has reports possession. For a progressive item this means tier >=
// the queried item's tier within its class; for a non-progressive item it
// is plain membership (count > 0).
func (inv *Inventory) Has(item worldmodel.Item) bool {
	if class, tier, ok := worldmodel.ProgressiveInfo(item); ok {
		return inv.tiers[class] >= tier
	}
	return inv.nonProg[item] > 0
}

// Tier returns the highest tier recorded for class (0 if none).
func (inv *Inventory) Tier(class worldmodel.ProgressiveClass) int {
	return inv.tiers[class]
}

// Count returns the number of times a non-progressive item has been
// collected. Progressive items always report 1 once any tier is held (the
// class value is a single logical item, per spec.md §4.3's "count(Sword) ==
// 1" example), 0 otherwise.
func (inv *Inventory) Count(item worldmodel.Item) int {
	if class, _, ok := worldmodel.ProgressiveInfo(item); ok {
		if inv.tiers[class] > 0 {
			return 1
		}
		return 0
	}
	return inv.nonProg[item]
}

// MarkLocationCollected records that a slot's item has already been folded
// into the bag, so the validator's fixed-point loop does not double-count a
// slot across rounds. Returns true if this call newly marked it.
func (inv *Inventory) MarkLocationCollected(key string) bool {
	if inv.locations[key] {
		return false
	}
	inv.locations[key] = true
	return true
}

// LocationCollected reports whether key was already marked, without
// mutating state — used by diagnostics that must not affect convergence.
func (inv *Inventory) LocationCollected(key string) bool {
	return inv.locations[key]
}

// HasSword reports possession of any sword tier.
func (inv *Inventory) HasSword() bool { return inv.tiers[worldmodel.ClassSword] > 0 }

// HasSwordOrWand reports a sword tier or the wand item.
func (inv *Inventory) HasSwordOrWand() bool {
	return inv.HasSword() || inv.Has(worldmodel.ItemWand)
}

// HasReusableWeapon reports a sword, wand, or red candle — the set of
// weapons usable repeatedly without pickup, per original_source's
// HasReusableWeapon.
func (inv *Inventory) HasReusableWeapon() bool {
	return inv.HasSwordOrWand() || inv.Has(worldmodel.ItemRedCandle)
}

// HasReusableWeaponOrBoomerang extends HasReusableWeapon with either
// boomerang tier, for enemies that die to a single hit.
func (inv *Inventory) HasReusableWeaponOrBoomerang() bool {
	return inv.HasReusableWeapon() || inv.HasBoomerang()
}

// HasBoomerang reports possession of either boomerang tier.
func (inv *Inventory) HasBoomerang() bool { return inv.tiers[worldmodel.ClassBoomerang] > 0 }

// HasCandle reports possession of either candle tier.
func (inv *Inventory) HasCandle() bool { return inv.tiers[worldmodel.ClassCandle] > 0 }

// HasRing reports possession of either ring tier.
func (inv *Inventory) HasRing() bool { return inv.tiers[worldmodel.ClassRing] > 0 }

// HasBowAndArrows reports the bow plus any arrow tier.
func (inv *Inventory) HasBowAndArrows() bool {
	return inv.Has(worldmodel.ItemBow) && inv.tiers[worldmodel.ClassArrow] > 0
}

// HasBowSilverArrowsAndSword is the level-9 boss gate: bow, silver arrows,
// and a sword.
func (inv *Inventory) HasBowSilverArrowsAndSword() bool {
	return inv.HasSword() && inv.Has(worldmodel.ItemBow) && inv.Has(worldmodel.ItemSilverArrow)
}

// HasRecorderAndReusableWeapon gates Digdogger-class enemies.
func (inv *Inventory) HasRecorderAndReusableWeapon() bool {
	return inv.Has(worldmodel.ItemRecorder) && inv.HasReusableWeapon()
}

// TriforceCount reports how many distinct triforce pieces have been
// collected.
func (inv *Inventory) TriforceCount() int { return inv.nonProg[worldmodel.ItemTriforcePiece] }

// HeartContainers reports the number of heart containers found, starting
// from the base 3 hearts every save file begins with.
func (inv *Inventory) HeartContainers() int {
	return 3 + inv.nonProg[worldmodel.ItemHeartContainer]
}

// ToSortedDebugString renders the inventory deterministically for logs and
// tests, sorted by a stable key so it never depends on map iteration order.
func (inv *Inventory) ToSortedDebugString() string {
	type entry struct {
		key   string
		label string
	}
	var entries []entry
	classNames := map[worldmodel.ProgressiveClass]string{
		worldmodel.ClassSword:     "sword",
		worldmodel.ClassBoomerang: "boomerang",
		worldmodel.ClassRing:      "ring",
		worldmodel.ClassCandle:    "candle",
		worldmodel.ClassArrow:     "arrow",
	}
	for class, tier := range inv.tiers {
		if tier == 0 {
			continue
		}
		name := classNames[class]
		entries = append(entries, entry{key: "0:" + name, label: name})
	}
	for item, count := range inv.nonProg {
		if count == 0 {
			continue
		}
		entries = append(entries, entry{key: "1:" + item.String(), label: item.String()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.label
	}
	return strings.Join(labels, ", ")
}
