// Package romtable is the Data Table of spec.md §4.2 (C2): a parsed,
// mutable view over a base image, offering typed accessors for every field
// the randomizer touches, plus a pending-writes overlay drained into a
// patchengine.Patch.
package romtable

import (
	"github.com/zora-rando/zora-core/internal/applog"
	"github.com/zora-rando/zora-core/internal/memmap"
	"github.com/zora-rando/zora-core/internal/worldmodel"
	"github.com/zora-rando/zora-core/internal/zoraerr"
)

// Table is constructed once (read-only) from the base image and then cloned
// into a mutable working copy per generation run (spec.md §3 lifecycle,
// §5 resource policy: "each generation clones only the mutated regions").
type Table struct {
	base    []byte          // shared, never mutated after New
	writes  map[int]byte    // pending overlay: offset -> byte
	visited map[string]bool // room/screen visit markers used by the validator
}

// New constructs a Table from a base image already verified to be
// memmap.BaseImageSize bytes with the expected header (the caller is
// responsible for that check via zoraerr.InvalidBaseImage; New itself only
// asserts the length invariant since it has no header contents to compare
// against without the base-image contract living outside this package).
func New(base []byte) (*Table, error) {
	if len(base) != memmap.BaseImageSize {
		return nil, &zoraerr.InvalidBaseImage{Reason: "unexpected length"}
	}
	return &Table{
		base:    base,
		writes:  make(map[int]byte),
		visited: make(map[string]bool),
	}, nil
}

// Clone returns a mutable working copy sharing the immutable base buffer by
// reference and copying only the pending-writes overlay (copy-on-write at
// the field level, spec.md §5).
func (t *Table) Clone() *Table {
	writes := make(map[int]byte, len(t.writes))
	for k, v := range t.writes {
		writes[k] = v
	}
	return &Table{base: t.base, writes: writes, visited: make(map[string]bool)}
}

// readByte returns the byte at offset from the pending overlay if present,
// otherwise from the base image. Reads never panic on an out-of-range or
// undeclared offset — they report ok=false (spec.md §4.2 boundary policy).
func (t *Table) readByte(offset int) (byte, bool) {
	if b, ok := t.writes[offset]; ok {
		return b, true
	}
	if offset < 0 || offset >= len(t.base) {
		return 0, false
	}
	return t.base[offset], true
}

// writeByte sets offset to value, enforcing the declared-region policy.
// Writing the same byte twice is a no-op; writing a different byte to an
// already-written offset overrides it (spec.md §4.2 idempotence). Writes
// outside a declared writable region raise OutOfRegion; writes into the
// 16-byte header always do, since it is declared read-only.
func (t *Table) writeByte(offset int, value byte) error {
	if !memmap.IsWritable(offset) {
		return &zoraerr.OutOfRegion{Offset: offset}
	}
	if existing, ok := t.writes[offset]; ok && existing == value {
		return nil
	}
	t.writes[offset] = value
	return nil
}

// DrainWrites returns a copy of the pending overlay as an offset -> byte
// map, which the caller folds into a C9 Patch. It does not clear the
// overlay — the Table keeps its own working state, so repeated calls each
// return everything written so far.
func (t *Table) DrainWrites() map[int]byte {
	out := make(map[int]byte, len(t.writes))
	for k, v := range t.writes {
		out[k] = v
	}
	return out
}

// --- Item slot accessors (spec.md §4.2: get_item/set_item) ---

func offsetForLocation(loc worldmodel.Location) (int, bool) {
	switch loc.Kind {
	case worldmodel.LocationOverworldCave:
		region := findRegion("overworld_cave_items")
		return region.Offset + loc.ScreenID*3 + loc.SlotIndex, true
	case worldmodel.LocationDungeonRoom:
		region := findRegion("dungeon_room_items")
		if loc.Level < 1 || loc.Level > 9 {
			return 0, false
		}
		return region.Offset + (loc.Level-1)*0x80 + loc.RoomID, true
	case worldmodel.LocationArmosSlot:
		return findRegion("armos_item").Offset, true
	case worldmodel.LocationCoastSlot:
		return findRegion("coast_item").Offset, true
	case worldmodel.LocationShopSlot:
		region := findRegion("shop_items")
		return region.Offset + loc.ShopID*3 + loc.SlotIndex, true
	default:
		return 0, false
	}
}

func findRegion(name string) memmap.Region {
	for _, r := range memmap.Map {
		if r.Name == name {
			return r
		}
	}
	// Every name used by offsetForLocation is declared in memmap.Map; a miss
	// here means the region table and this package drifted out of sync.
	panic("romtable: undeclared memmap region " + name)
}

// GetItem returns the item currently occupying loc. Unknown/out-of-bounds
// locations return worldmodel.ItemNone with ok=false, never panicking
// (spec.md §4.2 boundary policy).
func (t *Table) GetItem(loc worldmodel.Location) (worldmodel.Item, bool) {
	offset, ok := offsetForLocation(loc)
	if !ok {
		return worldmodel.ItemNone, false
	}
	b, ok := t.readByte(offset)
	if !ok {
		return worldmodel.ItemNone, false
	}
	return worldmodel.Item(b), true
}

// SetItem writes item into loc's backing offset. Returns OutOfRegion if the
// offset is not writable (a programming error per spec.md §4.2/§7).
func (t *Table) SetItem(loc worldmodel.Location, item worldmodel.Item) error {
	offset, ok := offsetForLocation(loc)
	if !ok {
		return &zoraerr.OutOfRegion{Offset: -1}
	}
	if err := t.writeByte(offset, byte(item)); err != nil {
		return err
	}
	applog.L().WithField("location", loc.Key()).WithField("item", item.String()).Debug("placed item")
	return nil
}

// --- Enemy group / start-screen accessors (C7) ---

// GetEnemyGroup returns the enemy-group byte for an overworld screen.
func (t *Table) GetEnemyGroup(screenID int) (byte, bool) {
	region := findRegion("overworld_enemy_groups")
	return t.readByte(region.Offset + screenID)
}

// SetEnemyGroup writes an overworld screen's enemy-group byte.
func (t *Table) SetEnemyGroup(screenID int, value byte) error {
	region := findRegion("overworld_enemy_groups")
	return t.writeByte(region.Offset+screenID, value)
}

// SwapEnemyGroups exchanges the enemy-group bytes of two screens
// atomically, as C7's start-screen shuffle requires.
func (t *Table) SwapEnemyGroups(screenA, screenB int) error {
	a, aOK := t.GetEnemyGroup(screenA)
	b, bOK := t.GetEnemyGroup(screenB)
	if !aOK || !bOK {
		return &zoraerr.OutOfRegion{Offset: -1}
	}
	if err := t.SetEnemyGroup(screenA, b); err != nil {
		return err
	}
	return t.SetEnemyGroup(screenB, a)
}

// GetStartScreen returns the overworld screen Link's save file spawns on.
func (t *Table) GetStartScreen() (byte, bool) {
	region := findRegion("start_screen")
	return t.readByte(region.Offset)
}

// SetStartScreen writes the spawn screen.
func (t *Table) SetStartScreen(screenID byte) error {
	region := findRegion("start_screen")
	return t.writeByte(region.Offset, screenID)
}

// --- Compass pointer accessors ---

// GetCompassPointer returns the 16-bit little-endian compass pointer for a
// dungeon level (1..9).
func (t *Table) GetCompassPointer(level int) (uint16, bool) {
	region := findRegion("dungeon_compass_pointers")
	lo, ok1 := t.readByte(region.Offset + (level-1)*2)
	hi, ok2 := t.readByte(region.Offset + (level-1)*2 + 1)
	if !ok1 || !ok2 {
		return 0, false
	}
	return uint16(lo) | uint16(hi)<<8, true
}

// SetCompassPointer writes a dungeon level's compass pointer.
func (t *Table) SetCompassPointer(level int, ptr uint16) error {
	region := findRegion("dungeon_compass_pointers")
	if err := t.writeByte(region.Offset+(level-1)*2, byte(ptr&0xFF)); err != nil {
		return err
	}
	return t.writeByte(region.Offset+(level-1)*2+1, byte(ptr>>8))
}

// SwapCompassPointerReferences exchanges from and to wherever either appears
// as a dungeon level's compass pointer, across all 9 levels. Used when a
// screen id is relocated (e.g. the start-screen shuffle) so any compass
// still pointing at the old screen id follows it to the new one.
func (t *Table) SwapCompassPointerReferences(from, to uint16) error {
	for level := 1; level <= 9; level++ {
		ptr, ok := t.GetCompassPointer(level)
		if !ok {
			continue
		}
		switch ptr {
		case from:
			if err := t.SetCompassPointer(level, to); err != nil {
				return err
			}
		case to:
			if err := t.SetCompassPointer(level, from); err != nil {
				return err
			}
		}
	}
	return nil
}

// --- Shop pricing ---

// GetShopPrice returns the rupee price of a shop slot.
func (t *Table) GetShopPrice(shopID, slotIndex int) (byte, bool) {
	region := findRegion("shop_prices")
	return t.readByte(region.Offset + shopID*3 + slotIndex)
}

// SetShopPrice writes a shop slot's rupee price.
func (t *Table) SetShopPrice(shopID, slotIndex int, price byte) error {
	region := findRegion("shop_prices")
	return t.writeByte(region.Offset+shopID*3+slotIndex, price)
}

// --- Hint text ---

// SetHintText writes a null-terminated hint-text buffer at a given index
// within the declared hint_text region.
func (t *Table) SetHintText(index int, text []byte) error {
	region := findRegion("hint_text")
	if index < 0 || index+len(text) > region.Length {
		return &zoraerr.OutOfRegion{Offset: region.Offset + index}
	}
	for i, b := range text {
		if err := t.writeByte(region.Offset+index+i, b); err != nil {
			return err
		}
	}
	return nil
}

// --- Title string / verification code ---

// SetTitleString writes the mandatory title-string metadata every emitted
// image carries (spec.md §8 scenario S1).
func (t *Table) SetTitleString(bytes []byte) error {
	region := findRegion("title_string")
	for i := 0; i < region.Length; i++ {
		var b byte
		if i < len(bytes) {
			b = bytes[i]
		}
		if err := t.writeByte(region.Offset+i, b); err != nil {
			return err
		}
	}
	return nil
}

// --- Visit markers used by the validator's fixed-point BFS ---

// MarkVisited records that a room/screen key has been visited during the
// current reachability pass.
func (t *Table) MarkVisited(key string) { t.visited[key] = true }

// IsVisited reports whether key was already visited this pass.
func (t *Table) IsVisited(key string) bool { return t.visited[key] }

// ClearVisitMarkers resets visit state between validator fixed-point
// rounds, mirroring original_source's ClearAllVisitMarkers.
func (t *Table) ClearVisitMarkers() { t.visited = make(map[string]bool) }

// AllOverworldCaveLocations returns every overworld-cave item slot in
// screen-then-slot order, a stable sort key safe to feed the RNG.
func AllOverworldCaveLocations(numScreens int) []worldmodel.Location {
	locs := make([]worldmodel.Location, 0, numScreens*3)
	for screen := 0; screen < numScreens; screen++ {
		for slot := 0; slot < 3; slot++ {
			locs = append(locs, worldmodel.NewOverworldCave(screen, slot))
		}
	}
	return worldmodel.SortLocations(locs)
}
