// Package memmap declares the base image's memory map (spec.md §6): the
// region table internal/romtable consults for bounds checking on every
// write, grounded on original_source's rom_data_specs.py /
// rom_config.py region tables.
package memmap

// RegionKind classifies the kind of entity a region holds, mirroring
// spec.md §6's "entity-kind (item_slot, enemy_group, pointer, hint_text,
// etc.)".
type RegionKind uint8

const (
	KindItemSlot RegionKind = iota
	KindEnemyGroup
	KindPointer
	KindHintText
	KindShopPricing
	KindStartScreen
	KindTitleString
	KindHeader
)

func (k RegionKind) String() string {
	switch k {
	case KindItemSlot:
		return "item_slot"
	case KindEnemyGroup:
		return "enemy_group"
	case KindPointer:
		return "pointer"
	case KindHintText:
		return "hint_text"
	case KindShopPricing:
		return "shop_pricing"
	case KindStartScreen:
		return "start_screen"
	case KindTitleString:
		return "title_string"
	case KindHeader:
		return "header"
	default:
		return "unknown"
	}
}

// AccessPolicy governs whether a region may be read, written, or both.
// Regions not declared in the map at all are implicitly read-only
// (spec.md §6: "regions not declared are read-only").
type AccessPolicy uint8

const (
	PolicyReadOnly AccessPolicy = iota
	PolicyReadWrite
)

// Region is one declarative entry in the memory map.
type Region struct {
	Name   string
	Offset int
	Length int
	Kind   RegionKind
	Policy AccessPolicy
}

// Contains reports whether offset falls within the region.
func (r Region) Contains(offset int) bool {
	return offset >= r.Offset && offset < r.Offset+r.Length
}

// HeaderLength is the fixed iNES-style header spec.md §6 forbids writing to.
const HeaderLength = 16

// BaseImageSize is the exact expected length of a valid base image
// (spec.md §6).
const BaseImageSize = 131088

// Map is the declarative region table for the single documented base
// image. Offsets are file offsets (header-inclusive, spec.md §6).
var Map = []Region{
	{Name: "header", Offset: 0, Length: HeaderLength, Kind: KindHeader, Policy: PolicyReadOnly},

	// Overworld: 128 screens, one cave-item-bearing pointer table (3 item
	// bytes per screen for the caves that have them) plus an enemy-group
	// byte per screen and a start-screen pointer.
	{Name: "overworld_cave_items", Offset: 0x10 + 0x0100, Length: 0x80 * 3, Kind: KindItemSlot, Policy: PolicyReadWrite},
	{Name: "overworld_enemy_groups", Offset: 0x10 + 0x0300, Length: 0x80, Kind: KindEnemyGroup, Policy: PolicyReadWrite},
	{Name: "overworld_screen_pointers", Offset: 0x10 + 0x0380, Length: 0x80, Kind: KindPointer, Policy: PolicyReadWrite},
	{Name: "start_screen", Offset: 0x10 + 0x0400, Length: 1, Kind: KindStartScreen, Policy: PolicyReadWrite},

	// Armos and coast singleton slots.
	{Name: "armos_item", Offset: 0x10 + 0x0401, Length: 1, Kind: KindItemSlot, Policy: PolicyReadWrite},
	{Name: "coast_item", Offset: 0x10 + 0x0402, Length: 1, Kind: KindItemSlot, Policy: PolicyReadWrite},

	// Shops: up to 16 shops, 3 items + 3 prices each.
	{Name: "shop_items", Offset: 0x10 + 0x0500, Length: 16 * 3, Kind: KindItemSlot, Policy: PolicyReadWrite},
	{Name: "shop_prices", Offset: 0x10 + 0x0530, Length: 16 * 3, Kind: KindShopPricing, Policy: PolicyReadWrite},

	// Dungeons: 9 levels, up to 128 rooms each, one item byte per room plus
	// compass/stairway pointers.
	{Name: "dungeon_room_items", Offset: 0x10 + 0x1000, Length: 9 * 0x80, Kind: KindItemSlot, Policy: PolicyReadWrite},
	{Name: "dungeon_compass_pointers", Offset: 0x10 + 0x1480, Length: 9 * 2, Kind: KindPointer, Policy: PolicyReadWrite},

	// Hint text and the title-string / verification-code region.
	{Name: "hint_text", Offset: 0x10 + 0x1500, Length: 0x400, Kind: KindHintText, Policy: PolicyReadWrite},
	{Name: "title_string", Offset: 0x10 + 0x1900, Length: 8, Kind: KindTitleString, Policy: PolicyReadWrite},
}

// Find returns the region declaring offset, if any.
func Find(offset int) (Region, bool) {
	for _, r := range Map {
		if r.Contains(offset) {
			return r, true
		}
	}
	return Region{}, false
}

// IsWritable reports whether offset lies in a declared, writable region.
func IsWritable(offset int) bool {
	r, ok := Find(offset)
	return ok && r.Policy == PolicyReadWrite
}
