package worldmodel

import (
	"fmt"
	"sort"
)

// LocationKind tags the disjoint kinds of item slot spec.md §3 enumerates.
type LocationKind uint8

const (
	LocationOverworldCave LocationKind = iota
	LocationDungeonRoom
	LocationArmosSlot
	LocationCoastSlot
	LocationShopSlot
)

// Location is every mutable item slot in the game. It is a tagged variant:
// only the fields relevant to Kind are meaningful, matching spec.md §3
// exactly rather than collapsing everything into a single stringly-typed
// key.
type Location struct {
	Kind LocationKind

	// OverworldCave
	ScreenID  int
	SlotIndex int // 0,1,2 for caves and shops alike

	// DungeonRoom
	Level  int
	RoomID int

	// ShopSlot
	ShopID int
}

// NewOverworldCave builds a cave item-slot location.
func NewOverworldCave(screenID, slotIndex int) Location {
	return Location{Kind: LocationOverworldCave, ScreenID: screenID, SlotIndex: slotIndex}
}

// NewDungeonRoom builds a dungeon item-room location.
func NewDungeonRoom(level, roomID int) Location {
	return Location{Kind: LocationDungeonRoom, Level: level, RoomID: roomID}
}

// NewArmosSlot builds the singleton Armos item location.
func NewArmosSlot() Location { return Location{Kind: LocationArmosSlot} }

// NewCoastSlot builds the singleton coast item location.
func NewCoastSlot() Location { return Location{Kind: LocationCoastSlot} }

// NewShopSlot builds a shop item-slot location.
func NewShopSlot(shopID, slotIndex int) Location {
	return Location{Kind: LocationShopSlot, ShopID: shopID, SlotIndex: slotIndex}
}

// Key returns a value suitable for use as a map key and for stable sorting;
// Location is already comparable, but Key gives a canonical string used
// wherever a deterministic sort order over locations is required (spec.md
// §4.1's "convert to a sequence sorted by a stable key" rule).
func (l Location) Key() string {
	switch l.Kind {
	case LocationOverworldCave:
		return fmt.Sprintf("cave:%02x:%d", l.ScreenID, l.SlotIndex)
	case LocationDungeonRoom:
		return fmt.Sprintf("room:%d:%02x", l.Level, l.RoomID)
	case LocationArmosSlot:
		return "armos"
	case LocationCoastSlot:
		return "coast"
	case LocationShopSlot:
		return fmt.Sprintf("shop:%d:%d", l.ShopID, l.SlotIndex)
	}
	return "invalid"
}

func (l Location) String() string { return l.Key() }

// SortLocations returns a copy of locs sorted by Key, the only order in
// which a Location sequence may be fed to the RNG.
func SortLocations(locs []Location) []Location {
	out := make([]Location, len(locs))
	copy(out, locs)
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}
