// Package worldmodel defines the tagged-variant types shared by every
// component that reasons about the game world: items, locations, screens,
// levels and rooms (spec.md §3).
package worldmodel

// Item is a stable identifier for one of the ~30 item kinds the randomizer
// places. Values are grounded on original_source's Item enum
// (randomizer_constants.py) but kept deliberately small — this is a closed,
// stable set, so a plain int-backed type beats a stringly-typed category.
type Item uint8

const (
	ItemNone Item = iota
	ItemWoodSword
	ItemWhiteSword
	ItemMagicalSword
	ItemWoodBoomerang
	ItemMagicalBoomerang
	ItemBlueRing
	ItemRedRing
	ItemBlueCandle
	ItemRedCandle
	ItemWoodArrow
	ItemSilverArrow
	ItemBow
	ItemRaft
	ItemLadder
	ItemRecorder
	ItemBait
	ItemPowerBracelet
	ItemLetter
	ItemWand
	ItemKey
	ItemHeartContainer
	ItemTriforcePiece
	ItemRupee
	ItemBomb
	ItemMap
	ItemCompass
	ItemMagicalShield
	ItemFiveRupees
	ItemSingleHeart
	ItemTriforceOfPower

	// Virtual items; never placed, and not consulted by the validator.
	ItemBeastDefeated
	ItemKidnappedRescued
	ItemLostHillsHint
	ItemDeadWoodsHint
)

var itemNames = map[Item]string{
	ItemNone:             "none",
	ItemWoodSword:        "wood_sword",
	ItemWhiteSword:       "white_sword",
	ItemMagicalSword:     "magical_sword",
	ItemWoodBoomerang:    "wood_boomerang",
	ItemMagicalBoomerang: "magical_boomerang",
	ItemBlueRing:         "blue_ring",
	ItemRedRing:          "red_ring",
	ItemBlueCandle:       "blue_candle",
	ItemRedCandle:        "red_candle",
	ItemWoodArrow:        "wood_arrow",
	ItemSilverArrow:      "silver_arrow",
	ItemBow:              "bow",
	ItemRaft:             "raft",
	ItemLadder:           "ladder",
	ItemRecorder:         "recorder",
	ItemBait:             "bait",
	ItemPowerBracelet:    "power_bracelet",
	ItemLetter:           "letter",
	ItemWand:             "wand",
	ItemKey:              "key",
	ItemHeartContainer:   "heart_container",
	ItemTriforcePiece:    "triforce_piece",
	ItemRupee:            "rupee",
	ItemBomb:             "bomb",
	ItemMap:              "map",
	ItemCompass:          "compass",
	ItemMagicalShield:    "magical_shield",
	ItemFiveRupees:       "five_rupees",
	ItemSingleHeart:      "single_heart",
	ItemTriforceOfPower:  "triforce_of_power",
	ItemBeastDefeated:    "$beast_defeated",
	ItemKidnappedRescued: "$kidnapped_rescued",
	ItemLostHillsHint:    "$lost_hills_hint",
	ItemDeadWoodsHint:    "$dead_woods_hint",
}

func (i Item) String() string {
	if name, ok := itemNames[i]; ok {
		return name
	}
	return "unknown_item"
}

// ProgressiveClass names a totally ordered tier ladder (spec.md §4.3).
type ProgressiveClass uint8

const (
	ClassNone ProgressiveClass = iota
	ClassSword
	ClassBoomerang
	ClassRing
	ClassCandle
	ClassArrow
)

// progressiveTiers maps each progressive item to (class, tier). Tier 0 is
// reserved for "no tier" so the zero value of an int tier map means absent.
var progressiveTiers = map[Item]struct {
	Class ProgressiveClass
	Tier  int
}{
	ItemWoodSword:        {ClassSword, 1},
	ItemWhiteSword:       {ClassSword, 2},
	ItemMagicalSword:     {ClassSword, 3},
	ItemWoodBoomerang:    {ClassBoomerang, 1},
	ItemMagicalBoomerang: {ClassBoomerang, 2},
	ItemBlueRing:         {ClassRing, 1},
	ItemRedRing:          {ClassRing, 2},
	ItemBlueCandle:       {ClassCandle, 1},
	ItemRedCandle:        {ClassCandle, 2},
	ItemWoodArrow:        {ClassArrow, 1},
	ItemSilverArrow:      {ClassArrow, 2},
}

// ProgressiveInfo reports whether item belongs to a progressive class and,
// if so, its class and tier.
func ProgressiveInfo(item Item) (class ProgressiveClass, tier int, ok bool) {
	info, ok := progressiveTiers[item]
	if !ok {
		return ClassNone, 0, false
	}
	return info.Class, info.Tier, true
}

// Category classifies an item for constraint purposes (spec.md §3).
type Category uint8

const (
	CategoryNothing Category = iota
	CategoryMajor
	CategoryMinor
	CategoryDungeonHeart
	CategoryShop
)

var itemCategories = map[Item]Category{
	ItemWoodSword:        CategoryMajor,
	ItemWhiteSword:       CategoryMajor,
	ItemMagicalSword:     CategoryMajor,
	ItemWoodBoomerang:    CategoryMajor,
	ItemMagicalBoomerang: CategoryMajor,
	ItemRaft:             CategoryMajor,
	ItemLadder:           CategoryMajor,
	ItemRecorder:         CategoryMajor,
	ItemBow:              CategoryMajor,
	ItemPowerBracelet:    CategoryMajor,
	ItemWand:             CategoryMajor,
	ItemLetter:           CategoryMajor,
	ItemBait:             CategoryMajor,
	ItemSilverArrow:      CategoryMajor,
	ItemTriforcePiece:    CategoryDungeonHeart,
	ItemHeartContainer:   CategoryDungeonHeart,
	ItemBlueRing:         CategoryShop,
	ItemRedRing:          CategoryShop,
	ItemBlueCandle:       CategoryShop,
	ItemRedCandle:        CategoryShop,
	ItemWoodArrow:        CategoryShop,
}

// CategoryOf returns the constraint category of an item, defaulting to
// CategoryMinor for ordinary consumables and CategoryNothing for fillers
// that were never tracked in the original item set.
func CategoryOf(item Item) Category {
	if cat, ok := itemCategories[item]; ok {
		return cat
	}
	switch item {
	case ItemNone, ItemMap, ItemCompass, ItemMagicalShield, ItemBomb,
		ItemFiveRupees, ItemSingleHeart, ItemTriforceOfPower, ItemRupee, ItemKey,
		ItemBeastDefeated, ItemKidnappedRescued, ItemLostHillsHint, ItemDeadWoodsHint:
		return CategoryNothing
	}
	return CategoryMinor
}

// IsRequired reports whether item is one of the items invariant 3 demands be
// reachable: triforce pieces, bow, silver arrow, ladder, raft, recorder, and
// any sword tier.
func IsRequired(item Item) bool {
	switch item {
	case ItemTriforcePiece, ItemBow, ItemSilverArrow, ItemLadder, ItemRaft,
		ItemRecorder, ItemWoodSword, ItemWhiteSword, ItemMagicalSword:
		return true
	}
	return false
}
