package randomizer

import (
	"github.com/zora-rando/zora-core/internal/romtable"
	"github.com/zora-rando/zora-core/internal/worldgraph"
	"github.com/zora-rando/zora-core/internal/worldmodel"
)

// SeedVanillaWorld writes the baseline item placement worldgraph.
// BuildStandardWorld's topology expects to find, since this repository has
// no literal base ROM asset to read a vanilla layout from (spec.md's base
// image is caller-supplied and, for this renamed system, starts as an
// otherwise-empty buffer). Every location the item randomizer might shuffle
// is populated first so ActiveLocations always has a real value to permute.
func SeedVanillaWorld(g *worldgraph.WorldGraph, table *romtable.Table) error {
	for _, screen := range g.Screens {
		if screen.CaveDestination == worldmodel.NoCave {
			continue
		}
		item := vanillaCaveItem(screen.CaveDestination)
		loc := worldmodel.NewOverworldCave(screen.CaveDestination, 0)
		if err := table.SetItem(loc, item); err != nil {
			return err
		}
		for slot := 1; slot < 3; slot++ {
			if err := table.SetItem(worldmodel.NewOverworldCave(screen.CaveDestination, slot), worldmodel.ItemRupee); err != nil {
				return err
			}
		}
	}

	if err := table.SetItem(worldmodel.NewArmosSlot(), worldmodel.ItemPowerBracelet); err != nil {
		return err
	}
	if err := table.SetItem(worldmodel.NewCoastSlot(), worldmodel.ItemFiveRupees); err != nil {
		return err
	}

	for _, slot := range vanillaShopSlots {
		if err := table.SetItem(worldmodel.NewShopSlot(slot.shopID, slot.slotIndex), slot.item); err != nil {
			return err
		}
		if err := table.SetShopPrice(slot.shopID, slot.slotIndex, slot.price); err != nil {
			return err
		}
	}

	for _, level := range g.Levels {
		for _, room := range level.Rooms {
			if !room.HasItem {
				continue
			}
			if err := table.SetItem(worldmodel.NewDungeonRoom(level.Num, room.RoomID), room.Item); err != nil {
				return err
			}
		}
	}
	return nil
}

// vanillaShopSlot pairs a shop slot's vanilla item and rupee price.
type vanillaShopSlot struct {
	shopID, slotIndex int
	item              worldmodel.Item
	price             byte
}

// vanillaShopSlots covers every shop slot itemrandomizer's shuffle_shop_*
// flags reference (internal/itemrandomizer/itemrandomizer.go's sources
// table), so enabling any one of those flags always permutes real items
// instead of the zero value an unseeded slot would read back as.
var vanillaShopSlots = []vanillaShopSlot{
	{shopID: 0, slotIndex: 0, item: worldmodel.ItemWoodArrow, price: 80},
	{shopID: 0, slotIndex: 1, item: worldmodel.ItemBlueCandle, price: 60},
	{shopID: 0, slotIndex: 2, item: worldmodel.ItemBlueRing, price: 250},
	{shopID: 1, slotIndex: 0, item: worldmodel.ItemWoodSword, price: 130},
	{shopID: 1, slotIndex: 1, item: worldmodel.ItemBlueRing, price: 250},
	{shopID: 1, slotIndex: 2, item: worldmodel.ItemBait, price: 60},
}

// vanillaCaveItem returns the vanilla item for one of the special cave
// destinations worldgraph.BuildStandardWorld declares; flavor caves without
// a scripted item (the bomb/candle/etc. gated ones) get a rupee.
func vanillaCaveItem(destination int) worldmodel.Item {
	switch destination {
	case 0:
		return worldmodel.ItemWoodSword
	case 1:
		return worldmodel.ItemWhiteSword
	case 2:
		return worldmodel.ItemMagicalSword
	case 3:
		return worldmodel.ItemLetter
	default:
		return worldmodel.ItemRupee
	}
}
