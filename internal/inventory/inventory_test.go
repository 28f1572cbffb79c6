package inventory

import (
	"testing"

	"github.com/zora-rando/zora-core/internal/worldmodel"
)

func TestSwordProgression(t *testing.T) {
	inv := New()
	inv.Add(worldmodel.ItemWoodSword)
	inv.Add(worldmodel.ItemMagicalSword)

	if !inv.Has(worldmodel.ItemWhiteSword) {
		t.Fatal("Has(WhiteSword) = false after acquiring Magical tier, want true")
	}
	if inv.Tier(worldmodel.ClassSword) != 3 {
		t.Fatalf("Tier(Sword) = %d, want 3 (Magical)", inv.Tier(worldmodel.ClassSword))
	}
	if inv.Count(worldmodel.ItemWoodSword) != 1 {
		t.Fatalf("Count(Sword) = %d, want 1", inv.Count(worldmodel.ItemWoodSword))
	}
}

func TestNonProgressiveMembership(t *testing.T) {
	inv := New()
	if inv.Has(worldmodel.ItemLadder) {
		t.Fatal("Has(Ladder) = true before acquisition")
	}
	inv.Add(worldmodel.ItemLadder)
	if !inv.Has(worldmodel.ItemLadder) {
		t.Fatal("Has(Ladder) = false after acquisition")
	}
}

func TestTierNeverDecreases(t *testing.T) {
	inv := New()
	inv.Add(worldmodel.ItemWhiteSword)
	inv.Add(worldmodel.ItemWoodSword) // out-of-order acquisition must not downgrade
	if inv.Tier(worldmodel.ClassSword) != 2 {
		t.Fatalf("Tier(Sword) = %d after regressive add, want 2 (still White)", inv.Tier(worldmodel.ClassSword))
	}
}

func TestKeysPerLevel(t *testing.T) {
	inv := New()
	inv.AddKey(3)
	inv.AddKey(3)
	inv.AddKey(4)
	if inv.KeysAvailable(3) != 2 {
		t.Fatalf("KeysAvailable(3) = %d, want 2", inv.KeysAvailable(3))
	}
	inv.UseKey(3)
	if inv.KeysAvailable(3) != 1 {
		t.Fatalf("KeysAvailable(3) after use = %d, want 1", inv.KeysAvailable(3))
	}
	if inv.KeysAvailable(4) != 1 {
		t.Fatalf("KeysAvailable(4) = %d, want 1 (unaffected by level 3 use)", inv.KeysAvailable(4))
	}
}

func TestMarkLocationCollectedIsOnceOnly(t *testing.T) {
	inv := New()
	if !inv.MarkLocationCollected("cave:00:0") {
		t.Fatal("first MarkLocationCollected returned false")
	}
	if inv.MarkLocationCollected("cave:00:0") {
		t.Fatal("second MarkLocationCollected on same key returned true")
	}
}

func TestBossGates(t *testing.T) {
	inv := New()
	if inv.HasBowSilverArrowsAndSword() {
		t.Fatal("empty inventory passes boss gate")
	}
	inv.Add(worldmodel.ItemWoodSword)
	inv.Add(worldmodel.ItemBow)
	inv.Add(worldmodel.ItemSilverArrow)
	if !inv.HasBowSilverArrowsAndSword() {
		t.Fatal("full boss kit fails boss gate")
	}
}
