package validator

import (
	"testing"

	"github.com/zora-rando/zora-core/internal/flags"
	"github.com/zora-rando/zora-core/internal/inventory"
	"github.com/zora-rando/zora-core/internal/worldmodel"
)

func TestCanDefeatEnemiesWizzrobesRequiresSword(t *testing.T) {
	inv := inventory.New()
	inv.Add(worldmodel.ItemRedCandle)
	inv.Add(worldmodel.ItemWand)
	if canDefeatEnemies(worldmodel.EnemyWizzrobes, inv, nil) {
		t.Fatal("candle and wand alone should not clear a Wizzrobes room, only a sword does")
	}
	inv.Add(worldmodel.ItemWoodSword)
	if !canDefeatEnemies(worldmodel.EnemyWizzrobes, inv, nil) {
		t.Fatal("a sword should clear a Wizzrobes room")
	}
}

func TestCanDefeatEnemiesGleeokOrPatraAcceptsWand(t *testing.T) {
	inv := inventory.New()
	inv.Add(worldmodel.ItemWand)
	if !canDefeatEnemies(worldmodel.EnemyGleeokOrPatra, inv, nil) {
		t.Fatal("a wand-only inventory should clear a Gleeok/Patra room")
	}
}

func TestCanDefeatEnemiesGleeokOrPatraRejectsCandle(t *testing.T) {
	inv := inventory.New()
	inv.Add(worldmodel.ItemRedCandle)
	if canDefeatEnemies(worldmodel.EnemyGleeokOrPatra, inv, nil) {
		t.Fatal("a candle-only inventory should not clear a Gleeok/Patra room")
	}
}

func TestCanDefeatEnemiesPolsVoiceAcceptsSwordOrWand(t *testing.T) {
	inv := inventory.New()
	inv.Add(worldmodel.ItemWoodSword)
	if !canDefeatEnemies(worldmodel.EnemyPolsVoice, inv, nil) {
		t.Fatal("a sword should clear a Pols Voice room")
	}
}

func TestCanDefeatEnemiesPolsVoiceRejectsRecorderAlone(t *testing.T) {
	inv := inventory.New()
	inv.Add(worldmodel.ItemRecorder)
	if canDefeatEnemies(worldmodel.EnemyPolsVoice, inv, nil) {
		t.Fatal("the recorder is not part of the Pols Voice gate and should not clear the room alone")
	}
}

func TestCanDefeatEnemiesPolsVoiceAcceptsBowAndArrows(t *testing.T) {
	inv := inventory.New()
	inv.Add(worldmodel.ItemBow)
	inv.Add(worldmodel.ItemWoodArrow)
	if !canDefeatEnemies(worldmodel.EnemyPolsVoice, inv, nil) {
		t.Fatal("bow and arrows should clear a Pols Voice room")
	}
}

func TestCanDefeatEnemiesRegularNeedsReusableWeapon(t *testing.T) {
	inv := inventory.New()
	inv.Add(worldmodel.ItemWoodBoomerang)
	if canDefeatEnemies(worldmodel.EnemyRegular, inv, nil) {
		t.Fatal("a boomerang alone should not clear a regular enemy room")
	}
	inv.Add(worldmodel.ItemWoodSword)
	if !canDefeatEnemies(worldmodel.EnemyRegular, inv, nil) {
		t.Fatal("a sword should clear a regular enemy room")
	}
}

func TestCanDefeatEnemiesZeroHPAcceptsBoomerangAlone(t *testing.T) {
	inv := inventory.New()
	inv.Add(worldmodel.ItemWoodBoomerang)
	if !canDefeatEnemies(worldmodel.EnemyZeroHP, inv, nil) {
		t.Fatal("a boomerang alone should clear a zero-HP enemy room")
	}
}

func TestCanDefeatEnemiesHardCombatWithoutFlagFallsBackToReusableWeapon(t *testing.T) {
	inv := inventory.New()
	inv.Add(worldmodel.ItemRedCandle)
	if !canDefeatEnemies(worldmodel.EnemyHardCombat, inv, nil) {
		t.Fatal("with avoid_required_hard_combat unset, a reusable weapon should clear a hard combat room")
	}
}

func TestCanDefeatEnemiesHardCombatWithFlagRequiresRingAndWhiteSword(t *testing.T) {
	f := flags.New()
	f.Set("avoid_required_hard_combat", true)

	inv := inventory.New()
	inv.Add(worldmodel.ItemWoodSword)
	if canDefeatEnemies(worldmodel.EnemyHardCombat, inv, f) {
		t.Fatal("with the flag set, a sword alone (no ring, wrong tier) should not clear a hard combat room")
	}

	inv.Add(worldmodel.ItemWhiteSword)
	if canDefeatEnemies(worldmodel.EnemyHardCombat, inv, f) {
		t.Fatal("with the flag set, a white sword without a ring should not clear a hard combat room")
	}

	inv.Add(worldmodel.ItemBlueRing)
	if !canDefeatEnemies(worldmodel.EnemyHardCombat, inv, f) {
		t.Fatal("with the flag set, a ring plus the white sword should clear a hard combat room")
	}
}

func TestCanAccessScreenWhiteSwordCaveNeedsFiveHearts(t *testing.T) {
	inv := inventory.New()
	if canAccessScreen(worldmodel.BlockWhiteSwordHearts, inv) {
		t.Fatal("the base 3 hearts should not satisfy the white sword cave's 5-heart gate")
	}
	inv.Add(worldmodel.ItemHeartContainer)
	inv.Add(worldmodel.ItemHeartContainer)
	if !canAccessScreen(worldmodel.BlockWhiteSwordHearts, inv) {
		t.Fatal("3 base hearts plus 2 heart containers should satisfy the white sword cave's 5-heart gate")
	}
}

func TestCanAccessScreenMagicalSwordCaveNeedsTwelveHearts(t *testing.T) {
	inv := inventory.New()
	for i := 0; i < 8; i++ {
		inv.Add(worldmodel.ItemHeartContainer)
	}
	if canAccessScreen(worldmodel.BlockMagicalSwordHearts, inv) {
		t.Fatal("11 hearts should not satisfy the magical sword cave's 12-heart gate")
	}
	inv.Add(worldmodel.ItemHeartContainer)
	if !canAccessScreen(worldmodel.BlockMagicalSwordHearts, inv) {
		t.Fatal("12 hearts should satisfy the magical sword cave's 12-heart gate")
	}
}
