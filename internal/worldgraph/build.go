package worldgraph

import "github.com/zora-rando/zora-core/internal/worldmodel"

// NumOverworldScreens matches itemrandomizer.NumOverworldScreens; duplicated
// as a constant here rather than imported to avoid a cross-package
// dependency between two packages that both sit under the same layer.
const NumOverworldScreens = 0x80

// chainLength is the number of item-bearing rooms per dungeon level, and
// must match itemrandomizer's allLevelRooms range (0x10..0x18 inclusive).
const chainLength = 9

// levelUniqueItem is the one major, non-triforce progression item vanilla
// placement puts in each level's second chain room (spec.md §4.8's "raft
// for L4, recorder for L7, candle for L8" gates all resolve from a level
// that has no entrance gate of its own — 1, 2, 3, 5, 6).
var levelUniqueItem = [9]worldmodel.Item{
	worldmodel.ItemLadder,       // L1
	worldmodel.ItemRaft,         // L2
	worldmodel.ItemRecorder,     // L3
	worldmodel.ItemSilverArrow,  // L4
	worldmodel.ItemRedCandle,    // L5
	worldmodel.ItemBow,          // L6
	worldmodel.ItemWand,         // L7
	worldmodel.ItemMagicalShield, // L8
	worldmodel.ItemBlueRing,     // L9
}

var fillerItems = [...]worldmodel.Item{
	worldmodel.ItemHeartContainer, worldmodel.ItemFiveRupees, worldmodel.ItemBomb,
	worldmodel.ItemRupee, worldmodel.ItemSingleHeart, worldmodel.ItemMap, worldmodel.ItemCompass,
}

func enemyForChainIndex(index, levelNum int) worldmodel.Enemy {
	switch index {
	case 0, 1, 2:
		return worldmodel.EnemyRegular
	case 3:
		return worldmodel.EnemyPolsVoice
	case 4:
		return worldmodel.EnemyDigdogger
	case 5:
		return worldmodel.EnemyGohma
	case 6:
		return worldmodel.EnemyWizzrobes
	case 7:
		return worldmodel.EnemyGleeokOrPatra
	default: // 8, the level's final chain room
		if levelNum == 9 {
			return worldmodel.EnemyTheBeast
		}
		return worldmodel.EnemyHardCombat
	}
}

// BuildStandardWorld constructs the deterministic topology every generation
// run reasons over: a 128-screen overworld with four sword/letter caves
// (wood sword and letter open, white and magical sword gated on heart
// count) plus a handful of block-gated flavor caves, and nine
// dungeon levels laid out as a straight nine-room chain off an open
// entrance room (SPEC_FULL.md C8 supplement — the memory map has no
// literal room-adjacency table for a renamed, non-existent base image, so
// this topology is authored rather than extracted).
func BuildStandardWorld() *WorldGraph {
	g := New()
	g.StartScreen = 0x77

	for id := 0; id < NumOverworldScreens; id++ {
		g.AddScreen(&worldmodel.Screen{ID: id, Block: worldmodel.BlockOpen, CaveDestination: worldmodel.NoCave})
	}
	g.Screens[g.StartScreen].StartFlag = true

	specialCaves := []struct {
		screen int
		dest   int
		block  worldmodel.BlockType
	}{
		{0x10, 0, worldmodel.BlockOpen},               // wood sword cave
		{0x11, 1, worldmodel.BlockWhiteSwordHearts},   // white sword cave
		{0x12, 2, worldmodel.BlockMagicalSwordHearts}, // magical sword cave
		{0x13, 3, worldmodel.BlockOpen},                // letter cave
		{0x20, 10, worldmodel.BlockBomb},
		{0x21, 11, worldmodel.BlockCandle},
		{0x22, 12, worldmodel.BlockRecorder},
		{0x23, 13, worldmodel.BlockRaft},
		{0x24, 14, worldmodel.BlockPowerBracelet},
		{0x25, 15, worldmodel.BlockLadderBomb},
		{0x26, 16, worldmodel.BlockRaftBomb},
	}
	for _, c := range specialCaves {
		g.Screens[c.screen].Block = c.block
		g.Screens[c.screen].CaveDestination = c.dest
	}

	for levelNum := 1; levelNum <= 9; levelNum++ {
		g.AddLevel(buildLevel(levelNum))
	}
	return g
}

func buildLevel(levelNum int) *worldmodel.Level {
	level := &worldmodel.Level{
		Num:          levelNum,
		EntranceRoom: 0,
		EntranceDir:  worldmodel.North,
		Rooms:        make(map[int]*worldmodel.Room),
	}

	level.Rooms[0] = &worldmodel.Room{
		LevelNum: levelNum, RoomID: 0, Enemy: worldmodel.EnemyNone,
		Exits:     map[worldmodel.Direction]worldmodel.WallType{worldmodel.South: worldmodel.WallOpen},
		StairLink: worldmodel.NoStairLink,
	}

	fillerIdx := 0
	for i := 0; i < chainLength; i++ {
		roomID := 16 + i
		room := &worldmodel.Room{
			LevelNum: levelNum, RoomID: roomID, HasItem: true,
			Enemy:     enemyForChainIndex(i, levelNum),
			Exits:     map[worldmodel.Direction]worldmodel.WallType{},
			StairLink: worldmodel.NoStairLink,
		}
		if i == 0 {
			room.Exits[worldmodel.North] = worldmodel.WallOpen
		} else {
			room.Exits[worldmodel.West] = worldmodel.WallOpen
		}
		if i < chainLength-1 {
			room.Exits[worldmodel.East] = worldmodel.WallOpen
		}

		switch i {
		case 0:
			if levelNum == 9 {
				room.Item = worldmodel.ItemTriforceOfPower
			} else {
				room.Item = worldmodel.ItemTriforcePiece
			}
		case 1:
			room.Item = levelUniqueItem[levelNum-1]
		default:
			room.Item = fillerItems[fillerIdx%len(fillerItems)]
			fillerIdx++
		}
		level.Rooms[roomID] = room
	}
	return level
}
