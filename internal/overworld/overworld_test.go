package overworld

import (
	"testing"

	"github.com/zora-rando/zora-core/internal/memmap"
	"github.com/zora-rando/zora-core/internal/romtable"
	"github.com/zora-rando/zora-core/internal/rng"
)

func TestShuffleStartScreenSwapsEnemyGroups(t *testing.T) {
	base := make([]byte, memmap.BaseImageSize)
	tbl, err := romtable.New(base)
	if err != nil {
		t.Fatal(err)
	}
	if err := tbl.SetStartScreen(0x10); err != nil {
		t.Fatal(err)
	}
	if err := tbl.SetEnemyGroup(0x10, 0x05); err != nil {
		t.Fatal(err)
	}
	if err := tbl.SetEnemyGroup(0x20, 0x00); err != nil {
		t.Fatal(err)
	}

	terrain := map[int]ScreenTerrain{0x20: TerrainAllowsSpawn}
	r := rng.New(1)

	from, to, err := ShuffleStartScreen(tbl, r, terrain, 0x80)
	if err != nil {
		t.Fatalf("ShuffleStartScreen: %v", err)
	}
	if from != 0x10 || to != 0x20 {
		t.Fatalf("from=%#x to=%#x, want 0x10 -> 0x20", from, to)
	}

	newStartGroup, _ := tbl.GetEnemyGroup(to)
	oldScreenGroup, _ := tbl.GetEnemyGroup(from)
	if newStartGroup != 0x05 {
		t.Fatalf("new start screen enemy group = %#x, want the old start's 0x05", newStartGroup)
	}
	if oldScreenGroup != 0x00 {
		t.Fatalf("old start screen enemy group = %#x, want the target's original 0x00", oldScreenGroup)
	}
}

func TestShuffleStartScreenUpdatesCompassPointers(t *testing.T) {
	base := make([]byte, memmap.BaseImageSize)
	tbl, err := romtable.New(base)
	if err != nil {
		t.Fatal(err)
	}
	if err := tbl.SetStartScreen(0x10); err != nil {
		t.Fatal(err)
	}
	if err := tbl.SetEnemyGroup(0x20, 0x00); err != nil {
		t.Fatal(err)
	}
	// Level 3's compass happens to point at the old start screen; level 7's
	// points elsewhere and must be left untouched.
	if err := tbl.SetCompassPointer(3, 0x10); err != nil {
		t.Fatal(err)
	}
	if err := tbl.SetCompassPointer(7, 0x55); err != nil {
		t.Fatal(err)
	}

	terrain := map[int]ScreenTerrain{0x20: TerrainAllowsSpawn}
	r := rng.New(1)

	_, to, err := ShuffleStartScreen(tbl, r, terrain, 0x80)
	if err != nil {
		t.Fatalf("ShuffleStartScreen: %v", err)
	}

	got3, _ := tbl.GetCompassPointer(3)
	if got3 != uint16(to) {
		t.Fatalf("level 3 compass pointer = %#x, want the new screen %#x", got3, to)
	}
	got7, _ := tbl.GetCompassPointer(7)
	if got7 != 0x55 {
		t.Fatalf("level 7 compass pointer = %#x, want untouched 0x55", got7)
	}
}

func TestBaitBlockerKeepsGraphConnected(t *testing.T) {
	g := NewGraph()
	// A small ring: 1-2-3-4-1, with the blocker splitting {1,2} from {3,4}
	// except for a bait-gated 2-3 edge.
	g.AddEdge(1, 2)
	g.AddEdge(3, 4)
	g.AddEdge(4, 1)
	g.AddEdge(2, 3)

	result := AnalyzeBaitBlocker(g, [][2]int{{4, 1}}, 1, 3, [][2]int{{2, 3}})
	if !result.ConnectedByBait {
		t.Fatal("bait-gated edge not detected as the connecting path")
	}
	if len(result.PartitionA) == 0 || len(result.PartitionB) == 0 {
		t.Fatal("expected two non-empty partitions")
	}
}

func TestBaitBlockerDetectsDisconnection(t *testing.T) {
	g := NewGraph()
	g.AddEdge(1, 2)
	g.AddEdge(3, 4)
	// No edge at all between {1,2} and {3,4}: a real disconnection.
	result := AnalyzeBaitBlocker(g, nil, 1, 3, [][2]int{{2, 3}})
	if result.ConnectedByBait {
		t.Fatal("reported connected across a genuinely disjoint graph")
	}
}
