// Package validator implements the fixed-point symbolic reachability check
// of spec.md §4.8 (C8): given a fully patched Data Table and an empty
// starting inventory, repeatedly walk every screen and dungeon level whose
// gates the current inventory satisfies, folding in whatever items that
// unlocks, until a round makes no further progress. Acceptance requires
// every required item (spec.md's invariant 3 set) to have been collected.
//
// Grounded on original_source/logic/validator.py: GetBlockType/CanAccessScreen
// for overworld gating, CanDefeatEnemies for combat gating, ProcessLevel and
// its per-room traversal for dungeon gating, and IsSeedValid for the final
// acceptance check and failure reporting.
package validator

import (
	"fmt"
	"sort"

	"github.com/zora-rando/zora-core/internal/flags"
	"github.com/zora-rando/zora-core/internal/inventory"
	"github.com/zora-rando/zora-core/internal/romtable"
	"github.com/zora-rando/zora-core/internal/worldgraph"
	"github.com/zora-rando/zora-core/internal/worldmodel"
	"github.com/zora-rando/zora-core/internal/zoraerr"
)

// dirOrder fixes the exit-exploration order so BFS key consumption never
// depends on Go's map iteration order.
var dirOrder = [...]worldmodel.Direction{
	worldmodel.North, worldmodel.East, worldmodel.South, worldmodel.West,
}

// Result reports a completed reachability pass: the inventory it converged
// to and, on failure, why.
type Result struct {
	Inventory      *inventory.Inventory
	Beatable       bool
	MissingItems   []string
	UnreachedCaves []int
}

// Validate runs the fixed-point reachability loop over graph and table and
// reports whether the resulting world is beatable. seed/flagstring are
// carried only for the Unbeatable error's diagnostic payload. f supplies the
// active flag set combat gating needs (avoid_required_hard_combat); a nil f
// is treated as no flags set.
func Validate(graph *worldgraph.WorldGraph, table *romtable.Table, seed uint64, flagstring string, f *flags.Set) (*Result, error) {
	table.ClearVisitMarkers()
	inv := inventory.New()

	for {
		progressed := false

		if collectOverworld(graph, table, inv) {
			progressed = true
		}
		if collectSingletons(table, inv) {
			progressed = true
		}
		for _, levelNum := range sortedLevelNums(graph) {
			if !canEnterLevel(levelNum, inv) {
				continue
			}
			if processLevel(graph.Levels[levelNum], inv, table, f) {
				progressed = true
			}
		}

		if !progressed {
			break
		}
	}

	missing := missingRequiredItems(inv)
	unreached := unreachedCaves(graph, inv)
	beatable := len(missing) == 0

	result := &Result{Inventory: inv, Beatable: beatable, MissingItems: missing, UnreachedCaves: unreached}
	if !beatable {
		areas := make([]string, len(unreached))
		for i, id := range unreached {
			areas[i] = fmt.Sprintf("screen:%02x", id)
		}
		return result, &zoraerr.Unbeatable{
			Seed:           seed,
			Flagstring:     flagstring,
			MissingItems:   missing,
			UnreachedAreas: areas,
		}
	}
	return result, nil
}

func sortedLevelNums(g *worldgraph.WorldGraph) []int {
	nums := make([]int, 0, len(g.Levels))
	for n := range g.Levels {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// collectOverworld visits every overworld cave whose block gate the current
// inventory satisfies. Screens are walked in ascending id order so ties in
// what gets marked visited first are deterministic (they don't affect the
// converged set, only diagnostic ordering).
func collectOverworld(g *worldgraph.WorldGraph, table *romtable.Table, inv *inventory.Inventory) bool {
	ids := make([]int, 0, len(g.Screens))
	for id := range g.Screens {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	progressed := false
	for _, id := range ids {
		screen := g.Screens[id]
		if screen.CaveDestination == worldmodel.NoCave {
			continue
		}
		if !canAccessScreen(screen.Block, inv) {
			continue
		}
		for slot := 0; slot < 3; slot++ {
			loc := worldmodel.NewOverworldCave(screen.CaveDestination, slot)
			if !inv.MarkLocationCollected(loc.Key()) {
				continue
			}
			item, ok := table.GetItem(loc)
			if !ok || item == worldmodel.ItemNone {
				continue
			}
			inv.Add(item)
			progressed = true
		}
	}
	return progressed
}

// collectSingletons folds in the Armos and coast item slots. The Armos
// statue is a combat encounter (a sword or the wand defeats it), not an item gate;
// the coast item sits across water and needs the ladder.
func collectSingletons(table *romtable.Table, inv *inventory.Inventory) bool {
	progressed := false

	if inv.HasSwordOrWand() {
		loc := worldmodel.NewArmosSlot()
		if inv.MarkLocationCollected(loc.Key()) {
			if item, ok := table.GetItem(loc); ok && item != worldmodel.ItemNone {
				inv.Add(item)
				progressed = true
			}
		}
	}
	if inv.Has(worldmodel.ItemLadder) {
		loc := worldmodel.NewCoastSlot()
		if inv.MarkLocationCollected(loc.Key()) {
			if item, ok := table.GetItem(loc); ok && item != worldmodel.ItemNone {
				inv.Add(item)
				progressed = true
			}
		}
	}
	return progressed
}

// processLevel runs one key-state BFS pass over a dungeon level's rooms,
// folding newly-reachable item and key pickups into inv. It returns true if
// this pass collected anything new. Every reachable room is walked on each
// pass; a room item already picked up in a prior pass is not collected
// again, via the table's visit markers.
func processLevel(level *worldmodel.Level, inv *inventory.Inventory, table *romtable.Table, f *flags.Set) bool {
	progressed := false
	fr := newFrontier()
	seq := 0
	visited := map[[2]int]bool{}

	push := func(room int, dir worldmodel.Direction, keysUsed int) {
		key := [2]int{room, keysUsed}
		if visited[key] {
			return
		}
		visited[key] = true
		fr.push(&roomVisit{room: room, entryDir: dir, keysUsed: keysUsed, sequence: seq})
		seq++
	}

	push(level.EntranceRoom, level.EntranceDir, 0)

	for !fr.empty() {
		v := fr.pop()
		room, ok := level.Rooms[v.room]
		if !ok {
			continue
		}
		if !canDefeatEnemies(room.Enemy, inv, f) {
			continue
		}

		if room.HasItem {
			loc := worldmodel.NewDungeonRoom(level.Num, room.RoomID)
			if !table.IsVisited(loc.Key()) {
				table.MarkVisited(loc.Key())
				if item, ok := table.GetItem(loc); ok && item != worldmodel.ItemNone {
					if item == worldmodel.ItemKey {
						inv.AddKey(level.Num)
					} else {
						inv.Add(item)
					}
					progressed = true
				}
			}
		}

		keysRemaining := inv.KeysAvailable(level.Num) - v.keysUsed

		if room.HasStairs && room.StairLink != worldmodel.NoStairLink && room.StairLink != room.RoomID {
			push(room.StairLink, worldmodel.Staircase, v.keysUsed)
		}

		for _, dir := range dirOrder {
			wall, exists := room.Exits[dir]
			if !exists {
				continue
			}
			passable, consumesKey := canCrossWall(wall, keysRemaining, inv)
			if !passable {
				continue
			}
			dest, ok := neighborRoom(v.room, dir)
			if !ok {
				continue
			}
			nextKeysUsed := v.keysUsed
			if consumesKey {
				nextKeysUsed++
				keysRemaining--
			}
			push(dest, dir.Opposite(), nextKeysUsed)
		}
	}
	return progressed
}

// missingRequiredItems reports, sorted, which of spec.md's required items
// inv never collected.
func missingRequiredItems(inv *inventory.Inventory) []string {
	required := []worldmodel.Item{
		worldmodel.ItemBow, worldmodel.ItemSilverArrow, worldmodel.ItemLadder,
		worldmodel.ItemRaft, worldmodel.ItemRecorder,
	}
	var missing []string
	for _, item := range required {
		if !inv.Has(item) {
			missing = append(missing, item.String())
		}
	}
	if !inv.HasSword() {
		missing = append(missing, "sword")
	}
	if inv.TriforceCount() < 8 {
		missing = append(missing, fmt.Sprintf("triforce_piece(%d/8)", inv.TriforceCount()))
	}
	sort.Strings(missing)
	return missing
}

// unreachedCaves reports, sorted, every overworld screen whose cave slots
// were never marked collected — the diagnostic companion to missingRequiredItems.
func unreachedCaves(g *worldgraph.WorldGraph, inv *inventory.Inventory) []int {
	var out []int
	for id, screen := range g.Screens {
		if screen.CaveDestination == worldmodel.NoCave {
			continue
		}
		loc := worldmodel.NewOverworldCave(screen.CaveDestination, 0)
		if !inv.LocationCollected(loc.Key()) {
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}
