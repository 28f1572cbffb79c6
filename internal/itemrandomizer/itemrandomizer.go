// Package itemrandomizer is the Item Randomizer of spec.md §4.6 (C6): reads
// flags, translates them into a solver.Problem, invokes the configured
// backend, and is the sole authorized mutator of item-bearing locations in
// the Data Table.
package itemrandomizer

import (
	"time"

	"github.com/zora-rando/zora-core/internal/applog"
	"github.com/zora-rando/zora-core/internal/flags"
	"github.com/zora-rando/zora-core/internal/romtable"
	"github.com/zora-rando/zora-core/internal/rng"
	"github.com/zora-rando/zora-core/internal/solver"
	"github.com/zora-rando/zora-core/internal/worldmodel"
	"github.com/zora-rando/zora-core/internal/zoraerr"
)

// NumOverworldScreens bounds the overworld cave slots the shuffle flags can
// draw from, matching spec.md §6's 0x80-screen overworld.
const NumOverworldScreens = 0x80

// locationSource ties one of the 13 master-toggle-dependent shuffle flags
// (SPEC_FULL.md C6 supplement) to the locations it adds to the key set when
// enabled; sources lists all 13.
type locationSource struct {
	flag      string
	locations func() []worldmodel.Location
}

func woodSwordCave() worldmodel.Location    { return worldmodel.NewOverworldCave(0, 0) }
func whiteSwordCave() worldmodel.Location   { return worldmodel.NewOverworldCave(1, 0) }
func magicalSwordCave() worldmodel.Location { return worldmodel.NewOverworldCave(2, 0) }
func letterCave() worldmodel.Location       { return worldmodel.NewOverworldCave(3, 0) }

func sources() []locationSource {
	return []locationSource{
		{"shuffle_wood_sword_cave_item", func() []worldmodel.Location { return []worldmodel.Location{woodSwordCave()} }},
		{"shuffle_white_sword_cave_item", func() []worldmodel.Location { return []worldmodel.Location{whiteSwordCave()} }},
		{"shuffle_magical_sword_cave_item", func() []worldmodel.Location { return []worldmodel.Location{magicalSwordCave()} }},
		{"shuffle_letter_cave_item", func() []worldmodel.Location { return []worldmodel.Location{letterCave()} }},
		{"shuffle_armos_item", func() []worldmodel.Location { return []worldmodel.Location{worldmodel.NewArmosSlot()} }},
		{"shuffle_coast_item", func() []worldmodel.Location { return []worldmodel.Location{worldmodel.NewCoastSlot()} }},
		{"shuffle_shop_arrows", func() []worldmodel.Location { return []worldmodel.Location{worldmodel.NewShopSlot(0, 0)} }},
		{"shuffle_shop_candle", func() []worldmodel.Location { return []worldmodel.Location{worldmodel.NewShopSlot(0, 1)} }},
		{"shuffle_shop_ring", func() []worldmodel.Location { return []worldmodel.Location{worldmodel.NewShopSlot(0, 2)} }},
		{"shuffle_shop_woodsword", func() []worldmodel.Location { return []worldmodel.Location{worldmodel.NewShopSlot(1, 0)} }},
		{"shuffle_shop_bluering", func() []worldmodel.Location { return []worldmodel.Location{worldmodel.NewShopSlot(1, 1)} }},
		{"shuffle_shop_bait", func() []worldmodel.Location { return []worldmodel.Location{worldmodel.NewShopSlot(1, 2)} }},
		{"shuffle_within_level", allLevelRooms},
	}
}

// allLevelRooms enumerates the item-bearing rooms in every dungeon level.
// The production data table has ~9 major item rooms per level; this
// repository's memory map allocates room ids 0x10-0x18 as item rooms per
// level, one for each of the nine major dungeon items.
func allLevelRooms() []worldmodel.Location {
	var locs []worldmodel.Location
	for level := 1; level <= 9; level++ {
		for room := 0x10; room < 0x19; room++ {
			locs = append(locs, worldmodel.NewDungeonRoom(level, room))
		}
	}
	return locs
}

// level9Rooms returns just level 9's item rooms, used by several forbid
// rules keyed on "non-level-9" vs "level-9".
func level9Rooms() []worldmodel.Location {
	var locs []worldmodel.Location
	for room := 0x10; room < 0x19; room++ {
		locs = append(locs, worldmodel.NewDungeonRoom(9, room))
	}
	return locs
}

// ActiveLocations returns the key set enabled by the active shuffle flags,
// sorted by Location.Key() — the stable order spec.md §4.1 requires before
// any RNG-consuming operation.
func ActiveLocations(f *flags.Set) []worldmodel.Location {
	if !f.Get("major_item_shuffle") {
		return nil
	}
	var locs []worldmodel.Location
	for _, src := range sources() {
		if f.Get(src.flag) {
			locs = append(locs, src.locations()...)
		}
	}
	return worldmodel.SortLocations(locs)
}

// Options configures one call to Randomize.
type Options struct {
	Backend    solver.Backend
	TimeLimit  time.Duration
	MaxRetries int
}

// Randomize builds the permutation problem from flags, solves it, and
// writes the resulting assignment into table — the only authorized mutator
// of item-bearing locations (spec.md §4.6). seed drives both the RNG that
// derives retry sub-seeds and, indirectly, the solver's own randomness.
func Randomize(table *romtable.Table, f *flags.Set, seed uint64, opts Options) error {
	locations := ActiveLocations(f)
	if len(locations) == 0 {
		return nil
	}

	values := make([]worldmodel.Item, len(locations))
	for i, loc := range locations {
		item, ok := table.GetItem(loc)
		if !ok {
			return &zoraerr.OutOfRegion{Offset: -1}
		}
		values[i] = item
	}

	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	timeLimit := opts.TimeLimit
	if timeLimit <= 0 {
		timeLimit = 10 * time.Second
	}

	retryRNG := rng.New(seed)
	var assignment map[worldmodel.Location]worldmodel.Item
	var solved bool
	var blacklist []map[worldmodel.Location]worldmodel.Item

	for attempt := 0; attempt <= maxRetries; attempt++ {
		s := solver.New[worldmodel.Location, worldmodel.Item](opts.Backend)
		s.AddPermutationProblem(locations, values)
		applyForbidRules(s, f, locations, values)
		for _, forbidden := range blacklist {
			s.AddForbiddenSolutionMap(forbidden)
		}

		attemptSeed := retryRNG.Next()
		applog.WithSeed(seed).WithFields(map[string]interface{}{
			"attempt": attempt,
			"backend": opts.Backend.String(),
		}).Debug("item randomizer solving")

		assignment, solved = s.Solve(attemptSeed, timeLimit)
		if !solved {
			continue
		}

		// AtLeastOneOf can only express "some occurrence among these
		// locations," not "at least two distinct occurrences," so
		// force_two_heart_containers_to_level_nine is checked here by
		// counting the actual assignment and blacklisting a solution that
		// under-counts, forcing the next attempt to find a different one.
		if f.Get("force_two_heart_containers_to_level_nine") && countLevel9HeartContainers(assignment) < 2 {
			blacklist = append(blacklist, assignment)
			solved = false
			continue
		}
		break
	}

	if !solved {
		return &zoraerr.NoFeasibleAssignment{Seed: seed, Flagstring: flags.Encode(f), Attempts: maxRetries + 1}
	}

	for _, loc := range locations {
		if err := table.SetItem(loc, assignment[loc]); err != nil {
			return err
		}
	}
	return nil
}

// applyForbidRules translates the item-shuffle logic flags into solver
// constraints, per spec.md §4.6's worked examples.
func applyForbidRules(s solver.Solver[worldmodel.Location, worldmodel.Item], f *flags.Set, locations []worldmodel.Location, values []worldmodel.Item) {
	locSet := make(map[worldmodel.Location]bool, len(locations))
	for _, l := range locations {
		locSet[l] = true
	}

	if f.Get("force_sword_to_open_cave") {
		openCave := woodSwordCave()
		if locSet[openCave] {
			best := bestSwordAvailable(values)
			for _, item := range distinctItems(values) {
				if item != best {
					s.Forbid(openCave, item)
				}
			}
			if best != worldmodel.ItemNone {
				s.Require(openCave, best)
			}
		}
	}

	if f.Get("force_arrow_to_level_nine") {
		l9 := level9RoomSet()
		for _, loc := range locations {
			if !l9[loc] {
				s.Forbid(loc, worldmodel.ItemSilverArrow)
			}
		}
	}

	if f.Get("force_two_heart_containers_to_level_nine") {
		var l9Locs []worldmodel.Location
		for _, loc := range locations {
			if level9RoomSet()[loc] {
				l9Locs = append(l9Locs, loc)
			}
		}
		if len(l9Locs) > 0 {
			// This only rules out zero occurrences; Randomize itself
			// counts the solved assignment and blacklists any solution
			// with fewer than two, since the contract's at-least-one-of
			// has no "at least N distinct occurrences" form.
			s.AtLeastOneOf(l9Locs, []worldmodel.Item{worldmodel.ItemHeartContainer})
		}
	}

	if !f.Get("allow_important_items_in_level_nine") {
		l9 := level9RoomSet()
		important := []worldmodel.Item{worldmodel.ItemBow, worldmodel.ItemLadder, worldmodel.ItemRaft, worldmodel.ItemRecorder}
		for loc := range l9 {
			if !locSet[loc] {
				continue
			}
			for _, item := range important {
				s.Forbid(loc, item)
			}
		}
	}
}

// countLevel9HeartContainers counts how many of level 9's item rooms hold a
// heart container in assignment.
func countLevel9HeartContainers(assignment map[worldmodel.Location]worldmodel.Item) int {
	count := 0
	for _, loc := range level9Rooms() {
		if item, ok := assignment[loc]; ok && item == worldmodel.ItemHeartContainer {
			count++
		}
	}
	return count
}

func level9RoomSet() map[worldmodel.Location]bool {
	m := make(map[worldmodel.Location]bool)
	for _, l := range level9Rooms() {
		m[l] = true
	}
	return m
}

func distinctItems(values []worldmodel.Item) []worldmodel.Item {
	seen := make(map[worldmodel.Item]bool)
	var out []worldmodel.Item
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// bestSwordAvailable returns the highest sword tier present in values, or
// ItemNone if no sword is in the pool being shuffled.
func bestSwordAvailable(values []worldmodel.Item) worldmodel.Item {
	best := worldmodel.ItemNone
	bestTier := 0
	for _, v := range values {
		if class, tier, ok := worldmodel.ProgressiveInfo(v); ok && class == worldmodel.ClassSword {
			if tier > bestTier {
				bestTier = tier
				best = v
			}
		}
	}
	return best
}
