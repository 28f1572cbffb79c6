// Package worldgraph assembles the static topology the Validator (C8)
// reasons over: the overworld screen table and the nine dungeon Levels,
// each with its Room layout. This is the logical-graph half of spec.md's
// Data Table (§3/§4.2) — romtable owns the byte-addressed storage, while
// worldgraph is the read-only shape kept beside it (screen block types,
// room adjacency, stairway links) that reachability analysis walks. That
// shape is authored in BuildStandardWorld, not read out of the table.
package worldgraph

import "github.com/zora-rando/zora-core/internal/worldmodel"

// WorldGraph is the complete static topology for one generation run.
type WorldGraph struct {
	Screens     map[int]*worldmodel.Screen
	Levels      map[int]*worldmodel.Level
	StartScreen int
}

// New returns an empty graph the caller populates via AddScreen/AddLevel.
func New() *WorldGraph {
	return &WorldGraph{
		Screens: make(map[int]*worldmodel.Screen),
		Levels:  make(map[int]*worldmodel.Level),
	}
}

// AddScreen registers an overworld screen.
func (w *WorldGraph) AddScreen(s *worldmodel.Screen) { w.Screens[s.ID] = s }

// AddLevel registers a dungeon level.
func (w *WorldGraph) AddLevel(l *worldmodel.Level) { w.Levels[l.Num] = l }

// ScreensWithCave returns every screen id whose CaveDestination matches
// destination, sorted ascending. The validator does not call it; it walks
// w.Screens directly.
func (w *WorldGraph) ScreensWithCave(destination int) []int {
	var out []int
	for id, s := range w.Screens {
		if s.CaveDestination == destination {
			out = append(out, id)
		}
	}
	return sortInts(out)
}

func sortInts(xs []int) []int {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
	return xs
}
