// Package overworld implements the Overworld Randomizer of spec.md §4.7
// (C7): the start-screen shuffle and the bait-blocker partition analysis.
// Graph is a plain integer-node adjacency list, so the same flood-fill and
// AnalyzeBaitBlocker implementation serves any node set the caller builds,
// whether overworld screens or a dungeon level's rooms.
package overworld

import (
	"sort"

	"github.com/zora-rando/zora-core/internal/romtable"
	"github.com/zora-rando/zora-core/internal/rng"
)

// Graph is an undirected adjacency-list graph over integer node ids
// (SPEC_FULL.md design note: "store as edge lists indexed by node id, never
// by back-references").
type Graph struct {
	adjacency map[int]map[int]bool
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{adjacency: make(map[int]map[int]bool)}
}

// AddEdge inserts an undirected edge between a and b.
func (g *Graph) AddEdge(a, b int) {
	g.ensure(a)
	g.ensure(b)
	g.adjacency[a][b] = true
	g.adjacency[b][a] = true
}

func (g *Graph) ensure(n int) {
	if g.adjacency[n] == nil {
		g.adjacency[n] = make(map[int]bool)
	}
}

// Neighbors returns n's neighbors, sorted ascending — the stable order
// spec.md §4.7 requires ("iterating the vertex set uses sorted(...) order
// to preserve determinism").
func (g *Graph) Neighbors(n int) []int {
	var out []int
	for m := range g.adjacency[n] {
		out = append(out, m)
	}
	sort.Ints(out)
	return out
}

// Nodes returns every node with at least one edge, sorted ascending.
func (g *Graph) Nodes() []int {
	var out []int
	for n := range g.adjacency {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// HasEdge reports whether a and b are directly connected.
func (g *Graph) HasEdge(a, b int) bool {
	return g.adjacency[a] != nil && g.adjacency[a][b]
}

// withoutEdges returns a copy of g with the given edges removed, used to
// simulate the blocker before flood-filling (spec.md §4.7: "remove edges
// crossing the blocker").
func (g *Graph) withoutEdges(edges [][2]int) *Graph {
	out := NewGraph()
	for _, n := range g.Nodes() {
		for _, m := range g.Neighbors(n) {
			if n < m {
				out.AddEdge(n, m)
			}
		}
	}
	for _, e := range edges {
		if out.adjacency[e[0]] != nil {
			delete(out.adjacency[e[0]], e[1])
		}
		if out.adjacency[e[1]] != nil {
			delete(out.adjacency[e[1]], e[0])
		}
	}
	return out
}

// FloodFill returns every node reachable from start, sorted ascending.
func (g *Graph) FloodFill(start int) []int {
	visited := map[int]bool{start: true}
	queue := []int{start}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, m := range g.Neighbors(n) {
			if !visited[m] {
				visited[m] = true
				queue = append(queue, m)
			}
		}
	}
	out := make([]int, 0, len(visited))
	for n := range visited {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// PartitionResult reports the two sides of a bait-blocker split and whether
// a bait-gated crossing exists between them.
type PartitionResult struct {
	PartitionA      []int
	PartitionB      []int
	ConnectedByBait bool
}

// AnalyzeBaitBlocker builds the adjacency graph restricted to passable
// terrain, removes the edges the blocker severs, flood-fills from each side
// of the blocker to get partitions A and B, and verifies at least one
// bait-gated edge (baitEdges) crosses between them (spec.md §4.7). A bait
// edge only counts if it is present in the pruned graph.
func AnalyzeBaitBlocker(passableGraph *Graph, blockedEdges [][2]int, sideA, sideB int, baitEdges [][2]int) PartitionResult {
	pruned := passableGraph.withoutEdges(blockedEdges)

	partitionA := pruned.FloodFill(sideA)
	partitionB := pruned.FloodFill(sideB)

	inA := make(map[int]bool, len(partitionA))
	for _, n := range partitionA {
		inA[n] = true
	}
	inB := make(map[int]bool, len(partitionB))
	for _, n := range partitionB {
		inB[n] = true
	}

	connected := false
	for _, e := range baitEdges {
		if !pruned.HasEdge(e[0], e[1]) {
			continue
		}
		if (inA[e[0]] && inB[e[1]]) || (inA[e[1]] && inB[e[0]]) {
			connected = true
			break
		}
	}

	return PartitionResult{PartitionA: partitionA, PartitionB: partitionB, ConnectedByBait: connected}
}

// ScreenTerrain classifies an overworld screen for start-screen eligibility.
type ScreenTerrain uint8

const (
	TerrainBlocksSpawn ScreenTerrain = iota
	TerrainAllowsSpawn
)

// ShuffleStartScreen chooses a target screen whose enemy-group is empty and
// whose terrain permits Link's spawn sprite, then swaps enemy-group
// pointers between the original start screen and the target, updating the
// compass pointer tables (spec.md §4.7).
//
// terrain and emptyGroups are supplied by the caller (typically populated
// from the Data Table's declared regions) since screen terrain is static
// per base image and not itself part of the item/enemy overlay this
// package mutates.
func ShuffleStartScreen(table *romtable.Table, r *rng.RNG, terrain map[int]ScreenTerrain, numScreens int) (from, to int, err error) {
	original, ok := table.GetStartScreen()
	if !ok {
		return 0, 0, errNoStartScreen
	}
	from = int(original)

	var candidates []int
	for screen := 0; screen < numScreens; screen++ {
		if screen == from {
			continue
		}
		if terrain[screen] != TerrainAllowsSpawn {
			continue
		}
		group, ok := table.GetEnemyGroup(screen)
		if ok && group == 0 {
			candidates = append(candidates, screen)
		}
	}
	sort.Ints(candidates)
	if len(candidates) == 0 {
		return 0, 0, errNoCandidateScreen
	}

	to = rng.Choice(r, candidates)

	if err := table.SwapEnemyGroups(from, to); err != nil {
		return 0, 0, err
	}
	if err := table.SetStartScreen(byte(to)); err != nil {
		return 0, 0, err
	}
	if err := table.SwapCompassPointerReferences(uint16(from), uint16(to)); err != nil {
		return 0, 0, err
	}
	return from, to, nil
}
