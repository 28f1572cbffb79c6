package validator

import (
	"container/heap"

	"github.com/zora-rando/zora-core/internal/worldmodel"
)

// roomVisit is one pending BFS expansion inside a dungeon level: the room
// to visit, the direction it was entered from, and how many keys have been
// spent on the current path within this level. SPEC_FULL.md's per-level
// key-state BFS supplement bounds the search by folding key count into the
// state, grounded on the teacher's container/heap-backed turn queue
// (internal/engine/turn_queue.go) — here ordered by discovery sequence
// instead of tick, to keep visitation deterministic regardless of Go's
// map iteration order.
type roomVisit struct {
	room     int
	entryDir worldmodel.Direction
	keysUsed int
	sequence int // insertion order; the heap's tie-breaker
}

// frontier is a FIFO realized as a min-heap ordered by discovery sequence.
// A plain slice-based queue would do the same job; the heap shape is kept
// because SPEC_FULL.md grounds this component on the teacher's
// heap.Interface priority queue and a future extension (e.g. preferring
// shallower key-paths) only needs a new Less to make use of it.
type frontier []*roomVisit

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].sequence < f[j].sequence }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(*roomVisit)) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return item
}

// newFrontier returns an initialized, empty frontier.
func newFrontier() *frontier {
	f := &frontier{}
	heap.Init(f)
	return f
}

func (f *frontier) push(v *roomVisit) { heap.Push(f, v) }
func (f *frontier) pop() *roomVisit   { return heap.Pop(f).(*roomVisit) }
func (f *frontier) empty() bool       { return f.Len() == 0 }
