package worldmodel

// BlockType classifies the item/terrain requirement that gates entry into
// an overworld screen's cave, matching original_source's GetBlockType
// string constants but as a closed enum rather than a stringly-typed value
// (SPEC_FULL.md design note).
type BlockType uint8

const (
	BlockOpen BlockType = iota
	BlockBomb
	BlockLadderBomb
	BlockRaftBomb
	BlockCandle
	BlockRecorder
	BlockRaft
	BlockPowerBracelet
	BlockPowerBraceletBomb
	BlockLostHillsHint
	BlockDeadWoodsHint
	BlockImpassable
	BlockWhiteSwordHearts
	BlockMagicalSwordHearts
)

// WhiteSwordHeartThreshold and MagicalSwordHeartThreshold are the heart
// container counts original_source's NUM_HEARTS_FOR_WHITE_SWORD_ITEM and
// NUM_HEARTS_FOR_MAGICAL_SWORD_ITEM require before those cave slots yield
// their item.
const (
	WhiteSwordHeartThreshold   = 5
	MagicalSwordHeartThreshold = 12
)

// Screen is an overworld cell (spec.md §3): terrain class, an optional cave
// destination and a start flag. It carries no bait-blocker adjacency set;
// overworld.AnalyzeBaitBlocker works on a separate overworld.Graph.
type Screen struct {
	ID              int
	Block           BlockType
	CaveDestination int // -1 if the screen has no cave
	StartFlag       bool
}

// NoCave marks a screen with no cave destination.
const NoCave = -1
