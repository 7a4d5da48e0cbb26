package partition

import "github.com/fmpart/fmpart/pkg/collections"

// bucketList is a gain-indexed array of intrusive doubly-linked lists, one
// list per (side, gain) slot. Each cell owns exactly one node (prev/next
// pair), reused across passes, so insert/remove given a cell id is O(1)
// with no hash lookup.
//
// Gains lie in [-maxPin, +maxPin]; slot(gain) = gain + maxPin maps that
// range onto [0, 2*maxPin]. A per-side bitmap tracks which slots are
// nonempty, and a per-side highWater index only ever increases on insert
// and is walked down on peek, so peekMax amortizes to O(1) per call
// across a pass instead of the O(log distinct gains) an ordered map would
// cost.
type bucketList struct {
	maxPin    int
	numSlots  int
	head      [2][]int // head[side][slot] = cell id, or -1
	prev      []int    // per cell id
	next      []int    // per cell id
	nonempty  [2]*collections.Bitset
	highWater [2]int
}

func newBucketList(numCells, maxPin int) *bucketList {
	if maxPin < 0 {
		maxPin = 0
	}
	numSlots := 2*maxPin + 1

	bl := &bucketList{
		maxPin:   maxPin,
		numSlots: numSlots,
		prev:     make([]int, numCells),
		next:     make([]int, numCells),
	}
	for s := 0; s < 2; s++ {
		bl.head[s] = make([]int, numSlots)
		for i := range bl.head[s] {
			bl.head[s][i] = -1
		}
		bl.nonempty[s] = collections.NewBitset(numSlots)
		bl.highWater[s] = -1
	}
	return bl
}

// reset clears every slot, ready for the next pass.
func (bl *bucketList) reset() {
	for s := 0; s < 2; s++ {
		for i := range bl.head[s] {
			bl.head[s][i] = -1
		}
		bl.nonempty[s].ClearAll()
		bl.highWater[s] = -1
	}
}

func (bl *bucketList) slot(gain int) int { return gain + bl.maxPin }

// insert prepends cellID to the list for (side, gain); new or re-inserted
// cells become the new head (LIFO within a gain bucket).
func (bl *bucketList) insert(side Side, cellID, gain int) {
	s := boolIndex(side)
	slot := bl.slot(gain)

	oldHead := bl.head[s][slot]
	bl.prev[cellID] = -1
	bl.next[cellID] = oldHead
	if oldHead != -1 {
		bl.prev[oldHead] = cellID
	}
	bl.head[s][slot] = cellID
	bl.nonempty[s].Set(slot)

	if slot > bl.highWater[s] {
		bl.highWater[s] = slot
	}
}

// remove splices cellID out of the list for (side, gain).
func (bl *bucketList) remove(side Side, cellID, gain int) {
	s := boolIndex(side)
	slot := bl.slot(gain)

	p := bl.prev[cellID]
	n := bl.next[cellID]
	if p != -1 {
		bl.next[p] = n
	} else {
		bl.head[s][slot] = n
	}
	if n != -1 {
		bl.prev[n] = p
	}

	if bl.head[s][slot] == -1 {
		bl.nonempty[s].Clear(slot)
	}
}

// peekMax returns the head cell of the highest nonempty gain slot on the
// given side, or ok=false if that side has no unlocked cells left.
func (bl *bucketList) peekMax(side Side) (cellID int, gain int, ok bool) {
	s := boolIndex(side)
	for bl.highWater[s] >= 0 && !bl.nonempty[s].Test(bl.highWater[s]) {
		bl.highWater[s]--
	}
	if bl.highWater[s] < 0 {
		return 0, 0, false
	}
	slot := bl.highWater[s]
	return bl.head[s][slot], slot - bl.maxPin, true
}

func boolIndex(s Side) int {
	if s == B {
		return 1
	}
	return 0
}

// cursor walks one side's bucket list in descending gain order, across
// slots and within a slot's LIFO chain. Used by the constrained max-gain
// search (balance rejects the global max, so the driver walks down) —
// unlike peekMax it does not lean on highWater, since a full descending
// walk is the uncommon, already-linear-cost path.
type cursor struct {
	bl   *bucketList
	s    int
	slot int
	node int
}

func (bl *bucketList) newCursor(side Side) *cursor {
	c := &cursor{bl: bl, s: boolIndex(side), slot: bl.numSlots - 1, node: -1}
	c.advance()
	return c
}

func (c *cursor) advance() {
	if c.node != -1 {
		if nxt := c.bl.next[c.node]; nxt != -1 {
			c.node = nxt
			return
		}
		c.slot--
	}
	for c.slot >= 0 {
		if c.bl.nonempty[c.s].Test(c.slot) {
			c.node = c.bl.head[c.s][c.slot]
			return
		}
		c.slot--
	}
	c.node = -1
}

func (c *cursor) valid() bool { return c.node != -1 }
func (c *cursor) cellID() int { return c.node }
func (c *cursor) gain() int   { return c.slot - c.bl.maxPin }
