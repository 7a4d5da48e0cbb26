package partition

import (
	"math"

	"github.com/fmpart/fmpart/internal/hypergraph"
)

// Move records one tentative cell relocation within a pass: the cell
// that moved, and the gain the bucket list reported for it at the
// instant it was selected.
type Move struct {
	CellID int
	Gain   int
}

// state holds everything the pass driver mutates over the course of one
// pass, plus the canonical per-cell side that only the session driver
// writes (at commit time, between passes).
type state struct {
	hg *hypergraph.Hypergraph

	part []Side // canonical side; touched only by commitPrefix
	gain []int

	locked []bool

	netPartCount [][2]int // per net, count of cells currently on each side

	partSize [2]int
	unlocked [2]int

	maxPin int
	bf     float64

	buckets *bucketList

	lowerBound int
	upperBound int
}

func newState(hg *hypergraph.Hypergraph, initialAssign []bool, bf float64) *state {
	n := hg.NumCells()
	part := make([]Side, n)
	for i, b := range initialAssign {
		part[i] = Side(b)
	}

	s := &state{
		hg:           hg,
		part:         part,
		gain:         make([]int, n),
		locked:       make([]bool, n),
		netPartCount: make([][2]int, hg.NumNets()),
		maxPin:       hg.MaxPin(),
		bf:           bf,
		buckets:      newBucketList(n, hg.MaxPin()),
	}
	s.lowerBound, s.upperBound = balanceWindow(n, bf)
	return s
}

// balanceWindow computes the admissible per-side size range
// [ceil((1-bf)/2*N), floor((1+bf)/2*N)], equivalent to the source's
// real-valued bounds, computed once when the session state is built
// rather than per candidate to avoid repeated floating point rounding. A small epsilon absorbs
// float noise at exact integer boundaries (e.g. bf=0.5, N=4).
func balanceWindow(n int, bf float64) (lower, upper int) {
	const eps = 1e-9
	lowerF := (1 - bf) / 2 * float64(n)
	upperF := (1 + bf) / 2 * float64(n)
	lower = int(math.Ceil(lowerF - eps))
	upper = int(math.Floor(upperF + eps))
	return lower, upper
}

// admissible reports whether moving a cell currently on side from would
// leave both sides' sizes inside the balance window.
func (s *state) admissible(from Side) bool {
	to := from.Other()
	newFrom := s.partSize[boolIndex(from)] - 1
	newTo := s.partSize[boolIndex(to)] + 1
	return newFrom >= s.lowerBound && newFrom <= s.upperBound &&
		newTo >= s.lowerBound && newTo <= s.upperBound
}

// feasible reports whether the balance window admits any split of n
// cells at all.
func feasible(n int, bf float64) bool {
	lower, upper := balanceWindow(n, bf)
	return lower <= upper
}

// resetForPass recomputes every per-pass field from the canonical part
// assignment: sizes, unlock counts, net part-counts, gains and bucket
// membership. Mirrors the source's "Reset everything except Cell->_part"
// block that runs at the top of every iteration.
func (s *state) resetForPass() {
	s.partSize[0], s.partSize[1] = 0, 0
	for i := range s.netPartCount {
		s.netPartCount[i] = [2]int{}
	}
	s.buckets.reset()

	for cellID, side := range s.part {
		s.partSize[boolIndex(side)]++
		s.locked[cellID] = false
	}

	for netID := 0; netID < s.hg.NumNets(); netID++ {
		for _, cellID := range s.hg.CellsOfNet(netID) {
			s.netPartCount[netID][boolIndex(s.part[cellID])]++
		}
	}

	for cellID := range s.part {
		g := computeInitialGain(s, cellID)
		s.gain[cellID] = g
		s.buckets.insert(s.part[cellID], cellID, g)
	}

	s.unlocked[0] = s.partSize[0]
	s.unlocked[1] = s.partSize[1]
}

// cutSize counts nets with cells on both sides, using the live
// netPartCount table (valid both mid-pass and after a commit, as long as
// resetForPass has run since the last canonical part change).
func (s *state) cutSize() int {
	cut := 0
	for _, pc := range s.netPartCount {
		if pc[0] > 0 && pc[1] > 0 {
			cut++
		}
	}
	return cut
}
