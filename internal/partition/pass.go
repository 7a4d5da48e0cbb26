package partition

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/fmpart/fmpart/pkg/utils"
)

var tracer = otel.Tracer("github.com/fmpart/fmpart/internal/partition")

// PassResult summarizes one completed FM pass.
type PassResult struct {
	MovesConsidered int
	MovesCommitted  int
	MaxAccGain      int
	CutSizeBefore   int
	CutSizeAfter    int
}

// runPass executes one full FM pass: reset, select-and-move until no
// unlocked cell remains or no balanced move exists, then commit the
// prefix of moves with maximum cumulative gain.
func runPass(ctx context.Context, s *state, log utils.Logger) PassResult {
	_, span := tracer.Start(ctx, "partition.pass")
	defer span.End()

	s.resetForPass()
	if Debug {
		assertInvariants(s)
	}
	cutBefore := s.cutSize()

	moves := make([]Move, 0, s.unlocked[0]+s.unlocked[1])
	for s.unlocked[0]+s.unlocked[1] > 0 {
		cellID, ok := s.selectBalanced()
		if !ok {
			break
		}
		gain := s.move(cellID)
		moves = append(moves, Move{CellID: cellID, Gain: gain})
	}

	best, maxAcc := bestPrefix(moves)
	committed := 0
	if maxAcc > 0 {
		committed = best + 1
		s.commitPrefix(moves[:committed])
	}

	// Canonical part/net counts/sizes must reflect only the committed
	// prefix for the next pass's reset to start from a clean baseline;
	// resetForPass recomputes net counts from state.part, so nothing
	// further is needed here for the uncommitted suffix.
	cutAfter := cutSizeFromAssignment(s)

	if log != nil {
		log.Debug("pass complete: considered=%d committed=%d maxAccGain=%d cut %d -> %d",
			len(moves), committed, maxAcc, cutBefore, cutAfter)
	}

	return PassResult{
		MovesConsidered: len(moves),
		MovesCommitted:  committed,
		MaxAccGain:      maxAcc,
		CutSizeBefore:   cutBefore,
		CutSizeAfter:    cutAfter,
	}
}

// selectBalanced finds the highest-gain unlocked cell, across both
// sides, whose move would keep both sides within the balance window,
// walking down in descending gain order when the current maximum is
// inadmissible. Ties across sides prefer the side with more unlocked
// cells, which tends to accelerate convergence toward balance.
func (s *state) selectBalanced() (int, bool) {
	curA := s.buckets.newCursor(A)
	curB := s.buckets.newCursor(B)

	for curA.valid() || curB.valid() {
		var pick *cursor
		switch {
		case !curA.valid():
			pick = curB
		case !curB.valid():
			pick = curA
		case curA.gain() > curB.gain():
			pick = curA
		case curB.gain() > curA.gain():
			pick = curB
		default:
			if s.unlocked[boolIndex(A)] >= s.unlocked[boolIndex(B)] {
				pick = curA
			} else {
				pick = curB
			}
		}

		cellID := pick.cellID()
		if s.admissible(s.part[cellID]) {
			return cellID, true
		}
		pick.advance()
	}
	return 0, false
}

// bestPrefix finds the smallest index k maximizing the cumulative gain
// of moves[0..=k], matching the source's best=-1-initial, strict-less
// update scan (the first index to reach the maximum wins ties).
func bestPrefix(moves []Move) (best int, maxAcc int) {
	best = -1
	acc := 0
	for i, m := range moves {
		acc += m.Gain
		if best < 0 || maxAcc < acc {
			maxAcc = acc
			best = i
		}
	}
	return best, maxAcc
}

// commitPrefix writes the canonical side for every cell in the committed
// move prefix; state.part is otherwise untouched during a pass.
func (s *state) commitPrefix(moves []Move) {
	for _, m := range moves {
		s.part[m.CellID] = s.part[m.CellID].Other()
	}
}

// cutSizeFromAssignment recomputes cut size directly from the canonical
// part assignment, independent of the pass's speculative netPartCount
// bookkeeping (which may include the uncommitted suffix's effect).
func cutSizeFromAssignment(s *state) int {
	cut := 0
	for netID := 0; netID < s.hg.NumNets(); netID++ {
		var count [2]int
		for _, cellID := range s.hg.CellsOfNet(netID) {
			count[boolIndex(s.part[cellID])]++
		}
		if count[0] > 0 && count[1] > 0 {
			cut++
		}
	}
	return cut
}

