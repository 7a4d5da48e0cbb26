package partition

import "github.com/fmpart/fmpart/pkg/errors"

// Debug gates the O(N+M) structural invariant checks in this package.
// The checks should never fail on well-formed input; tripping one is a
// bug in the gain-update or commit logic, not a reportable user error.
var Debug = false

// assertInvariants panics with an internal-invariant AppError if the
// structural invariants this package depends on do not hold. Only
// meaningful right after resetForPass, before any moves are applied:
// mid-pass, netPartCount deliberately runs ahead of the canonical part
// assignment for cells in the pass's not-yet-committed move log.
func assertInvariants(s *state) {
	size0, size1 := 0, 0
	for _, side := range s.part {
		if side == A {
			size0++
		} else {
			size1++
		}
	}
	if size0 != s.partSize[boolIndex(A)] || size1 != s.partSize[boolIndex(B)] {
		panic(errors.Wrap(errors.CodeInternalInvariant, "part_size disagrees with cell assignment", nil))
	}

	for netID := 0; netID < s.hg.NumNets(); netID++ {
		var count [2]int
		for _, cellID := range s.hg.CellsOfNet(netID) {
			count[boolIndex(s.part[cellID])]++
		}
		if count != s.netPartCount[netID] {
			panic(errors.Wrap(errors.CodeInternalInvariant, "net part_count disagrees with cell assignment", nil))
		}
	}
}
