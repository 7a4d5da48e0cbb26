package partition

// computeInitialGain computes the gain of cellID from scratch against the
// current netPartCount table, per the per-cell sum over incident nets
// described for the from-side/to-side split: +1 when the net would stop
// being cut on this side, -1 when it would start being cut.
func computeInitialGain(s *state, cellID int) int {
	g := 0
	from := s.part[cellID]
	to := from.Other()
	for _, netID := range s.hg.NetsOfCell(cellID) {
		pc := s.netPartCount[netID]
		if pc[boolIndex(from)] == 1 {
			g++
		}
		if pc[boolIndex(to)] == 0 {
			g--
		}
	}
	return g
}

// move applies the four-case gain-update rule for relocating cellID from
// its current side to the other side, then locks it and removes it from
// its bucket. It returns the gain the bucket list reported for cellID at
// the moment it was selected — the value recorded in the pass's move log.
//
// Mirrors the source's ordering precisely: the cell is locked before its
// neighbors' gains are touched (so neighbor scans need only check the
// lock flag, never an explicit "skip myself" comparison), and its
// canonical side (state.part) is left untouched here — only the pass
// driver's commit step writes state.part, for the committed prefix only.
func (s *state) move(cellID int) int {
	g := s.gain[cellID]
	from := s.part[cellID]
	to := from.Other()

	s.locked[cellID] = true

	for _, netID := range s.hg.NetsOfCell(cellID) {
		pc := &s.netPartCount[netID]

		if pc[boolIndex(to)] == 0 {
			// T(n) == 0 before the move: every unlocked cell on n,
			// including same-side neighbors, would stop splitting n.
			s.bumpUnlockedOnNet(netID, +1)
		} else if pc[boolIndex(to)] == 1 {
			// T(n) == 1 before the move: the one unlocked cell already
			// on the to-side loses the pin it would have shared with c.
			if other, ok := s.findUnlockedOnSide(netID, to); ok {
				s.bumpGain(other, -1)
			}
		}

		pc[boolIndex(from)]--
		pc[boolIndex(to)]++

		if pc[boolIndex(from)] == 0 {
			// F(n) == 0 after the move: n is now fully on the to-side;
			// every remaining unlocked cell on n loses a pin.
			s.bumpUnlockedOnNet(netID, -1)
		} else if pc[boolIndex(from)] == 1 {
			// F(n) == 1 after the move: the one unlocked cell left on
			// the from-side would now re-split n if it moved too.
			if other, ok := s.findUnlockedOnSide(netID, from); ok {
				s.bumpGain(other, +1)
			}
		}
	}

	s.buckets.remove(from, cellID, g)
	s.unlocked[boolIndex(from)]--
	s.partSize[boolIndex(from)]--
	s.partSize[boolIndex(to)]++

	return g
}

// bumpUnlockedOnNet applies delta to the gain of every unlocked cell
// incident to netID. The already-locked selected cell is skipped simply
// because it is locked, not via an identity check.
func (s *state) bumpUnlockedOnNet(netID int, delta int) {
	for _, cellID := range s.hg.CellsOfNet(netID) {
		if s.locked[cellID] {
			continue
		}
		s.bumpGain(cellID, delta)
	}
}

// findUnlockedOnSide returns the single unlocked cell incident to netID
// that sits on the given side, stopping at the first match. At most one
// such cell can exist whenever this is called (a consequence of the
// T(n)==1 / F(n)==1 guard at the call site).
func (s *state) findUnlockedOnSide(netID int, side Side) (int, bool) {
	for _, cellID := range s.hg.CellsOfNet(netID) {
		if s.locked[cellID] {
			continue
		}
		if s.part[cellID] == side {
			return cellID, true
		}
	}
	return 0, false
}

// bumpGain adjusts an unlocked cell's gain and re-splices it into its
// bucket at the new slot: remove, mutate, re-insert.
func (s *state) bumpGain(cellID int, delta int) {
	side := s.part[cellID]
	old := s.gain[cellID]
	s.buckets.remove(side, cellID, old)
	s.gain[cellID] = old + delta
	s.buckets.insert(side, cellID, s.gain[cellID])
}
