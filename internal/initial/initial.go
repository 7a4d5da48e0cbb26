// Package initial computes the starting two-way assignment that the
// partitioning core iterates from.
package initial

import (
	"sort"

	"github.com/fmpart/fmpart/internal/hypergraph"
)

// Assign computes the initial per-cell side assignment: sort nets by
// cell-count ascending, then walk nets in that order assigning each
// not-yet-placed cell to side A (false) until the A side reaches at
// least half of N, after which remaining cells go to side B (true).
//
// This tends to cluster cells of small nets together, giving the FM
// passes a head start over a random assignment.
func Assign(h *hypergraph.Hypergraph) []bool {
	n := h.NumCells()
	assigned := make([]bool, n)
	placed := make([]bool, n)

	netOrder := make([]int, h.NumNets())
	for i := range netOrder {
		netOrder[i] = i
	}
	sort.Slice(netOrder, func(i, j int) bool {
		return h.NetSize(netOrder[i]) < h.NetSize(netOrder[j])
	})

	sizeA := 0

	placeCell := func(cellID int) {
		if placed[cellID] {
			return
		}
		placed[cellID] = true
		// Mirrors a real-valued `sizeA >= N*0.5` comparison without
		// floating point: 2*sizeA >= n iff sizeA >= n/2.0.
		if 2*sizeA >= n {
			assigned[cellID] = true // B
		} else {
			assigned[cellID] = false // A
			sizeA++
		}
	}

	for _, netID := range netOrder {
		for _, cellID := range h.CellsOfNet(netID) {
			placeCell(cellID)
		}
	}

	// Any cell that somehow appears in no net (not possible for a
	// well-formed netlist, but cheap to make total) still gets placed.
	for cellID := 0; cellID < n; cellID++ {
		placeCell(cellID)
	}

	return assigned
}
