// Package hypergraph holds the immutable-after-load description of cells
// and nets that the partitioning core operates on.
package hypergraph

// Cell is a vertex of the hypergraph: the unit of assignment.
type Cell struct {
	ID       int
	Name     string
	Nets     []int // net ids this cell participates in, in first-seen order
	PinCount int   // len(Nets), cached for convenience
}

// Net is a hyperedge: the set of distinct cells it connects.
type Net struct {
	ID    int
	Name  string
	Cells []int // distinct cell ids, in first-seen order
}

// Hypergraph is the read-only, indexed graph the partitioning core consumes.
// Cells and nets are stored in dense, id-indexed slices rather than maps,
// since ids are assigned densely at load time and never change afterward.
type Hypergraph struct {
	cells   []Cell
	nets    []Net
	maxPin  int
}

// New builds a Hypergraph from already-canonicalized cells and nets.
// Callers normally reach this via Builder rather than constructing a
// Hypergraph directly.
func New(cells []Cell, nets []Net) *Hypergraph {
	maxPin := 0
	for i := range cells {
		if cells[i].PinCount > maxPin {
			maxPin = cells[i].PinCount
		}
	}
	return &Hypergraph{cells: cells, nets: nets, maxPin: maxPin}
}

// NumCells returns the number of cells, N.
func (h *Hypergraph) NumCells() int { return len(h.cells) }

// NumNets returns the number of nets, M.
func (h *Hypergraph) NumNets() int { return len(h.nets) }

// MaxPin returns the maximum pin count over all cells; gains are bounded
// in [-MaxPin, +MaxPin].
func (h *Hypergraph) MaxPin() int { return h.maxPin }

// Cell returns the cell with the given id. The returned value is a copy;
// Cell fields never change after load so sharing is safe.
func (h *Hypergraph) Cell(id int) Cell { return h.cells[id] }

// Net returns the net with the given id.
func (h *Hypergraph) Net(id int) Net { return h.nets[id] }

// CellsOfNet returns the distinct cell ids incident to a net.
func (h *Hypergraph) CellsOfNet(netID int) []int { return h.nets[netID].Cells }

// NetsOfCell returns the net ids a cell participates in.
func (h *Hypergraph) NetsOfCell(cellID int) []int { return h.cells[cellID].Nets }

// CellName returns the display name of a cell, for I/O only.
func (h *Hypergraph) CellName(id int) string { return h.cells[id].Name }

// NetName returns the display name of a net, for I/O only.
func (h *Hypergraph) NetName(id int) string { return h.nets[id].Name }

// NetSize returns the number of distinct cells in a net.
func (h *Hypergraph) NetSize(netID int) int { return len(h.nets[netID].Cells) }
