package hypergraph

// Builder assigns dense integer ids to cells and nets as they are first
// seen, and canonicalizes each net's cell list so no cell appears twice.
// It mirrors the parser's contract described at the package boundary: the
// core may assume per-net cell uniqueness once a Hypergraph is built.
type Builder struct {
	nameToCell map[string]int
	cells      []Cell
	nets       []Net
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{nameToCell: make(map[string]int)}
}

// cellID returns the id for a cell name, creating it if unseen.
func (b *Builder) cellID(name string) int {
	if id, ok := b.nameToCell[name]; ok {
		return id
	}
	id := len(b.cells)
	b.nameToCell[name] = id
	b.cells = append(b.cells, Cell{ID: id, Name: name})
	return id
}

// AddNet registers a net with the given name and ordered member cell
// names. Consecutive duplicate names are collapsed by the caller (the
// parser's contract); AddNet additionally de-duplicates non-adjacent
// repeats so every net ends up with a distinct cell set regardless of
// how the duplicates were spread out in the input.
func (b *Builder) AddNet(name string, cellNames []string) int {
	netID := len(b.nets)
	seen := make(map[int]bool, len(cellNames))
	cellIDs := make([]int, 0, len(cellNames))

	for _, cn := range cellNames {
		cid := b.cellID(cn)
		if seen[cid] {
			continue
		}
		seen[cid] = true
		cellIDs = append(cellIDs, cid)
		b.cells[cid].Nets = append(b.cells[cid].Nets, netID)
		b.cells[cid].PinCount++
	}

	b.nets = append(b.nets, Net{ID: netID, Name: name, Cells: cellIDs})
	return netID
}

// Build finalizes the Hypergraph.
func (b *Builder) Build() *Hypergraph {
	return New(b.cells, b.nets)
}

// NumCells reports the number of distinct cells registered so far.
func (b *Builder) NumCells() int { return len(b.cells) }

// NumNets reports the number of nets registered so far.
func (b *Builder) NumNets() int { return len(b.nets) }
