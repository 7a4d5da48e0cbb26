package hypergraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_AssignsDenseIDs(t *testing.T) {
	b := NewBuilder()
	b.AddNet("n1", []string{"c1", "c2"})
	b.AddNet("n2", []string{"c2", "c3"})

	h := b.Build()
	require.Equal(t, 3, h.NumCells())
	require.Equal(t, 2, h.NumNets())

	assert.Equal(t, "c1", h.CellName(0))
	assert.Equal(t, "c2", h.CellName(1))
	assert.Equal(t, "c3", h.CellName(2))
}

func TestBuilder_CollapsesDuplicateCellsInNet(t *testing.T) {
	b := NewBuilder()
	b.AddNet("n1", []string{"c1", "c1", "c2"})
	h := b.Build()

	assert.Equal(t, 2, h.NetSize(0))
	assert.ElementsMatch(t, []int{0, 1}, h.CellsOfNet(0))
}

func TestBuilder_NonAdjacentDuplicatesAlsoCollapsed(t *testing.T) {
	b := NewBuilder()
	b.AddNet("n1", []string{"c1", "c2", "c1"})
	h := b.Build()

	assert.Equal(t, 2, h.NetSize(0))
}

func TestHypergraph_PinCountAndMaxPin(t *testing.T) {
	b := NewBuilder()
	b.AddNet("n1", []string{"c1", "c2"})
	b.AddNet("n2", []string{"c1", "c3"})
	b.AddNet("n3", []string{"c1", "c4"})
	h := b.Build()

	assert.Equal(t, 3, h.Cell(0).PinCount)
	assert.Equal(t, 3, h.MaxPin())
}

func TestHypergraph_NetsOfCell(t *testing.T) {
	b := NewBuilder()
	b.AddNet("n1", []string{"c1", "c2"})
	b.AddNet("n2", []string{"c1", "c3"})
	h := b.Build()

	assert.Equal(t, []int{0, 1}, h.NetsOfCell(0))
}
