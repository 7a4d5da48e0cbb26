package partition

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmpart/fmpart/internal/hypergraph"
	fmerrors "github.com/fmpart/fmpart/pkg/errors"
)

func buildNets(t *testing.T, nets map[string][]string) *hypergraph.Hypergraph {
	t.Helper()
	b := hypergraph.NewBuilder()
	for name, cells := range nets {
		b.AddNet(name, cells)
	}
	return b.Build()
}

func TestSession_TrivialTwoCellsOneNet(t *testing.T) {
	h := buildNets(t, map[string][]string{"n1": {"c1", "c2"}})
	sess, err := NewSession(h, 0.5)
	require.NoError(t, err)

	res, err := sess.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.CutSize)
	assert.Equal(t, 1, res.PartSizeA)
	assert.Equal(t, 1, res.PartSizeB)
}

func TestSession_StarFourLeaves(t *testing.T) {
	h := buildNets(t, map[string][]string{
		"n1": {"center", "leaf1"},
		"n2": {"center", "leaf2"},
		"n3": {"center", "leaf3"},
		"n4": {"center", "leaf4"},
	})
	sess, err := NewSession(h, 0.5)
	require.NoError(t, err)

	res, err := sess.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.CutSize)
	assert.Contains(t, []int{2, 3}, res.PartSizeA)
	assert.Contains(t, []int{2, 3}, res.PartSizeB)
}

func TestSession_TwoDisjointTriangles(t *testing.T) {
	h := buildNets(t, map[string][]string{
		"n1": {"a", "b", "c"},
		"n2": {"d", "e", "f"},
	})
	sess, err := NewSession(h, 0.5)
	require.NoError(t, err)

	res, err := sess.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, res.CutSize)
	assert.Equal(t, 3, res.PartSizeA)
	assert.Equal(t, 3, res.PartSizeB)
}

func TestSession_ChainOfThreeTwoPinNets(t *testing.T) {
	h := buildNets(t, map[string][]string{
		"n1": {"c1", "c2"},
		"n2": {"c2", "c3"},
		"n3": {"c3", "c4"},
	})
	sess, err := NewSession(h, 0.5)
	require.NoError(t, err)

	res, err := sess.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.CutSize)
	assert.Contains(t, []int{1, 2, 3}, res.PartSizeA)
	assert.Contains(t, []int{1, 2, 3}, res.PartSizeB)
}

func TestSession_BalanceInfeasibleCornerIsRejected(t *testing.T) {
	h := buildNets(t, map[string][]string{"n1": {"a", "b", "c"}})
	_, err := NewSession(h, 0.1)
	require.Error(t, err)
	assert.True(t, fmerrors.IsInfeasible(err))
}

func TestSession_DuplicateCellInNetBehavesAsCollapsed(t *testing.T) {
	withDup := buildNets(t, map[string][]string{"n1": {"c1", "c1", "c2"}})
	without := buildNets(t, map[string][]string{"n1": {"c1", "c2"}})

	sessDup, err := NewSession(withDup, 0.5)
	require.NoError(t, err)
	resDup, err := sessDup.Run(context.Background())
	require.NoError(t, err)

	sessPlain, err := NewSession(without, 0.5)
	require.NoError(t, err)
	resPlain, err := sessPlain.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, resPlain.CutSize, resDup.CutSize)
}

func TestSession_CutSizeNeverIncreasesAcrossPasses(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 5; trial++ {
		n := 10 + rng.Intn(40)
		b := hypergraph.NewBuilder()
		names := make([]string, n)
		for i := range names {
			names[i] = "c" + string(rune('a'+i%26)) + string(rune('0'+i/26))
		}
		numNets := 10 + rng.Intn(30)
		for i := 0; i < numNets; i++ {
			size := 2 + rng.Intn(4)
			if size > n {
				size = n
			}
			cells := make([]string, 0, size)
			for j := 0; j < size; j++ {
				cells = append(cells, names[rng.Intn(n)])
			}
			b.AddNet("net", cells)
		}
		h := b.Build()
		sess, err := NewSession(h, 0.5)
		if err != nil {
			continue // infeasible draw, skip
		}
		res, err := sess.Run(context.Background())
		require.NoError(t, err)
		assert.LessOrEqual(t, res.CutSize, res.InitialCut)

		// Only names drawn into some net become cells, so N can be below n.
		numCells := h.NumCells()
		lower, upper := balanceWindow(numCells, 0.5)
		assert.GreaterOrEqual(t, res.PartSizeA, lower)
		assert.LessOrEqual(t, res.PartSizeA, upper)
		assert.GreaterOrEqual(t, res.PartSizeB, lower)
		assert.LessOrEqual(t, res.PartSizeB, upper)
		assert.Equal(t, numCells, res.PartSizeA+res.PartSizeB)
	}
}
