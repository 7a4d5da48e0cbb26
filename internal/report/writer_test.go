package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmpart/fmpart/internal/partition"
)

func TestWrite_Format(t *testing.T) {
	res := &partition.Result{
		CutSize:   1,
		PartSizeA: 2,
		PartSizeB: 1,
		CellsA:    []string{"c1", "c2"},
		CellsB:    []string{"c3"},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter().Write(res, &buf))

	want := "Cutsize = 1\n" +
		"G1 2\n" +
		"c1 c2 ;\n" +
		"G2 1\n" +
		"c3 ;\n"
	assert.Equal(t, want, buf.String())
}

func TestWrite_EmptySide(t *testing.T) {
	res := &partition.Result{
		CutSize:   0,
		PartSizeA: 0,
		PartSizeB: 2,
		CellsA:    nil,
		CellsB:    []string{"a", "b"},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter().Write(res, &buf))

	want := "Cutsize = 0\n" +
		"G1 0\n" +
		";\n" +
		"G2 2\n" +
		"a b ;\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "result.txt")

	res := &partition.Result{
		CutSize:   1,
		PartSizeA: 1,
		PartSizeB: 1,
		CellsA:    []string{"c1"},
		CellsB:    []string{"c2"},
	}

	require.NoError(t, NewWriter().WriteToFile(res, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Cutsize = 1\nG1 1\nc1 ;\nG2 1\nc2 ;\n", string(data))
}
