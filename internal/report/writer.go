// Package report writes a partitioning Result in the plain-text result
// grammar:
//
//	Cutsize = <K>
//	G1 <|A|>
//	<cellA_1> <cellA_2> ... <cellA_{|A|}> ;
//	G2 <|B|>
//	<cellB_1> <cellB_2> ... <cellB_{|B|}> ;
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fmpart/fmpart/internal/partition"
)

// Writer writes a partition.Result to the result grammar.
type Writer struct{}

// NewWriter creates a result writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write writes res to w in the result grammar.
func (Writer) Write(res *partition.Result, w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "Cutsize = %d\n", res.CutSize); err != nil {
		return fmt.Errorf("write cutsize: %w", err)
	}
	if err := writeGroup(bw, "G1", res.CellsA); err != nil {
		return fmt.Errorf("write G1: %w", err)
	}
	if err := writeGroup(bw, "G2", res.CellsB); err != nil {
		return fmt.Errorf("write G2: %w", err)
	}

	return bw.Flush()
}

func writeGroup(bw *bufio.Writer, label string, cells []string) error {
	if _, err := fmt.Fprintf(bw, "%s %d\n", label, len(cells)); err != nil {
		return err
	}
	for _, cell := range cells {
		if _, err := bw.WriteString(cell); err != nil {
			return err
		}
		if _, err := bw.WriteString(" "); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString(";\n"); err != nil {
		return err
	}
	return nil
}

// WriteToFile writes res to the result grammar at path, creating or
// truncating the file.
func (w Writer) WriteToFile(res *partition.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return w.Write(res, f)
}
