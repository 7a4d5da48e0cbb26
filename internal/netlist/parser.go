// Package netlist parses the textual hypergraph input format into an
// internal/hypergraph.Hypergraph.
package netlist

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fmpart/fmpart/internal/hypergraph"
	fmerrors "github.com/fmpart/fmpart/pkg/errors"
)

// Result is the outcome of parsing a netlist file: the hypergraph plus
// the balance factor that preceded it in the input.
type Result struct {
	Hypergraph     *hypergraph.Hypergraph
	BalanceFactor  float64
}

// Parse reads the grammar
//
//	<balance_factor>  { NET  <net_name>  { <cell_name> }+  ; }*
//
// from r. Consecutive duplicate cell names within one net's cell list are
// collapsed before the net is registered.
func Parse(r io.Reader) (*Result, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	next := func() (string, bool) {
		if sc.Scan() {
			return sc.Text(), true
		}
		return "", false
	}

	tok, ok := next()
	if !ok {
		return nil, fmerrors.Wrap(fmerrors.CodeParseError, "empty input: expected balance factor", nil)
	}
	bf, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil, fmerrors.Wrap(fmerrors.CodeParseError, fmt.Sprintf("invalid balance factor %q", tok), err)
	}
	if bf <= 0 || bf >= 1 {
		return nil, fmerrors.Wrap(fmerrors.CodeParseError, fmt.Sprintf("balance factor %v out of range (0,1)", bf), nil)
	}

	builder := hypergraph.NewBuilder()

	for {
		tok, ok = next()
		if !ok {
			break
		}
		if !strings.EqualFold(tok, "NET") {
			return nil, fmerrors.Wrap(fmerrors.CodeParseError, fmt.Sprintf("expected NET, got %q", tok), nil)
		}

		netName, ok := next()
		if !ok {
			return nil, fmerrors.Wrap(fmerrors.CodeParseError, "expected net name after NET", nil)
		}

		var cellNames []string
		lastName := ""
		terminated := false
		for {
			cellOrSemi, ok := next()
			if !ok {
				return nil, fmerrors.Wrap(fmerrors.CodeParseError, fmt.Sprintf("unterminated net %q: missing ;", netName), nil)
			}
			if cellOrSemi == ";" {
				terminated = true
				break
			}
			if cellOrSemi == lastName {
				// consecutive duplicate: collapsed per the parser's contract
				continue
			}
			cellNames = append(cellNames, cellOrSemi)
			lastName = cellOrSemi
		}
		if !terminated || len(cellNames) == 0 {
			return nil, fmerrors.Wrap(fmerrors.CodeParseError, fmt.Sprintf("net %q has no cells", netName), nil)
		}

		builder.AddNet(netName, cellNames)
	}

	if builder.NumNets() == 0 {
		return nil, fmerrors.Wrap(fmerrors.CodeParseError, "no nets found in input", nil)
	}

	return &Result{Hypergraph: builder.Build(), BalanceFactor: bf}, nil
}
