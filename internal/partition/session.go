// Package partition implements the Fiduccia-Mattheyses two-way balanced
// min-cut engine: partition state, the gain-indexed bucket list, the
// four-case gain-update rule, and the pass/session drivers that repeat
// them to a local optimum.
package partition

import (
	"context"

	"github.com/fmpart/fmpart/internal/hypergraph"
	"github.com/fmpart/fmpart/internal/initial"
	"github.com/fmpart/fmpart/pkg/errors"
	"github.com/fmpart/fmpart/pkg/utils"
)

// Result reports the outcome of a partitioning session.
type Result struct {
	CutSize    int
	PartSizeA  int
	PartSizeB  int
	CellsA     []string
	CellsB     []string
	Passes     int
	InitialCut int
}

// Session owns a hypergraph and its partition state for the lifetime of
// one partitioning run, repeating passes until no further improvement is
// found.
type Session struct {
	hg  *hypergraph.Hypergraph
	s   *state
	log utils.Logger

	maxPasses int // 0 = unbounded, stop only on non-positive gain
}

// Option configures a Session at construction time.
type Option func(*Session)

// WithLogger attaches a logger for pass- and session-boundary info
// lines. Defaults to a NullLogger.
func WithLogger(log utils.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithMaxPasses caps the number of passes a session will run, regardless
// of whether later passes would still improve the cut. 0 means
// unbounded (stop only when a pass makes no positive improvement).
func WithMaxPasses(n int) Option {
	return func(s *Session) { s.maxPasses = n }
}

// NewSession builds a session for hg with the given balance factor,
// computing the deterministic initial assignment described for the
// boundary initial-partition heuristic. Returns an infeasible error if
// no split of N cells can satisfy bf.
func NewSession(hg *hypergraph.Hypergraph, balanceFactor float64, opts ...Option) (*Session, error) {
	if balanceFactor <= 0 || balanceFactor >= 1 {
		return nil, errors.Wrap(errors.CodeInvalidInput, "balance factor must be in (0,1)", nil)
	}
	if !feasible(hg.NumCells(), balanceFactor) {
		return nil, errors.ErrInfeasible
	}

	assign := initial.Assign(hg)
	st := newState(hg, assign, balanceFactor)

	sess := &Session{hg: hg, s: st, log: &utils.NullLogger{}}
	for _, opt := range opts {
		opt(sess)
	}
	return sess, nil
}

// Run repeats FM passes until a pass makes no positive improvement (or
// maxPasses is reached, if set), then reports the final partition.
func (sess *Session) Run(ctx context.Context) (*Result, error) {
	ctx, span := tracer.Start(ctx, "partition.session")
	defer span.End()

	sess.s.resetForPass()
	initialCut := sess.s.cutSize()

	runLog := sess.log.WithFields(map[string]interface{}{
		"cells": sess.hg.NumCells(),
		"nets":  sess.hg.NumNets(),
	})

	passes := 0
	for {
		passLog := runLog.WithField("pass", passes+1)
		res := runPass(ctx, sess.s, passLog)
		passes++
		passLog.Info("committed=%d/%d cut=%d", res.MovesCommitted, res.MovesConsidered, res.CutSizeAfter)

		if res.MaxAccGain <= 0 {
			break
		}
		if sess.maxPasses > 0 && passes >= sess.maxPasses {
			break
		}
	}

	// Recanonicalize derived bookkeeping from the final committed part
	// assignment so size and cut counters do not reflect an uncommitted
	// suffix from the terminating pass.
	sess.s.resetForPass()

	cellsA, cellsB := sess.collectCells()

	return &Result{
		CutSize:    sess.s.cutSize(),
		PartSizeA:  sess.s.partSize[boolIndex(A)],
		PartSizeB:  sess.s.partSize[boolIndex(B)],
		CellsA:     cellsA,
		CellsB:     cellsB,
		Passes:     passes,
		InitialCut: initialCut,
	}, nil
}

func (sess *Session) collectCells() (cellsA, cellsB []string) {
	cellsA = make([]string, 0, sess.s.partSize[boolIndex(A)])
	cellsB = make([]string, 0, sess.s.partSize[boolIndex(B)])
	for cellID, side := range sess.s.part {
		name := sess.hg.CellName(cellID)
		if side == A {
			cellsA = append(cellsA, name)
		} else {
			cellsB = append(cellsB, name)
		}
	}
	return cellsA, cellsB
}
