// Package lpsolve runs maxmin linear programs through lp_solve.
package lpsolve

import (
	"fmt"
	"math"

	"github.com/draffensperger/golp"

	"fair_review_assignment/src/maxmin_solve/maxmin"
)

// lp_solve treats any bound at or beyond 1e30 as infinite.
const infinity = 1e30

type Solver struct{}

func New() *Solver {
	return &Solver{}
}

func (s *Solver) Name() string {
	return "lpsolve"
}

func clampInf(v float64) float64 {
	return math.Max(-infinity, math.Min(infinity, v))
}

func defModel(prog *maxmin.LinearProgram) (*golp.LP, error) {
	lp := golp.NewLP(0, prog.NumCols())
	lp.SetVerboseLevel(golp.NEUTRAL)

	for j := range prog.NumCols() {
		lp.SetBounds(j, clampInf(prog.ColLower[j]), clampInf(prog.ColUpper[j]))
	}
	lp.SetObjFn(prog.ColCosts)
	if prog.Maximize {
		lp.SetMaximize()
	}

	rows := make([][]golp.Entry, prog.NumRows())
	for _, nz := range prog.ConstMatrix {
		rows[nz.Row] = append(rows[nz.Row], golp.Entry{Col: nz.Col, Val: nz.Val})
	}
	for r, entries := range rows {
		lo, hi := prog.RowLower[r], prog.RowUpper[r]
		if lo == hi {
			if err := lp.AddConstraintSparse(entries, golp.EQ, lo); err != nil {
				return nil, err
			}
			continue
		}
		if !math.IsInf(hi, 1) {
			if err := lp.AddConstraintSparse(entries, golp.LE, hi); err != nil {
				return nil, err
			}
		}
		if !math.IsInf(lo, -1) {
			if err := lp.AddConstraintSparse(entries, golp.GE, lo); err != nil {
				return nil, err
			}
		}
	}
	return lp, nil
}

func (s *Solver) Solve(prog *maxmin.LinearProgram) (*maxmin.LPResult, error) {
	lp, err := defModel(prog)
	if err != nil {
		return nil, err
	}

	ret := lp.Solve()
	res := &maxmin.LPResult{
		Code:    int(ret),
		Message: fmt.Sprintf("lp_solve status %d", int(ret)),
	}
	switch ret {
	case golp.OPTIMAL:
		res.Status = maxmin.StatusOptimal
		res.ColumnPrimal = lp.Variables()
		res.Objective = lp.Objective()
	case golp.INFEASIBLE:
		res.Status = maxmin.StatusInfeasible
	case golp.UNBOUNDED:
		res.Status = maxmin.StatusUnbounded
	default:
		res.Status = maxmin.StatusError
	}
	return res, nil
}
