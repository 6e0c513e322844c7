// Package highs runs maxmin linear programs through the HiGHS solver.
package highs

import (
	"slices"

	"github.com/lanl/highs"

	"fair_review_assignment/src/maxmin_solve/maxmin"
)

type Solver struct{}

func New() *Solver {
	return &Solver{}
}

func (s *Solver) Name() string {
	return "highs"
}

func defModel(prog *maxmin.LinearProgram) *highs.Model {
	lp := &highs.Model{
		Maximize:    prog.Maximize,
		ColCosts:    slices.Clone(prog.ColCosts),
		ColLower:    slices.Clone(prog.ColLower),
		ColUpper:    slices.Clone(prog.ColUpper),
		RowLower:    slices.Clone(prog.RowLower),
		RowUpper:    slices.Clone(prog.RowUpper),
		ConstMatrix: make([]highs.Nonzero, len(prog.ConstMatrix)),
	}
	for i, nz := range prog.ConstMatrix {
		lp.ConstMatrix[i] = highs.Nonzero{Row: nz.Row, Col: nz.Col, Val: nz.Val}
	}
	return lp
}

func (s *Solver) Solve(prog *maxmin.LinearProgram) (*maxmin.LPResult, error) {
	solution, err := defModel(prog).Solve()
	if err != nil {
		return nil, err
	}

	res := &maxmin.LPResult{
		Code:    int(solution.Status),
		Message: solution.Status.String(),
	}
	switch solution.Status {
	case highs.Optimal:
		res.Status = maxmin.StatusOptimal
		res.ColumnPrimal = solution.ColumnPrimal
		res.Objective = solution.Objective
	case highs.Infeasible:
		res.Status = maxmin.StatusInfeasible
	case highs.Unbounded:
		res.Status = maxmin.StatusUnbounded
	case highs.UnboundedOrInfeasible:
		res.Status = maxmin.StatusUnboundedOrInfeasible
	default:
		res.Status = maxmin.StatusError
	}
	return res, nil
}
