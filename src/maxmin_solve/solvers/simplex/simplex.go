// Package simplex solves maxmin linear programs with gonum's dense simplex
// method. It needs no native library, which makes it the backend for tests
// and small instances; the dense tableau grows with the square of the model.
package simplex

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"fair_review_assignment/src/maxmin_solve/maxmin"
)

const defaultTol = 1e-10

type Solver struct {
	Tol float64
}

func New() *Solver {
	return &Solver{Tol: defaultTol}
}

func (s *Solver) Name() string {
	return "simplex"
}

// equation is sum coeffs[y]*y + slack*s = rhs, where slack is 0 when the
// row has no slack variable.
type equation struct {
	coeffs map[int]float64
	slack  float64
	rhs    float64
}

// standardForm is min c^T y s.t. A y = b, y >= 0. Model column j equals
// offset[j] plus the y whose cols entry is j; slacks have cols entry -1.
type standardForm struct {
	c      []float64
	A      *mat.Dense
	b      []float64
	cols   []int
	offset []float64
}

func (s *Solver) Solve(prog *maxmin.LinearProgram) (*maxmin.LPResult, error) {
	sf, res := toStandardForm(prog)
	if res != nil {
		return res, nil
	}

	x := slices.Clone(sf.offset)
	if sf.A != nil {
		_, y, err := lp.Simplex(sf.c, sf.A, sf.b, s.Tol, nil)
		if err != nil {
			return statusFromError(err), nil
		}
		for k, col := range sf.cols {
			if col >= 0 {
				x[col] += y[k]
			}
		}
	}

	return &maxmin.LPResult{
		Status:       maxmin.StatusOptimal,
		ColumnPrimal: x,
		Objective:    floats.Dot(prog.ColCosts, x),
	}, nil
}

// toStandardForm shifts every column by its lower bound, drops fixed
// columns, turns finite upper bounds and row bounds into equations with
// slacks and removes columns no equation uses. A non-nil result means the
// program was decided without running the simplex.
func toStandardForm(prog *maxmin.LinearProgram) (*standardForm, *maxmin.LPResult) {
	numCols := prog.NumCols()
	sf := &standardForm{offset: make([]float64, numCols)}

	sign := 1.0
	if prog.Maximize {
		sign = -1
	}

	// y index of each model column, -1 when fixed
	yIdx := make([]int, numCols)
	for j := range numCols {
		lo, hi := prog.ColLower[j], prog.ColUpper[j]
		if math.IsInf(lo, -1) {
			return nil, &maxmin.LPResult{Status: maxmin.StatusError, Message: "free columns are not supported"}
		}
		if hi < lo {
			return nil, &maxmin.LPResult{Status: maxmin.StatusInfeasible, Message: "empty column bounds"}
		}
		sf.offset[j] = lo
		if hi == lo {
			yIdx[j] = -1
			continue
		}
		yIdx[j] = len(sf.cols)
		sf.cols = append(sf.cols, j)
		sf.c = append(sf.c, sign*prog.ColCosts[j])
	}

	coeffs := make([]map[int]float64, prog.NumRows())
	shift := make([]float64, prog.NumRows())
	for _, nz := range prog.ConstMatrix {
		shift[nz.Row] += nz.Val * sf.offset[nz.Col]
		if y := yIdx[nz.Col]; y >= 0 && nz.Val != 0 {
			if coeffs[nz.Row] == nil {
				coeffs[nz.Row] = make(map[int]float64)
			}
			coeffs[nz.Row][y] += nz.Val
		}
	}

	var eqs []equation
	for r := range prog.NumRows() {
		lo, hi := prog.RowLower[r]-shift[r], prog.RowUpper[r]-shift[r]
		if lo > hi {
			return nil, &maxmin.LPResult{Status: maxmin.StatusInfeasible, Message: "empty row bounds"}
		}
		if lo == hi {
			if len(coeffs[r]) == 0 {
				if lo != 0 {
					return nil, &maxmin.LPResult{Status: maxmin.StatusInfeasible, Message: "unsatisfiable empty row"}
				}
				continue
			}
			eqs = append(eqs, equation{coeffs[r], 0, lo})
			continue
		}
		if !math.IsInf(hi, 1) {
			eqs = append(eqs, equation{coeffs[r], 1, hi})
		}
		if !math.IsInf(lo, -1) {
			eqs = append(eqs, equation{coeffs[r], -1, lo})
		}
	}
	for j := range numCols {
		if y := yIdx[j]; y >= 0 && !math.IsInf(prog.ColUpper[j], 1) {
			eqs = append(eqs, equation{map[int]float64{y: 1}, 1, prog.ColUpper[j] - prog.ColLower[j]})
		}
	}
	if len(eqs) == 0 {
		for y, c := range sf.c {
			if c < 0 {
				return nil, &maxmin.LPResult{Status: maxmin.StatusUnbounded, Message: fmt.Sprintf("unconstrained improving column %d", sf.cols[y])}
			}
		}
		return sf, nil
	}

	// slacks go after the structural columns
	numStructural := len(sf.c)
	for _, eq := range eqs {
		if eq.slack != 0 {
			sf.cols = append(sf.cols, -1)
			sf.c = append(sf.c, 0)
		}
	}

	used := make([]bool, len(sf.c))
	rows := make([][]float64, len(eqs))
	slack := numStructural
	for r, eq := range eqs {
		rows[r] = make([]float64, len(sf.c))
		for y, v := range eq.coeffs {
			rows[r][y] = v
			used[y] = true
		}
		if eq.slack != 0 {
			rows[r][slack] = eq.slack
			used[slack] = true
			slack++
		}
		sf.b = append(sf.b, eq.rhs)
	}

	// an unused column stays at its lower bound unless it improves the
	// objective without limit
	keep := make([]int, 0, len(sf.c))
	for y, ok := range used {
		if ok {
			keep = append(keep, y)
		} else if sf.c[y] < 0 {
			return nil, &maxmin.LPResult{Status: maxmin.StatusUnbounded, Message: fmt.Sprintf("unconstrained improving column %d", sf.cols[y])}
		}
	}
	if len(eqs) > len(keep) {
		return nil, &maxmin.LPResult{Status: maxmin.StatusError, Message: "more equations than columns in standard form"}
	}

	c := make([]float64, len(keep))
	cols := make([]int, len(keep))
	sf.A = mat.NewDense(len(eqs), len(keep), nil)
	for k, y := range keep {
		c[k] = sf.c[y]
		cols[k] = sf.cols[y]
		for r := range rows {
			if v := rows[r][y]; v != 0 {
				sf.A.Set(r, k, v)
			}
		}
	}
	sf.c, sf.cols = c, cols
	return sf, nil
}

func statusFromError(err error) *maxmin.LPResult {
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return &maxmin.LPResult{Status: maxmin.StatusInfeasible, Message: err.Error()}
	case errors.Is(err, lp.ErrUnbounded):
		return &maxmin.LPResult{Status: maxmin.StatusUnbounded, Message: err.Error()}
	}
	return &maxmin.LPResult{Status: maxmin.StatusError, Message: err.Error()}
}
