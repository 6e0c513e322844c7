package simplex_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"fair_review_assignment/src/maxmin_solve/maxmin"
	"fair_review_assignment/src/maxmin_solve/solvers/simplex"
)

var inf = math.Inf(1)

func nonzeros(rows [][]float64) []maxmin.Nonzero {
	var nzs []maxmin.Nonzero
	for r, row := range rows {
		for c, v := range row {
			if v != 0 {
				nzs = append(nzs, maxmin.Nonzero{Row: r, Col: c, Val: v})
			}
		}
	}
	return nzs
}

func dense(rows [][]float64) *mat.Dense {
	m := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		m.SetRow(i, row)
	}
	return m
}

func TestSolveOptimal(t *testing.T) {
	tests := []struct {
		name      string
		prog      *maxmin.LinearProgram
		objective float64
		primal    []float64
	}{
		{
			name: "maximize",
			prog: &maxmin.LinearProgram{
				Maximize:    true,
				ColCosts:    []float64{1, 2},
				ColLower:    []float64{0, 0},
				ColUpper:    []float64{inf, inf},
				RowLower:    []float64{-inf, -inf},
				RowUpper:    []float64{4, 9},
				ConstMatrix: nonzeros([][]float64{{-1, 2}, {3, 1}}),
			},
			objective: 8,
			primal:    []float64{2, 3},
		},
		{
			name: "minimize with lower row bound",
			prog: &maxmin.LinearProgram{
				ColCosts:    []float64{1, 1},
				ColLower:    []float64{0, 0},
				ColUpper:    []float64{10, 10},
				RowLower:    []float64{4},
				RowUpper:    []float64{inf},
				ConstMatrix: nonzeros([][]float64{{1, 2}}),
			},
			objective: 2,
			primal:    []float64{0, 2},
		},
		{
			name: "fixed column",
			prog: &maxmin.LinearProgram{
				Maximize:    true,
				ColCosts:    []float64{1, 1},
				ColLower:    []float64{2, 0},
				ColUpper:    []float64{2, 3},
				RowLower:    []float64{-inf},
				RowUpper:    []float64{4},
				ConstMatrix: nonzeros([][]float64{{1, 1}}),
			},
			objective: 4,
			primal:    []float64{2, 2},
		},
		{
			name: "shifted lower bound",
			prog: &maxmin.LinearProgram{
				ColCosts:    []float64{1},
				ColLower:    []float64{1.5},
				ColUpper:    []float64{4},
				RowLower:    []float64{-inf},
				RowUpper:    []float64{10},
				ConstMatrix: nonzeros([][]float64{{1}}),
			},
			objective: 1.5,
			primal:    []float64{1.5},
		},
		{
			name: "equality row",
			prog: &maxmin.LinearProgram{
				Maximize:    true,
				ColCosts:    []float64{3, 1},
				ColLower:    []float64{0, 0},
				ColUpper:    []float64{1, 1},
				RowLower:    []float64{1},
				RowUpper:    []float64{1},
				ConstMatrix: nonzeros([][]float64{{1, 1}}),
			},
			objective: 3,
			primal:    []float64{1, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := simplex.New().Solve(tt.prog)
			require.NoError(t, err)
			require.Equal(t, maxmin.StatusOptimal, res.Status, res.Message)
			assert.InDelta(t, tt.objective, res.Objective, 1e-9)
			assert.InDeltaSlice(t, tt.primal, res.ColumnPrimal, 1e-9)
		})
	}
}

func TestSolveStatus(t *testing.T) {
	tests := []struct {
		name   string
		prog   *maxmin.LinearProgram
		status maxmin.LPStatus
	}{
		{
			name: "infeasible row",
			prog: &maxmin.LinearProgram{
				ColCosts:    []float64{1},
				ColLower:    []float64{0},
				ColUpper:    []float64{1},
				RowLower:    []float64{2},
				RowUpper:    []float64{inf},
				ConstMatrix: nonzeros([][]float64{{1}}),
			},
			status: maxmin.StatusInfeasible,
		},
		{
			name: "empty column bounds",
			prog: &maxmin.LinearProgram{
				ColCosts: []float64{1},
				ColLower: []float64{1},
				ColUpper: []float64{0},
			},
			status: maxmin.StatusInfeasible,
		},
		{
			name: "unsatisfiable empty row",
			prog: &maxmin.LinearProgram{
				ColCosts: []float64{1},
				ColLower: []float64{0},
				ColUpper: []float64{1},
				RowLower: []float64{1},
				RowUpper: []float64{1},
			},
			status: maxmin.StatusInfeasible,
		},
		{
			name: "unconstrained column",
			prog: &maxmin.LinearProgram{
				Maximize: true,
				ColCosts: []float64{1},
				ColLower: []float64{0},
				ColUpper: []float64{inf},
			},
			status: maxmin.StatusUnbounded,
		},
		{
			name: "unbounded ray",
			prog: &maxmin.LinearProgram{
				Maximize:    true,
				ColCosts:    []float64{1, 1},
				ColLower:    []float64{0, 0},
				ColUpper:    []float64{inf, inf},
				RowLower:    []float64{-inf},
				RowUpper:    []float64{1},
				ConstMatrix: nonzeros([][]float64{{1, -1}}),
			},
			status: maxmin.StatusUnbounded,
		},
		{
			name: "free column",
			prog: &maxmin.LinearProgram{
				ColCosts: []float64{1},
				ColLower: []float64{-inf},
				ColUpper: []float64{inf},
			},
			status: maxmin.StatusError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := simplex.New().Solve(tt.prog)
			require.NoError(t, err)
			assert.Equal(t, tt.status, res.Status, res.Message)
			assert.NotEmpty(t, res.Message)
		})
	}
}

func TestSolveFairnessModel(t *testing.T) {
	sim := [][]float64{{1, 2}, {3, 4}}
	inst, err := maxmin.NewInstance(dense(sim), dense([][]float64{{0, 0}, {0, 0}}))
	require.NoError(t, err)
	m, err := maxmin.BuildModel(inst, 1, 1)
	require.NoError(t, err)

	res, err := simplex.New().Solve(m.LP)
	require.NoError(t, err)
	require.Equal(t, maxmin.StatusOptimal, res.Status)
	// reviewer 1 splits 3/4 to paper 0 and 1/4 to paper 1
	assert.InDelta(t, 2.5, res.Objective, 1e-9)
	assert.InDelta(t, res.Objective, res.ColumnPrimal[m.Bound], 1e-12)
}
