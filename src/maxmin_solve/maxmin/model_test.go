package maxmin_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fair_review_assignment/src/maxmin_solve/maxmin"
)

func TestBuildModelShape(t *testing.T) {
	inst := newInstance(t,
		[][]float64{{1, 2, 0}, {3, 4, 5}},
		[][]float64{{0, 1, 0}, {0, 0, 0}},
	)
	m, err := maxmin.BuildModel(inst, 2, 1)
	require.NoError(t, err)

	// one bound plus n*d assignment columns; d fairness, n load and d coverage rows
	assert.Equal(t, 1+2*3, m.LP.NumCols())
	assert.Equal(t, 3+2+3, m.LP.NumRows())
	assert.True(t, m.LP.Maximize)

	assert.Equal(t, 0, m.Bound)
	assert.Equal(t, maxmin.FairnessBound, m.Vars[m.Bound].Role)
	assert.Equal(t, 1.0, m.LP.ColCosts[m.Bound])
	assert.Equal(t, 0.0, m.LP.ColLower[m.Bound])
	assert.True(t, math.IsInf(m.LP.ColUpper[m.Bound], 1))

	for i := range inst.NumReviewers {
		for j := range inst.NumPapers {
			col := m.Columns[i][j]
			assert.Equal(t, 0.0, m.LP.ColCosts[col])
			assert.Equal(t, 0.0, m.LP.ColLower[col])
			if inst.IsConflict(i, j) {
				assert.Equal(t, 0.0, m.LP.ColUpper[col], "conflicted column %d,%d must be fixed", i, j)
			} else {
				assert.Equal(t, 1.0, m.LP.ColUpper[col])
			}
			v := m.Vars[col]
			assert.Equal(t, maxmin.Assignment, v.Role)
			assert.Equal(t, i, v.Reviewer)
			assert.Equal(t, j, v.Paper)
		}
	}
}

func TestBuildModelColumnOrder(t *testing.T) {
	inst := newInstance(t, [][]float64{{1, 2}, {3, 4}}, nil)
	m, err := maxmin.BuildModel(inst, 2, 1)
	require.NoError(t, err)

	names := make([]string, 0, len(m.Vars))
	for _, v := range m.Vars {
		names = append(names, v.Name(inst.NumReviewers))
	}
	assert.Equal(t, []string{"min_similarity", "0 2", "1 2", "0 3", "1 3"}, names)
	assert.Len(t, m.AssignmentVars(), 4)
}

func TestBuildModelRows(t *testing.T) {
	inst := newInstance(t, [][]float64{{1, 2}, {3, 0}}, nil)
	m, err := maxmin.BuildModel(inst, 3, 2)
	require.NoError(t, err)

	rows := make([]map[int]float64, m.LP.NumRows())
	for _, nz := range m.LP.ConstMatrix {
		if rows[nz.Row] == nil {
			rows[nz.Row] = make(map[int]float64)
		}
		rows[nz.Row][nz.Col] = nz.Val
	}
	col := m.Columns

	// fairness: t - sum_i s_ij x_ij <= 0, zero similarities left out
	assert.Equal(t, map[int]float64{m.Bound: 1, col[0][0]: -1, col[1][0]: -3}, rows[0])
	assert.Equal(t, map[int]float64{m.Bound: 1, col[0][1]: -2}, rows[1])
	for r := range 2 {
		assert.True(t, math.IsInf(m.LP.RowLower[r], -1))
		assert.Equal(t, 0.0, m.LP.RowUpper[r])
	}

	// load caps
	assert.Equal(t, map[int]float64{col[0][0]: 1, col[0][1]: 1}, rows[2])
	assert.Equal(t, map[int]float64{col[1][0]: 1, col[1][1]: 1}, rows[3])
	assert.Equal(t, 3.0, m.LP.RowUpper[2])

	// coverage
	assert.Equal(t, map[int]float64{col[0][0]: 1, col[1][0]: 1}, rows[4])
	assert.Equal(t, map[int]float64{col[0][1]: 1, col[1][1]: 1}, rows[5])
	assert.Equal(t, 2.0, m.LP.RowLower[5])
	assert.Equal(t, 2.0, m.LP.RowUpper[5])
}

func TestBuildModelRejectsParameters(t *testing.T) {
	inst := newInstance(t, [][]float64{{1}}, nil)
	for _, kl := range [][2]int{{0, 1}, {1, 0}, {-1, 1}} {
		_, err := maxmin.BuildModel(inst, kl[0], kl[1])
		require.ErrorIs(t, err, maxmin.ErrInvalidConfiguration)
	}
}
