package maxmin

import (
	"fmt"
	"math"
)

type Nonzero struct {
	Row int
	Col int
	Val float64
}

// LinearProgram is a continuous LP in column/row form:
//
//	opt  ColCosts^T x
//	s.t. RowLower <= A x <= RowUpper
//	     ColLower <= x   <= ColUpper
//
// with A given as a list of nonzeros. Infinite bounds are math.Inf.
type LinearProgram struct {
	Maximize    bool
	ColCosts    []float64
	ColLower    []float64
	ColUpper    []float64
	RowLower    []float64
	RowUpper    []float64
	ConstMatrix []Nonzero
}

func (lp *LinearProgram) NumCols() int {
	return len(lp.ColCosts)
}

func (lp *LinearProgram) NumRows() int {
	return len(lp.RowLower)
}

func (lp *LinearProgram) addCol(cost, lower, upper float64) int {
	lp.ColCosts = append(lp.ColCosts, cost)
	lp.ColLower = append(lp.ColLower, lower)
	lp.ColUpper = append(lp.ColUpper, upper)
	return len(lp.ColCosts) - 1
}

func (lp *LinearProgram) addRow(lower float64, cols []int, vals []float64, upper float64) int {
	row := len(lp.RowLower)
	for k, col := range cols {
		lp.ConstMatrix = append(lp.ConstMatrix, Nonzero{Row: row, Col: col, Val: vals[k]})
	}
	lp.RowLower = append(lp.RowLower, lower)
	lp.RowUpper = append(lp.RowUpper, upper)
	return row
}

// Model is the max-min fairness LP of one instance together with the
// mapping from LP columns back to reviewers and papers.
type Model struct {
	Instance *Instance
	K        int
	L        int
	LP       *LinearProgram
	Vars     []Variable
	// Columns[i][j] is the LP column of reviewer i and paper j.
	Columns [][]int
	Bound   int
}

// BuildModel encodes: maximize t subject to t <= sum_i s_ij x_ij for every
// paper, sum_j x_ij <= k for every reviewer and sum_i x_ij == l for every
// paper, with conflicted x_ij fixed at 0.
func BuildModel(inst *Instance, k, l int) (*Model, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: reviewer load cap k = %d must be positive", ErrInvalidConfiguration, k)
	}
	if l <= 0 {
		return nil, fmt.Errorf("%w: reviews per paper l = %d must be positive", ErrInvalidConfiguration, l)
	}

	m := &Model{
		Instance: inst,
		K:        k,
		L:        l,
		LP:       &LinearProgram{Maximize: true},
		Columns:  make([][]int, inst.NumReviewers),
	}
	for i := range m.Columns {
		m.Columns[i] = make([]int, inst.NumPapers)
	}

	m.defVariables()
	m.defFairness()
	m.defLoadCaps()
	m.defCoverage()
	return m, nil
}

func (m *Model) defVariables() {
	inst := m.Instance
	m.Bound = m.LP.addCol(1, 0, math.Inf(1))
	m.Vars = append(m.Vars, Variable{Role: FairnessBound, Reviewer: -1, Paper: -1, Col: m.Bound})

	for j := range inst.NumPapers {
		for i := range inst.NumReviewers {
			upper := 1.0
			if inst.IsConflict(i, j) {
				upper = 0
			}
			col := m.LP.addCol(0, 0, upper)
			m.Columns[i][j] = col
			m.Vars = append(m.Vars, Variable{Role: Assignment, Reviewer: i, Paper: j, Col: col})
		}
	}
}

func (m *Model) defFairness() {
	inst := m.Instance
	cols := make([]int, 0, inst.NumReviewers+1)
	vals := make([]float64, 0, inst.NumReviewers+1)
	for j := range inst.NumPapers {
		cols = append(cols[:0], m.Bound)
		vals = append(vals[:0], 1)
		for i := range inst.NumReviewers {
			if s := inst.Similarity.At(i, j); s != 0 {
				cols = append(cols, m.Columns[i][j])
				vals = append(vals, -s)
			}
		}
		m.LP.addRow(math.Inf(-1), cols, vals, 0)
	}
}

func (m *Model) defLoadCaps() {
	inst := m.Instance
	cols := make([]int, inst.NumPapers)
	vals := make([]float64, inst.NumPapers)
	for j := range vals {
		vals[j] = 1
	}
	for i := range inst.NumReviewers {
		copy(cols, m.Columns[i])
		m.LP.addRow(math.Inf(-1), cols, vals, float64(m.K))
	}
}

func (m *Model) defCoverage() {
	inst := m.Instance
	cols := make([]int, inst.NumReviewers)
	vals := make([]float64, inst.NumReviewers)
	for i := range vals {
		vals[i] = 1
	}
	for j := range inst.NumPapers {
		for i := range inst.NumReviewers {
			cols[i] = m.Columns[i][j]
		}
		m.LP.addRow(float64(m.L), cols, vals, float64(m.L))
	}
}

// AssignmentVars yields the assignment variables in column order.
func (m *Model) AssignmentVars() []Variable {
	vars := make([]Variable, 0, len(m.Vars)-1)
	for _, v := range m.Vars {
		if v.Role == Assignment {
			vars = append(vars, v)
		}
	}
	return vars
}
