package maxmin_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"fair_review_assignment/src/maxmin_solve/maxmin"
)

func dense(rows [][]float64) *mat.Dense {
	m := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		m.SetRow(i, row)
	}
	return m
}

func newInstance(t *testing.T, similarity, mask [][]float64) *maxmin.Instance {
	t.Helper()
	if mask == nil {
		mask = make([][]float64, len(similarity))
		for i := range mask {
			mask[i] = make([]float64, len(similarity[0]))
		}
	}
	inst, err := maxmin.NewInstance(dense(similarity), dense(mask))
	require.NoError(t, err)
	return inst
}

func cloneInstance(inst *maxmin.Instance) *maxmin.Instance {
	return &maxmin.Instance{
		NumReviewers: inst.NumReviewers,
		NumPapers:    inst.NumPapers,
		Similarity:   mat.DenseCopyOf(inst.Similarity),
		Conflicts:    mat.DenseCopyOf(inst.Conflicts),
	}
}

// fakeSolver returns a canned result.
type fakeSolver struct {
	res *maxmin.LPResult
	err error
}

func (f *fakeSolver) Name() string {
	return "fake"
}

func (f *fakeSolver) Solve(*maxmin.LinearProgram) (*maxmin.LPResult, error) {
	return f.res, f.err
}
