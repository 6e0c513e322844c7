package maxmin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fair_review_assignment/src/maxmin_solve/maxmin"
)

func TestBottlenecks(t *testing.T) {
	inst := newInstance(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, nil)
	sol := &maxmin.Solution{Assignment: dense([][]float64{{1, 0, 1}, {0, 1, 0}})}

	// paper similarities: 1, 5, 3
	assert.Equal(t, []maxmin.PaperScore{{Paper: 0, Similarity: 1}, {Paper: 2, Similarity: 3}},
		maxmin.Bottlenecks(inst, sol, 2))
	assert.Len(t, maxmin.Bottlenecks(inst, sol, 10), 3)
	assert.Empty(t, maxmin.Bottlenecks(inst, sol, 0))
	assert.Empty(t, maxmin.Bottlenecks(inst, sol, -1))
}
