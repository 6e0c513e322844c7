package maxmin

import (
	"fmt"
	"math"
)

type Violation struct {
	Constraint string
	Index      int
	Value      float64
	Limit      float64
}

func (v Violation) String() string {
	return fmt.Sprintf("%s %d: %g (limit %g)", v.Constraint, v.Index, v.Value, v.Limit)
}

// Verify checks sol against the model's constraints within eps and returns
// every violated one.
func Verify(m *Model, sol *Solution, eps float64) []Violation {
	inst := m.Instance
	var violations []Violation

	for i := range inst.NumReviewers {
		for j := range inst.NumPapers {
			x := sol.Assignment.At(i, j)
			cell := i*inst.NumPapers + j
			if inst.IsConflict(i, j) && x != 0 {
				violations = append(violations, Violation{"conflict", cell, x, 0})
			}
			if x < -eps || x > 1+eps {
				violations = append(violations, Violation{"bounds", cell, x, 1})
			}
		}
		if load := sol.ReviewerLoad(i); load > float64(m.K)+eps {
			violations = append(violations, Violation{"load", i, load, float64(m.K)})
		}
	}

	minSimilarity := math.Inf(1)
	for j := range inst.NumPapers {
		if cov := sol.PaperCoverage(j); math.Abs(cov-float64(m.L)) > eps {
			violations = append(violations, Violation{"coverage", j, cov, float64(m.L)})
		}
		minSimilarity = math.Min(minSimilarity, sol.PaperSimilarity(inst, j))
	}

	// the bound is compared relative to the similarity scale
	scale := math.Max(1, math.Abs(minSimilarity))
	if math.Abs(sol.Objective-minSimilarity) > eps*scale {
		violations = append(violations, Violation{"objective", -1, sol.Objective, minSimilarity})
	}
	return violations
}
