package maxmin

import (
	"fmt"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"
)

type Instance struct {
	NumReviewers int
	NumPapers    int
	Similarity   *mat.Dense
	Conflicts    *mat.Dense
}

type VarRole int

const (
	Assignment VarRole = iota
	FairnessBound
)

func (r VarRole) String() string {
	switch r {
	case Assignment:
		return "assignment"
	case FairnessBound:
		return "fairness_bound"
	}
	return fmt.Sprintf("VarRole(%d)", int(r))
}

// Variable describes one LP column. Reviewer and Paper are -1 for the
// fairness bound.
type Variable struct {
	Role     VarRole
	Reviewer int
	Paper    int
	Col      int
}

// Name renders the variable the way the output file lists it: papers are
// offset by numReviewers so both share one index space.
func (v Variable) Name(numReviewers int) string {
	if v.Role == FairnessBound {
		return "min_similarity"
	}
	return fmt.Sprintf("%d %d", v.Reviewer, v.Paper+numReviewers)
}

type Solution struct {
	Assignment *mat.Dense
	Objective  float64
	Backend    string
	Runtime    time.Duration
}

type PaperScore struct {
	Paper      int
	Similarity float64
}

func (inst *Instance) IsConflict(i, j int) bool {
	return inst.Conflicts.At(i, j) > 0.5
}

func (inst *Instance) CountConflicts() int {
	count := 0
	for i := range inst.NumReviewers {
		for j := range inst.NumPapers {
			if inst.IsConflict(i, j) {
				count++
			}
		}
	}
	return count
}

// VisiblePapers lists, in increasing order, the papers reviewer i may be
// assigned.
func (inst *Instance) VisiblePapers(i int) []int {
	visible := make([]int, 0, inst.NumPapers)
	for j := range inst.NumPapers {
		if !inst.IsConflict(i, j) {
			visible = append(visible, j)
		}
	}
	return visible
}

func (inst *Instance) String() string {
	s := new(strings.Builder)
	s.WriteString(fmt.Sprintf("N. reviewers: %d\n", inst.NumReviewers))
	s.WriteString(fmt.Sprintf("N. papers: %d\n", inst.NumPapers))
	s.WriteString(fmt.Sprintf("N. conflicts: %d\n", inst.CountConflicts()))
	for i := range inst.NumReviewers {
		fmt.Fprintf(s, "Reviewer %d: %d visible papers\n", i, len(inst.VisiblePapers(i)))
	}
	return s.String()
}

// PaperSimilarity is the total similarity paper j receives under sol.
func (sol *Solution) PaperSimilarity(inst *Instance, j int) float64 {
	return mat.Dot(sol.Assignment.ColView(j), inst.Similarity.ColView(j))
}

func (sol *Solution) ReviewerLoad(i int) float64 {
	return mat.Sum(sol.Assignment.RowView(i))
}

func (sol *Solution) PaperCoverage(j int) float64 {
	return mat.Sum(sol.Assignment.ColView(j))
}

func (sol *Solution) String() string {
	s := new(strings.Builder)
	fmt.Fprintf(s, "Min similarity: %f\n", sol.Objective)
	fmt.Fprintf(s, "Backend: %s\n", sol.Backend)
	fmt.Fprint(s, "Solve time: ", sol.Runtime)
	return s.String()
}
