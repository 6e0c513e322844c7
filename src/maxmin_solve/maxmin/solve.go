package maxmin

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"
)

type LPStatus int

const (
	StatusOptimal LPStatus = iota
	StatusInfeasible
	StatusUnbounded
	StatusUnboundedOrInfeasible
	StatusError
)

func (s LPStatus) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusUnboundedOrInfeasible:
		return "unbounded or infeasible"
	case StatusError:
		return "error"
	}
	return fmt.Sprintf("LPStatus(%d)", int(s))
}

// LPResult is what a backend reports back. Code and Message carry the
// backend's own status when Status is not StatusOptimal.
type LPResult struct {
	Status       LPStatus
	ColumnPrimal []float64
	Objective    float64
	Code         int
	Message      string
}

// LPSolver solves a LinearProgram. Implementations live under solvers/.
type LPSolver interface {
	Name() string
	Solve(lp *LinearProgram) (*LPResult, error)
}

// Solve runs solver on the model and reads the assignment back.
func (m *Model) Solve(solver LPSolver) (*Solution, error) {
	t := time.Now()
	res, err := solver.Solve(m.LP)
	if err != nil {
		return nil, &SolverError{Backend: solver.Name(), Err: err}
	}

	switch res.Status {
	case StatusOptimal:
	case StatusInfeasible, StatusUnboundedOrInfeasible:
		// every column but the bound is boxed and the bound is capped by the
		// fairness rows, so the model cannot be unbounded
		return nil, fmt.Errorf("%w: %s reports %v", ErrInfeasible, solver.Name(), res.Status)
	default:
		msg := res.Message
		if msg == "" {
			msg = res.Status.String()
		}
		return nil, &SolverError{Backend: solver.Name(), Code: res.Code, Message: msg}
	}

	if len(res.ColumnPrimal) != m.LP.NumCols() {
		return nil, &SolverError{
			Backend: solver.Name(),
			Message: fmt.Sprintf("returned %d column values, model has %d", len(res.ColumnPrimal), m.LP.NumCols()),
		}
	}
	return m.extract(res, solver.Name(), time.Since(t)), nil
}

func (m *Model) extract(res *LPResult, backend string, elapsed time.Duration) *Solution {
	inst := m.Instance
	assignment := mat.NewDense(inst.NumReviewers, inst.NumPapers, nil)
	for _, v := range m.Vars {
		if v.Role != Assignment || inst.IsConflict(v.Reviewer, v.Paper) {
			continue
		}
		assignment.Set(v.Reviewer, v.Paper, res.ColumnPrimal[v.Col])
	}
	return &Solution{
		Assignment: assignment,
		Objective:  res.ColumnPrimal[m.Bound],
		Backend:    backend,
		Runtime:    elapsed,
	}
}
