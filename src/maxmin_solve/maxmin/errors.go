package maxmin

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrInfeasible           = errors.New("infeasible")
	ErrSolver               = errors.New("solver error")
)

// SolverError carries the diagnostic reported by an LP backend. It matches
// ErrSolver with errors.Is.
type SolverError struct {
	Backend string
	Code    int
	Message string
	Err     error
}

func (e *SolverError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrSolver, e.Backend, e.Err)
	}
	return fmt.Sprintf("%s: %s: code %d: %s", ErrSolver, e.Backend, e.Code, e.Message)
}

func (e *SolverError) Is(target error) bool {
	return target == ErrSolver
}

func (e *SolverError) Unwrap() error {
	return e.Err
}

// Kind names the error kind of err, or "error" if it has none.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidConfiguration):
		return "InvalidConfiguration"
	case errors.Is(err, ErrInvalidInput):
		return "InvalidInput"
	case errors.Is(err, ErrInfeasible):
		return "Infeasible"
	case errors.Is(err, ErrSolver):
		return "SolverError"
	}
	return "error"
}

func errorCoalesce(args ...error) error {
	for _, e := range args {
		if e != nil {
			return e
		}
	}
	return nil
}
