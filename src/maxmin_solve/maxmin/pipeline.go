package maxmin

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Params configures one run over a loaded instance.
type Params struct {
	P         float64 `validate:"gte=0,lte=1"`
	K         int     `validate:"min=1"`
	L         int     `validate:"min=1"`
	Sampling  SamplingMode
	Tolerance float64 `validate:"gt=0"`
}

func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return nil
}

// Run augments the conflicts of inst, builds the fairness LP and solves it
// with solver. inst is modified in place. Constraint violations found after
// solving are logged, not returned.
func Run(inst *Instance, params Params, src rand.Source, solver LPSolver, logger zerolog.Logger) (*Model, *Solution, error) {
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}

	available, err := PapersAvailable(inst.NumPapers, params.P)
	if err != nil {
		return nil, nil, err
	}
	before := inst.CountConflicts()
	if err := inst.AddRandomConflicts(inst.NumPapers-available, params.Sampling, src); err != nil {
		return nil, nil, err
	}
	logger.Debug().
		Int("papers_available", available).
		Str("sampling", params.Sampling.String()).
		Int("conflicts_before", before).
		Int("conflicts_after", inst.CountConflicts()).
		Msg("conflicts augmented")

	t := time.Now()
	model, err := BuildModel(inst, params.K, params.L)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug().
		Int("cols", model.LP.NumCols()).
		Int("rows", model.LP.NumRows()).
		Int("nonzeros", len(model.LP.ConstMatrix)).
		Dur("elapsed", time.Since(t)).
		Msg("model built")

	sol, err := model.Solve(solver)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().
		Str("backend", sol.Backend).
		Float64("objective", sol.Objective).
		Dur("elapsed", sol.Runtime).
		Msg("model solved")

	for _, v := range Verify(model, sol, params.Tolerance) {
		logger.Warn().
			Str("constraint", v.Constraint).
			Int("index", v.Index).
			Float64("value", v.Value).
			Float64("limit", v.Limit).
			Msg("solution violates constraint")
	}
	return model, sol, nil
}
