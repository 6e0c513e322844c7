package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"fair_review_assignment/src/maxmin_solve/config"
	"fair_review_assignment/src/maxmin_solve/logging"
	"fair_review_assignment/src/maxmin_solve/maxmin"
	"fair_review_assignment/src/maxmin_solve/solvers/highs"
	"fair_review_assignment/src/maxmin_solve/solvers/lpsolve"
	"fair_review_assignment/src/maxmin_solve/solvers/simplex"
)

func newSolver(name string) (maxmin.LPSolver, error) {
	switch name {
	case "highs":
		return highs.New(), nil
	case "lpsolve":
		return lpsolve.New(), nil
	case "simplex":
		return simplex.New(), nil
	}
	return nil, fmt.Errorf("%w: unknown solver %q", maxmin.ErrInvalidConfiguration, name)
}

// parseArgs reads the four positional parameters: dataset, p, k, l.
func parseArgs(args []string) (map[string]any, error) {
	p, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: p: %v", maxmin.ErrInvalidConfiguration, err)
	}
	k, err := strconv.Atoi(args[2])
	if err != nil {
		return nil, fmt.Errorf("%w: k: %v", maxmin.ErrInvalidConfiguration, err)
	}
	l, err := strconv.Atoi(args[3])
	if err != nil {
		return nil, fmt.Errorf("%w: l: %v", maxmin.ErrInvalidConfiguration, err)
	}
	return map[string]any{"dataset": args[0], "p": p, "k": k, "l": l}, nil
}

// writeOutput replaces path atomically, so a failed run leaves any previous
// output untouched and never a partial file.
func writeOutput(path string, model *maxmin.Model, sol *maxmin.Solution) error {
	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644), renameio.WithExistingPermissions())
	if err != nil {
		return err
	}
	defer pf.Cleanup()

	if err := maxmin.WriteAssignment(pf, model, sol); err != nil {
		return err
	}
	return pf.CloseAtomicallyReplace()
}

func run(cmd *cobra.Command, args []string) error {
	start := time.Now()

	overrides, err := parseArgs(args)
	if err != nil {
		return err
	}
	for flag, key := range map[string]string{
		"solver":      "solver",
		"sampling":    "sampling",
		"seed":        "seed",
		"output":      "output",
		"tolerance":   "tolerance",
		"bottlenecks": "bottlenecks",
		"log-level":   "logging.level",
		"log-format":  "logging.format",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath, overrides)
	if err != nil {
		return err
	}
	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})

	params, err := cfg.Params()
	if err != nil {
		return err
	}
	solver, err := newSolver(cfg.Solver)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Info().Uint64("seed", seed).Str("dataset", cfg.Dataset).Msg("starting")

	inst, err := maxmin.LoadInstance(cfg.Dataset)
	if err != nil {
		return err
	}
	logger.Debug().
		Int("reviewers", inst.NumReviewers).
		Int("papers", inst.NumPapers).
		Int("conflicts", inst.CountConflicts()).
		Msg("instance loaded")

	model, sol, err := maxmin.Run(inst, params, rand.NewPCG(seed, seed), solver, logger)
	if err != nil {
		return err
	}
	if err := writeOutput(cfg.Output, model, sol); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Output, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, sol.Objective)
	for _, ps := range maxmin.Bottlenecks(inst, sol, cfg.Bottlenecks) {
		fmt.Fprintf(out, "paper %d: %v\n", ps.Paper, ps.Similarity)
	}
	fmt.Fprintln(out, "time taken:", time.Since(start))
	return nil
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, maxmin.ErrInvalidConfiguration):
		return 2
	case errors.Is(err, maxmin.ErrInvalidInput):
		return 3
	case errors.Is(err, maxmin.ErrInfeasible):
		return 4
	case errors.Is(err, maxmin.ErrSolver):
		return 5
	}
	return 1
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maxmin_solve <dataset.npz> <p> <k> <l>",
		Short: "Max-min fair fractional reviewer assignment",
		Long: `maxmin_solve computes a fractional reviewer-to-paper assignment that
maximizes the smallest total similarity any paper receives.

Every reviewer is first restricted to floor(d*p) visible papers by adding
random conflicts. Each reviewer then gets at most k papers and each paper
exactly l reviews. The assignment is written to the output file and the
optimal minimum similarity to stdout.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(4)(cmd, args); err != nil {
				return fmt.Errorf("%w: %v", maxmin.ErrInvalidConfiguration, err)
			}
			return nil
		},
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", maxmin.ErrInvalidConfiguration, err)
	})
	cmd.Flags().String("config", "", "YAML configuration file")
	cmd.Flags().String("solver", "highs", "LP backend: highs, lpsolve or simplex")
	cmd.Flags().String("sampling", "exact", "Conflict sampling: exact or parity (parity draws may overlap existing conflicts)")
	cmd.Flags().Uint64("seed", 0, "Random seed for conflict sampling, 0 picks one from the clock")
	cmd.Flags().StringP("output", "o", "output.txt", "Output file")
	cmd.Flags().Float64("tolerance", 1e-6, "Tolerance used when verifying the solution")
	cmd.Flags().Int("bottlenecks", 0, "Print the given number of papers with the lowest total similarity")
	cmd.Flags().String("log-level", "info", "Log level: trace, debug, info, warn, error or disabled")
	cmd.Flags().String("log-format", "console", "Log format: console or json")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", maxmin.Kind(err), err)
		os.Exit(exitCode(err))
	}
}
