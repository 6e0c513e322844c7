package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"fair_review_assignment/src/maxmin_solve/maxmin"
)

// GenerateInstance draws uniform similarities in [0,1) and, for each
// reviewer, conflicts with a normally distributed fraction of the papers.
func GenerateInstance(numReviewers, numPapers int, meanDensity, stdDevDensity float64, rnd *rand.Rand) (*maxmin.Instance, error) {
	similarity := mat.NewDense(numReviewers, numPapers, nil)
	conflicts := mat.NewDense(numReviewers, numPapers, nil)

	for i := range numReviewers {
		for j := range numPapers {
			similarity.Set(i, j, rnd.Float64())
		}

		r := math.Max(0, math.Min(1, meanDensity+stdDevDensity*rnd.NormFloat64()))
		numConflicts := int(float64(numPapers) * r)
		p := rnd.Perm(numPapers)
		for _, j := range p[:numConflicts] {
			conflicts.Set(i, j, 1)
		}
	}
	return maxmin.NewInstance(similarity, conflicts)
}

func main() {
	var outPath string
	var numReviewers, numPapers int
	var meanDensity, stdDevDensity float64
	var seed uint64

	cmd := &cobra.Command{
		Use:   "generator",
		Short: "Generate a random reviewer/paper similarity dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if numReviewers <= 0 || numPapers <= 0 {
				return fmt.Errorf("must specify a positive number of reviewers and papers")
			}
			if meanDensity < 0 || meanDensity > 1 || stdDevDensity < 0 {
				return fmt.Errorf("conflict density mean must be in [0, 1] and its standard deviation non-negative")
			}
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}

			inst, err := GenerateInstance(numReviewers, numPapers, meanDensity, stdDevDensity, rand.New(rand.NewPCG(seed, seed)))
			if err != nil {
				return err
			}
			if err := maxmin.SaveInstance(outPath, inst); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seed %d\n%v", seed, inst)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&outPath, "out", "scores.npz", "The output file")
	cmd.Flags().IntVar(&numReviewers, "reviewers", 0, "The number of reviewers")
	cmd.Flags().IntVar(&numPapers, "papers", 0, "The number of papers")
	cmd.Flags().Float64Var(&meanDensity, "meand", 0, "The conflict density mean")
	cmd.Flags().Float64Var(&stdDevDensity, "stddevd", 0, "The conflict density standard deviation")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed, 0 picks one from the clock")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
