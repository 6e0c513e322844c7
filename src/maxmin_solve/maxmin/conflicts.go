package maxmin

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/sampleuv"
)

type SamplingMode int

const (
	// SamplingExact leaves every reviewer with exactly the requested number
	// of visible papers, or fewer if the base mask already hides more.
	SamplingExact SamplingMode = iota
	// SamplingParity draws the extra conflicts from all papers, so a draw
	// that hits an existing conflict adds nothing.
	SamplingParity
)

func (m SamplingMode) String() string {
	switch m {
	case SamplingExact:
		return "exact"
	case SamplingParity:
		return "parity"
	}
	return fmt.Sprintf("SamplingMode(%d)", int(m))
}

func ParseSamplingMode(s string) (SamplingMode, error) {
	switch s {
	case "exact":
		return SamplingExact, nil
	case "parity":
		return SamplingParity, nil
	}
	return 0, fmt.Errorf("%w: unknown sampling mode %q", ErrInvalidConfiguration, s)
}

// PapersAvailable is the number of papers each reviewer keeps visible for a
// visibility fraction p.
func PapersAvailable(numPapers int, p float64) (int, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, fmt.Errorf("%w: visibility fraction %v is outside [0, 1]", ErrInvalidConfiguration, p)
	}
	return int(math.Floor(float64(numPapers) * p)), nil
}

// AddRandomConflicts marks count extra papers per reviewer as conflicted.
// Conflicts are never removed.
func (inst *Instance) AddRandomConflicts(count int, mode SamplingMode, src rand.Source) error {
	if count < 0 || count > inst.NumPapers {
		return fmt.Errorf("%w: cannot sample %d conflicts out of %d papers",
			ErrInvalidConfiguration, count, inst.NumPapers)
	}

	switch mode {
	case SamplingParity:
		inst.addParityConflicts(count, src)
	case SamplingExact:
		inst.addExactConflicts(inst.NumPapers-count, src)
	default:
		return fmt.Errorf("%w: unknown sampling mode %v", ErrInvalidConfiguration, mode)
	}
	return nil
}

func (inst *Instance) addParityConflicts(count int, src rand.Source) {
	if count == 0 {
		return
	}
	papers := make([]int, count)
	for i := range inst.NumReviewers {
		sampleuv.WithoutReplacement(papers, inst.NumPapers, src)
		for _, j := range papers {
			inst.Conflicts.Set(i, j, 1)
		}
	}
}

// addExactConflicts keeps a random prefix of each reviewer's visible papers.
// The permutation is drawn even when nothing is hidden so that, for one
// seed, the kept sets grow with available.
func (inst *Instance) addExactConflicts(available int, src rand.Source) {
	rnd := rand.New(src)
	for i := range inst.NumReviewers {
		visible := inst.VisiblePapers(i)
		perm := rnd.Perm(len(visible))
		for _, idx := range perm[min(available, len(visible)):] {
			inst.Conflicts.Set(i, visible[idx], 1)
		}
	}
}
