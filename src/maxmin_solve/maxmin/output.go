package maxmin

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteAssignment writes the solved model in the line format read by the
// downstream rounding tools: "n d", one institution tag per reviewer, then
// "reviewer paper+n value" for every assignment variable.
func WriteAssignment(w io.Writer, m *Model, sol *Solution) error {
	inst := m.Instance
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", inst.NumReviewers, inst.NumPapers)

	// institutions are not modelled, every reviewer belongs to institution 1
	for range inst.NumReviewers {
		bw.WriteString("1\n")
	}

	for _, v := range m.Vars {
		if v.Role != Assignment {
			continue
		}
		value := sol.Assignment.At(v.Reviewer, v.Paper)
		bw.WriteString(v.Name(inst.NumReviewers))
		bw.WriteByte(' ')
		bw.WriteString(strconv.FormatFloat(value, 'g', -1, 64))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
