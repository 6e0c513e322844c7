package maxmin

import (
	"gopkg.in/dnaeon/go-priorityqueue.v1"
)

// Bottlenecks returns the count papers with the lowest total similarity,
// lowest first. Ties keep no particular order.
func Bottlenecks(inst *Instance, sol *Solution, count int) []PaperScore {
	if count <= 0 {
		return nil
	}
	pq := priorityqueue.New[int, float64](priorityqueue.MinHeap)
	for j := range inst.NumPapers {
		pq.Put(j, sol.PaperSimilarity(inst, j))
	}

	scores := make([]PaperScore, 0, min(count, inst.NumPapers))
	for pq.Len() > 0 && len(scores) < count {
		item := pq.Get()
		scores = append(scores, PaperScore{Paper: item.Value, Similarity: item.Priority})
	}
	return scores
}
