package hnsw

import "sort"

// selectNeighborsHeuristic implements the diversity-preferring neighbor
// selector: candidates are considered in descending score order against
// pivotVector, and a candidate is admitted only if every neighbor already
// selected is no closer to it than the pivot is. This rejects candidates
// that are redundant with an already-picked neighbor, favoring spread over
// raw proximity.
//
// candidates need not be pre-sorted; selectNeighborsHeuristic sorts a copy
// stably by descending score so ties preserve the caller's input order.
func (g *Graph) selectNeighborsHeuristic(pivotVector []float64, candidates []item, m int) ([]int64, error) {
	sorted := make([]item, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].score > sorted[j].score })

	selected := make([]item, 0, m)

	for _, c := range sorted {
		if len(selected) >= m {
			break
		}

		cNode := g.nodeOrPanic(c.id)

		admit := true
		for _, s := range selected {
			sNode := g.nodeOrPanic(s.id)
			cs, err := g.scoreFn(cNode.Vector, sNode.Vector)
			if err != nil {
				return nil, err
			}
			if cs > c.score {
				admit = false
				break
			}
		}

		if admit {
			selected = append(selected, c)
		}
	}

	ids := make([]int64, len(selected))
	for i, s := range selected {
		ids[i] = s.id
	}

	return ids, nil
}
