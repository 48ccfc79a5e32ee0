package hnsw

// greedyDescent repeatedly moves ep to its highest-scoring neighbor at
// layer, as long as the move strictly improves the score against query. It
// terminates at a local maximum, which on upper layers is a cheap way to
// get close to the query before the more expensive beam search at the
// target layer.
func (g *Graph) greedyDescent(ep *Node, layer int, query []float64) (*Node, error) {
	best := ep
	bestScore, err := g.scoreFn(best.Vector, query)
	if err != nil {
		return nil, err
	}

	for {
		improved := false

		for _, nbId := range best.neighborsAt(layer) {
			nb := g.nodeOrPanic(nbId)
			s, err := g.scoreFn(nb.Vector, query)
			if err != nil {
				return nil, err
			}
			if s > bestScore {
				best = nb
				bestScore = s
				improved = true
			}
		}

		if !improved {
			return best, nil
		}
	}
}

// layerBeamSearch runs the HNSW layer search described in the construction
// and query procedures: expand the best unvisited candidate, stopping once
// no unexplored candidate can beat the worst kept result. It returns up to
// ef nodes ordered by descending score against query.
func (g *Graph) layerBeamSearch(ep *Node, layer int, query []float64, ef int) ([]item, error) {
	epScore, err := g.scoreFn(ep.Vector, query)
	if err != nil {
		return nil, err
	}

	visited := map[int64]bool{ep.Id: true}
	candidates := newFrontier(true, ef)
	best := newFrontier(false, ef)
	candidates.push(item{id: ep.Id, score: epScore})
	best.push(item{id: ep.Id, score: epScore})

	for candidates.Len() > 0 {
		c := candidates.pop()

		worst := best.peek()
		if best.Len() >= ef && c.score < worst.score {
			break
		}

		cNode := g.nodeOrPanic(c.id)
		for _, nbId := range cNode.neighborsAt(layer) {
			if visited[nbId] {
				continue
			}
			visited[nbId] = true

			nb := g.nodeOrPanic(nbId)
			s, err := g.scoreFn(nb.Vector, query)
			if err != nil {
				return nil, err
			}

			worst = best.peek()
			if best.Len() < ef || s > worst.score {
				candidates.push(item{id: nbId, score: s})
				best.push(item{id: nbId, score: s})
				if best.Len() > ef {
					best.pop()
				}
			}
		}
	}

	return best.drainDescending(), nil
}
