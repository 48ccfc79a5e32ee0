package hnsw

import (
	"sort"

	"github.com/hupe1980/hnswgo/similarity"
)

// AddPoint inserts a new point into the graph. id must not already be
// present; vector's length must match the graph's fixed dimension (set with
// WithDimension, or else fixed from len(vector) by the first AddPoint call).
func (g *Graph) AddPoint(id int64, vector []float64) error {
	if _, exists := g.nodes[id]; exists {
		return &ErrDuplicateId{Id: id}
	}

	if g.d == 0 {
		g.d = len(vector)
	} else if len(vector) != g.d {
		return &ErrDimensionMismatch{Expected: g.d, Actual: len(vector)}
	}

	if g.metric == similarity.Cosine && similarity.IsZero(vector) {
		return similarity.ErrZeroVector
	}

	nodeLevel := g.sampler.next()
	node := newNode(id, nodeLevel, vector)
	g.nodes[id] = node

	if !g.hasEntry {
		g.hasEntry = true
		g.entryPointId = id
		g.levelMax = nodeLevel
		g.logger.logInsert(id, nodeLevel)
		return nil
	}

	ep := g.nodeOrPanic(g.entryPointId)
	for l := g.levelMax; l > nodeLevel; l-- {
		next, err := g.greedyDescent(ep, l, vector)
		if err != nil {
			return err
		}
		ep = next
	}

	top := nodeLevel
	if g.levelMax < top {
		top = g.levelMax
	}

	for l := top; l >= 0; l-- {
		found, err := g.layerBeamSearch(ep, l, vector, g.efConstruction)
		if err != nil {
			return err
		}

		selectedIds, err := g.selectNeighborsHeuristic(vector, found, g.m)
		if err != nil {
			return err
		}

		// Store a copy: addAndPrune below removes entries from node's list in
		// place, which must not shift the selectedIds slice being iterated.
		node.setNeighborsAt(l, append([]int64(nil), selectedIds...))

		for _, nbId := range selectedIds {
			nb := g.nodeOrPanic(nbId)
			if err := g.installBidirectional(l, node, nb); err != nil {
				return err
			}
		}

		if len(found) > 0 {
			ep = g.nodeOrPanic(found[0].id)
		}
	}

	if nodeLevel > g.levelMax {
		g.entryPointId = id
		g.levelMax = nodeLevel
	}

	g.logger.logInsert(id, nodeLevel)

	return nil
}

// installBidirectional links n and b at layer in both directions, pruning
// either side's neighbor list back to m via the selection heuristic if the
// new edge pushed it over the cap, and repairing the reciprocal
// back-pointer for anything dropped.
func (g *Graph) installBidirectional(layer int, n, b *Node) error {
	if err := g.addAndPrune(layer, n, b.Id); err != nil {
		return err
	}
	return g.addAndPrune(layer, b, n.Id)
}

// addAndPrune inserts newId into owner's layer adjacency list, replacing
// any prior occurrence, then re-runs the selection heuristic if the list
// grew past the cap. Any id dropped by that re-run has its reciprocal
// back-pointer removed, restoring symmetry.
func (g *Graph) addAndPrune(layer int, owner *Node, newId int64) error {
	owner.removeNeighbor(layer, newId)
	current := owner.neighborsAt(layer)

	merged := make([]int64, len(current), len(current)+1)
	copy(merged, current)
	merged = append(merged, newId)

	if len(merged) <= g.m {
		ordered, err := g.sortByScoreDesc(owner.Vector, merged)
		if err != nil {
			return err
		}
		owner.setNeighborsAt(layer, ordered)
		return nil
	}

	candidates := make([]item, len(merged))
	for i, id := range merged {
		nd := g.nodeOrPanic(id)
		s, err := g.scoreFn(owner.Vector, nd.Vector)
		if err != nil {
			return err
		}
		candidates[i] = item{id: id, score: s}
	}

	selectedIds, err := g.selectNeighborsHeuristic(owner.Vector, candidates, g.m)
	if err != nil {
		return err
	}

	dropped := idsMinus(merged, selectedIds)
	owner.setNeighborsAt(layer, selectedIds)

	for _, id := range dropped {
		dn := g.nodeOrPanic(id)
		dn.removeNeighbor(layer, owner.Id)
	}

	return nil
}

// sortByScoreDesc scores every id in ids against pivotVector and returns
// the ids sorted by descending score.
func (g *Graph) sortByScoreDesc(pivotVector []float64, ids []int64) ([]int64, error) {
	scored := make([]item, len(ids))
	for i, id := range ids {
		nd := g.nodeOrPanic(id)
		s, err := g.scoreFn(pivotVector, nd.Vector)
		if err != nil {
			return nil, err
		}
		scored[i] = item{id: id, score: s}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	out := make([]int64, len(scored))
	for i, s := range scored {
		out[i] = s.id
	}
	return out, nil
}

// idsMinus returns the ids in all that do not appear in kept.
func idsMinus(all, kept []int64) []int64 {
	keptSet := make(map[int64]bool, len(kept))
	for _, id := range kept {
		keptSet[id] = true
	}

	out := make([]int64, 0, len(all)-len(kept))
	for _, id := range all {
		if !keptSet[id] {
			out = append(out, id)
		}
	}
	return out
}
