package hnsw

import (
	"testing"

	"github.com/hupe1980/hnswgo/similarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedLevel0 returns a draw func that forces every level sample to land in
// level 0, by always returning 0, which is below probs[0] for any M>1.
func fixedLevel0() func() float64 {
	return func() float64 { return 0 }
}

// drawForLevel computes a uniform draw that lands selectLevel squarely in
// the middle of level's cumulative bucket, given probs.
func drawForLevel(probs []float64, level int) float64 {
	cum := 0.0
	for l := 0; l < level; l++ {
		cum += probs[l]
	}
	if level < len(probs) {
		return cum + probs[level]/2
	}
	return cum + (1-cum)/2
}

// sequenceDraw returns a draw func that yields successive precomputed r
// values, one per call, for a target level sequence.
func sequenceDraw(probs []float64, levels []int) func() float64 {
	i := 0
	return func() float64 {
		r := drawForLevel(probs, levels[i])
		i++
		return r
	}
}

func TestScenario1_BuildAndSearchCosine(t *testing.T) {
	g, err := New(WithM(16), WithEfConstruction(200), WithMetric(similarity.Cosine), WithLevelDraw(fixedLevel0()))
	require.NoError(t, err)

	points := []Point{
		{Id: 1, Vector: []float64{1, 2, 3, 4, 5}},
		{Id: 2, Vector: []float64{2, 3, 4, 5, 6}},
		{Id: 3, Vector: []float64{3, 4, 5, 6, 7}},
		{Id: 4, Vector: []float64{4, 5, 6, 7, 8}},
		{Id: 5, Vector: []float64{5, 6, 7, 8, 9}},
	}
	require.NoError(t, g.BuildIndex(points))

	// BuildIndex resets only nodes, entry point and d; the sampler and its
	// level draw seam survive it, so every point still lands on level 0.
	results, err := g.SearchKNN([]float64{3, 4, 5, 6, 7}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	ids := []int64{results[0].Id, results[1].Id, results[2].Id}
	assert.Equal(t, []int64{3, 4, 2}, ids)
	assert.InDelta(t, 1.0, results[0].Score, 1e-5)
}

func TestScenario2_SelectLevel(t *testing.T) {
	probs := []float64{0.5, 0.3, 0.2}
	assert.Equal(t, 0, selectLevel(probs, 0.2))
	assert.Equal(t, 1, selectLevel(probs, 0.6))
	assert.Equal(t, 2, selectLevel(probs, 0.95))
}

func TestScenario3_EntryPointPromotion(t *testing.T) {
	sampler := newLevelSampler(16, nil)
	levels := []int{0, 3, 1, 0, 2}
	draw := sequenceDraw(sampler.probs, levels)

	g, err := New(WithLevelDraw(draw))
	require.NoError(t, err)

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, g.AddPoint(i, []float64{float64(i), 0, 0}))
	}

	assert.Equal(t, int64(2), g.entryPointId)
	assert.Equal(t, 3, g.levelMax)
}

func TestScenario4_NeighborCap(t *testing.T) {
	g, err := New(WithM(2), WithEfConstruction(16), WithMetric(similarity.Euclidean), WithLevelDraw(fixedLevel0()))
	require.NoError(t, err)

	require.NoError(t, g.AddPoint(1, []float64{0, 0}))
	require.NoError(t, g.AddPoint(2, []float64{0, 1}))
	require.NoError(t, g.AddPoint(3, []float64{0, 2}))
	require.NoError(t, g.AddPoint(4, []float64{0, 3}))

	n4 := g.nodes[4]
	assert.Len(t, n4.neighborsAt(0), 1)
	assert.Contains(t, n4.neighborsAt(0), int64(3))

	n2 := g.nodes[2]
	assert.LessOrEqual(t, len(n2.neighborsAt(0)), 2)
	assert.Contains(t, n2.neighborsAt(0), int64(1))
	assert.Contains(t, n2.neighborsAt(0), int64(3))
}

func TestScenario5_DiversityHeuristic(t *testing.T) {
	g, err := New(WithMetric(similarity.Euclidean))
	require.NoError(t, err)

	g.nodes[2] = &Node{Id: 2, Vector: []float64{1, 0}}
	g.nodes[3] = &Node{Id: 3, Vector: []float64{2, 0}}
	g.nodes[4] = &Node{Id: 4, Vector: []float64{0, 2}}

	pivot := []float64{0, 0}
	candidates := []item{
		{id: 2, score: 0.5},
		{id: 3, score: 1.0 / 3.0},
		{id: 4, score: 1.0 / 3.0},
	}

	selected, err := g.selectNeighborsHeuristic(pivot, candidates, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4}, selected)
}

func TestScenario6_SnapshotFidelity(t *testing.T) {
	g, err := New(WithM(16), WithEfConstruction(200), WithMetric(similarity.Cosine), WithLevelDraw(fixedLevel0()))
	require.NoError(t, err)

	points := []Point{
		{Id: 1, Vector: []float64{1, 2, 3, 4, 5}},
		{Id: 2, Vector: []float64{2, 3, 4, 5, 6}},
		{Id: 3, Vector: []float64{3, 4, 5, 6, 7}},
		{Id: 4, Vector: []float64{4, 5, 6, 7, 8}},
		{Id: 5, Vector: []float64{5, 6, 7, 8, 9}},
	}
	require.NoError(t, g.BuildIndex(points))

	data, err := g.ToJSON()
	require.NoError(t, err)

	restored, err := FromJSON(data)
	require.NoError(t, err)

	query := []float64{6, 7, 8, 9, 10}
	want, err := g.SearchKNN(query, 2)
	require.NoError(t, err)
	got, err := restored.SearchKNN(query, 2)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestInvariant_AdjacencySymmetry(t *testing.T) {
	g, err := New(WithM(4), WithEfConstruction(32))
	require.NoError(t, err)

	for i := int64(1); i <= 20; i++ {
		v := []float64{float64(i), float64(i * 2), float64(i % 5)}
		require.NoError(t, g.AddPoint(i, v))
	}

	for _, n := range g.nodes {
		for l := 0; l <= n.Level; l++ {
			for _, nbId := range n.neighborsAt(l) {
				nb := g.nodes[nbId]
				assert.Truef(t, nb.hasNeighbor(l, n.Id), "node %d missing back-edge to %d at layer %d", nbId, n.Id, l)
				assert.NotEqual(t, n.Id, nbId, "self-loop on node %d at layer %d", n.Id, l)
			}
		}
	}
}

func TestInvariant_NeighborCapAndNoDuplicates(t *testing.T) {
	g, err := New(WithM(4), WithEfConstruction(32))
	require.NoError(t, err)

	for i := int64(1); i <= 30; i++ {
		v := []float64{float64(i % 7), float64(i % 3), float64(i)}
		require.NoError(t, g.AddPoint(i, v))
	}

	for _, n := range g.nodes {
		for l := 0; l <= n.Level; l++ {
			list := n.neighborsAt(l)
			assert.LessOrEqual(t, len(list), g.m)

			seen := make(map[int64]bool)
			for _, id := range list {
				assert.False(t, seen[id], "duplicate neighbor %d at layer %d", id, l)
				seen[id] = true
			}
		}
	}
}

func TestInvariant_EntryPointHasLevelMax(t *testing.T) {
	g, err := New()
	require.NoError(t, err)

	for i := int64(1); i <= 15; i++ {
		require.NoError(t, g.AddPoint(i, []float64{float64(i)}))
	}

	ep := g.nodes[g.entryPointId]
	assert.Equal(t, g.levelMax, ep.Level)

	for _, n := range g.nodes {
		assert.LessOrEqual(t, n.Level, g.levelMax)
	}
}

func TestSearchKNN_ResultsDistinctAndDescending(t *testing.T) {
	g, err := New(WithMetric(similarity.Euclidean))
	require.NoError(t, err)

	for i := int64(1); i <= 25; i++ {
		require.NoError(t, g.AddPoint(i, []float64{float64(i), float64(i) * 0.5}))
	}

	results, err := g.SearchKNN([]float64{10, 5}, 5)
	require.NoError(t, err)
	require.LessOrEqual(t, len(results), 5)

	seen := make(map[int64]bool)
	for i, r := range results {
		assert.False(t, seen[r.Id])
		seen[r.Id] = true
		if i > 0 {
			assert.LessOrEqual(t, results[i].Score, results[i-1].Score)
		}
	}
}

func TestSearchKNN_EmptyGraph(t *testing.T) {
	g, err := New()
	require.NoError(t, err)

	results, err := g.SearchKNN([]float64{1, 2, 3}, 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchKNN_NonPositiveK(t *testing.T) {
	g, err := New()
	require.NoError(t, err)
	require.NoError(t, g.AddPoint(1, []float64{1, 2, 3}))

	results, err := g.SearchKNN([]float64{1, 2, 3}, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAddPoint_DuplicateId(t *testing.T) {
	g, err := New()
	require.NoError(t, err)
	require.NoError(t, g.AddPoint(1, []float64{1, 2}))

	err = g.AddPoint(1, []float64{3, 4})
	var dup *ErrDuplicateId
	assert.ErrorAs(t, err, &dup)
}

func TestAddPoint_DimensionMismatch(t *testing.T) {
	g, err := New()
	require.NoError(t, err)
	require.NoError(t, g.AddPoint(1, []float64{1, 2, 3}))

	err = g.AddPoint(2, []float64{1, 2})
	var dm *ErrDimensionMismatch
	assert.ErrorAs(t, err, &dm)
}

func TestAddPoint_ZeroVectorRejectedUnderCosine(t *testing.T) {
	g, err := New(WithMetric(similarity.Cosine))
	require.NoError(t, err)

	err = g.AddPoint(1, []float64{0, 0, 0})
	assert.ErrorIs(t, err, similarity.ErrZeroVector)
}

func TestNew_InvalidMetric(t *testing.T) {
	_, err := New(WithMetric(similarity.Metric("manhattan")))
	assert.ErrorIs(t, err, similarity.ErrInvalidMetric)
}

func TestDeterminism_FixedLevelSequenceReproducesGraph(t *testing.T) {
	build := func() (*Graph, error) {
		sampler := newLevelSampler(8, nil)
		levels := []int{0, 1, 0, 2, 0, 1, 0, 3}
		g, err := New(WithM(8), WithLevelDraw(sequenceDraw(sampler.probs, levels)))
		if err != nil {
			return nil, err
		}
		for i := int64(1); i <= int64(len(levels)); i++ {
			if err := g.AddPoint(i, []float64{float64(i), float64(i * i % 11)}); err != nil {
				return nil, err
			}
		}
		return g, nil
	}

	g1, err := build()
	require.NoError(t, err)
	g2, err := build()
	require.NoError(t, err)

	j1, err := g1.ToJSON()
	require.NoError(t, err)
	j2, err := g2.ToJSON()
	require.NoError(t, err)

	assert.JSONEq(t, string(j1), string(j2))
}
