package hnsw

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/hupe1980/hnswgo/similarity"
)

// snapshotNode is the serialized form of a single Node.
type snapshotNode struct {
	Id        int64     `json:"id"`
	Level     int       `json:"level"`
	Vector    []float64 `json:"vector"`
	Neighbors [][]int64 `json:"neighbors"`
}

// Snapshot is the stable, round-trippable serialized form of a Graph. A
// missing EfSearch, Metric, or Dimension when decoding an older snapshot
// defaults to the constructor defaults, per the backward-compatibility seam
// named in the serialization contract.
type Snapshot struct {
	M              int              `json:"m"`
	EfConstruction int              `json:"efConstruction"`
	EfSearch       int              `json:"efSearch,omitempty"`
	Metric         similarity.Metric `json:"metric,omitempty"`
	Dimension      int              `json:"dimension,omitempty"`
	LevelMax       int              `json:"levelMax"`
	EntryPointId   int64            `json:"entryPointId"`
	HasEntry       bool             `json:"hasEntry"`
	Nodes          []snapshotNode   `json:"nodes"`
}

// ToJSON captures the Graph's full state: construction parameters, entry
// point, and every node's id/level/vector/neighbor lists in stored order.
func (g *Graph) ToJSON() ([]byte, error) {
	snap := Snapshot{
		M:              g.m,
		EfConstruction: g.efConstruction,
		EfSearch:       g.efSearch,
		Metric:         g.metric,
		Dimension:      g.d,
		LevelMax:       g.levelMax,
		EntryPointId:   g.entryPointId,
		HasEntry:       g.hasEntry,
		Nodes:          make([]snapshotNode, 0, len(g.nodes)),
	}

	for _, n := range g.nodes {
		neighbors := make([][]int64, len(n.Neighbors))
		for l, list := range n.Neighbors {
			cp := make([]int64, len(list))
			copy(cp, list)
			neighbors[l] = cp
		}

		vec := make([]float64, len(n.Vector))
		copy(vec, n.Vector)

		snap.Nodes = append(snap.Nodes, snapshotNode{
			Id:        n.Id,
			Level:     n.Level,
			Vector:    vec,
			Neighbors: neighbors,
		})
	}

	sort.Slice(snap.Nodes, func(i, j int) bool { return snap.Nodes[i].Id < snap.Nodes[j].Id })

	data, err := json.Marshal(snap)
	if err != nil {
		g.logger.logSnapshot(len(snap.Nodes), err)
		return nil, err
	}

	g.logger.logSnapshot(len(snap.Nodes), nil)

	return data, nil
}

// FromJSON rebuilds a Graph from a snapshot produced by ToJSON. The result
// satisfies all graph invariants immediately; no re-indexing is performed.
func FromJSON(data []byte) (*Graph, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("hnsw: decode snapshot: %w", err)
	}

	if snap.EfSearch == 0 {
		snap.EfSearch = DefaultOptions.EfSearch
	}
	if snap.Metric == "" {
		snap.Metric = DefaultOptions.Metric
	}

	scoreFn, err := similarity.Of(snap.Metric)
	if err != nil {
		return nil, err
	}

	g := &Graph{
		m:              snap.M,
		efConstruction: snap.EfConstruction,
		efSearch:       snap.EfSearch,
		metric:         snap.Metric,
		scoreFn:        scoreFn,
		d:              snap.Dimension,
		hasEntry:       snap.HasEntry,
		entryPointId:   snap.EntryPointId,
		levelMax:       snap.LevelMax,
		sampler:        newLevelSampler(snap.M, nil),
		nodes:          make(map[int64]*Node, len(snap.Nodes)),
	}

	for _, sn := range snap.Nodes {
		vec := make([]float64, len(sn.Vector))
		copy(vec, sn.Vector)

		neighbors := make([][]int64, len(sn.Neighbors))
		for l, list := range sn.Neighbors {
			cp := make([]int64, len(list))
			copy(cp, list)
			neighbors[l] = cp
		}

		g.nodes[sn.Id] = &Node{
			Id:        sn.Id,
			Level:     sn.Level,
			Vector:    vec,
			Neighbors: neighbors,
		}
	}

	g.logger.logRestore(len(g.nodes), nil)

	return g, nil
}
