package hnsw

import (
	"encoding/json"
	"testing"

	"github.com/hupe1980/hnswgo/similarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSON_DefaultsMissingFields(t *testing.T) {
	data := []byte(`{"m":16,"efConstruction":200,"levelMax":-1,"hasEntry":false,"nodes":[]}`)

	g, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions.EfSearch, g.efSearch)
	assert.Equal(t, DefaultOptions.Metric, g.metric)
	assert.Equal(t, 0, g.d)
}

func TestFromJSON_InvalidMetric(t *testing.T) {
	data := []byte(`{"m":16,"efConstruction":200,"metric":"manhattan","nodes":[]}`)

	_, err := FromJSON(data)
	assert.ErrorIs(t, err, similarity.ErrInvalidMetric)
}

func TestToJSON_NodesSortedById(t *testing.T) {
	g, err := New(WithLevelDraw(fixedLevel0()))
	require.NoError(t, err)

	for _, id := range []int64{5, 1, 3} {
		require.NoError(t, g.AddPoint(id, []float64{float64(id)}))
	}

	data, err := g.ToJSON()
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	require.Len(t, snap.Nodes, 3)
	assert.Equal(t, []int64{1, 3, 5}, []int64{snap.Nodes[0].Id, snap.Nodes[1].Id, snap.Nodes[2].Id})
}
