package bench

import (
	"container/heap"

	"github.com/hupe1980/hnswgo/queue"
	"github.com/hupe1980/hnswgo/similarity"
)

// BruteForceKNN scores query against every (id, vector) in corpus and
// returns the true top-k ids by descending score. It exists only as the
// harness's ground truth for recall@k; the core never uses exact search.
func BruteForceKNN(corpus []Point, query []float64, k int, metric similarity.Metric) ([]int64, error) {
	if k <= 0 {
		return nil, nil
	}

	scoreFn, err := similarity.Of(metric)
	if err != nil {
		return nil, err
	}

	pq := &queue.PriorityQueue{Order: false}
	heap.Init(pq)

	for _, p := range corpus {
		s, err := scoreFn(p.Vector, query)
		if err != nil {
			return nil, err
		}

		if pq.Len() < k {
			heap.Push(pq, &queue.Item{Id: p.Id, Score: s})
			continue
		}
		if s > pq.Top().Score {
			heap.Pop(pq)
			heap.Push(pq, &queue.Item{Id: p.Id, Score: s})
		}
	}

	ids := make([]int64, pq.Len())
	for i := len(ids) - 1; i >= 0; i-- {
		ids[i] = heap.Pop(pq).(*queue.Item).Id
	}
	return ids, nil
}

// Point mirrors hnsw.Point so bench does not need to import hnsw just for
// this tuple; dataset loaders and the CLI convert between the two at the
// boundary.
type Point struct {
	Id     int64
	Vector []float64
}

// RecallAt computes the fraction of want that appears in got, the standard
// recall@k metric: |got ∩ want| / |want|.
func RecallAt(got, want []int64) float64 {
	if len(want) == 0 {
		return 1
	}

	wantSet := make(map[int64]bool, len(want))
	for _, id := range want {
		wantSet[id] = true
	}

	hits := 0
	for _, id := range got {
		if wantSet[id] {
			hits++
		}
	}
	return float64(hits) / float64(len(want))
}
