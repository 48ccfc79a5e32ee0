// Package queue provides the generic priority queue used by the benchmark
// harness to select the top-k scoring candidates out of a brute-force scan,
// the same container/heap.Interface shape the graph core's own frontier
// type uses internally, just exported for bench's ground-truth computation.
package queue

import "container/heap"

var _ heap.Interface = (*PriorityQueue)(nil)

// Item represents an entry in the priority queue: an id and its score
// against whatever query produced it. Higher score means closer, matching
// the similarity package's convention.
type Item struct {
	Id    int64
	Score float64
	Index int // maintained by heap.Interface, do not set manually
}

// PriorityQueue implements heap.Interface over Items. Order selects which
// end sorts to the root: Order=false keeps the lowest score at the root
// (used to evict the worst-kept item in O(1) while accumulating a top-k
// set), Order=true keeps the highest score at the root.
type PriorityQueue struct {
	Order bool
	Items []*Item
}

func (pq *PriorityQueue) Len() int { return len(pq.Items) }

func (pq *PriorityQueue) Less(i, j int) bool {
	if !pq.Order {
		return pq.Items[i].Score < pq.Items[j].Score
	}
	return pq.Items[i].Score > pq.Items[j].Score
}

func (pq *PriorityQueue) Swap(i, j int) {
	pq.Items[i], pq.Items[j] = pq.Items[j], pq.Items[i]
	pq.Items[i].Index, pq.Items[j].Index = i, j
}

func (pq *PriorityQueue) Push(x any) {
	item := x.(*Item)
	item.Index = len(pq.Items)
	pq.Items = append(pq.Items, item)
}

func (pq *PriorityQueue) Pop() any {
	old := pq.Items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	pq.Items = old[:n-1]
	return item
}

// Top returns the root element without removing it.
func (pq *PriorityQueue) Top() *Item {
	return pq.Items[0]
}
