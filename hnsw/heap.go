package hnsw

import "container/heap"

// item is a single (node, score) pair tracked by a frontier heap.
type item struct {
	id    int64
	score float64
}

// frontier is the one binary heap implementation shared by both roles the
// layer beam search needs: a max-at-root heap of candidates still to expand
// (so the best candidate is always at the root, ready to pop and expand
// next), and a min-at-root heap of kept results (so the worst-kept result is
// always at the root, ready for O(1) eviction). Which role a frontier plays
// is selected by maxAtRoot: true keeps the highest score at the root (used
// to pop the best candidate to expand next), false keeps the lowest score at
// the root (used to peek/evict the worst kept result).
//
// Tie-breaking is whatever container/heap's sift order produces for equal
// scores; the spec does not require stable ordering among ties.
type frontier struct {
	items     []item
	maxAtRoot bool
}

// newFrontier creates an empty frontier with capacity hint capHint.
func newFrontier(maxAtRoot bool, capHint int) *frontier {
	if capHint < 0 {
		capHint = 0
	}
	f := &frontier{
		items:     make([]item, 0, capHint),
		maxAtRoot: maxAtRoot,
	}
	heap.Init(f)
	return f
}

// Len, Less, Swap, Push, Pop implement container/heap.Interface.
func (f *frontier) Len() int { return len(f.items) }

func (f *frontier) Less(i, j int) bool {
	if f.maxAtRoot {
		return f.items[i].score > f.items[j].score
	}
	return f.items[i].score < f.items[j].score
}

func (f *frontier) Swap(i, j int) { f.items[i], f.items[j] = f.items[j], f.items[i] }

func (f *frontier) Push(x any) { f.items = append(f.items, x.(item)) }

func (f *frontier) Pop() any {
	n := len(f.items)
	it := f.items[n-1]
	f.items = f.items[:n-1]
	return it
}

// push inserts it while maintaining the heap invariant.
func (f *frontier) push(it item) { heap.Push(f, it) }

// pop removes and returns the root element.
func (f *frontier) pop() item { return heap.Pop(f).(item) }

// peek returns the root element without removing it.
func (f *frontier) peek() item { return f.items[0] }

// drainDescending pops every remaining item and returns them ordered by
// descending score, regardless of the frontier's internal root ordering.
func (f *frontier) drainDescending() []item {
	out := make([]item, f.Len())
	if f.maxAtRoot {
		for i := 0; f.Len() > 0; i++ {
			out[i] = f.pop()
		}
		return out
	}
	// Root is the minimum; pop ascending and reverse in place.
	for i := 0; f.Len() > 0; i++ {
		out[i] = f.pop()
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
