// Package hnsw implements an in-memory Hierarchical Navigable Small World
// approximate nearest-neighbor index: a multi-layer proximity graph built by
// greedy entry-point descent and per-layer beam search, queried the same
// way. The package does not support deleting or updating inserted points,
// concurrent insertion, or disk-resident storage; see persistence for a
// snapshot-based backing store and bench for a benchmark harness.
package hnsw

import (
	"sort"

	"github.com/hupe1980/hnswgo/similarity"
)

// Options configures a Graph at construction time.
type Options struct {
	// M is the max number of neighbors kept per node per layer. Reasonable
	// range is 2-100; higher M improves recall on high-dimensional data at
	// the cost of memory and construction time.
	M int

	// EfConstruction is the beam width used while inserting points. Larger
	// values trade construction time for graph quality.
	EfConstruction int

	// EfSearch is the default beam width used by SearchKNN when the caller
	// does not override it per call.
	EfSearch int

	// Metric selects the similarity function. Defaults to Cosine.
	Metric similarity.Metric

	// Dimension fixes the vector length up front. If zero, the dimension is
	// taken from the first inserted vector.
	Dimension int

	// Logger receives structured diagnostics. A nil Logger disables logging.
	Logger *Logger

	// levelDraw, if set, overrides the level sampler's randomness source. Exposed
	// only through WithLevelDraw so tests can inject a deterministic
	// sequence; production callers should leave it nil.
	levelDraw func() float64
}

// DefaultOptions mirrors the constructor defaults named in the external
// interface: M=16, EfConstruction=200, EfSearch=50, Metric=cosine.
var DefaultOptions = Options{
	M:              16,
	EfConstruction: 200,
	EfSearch:       50,
	Metric:         similarity.Cosine,
}

// WithM sets the per-layer neighbor cap.
func WithM(m int) func(*Options) { return func(o *Options) { o.M = m } }

// WithEfConstruction sets the insertion beam width.
func WithEfConstruction(ef int) func(*Options) { return func(o *Options) { o.EfConstruction = ef } }

// WithEfSearch sets the default query beam width.
func WithEfSearch(ef int) func(*Options) { return func(o *Options) { o.EfSearch = ef } }

// WithMetric selects the similarity metric.
func WithMetric(m similarity.Metric) func(*Options) { return func(o *Options) { o.Metric = m } }

// WithDimension fixes the vector dimension up front rather than inferring
// it from the first AddPoint call.
func WithDimension(d int) func(*Options) { return func(o *Options) { o.Dimension = d } }

// WithLogger attaches a Logger.
func WithLogger(l *Logger) func(*Options) { return func(o *Options) { o.Logger = l } }

// WithLevelDraw overrides the level sampler's randomness source with draw,
// a func returning successive values in [0,1). Intended for deterministic
// tests; see the scenario fixtures in graph_test.go.
func WithLevelDraw(draw func() float64) func(*Options) {
	return func(o *Options) { o.levelDraw = draw }
}

// Graph is an in-memory HNSW index. The zero value is not usable; construct
// one with New. A Graph is not safe for concurrent use: callers must
// serialize all mutating calls (AddPoint, BuildIndex) under a single
// exclusive-ownership discipline, matching the single-threaded model this
// index is designed for.
type Graph struct {
	m              int
	efConstruction int
	efSearch       int
	metric         similarity.Metric
	scoreFn        similarity.Func

	d int // 0 until the first insert fixes it

	hasEntry     bool
	entryPointId int64
	levelMax     int

	sampler *levelSampler
	nodes   map[int64]*Node

	logger *Logger
}

// New constructs an empty Graph. optFns apply on top of DefaultOptions in
// order.
func New(optFns ...func(*Options)) (*Graph, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.M <= 0 {
		opts.M = DefaultOptions.M
	}
	if opts.EfConstruction <= 0 {
		opts.EfConstruction = DefaultOptions.EfConstruction
	}
	if opts.EfSearch <= 0 {
		opts.EfSearch = DefaultOptions.EfSearch
	}
	if opts.Metric == "" {
		opts.Metric = DefaultOptions.Metric
	}

	scoreFn, err := similarity.Of(opts.Metric)
	if err != nil {
		return nil, err
	}

	return &Graph{
		m:              opts.M,
		efConstruction: opts.EfConstruction,
		efSearch:       opts.EfSearch,
		metric:         opts.Metric,
		scoreFn:        scoreFn,
		d:              opts.Dimension,
		levelMax:       -1,
		sampler:        newLevelSampler(opts.M, opts.levelDraw),
		nodes:          make(map[int64]*Node),
		logger:         opts.Logger,
	}, nil
}

// Len returns the number of points currently indexed.
func (g *Graph) Len() int { return len(g.nodes) }

// Result is a single k-NN match, sorted by descending score.
type Result struct {
	Id    int64
	Score float64
}

// Point is a single (id, vector) pair consumed by BuildIndex.
type Point struct {
	Id     int64
	Vector []float64
}

// BuildOptions configures BuildIndex.
type BuildOptions struct {
	// OnProgress, if set, is invoked after every ProgressInterval insertions
	// and once more at completion, with the number of points inserted so
	// far and the total.
	OnProgress func(current, total int)

	// ProgressInterval controls how often OnProgress fires. Defaults to 1000.
	ProgressInterval int
}

// WithOnProgress sets the bulk-build progress callback.
func WithOnProgress(fn func(current, total int)) func(*BuildOptions) {
	return func(o *BuildOptions) { o.OnProgress = fn }
}

// WithProgressInterval sets how often OnProgress fires.
func WithProgressInterval(n int) func(*BuildOptions) {
	return func(o *BuildOptions) { o.ProgressInterval = n }
}

// BuildIndex discards all existing state and reinserts data in order. The
// dimension is reset to unset, so it is re-derived from data's first point
// even if the Graph previously held a different dimension.
func (g *Graph) BuildIndex(data []Point, optFns ...func(*BuildOptions)) error {
	opts := BuildOptions{ProgressInterval: 1000}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.ProgressInterval <= 0 {
		opts.ProgressInterval = 1000
	}

	g.nodes = make(map[int64]*Node)
	g.hasEntry = false
	g.entryPointId = 0
	g.levelMax = -1
	g.d = 0

	total := len(data)
	for i, p := range data {
		if err := g.AddPoint(p.Id, p.Vector); err != nil {
			return err
		}

		current := i + 1
		if opts.OnProgress != nil && (current%opts.ProgressInterval == 0 || current == total) {
			opts.OnProgress(current, total)
		}
	}

	g.logger.logBuild(total)

	return nil
}

// SearchOptions configures a single SearchKNN call.
type SearchOptions struct {
	// EfSearch overrides the Graph's default beam width for this query only.
	EfSearch int
}

// WithSearchEf overrides efSearch for one query.
func WithSearchEf(ef int) func(*SearchOptions) {
	return func(o *SearchOptions) { o.EfSearch = ef }
}

// SearchKNN returns up to k approximate nearest neighbors of query, sorted
// by descending score. An empty graph or non-positive k yields an empty,
// non-error result.
func (g *Graph) SearchKNN(query []float64, k int, optFns ...func(*SearchOptions)) ([]Result, error) {
	if len(g.nodes) == 0 || k <= 0 {
		return nil, nil
	}

	if g.d != 0 && len(query) != g.d {
		return nil, &ErrDimensionMismatch{Expected: g.d, Actual: len(query)}
	}

	opts := SearchOptions{EfSearch: g.efSearch}
	for _, fn := range optFns {
		fn(&opts)
	}
	ef := opts.EfSearch
	if ef <= 0 {
		ef = g.efSearch
	}
	if ef < k {
		ef = k
	}

	if len(g.nodes) == 1 {
		entry := g.nodeOrPanic(g.entryPointId)
		s, err := g.scoreFn(entry.Vector, query)
		if err != nil {
			return nil, err
		}
		g.logger.logSearch(k, ef, 1)
		return []Result{{Id: entry.Id, Score: s}}, nil
	}

	ep := g.nodeOrPanic(g.entryPointId)
	for l := g.levelMax; l >= 1; l-- {
		next, err := g.greedyDescent(ep, l, query)
		if err != nil {
			return nil, err
		}
		ep = next
	}

	found, err := g.layerBeamSearch(ep, 0, query, ef)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(found))
	results := make([]Result, 0, k)
	for _, it := range found {
		if seen[it.id] {
			continue
		}
		seen[it.id] = true
		results = append(results, Result{Id: it.id, Score: it.score})
		if len(results) == k {
			break
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	g.logger.logSearch(k, ef, len(results))

	return results, nil
}

// Points returns every (id, vector) pair currently indexed, in unspecified
// order. Intended for harness code that needs brute-force ground truth
// over the same corpus the graph was built from.
func (g *Graph) Points() []Point {
	out := make([]Point, 0, len(g.nodes))
	for _, n := range g.nodes {
		vec := make([]float64, len(n.Vector))
		copy(vec, n.Vector)
		out = append(out, Point{Id: n.Id, Vector: vec})
	}
	return out
}

// Metric returns the similarity metric the graph was constructed with.
func (g *Graph) Metric() similarity.Metric { return g.metric }

// nodeOrPanic resolves id to its Node. Any miss indicates a broken
// invariant: a neighbor list or the entry point referencing an id that was
// never inserted or was dropped without repairing back-pointers.
func (g *Graph) nodeOrPanic(id int64) *Node {
	n, ok := g.nodes[id]
	if !ok {
		corruptf("node %d referenced but not present in node map", id)
	}
	return n
}
