package bench

import (
	"encoding/json"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Report is the JSON document a bench run produces: build time, query
// latency percentiles, and recall@k against brute-force ground truth.
type Report struct {
	BuildMs           float64            `json:"buildMs"`
	NumPoints         int                `json:"numPoints"`
	NumQueries        int                `json:"numQueries"`
	K                 int                `json:"k"`
	RecallAtK         float64            `json:"recallAtK"`
	LatencyMs         LatencyPercentiles `json:"latencyMs"`
	GeneratedAtUnixMs int64              `json:"generatedAtUnixMs"`
}

// LatencyPercentiles summarizes a set of query latencies.
type LatencyPercentiles struct {
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
	P99 float64 `json:"p99"`
	Max float64 `json:"max"`
}

// ComputeLatencyPercentiles derives p50/p90/p99/max from a set of observed
// query durations, using gonum/stat's quantile estimator over the sorted
// sample.
func ComputeLatencyPercentiles(durations []time.Duration) LatencyPercentiles {
	if len(durations) == 0 {
		return LatencyPercentiles{}
	}

	ms := make([]float64, len(durations))
	for i, d := range durations {
		ms[i] = float64(d.Microseconds()) / 1000.0
	}
	sort.Float64s(ms)

	return LatencyPercentiles{
		P50: stat.Quantile(0.50, stat.Empirical, ms, nil),
		P90: stat.Quantile(0.90, stat.Empirical, ms, nil),
		P99: stat.Quantile(0.99, stat.Empirical, ms, nil),
		Max: ms[len(ms)-1],
	}
}

// ToJSON renders the report as indented JSON, matching what the CLI writes
// to stdout or a report file.
func (r Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
