package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/hnswgo/bench"
	"github.com/hupe1980/hnswgo/hnsw"
	"github.com/hupe1980/hnswgo/persistence"
)

func newQueryCmd(configPath *string) *cobra.Command {
	var (
		indexPath  string
		k          int
		efSearch   int
		numQueries int
		seed       int64
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run random queries against a saved index and report latency and recall@k",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(*configPath)
			if err != nil {
				return err
			}
			if cfg.Index != "" {
				indexPath = cfg.Index
			}
			if cfg.K > 0 {
				k = cfg.K
			}
			if cfg.EfSearch > 0 {
				efSearch = cfg.EfSearch
			}
			if cfg.NumQueries > 0 {
				numQueries = cfg.NumQueries
			}
			if cfg.Seed != 0 {
				seed = cfg.Seed
			}
			if cfg.Report != "" {
				reportPath = cfg.Report
			}

			store, err := persistence.Open(indexPath)
			if err != nil {
				return err
			}
			defer store.Close()

			data, err := store.LoadIndex()
			if err != nil {
				return err
			}
			if data == nil {
				return fmt.Errorf("hnswbench: no saved index at %s", indexPath)
			}

			g, err := hnsw.FromJSON(data)
			if err != nil {
				return err
			}

			corpus := g.Points()
			dim := 0
			if len(corpus) > 0 {
				dim = len(corpus[0].Vector)
			}
			benchCorpus := make([]bench.Point, len(corpus))
			for i, p := range corpus {
				benchCorpus[i] = bench.Point{Id: p.Id, Vector: p.Vector}
			}

			rng := bench.NewRNG(seed)
			queries := rng.GenerateQueries(numQueries, dim)

			durations := make([]time.Duration, 0, len(queries))
			var recallSum float64

			for _, q := range queries {
				start := time.Now()
				got, err := g.SearchKNN(q, k, hnsw.WithSearchEf(efSearch))
				durations = append(durations, time.Since(start))
				if err != nil {
					return err
				}

				want, err := bench.BruteForceKNN(benchCorpus, q, k, g.Metric())
				if err != nil {
					return err
				}

				gotIds := make([]int64, len(got))
				for i, r := range got {
					gotIds[i] = r.Id
				}
				recallSum += bench.RecallAt(gotIds, want)
			}

			percentiles := bench.ComputeLatencyPercentiles(durations)
			recall := 0.0
			if len(queries) > 0 {
				recall = recallSum / float64(len(queries))
			}

			report := bench.Report{
				NumPoints:         g.Len(),
				NumQueries:        len(queries),
				K:                 k,
				RecallAtK:         recall,
				LatencyMs:         percentiles,
				GeneratedAtUnixMs: time.Now().UnixMilli(),
			}
			if reportPath != "" {
				if err := writeReport(reportPath, report); err != nil {
					return err
				}
			}

			fmt.Println(headingStyle.Render("query complete"))
			fmt.Printf("queries: %d  recall@%d: %.3f  p50: %.2fms  p90: %.2fms  p99: %.2fms\n",
				report.NumQueries, k, recall, percentiles.P50, percentiles.P90, percentiles.P99)
			return nil
		},
	}

	cmd.Flags().StringVar(&indexPath, "index", "index.db", "sqlite file the index was saved to")
	cmd.Flags().IntVar(&k, "k", 10, "neighbors per query")
	cmd.Flags().IntVar(&efSearch, "ef-search", 50, "beam width override for queries")
	cmd.Flags().IntVar(&numQueries, "num-queries", 100, "number of synthetic queries to run")
	cmd.Flags().Int64Var(&seed, "seed", 2, "RNG seed for synthetic queries")
	cmd.Flags().StringVar(&reportPath, "report", "", "optional path to write a JSON query report")

	return cmd
}
