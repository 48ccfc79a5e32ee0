package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/hnswgo/bench"
	"github.com/hupe1980/hnswgo/hnsw"
	"github.com/hupe1980/hnswgo/persistence"
	"github.com/hupe1980/hnswgo/similarity"
)

func newBuildCmd(configPath *string) *cobra.Command {
	var (
		m              int
		efConstruction int
		metric         string
		dimension      int
		numPoints      int
		seed           int64
		dataset        string
		indexPath      string
		reportPath     string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build an HNSW index from a dataset or synthetic vectors and save it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(*configPath)
			if err != nil {
				return err
			}
			applyConfigDefaults(&cfg, &m, &efConstruction, &metric, &dimension, &numPoints, &seed, &dataset, &indexPath, &reportPath)

			points, err := loadOrGenerate(dataset, numPoints, dimension, seed)
			if err != nil {
				return err
			}

			g, err := hnsw.New(
				hnsw.WithM(m),
				hnsw.WithEfConstruction(efConstruction),
				hnsw.WithMetric(similarity.Metric(metric)),
				hnsw.WithDimension(dimension),
			)
			if err != nil {
				return err
			}

			hnswPoints := make([]hnsw.Point, len(points))
			for i, p := range points {
				hnswPoints[i] = hnsw.Point{Id: p.Id, Vector: p.Vector}
			}

			start := time.Now()
			if err := g.BuildIndex(hnswPoints); err != nil {
				return err
			}
			elapsed := time.Since(start)

			store, err := persistence.Open(indexPath)
			if err != nil {
				return err
			}
			defer store.Close()

			data, err := g.ToJSON()
			if err != nil {
				return err
			}
			if err := store.SaveIndex(data); err != nil {
				return err
			}

			report := bench.Report{
				BuildMs:           float64(elapsed.Microseconds()) / 1000.0,
				NumPoints:         g.Len(),
				GeneratedAtUnixMs: time.Now().UnixMilli(),
			}
			if reportPath != "" {
				if err := writeReport(reportPath, report); err != nil {
					return err
				}
			}

			fmt.Println(headingStyle.Render("build complete"))
			fmt.Printf("points: %d  time: %s  index: %s\n", g.Len(), elapsed.Round(time.Millisecond), indexPath)
			return nil
		},
	}

	cmd.Flags().IntVar(&m, "m", 16, "max neighbors per node per layer")
	cmd.Flags().IntVar(&efConstruction, "ef-construction", 200, "beam width during insertion")
	cmd.Flags().StringVar(&metric, "metric", "cosine", "cosine or euclidean")
	cmd.Flags().IntVar(&dimension, "dimension", 128, "vector dimension (ignored when --dataset is set)")
	cmd.Flags().IntVar(&numPoints, "num-points", 10000, "number of synthetic points to generate (ignored when --dataset is set)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "RNG seed for synthetic generation")
	cmd.Flags().StringVar(&dataset, "dataset", "", "path to an fvecs dataset (overrides synthetic generation)")
	cmd.Flags().StringVar(&indexPath, "index", "index.db", "sqlite file to persist the built index to")
	cmd.Flags().StringVar(&reportPath, "report", "", "optional path to write a JSON build report")

	return cmd
}

func loadOrGenerate(dataset string, numPoints, dimension int, seed int64) ([]bench.Point, error) {
	if dataset != "" {
		vecs, err := bench.ReadFvecs(dataset)
		if err != nil {
			return nil, fmt.Errorf("hnswbench: load dataset: %w", err)
		}
		points := make([]bench.Point, len(vecs))
		for i, v := range vecs {
			points[i] = bench.Point{Id: int64(i), Vector: v}
		}
		return points, nil
	}

	rng := bench.NewRNG(seed)
	vecs := rng.GenerateVectors(numPoints, dimension)
	points := make([]bench.Point, len(vecs))
	for i, v := range vecs {
		points[i] = bench.Point{Id: int64(i), Vector: v}
	}
	return points, nil
}

func applyConfigDefaults(
	cfg *Config,
	m, efConstruction *int,
	metric *string,
	dimension, numPoints *int,
	seed *int64,
	dataset, indexPath, reportPath *string,
) {
	if cfg.M > 0 {
		*m = cfg.M
	}
	if cfg.EfConstruction > 0 {
		*efConstruction = cfg.EfConstruction
	}
	if cfg.Metric != "" {
		*metric = cfg.Metric
	}
	if cfg.Dimension > 0 {
		*dimension = cfg.Dimension
	}
	if cfg.NumPoints > 0 {
		*numPoints = cfg.NumPoints
	}
	if cfg.Seed != 0 {
		*seed = cfg.Seed
	}
	if cfg.Dataset != "" {
		*dataset = cfg.Dataset
	}
	if cfg.Index != "" {
		*indexPath = cfg.Index
	}
	if cfg.Report != "" {
		*reportPath = cfg.Report
	}
}
