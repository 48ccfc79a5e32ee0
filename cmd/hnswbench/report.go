package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/hnswgo/bench"
)

func writeReport(path string, r bench.Report) error {
	data, err := r.ToJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <file>",
		Short: "Pretty-print a JSON bench report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var r bench.Report
			if err := json.Unmarshal(data, &r); err != nil {
				return err
			}

			fmt.Println(headingStyle.Render(fmt.Sprintf("report: %s", args[0])))
			if r.BuildMs > 0 {
				fmt.Printf("build:      %.1fms  (%d points)\n", r.BuildMs, r.NumPoints)
			}
			if r.NumQueries > 0 {
				fmt.Printf("queries:    %d  (k=%d)\n", r.NumQueries, r.K)
				fmt.Printf("recall@%d:   %s\n", r.K, recallStyle(r.RecallAtK))
				fmt.Printf("latency:    p50=%.2fms p90=%.2fms p99=%.2fms max=%.2fms\n",
					r.LatencyMs.P50, r.LatencyMs.P90, r.LatencyMs.P99, r.LatencyMs.Max)
			}
			return nil
		},
	}
}

func recallStyle(recall float64) string {
	s := fmt.Sprintf("%.3f", recall)
	if recall >= 0.95 {
		return okStyle.Render(s)
	}
	return warnStyle.Render(s)
}
