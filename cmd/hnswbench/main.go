// Command hnswbench drives the hnsw package's build, query, report, and
// compare workflows named informatively in the index's external
// interfaces. It carries no algorithmic content of its own.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "hnswbench",
		Short: "Benchmark harness for the hnsw package",
		Long:  "hnswbench builds, queries, and reports on HNSW indexes, and compares reports across git revisions.",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (optional; its non-zero values override flags)")

	root.AddCommand(newBuildCmd(&configPath))
	root.AddCommand(newQueryCmd(&configPath))
	root.AddCommand(newReportCmd())
	root.AddCommand(newCompareCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, warnStyle.Render(err.Error()))
		os.Exit(1)
	}
}
