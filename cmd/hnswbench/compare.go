package main

import (
	"encoding/json"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/spf13/cobra"

	"github.com/hupe1980/hnswgo/bench"
)

// newCompareCmd diffs a JSON report file between two git revisions of the
// repository the CLI runs in. It never touches the working tree: the
// report contents are read straight out of each commit's tree via go-git.
func newCompareCmd() *cobra.Command {
	var repoPath string

	cmd := &cobra.Command{
		Use:   "compare <report-path> <rev-a> <rev-b>",
		Short: "Compare a JSON bench report between two git revisions",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			reportPath, revA, revB := args[0], args[1], args[2]

			repo, err := gogit.PlainOpen(repoPath)
			if err != nil {
				return fmt.Errorf("hnswbench: open repository: %w", err)
			}

			a, err := reportAtRevision(repo, revA, reportPath)
			if err != nil {
				return fmt.Errorf("hnswbench: %s at %s: %w", reportPath, revA, err)
			}
			b, err := reportAtRevision(repo, revB, reportPath)
			if err != nil {
				return fmt.Errorf("hnswbench: %s at %s: %w", reportPath, revB, err)
			}

			fmt.Println(headingStyle.Render(fmt.Sprintf("%s: %s vs %s", reportPath, revA, revB)))
			printDelta("build (ms)", a.BuildMs, b.BuildMs, lowerIsBetter)
			printDelta("recall@k", a.RecallAtK, b.RecallAtK, higherIsBetter)
			printDelta("p50 (ms)", a.LatencyMs.P50, b.LatencyMs.P50, lowerIsBetter)
			printDelta("p99 (ms)", a.LatencyMs.P99, b.LatencyMs.P99, lowerIsBetter)
			return nil
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", ".", "path to the git repository holding report history")

	return cmd
}

// reportAtRevision resolves rev to a commit and decodes path out of that
// commit's tree, without checking anything out onto disk.
func reportAtRevision(repo *gogit.Repository, rev, path string) (bench.Report, error) {
	var report bench.Report

	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return report, fmt.Errorf("resolve revision: %w", err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return report, fmt.Errorf("load commit: %w", err)
	}

	file, err := commit.File(path)
	if err != nil {
		return report, fmt.Errorf("find file: %w", err)
	}

	contents, err := file.Contents()
	if err != nil {
		return report, fmt.Errorf("read file: %w", err)
	}

	if err := json.Unmarshal([]byte(contents), &report); err != nil {
		return report, fmt.Errorf("decode report: %w", err)
	}

	return report, nil
}

type direction int

const (
	lowerIsBetter direction = iota
	higherIsBetter
)

func printDelta(label string, a, b float64, dir direction) {
	delta := b - a
	improved := delta < 0
	if dir == higherIsBetter {
		improved = delta > 0
	}

	rendered := fmt.Sprintf("%.3f -> %.3f (%+.3f)", a, b, delta)
	if improved {
		fmt.Printf("%-12s %s\n", label, okStyle.Render(rendered))
	} else {
		fmt.Printf("%-12s %s\n", label, warnStyle.Render(rendered))
	}
}
