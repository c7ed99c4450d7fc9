package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/smudge-dev/smudge/internal/model"
)

// SimpleUI implements UI using the cobra command's output stream. It is
// used when stdout is not a terminal (CI, pipes, tests).
type SimpleUI struct {
	cmd *cobra.Command
	mu  sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	_ = ctx.Err()
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	_ = ctx.Err()
}

// DisplayRunInfo shows how many files will be processed and by how many
// workers.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, files int, workers int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Processing %d file(s) with %d worker(s)\n", files, workers)
}

// DisplayFileStarted shows the file about to be rewritten.
func (s *SimpleUI) DisplayFileStarted(ctx context.Context, file m.File) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Rewriting %s\n", file.ShortPath)
}

// DisplayFileCompleted shows the outcome for a single file.
func (s *SimpleUI) DisplayFileCompleted(ctx context.Context, report m.RewriteReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	status := "unchanged"
	if report.Changed {
		status = fmt.Sprintf("%d capture(s)", len(report.Captures))
	}

	s.printf("Completed %s -> %s\n", report.File.ShortPath, status)
}

// DisplayDiff prints the unified diff for a planned rewrite.
func (s *SimpleUI) DisplayDiff(ctx context.Context, file m.File, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	if diff == "" {
		s.printf("%s: no changes\n", file.ShortPath)
		return
	}

	s.printf("%s", diff)
}

// DisplayCandidates renders the candidate files and their capture counts
// as a table.
func (s *SimpleUI) DisplayCandidates(ctx context.Context, counts []FileCaptureCount) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sorted := make([]FileCaptureCount, len(counts))
	copy(sorted, counts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	totalVariables := 0
	totalFunctions := 0

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Variables", "Functions"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	for _, count := range sorted {
		table.Append([]string{count.Path, fmt.Sprintf("%d", count.Variables), fmt.Sprintf("%d", count.Functions)})

		totalVariables += count.Variables
		totalFunctions += count.Functions
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(sorted)),
		fmt.Sprintf("%d", totalVariables),
		fmt.Sprintf("%d", totalFunctions),
	})

	table.Render()

	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayRunSummary prints the final counters for a run.
func (s *SimpleUI) DisplayRunSummary(ctx context.Context, report m.RunReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	variables, functions := report.TotalCaptures()

	verb := "rewrote"
	if report.DryRun {
		verb = "would rewrite"
	}

	s.printf("Done: %s %d of %d file(s), %d variable and %d function capture(s)\n",
		verb, report.FilesChanged(), len(report.Files), variables, functions)
}

// DisplayReports renders previously saved run reports.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(reports) == 0 {
		s.printf("No reports found\n")
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Started", "Roots", "Files", "Changed", "Variables", "Functions"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, report := range reports {
		variables, functions := report.TotalCaptures()

		roots := ""
		for i, root := range report.Roots {
			if i > 0 {
				roots += " "
			}

			roots += string(root)
		}

		table.Append([]string{
			report.StartedAt.Format("2006-01-02 15:04:05"),
			roots,
			fmt.Sprintf("%d", len(report.Files)),
			fmt.Sprintf("%d", report.FilesChanged()),
			fmt.Sprintf("%d", variables),
			fmt.Sprintf("%d", functions),
		})
	}

	table.Render()

	s.printf("\n%s", tableBuffer.String())

	return nil
}

// printf serializes writes: parallel runs call the per-file display
// methods from multiple workers over a shared writer.
func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
