package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/smudge-dev/smudge/internal/adapter"
	"github.com/smudge-dev/smudge/internal/controller"
	m "github.com/smudge-dev/smudge/internal/model"
	"github.com/smudge-dev/smudge/pkg"
)

// RunArgs holds the parameters for an in-place obfuscation run.
type RunArgs struct {
	Paths      []m.Path
	Extension  string
	Exclude    []string
	Parallel   int
	Reports    m.Path
	SaveReport bool
	Backup     bool
}

// PlanArgs holds the parameters for a dry run.
type PlanArgs struct {
	Paths     []m.Path
	Extension string
	Exclude   []string
}

// ListArgs holds the parameters for listing candidate files.
type ListArgs struct {
	Paths     []m.Path
	Extension string
	Exclude   []string
}

// ViewArgs holds the parameters for viewing saved reports.
type ViewArgs struct {
	Reports m.Path
}

// Workflow ties traversal, rewriting, reporting and the UI together. One
// method per CLI command.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	Plan(ctx context.Context, args PlanArgs) error
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	controller.UI
	Obfuscator
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	obfuscator Obfuscator,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		Obfuscator:      obfuscator,
	}
}

// Run rewrites every candidate file in place. The first failure aborts the
// whole run: there is no per-file isolation and no retry.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	startedAt := time.Now()

	files, err := w.collectCandidates(args.Paths, args.Extension, args.Exclude)
	if err != nil {
		slog.Error("failed to collect candidate files", "error", err)
		return err
	}

	workers := args.Parallel
	if workers < 1 {
		workers = 1
	}

	if err := w.Start(ctx, controller.WithRunMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	w.DisplayRunInfo(ctx, len(files), workers)

	journal, err := pkg.NewFileJournal[m.RewriteReport]("")
	if err != nil {
		return fmt.Errorf("failed to create report journal: %w", err)
	}

	defer func() {
		_ = journal.Close()
		_ = os.Remove(journal.Path())
	}()

	var backups pkg.FileJournal[m.Snapshot]

	if args.Backup {
		backups, err = pkg.NewFileJournal[m.Snapshot](string(args.Reports))
		if err != nil {
			return fmt.Errorf("failed to create backup journal: %w", err)
		}

		defer func() {
			_ = backups.Close()
		}()

		slog.Info("backing up originals", "journal", backups.Path())
	}

	if err := w.processFiles(ctx, files, workers, backups, journal); err != nil {
		slog.Error("run aborted", "error", err)
		return err
	}

	report := m.RunReport{
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		Roots:      args.Paths,
		Extension:  args.Extension,
	}

	if err := journal.Range(func(_ uint64, item m.RewriteReport) error {
		report.Files = append(report.Files, item)
		return nil
	}); err != nil {
		return fmt.Errorf("failed to collect reports: %w", err)
	}

	if args.SaveReport && args.Reports != "" {
		if err := w.SaveReport(args.Reports, report); err != nil {
			slog.Error("failed to save run report", "error", err)
			return err
		}
	}

	w.DisplayRunSummary(ctx, report)
	w.Wait(ctx)

	return nil
}

func (w *workflow) processFiles(
	ctx context.Context,
	files []m.File,
	workers int,
	backups pkg.FileJournal[m.Snapshot],
	journal pkg.FileJournal[m.RewriteReport],
) error {
	process := func(ctx context.Context, file m.File) error {
		w.DisplayFileStarted(ctx, file)

		if backups != nil {
			if err := w.snapshot(file, backups); err != nil {
				return err
			}
		}

		report, err := w.RewriteFile(ctx, file)
		if err != nil {
			return err
		}

		if err := journal.Append(report); err != nil {
			return err
		}

		slog.Debug("rewrote file", "path", file.FullPath, "captures", len(report.Captures), "changed", report.Changed)
		w.DisplayFileCompleted(ctx, report)

		return nil
	}

	// One worker keeps the strictly sequential, one-file-at-a-time order.
	if workers == 1 {
		for _, file := range files {
			if err := process(ctx, file); err != nil {
				return err
			}
		}

		return nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for _, file := range files {
		file := file
		group.Go(func() error {
			return process(groupCtx, file)
		})
	}

	return group.Wait()
}

func (w *workflow) snapshot(file m.File, backups pkg.FileJournal[m.Snapshot]) error {
	content, err := w.ReadFile(file.FullPath)
	if err != nil {
		return fmt.Errorf("failed to back up %s: %w", file.FullPath, err)
	}

	var mode uint32

	if info, err := w.FileInfo(file.FullPath); err == nil {
		mode = uint32(info.Mode().Perm())
	}

	return backups.Append(m.Snapshot{Path: file.FullPath, Mode: mode, Content: content})
}

// Plan computes every rewrite without writing and shows unified diffs.
func (w *workflow) Plan(ctx context.Context, args PlanArgs) error {
	files, err := w.collectCandidates(args.Paths, args.Extension, args.Exclude)
	if err != nil {
		slog.Error("failed to collect candidate files", "error", err)
		return err
	}

	if err := w.Start(ctx, controller.WithPlanMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	report := m.RunReport{
		StartedAt: time.Now(),
		Roots:     args.Paths,
		Extension: args.Extension,
		DryRun:    true,
	}

	for _, file := range files {
		fileReport, diff, err := w.PlanFile(ctx, file)
		if err != nil {
			return err
		}

		w.DisplayDiff(ctx, file, diff)
		report.Files = append(report.Files, fileReport)
	}

	report.FinishedAt = time.Now()
	w.DisplayRunSummary(ctx, report)

	return nil
}

// List shows candidate files together with their per-keyword capture counts.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	files, err := w.collectCandidates(args.Paths, args.Extension, args.Exclude)
	if err != nil {
		slog.Error("failed to collect candidate files", "error", err)
		return err
	}

	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	counts := make([]controller.FileCaptureCount, 0, len(files))

	for _, file := range files {
		captures, err := w.CountFile(ctx, file)
		if err != nil {
			return err
		}

		count := controller.FileCaptureCount{Path: string(file.ShortPath)}

		for _, capture := range captures {
			switch capture.Kind {
			case m.CaptureVariable:
				count.Variables++
			case m.CaptureFunction:
				count.Functions++
			}
		}

		counts = append(counts, count)
	}

	return w.DisplayCandidates(ctx, counts)
}

// View renders previously saved run reports.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	reports, err := w.LoadReports(args.Reports)
	if err != nil {
		slog.Error("failed to load reports", "path", args.Reports, "error", err)
		return err
	}

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	return w.DisplayReports(ctx, reports)
}

// collectCandidates walks every root and returns the files whose name ends
// with the extension, in the order the filesystem walk yields them. Any
// traversal error aborts the collection.
func (w *workflow) collectCandidates(roots []m.Path, extension string, exclude []string) ([]m.File, error) {
	if extension == "" {
		return nil, fmt.Errorf("empty target extension")
	}

	patterns, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	var files []m.File

	for _, root := range roots {
		err := w.Walk(root, true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() || !strings.HasSuffix(info.Name(), extension) {
				return nil
			}

			for _, pattern := range patterns {
				if pattern.MatchString(path) {
					slog.Debug("excluded file", "path", path, "pattern", pattern.String())
					return nil
				}
			}

			hash, err := w.HashFile(m.Path(path))
			if err != nil {
				return err
			}

			short, relErr := w.RelPath(root, m.Path(path))
			if relErr != nil {
				short = m.Path(path)
			}

			files = append(files, m.File{
				FullPath:  m.Path(path),
				ShortPath: short,
				Hash:      hash,
			})

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	return files, nil
}

func compileExcludes(exclude []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exclude))

	for _, expr := range exclude {
		pattern, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", expr, err)
		}

		patterns = append(patterns, pattern)
	}

	return patterns, nil
}
