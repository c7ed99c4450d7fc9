package controller

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/smudge-dev/smudge/internal/model"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	pathStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	unchangedStyle = lipgloss.NewStyle().Faint(true)
	summaryStyle   = lipgloss.NewStyle().Bold(true)
)

// TUI implements UI using Bubble Tea for interactive terminals. Run mode
// drives a live progress bar; the other modes render once and return.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the progress program in run mode. Other modes render
// statically, so nothing is started for them.
func (p *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	config := StartConfig{}
	for _, option := range options {
		option(&config)
	}

	if config.mode != ModeRun {
		return nil
	}

	p.program = tea.NewProgram(newRunModel(), tea.WithOutput(p.output))
	p.done = make(chan struct{})

	go func() {
		_, _ = p.program.Run()
		close(p.done)
	}()

	return nil
}

// Close stops the progress program if one is running.
func (p *TUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	if p.program != nil {
		p.program.Quit()
	}
}

// Wait blocks until the progress program has finished rendering.
func (p *TUI) Wait(ctx context.Context) {
	if p.done == nil {
		return
	}

	select {
	case <-ctx.Done():
	case <-p.done:
	}
}

// DisplayRunInfo feeds the totals to the progress model.
func (p *TUI) DisplayRunInfo(ctx context.Context, files int, workers int) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.send(runInfoMsg{files: files, workers: workers})
}

// DisplayFileStarted shows the file currently being rewritten.
func (p *TUI) DisplayFileStarted(ctx context.Context, file m.File) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.send(fileStartedMsg{file: file})
}

// DisplayFileCompleted advances the progress bar.
func (p *TUI) DisplayFileCompleted(ctx context.Context, report m.RewriteReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.send(fileCompletedMsg{report: report})
}

// DisplayDiff renders a planned rewrite as a unified diff.
func (p *TUI) DisplayDiff(ctx context.Context, file m.File, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	if diff == "" {
		fmt.Fprintf(p.output, "%s\n", unchangedStyle.Render(string(file.ShortPath)+": no changes"))
		return
	}

	fmt.Fprintf(p.output, "%s\n%s", pathStyle.Render(string(file.ShortPath)), diff)
}

// DisplayCandidates renders the candidate files and their capture counts.
func (p *TUI) DisplayCandidates(ctx context.Context, counts []FileCaptureCount) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sorted := make([]FileCaptureCount, len(counts))
	copy(sorted, counts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	var b strings.Builder

	b.WriteString(titleStyle.Render("Candidate files") + "\n\n")

	totalVariables := 0
	totalFunctions := 0

	for _, count := range sorted {
		line := fmt.Sprintf("  %s: %d variable(s), %d function(s)", count.Path, count.Variables, count.Functions)
		if count.Variables == 0 && count.Functions == 0 {
			line = unchangedStyle.Render(line)
		}

		b.WriteString(line + "\n")

		totalVariables += count.Variables
		totalFunctions += count.Functions
	}

	fmt.Fprintf(&b, "\n  %s\n",
		summaryStyle.Render(fmt.Sprintf("Total: %d variable and %d function capture(s) across %d file(s)",
			totalVariables, totalFunctions, len(sorted))))

	_, err := fmt.Fprint(p.output, b.String())

	return err
}

// DisplayRunSummary delivers the final counters and lets the progress
// program render them before quitting.
func (p *TUI) DisplayRunSummary(ctx context.Context, report m.RunReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	if p.program == nil {
		fmt.Fprintf(p.output, "%s\n", summaryStyle.Render(summaryLine(report)))
		return
	}

	p.send(summaryMsg{report: report})
}

// DisplayReports renders previously saved run reports.
func (p *TUI) DisplayReports(ctx context.Context, reports []m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(reports) == 0 {
		_, err := fmt.Fprintln(p.output, "No reports found")
		return err
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Previous runs") + "\n\n")

	for _, report := range reports {
		variables, functions := report.TotalCaptures()
		fmt.Fprintf(&b, "  %s  %d file(s), %d changed, %d variable / %d function capture(s)\n",
			report.StartedAt.Format("2006-01-02 15:04:05"),
			len(report.Files), report.FilesChanged(), variables, functions)
	}

	_, err := fmt.Fprint(p.output, b.String())

	return err
}

func (p *TUI) send(msg tea.Msg) {
	if p.program != nil {
		p.program.Send(msg)
	}
}

func summaryLine(report m.RunReport) string {
	variables, functions := report.TotalCaptures()

	verb := "rewrote"
	if report.DryRun {
		verb = "would rewrite"
	}

	return fmt.Sprintf("Done: %s %d of %d file(s), %d variable and %d function capture(s)",
		verb, report.FilesChanged(), len(report.Files), variables, functions)
}

type runInfoMsg struct {
	files   int
	workers int
}

type fileStartedMsg struct {
	file m.File
}

type fileCompletedMsg struct {
	report m.RewriteReport
}

type summaryMsg struct {
	report m.RunReport
}

// runModel is the Bubble Tea model backing the run-mode progress display.
type runModel struct {
	bar       progress.Model
	total     int
	workers   int
	completed int
	changed   int
	current   string
	summary   *m.RunReport
	width     int
}

func newRunModel() runModel {
	return runModel{
		bar: progress.New(progress.WithDefaultGradient()),
	}
}

func (rm runModel) Init() tea.Cmd {
	return nil
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width

		barWidth := msg.Width - 8
		if barWidth > 0 {
			rm.bar.Width = barWidth
		}

		return rm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return rm, tea.Quit
		}

		return rm, nil

	case runInfoMsg:
		rm.total = msg.files
		rm.workers = msg.workers

		return rm, nil

	case fileStartedMsg:
		rm.current = string(msg.file.ShortPath)

		return rm, nil

	case fileCompletedMsg:
		rm.completed++
		if msg.report.Changed {
			rm.changed++
		}

		return rm, nil

	case summaryMsg:
		rm.summary = &msg.report
		rm.current = ""

		return rm, tea.Quit
	}

	return rm, nil
}

func (rm runModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("smudge") + "\n\n")

	percent := 0.0
	if rm.total > 0 {
		percent = float64(rm.completed) / float64(rm.total)
	}

	b.WriteString("  " + rm.bar.ViewAs(percent) + "\n\n")
	fmt.Fprintf(&b, "  %d/%d file(s), %d changed (%d worker(s))\n", rm.completed, rm.total, rm.changed, rm.workers)

	if rm.current != "" {
		fmt.Fprintf(&b, "  %s\n", pathStyle.Render(rm.current))
	}

	if rm.summary != nil {
		fmt.Fprintf(&b, "\n  %s\n", summaryStyle.Render(summaryLine(*rm.summary)))
	}

	return b.String()
}
