// Package controller provides output adapters for displaying obfuscation
// progress and results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "github.com/smudge-dev/smudge/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeRun StartMode = iota
	ModePlan
	ModeList
	ModeView
)

// StartOption is a functional option for the Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithRunMode sets the UI to in-place rewrite mode.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// WithPlanMode sets the UI to dry-run diff mode.
func WithPlanMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModePlan
	}
}

// WithListMode sets the UI to candidate listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithViewMode sets the UI to report viewing mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

// FileCaptureCount holds per-file capture counts for the list command.
type FileCaptureCount struct {
	Path      string
	Variables int
	Functions int
}

// UI defines the interface for displaying obfuscation progress and
// results. Implementations can use different output methods (simple text,
// TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context)
	DisplayRunInfo(ctx context.Context, files int, workers int)
	DisplayFileStarted(ctx context.Context, file m.File)
	DisplayFileCompleted(ctx context.Context, report m.RewriteReport)
	DisplayDiff(ctx context.Context, file m.File, diff string)
	DisplayCandidates(ctx context.Context, counts []FileCaptureCount) error
	DisplayRunSummary(ctx context.Context, report m.RunReport)
	DisplayReports(ctx context.Context, reports []m.RunReport) error
}

// NewUI picks the TUI when stdout is an interactive terminal and the plain
// cobra-backed UI otherwise.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive {
		return NewTUI(os.Stdout)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
