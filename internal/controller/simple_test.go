package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/smudge-dev/smudge/internal/model"
)

func newBufferedSimpleUI() (*SimpleUI, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	return NewSimpleUI(cmd), buf
}

func TestSimpleUI_DisplayCandidates(t *testing.T) {
	ui, buf := newBufferedSimpleUI()

	err := ui.DisplayCandidates(context.Background(), []FileCaptureCount{
		{Path: "main.rs", Variables: 2, Functions: 1},
		{Path: "lib.rs", Variables: 0, Functions: 3},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "main.rs")
	assert.Contains(t, out, "lib.rs")
	assert.Contains(t, out, "Total Files 2")
}

func TestSimpleUI_DisplayRunSummary(t *testing.T) {
	ui, buf := newBufferedSimpleUI()

	report := m.RunReport{
		Files: []m.RewriteReport{
			{Changed: true, Captures: []m.Capture{{Kind: m.CaptureVariable, Name: "x"}}},
			{Changed: false},
		},
	}

	ui.DisplayRunSummary(context.Background(), report)

	assert.Contains(t, buf.String(), "rewrote 1 of 2 file(s)")
	assert.Contains(t, buf.String(), "1 variable and 0 function capture(s)")
}

func TestSimpleUI_DisplayRunSummary_DryRun(t *testing.T) {
	ui, buf := newBufferedSimpleUI()

	ui.DisplayRunSummary(context.Background(), m.RunReport{DryRun: true})

	assert.Contains(t, buf.String(), "would rewrite 0 of 0 file(s)")
}

func TestSimpleUI_DisplayFileCompleted(t *testing.T) {
	ui, buf := newBufferedSimpleUI()

	ui.DisplayFileCompleted(context.Background(), m.RewriteReport{
		File:     m.File{ShortPath: "main.rs"},
		Changed:  true,
		Captures: []m.Capture{{Name: "x"}, {Name: "y"}},
	})
	ui.DisplayFileCompleted(context.Background(), m.RewriteReport{
		File: m.File{ShortPath: "empty.rs"},
	})

	assert.Contains(t, buf.String(), "main.rs -> 2 capture(s)")
	assert.Contains(t, buf.String(), "empty.rs -> unchanged")
}

func TestSimpleUI_DisplayDiff(t *testing.T) {
	ui, buf := newBufferedSimpleUI()

	ui.DisplayDiff(context.Background(), m.File{ShortPath: "main.rs"}, "")
	assert.Contains(t, buf.String(), "main.rs: no changes")

	buf.Reset()
	ui.DisplayDiff(context.Background(), m.File{ShortPath: "main.rs"}, "--- main.rs\n+++ main.rs (obfuscated)\n")
	assert.Contains(t, buf.String(), "+++ main.rs (obfuscated)")
}

func TestSimpleUI_DisplayReports(t *testing.T) {
	ui, buf := newBufferedSimpleUI()

	err := ui.DisplayReports(context.Background(), []m.RunReport{
		{
			StartedAt: time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
			Roots:     []m.Path{"src"},
			Files:     []m.RewriteReport{{Changed: true}},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2026-08-23 10:00:00")
	assert.Contains(t, out, "src")
}

func TestSimpleUI_DisplayReports_Empty(t *testing.T) {
	ui, buf := newBufferedSimpleUI()

	err := ui.DisplayReports(context.Background(), nil)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "No reports found")
}

func TestSimpleUI_ConcurrentDisplay(t *testing.T) {
	ui, buf := newBufferedSimpleUI()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(1)

		go func() {
			defer wg.Done()

			file := m.File{ShortPath: m.Path(fmt.Sprintf("file_%d.rs", i))}
			ui.DisplayFileStarted(context.Background(), file)
			ui.DisplayFileCompleted(context.Background(), m.RewriteReport{
				File:     file,
				Changed:  true,
				Captures: []m.Capture{{Name: "x"}},
			})
		}()
	}
	wg.Wait()

	out := buf.String()
	assert.Equal(t, 16, strings.Count(out, "\n"))

	for i := 0; i < 8; i++ {
		assert.Contains(t, out, fmt.Sprintf("Rewriting file_%d.rs", i))
		assert.Contains(t, out, fmt.Sprintf("Completed file_%d.rs -> 1 capture(s)", i))
	}
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	ui, buf := newBufferedSimpleUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, ui.Start(ctx))
	ui.DisplayRunInfo(ctx, 3, 1)
	ui.DisplayRunSummary(ctx, m.RunReport{})

	assert.Empty(t, buf.String())
}
