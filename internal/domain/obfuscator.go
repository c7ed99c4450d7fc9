package domain

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/smudge-dev/smudge/internal/adapter"
	m "github.com/smudge-dev/smudge/internal/model"
)

// Obfuscator applies the rename rounds to individual candidate files.
type Obfuscator interface {
	// RewriteFile reads the file, applies all rounds and writes the result
	// back in place. The write happens even when no capture matched, so a
	// declaration-free file gets a no-op overwrite.
	RewriteFile(ctx context.Context, file m.File) (m.RewriteReport, error)

	// PlanFile computes the same rewrite without touching the file and
	// returns a unified diff of what RewriteFile would do.
	PlanFile(ctx context.Context, file m.File) (m.RewriteReport, string, error)

	// CountFile returns the captures both rounds would take, without
	// writing anything.
	CountFile(ctx context.Context, file m.File) ([]m.Capture, error)
}

type obfuscator struct {
	fs    adapter.SourceFSAdapter
	rules []m.Rule
}

// NewObfuscator creates an Obfuscator using the provided filesystem
// adapter and rename rules.
func NewObfuscator(fs adapter.SourceFSAdapter, rules []m.Rule) Obfuscator {
	return &obfuscator{fs: fs, rules: rules}
}

const defaultFileMode os.FileMode = 0o644

func (o *obfuscator) RewriteFile(ctx context.Context, file m.File) (m.RewriteReport, error) {
	original, rewritten, captures, err := o.rewrite(ctx, file)
	if err != nil {
		return m.RewriteReport{}, err
	}

	perm := defaultFileMode
	if info, infoErr := o.fs.FileInfo(file.FullPath); infoErr == nil {
		perm = info.Mode().Perm()
	}

	if err := o.fs.WriteFile(file.FullPath, []byte(rewritten), perm); err != nil {
		return m.RewriteReport{}, fmt.Errorf("failed to write %s: %w", file.FullPath, err)
	}

	return buildReport(file, original, rewritten, captures), nil
}

func (o *obfuscator) PlanFile(ctx context.Context, file m.File) (m.RewriteReport, string, error) {
	original, rewritten, captures, err := o.rewrite(ctx, file)
	if err != nil {
		return m.RewriteReport{}, "", err
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(rewritten),
		FromFile: string(file.ShortPath),
		ToFile:   string(file.ShortPath) + " (obfuscated)",
		Context:  3,
	})
	if err != nil {
		return m.RewriteReport{}, "", fmt.Errorf("failed to diff %s: %w", file.FullPath, err)
	}

	return buildReport(file, original, rewritten, captures), diff, nil
}

func (o *obfuscator) CountFile(ctx context.Context, file m.File) ([]m.Capture, error) {
	_, _, captures, err := o.rewrite(ctx, file)

	return captures, err
}

// rewrite loads the file and threads its text through all rounds. The
// returned original text is untouched.
func (o *obfuscator) rewrite(ctx context.Context, file m.File) (string, string, []m.Capture, error) {
	if err := ctx.Err(); err != nil {
		return "", "", nil, err
	}

	content, err := o.fs.ReadFile(file.FullPath)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to read %s: %w", file.FullPath, err)
	}

	if !utf8.Valid(content) {
		return "", "", nil, fmt.Errorf("%s: content is not valid UTF-8 text", file.FullPath)
	}

	original := string(content)

	rewritten, captures, err := RewriteText(original, o.rules)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to rewrite %s: %w", file.FullPath, err)
	}

	return original, rewritten, captures, nil
}

func buildReport(file m.File, original, rewritten string, captures []m.Capture) m.RewriteReport {
	report := m.RewriteReport{
		File:        file,
		Captures:    captures,
		Changed:     rewritten != original,
		BytesBefore: len(original),
		BytesAfter:  len(rewritten),
	}

	if report.Changed {
		report.RewrittenHash = fmt.Sprintf("%x", sha256.Sum256([]byte(rewritten)))
	}

	return report
}
