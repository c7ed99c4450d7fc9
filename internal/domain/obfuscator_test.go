package domain

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smudge-dev/smudge/internal/adapter"
	m "github.com/smudge-dev/smudge/internal/model"
)

func newTestObfuscator() Obfuscator {
	return NewObfuscator(adapter.NewLocalSourceFSAdapter(), DefaultRules())
}

func writeSource(t *testing.T, dir, name, content string) m.File {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	return m.File{FullPath: m.Path(path), ShortPath: m.Path(name)}
}

func TestObfuscator_RewriteFile(t *testing.T) {
	o := newTestObfuscator()
	dir := t.TempDir()

	file := writeSource(t, dir, "main.rs", "let x = 1;\nfn doWork() { return x; }")

	report, err := o.RewriteFile(context.Background(), file)
	if err != nil {
		t.Fatalf("RewriteFile() error = %v", err)
	}

	got, err := os.ReadFile(string(file.FullPath))
	if err != nil {
		t.Fatalf("failed to read rewritten file: %v", err)
	}

	want := "let var_0 = 1;\nfn func_0() { return var_0; }"
	if string(got) != want {
		t.Fatalf("rewritten content = %q, want %q", string(got), want)
	}

	if !report.Changed {
		t.Fatalf("expected report.Changed")
	}
	if len(report.Captures) != 2 {
		t.Fatalf("expected 2 captures, got %d", len(report.Captures))
	}
	if report.RewrittenHash == "" {
		t.Fatalf("expected rewritten hash to be set")
	}
	if report.BytesBefore != len("let x = 1;\nfn doWork() { return x; }") {
		t.Fatalf("unexpected BytesBefore %d", report.BytesBefore)
	}
}

func TestObfuscator_RewriteFile_NoDeclarations(t *testing.T) {
	o := newTestObfuscator()
	dir := t.TempDir()

	content := "const PI = 3.14;\n"
	file := writeSource(t, dir, "consts.rs", content)

	report, err := o.RewriteFile(context.Background(), file)
	if err != nil {
		t.Fatalf("RewriteFile() error = %v", err)
	}

	got, _ := os.ReadFile(string(file.FullPath))
	if string(got) != content {
		t.Fatalf("no-op rewrite changed content: %q", string(got))
	}

	if report.Changed {
		t.Fatalf("expected report.Changed to be false")
	}
	if report.RewrittenHash != "" {
		t.Fatalf("expected no rewritten hash for unchanged file")
	}
}

func TestObfuscator_RewriteFile_InvalidUTF8(t *testing.T) {
	o := newTestObfuscator()
	dir := t.TempDir()

	path := filepath.Join(dir, "bad.rs")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 'l', 'e', 't'}, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	_, err := o.RewriteFile(context.Background(), m.File{FullPath: m.Path(path), ShortPath: "bad.rs"})
	if err == nil {
		t.Fatalf("expected encoding error")
	}
	if !strings.Contains(err.Error(), "UTF-8") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestObfuscator_PlanFile_DoesNotWrite(t *testing.T) {
	o := newTestObfuscator()
	dir := t.TempDir()

	content := "let x = 1;\n"
	file := writeSource(t, dir, "main.rs", content)

	report, diff, err := o.PlanFile(context.Background(), file)
	if err != nil {
		t.Fatalf("PlanFile() error = %v", err)
	}

	got, _ := os.ReadFile(string(file.FullPath))
	if string(got) != content {
		t.Fatalf("PlanFile modified the file: %q", string(got))
	}

	if !report.Changed {
		t.Fatalf("expected report.Changed")
	}
	if !strings.Contains(diff, "-let x = 1;") || !strings.Contains(diff, "+let var_0 = 1;") {
		t.Fatalf("unexpected diff:\n%s", diff)
	}
}

func TestObfuscator_CountFile(t *testing.T) {
	o := newTestObfuscator()
	dir := t.TempDir()

	file := writeSource(t, dir, "main.rs", "let a = 1;\nlet b = 2;\nfn run() {}")

	captures, err := o.CountFile(context.Background(), file)
	if err != nil {
		t.Fatalf("CountFile() error = %v", err)
	}

	variables, functions := 0, 0
	for _, capture := range captures {
		switch capture.Kind {
		case m.CaptureVariable:
			variables++
		case m.CaptureFunction:
			functions++
		}
	}

	if variables != 2 || functions != 1 {
		t.Fatalf("counts = %d variables / %d functions, want 2/1", variables, functions)
	}
}
