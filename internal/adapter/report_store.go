package adapter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/smudge-dev/smudge/internal/model"
)

// ReportStore persists run reports so they can be inspected later with the
// view command.
type ReportStore interface {
	SaveReport(dir m.Path, report m.RunReport) error
	LoadReports(dir m.Path) ([]m.RunReport, error)
}

const reportTimestampLayout = "20060102-150405.000"

type yamlReportStore struct{}

// NewReportStore constructs a store that writes one YAML document per run
// into the reports directory.
func NewReportStore() ReportStore {
	return &yamlReportStore{}
}

// SaveReport writes the report as run-<timestamp>.yaml inside dir,
// creating the directory if needed.
func (s *yamlReportStore) SaveReport(dir m.Path, report m.RunReport) error {
	if dir == "" {
		return fmt.Errorf("empty reports directory")
	}

	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}

	content, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	name := fmt.Sprintf("run-%s.yaml", report.StartedAt.Format(reportTimestampLayout))
	target := filepath.Join(string(dir), name)

	if err := os.WriteFile(target, content, 0o600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	slog.Debug("saved run report", "path", target, "files", len(report.Files))

	return nil
}

// LoadReports reads every run-*.yaml in dir, oldest first. A missing
// directory yields an empty slice, not an error.
func (s *yamlReportStore) LoadReports(dir m.Path) ([]m.RunReport, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read reports directory: %w", err)
	}

	var reports []m.RunReport

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(string(dir), entry.Name())

		content, err := os.ReadFile(path) // #nosec G304 - path comes from the reports directory listing
		if err != nil {
			return nil, fmt.Errorf("failed to read report %s: %w", path, err)
		}

		var report m.RunReport
		if err := yaml.Unmarshal(content, &report); err != nil {
			return nil, fmt.Errorf("failed to decode report %s: %w", path, err)
		}

		reports = append(reports, report)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].StartedAt.Before(reports[j].StartedAt)
	})

	return reports, nil
}
