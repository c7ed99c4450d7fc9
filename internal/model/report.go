// Package model defines the data structures shared across smudge packages.
package model

import "time"

// RewriteReport records what happened to a single candidate file.
type RewriteReport struct {
	File     File      `yaml:"file"`
	Captures []Capture `yaml:"captures,omitempty"`
	// Changed is false when both rounds produced zero captures and the
	// write-back was a no-op.
	Changed       bool   `yaml:"changed"`
	RewrittenHash string `yaml:"rewritten_hash,omitempty"`
	BytesBefore   int    `yaml:"bytes_before"`
	BytesAfter    int    `yaml:"bytes_after"`
}

// RunReport is the persisted record of one obfuscation run.
type RunReport struct {
	StartedAt  time.Time       `yaml:"started_at"`
	FinishedAt time.Time       `yaml:"finished_at"`
	Roots      []Path          `yaml:"roots"`
	Extension  string          `yaml:"extension"`
	DryRun     bool            `yaml:"dry_run,omitempty"`
	Files      []RewriteReport `yaml:"files"`
}

// Snapshot preserves a file's original content before an in-place
// rewrite, for the opt-in backup journal.
type Snapshot struct {
	Path    Path
	Mode    uint32
	Content []byte
}

// FilesChanged returns how many files were actually rewritten.
func (r RunReport) FilesChanged() int {
	changed := 0

	for _, f := range r.Files {
		if f.Changed {
			changed++
		}
	}

	return changed
}

// TotalCaptures returns the number of captures across all files, split by kind.
func (r RunReport) TotalCaptures() (variables int, functions int) {
	for _, f := range r.Files {
		for _, c := range f.Captures {
			switch c.Kind {
			case CaptureVariable:
				variables++
			case CaptureFunction:
				functions++
			}
		}
	}

	return variables, functions
}
