package model

import "fmt"

// Path represents a file system path.
type Path string

// File represents a candidate source file discovered during traversal.
type File struct {
	FullPath  Path
	ShortPath Path
	Hash      string
}

// CaptureKind identifies which declaration keyword produced a capture.
type CaptureKind string

const (
	// CaptureVariable marks captures taken from variable declarations.
	CaptureVariable CaptureKind = "variable"

	// CaptureFunction marks captures taken from function declarations.
	CaptureFunction CaptureKind = "function"
)

// Rule describes one extraction round: the declaration keyword scanned for
// and the prefix used to build synthetic replacement names. The capture at
// index i is renamed to "<Prefix>_<i>".
type Rule struct {
	Kind    CaptureKind
	Keyword string
	Prefix  string
}

// SyntheticName returns the replacement name for the capture at index i.
func (r Rule) SyntheticName(i int) string {
	return fmt.Sprintf("%s_%d", r.Prefix, i)
}

// Capture is a single raw match extracted from a file's text. Duplicates
// are kept; Index is the position within the extracted sequence of one
// round, not an identity of the name.
type Capture struct {
	Kind  CaptureKind
	Name  string
	Index int
}
