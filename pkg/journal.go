// Package pkg provides shared utilities for smudge.
package pkg

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// FileJournal is a generic append-only journal that spills items of type T
// to disk as a gob stream. The workflow uses it to keep per-file rewrite
// records and original-content backups out of memory during large runs.
type FileJournal[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	Get(index uint64) (T, error)
	Range(f func(index uint64, item T) error) error
	Close() error
}

type fileJournalImpl[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewFileJournal creates a journal backed by a temporary gob file inside
// dir. An empty dir falls back to the system temp directory.
func NewFileJournal[T any](dir string) (FileJournal[T], error) {
	if dir == "" {
		dir = os.TempDir()
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	file, err := os.CreateTemp(dir, "journal-*.gob")
	if err != nil {
		return nil, fmt.Errorf("failed to create journal file: %w", err)
	}

	slog.Debug("created journal", "path", file.Name())

	return &fileJournalImpl[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// Append implements FileJournal.
func (j *fileJournalImpl[T]) Append(item T) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.encoder.Encode(item); err != nil {
		slog.Error("failed to encode journal item", "path", j.path, "index", j.length, "error", err)
		return fmt.Errorf("failed to encode item: %w", err)
	}

	j.length++

	return nil
}

// Path implements FileJournal.
func (j *fileJournalImpl[T]) Path() string {
	return j.path
}

// Len implements FileJournal.
func (j *fileJournalImpl[T]) Len() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.length
}

// Get implements FileJournal. It decodes the stream from the start, so
// random access is linear in index.
func (j *fileJournalImpl[T]) Get(index uint64) (T, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	var zero T

	if index >= j.length {
		return zero, fmt.Errorf("index %d out of bounds (length %d)", index, j.length)
	}

	file, err := os.Open(j.path)
	if err != nil {
		return zero, fmt.Errorf("failed to open journal: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	decoder := gob.NewDecoder(file)

	var item T

	for i := uint64(0); i <= index; i++ {
		if err := decoder.Decode(&item); err != nil {
			return zero, fmt.Errorf("failed to decode item at index %d: %w", i, err)
		}
	}

	return item, nil
}

// Range implements FileJournal.
func (j *fileJournalImpl[T]) Range(fn func(index uint64, item T) error) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	file, err := os.Open(j.path)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	decoder := gob.NewDecoder(file)

	var item T

	for i := uint64(0); i < j.length; i++ {
		if err := decoder.Decode(&item); err != nil {
			return fmt.Errorf("failed to decode item at index %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

// Close implements FileJournal. The journal file itself is left on disk so
// backups survive the process.
func (j *fileJournalImpl[T]) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return nil
	}

	if err := j.file.Close(); err != nil {
		slog.Error("failed to close journal", "path", j.path, "error", err)
		return err
	}

	j.file = nil

	return nil
}
