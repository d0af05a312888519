// Package store persists pipeline output as self-describing JSON files.
// Writes are atomic: content goes to a temp file first and is renamed into
// place, so a crashed run never leaves a half-written collection behind.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/model"
)

const (
	reportsFile    = "processed_ddrs.json"
	trendsFile     = "trends.json"
	failuresFile   = "failed_files.json"
	checkpointFile = "checkpoint.json"
)

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory '%s': %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) SaveReports(reports []model.Report) error {
	return s.writeJSON(reportsFile, reports)
}

func (s *Store) LoadReports() ([]model.Report, error) {
	var reports []model.Report
	if err := s.readJSON(reportsFile, &reports); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return reports, nil
}

func (s *Store) SaveTrends(t model.Trends) error {
	return s.writeJSON(trendsFile, t)
}

func (s *Store) SaveFailures(failures []model.Failure) error {
	return s.writeJSON(failuresFile, failures)
}

// Checkpoint captures partial batch progress so a restarted run can resume
// after position ProcessedCount without recomputing earlier documents.
type Checkpoint struct {
	RunID          string         `json:"run_id"`
	Timestamp      time.Time      `json:"timestamp"`
	ProcessedCount int            `json:"processed_count"`
	Reports        []model.Report `json:"processed_data"`
}

func (s *Store) SaveCheckpoint(cp Checkpoint) error {
	return s.writeJSON(checkpointFile, cp)
}

// LoadCheckpoint returns nil when no checkpoint exists.
func (s *Store) LoadCheckpoint() (*Checkpoint, error) {
	var cp Checkpoint
	if err := s.readJSON(checkpointFile, &cp); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return &cp, nil
}

// ClearCheckpoint removes the checkpoint after a completed run.
func (s *Store) ClearCheckpoint() error {
	err := os.Remove(filepath.Join(s.dir, checkpointFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(s.dir, name))
}

func (s *Store) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
