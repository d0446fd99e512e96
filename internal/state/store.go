package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Store owns the on-disk copy of the activity state. Load fails open to
// defaults; Save fully overwrites the file through a rename so a crashed
// write can never leave a half-written record for the next Load.
//
// No cross-process locking: the monitor is the only writer, display
// tooling may read concurrently, last writer wins.
type Store struct {
	path string
}

// NewStore returns a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted state. A missing or unreadable file yields the
// default record; this is informational, never an error.
func (s *Store) Load() *ActivityState {
	data, err := os.ReadFile(s.path)
	if err != nil {
		logrus.Infof("state file not readable, using defaults: %v", err)
		return NewActivityState()
	}

	st := NewActivityState()
	if err := json.Unmarshal(data, st); err != nil {
		logrus.Infof("state file corrupt, using defaults: %v", err)
		return NewActivityState()
	}

	return st
}

// Save persists the state as indented JSON. The record is written to a
// temporary file in the same directory and renamed into place.
func (s *Store) Save(st *ActivityState) error {
	data, err := json.MarshalIndent(st, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close state file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace state file: %w", err)
	}

	return nil
}

// ResetFlags clears every latch flag, including the terminal one, while
// preserving the activity watermarks. Used when the operator re-arms the
// monitor after manual intervention.
func (s *Store) ResetFlags() error {
	st := s.Load()
	st.Threshold30Sent = false
	st.Threshold60Sent = false
	st.Threshold90Sent = false
	st.ThresholdReached = false
	st.ServiceDisabled = false
	return s.Save(st)
}
