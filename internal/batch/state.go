package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultStatePath is where batch progress is kept unless configured.
const DefaultStatePath = "~/.cunit/batch-state.json"

// State tracks progress for resumable batch runs. It is safe for
// concurrent use.
type State struct {
	StartedAt       time.Time `json:"started_at"`
	LastProcessedAt time.Time `json:"last_processed_at"`
	FilesProcessed  []string  `json:"files_processed"`
	UnitsWritten    int       `json:"units_written"`
	PausesWritten   int       `json:"pauses_written"`
	Errors          []string  `json:"errors"`

	mu   sync.Mutex
	path string
}

// LoadState loads the state at path, or starts a new one if none exists.
func LoadState(path string) (*State, error) {
	p := expandHome(path)

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(path), nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	s.path = p
	return &s, nil
}

// NewState starts an empty state that saves to path.
func NewState(path string) *State {
	return &State{
		StartedAt: time.Now().UTC(),
		path:      expandHome(path),
	}
}

// Save persists the state to disk.
func (s *State) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.LastProcessedAt = time.Now().UTC()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	return os.WriteFile(s.path, data, 0o644)
}

// IsProcessed returns true if the given file has already been processed.
func (s *State) IsProcessed(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.FilesProcessed {
		if f == path {
			return true
		}
	}
	return false
}

// MarkProcessed records a file as processed.
func (s *State) MarkProcessed(path string, units, pauses int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FilesProcessed = append(s.FilesProcessed, path)
	s.UnitsWritten += units
	s.PausesWritten += pauses
}

// AddError records a processing error.
func (s *State) AddError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Errors = append(s.Errors, msg)
}

func expandHome(path string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
