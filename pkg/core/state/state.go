// Package state persists the per-company last-checked date between runs as
// a small whole-file JSON mapping. The file is read once at the start of a
// scan and written once at the end; sequential execution means concurrent
// writers do not occur.
package state

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

const dateLayout = "2006-01-02"

// Store reads and writes the last-checked state file.
type Store struct {
	Path string
}

// NewStore creates a store for the given file path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads the state file. A missing or unreadable file starts fresh:
// the scan simply covers the whole date range again.
func (s *Store) Load() map[string]time.Time {
	out := make(map[string]time.Time)

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: failed to read state file %s: %v, starting fresh", s.Path, err)
		}
		return out
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("Warning: malformed state file %s: %v, starting fresh", s.Path, err)
		return out
	}

	for key, ds := range raw {
		t, err := time.Parse(dateLayout, ds)
		if err != nil {
			log.Printf("Warning: bad date %q for %s in state file, ignoring", ds, key)
			continue
		}
		out[key] = t
	}
	return out
}

// Save writes the state file, replacing its previous contents.
func (s *Store) Save(checked map[string]time.Time) error {
	raw := make(map[string]string, len(checked))
	for key, t := range checked {
		raw[key] = t.Format(dateLayout)
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create state directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", s.Path, err)
	}
	return nil
}
