// Package storage persists generated timetables between runs. The engine
// never touches storage; it only receives the in-memory registry value
// this package loads.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/princekumar-dev/Smart-Classroom-And-TimeTable-Scheduler/pkg/model"
)

// Store is the persistence adapter for committed timetables.
type Store interface {
	// Registry returns every saved timetable as a committed registry.
	Registry() (model.CommittedRegistry, error)

	// Save appends timetables to the store, replacing any saved timetable
	// covering the same cohort set.
	Save(timetables ...model.Timetable) error
}

// fileStore keeps the registry as a single JSON document on disk.
type fileStore struct {
	path string
}

// NewFileStore builds a JSON-file-backed store.
func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

func (store *fileStore) Registry() (model.CommittedRegistry, error) {
	raw, err := os.ReadFile(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.CommittedRegistry{}, nil
	}
	if err != nil {
		return model.CommittedRegistry{}, fmt.Errorf("storage: %w", err)
	}

	var registry model.CommittedRegistry
	if err := json.Unmarshal(raw, &registry); err != nil {
		return model.CommittedRegistry{}, fmt.Errorf("storage: corrupt registry %v: %w", store.path, err)
	}
	return registry, nil
}

func (store *fileStore) Save(timetables ...model.Timetable) error {
	registry, err := store.Registry()
	if err != nil {
		return err
	}

	for _, timetable := range timetables {
		kept := registry.Timetables[:0]
		for _, saved := range registry.Timetables {
			if !sameCohortSet(saved.CohortIDs, timetable.CohortIDs) {
				kept = append(kept, saved)
			}
		}
		registry.Timetables = append(kept, timetable)
	}

	raw, err := json.MarshalIndent(registry, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if dir := filepath.Dir(store.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("storage: %w", err)
		}
	}
	if err := os.WriteFile(store.path, raw, 0o644); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}

func sameCohortSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	members := make(map[string]bool, len(a))
	for _, id := range a {
		members[id] = true
	}
	for _, id := range b {
		if !members[id] {
			return false
		}
	}
	return true
}
