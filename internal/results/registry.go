// Package results registers runs at submission time, parses the engine's
// output at termination and persists the resulting run records.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/simprep/internal/model"
)

const registryVersion = "1.0"

// registryFile is the JSON file format for the persisted run registry.
type registryFile struct {
	Version string            `json:"version"`
	Runs    []model.RunRecord `json:"runs"`
}

// Registry manages run record persistence. It implements ports.RunRegistry.
type Registry struct {
	path string
	mu   sync.RWMutex
	runs []model.RunRecord
}

// NewRegistry creates a Registry backed by the given JSON file and loads any
// existing records from disk.
func NewRegistry(path string) (*Registry, error) {
	r := &Registry{path: path}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create registry directory: %w", err)
	}

	if err := r.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		r.runs = []model.RunRecord{}
	}

	return r, nil
}

func (r *Registry) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return err
	}

	var file registryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse run registry: %w", err)
	}

	r.runs = file.Runs
	return nil
}

func (r *Registry) saveLocked() error {
	file := registryFile{Version: registryVersion, Runs: r.runs}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run registry: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write run registry: %w", err)
	}
	return os.Rename(tmp, r.path)
}

// Register creates a pending record for the run. Registering an already-known
// run id is rejected; ids are unique per submission.
func (r *Registry) Register(runID, label, recipeID string) error {
	if runID == "" {
		return fmt.Errorf("run id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.runs {
		if record.RunID == runID {
			return fmt.Errorf("run %s already registered", runID)
		}
	}

	r.runs = append(r.runs, model.RunRecord{
		RunID:     runID,
		Label:     label,
		RecipeID:  recipeID,
		Status:    model.RunStatusPending,
		StartedAt: time.Now(),
	})

	return r.saveLocked()
}

// ParseResults categorizes the run's output and flips the record from
// pending to exited. A second call for the same run id returns the stored
// record unchanged, keeping terminal handling exactly-once.
func (r *Registry) ParseResults(runID string, input model.ResultInput) (*model.RunRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i := range r.runs {
		if r.runs[i].RunID == runID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("run %s is not registered", runID)
	}

	if r.runs[idx].Status == model.RunStatusExited {
		record := r.runs[idx]
		return &record, nil
	}

	r.runs[idx].Status = model.RunStatusExited
	r.runs[idx].ExitCode = input.ExitStatus
	r.runs[idx].Errors = ParseErrorLog(loadErrorLog(input))
	r.runs[idx].CompletedAt = time.Now()

	if err := r.saveLocked(); err != nil {
		return nil, err
	}

	record := r.runs[idx]
	return &record, nil
}

// Records returns a copy of all known run records, newest first.
func (r *Registry) Records() []model.RunRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.RunRecord, len(r.runs))
	copy(out, r.runs)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
