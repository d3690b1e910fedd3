package model

import (
	"fmt"
	"sync/atomic"
	"time"
)

// RunStatus tracks the lifecycle of a single run record.
type RunStatus string

const (
	// RunStatusPending marks a run that has been registered but not yet terminated.
	RunStatusPending RunStatus = "pending"
	// RunStatusExited marks a run whose terminal exit event was processed.
	RunStatusExited RunStatus = "exited"
)

// RunRequest is the parameter set needed to launch one external simulation
// attempt. All paths are opaque to the orchestrator and passed through to the
// execution boundary. RunID is the sole correlation key for the run's events.
type RunRequest struct {
	IdfPath        string `json:"idf_path"`
	EpwPath        string `json:"epw_path"`
	ExecutablePath string `json:"executable_path"`
	RecipeID       string `json:"recipe_id"`
	RunName        string `json:"run_name"`
	RunID          string `json:"run_id"`
}

// RunErrors holds the categorized messages parsed from a run's output.
type RunErrors struct {
	Fatal   []string `json:"fatal,omitempty"`
	Severe  []string `json:"severe,omitempty"`
	Warning []string `json:"warning,omitempty"`
}

// RunRecord is the persisted lifecycle snapshot for one run request. It is
// created at submission with status pending and updated exactly once to its
// terminal state.
type RunRecord struct {
	RunID       string     `json:"run_id"`
	Label       string     `json:"label"`
	RecipeID    string     `json:"recipe_id"`
	Status      RunStatus  `json:"status"`
	ExitCode    int        `json:"exit_code"`
	Errors      *RunErrors `json:"errors,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt time.Time  `json:"completed_at,omitzero"`
}

// ResultInput carries everything the result parser needs to categorize a
// terminated run's output.
type ResultInput struct {
	OutputDir  string
	ErrorLog   string
	Artifacts  []string
	ExitStatus int
}

var runIDCounter atomic.Uint64

// NewRunID derives a unique run identifier from the run name and a monotonic
// timestamp. The counter suffix keeps IDs unique when two submissions land in
// the same nanosecond.
func NewRunID(name string) string {
	if name == "" {
		name = "run"
	}
	return fmt.Sprintf("%s-%d-%d", name, time.Now().UnixNano(), runIDCounter.Add(1))
}
