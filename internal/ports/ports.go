// Package ports declares the interfaces between the core (readiness
// evaluation, run orchestration) and its external collaborators. Concrete
// implementations live under internal/preflight, internal/execution,
// internal/results and internal/diagnostics; tests substitute fakes.
package ports

import (
	"context"

	"github.com/alexisbeaulieu97/simprep/internal/diagnostics"
	"github.com/alexisbeaulieu97/simprep/internal/model"
	"github.com/alexisbeaulieu97/simprep/internal/preflight"
)

// OutputEvent is the structured shape of a streamed output payload. Legacy
// boundaries may deliver a bare string instead; consumers normalize.
type OutputEvent struct {
	Chunk string
	RunID string
}

// ExitEvent is the structured shape of a terminal payload. Legacy boundaries
// may deliver a bare numeric exit code instead; consumers normalize.
type ExitEvent struct {
	ExitCode  int
	RunID     string
	OutputDir string
	ErrorLog  string
	Artifacts []string
}

// Subscription represents a registered event handler. Callers must invoke
// Unsubscribe to stop receiving events and release the slot. Unsubscribe must
// be safe to call more than once.
type Subscription interface {
	Unsubscribe()
}

// OutputHandler receives one streamed output payload from the execution
// boundary. The payload shape is heterogeneous: either a bare string chunk
// (legacy boundaries) or an OutputEvent-like structured value.
// Normalization is the consumer's job, never the boundary's.
type OutputHandler func(payload any)

// ExitHandler receives the terminal payload for a run: a bare numeric exit
// code, or a structured value carrying exit code, run id and artifact hints.
type ExitHandler func(payload any)

// ExecutionBoundary is the host-provided facility that spawns the external
// simulation process and streams its lifecycle back as events. The boundary
// emits zero or more output payloads and exactly one exit payload per run,
// each optionally tagged with a run identifier.
type ExecutionBoundary interface {
	// Available reports whether the boundary can launch runs in the current
	// host environment. Callers must check before submitting.
	Available() bool

	// Run requests execution of the given request. Listeners must already be
	// attached; events may arrive at any time after this call.
	Run(ctx context.Context, req model.RunRequest) error

	// OnOutput registers a handler for streamed output payloads.
	OnOutput(handler OutputHandler) Subscription

	// OnExit registers a handler for the terminal payload.
	OnExit(handler ExitHandler) Subscription
}

// PreflightValidator is the blocking gate consulted before any submission.
type PreflightValidator interface {
	Validate(ctx context.Context, req model.RunRequest) (preflight.Result, error)
}

// RunRegistry registers runs at submission time and turns raw process output
// into structured run records at termination.
type RunRegistry interface {
	// Register creates a pending record for the run.
	Register(runID, label, recipeID string) error

	// ParseResults categorizes the run's output and flips the record to its
	// terminal state. Must be effective at most once per run id.
	ParseResults(runID string, input model.ResultInput) (*model.RunRecord, error)
}

// ReportSource produces a diagnostic report on demand. It may fail or be
// unavailable; callers treat absence as "no diagnostics" and degrade.
type ReportSource interface {
	GenerateReport(ctx context.Context) (*diagnostics.Report, error)
}
