// Package orchestrator owns the submit → stream → terminate → detach state
// machine for a single in-flight simulation run. One orchestrator instance
// tracks at most one active run; submitting again supersedes the previous
// run's listeners. Callers must serialize submissions per instance.
package orchestrator

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/simprep/internal/logger"
	"github.com/alexisbeaulieu97/simprep/internal/model"
	"github.com/alexisbeaulieu97/simprep/internal/ports"
	"github.com/alexisbeaulieu97/simprep/internal/transcript"
	simpreperrors "github.com/alexisbeaulieu97/simprep/pkg/errors"
)

// maxReportedIssues bounds how many pre-flight issues are echoed into the
// transcript. The full list stays with the validator result.
const maxReportedIssues = 4

// Outcome is the terminal result handed to the submitter once the run's exit
// event has been processed.
type Outcome struct {
	RunID    string
	ExitCode int
	Record   *model.RunRecord
	ParseErr error
}

// Orchestrator correlates one run's asynchronous events and hands terminal
// results to the run registry exactly once.
type Orchestrator struct {
	validator ports.PreflightValidator
	boundary  ports.ExecutionBoundary
	registry  ports.RunRegistry
	log       *logger.Logger

	mu         sync.Mutex
	transcript *transcript.Transcript
	active     string
	terminated bool
	outputSub  ports.Subscription
	exitSub    ports.Subscription
	done       chan Outcome
}

// New creates an orchestrator with an exclusive transcript. notify, when
// non-nil, fires after every transcript change.
func New(validator ports.PreflightValidator, boundary ports.ExecutionBoundary, registry ports.RunRegistry, log *logger.Logger, notify func()) *Orchestrator {
	return &Orchestrator{
		validator:  validator,
		boundary:   boundary,
		registry:   registry,
		log:        log.WithComponent("orchestrator"),
		transcript: transcript.New(notify),
	}
}

// Transcript exposes the orchestrator's transcript buffer. Ownership stays
// with the orchestrator; callers only read.
func (o *Orchestrator) Transcript() *transcript.Transcript {
	return o.transcript
}

// Done returns the channel that carries the active run's terminal outcome.
// It is replaced on every successful submission and is nil before the first.
func (o *Orchestrator) Done() <-chan Outcome {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.done
}

// Submit validates the request and, if it passes, registers the run, attaches
// listeners and hands the request to the execution boundary. Listeners from a
// superseded run are always detached first, and the transcript is reset.
//
// Failure ordering matters: an unavailable environment refuses the run before
// any listener is attached or any record registered, and a pre-flight refusal
// likewise leaves no side effects behind.
func (o *Orchestrator) Submit(ctx context.Context, req model.RunRequest) error {
	o.mu.Lock()
	o.detachLocked()
	o.active = ""
	o.terminated = false
	o.mu.Unlock()
	o.transcript.Reset()

	if o.boundary == nil || !o.boundary.Available() {
		o.transcript.Systemf("Simulation engine is not available in this environment; run was not submitted")
		o.log.Warn("submit refused: execution boundary unavailable")
		return simpreperrors.NewEnvironmentError("execution boundary unavailable")
	}

	result, err := o.validator.Validate(ctx, req)
	if err != nil {
		o.transcript.Systemf("Pre-run validation failed: %v", err)
		return simpreperrors.NewPreflightError([]string{err.Error()})
	}
	if !result.OK {
		messages := result.Messages(maxReportedIssues)
		o.transcript.Systemf("Pre-run validation failed (%d issue(s)):", len(result.Issues))
		for _, message := range messages {
			o.transcript.Systemf("  - %s", message)
		}
		if remaining := len(result.Issues) - len(messages); remaining > 0 {
			o.transcript.Systemf("  … and %d more", remaining)
		}
		o.log.WithFields(map[string]any{"issues": len(result.Issues)}).Warn("submit refused by pre-flight validation")
		return simpreperrors.NewPreflightError(messages)
	}

	if err := o.registry.Register(req.RunID, req.RunName, req.RecipeID); err != nil {
		o.transcript.Systemf("Could not register run %s: %v", req.RunID, err)
		return simpreperrors.NewExecutionError(req.RunID, err)
	}

	// Listeners attach before the execution request so early events cannot
	// be missed.
	o.mu.Lock()
	o.active = req.RunID
	o.terminated = false
	o.done = make(chan Outcome, 1)
	o.outputSub = o.boundary.OnOutput(o.handleOutput)
	o.exitSub = o.boundary.OnExit(o.handleExit)
	o.mu.Unlock()

	o.transcript.Systemf("Submitting run %s (recipe %s)", req.RunID, req.RecipeID)
	o.log.WithFields(map[string]any{"run_id": req.RunID, "recipe": req.RecipeID}).Info("run submitted")

	if err := o.boundary.Run(ctx, req); err != nil {
		o.Detach()
		o.mu.Lock()
		o.active = ""
		o.mu.Unlock()
		o.transcript.Systemf("Submission failed: %v", err)
		return simpreperrors.NewExecutionError(req.RunID, err)
	}

	return nil
}

// Detach releases both listener handles. Safe to call repeatedly and from
// both the termination path and the next submission.
func (o *Orchestrator) Detach() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.detachLocked()
}

func (o *Orchestrator) detachLocked() {
	if o.outputSub != nil {
		o.outputSub.Unsubscribe()
		o.outputSub = nil
	}
	if o.exitSub != nil {
		o.exitSub.Unsubscribe()
		o.exitSub = nil
	}
}

func (o *Orchestrator) handleOutput(payload any) {
	event := normalizeOutput(payload)

	o.mu.Lock()
	accept := !o.terminated && o.active != "" && (event.RunID == "" || event.RunID == o.active)
	o.mu.Unlock()

	if !accept || event.Chunk == "" {
		return
	}
	o.transcript.Append(event.Chunk)
}

func (o *Orchestrator) handleExit(payload any) {
	event := normalizeExit(payload)

	o.mu.Lock()
	if o.terminated || o.active == "" || (event.RunID != "" && event.RunID != o.active) {
		o.mu.Unlock()
		return
	}
	o.terminated = true
	runID := o.active
	done := o.done
	o.detachLocked()
	o.mu.Unlock()

	record, parseErr := o.registry.ParseResults(runID, model.ResultInput{
		OutputDir:  event.OutputDir,
		ErrorLog:   event.ErrorLog,
		Artifacts:  event.Artifacts,
		ExitStatus: event.ExitCode,
	})

	o.transcript.Systemf("Simulation exited with code %d", event.ExitCode)
	if parseErr != nil {
		o.transcript.Systemf("Result parsing failed: %v", parseErr)
	} else {
		o.summarize(record)
	}
	o.log.WithFields(map[string]any{"run_id": runID, "exit_code": event.ExitCode}).Info("run terminated")

	if done != nil {
		done <- Outcome{RunID: runID, ExitCode: event.ExitCode, Record: record, ParseErr: parseErr}
	}
}

// summarize appends the categorized error counts. Severe errors are only
// called out when no fatal error is present; warnings are a bare count.
func (o *Orchestrator) summarize(record *model.RunRecord) {
	if record == nil || record.Errors == nil {
		o.transcript.Systemf("No parsed results available")
		return
	}

	errs := record.Errors
	switch {
	case len(errs.Fatal) > 0:
		o.transcript.Systemf("Fatal errors: %d (first: %s)", len(errs.Fatal), errs.Fatal[0])
	case len(errs.Severe) > 0:
		o.transcript.Systemf("Severe errors: %d (first: %s)", len(errs.Severe), errs.Severe[0])
	default:
		o.transcript.Systemf("Completed without fatal or severe errors")
	}
	o.transcript.Systemf("Warnings: %d", len(errs.Warning))
}

// ActiveRunID returns the run id of the active run, or "" when idle.
func (o *Orchestrator) ActiveRunID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.terminated {
		return ""
	}
	return o.active
}
