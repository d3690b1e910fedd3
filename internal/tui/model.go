package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/simprep/internal/orchestrator"
)

// TranscriptMsg carries a fresh snapshot of the run transcript.
type TranscriptMsg struct {
	Text string
}

// OutcomeMsg reports that the simulation has terminated.
type OutcomeMsg struct {
	Outcome orchestrator.Outcome
}

// SubmitFailedMsg reports that the run never made it past submission.
type SubmitFailedMsg struct {
	Err error
}

// maxVisibleLines bounds how much transcript tail the monitor renders.
const maxVisibleLines = 18

// Model contains the Bubbletea state for the live run monitor.
type Model struct {
	runID     string
	label     string
	spinner   spinner.Model
	lines     []string
	outcome   *orchestrator.Outcome
	submitErr error
	finished  bool
	quitting  bool
	width     int
}

// NewModel constructs a run monitor for the given run.
func NewModel(runID, label string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return Model{
		runID:   runID,
		label:   label,
		spinner: sp,
		width:   80,
	}
}

// Init starts the spinner tick loop.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// IsFinished reports whether the monitored run has terminated.
func (m Model) IsFinished() bool {
	return m.finished
}

// WasCancelled reports whether the user quit before termination.
func (m Model) WasCancelled() bool {
	return m.quitting && !m.finished
}

// Outcome returns the terminal outcome, or nil while the run is live.
func (m Model) Outcome() *orchestrator.Outcome {
	return m.outcome
}

// SubmitError returns the submission failure, if any.
func (m Model) SubmitError() error {
	return m.submitErr
}

// visibleLines returns the transcript tail that fits the monitor.
func (m Model) visibleLines() []string {
	if len(m.lines) <= maxVisibleLines {
		return m.lines
	}
	return m.lines[len(m.lines)-maxVisibleLines:]
}
