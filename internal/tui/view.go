package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the run monitor.
func (m Model) View() string {
	var sections []string

	title := titleStyle.Render(fmt.Sprintf("simprep • %s", m.label))
	sections = append(sections, title)

	if m.finished {
		sections = append(sections, m.renderOutcome())
	} else {
		header := fmt.Sprintf("%s running %s", m.spinner.View(), runIDStyle.Render(m.runID))
		sections = append(sections, header)
	}

	if lines := m.visibleLines(); len(lines) > 0 {
		sections = append(sections, sectionStyle.Render("Output"))
		sections = append(sections, transcriptStyle.Render(strings.Join(lines, "\n")))
	}

	if !m.finished {
		sections = append(sections, helpStyle.Render("press q to detach"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) renderOutcome() string {
	if m.submitErr != nil {
		return failureStyle.Render(fmt.Sprintf("✗ submission failed: %v", m.submitErr))
	}
	if m.outcome == nil {
		return ""
	}
	if m.outcome.ExitCode == 0 {
		return successStyle.Render(fmt.Sprintf("✓ run %s exited with code 0", m.runID))
	}
	return failureStyle.Render(fmt.Sprintf("✗ run %s exited with code %d", m.runID, m.outcome.ExitCode))
}
