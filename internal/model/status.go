package model

import "github.com/charmbracelet/lipgloss"

// StepStatus is the readiness verdict for a single checklist step.
type StepStatus string

const (
	StatusOK      StepStatus = "ok"
	StatusWarning StepStatus = "warning"
	StatusError   StepStatus = "error"
)

// Rank orders statuses by severity: error > warning > ok.
func (s StepStatus) Rank() int {
	switch s {
	case StatusError:
		return 2
	case StatusWarning:
		return 1
	default:
		return 0
	}
}

// Worst returns the higher-severity of the two statuses.
func (s StepStatus) Worst(other StepStatus) StepStatus {
	if other.Rank() > s.Rank() {
		return other
	}
	return s
}

// Icon returns the Unicode icon for the status.
func (s StepStatus) Icon() string {
	switch s {
	case StatusOK:
		return "🟢"
	case StatusWarning:
		return "🟡"
	case StatusError:
		return "🔴"
	default:
		return "⚪"
	}
}

// IconFallback returns an ASCII fallback when Unicode is not supported.
func (s StepStatus) IconFallback() string {
	switch s {
	case StatusOK:
		return "[OK]"
	case StatusWarning:
		return "[!!]"
	case StatusError:
		return "[XX]"
	default:
		return "[??]"
	}
}

// Color returns the Lipgloss color for the status.
func (s StepStatus) Color() lipgloss.Color {
	switch s {
	case StatusOK:
		return lipgloss.Color("42") // green
	case StatusWarning:
		return lipgloss.Color("226") // yellow
	case StatusError:
		return lipgloss.Color("196") // red
	default:
		return lipgloss.Color("250") // light gray
	}
}

// String returns the string representation of the status.
func (s StepStatus) String() string {
	return string(s)
}
