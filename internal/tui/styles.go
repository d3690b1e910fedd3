package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)
	spinnerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	runIDStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	transcriptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	successStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failureStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)
