package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Primary = lipgloss.Color("#7C3AED") // Purple
	Success = lipgloss.Color("#10B981") // Green
	Error   = lipgloss.Color("#EF4444") // Red
	Warning = lipgloss.Color("#F59E0B") // Amber
	Muted   = lipgloss.Color("#6B7280") // Gray
	Answer  = lipgloss.Color("#06B6D4") // Cyan
)

// Text styles
var (
	Subtle = lipgloss.NewStyle().Foreground(Muted).Italic(true)
)

// UI element styles
var (
	// Spinner style
	SpinnerStyle = lipgloss.NewStyle().Foreground(Primary)

	// Diagnostic answer fragments
	AnswerStyle = lipgloss.NewStyle().Foreground(Answer).TabWidth(lipgloss.NoTabConversion)

	// Confirmation prompt label
	PromptStyle = lipgloss.NewStyle().Bold(true)

	ErrorStyle   = lipgloss.NewStyle().Foreground(Error).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success).Bold(true)
)

// Icon constants
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "⚠"
)
