package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/support-analytics/internal"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2).
			MarginRight(1)

	cardValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62"))
)

func statusStyle(status internal.IssueStatus) lipgloss.Style {
	switch status {
	case internal.StatusResolved:
		return successStyle
	case internal.StatusPending:
		return warningStyle
	default:
		return errorStyle
	}
}

func severityStyle(severity internal.Severity) lipgloss.Style {
	switch severity {
	case internal.SeverityHigh:
		return errorStyle
	case internal.SeverityMedium:
		return warningStyle
	default:
		return infoStyle
	}
}
