package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	headerInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62"))

	overlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true)

	selectedRowStyle = lipgloss.NewStyle().
				Reverse(true)

	dimStyle = lipgloss.NewStyle().
			Faint(true)
)
