package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/karitori/leaf/internal/reading"
)

// Run drives the full-screen reader until the user quits.
func Run(session *reading.Session, log zerolog.Logger) error {
	p := tea.NewProgram(New(session, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
