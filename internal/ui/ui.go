package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"fidget/internal/app"
	"fidget/internal/shell"
)

// NewProgram wraps the dashboard model in a bubbletea program. Signal
// handling is left to the caller so the engine can shut down before the
// terminal is restored.
func NewProgram(engine *app.Engine, sh *shell.Shell) *tea.Program {
	return tea.NewProgram(
		InitialModel(engine, sh),
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)
}
