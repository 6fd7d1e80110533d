package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"fidget/internal/app"
	"fidget/internal/shell"
)

// refreshInterval is how often the dashboard re-reads the engine snapshot.
const refreshInterval = 100 * time.Millisecond

// Model holds the current state of the dashboard. The engine runs in its own
// goroutine; the model only reads snapshots and forwards shell commands.
type Model struct {
	State  State
	Engine *app.Engine
	Shell  *shell.Shell

	Keys  KeyMap
	Help  help.Model
	Input textinput.Model

	Snap   app.Snapshot
	Output string
}

// InitialModel returns the initial model for the dashboard.
func InitialModel(engine *app.Engine, sh *shell.Shell) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "help"
	input.CharLimit = 64

	return Model{
		State:  StateDashboard,
		Engine: engine,
		Shell:  sh,
		Keys:   DefaultKeys(),
		Help:   NewHelpModel(),
		Input:  input,
		Snap:   engine.Snapshot(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return refresh()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return Update(msg, m)
}

// View implements tea.Model
func (m Model) View() string {
	return View(m)
}
