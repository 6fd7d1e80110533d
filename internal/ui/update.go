package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// refreshMsg carries the periodic snapshot refresh.
type refreshMsg time.Time

// Update handles messages and updates the model accordingly.
func Update(msg tea.Msg, m Model) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		m.Snap = m.Engine.Snapshot()
		return m, refresh()

	case tea.KeyMsg:
		switch m.State {
		case StateDashboard:
			return updateDashboard(msg, m)
		case StatePrompt:
			return updatePrompt(msg, m)
		case StateHelp:
			if key.Matches(msg, m.Keys.ToggleHelp) || key.Matches(msg, m.Keys.Back) {
				m.State = StateDashboard
			}
			if key.Matches(msg, m.Keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}
	}
	return m, nil
}

func updateDashboard(msg tea.KeyMsg, m Model) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.Keys.ToggleHelp):
		m.State = StateHelp
	case key.Matches(msg, m.Keys.ToggleStats):
		if m.Snap.StatsEnabled {
			m.Output = m.Shell.Execute("stats off")
		} else {
			m.Output = m.Shell.Execute("stats on")
		}
		m.Snap = m.Engine.Snapshot()
	case key.Matches(msg, m.Keys.Report):
		m.Output = m.Shell.Execute("report")
	case key.Matches(msg, m.Keys.Prompt):
		m.State = StatePrompt
		m.Input.SetValue("")
		return m, m.Input.Focus()
	}
	return m, nil
}

func updatePrompt(msg tea.KeyMsg, m Model) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Back):
		m.State = StateDashboard
		m.Input.Blur()
		return m, nil
	case key.Matches(msg, m.Keys.Submit):
		line := m.Input.Value()
		m.Output = m.Shell.Execute(line)
		m.Snap = m.Engine.Snapshot()
		m.State = StateDashboard
		m.Input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}
