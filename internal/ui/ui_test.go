package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"fidget/internal/app"
	"fidget/internal/device"
	"fidget/internal/shell"
	"fidget/internal/stats"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	st := stats.New(false)
	engine, err := app.New(app.Options{
		Pointer: &device.Recorder{},
		Pixel:   &device.MemoryPixel{},
		Stats:   st,
		Seed:    7,
	})
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	if err := engine.Start(); err != nil {
		t.Fatalf("engine.Start: %v", err)
	}
	return InitialModel(engine, shell.New(st, engine.Status))
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitialModel(t *testing.T) {
	m := newTestModel(t)
	if m.State != StateDashboard {
		t.Error("expected initial state to be StateDashboard")
	}
	if m.Output != "" {
		t.Error("expected initial output to be empty")
	}
	if m.Snap.Phase != "running" {
		t.Errorf("expected snapshot phase running, got %q", m.Snap.Phase)
	}
}

func TestDashboardView(t *testing.T) {
	m := newTestModel(t)
	view := View(m)

	if !strings.Contains(view, "Fidget") {
		t.Error("expected view to contain the title")
	}
	if !strings.Contains(view, "Mode") {
		t.Error("expected view to show the running mode")
	}
	if !strings.Contains(view, "stats off") {
		t.Error("expected view to show disabled stats")
	}
}

func TestToggleStatsKey(t *testing.T) {
	m := newTestModel(t)

	m, _ = Update(keyMsg("s"), m)
	if !m.Snap.StatsEnabled {
		t.Error("expected stats enabled after toggle")
	}
	if !strings.Contains(m.Output, "enabled") {
		t.Errorf("expected enable confirmation, got %q", m.Output)
	}

	m, _ = Update(keyMsg("s"), m)
	if m.Snap.StatsEnabled {
		t.Error("expected stats disabled after second toggle")
	}
}

func TestReportKey(t *testing.T) {
	m := newTestModel(t)
	m, _ = Update(keyMsg("r"), m)
	if m.Output == "" {
		t.Error("expected report output")
	}
}

func TestPromptFlow(t *testing.T) {
	m := newTestModel(t)

	m, _ = Update(keyMsg(":"), m)
	if m.State != StatePrompt {
		t.Fatal("expected prompt state after ':'")
	}

	for _, r := range "status" {
		m, _ = Update(keyMsg(string(r)), m)
	}
	m, _ = Update(tea.KeyMsg{Type: tea.KeyEnter}, m)

	if m.State != StateDashboard {
		t.Error("expected dashboard state after submit")
	}
	if !strings.Contains(m.Output, "System Status") {
		t.Errorf("expected status output, got %q", m.Output)
	}
}

func TestPromptEscape(t *testing.T) {
	m := newTestModel(t)
	m, _ = Update(keyMsg(":"), m)
	m, _ = Update(tea.KeyMsg{Type: tea.KeyEsc}, m)
	if m.State != StateDashboard {
		t.Error("expected escape to return to the dashboard")
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t)

	m, _ = Update(keyMsg("h"), m)
	if m.State != StateHelp {
		t.Fatal("expected help state after 'h'")
	}
	if !strings.Contains(View(m), "Commands") {
		t.Error("expected help view to list commands")
	}

	m, _ = Update(keyMsg("h"), m)
	if m.State != StateDashboard {
		t.Error("expected 'h' to close help")
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	_, cmd := Update(keyMsg("q"), m)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestRefreshUpdatesSnapshot(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 50; i++ {
		if err := m.Engine.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	m, cmd := Update(refreshMsg(time.Now()), m)
	if cmd == nil {
		t.Error("expected refresh to reschedule itself")
	}
	if m.Snap.Loops < 50 {
		t.Errorf("expected snapshot to pick up loop count, got %d", m.Snap.Loops)
	}
}
