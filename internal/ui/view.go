package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fidget/internal/app"
	"fidget/internal/device"
)

// View renders the current state of the model to a string.
func View(m Model) string {
	if m.State == StateHelp {
		return helpView()
	}
	return dashboardView(m)
}

func dashboardView(m Model) string {
	var b strings.Builder

	b.WriteString(Current.Title.Render("Fidget"))
	b.WriteString(" ")
	b.WriteString(ledSwatch(m.Snap))
	b.WriteString("\n\n")

	b.WriteString(statusLine(m.Snap))
	b.WriteString("\n")
	b.WriteString(statsLine(m.Snap))
	b.WriteString("\n")

	if m.State == StatePrompt {
		b.WriteString("\n")
		b.WriteString(m.Input.View())
		b.WriteString("\n")
	}

	if m.Output != "" {
		b.WriteString("\n")
		b.WriteString(Current.Output.Render(m.Output))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(Current.Help.Render(m.Help.View(m.Keys.ForState(m.State))))
	return b.String()
}

// ledSwatch renders the status pixel as a colored block, dimmed by the
// current brightness the way the hardware LED would be.
func ledSwatch(s app.Snapshot) string {
	c := scaleColor(s.Color, float64(s.BrightnessPct)*0.01)
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)))
	return style.Render("  ")
}

func scaleColor(c device.RGB, brightness float64) device.RGB {
	return device.RGB{
		R: uint8(float64(c.R) * brightness),
		G: uint8(float64(c.G) * brightness),
		B: uint8(float64(c.B) * brightness),
	}
}

func statusLine(s app.Snapshot) string {
	switch s.Phase {
	case "running":
		return Current.Label.Render("Mode") +
			Current.Active.Render(s.Mode) +
			Current.Inactive.Render(fmt.Sprintf("%.1fs", s.ModeElapsed.Seconds()))
	case "waiting":
		return Current.Label.Render("Next") +
			Current.Value.Render(s.NextMode) +
			Current.Inactive.Render(fmt.Sprintf("in %.1fs", s.WaitRemaining.Seconds()))
	default:
		return Current.Inactive.Render("starting...")
	}
}

func statsLine(s app.Snapshot) string {
	if !s.StatsEnabled {
		return Current.Inactive.Render("stats off")
	}
	return Current.Label.Render("Stats") +
		Current.Value.Render(fmt.Sprintf("loops %d · %.0f fps · up %s",
			s.Loops, s.FPS, s.Uptime.Round(1e9)))
}

func helpView() string {
	help := `Fidget Help

Usage:
  fidget [flags]

Flags:
  -seed uint        Random seed; 0 derives one from the clock
  -tick duration    Control loop tick interval (default 8ms)
  -d, -duration     How long to run (e.g. "2h30m" or minutes)
  -config string    Path to a tuning YAML file
  -stats            Enable performance statistics
  -headless         Run without the terminal UI, shell on stdin
  -dry-run          Do not open a pointer device; discard motion
  -v, -version      Show version information

Commands (via the : prompt or the serial console):
  help, stats on, stats off, report, reset, status

Keys:
  :          Open the command prompt
  s          Toggle performance stats
  r          Show a performance report
  h/?        Toggle this help
  q          Quit

Press 'h' or 'esc' to close help`

	return Current.Help.Render(help)
}
