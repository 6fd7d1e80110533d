// Package shell implements the line-oriented command surface exposed over
// the serial console and the interactive prompt. Commands read or mutate the
// shared performance stats and report engine status; none of them block.
package shell

import (
	"fmt"
	"strings"

	"fidget/internal/stats"
)

// StatusFunc supplies the engine status block for the status command.
type StatusFunc func() string

// Shell dispatches one command line at a time.
type Shell struct {
	stats  *stats.Stats
	status StatusFunc
}

// New builds a Shell over the given stats. status may be nil when no engine
// is attached.
func New(st *stats.Stats, status StatusFunc) *Shell {
	return &Shell{stats: st, status: status}
}

// Commands lists every accepted command with a short description, in help
// order.
func Commands() [][2]string {
	return [][2]string{
		{"help", "Show this help message"},
		{"stats on", "Enable performance statistics"},
		{"stats off", "Disable performance statistics"},
		{"report", "Print current performance report"},
		{"reset", "Reset performance statistics"},
		{"status", "Show current status"},
	}
}

// Execute runs one command line and returns the text to print. Empty input
// returns an empty string. Unknown commands produce an error message listing
// what is available; Execute itself never fails.
func (s *Shell) Execute(line string) string {
	cmd := strings.ToLower(strings.TrimSpace(line))
	switch cmd {
	case "":
		return ""
	case "help":
		return s.help()
	case "stats on":
		s.stats.SetEnabled(true)
		return "Performance stats enabled"
	case "stats off":
		s.stats.SetEnabled(false)
		return "Performance stats disabled"
	case "report":
		return s.stats.Report()
	case "reset":
		s.stats.Reset()
		return "Performance stats reset"
	case "status":
		return s.statusText()
	default:
		return fmt.Sprintf("Unknown command: %s\nType 'help' for available commands", strings.TrimSpace(line))
	}
}

func (s *Shell) help() string {
	var b strings.Builder
	b.WriteString("=== Serial Control Commands ===\n")
	for _, c := range Commands() {
		fmt.Fprintf(&b, "%-10s - %s\n", c[0], c[1])
	}
	b.WriteString("===============================")
	return b.String()
}

func (s *Shell) statusText() string {
	var b strings.Builder
	b.WriteString("=== System Status ===\n")
	if s.status != nil {
		b.WriteString(s.status())
		b.WriteString("\n")
	}
	if s.stats.Enabled() {
		fmt.Fprintf(&b, "Performance stats: enabled\n")
		fmt.Fprintf(&b, "Uptime: %.1fs\n", s.stats.Uptime().Seconds())
		fmt.Fprintf(&b, "Loop count: %d\n", s.stats.LoopCount())
		fmt.Fprintf(&b, "Avg FPS: %.1f\n", s.stats.FPS())
	} else {
		b.WriteString("Performance stats: disabled\n")
	}
	b.WriteString("====================")
	return b.String()
}
