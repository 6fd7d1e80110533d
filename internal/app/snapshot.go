package app

import (
	"fmt"
	"time"

	"fidget/internal/device"
)

// Snapshot is a read-only view of the engine for the UI and the status
// command. Safe to take from any goroutine.
type Snapshot struct {
	Phase         string
	Mode          string
	NextMode      string
	ModeElapsed   time.Duration
	WaitRemaining time.Duration
	Color         device.RGB
	BrightnessPct int
	StatsEnabled  bool
	Loops         uint64
	FPS           float64
	Uptime        time.Duration
}

// Snapshot captures the engine's externally visible state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	s := Snapshot{
		Phase:         e.phase.String(),
		Color:         e.led.DisplayColor(),
		BrightnessPct: e.led.BrightnessPercent(),
		StatsEnabled:  e.stats.Enabled(),
		Loops:         e.stats.LoopCount(),
		FPS:           e.stats.FPS(),
		Uptime:        e.stats.Uptime(),
	}

	switch e.phase {
	case phaseRunning:
		s.Mode = e.modeID.String()
		s.ModeElapsed = now.Sub(e.modeStarted)
	case phaseWaiting:
		s.NextMode = e.nextMode.String()
		if rem := e.waitDuration - now.Sub(e.waitStarted); rem > 0 {
			s.WaitRemaining = rem
		}
	}
	return s
}

// Status renders the one-line engine state used by the status command.
func (e *Engine) Status() string {
	s := e.Snapshot()
	switch s.Phase {
	case "running":
		return fmt.Sprintf("Mode: %s (%.1fs)", s.Mode, s.ModeElapsed.Seconds())
	case "waiting":
		return fmt.Sprintf("Waiting: %s in %.1fs", s.NextMode, s.WaitRemaining.Seconds())
	default:
		return "Mode: none"
	}
}
