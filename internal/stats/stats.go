// Package stats collects optional runtime instrumentation: loop cadence,
// per-mode activation counts, math hot-path counters, and sampled heap
// readings. Everything is cheap enough to leave compiled in; recording is a
// no-op while disabled.
package stats

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	frameWindow     = 100        // rolling frame-time sample count
	memSampleEvery  = 100        // loops between heap samples
	loopResetLimit  = 10_000_000 // overflow guard for multi-day runs
	maxReportedFPS  = 1000
	minAvgFrameTime = time.Millisecond
)

// Stats gathers performance counters. Safe for concurrent use; the engine
// goroutine records while the UI renders reports.
type Stats struct {
	mu      sync.Mutex
	enabled bool

	loopCount     uint64
	startTime     time.Time
	lastReport    time.Time
	lastFrameTime time.Time

	frameTimes   []time.Duration
	maxFrameTime time.Duration
	minFrameTime time.Duration

	modeCounts  map[string]int
	bezierCalls uint64
	trigCalls   uint64

	heapStart uint64
	heapMax   uint64

	now func() time.Time
}

// New returns a Stats collector, enabled or not.
func New(enabled bool) *Stats {
	s := &Stats{now: time.Now}
	s.resetLocked()
	s.enabled = enabled
	return s
}

// Enabled reports whether recording is active.
func (s *Stats) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// SetEnabled toggles recording at runtime.
func (s *Stats) SetEnabled(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = on
}

// RecordLoop notes one pass of the control loop and updates the rolling
// frame-time window.
func (s *Stats) RecordLoop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return
	}

	s.loopCount++
	if s.loopCount > loopResetLimit {
		s.resetLocked()
		return
	}

	now := s.now()
	if s.loopCount > 1 {
		frame := now.Sub(s.lastFrameTime)
		if frame > 0 {
			if frame > s.maxFrameTime {
				s.maxFrameTime = frame
			}
			if s.minFrameTime == 0 || frame < s.minFrameTime {
				s.minFrameTime = frame
			}
			if len(s.frameTimes) < frameWindow {
				s.frameTimes = append(s.frameTimes, frame)
			} else {
				s.frameTimes[int((s.loopCount-1)%frameWindow)] = frame
			}
		}
	}
	s.lastFrameTime = now

	if s.loopCount%memSampleEvery == 0 {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		if ms.HeapAlloc > s.heapMax {
			s.heapMax = ms.HeapAlloc
		}
	}
}

// RecordMode counts one activation of the named mode.
func (s *Stats) RecordMode(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return
	}
	s.modeCounts[name]++
}

// RecordBezier counts one Bezier curve evaluation.
func (s *Stats) RecordBezier() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enabled {
		s.bezierCalls++
	}
}

// RecordTrig counts one trig lookup.
func (s *Stats) RecordTrig() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enabled {
		s.trigCalls++
	}
}

// LoopCount returns the number of recorded loops.
func (s *Stats) LoopCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loopCount
}

// Uptime returns time since start or last reset.
func (s *Stats) Uptime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now().Sub(s.startTime)
}

// FPS estimates loop frequency from the rolling frame-time window.
func (s *Stats) FPS() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fpsLocked()
}

func (s *Stats) fpsLocked() float64 {
	if len(s.frameTimes) == 0 {
		return 0
	}
	var sum time.Duration
	for _, f := range s.frameTimes {
		sum += f
	}
	avg := sum / time.Duration(len(s.frameTimes))
	if avg < minAvgFrameTime {
		return maxReportedFPS
	}
	fps := float64(time.Second) / float64(avg)
	if fps > maxReportedFPS {
		return maxReportedFPS
	}
	return fps
}

// ShouldReport returns true once per interval, advancing the report clock.
func (s *Stats) ShouldReport(interval time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if now.Sub(s.lastReport) >= interval {
		s.lastReport = now
		return true
	}
	return false
}

// Report renders a compact multi-line summary.
func (s *Stats) Report() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return "stats disabled"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== Perf ===\n")
	fmt.Fprintf(&b, "Up: %.0fs | Loops: %d\n", s.now().Sub(s.startTime).Seconds(), s.loopCount)
	fmt.Fprintf(&b, "FPS: %.1f\n", s.fpsLocked())

	var sum time.Duration
	for _, f := range s.frameTimes {
		sum += f
	}
	var avg time.Duration
	if len(s.frameTimes) > 0 {
		avg = sum / time.Duration(len(s.frameTimes))
	}
	fmt.Fprintf(&b, "Frame: %.1f/%.1f/%.1fms\n",
		float64(avg)/float64(time.Millisecond),
		float64(s.minFrameTime)/float64(time.Millisecond),
		float64(s.maxFrameTime)/float64(time.Millisecond))

	if s.heapMax > 0 {
		fmt.Fprintf(&b, "Heap: %dKB peak\n", s.heapMax/1024)
	}

	total := 0
	for _, c := range s.modeCounts {
		total += c
	}
	if total > 0 {
		b.WriteString("Modes:\n")
		names := make([]string, 0, len(s.modeCounts))
		for name := range s.modeCounts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c := s.modeCounts[name]
			if c > 0 {
				fmt.Fprintf(&b, "  %s: %d (%d%%)\n", name, c, c*100/total)
			}
		}
	}

	if s.bezierCalls > 0 || s.trigCalls > 0 {
		fmt.Fprintf(&b, "Math: B=%d T=%d\n", s.bezierCalls, s.trigCalls)
	}

	return strings.TrimRight(b.String(), "\n")
}

// Reset clears all counters and restarts the clock.
func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Stats) resetLocked() {
	if s.now == nil {
		s.now = time.Now
	}
	now := s.now()
	s.loopCount = 0
	s.startTime = now
	s.lastReport = now
	s.lastFrameTime = now
	s.frameTimes = nil
	s.maxFrameTime = 0
	s.minFrameTime = 0
	s.modeCounts = map[string]int{}
	s.bezierCalls = 0
	s.trigCalls = 0
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s.heapStart = ms.HeapAlloc
	s.heapMax = ms.HeapAlloc
}
