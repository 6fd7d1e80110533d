// Package modes implements the six movement behaviors the simulator cycles
// through. Every mode is a small state machine: drive the Mover to a target,
// run a bounded number of micro adjustments, then dwell until a randomized
// timer expires. Update performs at most one unit of work per call and never
// blocks.
package modes

import (
	"fmt"
	"time"

	"fidget/internal/config"
	"fidget/internal/device"
	"fidget/internal/motion"
	"fidget/internal/noise"
	"fidget/internal/random"
	"fidget/internal/stats"
)

// ID identifies a movement mode.
type ID int

const (
	WebBrowsing ID = iota
	PageScanning
	Exploratory
	RandomMove
	Circular
	TargetFocus
)

func (id ID) String() string {
	switch id {
	case WebBrowsing:
		return "web_browsing"
	case PageScanning:
		return "page_scanning"
	case Exploratory:
		return "exploratory_move"
	case RandomMove:
		return "random_movement"
	case Circular:
		return "circular_move"
	case TargetFocus:
		return "target_focus"
	default:
		return fmt.Sprintf("mode(%d)", int(id))
	}
}

// All lists every mode in selection order.
func All() []ID {
	return []ID{WebBrowsing, PageScanning, Exploratory, RandomMove, Circular, TargetFocus}
}

// Mode is one self-contained behavior. Start draws all randomized parameters
// and kicks off the first motion; Update advances one unit of work and
// reports completion. Once complete, further Update calls stay complete and
// emit nothing.
type Mode interface {
	Start() error
	Update() (bool, error)
	// WaitTimeRange is how long the orchestrator should idle after this
	// mode completes.
	WaitTimeRange() (min, max time.Duration)
	// DurationRange is an advisory hint of the mode's own total runtime;
	// modes self-terminate via internal counters and timers.
	DurationRange() (min, max time.Duration)
}

// Env bundles the collaborators a mode needs.
type Env struct {
	Mover   *motion.Mover
	Pointer device.Pointer
	Noise   *noise.Generator
	Rand    *random.Pool
	Tuning  *config.ModeTuning
	Stats   *stats.Stats
	Now     func() time.Time
}

// move writes a direct pointer delta, splitting anything beyond the HID
// report range. Zero deltas are elided.
func (e Env) move(dx, dy int) error {
	for dx != 0 || dy != 0 {
		cx := device.ClampDelta(dx)
		cy := device.ClampDelta(dy)
		if err := e.Pointer.Move(cx, cy); err != nil {
			return err
		}
		dx -= cx
		dy -= cy
	}
	return nil
}

// New creates a fresh instance of the identified mode. Unknown IDs are a
// programming error and fail loudly.
func New(id ID, env Env) (Mode, error) {
	if env.Now == nil {
		env.Now = time.Now
	}
	switch id {
	case WebBrowsing:
		return newWebBrowsing(env), nil
	case PageScanning:
		return newPageScanning(env), nil
	case Exploratory:
		return newRoam(env, env.Tuning.Exploratory), nil
	case RandomMove:
		return newRoam(env, env.Tuning.Random), nil
	case Circular:
		return newCircular(env), nil
	case TargetFocus:
		return newTargetFocus(env), nil
	default:
		return nil, fmt.Errorf("modes: unknown mode %d", int(id))
	}
}

// WeightedItems maps the configured weights onto selection items for the
// weighted chooser.
func WeightedItems(w config.ModeWeights) []random.WeightedItem[ID] {
	return []random.WeightedItem[ID]{
		{Item: WebBrowsing, Weight: w.WebBrowsing},
		{Item: PageScanning, Weight: w.PageScanning},
		{Item: Exploratory, Weight: w.Exploratory},
		{Item: RandomMove, Weight: w.RandomMove},
		{Item: Circular, Weight: w.Circular},
		{Item: TargetFocus, Weight: w.TargetFocus},
	}
}

// dwell is a lazily-started countdown. The clock starts on the first tick so
// time spent in earlier phases never eats into the dwell.
type dwell struct {
	total     time.Duration
	startedAt time.Time
	started   bool
}

func newDwell(rnd *random.Pool, r config.Range) dwell {
	lo, hi := r.Durations()
	return dwell{total: rnd.DurationRange(lo, hi)}
}

// expired reports whether the dwell has run out, starting it if needed.
func (d *dwell) expired(now time.Time) bool {
	if !d.started {
		d.started = true
		d.startedAt = now
		return d.total <= 0
	}
	return now.Sub(d.startedAt) >= d.total
}
