// Package app hosts the orchestrator: the single logical thread of control
// that sequences movement modes, drives the LED controller, and owns every
// piece of shared engine state.
package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"fidget/internal/config"
	"fidget/internal/device"
	"fidget/internal/led"
	"fidget/internal/modes"
	"fidget/internal/motion"
	"fidget/internal/noise"
	"fidget/internal/random"
	"fidget/internal/stats"
)

// DefaultTick is the work throttle of the control loop. Motion quality is
// insensitive to small changes here; everything time-based is delta-scaled.
const DefaultTick = 8 * time.Millisecond

const (
	errorBlinkCount    = 10
	errorBlinkInterval = 200 * time.Millisecond
)

type phase int

const (
	phaseBoot phase = iota
	phaseRunning
	phaseWaiting
)

func (p phase) String() string {
	switch p {
	case phaseRunning:
		return "running"
	case phaseWaiting:
		return "waiting"
	default:
		return "boot"
	}
}

// Options configures an Engine. Zero-value fields get working defaults: a
// discarding pointer, an in-memory pixel, stock tuning, disabled stats, and
// a clock-derived seed.
type Options struct {
	Pointer device.Pointer
	Pixel   device.Pixel
	Tuning  *config.Tuning
	Stats   *stats.Stats
	Seed    uint32
	Now     func() time.Time
}

// Engine owns the mode state machine. All mutable state lives behind one
// mutex; the control loop is the only writer, the UI and shell read
// snapshots.
type Engine struct {
	mu sync.Mutex

	tuning   *config.Tuning
	pointer  device.Pointer
	pixel    device.Pixel
	led      *led.Controller
	stats    *stats.Stats
	rnd      *random.Pool
	noise    *noise.Generator
	mover    *motion.Mover
	selector *random.Weighted[modes.ID]
	now      func() time.Time

	phase       phase
	mode        modes.Mode
	modeID      modes.ID
	modeStarted time.Time

	nextMode          modes.ID
	waitStarted       time.Time
	waitDuration      time.Duration
	transitionStarted bool
}

// New assembles an Engine. It does not start any mode; call Run or Start.
func New(opts Options) (*Engine, error) {
	if opts.Pointer == nil {
		opts.Pointer = device.NullPointer{}
	}
	if opts.Pixel == nil {
		opts.Pixel = &device.MemoryPixel{}
	}
	if opts.Tuning == nil {
		opts.Tuning = config.DefaultTuning()
	}
	if err := opts.Tuning.Validate(); err != nil {
		return nil, err
	}
	if opts.Stats == nil {
		opts.Stats = stats.New(false)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	rnd := random.NewPool(opts.Seed)
	e := &Engine{
		tuning:   opts.Tuning,
		pointer:  opts.Pointer,
		pixel:    opts.Pixel,
		led:      led.New(opts.Pixel, opts.Stats, opts.Tuning.LED, opts.Now),
		stats:    opts.Stats,
		rnd:      rnd,
		noise:    noise.NewGenerator(opts.Seed),
		mover:    motion.New(opts.Pointer, rnd, opts.Tuning.Motion),
		selector: random.NewWeighted(modes.WeightedItems(opts.Tuning.Modes.Weights)),
		now:      opts.Now,
	}
	return e, nil
}

// Start picks the first mode and begins running it.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startMode(e.selector.Choice(e.rnd))
}

// startMode transitions into the given mode. Caller holds e.mu.
func (e *Engine) startMode(id modes.ID) error {
	e.led.SetActive(true)
	if !e.transitionStarted {
		e.led.SetNextColor(id)
	}
	e.transitionStarted = false

	env := modes.Env{
		Mover:   e.mover,
		Pointer: e.pointer,
		Noise:   e.noise,
		Rand:    e.rnd,
		Tuning:  &e.tuning.Modes,
		Stats:   e.stats,
		Now:     e.now,
	}
	m, err := modes.New(id, env)
	if err != nil {
		return err
	}
	if err := m.Start(); err != nil {
		return fmt.Errorf("start %s: %w", id, err)
	}

	e.mode = m
	e.modeID = id
	e.modeStarted = e.now()
	e.phase = phaseRunning
	e.led.Pulse(time.Duration(e.tuning.App.BreathePulseSeconds * float64(time.Second)))
	log.Printf("engine: starting mode %s", id)
	return nil
}

// Tick performs exactly one pass of the control loop: record the loop,
// advance the LED animation, and advance the mode state machine one step.
// It never blocks.
func (e *Engine) Tick() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stats.RecordLoop()
	if e.stats.Enabled() {
		interval := time.Duration(e.tuning.App.ReportIntervalSeconds * float64(time.Second))
		if e.stats.ShouldReport(interval) {
			log.Printf("engine: %s", e.stats.Report())
		}
	}

	if err := e.led.Update(); err != nil {
		return fmt.Errorf("led: %w", err)
	}

	switch e.phase {
	case phaseRunning:
		done, err := e.mode.Update()
		if err != nil {
			return fmt.Errorf("mode %s: %w", e.modeID, err)
		}
		if done {
			return e.finishMode()
		}
	case phaseWaiting:
		elapsed := e.now().Sub(e.waitStarted)
		if !e.transitionStarted && elapsed >= e.waitDuration/2 {
			// Start the color cross-fade at the midpoint so the fade
			// lands roughly when the next mode begins.
			e.led.SetNextColor(e.nextMode)
			e.transitionStarted = true
		}
		if elapsed >= e.waitDuration {
			return e.startMode(e.nextMode)
		}
	}
	return nil
}

// finishMode handles a mode's completion: either an immediate continuous
// switch or a randomized wait with an idle breathing LED. Caller holds e.mu.
func (e *Engine) finishMode() error {
	lo, hi := e.mode.WaitTimeRange()
	e.mode = nil

	next := e.selector.Choice(e.rnd)
	if e.rnd.Float64() < e.tuning.App.ContinuousSwitchProbability {
		log.Printf("engine: continuous switch to %s", next)
		e.transitionStarted = false
		return e.startMode(next)
	}

	e.nextMode = next
	e.waitStarted = e.now()
	e.waitDuration = e.rnd.DurationRange(lo, hi)
	e.transitionStarted = false
	e.phase = phaseWaiting
	e.led.SetActive(false)
	log.Printf("engine: next mode %s in %.1fs", next, e.waitDuration.Seconds())
	return nil
}
