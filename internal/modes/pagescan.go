package modes

import (
	"time"
)

const (
	scanWindFreq     = 1.0
	scanWindTimeRate = 0.5
	scanWindYFactor  = 0.5
)

// scanBehavior is what the sweep is doing between sub-interval boundaries.
type scanBehavior int

const (
	scanNormal scanBehavior = iota
	scanSlow
	scanFast
	scanPause
)

// pageScanning sweeps the pointer left to right like eyes tracking lines of
// text. The sweep speed wobbles on value noise and shifts gear at random
// sub-intervals; each pass flips direction.
type pageScanning struct {
	env Env

	stepsPerPass int
	passesLeft   int
	step         int
	direction    float64
	behavior     scanBehavior
	nextShift    int
	linger       dwell
	t0           time.Time
	done         bool
}

func newPageScanning(env Env) *pageScanning {
	return &pageScanning{env: env}
}

func (m *pageScanning) Start() error {
	t := m.env.Tuning.Scan
	rnd := m.env.Rand

	startX := rnd.IntRange(t.StartX.Min, t.StartX.Max)
	startY := rnd.IntRange(t.StartY.Min, t.StartY.Max)
	endX := rnd.IntRange(t.EndX.Min, t.EndX.Max)

	span := float64(endX - startX)
	if span < 0 {
		span = -span
	}
	steps := int(span / t.StepDistance)
	if steps < t.MinSteps {
		steps = t.MinSteps
	}
	m.stepsPerPass = steps
	m.passesLeft = rnd.IntRange(t.Passes.Min, t.Passes.Max)
	m.direction = 1
	m.behavior = scanNormal
	m.nextShift = rnd.IntRange(t.SubInterval.Min, t.SubInterval.Max)
	m.linger = newDwell(rnd, t.Dwell)
	m.t0 = m.env.Now()

	return m.env.Mover.QuickMoveTo(startX, startY)
}

func (m *pageScanning) Update() (bool, error) {
	if m.done {
		return true, nil
	}

	// Finish the cursor relocation before sweeping.
	if m.env.Mover.Active() {
		_, err := m.env.Mover.Step()
		return false, err
	}

	now := m.env.Now()

	switch {
	case m.passesLeft > 0:
		if m.step >= m.stepsPerPass {
			m.passesLeft--
			m.step = 0
			m.direction = -m.direction
			return false, nil
		}
		if m.step >= m.nextShift {
			m.behavior = scanBehavior(m.env.Rand.Choice(4))
			t := m.env.Tuning.Scan
			m.nextShift = m.step + m.env.Rand.IntRange(t.SubInterval.Min, t.SubInterval.Max)
		}
		m.step++

		if m.behavior == scanPause {
			return false, nil
		}

		t := m.env.Tuning.Scan
		factor := 1.0
		switch m.behavior {
		case scanSlow:
			factor = t.SlowFactor
		case scanFast:
			factor = t.FastFactor
		}

		// Value noise centered on zero acts as a light crosswind, mostly
		// horizontal speed wobble with a smaller vertical drift.
		elapsed := now.Sub(m.t0).Seconds() * scanWindTimeRate
		windX := (m.env.Noise.Value2D(elapsed, 0, scanWindFreq)*2 - 1) * t.WindStrength
		windY := (m.env.Noise.Value2D(elapsed, 100, scanWindFreq)*2 - 1) * t.WindStrength * scanWindYFactor

		dx := int(m.direction*t.StepDistance*factor + windX)
		dy := int(windY)
		return false, m.env.move(dx, dy)

	case !m.linger.expired(now):
		return false, nil

	default:
		m.done = true
		return true, nil
	}
}

func (m *pageScanning) WaitTimeRange() (time.Duration, time.Duration) {
	return m.env.Tuning.Scan.Wait.Durations()
}

func (m *pageScanning) DurationRange() (time.Duration, time.Duration) {
	return m.env.Tuning.Scan.Duration.Durations()
}
