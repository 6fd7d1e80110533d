package modes

import (
	"math"
	"time"

	"fidget/internal/fastmath"
)

// Path and dwell constants for web browsing. The curve itself is a quadratic
// Bezier with one randomly offset control point near the midpoint.
const (
	webPathStepDivisor = 15
	webControlSpread   = 0.2
	webPathNoiseAmp    = 0.5
	webPathNoiseFreq   = 2.0
	webSmallNoiseAmp   = 2.0
	webSmallNoiseFreq  = 3.0
	webDwellNudgeProb  = 0.08
	webDwellNoiseAmp   = 2.0
	webDwellNoiseFreq  = 1.5
)

// webBrowsing wanders to a random point along a curved path, fidgets around
// it, then lingers with occasional noise nudges, like someone reading a page.
type webBrowsing struct {
	env Env

	targetX, targetY   float64
	controlX, controlY float64
	step, totalSteps   int
	smallLeft          int
	sentX, sentY       int
	linger             dwell
	t0                 time.Time
	done               bool
}

func newWebBrowsing(env Env) *webBrowsing {
	return &webBrowsing{env: env}
}

func (m *webBrowsing) Start() error {
	t := m.env.Tuning.Web
	rnd := m.env.Rand

	m.targetX = float64(rnd.IntRange(t.TargetX.Min, t.TargetX.Max))
	m.targetY = float64(rnd.IntRange(t.TargetY.Min, t.TargetY.Max))

	dist := math.Sqrt(m.targetX*m.targetX + m.targetY*m.targetY)
	steps := int(dist / webPathStepDivisor)
	if steps < t.PathSteps.Min {
		steps = t.PathSteps.Min
	}
	if steps > t.PathSteps.Max {
		steps = t.PathSteps.Max
	}
	m.totalSteps = steps

	// One control point near the midpoint, pushed off-axis so the path
	// bows instead of running straight.
	spread := math.Abs(m.targetX+m.targetY) * webControlSpread
	offset := rnd.FloatRange(-spread, spread)
	m.controlX = m.targetX*0.5 + offset
	m.controlY = m.targetY*0.5 + offset

	m.smallLeft = rnd.IntRange(t.SmallMoves.Min, t.SmallMoves.Max)
	m.linger = newDwell(rnd, t.Dwell)
	m.t0 = m.env.Now()
	return nil
}

func (m *webBrowsing) Update() (bool, error) {
	if m.done {
		return true, nil
	}
	now := m.env.Now()
	elapsed := now.Sub(m.t0).Seconds()

	switch {
	case m.step < m.totalSteps:
		t := float64(m.step) / math.Max(float64(m.totalSteps-1), 1)
		x := fastmath.QuadBezier(t, 0, m.controlX, m.targetX)
		y := fastmath.QuadBezier(t, 0, m.controlY, m.targetY)
		m.env.Stats.RecordBezier()

		x += m.env.Noise.Perlin2D(elapsed, 0, webPathNoiseFreq, 1, 0.5) * webPathNoiseAmp
		y += m.env.Noise.Perlin2D(elapsed, 100, webPathNoiseFreq, 1, 0.5) * webPathNoiseAmp

		dx := int(math.Round(x)) - m.sentX
		dy := int(math.Round(y)) - m.sentY
		m.step++
		if err := m.env.move(dx, dy); err != nil {
			return false, err
		}
		m.sentX += dx
		m.sentY += dy
		return false, nil

	case m.smallLeft > 0:
		t := m.env.Tuning.Web
		dx := float64(m.env.Rand.IntRange(t.SmallRange.Min, t.SmallRange.Max))
		dy := float64(m.env.Rand.IntRange(t.SmallRange.Min, t.SmallRange.Max))
		dx += m.env.Noise.Perlin2D(elapsed, 1, webSmallNoiseFreq, 1, 0.5) * webSmallNoiseAmp
		dy += m.env.Noise.Perlin2D(elapsed, 101, webSmallNoiseFreq, 1, 0.5) * webSmallNoiseAmp
		m.smallLeft--
		if err := m.env.move(int(dx), int(dy)); err != nil {
			return false, err
		}
		return false, nil

	case !m.linger.expired(now):
		// Dwell, but not perfectly still: an occasional one-pixel-scale
		// noise nudge keeps the pointer alive.
		if m.env.Rand.Float64() < webDwellNudgeProb {
			nx := m.env.Noise.Perlin2D(elapsed, 2, webDwellNoiseFreq, 1, 0.5) * webDwellNoiseAmp
			ny := m.env.Noise.Perlin2D(elapsed, 102, webDwellNoiseFreq, 1, 0.5) * webDwellNoiseAmp
			if err := m.env.move(int(nx), int(ny)); err != nil {
				return false, err
			}
		}
		return false, nil

	default:
		m.done = true
		return true, nil
	}
}

func (m *webBrowsing) WaitTimeRange() (time.Duration, time.Duration) {
	return m.env.Tuning.Web.Wait.Durations()
}

func (m *webBrowsing) DurationRange() (time.Duration, time.Duration) {
	return m.env.Tuning.Web.Duration.Durations()
}
