package modes

import (
	"math"
	"time"

	"fidget/internal/fastmath"
)

const (
	circleNoiseFreq  = 2.5
	circleDriftAfter = 5
)

// circular walks the pointer around a randomized ellipse. Each axis gets its
// own jittered radius, the angular speed occasionally drifts, and a little
// noise keeps the rim from looking machine drawn. Deltas are emitted against
// the integer position already sent, so rounding error never accumulates
// into a spiral.
type circular struct {
	env Env

	radiusX, radiusY float64
	angle, angleStep float64
	direction        float64
	stepsLeft        int
	stepsTotal       int
	baseX, baseY     float64
	sentX, sentY     int
	linger           dwell
	t0               time.Time
	done             bool
}

func newCircular(env Env) *circular {
	return &circular{env: env}
}

func (m *circular) Start() error {
	t := m.env.Tuning.Circle
	rnd := m.env.Rand

	base := float64(rnd.IntRange(t.BaseRadius.Min, t.BaseRadius.Max))
	m.radiusX = base * rnd.FloatRange(t.RadiusJitter.Min, t.RadiusJitter.Max)
	m.radiusY = base * rnd.FloatRange(t.RadiusJitter.Min, t.RadiusJitter.Max)
	m.angle = rnd.FloatRange(0, 2*math.Pi)
	m.angleStep = rnd.FloatRange(t.AngleStep.Min, t.AngleStep.Max)
	m.direction = 1
	if rnd.Float64() < 0.5 {
		m.direction = -1
	}
	m.stepsTotal = rnd.IntRange(t.Steps.Min, t.Steps.Max)
	m.stepsLeft = m.stepsTotal
	m.linger = newDwell(rnd, t.Dwell)
	m.t0 = m.env.Now()

	m.baseX = m.radiusX * fastmath.Cos(m.angle)
	m.baseY = m.radiusY * fastmath.Sin(m.angle)
	m.env.Stats.RecordTrig()

	cx := rnd.IntRange(t.Center.Min, t.Center.Max)
	cy := rnd.IntRange(t.Center.Min, t.Center.Max)
	return m.env.Mover.QuickMoveTo(cx+int(math.Round(m.baseX)), cy+int(math.Round(m.baseY)))
}

func (m *circular) Update() (bool, error) {
	if m.done {
		return true, nil
	}
	if m.env.Mover.Active() {
		_, err := m.env.Mover.Step()
		return false, err
	}

	now := m.env.Now()

	switch {
	case m.stepsLeft > 0:
		t := m.env.Tuning.Circle
		rnd := m.env.Rand

		taken := m.stepsTotal - m.stepsLeft
		m.stepsLeft--

		// Let the first few steps settle before drifting the speed.
		if taken > circleDriftAfter && rnd.Float64() < t.SpeedChangeProbability {
			m.angleStep = fastmath.Clamp(
				m.angleStep*rnd.FloatRange(t.AngleDrift.Min, t.AngleDrift.Max),
				t.AngleStep.Min, t.AngleStep.Max)
		}
		m.angle += m.angleStep * m.direction

		x := m.radiusX * fastmath.Cos(m.angle)
		y := m.radiusY * fastmath.Sin(m.angle)
		m.env.Stats.RecordTrig()

		if t.NoiseAmplitude > 0 {
			elapsed := now.Sub(m.t0).Seconds()
			x += m.env.Noise.Perlin2D(elapsed, 0, circleNoiseFreq, 1, 0.5) * t.NoiseAmplitude
			y += m.env.Noise.Perlin2D(elapsed, 100, circleNoiseFreq, 1, 0.5) * t.NoiseAmplitude
		}

		dx := int(math.Round(x-m.baseX)) - m.sentX
		dy := int(math.Round(y-m.baseY)) - m.sentY
		if err := m.env.move(dx, dy); err != nil {
			return false, err
		}
		m.sentX += dx
		m.sentY += dy
		return false, nil

	case !m.linger.expired(now):
		return false, nil

	default:
		m.done = true
		return true, nil
	}
}

func (m *circular) WaitTimeRange() (time.Duration, time.Duration) {
	return m.env.Tuning.Circle.Wait.Durations()
}

func (m *circular) DurationRange() (time.Duration, time.Duration) {
	return m.env.Tuning.Circle.Duration.Durations()
}
