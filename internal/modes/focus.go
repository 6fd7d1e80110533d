package modes

import (
	"math"
	"time"
)

const (
	focusWobbleRange = 10.0
	focusNoiseFreq   = 2.0
	focusNudgeScale  = 5.0
)

// targetFocus jumps to a point and hovers over it, the way a hand rests on a
// button it is about to press. The pointer starts with a small wobble offset
// and a gravity pull drags it back toward the target over a few micro moves;
// while dwelling it twitches occasionally.
type targetFocus struct {
	env Env

	offsetX, offsetY float64
	microLeft        int
	linger           dwell
	t0               time.Time
	done             bool
}

func newTargetFocus(env Env) *targetFocus {
	return &targetFocus{env: env}
}

func (m *targetFocus) Start() error {
	t := m.env.Tuning.Focus
	rnd := m.env.Rand

	m.offsetX = rnd.FloatRange(-focusWobbleRange, focusWobbleRange)
	m.offsetY = rnd.FloatRange(-focusWobbleRange, focusWobbleRange)
	m.microLeft = rnd.IntRange(t.MicroMoves.Min, t.MicroMoves.Max)
	m.linger = newDwell(rnd, t.Dwell)
	m.t0 = m.env.Now()

	tx := rnd.IntRange(t.Target.Min, t.Target.Max)
	ty := rnd.IntRange(t.Target.Min, t.Target.Max)
	return m.env.Mover.QuickMoveTo(tx+int(m.offsetX), ty+int(m.offsetY))
}

func (m *targetFocus) Update() (bool, error) {
	if m.done {
		return true, nil
	}
	if m.env.Mover.Active() {
		_, err := m.env.Mover.Step()
		return false, err
	}

	now := m.env.Now()
	t := m.env.Tuning.Focus

	switch {
	case m.microLeft > 0:
		m.microLeft--
		elapsed := now.Sub(m.t0).Seconds()

		// Pull back toward the target, roughened with noise so the
		// approach is not a straight decay.
		pullX := -m.offsetX * t.PullStrength
		pullY := -m.offsetY * t.PullStrength
		pullX += m.env.Noise.Perlin2D(elapsed, 0, focusNoiseFreq, 1, 0.5) * t.NoiseAmplitude
		pullY += m.env.Noise.Perlin2D(elapsed, 100, focusNoiseFreq, 1, 0.5) * t.NoiseAmplitude

		dx := int(math.Round(pullX))
		dy := int(math.Round(pullY))
		if err := m.env.move(dx, dy); err != nil {
			return false, err
		}
		m.offsetX += float64(dx)
		m.offsetY += float64(dy)
		return false, nil

	case !m.linger.expired(now):
		if m.env.Rand.Float64() < t.NudgeProbability {
			elapsed := now.Sub(m.t0).Seconds()
			nx := m.env.Noise.Perlin2D(elapsed, 1, focusNoiseFreq, 1, 0.5) * focusNudgeScale
			ny := m.env.Noise.Perlin2D(elapsed, 101, focusNoiseFreq, 1, 0.5) * focusNudgeScale
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

func (m *targetFocus) WaitTimeRange() (time.Duration, time.Duration) {
	return m.env.Tuning.Focus.Wait.Durations()
}

func (m *targetFocus) DurationRange() (time.Duration, time.Duration) {
	return m.env.Tuning.Focus.Duration.Durations()
}
