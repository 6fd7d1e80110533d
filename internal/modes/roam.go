package modes

import (
	"time"

	"fidget/internal/config"
)

// roam relocates the pointer, then makes a handful of small wandering moves
// around the new spot with a cooldown between each. The exploratory and
// random-movement modes are both roams; only the tuning differs.
type roam struct {
	env    Env
	tuning config.RoamTuning

	movesLeft  int
	nextMoveAt time.Time
	linger     dwell
	done       bool
}

func newRoam(env Env, tuning config.RoamTuning) *roam {
	return &roam{env: env, tuning: tuning}
}

func (m *roam) Start() error {
	t := m.tuning
	rnd := m.env.Rand

	m.movesLeft = rnd.IntRange(t.Moves.Min, t.Moves.Max)
	m.linger = newDwell(rnd, t.Dwell)

	tx := rnd.IntRange(t.Target.Min, t.Target.Max)
	ty := rnd.IntRange(t.Target.Min, t.Target.Max)
	return m.env.Mover.QuickMoveTo(tx, ty)
}

func (m *roam) Update() (bool, error) {
	if m.done {
		return true, nil
	}
	if m.env.Mover.Active() {
		_, err := m.env.Mover.Step()
		return false, err
	}

	now := m.env.Now()

	switch {
	case m.movesLeft > 0:
		if now.Before(m.nextMoveAt) {
			return false, nil
		}
		t := m.tuning
		rnd := m.env.Rand
		dx := float64(rnd.IntRange(-t.Radius, t.Radius))
		dy := float64(rnd.IntRange(-t.Radius, t.Radius))
		m.movesLeft--
		lo, hi := t.Cooldown.Durations()
		m.nextMoveAt = now.Add(rnd.DurationRange(lo, hi))
		return false, m.env.Mover.SmoothMoveSmall(0, 0, dx, dy)

	case !m.linger.expired(now):
		return false, nil

	default:
		m.done = true
		return true, nil
	}
}

func (m *roam) WaitTimeRange() (time.Duration, time.Duration) {
	return m.tuning.Wait.Durations()
}

func (m *roam) DurationRange() (time.Duration, time.Duration) {
	return m.tuning.Duration.Durations()
}
