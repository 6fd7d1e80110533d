// Package motion implements the Mover: it turns a requested displacement
// into a pull-based stream of small pointer deltas following a human-like
// velocity profile. At most one motion is in flight at a time.
package motion

import (
	"errors"
	"math"

	"fidget/internal/config"
	"fidget/internal/device"
	"fidget/internal/fastmath"
	"fidget/internal/random"
)

// ErrBusy is returned when a new motion is requested while one is active.
// The caller either waits for Step to report completion or drops the
// request; an active stream is never superseded.
var ErrBusy = errors.New("motion: a move is already in progress")

// Mover converts macro displacements into per-tick pointer deltas.
type Mover struct {
	sink   device.Pointer
	rnd    *random.Pool
	tuning config.MotionTuning

	active bool

	// Profile-driven move: emit against normalized cumulative weights so
	// truncation never accumulates.
	prefix   []float64
	step     int
	total    int
	dx, dy   float64
	sentX    int
	sentY    int

	// Precomputed small-move sequence.
	small    [][2]int
	smallIdx int
}

// New returns a Mover that writes to sink.
func New(sink device.Pointer, rnd *random.Pool, tuning config.MotionTuning) *Mover {
	return &Mover{sink: sink, rnd: rnd, tuning: tuning}
}

// Active reports whether a motion stream is in flight.
func (m *Mover) Active() bool { return m.active }

// QuickMoveTo begins a macro relative move of total displacement (dx, dy).
// Step count derives from the displacement length divided by the base step
// distance, jittered and floored; the velocity profile shapes each step.
// A zero displacement is a no-op and leaves the Mover inactive.
func (m *Mover) QuickMoveTo(dx, dy int) error {
	if dx == 0 && dy == 0 {
		return nil
	}
	if m.active {
		return ErrBusy
	}

	// Octagonal distance is plenty here; step count only needs the right
	// order of magnitude before the jitter factor lands on it.
	dist := fastmath.Dist(dx, dy)
	base := int(float64(dist) / m.tuning.BaseStepDistance)
	if base < m.tuning.MinSteps {
		base = m.tuning.MinSteps
	}
	total := int(float64(base) * m.rnd.FloatRange(m.tuning.StepJitter.Min, m.tuning.StepJitter.Max))
	if total < 1 {
		total = 1
	}

	m.prefix = prefixWeights(buildProfile(total, m.rnd, m.tuning))
	m.total = total
	m.step = 0
	m.dx = float64(dx)
	m.dy = float64(dy)
	m.sentX = 0
	m.sentY = 0
	m.active = true
	return nil
}

// SmoothMoveSmall begins a micro move from (x0, y0) to (x1, y1) with denser
// stepping, per-step jitter, occasional direction corrections, and rare
// zero-delta hesitation steps. A final corrective step lands the path within
// half a unit of the intended endpoint.
func (m *Mover) SmoothMoveSmall(x0, y0, x1, y1 float64) error {
	dx := x1 - x0
	dy := y1 - y0
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist == 0 {
		return nil
	}
	if m.active {
		return ErrBusy
	}

	t := m.tuning
	base := int(dist / t.SmallBaseDistance)
	if base < t.SmallMinSteps {
		base = t.SmallMinSteps
	}
	steps := int(float64(base) * m.rnd.FloatRange(t.SmallStepJitter.Min, t.SmallStepJitter.Max))
	if steps < 1 {
		steps = 1
	}

	profile := buildProfile(steps, m.rnd, t)
	adjustEvery := m.rnd.IntRange(t.AdjustInterval.Min, t.AdjustInterval.Max)

	seq := make([][2]int, 0, steps+2)
	baseX := dx / float64(steps)
	baseY := dy / float64(steps)
	sentX, sentY := 0, 0

	for i := 0; i < steps; i++ {
		factor := 1.0
		if i < len(profile) {
			factor = profile[i]
		}

		actualX := baseX*factor + m.rnd.FloatRange(t.SmallOffset.Min, t.SmallOffset.Max)*factor
		actualY := baseY*factor + m.rnd.FloatRange(t.SmallOffset.Min, t.SmallOffset.Max)*factor

		// Occasional larger direction correction, as a hand over-steers
		// and pulls back.
		if i > 0 && i%adjustEvery == 0 {
			actualX += m.rnd.FloatRange(t.LargeOffset.Min, t.LargeOffset.Max)
			actualY += m.rnd.FloatRange(t.LargeOffset.Min, t.LargeOffset.Max)
		}

		if m.rnd.Float64() < t.ThinkPauseProbability {
			seq = append(seq, [2]int{0, 0})
		}

		ix, iy := int(actualX), int(actualY)
		seq = append(seq, [2]int{ix, iy})
		sentX += ix
		sentY += iy
	}

	// Correct the accumulated truncation and jitter so the endpoint lands
	// within ±0.5 of the target.
	remX := dx - float64(sentX)
	remY := dy - float64(sentY)
	if math.Abs(remX) > 0.5 || math.Abs(remY) > 0.5 {
		seq = append(seq, [2]int{int(math.Round(remX)), int(math.Round(remY))})
	}

	m.small = seq
	m.smallIdx = 0
	m.active = true
	return nil
}

// Step advances the active motion by exactly one delta. It reports true when
// the motion is exhausted (the Mover becomes inactive) and false while steps
// remain. Calling Step on an inactive Mover is a no-op returning true.
func (m *Mover) Step() (bool, error) {
	if !m.active {
		return true, nil
	}

	if m.small != nil {
		if m.smallIdx < len(m.small) {
			d := m.small[m.smallIdx]
			m.smallIdx++
			if err := m.move(d[0], d[1]); err != nil {
				return false, err
			}
			return false, nil
		}
		m.small = nil
		m.active = false
		return true, nil
	}

	if m.step < m.total {
		idealX := m.dx * m.prefix[m.step]
		idealY := m.dy * m.prefix[m.step]
		stepX := int(math.Round(idealX)) - m.sentX
		stepY := int(math.Round(idealY)) - m.sentY
		m.step++
		if err := m.move(stepX, stepY); err != nil {
			return false, err
		}
		m.sentX += stepX
		m.sentY += stepY
		return false, nil
	}

	m.prefix = nil
	m.active = false
	return true, nil
}

// move splits oversized deltas into HID-sized reports before writing.
// Zero-delta pause steps produce no report.
func (m *Mover) move(dx, dy int) error {
	for dx != 0 || dy != 0 {
		cx := device.ClampDelta(dx)
		cy := device.ClampDelta(dy)
		if err := m.sink.Move(cx, cy); err != nil {
			return err
		}
		dx -= cx
		dy -= cy
	}
	return nil
}
