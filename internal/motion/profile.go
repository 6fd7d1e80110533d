package motion

import (
	"fidget/internal/config"
	"fidget/internal/random"
)

// buildProfile creates the per-step speed multipliers for one motion:
// a quadratic-ease acceleration ramp, a jittered cruise plateau, and a
// quadratic-ease deceleration tail. Mirrors ballistic human pointer motion.
func buildProfile(total int, rnd *random.Pool, t config.MotionTuning) []float64 {
	if total < 1 {
		return nil
	}

	accel := int(float64(total) * t.AccelRatio)
	if accel < 1 {
		accel = 1
	}
	decel := accel
	cruise := total - accel - decel
	if cruise < 0 {
		// Tiny motions: give everything to the ramps.
		accel = total / 2
		if accel < 1 {
			accel = 1
		}
		decel = total - accel
		cruise = 0
	}

	profile := make([]float64, 0, total)

	for i := 0; i < accel; i++ {
		tt := float64(i) / float64(accel)
		profile = append(profile, t.AccelStartFactor+(1.0-t.AccelStartFactor)*tt*tt)
	}
	for i := 0; i < cruise; i++ {
		profile = append(profile, 1.0+rnd.FloatRange(t.CruiseJitter.Min, t.CruiseJitter.Max))
	}
	for i := 0; i < decel; i++ {
		tt := float64(i) / float64(decel)
		f := 1.0 - (1.0-t.DecelFloor)*tt*tt
		if f < t.DecelFloor {
			f = t.DecelFloor
		}
		profile = append(profile, f)
	}

	return profile
}

// prefixWeights returns the cumulative profile weights, normalized so the
// last entry is 1. The Mover emits deltas against this curve so the sum of
// all steps lands exactly on the requested displacement.
func prefixWeights(profile []float64) []float64 {
	prefix := make([]float64, len(profile))
	sum := 0.0
	for i, f := range profile {
		sum += f
		prefix[i] = sum
	}
	if sum > 0 {
		for i := range prefix {
			prefix[i] /= sum
		}
	}
	return prefix
}
