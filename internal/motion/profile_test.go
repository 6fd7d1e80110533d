package motion

import (
	"testing"

	"fidget/internal/config"
	"fidget/internal/random"
)

func TestProfileShape(t *testing.T) {
	tuning := config.DefaultTuning().Motion
	rnd := random.NewPool(42)

	for _, total := range []int{5, 10, 30, 100, 500} {
		profile := buildProfile(total, rnd, tuning)
		if len(profile) != total {
			t.Fatalf("total %d: profile length %d", total, len(profile))
		}

		accel := int(float64(total) * tuning.AccelRatio)
		if accel < 1 {
			accel = 1
		}
		decel := accel
		cruiseEnd := total - decel

		// Accel segment rises monotonically.
		for i := 1; i < accel; i++ {
			if profile[i] < profile[i-1] {
				t.Errorf("total %d: accel not monotonic at %d (%v < %v)", total, i, profile[i], profile[i-1])
			}
		}
		// Decel segment falls monotonically.
		for i := cruiseEnd + 1; i < total; i++ {
			if profile[i] > profile[i-1] {
				t.Errorf("total %d: decel not monotonic at %d (%v > %v)", total, i, profile[i], profile[i-1])
			}
		}
		// All factors stay within [floor, 1 + cruise jitter max].
		for i, f := range profile {
			if f < tuning.DecelFloor-1e-9 || f > 1.0+tuning.CruiseJitter.Max+1e-9 {
				t.Errorf("total %d: factor %v at %d outside bounds", total, f, i)
			}
		}
	}
}

func TestProfileTinyMotion(t *testing.T) {
	tuning := config.DefaultTuning().Motion
	rnd := random.NewPool(1)
	for total := 1; total <= 4; total++ {
		profile := buildProfile(total, rnd, tuning)
		if len(profile) != total {
			t.Errorf("total %d: got length %d", total, len(profile))
		}
	}
	if buildProfile(0, rnd, tuning) != nil {
		t.Error("zero-step profile should be nil")
	}
}

func TestPrefixWeightsNormalized(t *testing.T) {
	rnd := random.NewPool(3)
	profile := buildProfile(40, rnd, config.DefaultTuning().Motion)
	prefix := prefixWeights(profile)

	if got := prefix[len(prefix)-1]; got < 0.999999 || got > 1.000001 {
		t.Fatalf("final prefix weight = %v, want 1", got)
	}
	for i := 1; i < len(prefix); i++ {
		if prefix[i] < prefix[i-1] {
			t.Fatalf("prefix weights not monotonic at %d", i)
		}
	}
}
