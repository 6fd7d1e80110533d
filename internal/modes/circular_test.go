package modes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"fidget/internal/config"
)

// circleTestTuning pins every randomized circle parameter so the walk is a
// fixed-radius polygon centered on the origin.
func circleTestTuning() config.CircleTuning {
	return config.CircleTuning{
		Center:                 config.IntRange{Min: 0, Max: 0},
		BaseRadius:             config.IntRange{Min: 50, Max: 50},
		RadiusJitter:           config.Range{Min: 1, Max: 1},
		AngleStep:              config.Range{Min: 0.2, Max: 0.2},
		Steps:                  config.IntRange{Min: 10, Max: 10},
		SpeedChangeProbability: 0,
		AngleDrift:             config.Range{Min: 1, Max: 1},
		NoiseAmplitude:         0,
		Dwell:                  config.Range{},
		Wait:                   config.Range{Min: 1, Max: 2},
		Duration:               config.Range{Min: 5, Max: 15},
	}
}

func TestCircularStaysOnRadius(t *testing.T) {
	for seed := uint32(1); seed <= 10; seed++ {
		env, rec, _ := newTestEnv(seed)
		env.Tuning.Circle = circleTestTuning()

		c := newCircular(env)
		require.NoError(t, c.Start())

		// Drain the relocation to the rim before checking geometry.
		for env.Mover.Active() {
			_, err := c.Update()
			require.NoError(t, err)
		}

		const radius = 50.0
		for c.stepsLeft > 0 {
			done, err := c.Update()
			require.NoError(t, err)
			require.False(t, done)

			r := math.Hypot(float64(rec.SumX), float64(rec.SumY))
			require.InDelta(t, radius, r, 2.5,
				"seed %d: pointer at (%d, %d) off the rim", seed, rec.SumX, rec.SumY)
		}

		done, err := c.Update()
		require.NoError(t, err)
		require.True(t, done)
	}
}

func TestCircularDoesNotSpiral(t *testing.T) {
	env, rec, _ := newTestEnv(4)
	tuning := circleTestTuning()
	tuning.Steps = config.IntRange{Min: 500, Max: 500}
	env.Tuning.Circle = tuning

	c := newCircular(env)
	require.NoError(t, c.Start())
	runToCompletion(t, c)

	// After many revolutions the pointer must still be a radius away from
	// the center; accumulated rounding would show up as drift.
	r := math.Hypot(float64(rec.SumX), float64(rec.SumY))
	require.InDelta(t, 50.0, r, 2.5)
}
