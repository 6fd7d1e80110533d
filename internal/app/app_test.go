package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fidget/internal/config"
	"fidget/internal/device"
	"fidget/internal/modes"
	"fidget/internal/random"
	"fidget/internal/stats"
)

// fakeClock advances on every reading so timers expire without sleeping.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func newTestEngine(t *testing.T, seed uint32, mutate func(*config.Tuning)) (*Engine, *device.Recorder) {
	t.Helper()
	rec := &device.Recorder{}
	tuning := config.DefaultTuning()
	if mutate != nil {
		mutate(tuning)
	}
	e, err := New(Options{
		Pointer: rec,
		Pixel:   &device.MemoryPixel{},
		Tuning:  tuning,
		Stats:   stats.New(false),
		Seed:    seed,
		Now:     (&fakeClock{t: time.Unix(9000, 0), step: 5 * time.Millisecond}).Now,
	})
	require.NoError(t, err)
	return e, rec
}

func TestNewRejectsInvalidTuning(t *testing.T) {
	bad := config.DefaultTuning()
	bad.Motion.BaseStepDistance = 0
	_, err := New(Options{Tuning: bad})
	require.Error(t, err)
}

func TestNewDefaultsAreUsable(t *testing.T) {
	e, err := New(Options{})
	require.NoError(t, err)
	require.NoError(t, e.Start())
	for i := 0; i < 100; i++ {
		require.NoError(t, e.Tick())
	}
}

func TestEngineCyclesThroughModes(t *testing.T) {
	e, rec := newTestEngine(t, 3, nil)
	require.NoError(t, e.Start())
	require.Equal(t, phaseRunning, e.phase)

	// Distinct modeStarted timestamps count distinct mode starts.
	seen := map[time.Time]bool{e.modeStarted: true}
	for i := 0; i < 300000 && len(seen) < 5; i++ {
		require.NoError(t, e.Tick())
		if e.phase == phaseRunning {
			seen[e.modeStarted] = true
		}
	}
	require.GreaterOrEqual(t, len(seen), 5, "engine did not cycle modes")
	require.NotEmpty(t, rec.Moves, "no pointer motion emitted")
}

func TestWaitDurationRespectsModeRange(t *testing.T) {
	e, _ := newTestEngine(t, 11, func(tn *config.Tuning) {
		tn.App.ContinuousSwitchProbability = 0
	})
	require.NoError(t, e.Start())

	checked := 0
	inWait := false
	lastMode := e.modeID
	for i := 0; i < 400000 && checked < 20; i++ {
		require.NoError(t, e.Tick())
		switch e.phase {
		case phaseWaiting:
			if !inWait {
				inWait = true
				env := modes.Env{Tuning: &e.tuning.Modes}
				m, err := modes.New(lastMode, env)
				require.NoError(t, err)
				lo, hi := m.WaitTimeRange()
				require.GreaterOrEqual(t, e.waitDuration, lo)
				require.LessOrEqual(t, e.waitDuration, hi)
				checked++
			}
		case phaseRunning:
			inWait = false
			lastMode = e.modeID
		}
	}
	require.GreaterOrEqual(t, checked, 20, "too few waits observed")
}

func TestDrawnWaitAlwaysWithinBounds(t *testing.T) {
	rnd := random.NewPool(1)
	tuning := config.DefaultTuning()
	for _, id := range modes.All() {
		m, err := modes.New(id, modes.Env{Tuning: &tuning.Modes})
		require.NoError(t, err)
		lo, hi := m.WaitTimeRange()
		for i := 0; i < 1000; i++ {
			d := rnd.DurationRange(lo, hi)
			require.GreaterOrEqual(t, d, lo, id.String())
			require.LessOrEqual(t, d, hi, id.String())
		}
	}
}

func TestContinuousSwitchSkipsWait(t *testing.T) {
	e, _ := newTestEngine(t, 5, func(tn *config.Tuning) {
		tn.App.ContinuousSwitchProbability = 1
	})
	require.NoError(t, e.Start())

	seen := map[time.Time]bool{e.modeStarted: true}
	for i := 0; i < 300000 && len(seen) < 4; i++ {
		require.NoError(t, e.Tick())
		require.NotEqual(t, phaseWaiting, e.phase, "waited despite continuous switching")
		seen[e.modeStarted] = true
	}
	require.GreaterOrEqual(t, len(seen), 4)
}

func TestMidWaitColorTransition(t *testing.T) {
	e, _ := newTestEngine(t, 9, func(tn *config.Tuning) {
		tn.App.ContinuousSwitchProbability = 0
	})
	require.NoError(t, e.Start())

	for i := 0; i < 300000 && e.phase != phaseWaiting; i++ {
		require.NoError(t, e.Tick())
	}
	require.Equal(t, phaseWaiting, e.phase)
	require.False(t, e.transitionStarted)
	next := e.nextMode

	// Once past the wait midpoint the cross-fade must have started.
	for i := 0; i < 300000 && e.phase == phaseWaiting; i++ {
		require.NoError(t, e.Tick())
		if e.now().Sub(e.waitStarted) >= e.waitDuration/2 && e.phase == phaseWaiting {
			require.True(t, e.transitionStarted)
		}
	}
	require.Equal(t, phaseRunning, e.phase)
	require.Equal(t, next, e.modeID)
}

func TestPointerErrorAbortsTick(t *testing.T) {
	e, rec := newTestEngine(t, 2, nil)
	rec.FailAt = 1
	require.NoError(t, e.Start())

	var err error
	for i := 0; i < 100000; i++ {
		if err = e.Tick(); err != nil {
			break
		}
	}
	require.ErrorIs(t, err, device.ErrClosed)
}

func TestSnapshotReflectsPhase(t *testing.T) {
	e, _ := newTestEngine(t, 8, func(tn *config.Tuning) {
		tn.App.ContinuousSwitchProbability = 0
	})
	require.NoError(t, e.Start())

	s := e.Snapshot()
	require.Equal(t, "running", s.Phase)
	require.NotEmpty(t, s.Mode)
	require.Contains(t, e.Status(), "Mode: ")

	for i := 0; i < 300000 && e.phase != phaseWaiting; i++ {
		require.NoError(t, e.Tick())
	}
	s = e.Snapshot()
	require.Equal(t, "waiting", s.Phase)
	require.NotEmpty(t, s.NextMode)
	require.Contains(t, e.Status(), "Waiting: ")
}

func TestRunStopsOnCancel(t *testing.T) {
	e, err := New(Options{Pointer: &device.Recorder{}, Pixel: &device.MemoryPixel{}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx, time.Millisecond) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}
