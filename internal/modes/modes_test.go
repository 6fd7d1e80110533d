package modes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fidget/internal/config"
	"fidget/internal/device"
	"fidget/internal/motion"
	"fidget/internal/noise"
	"fidget/internal/random"
	"fidget/internal/stats"
)

// fakeClock advances a fixed amount on every Now call so dwell timers
// expire without real sleeping.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func newTestEnv(seed uint32) (Env, *device.Recorder, *fakeClock) {
	rec := &device.Recorder{}
	rnd := random.NewPool(seed)
	tuning := config.DefaultTuning()
	clock := &fakeClock{t: time.Unix(1000, 0), step: 20 * time.Millisecond}
	env := Env{
		Mover:   motion.New(rec, rnd, tuning.Motion),
		Pointer: rec,
		Noise:   noise.NewGenerator(seed),
		Rand:    rnd,
		Tuning:  &tuning.Modes,
		Stats:   stats.New(true),
		Now:     clock.Now,
	}
	return env, rec, clock
}

// runToCompletion drives Update until the mode reports done, with a bound
// generous enough for the longest dwell under the fake clock.
func runToCompletion(t *testing.T, m Mode) int {
	t.Helper()
	for i := 0; i < 200000; i++ {
		done, err := m.Update()
		require.NoError(t, err)
		if done {
			return i
		}
	}
	t.Fatal("mode never completed")
	return 0
}

func TestIDString(t *testing.T) {
	want := map[ID]string{
		WebBrowsing:  "web_browsing",
		PageScanning: "page_scanning",
		Exploratory:  "exploratory_move",
		RandomMove:   "random_movement",
		Circular:     "circular_move",
		TargetFocus:  "target_focus",
	}
	for id, name := range want {
		require.Equal(t, name, id.String())
	}
	require.Equal(t, "mode(99)", ID(99).String())
}

func TestNewCoversAllModes(t *testing.T) {
	for _, id := range All() {
		env, _, _ := newTestEnv(7)
		m, err := New(id, env)
		require.NoError(t, err, id.String())
		require.NotNil(t, m, id.String())
	}
}

func TestNewRejectsUnknownID(t *testing.T) {
	env, _, _ := newTestEnv(1)
	_, err := New(ID(42), env)
	require.Error(t, err)
}

func TestModesRunToCompletion(t *testing.T) {
	for _, id := range All() {
		id := id
		t.Run(id.String(), func(t *testing.T) {
			for seed := uint32(1); seed <= 5; seed++ {
				env, rec, _ := newTestEnv(seed)
				m, err := New(id, env)
				require.NoError(t, err)
				require.NoError(t, m.Start())
				runToCompletion(t, m)
				require.NotEmpty(t, rec.Moves, "seed %d produced no pointer events", seed)
			}
		})
	}
}

func TestCompletedModeStaysQuiet(t *testing.T) {
	for _, id := range All() {
		env, rec, _ := newTestEnv(3)
		m, err := New(id, env)
		require.NoError(t, err)
		require.NoError(t, m.Start())
		runToCompletion(t, m)

		before := len(rec.Moves)
		for i := 0; i < 50; i++ {
			done, err := m.Update()
			require.NoError(t, err)
			require.True(t, done)
		}
		require.Equal(t, before, len(rec.Moves), "%s moved after completion", id)
	}
}

func TestModeDeltasStayInReportRange(t *testing.T) {
	for _, id := range All() {
		for seed := uint32(1); seed <= 3; seed++ {
			env, rec, _ := newTestEnv(seed)
			m, err := New(id, env)
			require.NoError(t, err)
			require.NoError(t, m.Start())
			runToCompletion(t, m)
			for _, mv := range rec.Moves {
				if mv[0] < -device.MaxDelta || mv[0] > device.MaxDelta ||
					mv[1] < -device.MaxDelta || mv[1] > device.MaxDelta {
					t.Fatalf("%s seed %d emitted out-of-range delta %v", id, seed, mv)
				}
			}
		}
	}
}

func TestWaitTimeRangeMatchesTuning(t *testing.T) {
	env, _, _ := newTestEnv(1)
	cases := []struct {
		id ID
		r  config.Range
	}{
		{WebBrowsing, env.Tuning.Web.Wait},
		{PageScanning, env.Tuning.Scan.Wait},
		{Exploratory, env.Tuning.Exploratory.Wait},
		{RandomMove, env.Tuning.Random.Wait},
		{Circular, env.Tuning.Circle.Wait},
		{TargetFocus, env.Tuning.Focus.Wait},
	}
	for _, tc := range cases {
		m, err := New(tc.id, env)
		require.NoError(t, err)
		lo, hi := m.WaitTimeRange()
		wantLo, wantHi := tc.r.Durations()
		require.Equal(t, wantLo, lo, tc.id.String())
		require.Equal(t, wantHi, hi, tc.id.String())
	}
}

func TestWeightedItemsCarryConfiguredWeights(t *testing.T) {
	w := config.DefaultTuning().Modes.Weights
	items := WeightedItems(w)
	require.Len(t, items, len(All()))

	total := 0
	for _, it := range items {
		total += it.Weight
	}
	require.Equal(t, w.WebBrowsing+w.PageScanning+w.Exploratory+w.RandomMove+w.Circular+w.TargetFocus, total)
}

func TestEnvMoveSplitsLargeDeltas(t *testing.T) {
	env, rec, _ := newTestEnv(1)
	require.NoError(t, env.move(300, -200))
	sumX, sumY := 0, 0
	for _, mv := range rec.Moves {
		require.LessOrEqual(t, mv[0], device.MaxDelta)
		require.GreaterOrEqual(t, mv[0], -device.MaxDelta)
		sumX += mv[0]
		sumY += mv[1]
	}
	require.Equal(t, 300, sumX)
	require.Equal(t, -200, sumY)
}

func TestDwellStartsLazily(t *testing.T) {
	rnd := random.NewPool(1)
	d := newDwell(rnd, config.Range{Min: 1, Max: 1})

	base := time.Unix(2000, 0)
	require.False(t, d.expired(base))
	require.False(t, d.expired(base.Add(500*time.Millisecond)))
	require.True(t, d.expired(base.Add(time.Second)))
}

func TestZeroDwellExpiresImmediately(t *testing.T) {
	rnd := random.NewPool(1)
	d := newDwell(rnd, config.Range{})
	require.True(t, d.expired(time.Unix(2000, 0)))
}
