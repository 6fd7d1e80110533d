package motion

import (
	"errors"
	"math"
	"testing"

	"fidget/internal/config"
	"fidget/internal/device"
	"fidget/internal/random"
)

func newTestMover(seed uint32) (*Mover, *device.Recorder) {
	rec := &device.Recorder{}
	rnd := random.NewPool(seed)
	return New(rec, rnd, config.DefaultTuning().Motion), rec
}

// drain steps the mover until it reports completion, with a safety bound.
func drain(t *testing.T, m *Mover) int {
	t.Helper()
	for i := 0; i < 100000; i++ {
		done, err := m.Step()
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		if done {
			return i
		}
	}
	t.Fatal("mover never completed")
	return 0
}

func TestQuickMoveZeroDisplacementIsNoop(t *testing.T) {
	m, rec := newTestMover(1)
	if err := m.QuickMoveTo(0, 0); err != nil {
		t.Fatalf("QuickMoveTo(0,0): %v", err)
	}
	if m.Active() {
		t.Fatal("mover active after zero displacement")
	}
	done, err := m.Step()
	if err != nil || !done {
		t.Fatalf("Step on inactive mover = (%v, %v), want (true, nil)", done, err)
	}
	if len(rec.Moves) != 0 {
		t.Errorf("emitted %d moves for zero displacement", len(rec.Moves))
	}
}

func TestQuickMoveDeltaConservation(t *testing.T) {
	targets := [][2]int{
		{300, 0}, {0, 300}, {-120, 73}, {5, -5}, {1, 1}, {-640, -480}, {1000, 250},
	}
	for seed := uint32(1); seed <= 5; seed++ {
		for _, tgt := range targets {
			m, rec := newTestMover(seed)
			if err := m.QuickMoveTo(tgt[0], tgt[1]); err != nil {
				t.Fatalf("QuickMoveTo(%v): %v", tgt, err)
			}
			drain(t, m)
			if dx := rec.SumX - tgt[0]; dx < -1 || dx > 1 {
				t.Errorf("seed %d target %v: sum X = %d", seed, tgt, rec.SumX)
			}
			if dy := rec.SumY - tgt[1]; dy < -1 || dy > 1 {
				t.Errorf("seed %d target %v: sum Y = %d", seed, tgt, rec.SumY)
			}
		}
	}
}

func TestQuickMoveStepCountBounds(t *testing.T) {
	// base-step 10 over 300 units with jitter in [0.8, 1.2] must yield
	// between 24 and 36 stepped deltas.
	for seed := uint32(1); seed <= 50; seed++ {
		m, rec := newTestMover(seed)
		if err := m.QuickMoveTo(300, 0); err != nil {
			t.Fatalf("QuickMoveTo: %v", err)
		}
		drain(t, m)
		n := len(rec.Moves)
		if n < 24 || n > 36 {
			t.Errorf("seed %d: %d steps, want within [24, 36]", seed, n)
		}
	}
}

func TestQuickMoveDeltasFitHIDReports(t *testing.T) {
	m, rec := newTestMover(7)
	if err := m.QuickMoveTo(2000, -2000); err != nil {
		t.Fatalf("QuickMoveTo: %v", err)
	}
	drain(t, m)
	for _, d := range rec.Moves {
		if d[0] > device.MaxDelta || d[0] < -device.MaxDelta ||
			d[1] > device.MaxDelta || d[1] < -device.MaxDelta {
			t.Fatalf("delta %v exceeds HID report range", d)
		}
	}
}

func TestQuickMoveRejectsConcurrentRequest(t *testing.T) {
	m, _ := newTestMover(3)
	if err := m.QuickMoveTo(100, 100); err != nil {
		t.Fatalf("first move: %v", err)
	}
	if err := m.QuickMoveTo(50, 50); !errors.Is(err, ErrBusy) {
		t.Fatalf("second move err = %v, want ErrBusy", err)
	}
	if err := m.SmoothMoveSmall(0, 0, 10, 10); !errors.Is(err, ErrBusy) {
		t.Fatalf("small move err = %v, want ErrBusy", err)
	}
}

func TestStepIdempotentAfterCompletion(t *testing.T) {
	m, rec := newTestMover(5)
	if err := m.QuickMoveTo(40, 20); err != nil {
		t.Fatalf("QuickMoveTo: %v", err)
	}
	drain(t, m)
	emitted := len(rec.Moves)
	for i := 0; i < 10; i++ {
		done, err := m.Step()
		if err != nil || !done {
			t.Fatalf("Step after completion = (%v, %v)", done, err)
		}
	}
	if len(rec.Moves) != emitted {
		t.Errorf("moves emitted after completion: %d -> %d", emitted, len(rec.Moves))
	}
}

func TestSmoothMoveSmallLandsNearTarget(t *testing.T) {
	for seed := uint32(1); seed <= 20; seed++ {
		m, rec := newTestMover(seed)
		if err := m.SmoothMoveSmall(0, 0, 17, -23); err != nil {
			t.Fatalf("SmoothMoveSmall: %v", err)
		}
		drain(t, m)
		if math.Abs(float64(rec.SumX)-17) > 0.5+1e-9 {
			t.Errorf("seed %d: X landed at %d, want ≈ 17", seed, rec.SumX)
		}
		if math.Abs(float64(rec.SumY)+23) > 0.5+1e-9 {
			t.Errorf("seed %d: Y landed at %d, want ≈ -23", seed, rec.SumY)
		}
	}
}

func TestSmoothMoveSmallZeroDistanceIsNoop(t *testing.T) {
	m, rec := newTestMover(2)
	if err := m.SmoothMoveSmall(5, 5, 5, 5); err != nil {
		t.Fatalf("SmoothMoveSmall: %v", err)
	}
	if m.Active() || len(rec.Moves) != 0 {
		t.Error("zero-distance small move should be a no-op")
	}
}

func TestStepPropagatesSinkError(t *testing.T) {
	sentinel := errors.New("usb detached")
	rec := &device.Recorder{FailAt: 3, Err: sentinel}
	m := New(rec, random.NewPool(9), config.DefaultTuning().Motion)
	if err := m.QuickMoveTo(200, 0); err != nil {
		t.Fatalf("QuickMoveTo: %v", err)
	}
	var got error
	for i := 0; i < 1000; i++ {
		done, err := m.Step()
		if err != nil {
			got = err
			break
		}
		if done {
			break
		}
	}
	if !errors.Is(got, sentinel) {
		t.Fatalf("sink error not propagated, got %v", got)
	}
}
