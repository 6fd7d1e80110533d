package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Range is a named (min, max) float pair. Every randomized parameter the
// engine consumes is declared as one of these.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Durations interprets the range as seconds.
func (r Range) Durations() (time.Duration, time.Duration) {
	return time.Duration(r.Min * float64(time.Second)), time.Duration(r.Max * float64(time.Second))
}

// IntRange is a named (min, max) integer pair, bounds inclusive.
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// MotionTuning shapes the Mover's stepping and velocity profile.
type MotionTuning struct {
	BaseStepDistance      float64  `yaml:"base_step_distance"`
	MinSteps              int      `yaml:"min_steps"`
	StepJitter            Range    `yaml:"step_jitter"`
	AccelRatio            float64  `yaml:"accel_ratio"`
	AccelStartFactor      float64  `yaml:"accel_start_factor"`
	DecelFloor            float64  `yaml:"decel_floor"`
	CruiseJitter          Range    `yaml:"cruise_jitter"`
	SmallBaseDistance     float64  `yaml:"small_base_distance"`
	SmallMinSteps         int      `yaml:"small_min_steps"`
	SmallStepJitter       Range    `yaml:"small_step_jitter"`
	SmallOffset           Range    `yaml:"small_offset"`
	AdjustInterval        IntRange `yaml:"adjust_interval"`
	LargeOffset           Range    `yaml:"large_offset"`
	ThinkPauseProbability float64  `yaml:"think_pause_probability"`
}

// ModeWeights are the relative selection weights of the six modes.
type ModeWeights struct {
	WebBrowsing  int `yaml:"web_browsing"`
	PageScanning int `yaml:"page_scanning"`
	Exploratory  int `yaml:"exploratory"`
	RandomMove   int `yaml:"random_move"`
	Circular     int `yaml:"circular"`
	TargetFocus  int `yaml:"target_focus"`
}

// WebTuning parameterizes the web-browsing mode.
type WebTuning struct {
	TargetX    IntRange `yaml:"target_x"`
	TargetY    IntRange `yaml:"target_y"`
	PathSteps  IntRange `yaml:"path_steps"`
	SmallMoves IntRange `yaml:"small_moves"`
	SmallRange IntRange `yaml:"small_range"`
	Dwell      Range    `yaml:"dwell"`
	Wait       Range    `yaml:"wait"`
	Duration   Range    `yaml:"duration"`
}

// ScanTuning parameterizes the page-scanning mode.
type ScanTuning struct {
	StartX       IntRange `yaml:"start_x"`
	StartY       IntRange `yaml:"start_y"`
	EndX         IntRange `yaml:"end_x"`
	StepDistance float64  `yaml:"step_distance"`
	MinSteps     int      `yaml:"min_steps"`
	WindStrength float64  `yaml:"wind_strength"`
	SubInterval  IntRange `yaml:"sub_interval"`
	SlowFactor   float64  `yaml:"slow_factor"`
	FastFactor   float64  `yaml:"fast_factor"`
	Passes       IntRange `yaml:"passes"`
	Dwell        Range    `yaml:"dwell"`
	Wait         Range    `yaml:"wait"`
	Duration     Range    `yaml:"duration"`
}

// RoamTuning parameterizes the exploratory and random-movement modes, which
// differ only in their numbers.
type RoamTuning struct {
	Target   IntRange `yaml:"target"`
	Moves    IntRange `yaml:"moves"`
	Radius   int      `yaml:"radius"`
	Cooldown Range    `yaml:"cooldown"`
	Dwell    Range    `yaml:"dwell"`
	Wait     Range    `yaml:"wait"`
	Duration Range    `yaml:"duration"`
}

// CircleTuning parameterizes the circular mode.
type CircleTuning struct {
	Center                 IntRange `yaml:"center"`
	BaseRadius             IntRange `yaml:"base_radius"`
	RadiusJitter           Range    `yaml:"radius_jitter"`
	AngleStep              Range    `yaml:"angle_step"`
	Steps                  IntRange `yaml:"steps"`
	SpeedChangeProbability float64  `yaml:"speed_change_probability"`
	AngleDrift             Range    `yaml:"angle_drift"`
	NoiseAmplitude         float64  `yaml:"noise_amplitude"`
	Dwell                  Range    `yaml:"dwell"`
	Wait                   Range    `yaml:"wait"`
	Duration               Range    `yaml:"duration"`
}

// FocusTuning parameterizes the target-focus mode.
type FocusTuning struct {
	Target           IntRange `yaml:"target"`
	MicroMoves       IntRange `yaml:"micro_moves"`
	PullStrength     float64  `yaml:"pull_strength"`
	NudgeProbability float64  `yaml:"nudge_probability"`
	NoiseAmplitude   float64  `yaml:"noise_amplitude"`
	Dwell            Range    `yaml:"dwell"`
	Wait             Range    `yaml:"wait"`
	Duration         Range    `yaml:"duration"`
}

// ModeTuning groups the per-mode knobs.
type ModeTuning struct {
	Weights     ModeWeights  `yaml:"weights"`
	Web         WebTuning    `yaml:"web_browsing"`
	Scan        ScanTuning   `yaml:"page_scanning"`
	Exploratory RoamTuning   `yaml:"exploratory"`
	Random      RoamTuning   `yaml:"random_move"`
	Circle      CircleTuning `yaml:"circular"`
	Focus       FocusTuning  `yaml:"target_focus"`
}

// LEDTuning shapes the status pixel behavior.
type LEDTuning struct {
	ColorFadeSeconds      float64 `yaml:"color_fade_seconds"`
	BrightnessFadeSeconds float64 `yaml:"brightness_fade_seconds"`
	BreatheMinPercent     int     `yaml:"breathe_min_percent"`
	BreatheMaxPercent     int     `yaml:"breathe_max_percent"`
	BreatheRate           float64 `yaml:"breathe_rate"` // percent points per second
	DeltaClampSeconds     float64 `yaml:"delta_clamp_seconds"`
}

// AppTuning shapes the orchestrator's sequencing.
type AppTuning struct {
	ContinuousSwitchProbability float64 `yaml:"continuous_switch_probability"`
	BreathePulseSeconds         float64 `yaml:"breathe_pulse_seconds"`
	ReportIntervalSeconds       float64 `yaml:"report_interval_seconds"`
}

// Tuning holds every tunable knob of the simulator. The zero value is not
// usable; start from DefaultTuning.
type Tuning struct {
	Motion MotionTuning `yaml:"motion"`
	Modes  ModeTuning   `yaml:"modes"`
	LED    LEDTuning    `yaml:"led"`
	App    AppTuning    `yaml:"app"`
}

// DefaultTuning returns the stock parameter set.
func DefaultTuning() *Tuning {
	return &Tuning{
		Motion: MotionTuning{
			BaseStepDistance:      10,
			MinSteps:              5,
			StepJitter:            Range{0.8, 1.2},
			AccelRatio:            0.3,
			AccelStartFactor:      0.3,
			DecelFloor:            0.2,
			CruiseJitter:          Range{-0.1, 0.1},
			SmallBaseDistance:     3,
			SmallMinSteps:         5,
			SmallStepJitter:       Range{0.8, 1.2},
			SmallOffset:           Range{-0.5, 0.5},
			AdjustInterval:        IntRange{3, 8},
			LargeOffset:           Range{-2, 2},
			ThinkPauseProbability: 0.05,
		},
		Modes: ModeTuning{
			Weights: ModeWeights{
				WebBrowsing:  25,
				PageScanning: 20,
				Exploratory:  20,
				RandomMove:   15,
				Circular:     10,
				TargetFocus:  10,
			},
			Web: WebTuning{
				TargetX:    IntRange{-400, 400},
				TargetY:    IntRange{-100, 100},
				PathSteps:  IntRange{15, 40},
				SmallMoves: IntRange{6, 12},
				SmallRange: IntRange{-10, 10},
				Dwell:      Range{2, 6},
				Wait:       Range{1.5, 4},
				Duration:   Range{8, 25},
			},
			Scan: ScanTuning{
				StartX:       IntRange{-150, -50},
				StartY:       IntRange{-600, 600},
				EndX:         IntRange{600, 800},
				StepDistance: 4,
				MinSteps:     30,
				WindStrength: 3,
				SubInterval:  IntRange{10, 50},
				SlowFactor:   0.3,
				FastFactor:   1.8,
				Passes:       IntRange{1, 3},
				Dwell:        Range{1, 4},
				Wait:         Range{1, 3},
				Duration:     Range{6, 20},
			},
			Exploratory: RoamTuning{
				Target:   IntRange{-200, 200},
				Moves:    IntRange{2, 6},
				Radius:   20,
				Cooldown: Range{0.2, 0.6},
				Dwell:    Range{2, 5},
				Wait:     Range{1, 3},
				Duration: Range{5, 15},
			},
			Random: RoamTuning{
				Target:   IntRange{-150, 150},
				Moves:    IntRange{3, 10},
				Radius:   3,
				Cooldown: Range{0.05, 0.2},
				Dwell:    Range{1, 3},
				Wait:     Range{0.5, 2},
				Duration: Range{4, 12},
			},
			Circle: CircleTuning{
				Center:                 IntRange{-600, 600},
				BaseRadius:             IntRange{30, 100},
				RadiusJitter:           Range{0.7, 1.3},
				AngleStep:              Range{0.05, 0.25},
				Steps:                  IntRange{30, 70},
				SpeedChangeProbability: 0.1,
				AngleDrift:             Range{0.9, 1.1},
				NoiseAmplitude:         2,
				Dwell:                  Range{1, 4},
				Wait:                   Range{1, 2.5},
				Duration:               Range{5, 15},
			},
			Focus: FocusTuning{
				Target:           IntRange{-400, 400},
				MicroMoves:       IntRange{2, 7},
				PullStrength:     0.15,
				NudgeProbability: 0.3,
				NoiseAmplitude:   3,
				Dwell:            Range{3, 8},
				Wait:             Range{2, 5},
				Duration:         Range{6, 18},
			},
		},
		LED: LEDTuning{
			ColorFadeSeconds:      2.0,
			BrightnessFadeSeconds: 0.5,
			BreatheMinPercent:     10,
			BreatheMaxPercent:     100,
			BreatheRate:           200,
			DeltaClampSeconds:     0.1,
		},
		App: AppTuning{
			ContinuousSwitchProbability: 0.3,
			BreathePulseSeconds:         0.5,
			ReportIntervalSeconds:       60,
		},
	}
}

// LoadTuning reads a YAML tuning file layered over the defaults. A missing
// file is not an error; the defaults are returned unchanged.
func LoadTuning(path string) (*Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return t, nil
		}
		return nil, fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(raw, t); err != nil {
		return nil, fmt.Errorf("parse tuning yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate rejects parameter sets the engine cannot run with.
func (t *Tuning) Validate() error {
	if t.Motion.BaseStepDistance <= 0 {
		return errors.New("tuning: motion.base_step_distance must be positive")
	}
	if t.Motion.MinSteps < 1 {
		return errors.New("tuning: motion.min_steps must be at least 1")
	}
	if t.Motion.AccelRatio <= 0 || t.Motion.AccelRatio >= 0.5 {
		return errors.New("tuning: motion.accel_ratio must be in (0, 0.5)")
	}
	if t.LED.BreatheMinPercent < 0 || t.LED.BreatheMaxPercent > 100 ||
		t.LED.BreatheMinPercent >= t.LED.BreatheMaxPercent {
		return errors.New("tuning: led breathe bounds must satisfy 0 <= min < max <= 100")
	}
	w := t.Modes.Weights
	if w.WebBrowsing+w.PageScanning+w.Exploratory+w.RandomMove+w.Circular+w.TargetFocus <= 0 {
		return errors.New("tuning: mode weights must sum to a positive total")
	}
	return nil
}

// Marshal renders the tuning as YAML, used by gen-docs to emit a starter
// file.
func (t *Tuning) Marshal() ([]byte, error) {
	return yaml.Marshal(t)
}
