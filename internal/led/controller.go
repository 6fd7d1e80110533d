// Package led animates the single status pixel: a color per movement mode
// with eased cross-fades between them, a flat bright level while motion is
// running, and a breathing oscillation while idle.
package led

import (
	"time"

	"fidget/internal/config"
	"fidget/internal/device"
	"fidget/internal/fastmath"
	"fidget/internal/modes"
	"fidget/internal/stats"
)

// Mode colors. Off is both the boot state and the fallback for unknown modes.
var (
	colorOff = device.RGB{}

	modeColors = map[modes.ID]device.RGB{
		modes.WebBrowsing:  {R: 0, G: 120, B: 255},
		modes.PageScanning: {R: 0, G: 255, B: 120},
		modes.Exploratory:  {R: 255, G: 180, B: 0},
		modes.RandomMove:   {R: 180, G: 0, B: 255},
		modes.Circular:     {R: 0, G: 255, B: 255},
		modes.TargetFocus:  {R: 255, G: 60, B: 0},
	}

	errorColor = device.RGB{R: 255}
)

// ModeColor returns the pixel color assigned to a movement mode.
func ModeColor(id modes.ID) device.RGB {
	return modeColors[id]
}

// Controller owns every piece of pixel timing state. All animation is driven
// by Update, which performs one bounded unit of work per call; nothing here
// blocks except the terminal BlinkError pattern.
type Controller struct {
	pixels device.Pixel
	stats  *stats.Stats
	tuning config.LEDTuning
	now    func() time.Time

	lastTick time.Time

	// Breathing state, in integer percent like the brightness transitions.
	brightnessPct int
	breatheDir    int

	brightnessTransition bool
	brightnessStart      int
	brightnessTarget     int
	brightnessSince      time.Time
	brightnessFade       float64 // seconds, per transition

	colorCurrent    device.RGB
	colorTarget     device.RGB
	colorTransition bool
	colorSince      time.Time

	active bool

	lastShownColor      device.RGB
	lastShownBrightness float64
	shownOnce           bool
}

// New creates a Controller in the idle state showing no color. A nil now
// falls back to the wall clock.
func New(pixels device.Pixel, st *stats.Stats, tuning config.LEDTuning, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{
		pixels:        pixels,
		stats:         st,
		tuning:        tuning,
		now:           now,
		lastTick:      now(),
		brightnessPct: tuning.BreatheMaxPercent,
		breatheDir:    -1,
		colorCurrent:  colorOff,
		colorTarget:   colorOff,
	}
}

// SetActive switches between the flat-brightness active state and the idle
// breathing state. Going idle to active eases brightness up to max instead
// of snapping.
func (c *Controller) SetActive(active bool) {
	if active && !c.active {
		c.brightnessStart = c.brightnessPct
		c.brightnessTarget = c.tuning.BreatheMaxPercent
		c.brightnessTransition = true
		c.brightnessSince = c.now()
		c.brightnessFade = c.tuning.BrightnessFadeSeconds
	}
	c.active = active
}

// Active reports whether the controller is in the flat-brightness state.
func (c *Controller) Active() bool { return c.active }

// Pulse restarts the brightness ease from the breathing floor over the given
// duration, a brief flourish used at mode entry.
func (c *Controller) Pulse(d time.Duration) {
	c.brightnessStart = c.tuning.BreatheMinPercent
	c.brightnessTarget = c.tuning.BreatheMaxPercent
	c.brightnessTransition = true
	c.brightnessSince = c.now()
	c.brightnessFade = d.Seconds()
	if c.brightnessFade <= 0 {
		c.brightnessFade = c.tuning.BrightnessFadeSeconds
	}
}

// SetNextColor starts the cross-fade toward the given mode's color and
// counts the switch. Setting the color the controller is already fading to
// is a no-op.
func (c *Controller) SetNextColor(id modes.ID) device.RGB {
	c.stats.RecordMode(id.String())

	color := ModeColor(id)
	if color != c.colorTarget {
		c.colorCurrent = c.DisplayColor()
		c.colorTarget = color
		c.colorTransition = true
		c.colorSince = c.now()
	}
	return color
}

// DisplayColor is the color the pixel should show right now, mid-fade or
// settled.
func (c *Controller) DisplayColor() device.RGB {
	if !c.colorTransition {
		return c.colorCurrent
	}
	elapsed := c.now().Sub(c.colorSince).Seconds()
	dur := c.tuning.ColorFadeSeconds
	if elapsed >= dur {
		return c.colorTarget
	}
	return lerpColor(c.colorCurrent, c.colorTarget, fastmath.EaseInOutCubic(elapsed/dur))
}

// BrightnessPercent is the current brightness level in integer percent.
func (c *Controller) BrightnessPercent() int { return c.brightnessPct }

// Update advances all running fades plus the breathing oscillation by one
// frame and pushes the result to the pixel. The write is elided when nothing
// visible changed. The time delta is clamped so a scheduling hiccup cannot
// make brightness jump past its bounds.
func (c *Controller) Update() error {
	now := c.now()
	dt := now.Sub(c.lastTick).Seconds()
	if limit := c.tuning.DeltaClampSeconds; dt > limit {
		dt = limit
	}
	c.lastTick = now

	display := c.colorCurrent
	if c.colorTransition {
		elapsed := now.Sub(c.colorSince).Seconds()
		if elapsed >= c.tuning.ColorFadeSeconds {
			c.colorTransition = false
			c.colorCurrent = c.colorTarget
			display = c.colorTarget
		} else {
			t := fastmath.EaseInOutCubic(elapsed / c.tuning.ColorFadeSeconds)
			display = lerpColor(c.colorCurrent, c.colorTarget, t)
		}
	}

	switch {
	case c.brightnessTransition:
		elapsed := now.Sub(c.brightnessSince).Seconds()
		if elapsed >= c.brightnessFade {
			c.brightnessTransition = false
			c.brightnessPct = c.brightnessTarget
		} else {
			t := elapsed / c.brightnessFade
			c.brightnessPct = c.brightnessStart + int(float64(c.brightnessTarget-c.brightnessStart)*t)
		}
	case c.active:
		c.brightnessPct = c.tuning.BreatheMaxPercent
	default:
		c.brightnessPct += c.breatheDir * int(dt*c.tuning.BreatheRate)
		if c.brightnessPct >= c.tuning.BreatheMaxPercent {
			c.brightnessPct = c.tuning.BreatheMaxPercent
			c.breatheDir = -1
		} else if c.brightnessPct <= c.tuning.BreatheMinPercent {
			c.brightnessPct = c.tuning.BreatheMinPercent
			c.breatheDir = 1
		}
	}

	return c.show(display, float64(c.brightnessPct)*0.01)
}

// show pushes color and brightness to the hardware, skipping the commit when
// the visible state is unchanged.
func (c *Controller) show(color device.RGB, brightness float64) error {
	dirty := !c.shownOnce
	if brightness != c.lastShownBrightness {
		c.pixels.SetBrightness(brightness)
		dirty = true
	}
	if color != c.lastShownColor {
		c.pixels.Fill(color)
		dirty = true
	}
	if !dirty {
		return nil
	}
	if err := c.pixels.Show(); err != nil {
		return err
	}
	c.lastShownColor = color
	c.lastShownBrightness = brightness
	c.shownOnce = true
	return nil
}

// BlinkError renders the fatal-error pattern: a run of hard red flashes.
// This is the one place the controller blocks; it runs only on the way out.
func (c *Controller) BlinkError(flashes int, interval time.Duration) {
	c.pixels.SetBrightness(1)
	for i := 0; i < flashes; i++ {
		c.pixels.Fill(errorColor)
		_ = c.pixels.Show()
		time.Sleep(interval)
		c.pixels.Fill(colorOff)
		_ = c.pixels.Show()
		time.Sleep(interval)
	}
}

func lerpColor(a, b device.RGB, t float64) device.RGB {
	return device.RGB{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}
