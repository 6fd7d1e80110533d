// Package device declares the two hardware-facing interfaces the simulator
// drives: a relative pointer and a single RGB status pixel. Implementations
// range from in-memory fakes for tests to a Linux uinput-backed pointer.
package device

import "errors"

// ErrClosed is returned when a device is written after it has been torn
// down, or when a test fake is told to start failing.
var ErrClosed = errors.New("device: closed")

// MaxDelta is the largest per-call displacement a HID relative mouse report
// can carry on one axis. Callers split larger moves into multiple calls.
const MaxDelta = 127

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// Pointer consumes relative pointer displacements.
type Pointer interface {
	// Move shifts the pointer by (dx, dy). Both values must fit a signed
	// 8-bit HID report; use ClampDelta when in doubt.
	Move(dx, dy int) error
}

// Pixel is a single RGB LED with a write-then-commit contract: Fill and
// SetBrightness stage state, Show pushes it to the hardware.
type Pixel interface {
	SetBrightness(b float64)
	Brightness() float64
	Fill(c RGB)
	Show() error
}

// ClampDelta bounds a per-axis displacement to the HID report range.
func ClampDelta(v int) int {
	if v > MaxDelta {
		return MaxDelta
	}
	if v < -MaxDelta {
		return -MaxDelta
	}
	return v
}
