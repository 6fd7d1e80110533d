// Package fastmath provides cheap approximations for the math the motion
// engine runs every tick: table-based trig, fast square roots, quadratic
// Bezier evaluation, and easing curves.
package fastmath

import (
	"math"
	"sync"
)

const (
	lutSize    = 360
	degPerRad  = 180.0 / math.Pi
	radPerStep = math.Pi / 180.0
)

var (
	lutOnce sync.Once
	sinLUT  [lutSize]float64
	cosLUT  [lutSize]float64
)

func initLUT() {
	for i := 0; i < lutSize; i++ {
		rad := float64(i) * radPerStep
		sinLUT[i] = math.Sin(rad)
		cosLUT[i] = math.Cos(rad)
	}
}

func lutIndex(rad float64) int {
	deg := int(rad*degPerRad) % lutSize
	if deg < 0 {
		deg += lutSize
	}
	return deg
}

// Sin returns the sine of rad using a one-degree lookup table.
func Sin(rad float64) float64 {
	lutOnce.Do(initLUT)
	return sinLUT[lutIndex(rad)]
}

// Cos returns the cosine of rad using a one-degree lookup table.
func Cos(rad float64) float64 {
	lutOnce.Do(initLUT)
	return cosLUT[lutIndex(rad)]
}

// InvSqrt computes an approximate 1/sqrt(x) with one Newton refinement.
func InvSqrt(x float64) float64 {
	if x <= 0 {
		return 0
	}
	x2 := x * 0.5
	f := float32(x)
	i := math.Float32bits(f)
	i = 0x5f3759df - (i >> 1)
	y := float64(math.Float32frombits(i))
	y = y * (1.5 - x2*y*y)
	return y
}

// SqrtInt computes an integer square root using four Newton iterations.
func SqrtInt(x int) int {
	if x <= 0 {
		return 0
	}
	if x == 1 {
		return 1
	}
	guess := x >> 1
	if guess == 0 {
		guess = 1
	}
	for i := 0; i < 4; i++ {
		guess = (guess + x/guess) >> 1
	}
	return guess
}

// Dist approximates the length of (dx,dy) as max + min/2, the classic
// octagonal distance. Good to within ~12% and needs no multiply.
func Dist(dx, dy int) int {
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx < dy {
		dx, dy = dy, dx
	}
	return dx + (dy >> 1)
}

// QuadBezier evaluates a quadratic Bezier curve with control point p1 at t.
func QuadBezier(t, p0, p1, p2 float64) float64 {
	u := 1 - t
	return u*u*p0 + 2*u*t*p1 + t*t*p2
}

// EaseInOutCubic maps t in [0,1] onto a smooth accelerate/decelerate curve.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	p := 2*t - 2
	return 1 + p*p*p/2
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
