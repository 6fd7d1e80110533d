// Package noise provides hash-based 2D gradient and value noise. Nothing is
// precomputed; every sample is derived from integer hashes so the generator
// stays allocation-free in the control loop.
package noise

import "math"

// Hash primes for lattice coordinates.
const (
	hashX = 73856093
	hashY = 19349663
)

var gradients = [4][2]float64{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Generator produces repeatable noise for a given seed. Two generators with
// the same seed emit identical fields.
type Generator struct {
	seed uint32
}

// NewGenerator returns a noise generator salted with seed.
func NewGenerator(seed uint32) *Generator {
	return &Generator{seed: seed}
}

func (g *Generator) hash(ix, iy int) uint32 {
	return (uint32(ix)*hashX ^ uint32(iy)*hashY) + g.seed*0x9e3779b9
}

func fade(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Perlin2D samples gradient noise at (x, y) scaled by frequency, summing
// octaves with the given persistence. The result is normalized to [-1, 1].
func (g *Generator) Perlin2D(x, y, frequency float64, octaves int, persistence float64) float64 {
	if octaves < 1 {
		octaves = 1
	}

	total := 0.0
	amplitude := 1.0
	maxValue := 0.0

	for o := 0; o < octaves; o++ {
		sx := x * frequency
		sy := y * frequency

		xi := int(math.Floor(sx))
		yi := int(math.Floor(sy))
		xf := sx - float64(xi)
		yf := sy - float64(yi)

		g00 := gradients[g.hash(xi, yi)%4]
		g10 := gradients[g.hash(xi+1, yi)%4]
		g01 := gradients[g.hash(xi, yi+1)%4]
		g11 := gradients[g.hash(xi+1, yi+1)%4]

		n00 := g00[0]*xf + g00[1]*yf
		n10 := g10[0]*(xf-1) + g10[1]*yf
		n01 := g01[0]*xf + g01[1]*(yf-1)
		n11 := g11[0]*(xf-1) + g11[1]*(yf-1)

		u := fade(xf)
		v := fade(yf)

		total += lerp(lerp(n00, n10, u), lerp(n01, n11, u), v) * amplitude

		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	if maxValue == 0 {
		return 0
	}
	return total / maxValue
}

// Value2D samples value noise at (x, y) scaled by frequency. The result lies
// in [0, 1).
func (g *Generator) Value2D(x, y, frequency float64) float64 {
	sx := x * frequency
	sy := y * frequency

	xi := int(math.Floor(sx))
	yi := int(math.Floor(sy))
	xf := sx - float64(xi)
	yf := sy - float64(yi)

	v00 := g.lattice(xi, yi)
	v10 := g.lattice(xi+1, yi)
	v01 := g.lattice(xi, yi+1)
	v11 := g.lattice(xi+1, yi+1)

	u := fade(xf)
	v := fade(yf)

	return lerp(lerp(v00, v10, u), lerp(v01, v11, u), v)
}

// lattice maps an integer grid point to a pseudo-random value in [0, 1).
func (g *Generator) lattice(ix, iy int) float64 {
	n := g.hash(ix, iy)
	s := math.Sin(float64(n)) * 43758.5453
	return s - math.Floor(s)
}

// Turbulence accumulates absolute Perlin octaves, useful for flicker-style
// modulation.
func (g *Generator) Turbulence(x, y, frequency float64, octaves int) float64 {
	value := 0.0
	amplitude := 1.0
	freq := frequency

	for o := 0; o < octaves; o++ {
		value += math.Abs(g.Perlin2D(x*freq, y*freq, 1, 1, 0.5)) * amplitude
		freq *= 2
		amplitude *= 0.5
	}
	return value
}
