// Package random implements the seeded pseudo-random source the motion
// engine draws from: a xorshift32 generator, a pooling wrapper, and a
// weighted chooser. All randomness in the firmware flows through one Pool so
// a run is reproducible from its seed.
package random

import "time"

// Source is a xorshift32 pseudo-random generator. It is deliberately small
// and branch-free; quality is plenty for motion jitter.
type Source struct {
	state uint32
}

// NewSource returns a Source seeded with seed. A zero seed is replaced with
// the current monotonic clock so the generator never locks up (xorshift has
// a fixed point at zero).
func NewSource(seed uint32) *Source {
	if seed == 0 {
		seed = uint32(time.Now().UnixNano()) | 1
	}
	return &Source{state: seed}
}

// Uint16 returns a pseudo-random value in [0, 65536).
func (s *Source) Uint16() uint32 {
	s.state ^= s.state << 13
	s.state ^= s.state >> 17
	s.state ^= s.state << 5
	return s.state & 0xFFFF
}

// Float64 returns a pseudo-random value in [0, 1).
func (s *Source) Float64() float64 {
	return float64(s.Uint16()) / 65536.0
}

// IntRange returns a pseudo-random integer in [a, b] inclusive.
func (s *Source) IntRange(a, b int) int {
	if b <= a {
		return a
	}
	size := b - a + 1
	return a + int(s.Uint16())*size/65536
}

// FloatRange returns a pseudo-random float in [a, b).
func (s *Source) FloatRange(a, b float64) float64 {
	return a + float64(s.Uint16())*(b-a)/65536
}

// Pool wraps a Source and counts draws. Every component shares one Pool so
// the draw order, and therefore the whole run, is a pure function of the
// seed.
type Pool struct {
	src   *Source
	draws uint64
}

// NewPool returns a Pool over a fresh Source seeded with seed.
func NewPool(seed uint32) *Pool {
	return &Pool{src: NewSource(seed)}
}

// Draws reports how many values have been taken from the pool.
func (p *Pool) Draws() uint64 { return p.draws }

// Float64 returns a pseudo-random value in [0, 1).
func (p *Pool) Float64() float64 {
	p.draws++
	return p.src.Float64()
}

// IntRange returns a pseudo-random integer in [a, b] inclusive.
func (p *Pool) IntRange(a, b int) int {
	p.draws++
	return p.src.IntRange(a, b)
}

// FloatRange returns a pseudo-random float in [a, b).
func (p *Pool) FloatRange(a, b float64) float64 {
	p.draws++
	return p.src.FloatRange(a, b)
}

// DurationRange returns a pseudo-random duration in [a, b).
func (p *Pool) DurationRange(a, b time.Duration) time.Duration {
	return time.Duration(p.FloatRange(float64(a), float64(b)))
}

// Choice returns a uniformly chosen index in [0, n). n must be positive.
func (p *Pool) Choice(n int) int {
	return p.IntRange(0, n-1)
}
