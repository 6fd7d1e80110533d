package device

// Recorder is a Pointer that keeps every displacement it receives. Used by
// tests and by headless dry runs.
type Recorder struct {
	Moves  [][2]int
	SumX   int
	SumY   int
	FailAt int // if > 0, the FailAt-th Move call returns ErrClosed
	Err    error
	calls  int
}

// Move records (dx, dy).
func (r *Recorder) Move(dx, dy int) error {
	r.calls++
	if r.FailAt > 0 && r.calls >= r.FailAt {
		if r.Err != nil {
			return r.Err
		}
		return ErrClosed
	}
	r.Moves = append(r.Moves, [2]int{dx, dy})
	r.SumX += dx
	r.SumY += dy
	return nil
}

// Reset clears recorded state.
func (r *Recorder) Reset() {
	r.Moves = nil
	r.SumX, r.SumY = 0, 0
	r.calls = 0
}

// NullPointer discards all movement. It stands in for the HID transport on
// hosts without a usable pointer device.
type NullPointer struct{}

func (NullPointer) Move(dx, dy int) error { return nil }

// MemoryPixel is a Pixel that remembers staged and shown state.
type MemoryPixel struct {
	brightness float64
	staged     RGB

	ShownColor      RGB
	ShownBrightness float64
	ShowCount       int
	ShowErr         error
}

func (p *MemoryPixel) SetBrightness(b float64) { p.brightness = b }
func (p *MemoryPixel) Brightness() float64     { return p.brightness }
func (p *MemoryPixel) Fill(c RGB)              { p.staged = c }

// Show commits the staged color and brightness.
func (p *MemoryPixel) Show() error {
	if p.ShowErr != nil {
		return p.ShowErr
	}
	p.ShownColor = p.staged
	p.ShownBrightness = p.brightness
	p.ShowCount++
	return nil
}
