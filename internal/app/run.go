package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"fidget/internal/device"
)

// Run drives the engine until the context is canceled or a device error
// aborts the loop. One Tick per timer fire preserves the one-step-per-tick
// contract of every component underneath.
//
// On a device error the LED renders the red error pattern before Run
// returns; a canceled context blanks the pixel and returns nil.
func (e *Engine) Run(ctx context.Context, tick time.Duration) error {
	if tick <= 0 {
		tick = DefaultTick
	}
	if err := e.Start(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.blank()
			log.Printf("engine: stopped")
			return nil
		case <-ticker.C:
			if err := e.Tick(); err != nil {
				log.Printf("engine: fatal: %v", err)
				e.led.BlinkError(errorBlinkCount, errorBlinkInterval)
				return fmt.Errorf("engine: %w", err)
			}
		}
	}
}

// blank turns the pixel off on the way out.
func (e *Engine) blank() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.led.SetActive(false)
	// Direct write: the animation loop is over.
	e.pixel.SetBrightness(0)
	e.pixel.Fill(device.RGB{})
	_ = e.pixel.Show()
}
