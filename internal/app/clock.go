package app

import "time"

// Clock converts wall-clock frame deltas into scene time.
type Clock struct {
	scale  float64
	now    float64
	paused bool
}

// NewClock creates a clock advancing scale scene units per second.
func NewClock(scale float64) *Clock {
	return &Clock{scale: scale}
}

// Advance moves the clock forward by dt unless paused and returns the new
// scene time. Negative deltas are ignored so time never runs backwards.
func (c *Clock) Advance(dt time.Duration) float64 {
	if !c.paused && dt > 0 {
		c.now += dt.Seconds() * c.scale
	}
	return c.now
}

// TogglePause pauses or resumes the clock and reports whether it is paused.
func (c *Clock) TogglePause() bool {
	c.paused = !c.paused
	return c.paused
}

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool {
	return c.paused
}

// Now returns the current scene time.
func (c *Clock) Now() float64 {
	return c.now
}
