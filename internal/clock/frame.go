package clock

import "time"

// FrameClock converts display refresh timestamps into delta times normalized
// against a nominal frame duration. A delta of 1 means exactly one nominal
// frame elapsed.
type FrameClock struct {
	nominal  time.Duration
	maxDelta float64
	last     time.Time
	started  bool
}

// NewFrameClock creates a frame clock. maxDelta caps the normalized delta so
// long stalls (a backgrounded terminal, a slow SSH link) do not teleport the
// simulation.
func NewFrameClock(nominal time.Duration, maxDelta float64) *FrameClock {
	if nominal <= 0 {
		nominal = 16 * time.Millisecond
	}
	return &FrameClock{nominal: nominal, maxDelta: maxDelta}
}

// Reset forgets the previous timestamp. The next Delta returns 1.
func (c *FrameClock) Reset() {
	c.started = false
	c.last = time.Time{}
}

// Start sets the reference timestamp for the next Delta.
func (c *FrameClock) Start(now time.Time) {
	c.last = now
	c.started = true
}

// Delta records now and returns the normalized time since the previous call.
// The first call after Reset returns 1. Only the upper bound is clamped.
func (c *FrameClock) Delta(now time.Time) float64 {
	if !c.started {
		c.Start(now)
		return 1
	}
	d := float64(now.Sub(c.last)) / float64(c.nominal)
	c.last = now
	if c.maxDelta > 0 && d > c.maxDelta {
		d = c.maxDelta
	}
	return d
}
