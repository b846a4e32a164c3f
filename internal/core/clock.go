package core

import "time"

// Clock supplies monotonic elapsed time since some fixed origin.
type Clock interface {
	Now() time.Duration
}

// SystemClock measures elapsed wall time from its creation.
type SystemClock struct {
	start time.Time
}

// NewSystemClock creates a clock whose origin is the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.start)
}

// ManualClock is a Clock advanced explicitly by the caller.
// Used by headless simulation and tests.
type ManualClock struct {
	now time.Duration
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Duration {
	return c.now
}

// Advance moves the clock forward by d. Negative values are ignored.
func (c *ManualClock) Advance(d time.Duration) time.Duration {
	if d > 0 {
		c.now += d
	}
	return c.now
}

// Set jumps the clock to t if t is not in the past.
func (c *ManualClock) Set(t time.Duration) {
	if t > c.now {
		c.now = t
	}
}
