package behavior

import "time"

// Clock tracks wall time since the simulation started. It is created once per
// run and never reset, so it is safe to copy and share.
type Clock struct {
	start time.Time
	delay time.Duration
}

// NewClock returns a clock started at start whose delayed features activate
// after delay.
func NewClock(start time.Time, delay time.Duration) Clock {
	return Clock{start: start, delay: delay}
}

// Start returns the start timestamp.
func (c Clock) Start() time.Time { return c.start }

// Delay returns the activation delay.
func (c Clock) Delay() time.Duration { return c.delay }

// Elapsed returns the time elapsed between start and now.
func (c Clock) Elapsed(now time.Time) time.Duration {
	return now.Sub(c.start)
}

// Active reports whether the activation delay has passed at now.
func (c Clock) Active(now time.Time) bool {
	return c.Elapsed(now) >= c.delay
}
