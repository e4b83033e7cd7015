package clock

import "time"

// Clock is the time source for sessions, game timers and best times
type Clock interface {
	Now() time.Time
	// Since is shorthand for Now().Sub(t)
	Since(t time.Time) time.Duration
}

// RealClock reads the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}
