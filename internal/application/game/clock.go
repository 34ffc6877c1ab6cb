package game

import "time"

// Clock provides time operations so frame timing can be driven
// deterministically in tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// DefaultClock returns the clock backed by the time package.
func DefaultClock() Clock {
	return realClock{}
}

// FrameClock measures the time between completed frames.
type FrameClock struct {
	clock Clock
	last  time.Time
}

// NewFrameClock creates a frame clock reading from c.
func NewFrameClock(c Clock) FrameClock {
	return FrameClock{clock: c}
}

// Start takes the reference timestamp.
func (f *FrameClock) Start() {
	f.last = f.clock.Now()
}

// Elapsed returns the seconds since the reference timestamp.
func (f *FrameClock) Elapsed(now time.Time) float64 {
	return now.Sub(f.last).Seconds()
}

// Mark moves the reference timestamp to now.
func (f *FrameClock) Mark(now time.Time) {
	f.last = now
}
