package clock

import "time"

// Clock abstracts the wall clock so time-dependent logic (defaulted
// timestamps, future checks, priority decay) can be tested deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns a Clock backed by time.Now.
func System() Clock { return systemClock{} }

// Fixed is a manually-advanced Clock for tests.
type Fixed struct {
	current time.Time
}

// NewFixed creates a Fixed clock pinned at t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{current: t}
}

// Now returns the pinned time.
func (f *Fixed) Now() time.Time { return f.current }

// Advance moves the pinned time forward by d.
func (f *Fixed) Advance(d time.Duration) { f.current = f.current.Add(d) }

// Set pins the clock to t.
func (f *Fixed) Set(t time.Time) { f.current = t }
