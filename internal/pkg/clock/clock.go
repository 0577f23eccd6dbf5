// Package clock abstracts the current time so hold-expiry decisions are
// testable without sleeping.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// MockClock is a manually advanced clock for tests.
type MockClock struct {
	currentTime time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	return c.currentTime
}

// Set pins the clock to an absolute instant.
func (c *MockClock) Set(t time.Time) {
	c.currentTime = t
}

// Add moves the clock forward (or backward, with a negative d).
func (c *MockClock) Add(d time.Duration) {
	c.currentTime = c.currentTime.Add(d)
}
