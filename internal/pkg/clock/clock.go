// Package clock provides time utilities for the application
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/wayfarer-ai/wayfarer/internal/pkg/clock Clock

// Clock provides time functionality
type Clock interface {
	Now() time.Time
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

// Fake implements Clock with a manually advanced time, for tests that
// exercise staleness windows and rate limits deterministically.
type Fake struct {
	now time.Time
}

// NewFake returns a fake clock pinned to the given time
func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

// Now returns the fake's current time
func (c *Fake) Now() time.Time {
	return c.now
}

// Advance moves the fake clock forward by d
func (c *Fake) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Set pins the fake clock to t
func (c *Fake) Set(t time.Time) {
	c.now = t
}
