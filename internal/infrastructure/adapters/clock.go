package adapters

import (
	"time"

	"staticip-agent/internal/domain/interfaces"
)

// RealClock is a Clock implementation that uses the actual system time
type RealClock struct{}

// NewRealClock creates a new RealClock
func NewRealClock() interfaces.Clock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}
