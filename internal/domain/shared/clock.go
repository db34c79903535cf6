// Package shared holds small types used across the domain packages.
package shared

import (
	"sync"
	"time"
)

// Clock supplies the timestamps written on stored inventories, actors,
// declarations and evaluation records
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time in UTC
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// NewRealClock creates a RealClock instance
func NewRealClock() Clock {
	return RealClock{}
}

// MockClock is a manually driven Clock for tests. It is safe for concurrent use
// so handlers served over HTTP can share one instance.
type MockClock struct {
	mu      sync.Mutex
	current time.Time
}

// NewMockClock creates a MockClock frozen at start; a zero start reads the system time once
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Now().UTC()
	}
	return &MockClock{current: start}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Advance moves the clock forward
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.current = m.current.Add(d)
	m.mu.Unlock()
}

// SetTime jumps the clock to t
func (m *MockClock) SetTime(t time.Time) {
	m.mu.Lock()
	m.current = t
	m.mu.Unlock()
}
