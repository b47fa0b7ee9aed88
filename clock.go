package vsched

import (
	"sync"
	"time"
)

// TimeSource provides the scheduler's notion of time.
// Now must be monotonically non-decreasing for interval handles
// to keep their cadence.
type TimeSource interface {
	// Now returns the current instant.
	Now() Time

	// Today returns midnight of the current date.
	Today() Time
}

// WallClock is a TimeSource backed by the standard time package.
type WallClock struct{}

func (WallClock) Now() Time   { return time.Now() }
func (WallClock) Today() Time { return midnight(time.Now()) }

// NewVirtualClock creates a manually driven clock starting at start.
func NewVirtualClock(start Time) *VirtualClock {
	return &VirtualClock{start: start}
}

// VirtualClock is a TimeSource that only moves when told to.
// It's safe for concurrent use.
type VirtualClock struct {
	lock   sync.RWMutex
	start  Time
	offset Duration
}

// Now returns the start time plus the current offset.
func (c *VirtualClock) Now() Time {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.start.Add(c.offset)
}

// Today returns midnight of the current virtual date.
func (c *VirtualClock) Today() Time {
	return midnight(c.Now())
}

// AdvanceTime advances the clock by the given duration.
// Negative durations are ignored since the clock never goes backwards.
func (c *VirtualClock) AdvanceTime(by Duration) (newOffset Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if by > 0 {
		c.offset += by
	}
	return c.offset
}

// Set moves the clock to t.
// Returns false and leaves the clock untouched if t is before Now.
func (c *VirtualClock) Set(t Time) (ok bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	by := t.Sub(c.start.Add(c.offset))
	if by < 0 {
		return false
	}
	c.offset += by
	return true
}

// Offset returns how far the clock has advanced since it was created.
func (c *VirtualClock) Offset() Duration {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.offset
}

func midnight(t Time) Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dateOf returns midnight of t's date in loc.
func dateOf(t Time, loc *time.Location) Time {
	return midnight(t.In(loc))
}
