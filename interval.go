package vsched

import (
	"sync"

	"go.uber.org/atomic"
)

// IntervalJob is the body of a recurring job.
type IntervalJob func(h *IntervalHandle)

// State is the state of an IntervalHandle.
type State int8

const (
	// Active handles invoke their job body on every fire.
	Active State = iota

	// Skipping handles are active but suppress the job body
	// until the skip counter reaches zero.
	Skipping

	// Exhausted handles have used up their trigger budget
	// and will never invoke their job body again.
	Exhausted

	// Cancelled handles were cancelled and will never fire again.
	Cancelled
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Skipping:
		return "skipping"
	case Exhausted:
		return "exhausted"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// IntervalOption configures a handle created by ScheduleInterval.
type IntervalOption func(*IntervalHandle)

// StartAt sets the due time of the first fire.
// By default the first fire is due one interval from now.
func StartAt(t Time) IntervalOption {
	return func(h *IntervalHandle) {
		h.start, h.hasStart = t, true
	}
}

// MaxTriggers limits the number of job body invocations to n.
func MaxTriggers(n int) IntervalOption {
	return func(h *IntervalHandle) {
		h.remaining, h.limited = n, true
	}
}

// SkipTriggers suppresses the job body for the first n fires.
func SkipTriggers(n int) IntervalOption {
	return func(h *IntervalHandle) {
		h.skipRemaining = n
	}
}

// WithTag sets the handle's tag.
func WithTag(tag any) IntervalOption {
	return func(h *IntervalHandle) {
		h.tag = tag
	}
}

// ScheduleInterval schedules fn for execution every interval
// and returns the handle controlling the recurring job.
// The first fire is scheduled through ScheduleAt, so if the start
// isn't in the future the first fire happens before ScheduleInterval returns.
// Every following fire is due exactly one interval after the previous
// due time regardless of when the previous fire was actually executed.
func (s *Scheduler) ScheduleInterval(
	interval Duration,
	fn IntervalJob,
	opts ...IntervalOption,
) (*IntervalHandle, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	h := &IntervalHandle{
		id:       newJobID(),
		s:        s,
		fn:       fn,
		interval: interval,
	}
	for _, o := range opts {
		o(h)
	}
	if !h.hasStart {
		h.start = s.source.Now().Add(interval)
	}
	h.nextDue = h.start

	s.ScheduleAt(h.nextDue, h.fire)
	return h, nil
}

// IntervalHandle is a recurring job.
// All methods are safe for concurrent use and
// may be called from within the job body.
type IntervalHandle struct {
	id       Job
	s        *Scheduler
	fn       IntervalJob
	start    Time
	hasStart bool

	lock          sync.Mutex
	interval      Duration
	nextDue       Time
	skipRemaining int
	remaining     int
	limited       bool
	tag           any

	triggerCount atomic.Int64
	cancelled    atomic.Bool
}

// ID returns the identifier of the handle.
// It's not the identifier of the currently queued fire.
func (h *IntervalHandle) ID() Job { return h.id }

// Start returns the due time of the first fire.
func (h *IntervalHandle) Start() Time { return h.start }

// Cancel prevents any further fires.
// A job body that's currently executing is not interrupted.
func (h *IntervalHandle) Cancel() { h.cancelled.Store(true) }

// IsCancelled reports whether Cancel was called.
func (h *IntervalHandle) IsCancelled() bool { return h.cancelled.Load() }

// TriggerCount returns the number of fires including skipped ones.
func (h *IntervalHandle) TriggerCount() int64 { return h.triggerCount.Load() }

// Interval returns the time between two fires.
func (h *IntervalHandle) Interval() Duration {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.interval
}

// SetInterval changes the interval starting with the next reschedule.
func (h *IntervalHandle) SetInterval(d Duration) error {
	if d <= 0 {
		return ErrInvalidInterval
	}
	h.lock.Lock()
	defer h.lock.Unlock()
	h.interval = d
	return nil
}

// NextDue returns the due time of the currently queued fire.
// Inside the job body this is the due time of the executing fire.
func (h *IntervalHandle) NextDue() Time {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.nextDue
}

// SkipTriggers returns the number of upcoming fires that will be skipped.
func (h *IntervalHandle) SkipTriggers() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.skipRemaining
}

// SetSkipTriggers suppresses the job body for the next n fires.
func (h *IntervalHandle) SetSkipTriggers(n int) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.skipRemaining = n
}

// RemainingTriggers returns the remaining number of job body invocations.
// Returns false if the handle is unlimited.
func (h *IntervalHandle) RemainingTriggers() (n int, limited bool) {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.remaining, h.limited
}

// Tag returns the caller defined tag.
func (h *IntervalHandle) Tag() any {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.tag
}

// SetTag sets the caller defined tag, it's never used by the scheduler.
func (h *IntervalHandle) SetTag(tag any) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.tag = tag
}

// State returns the current state of the handle.
func (h *IntervalHandle) State() State {
	if h.cancelled.Load() {
		return Cancelled
	}
	h.lock.Lock()
	defer h.lock.Unlock()
	switch {
	case h.limited && h.remaining <= 0:
		return Exhausted
	case h.skipRemaining > 0:
		return Skipping
	}
	return Active
}

// fire is queued for every occurrence.
// Overdue occurrences are caught up in a loop, only the first
// occurrence in the future is queued again.
func (h *IntervalHandle) fire() {
	staleChecked := false
	for {
		if !h.trigger() {
			return
		}
		due, ok := h.advance()
		if !ok {
			return
		}
		if due.After(h.s.source.Now()) {
			h.s.insert(due, false, h.fire)
			return
		}
		if !staleChecked {
			staleChecked = true
			if h.s.isStale(due) {
				h.s.reportStale(due)
			}
		}
	}
}

// trigger handles a single occurrence and returns false
// if the handle must not be rescheduled.
func (h *IntervalHandle) trigger() (reschedule bool) {
	if h.cancelled.Load() {
		return false
	}
	h.triggerCount.Inc()

	h.lock.Lock()
	due := h.nextDue
	if h.skipRemaining > 0 {
		h.skipRemaining--
		h.lock.Unlock()
		return true
	}
	if h.limited {
		if h.remaining <= 0 {
			// Exhausted
			h.lock.Unlock()
			return false
		}
		h.remaining--
	}
	h.lock.Unlock()

	h.s.invoke(h.id, due, func() { h.fn(h) })
	return true
}

// advance moves the next due time one interval past the previous one.
// Returns false if the handle was cancelled.
func (h *IntervalHandle) advance() (next Time, ok bool) {
	if h.cancelled.Load() {
		return Time{}, false
	}
	h.lock.Lock()
	defer h.lock.Unlock()
	h.nextDue = h.nextDue.Add(h.interval)
	return h.nextDue, true
}
