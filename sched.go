package vsched

import (
	"sync"
	"time"

	"github.com/romshark/vsched/internal/queue"

	"github.com/segmentio/ksuid"
	"go.uber.org/atomic"
)

type (
	Time     = time.Time
	Duration = time.Duration
)

const (
	Nanosecond  = time.Nanosecond
	Microsecond = time.Microsecond
	Millisecond = time.Millisecond
	Second      = time.Second
	Minute      = time.Minute
	Hour        = time.Hour
	Day         = 24 * time.Hour
)

// Mode defines how a Scheduler synchronizes access to its queue.
type Mode int8

const (
	// Concurrent guards the queue with a mutex.
	// The mutex is never held while a job is executed.
	Concurrent Mode = iota

	// Exclusive disables locking. All scheduling calls and ScanDue
	// must originate from the same goroutine.
	Exclusive
)

func (m Mode) String() string {
	switch m {
	case Concurrent:
		return "concurrent"
	case Exclusive:
		return "exclusive"
	}
	return "unknown"
}

// DefaultScheduler is the default Scheduler used by the package-level
// functions. It runs on the wall clock in concurrent mode.
var DefaultScheduler = New(nil)

// Now returns the current time of the default scheduler's time source.
func Now() Time {
	return DefaultScheduler.Now()
}

// ScheduleAt schedules fn for execution at due.
// See (*Scheduler).ScheduleAt.
func ScheduleAt(due Time, fn func()) Job {
	return DefaultScheduler.ScheduleAt(due, fn)
}

// ScheduleWithin schedules fn for execution in the given duration.
func ScheduleWithin(in Duration, fn func()) Job {
	return DefaultScheduler.ScheduleWithin(in, fn)
}

// ScheduleNext schedules fn for execution on the next scan.
func ScheduleNext(fn func()) Job {
	return DefaultScheduler.ScheduleNext(fn)
}

// ScheduleTodayAt schedules fn for execution today at the given time of day.
func ScheduleTodayAt(timeOfDay Duration, fn func()) Job {
	return DefaultScheduler.ScheduleTodayAt(timeOfDay, fn)
}

// ScheduleTomorrowAt schedules fn for execution tomorrow
// at the given time of day.
func ScheduleTomorrowAt(timeOfDay Duration, fn func()) Job {
	return DefaultScheduler.ScheduleTomorrowAt(timeOfDay, fn)
}

// ScheduleInterval schedules fn for recurring execution.
func ScheduleInterval(
	interval Duration,
	fn IntervalJob,
	opts ...IntervalOption,
) (*IntervalHandle, error) {
	return DefaultScheduler.ScheduleInterval(interval, fn, opts...)
}

// ScanDue executes all due jobs of the default scheduler.
func ScanDue() (executed int) {
	return DefaultScheduler.ScanDue()
}

// Cancel cancels a pending job and returns true.
// Returns false if no job was canceled.
func Cancel(id Job) bool {
	return DefaultScheduler.Cancel(id)
}

// Len returns the length of the queue (number of pending jobs).
func Len() int {
	return DefaultScheduler.Len()
}

// NextDue returns the due time of the earliest pending job.
func NextDue() (due Time, ok bool) {
	return DefaultScheduler.NextDue()
}

// Scan scans all jobs after the given job executing fn for each
// until either the end of the queue is reached or fn returns false.
// Starts from the front of the queue if after is zero.
// Returns false if after doesn't exist, otherwise returns true.
func Scan(after Job, fn func(job Job, due Time) bool) (ok bool) {
	return DefaultScheduler.Scan(after, fn)
}

// New creates a new concurrent scheduler on the given time source
// reporting errors to a LogSink.
func New(t TimeSource) *Scheduler {
	return NewWith(Concurrent, t, nil)
}

// NewWith is similar to New but allows choosing the locking mode
// and the error sink.
// If t == nil then WallClock is used by default.
// If sink == nil then a LogSink on hclog.Default is used by default.
func NewWith(mode Mode, t TimeSource, sink ErrorSink) *Scheduler {
	if t == nil {
		t = WallClock{}
	}
	if sink == nil {
		sink = NewLogSink(nil)
	}
	var l sync.Locker = new(sync.Mutex)
	if mode == Exclusive {
		l = noLock{}
	}
	return &Scheduler{
		mode:   mode,
		source: t,
		sink:   sink,
		lock:   l,
		queue:  queue.New(),
	}
}

// Scheduler is a job scheduler driven by ScanDue.
// It never sleeps and never starts goroutines, jobs are executed
// either by ScheduleAt immediately or by ScanDue.
type Scheduler struct {
	mode   Mode
	source TimeSource
	sink   ErrorSink
	lock   sync.Locker
	queue  *queue.Queue

	// seq is the tie-break counter.
	seq atomic.Uint64
}

// Mode returns the locking mode the scheduler was created with.
func (s *Scheduler) Mode() Mode { return s.mode }

// Now returns the current time of the scheduler's time source.
func (s *Scheduler) Now() Time {
	return s.source.Now()
}

// ScheduleAt schedules fn for execution at due.
// If due isn't in the future then fn is executed immediately
// before ScheduleAt returns and the returned Job is zero.
// Scheduling for a date before today is reported as stale
// but fn is executed anyway.
func (s *Scheduler) ScheduleAt(due Time, fn func()) Job {
	if due.After(s.source.Now()) {
		return s.insert(due, false, fn)
	}
	if s.isStale(due) {
		s.reportStale(due)
	}
	s.invoke(Job{}, due, fn)
	return Job{}
}

// ScheduleWithin schedules fn for execution in the given duration.
func (s *Scheduler) ScheduleWithin(in Duration, fn func()) Job {
	return s.ScheduleAt(s.source.Now().Add(in), fn)
}

// ScheduleNext schedules fn for execution on the next scan.
// fn is never executed immediately. Jobs scheduled by ScheduleNext
// without the clock advancing in between are executed in call order.
// A job scheduled by ScheduleNext while a scan is running
// is left for the following scan.
func (s *Scheduler) ScheduleNext(fn func()) Job {
	return s.insert(s.source.Now(), true, fn)
}

// ScheduleTodayAt schedules fn for execution today at the given time of day.
func (s *Scheduler) ScheduleTodayAt(timeOfDay Duration, fn func()) Job {
	return s.ScheduleAt(s.source.Today().Add(timeOfDay), fn)
}

// ScheduleTomorrowAt schedules fn for execution tomorrow
// at the given time of day.
func (s *Scheduler) ScheduleTomorrowAt(timeOfDay Duration, fn func()) Job {
	return s.ScheduleAt(s.source.Today().AddDate(0, 0, 1).Add(timeOfDay), fn)
}

// ScanDue executes all jobs that are due in due time order
// and returns the number of executed jobs.
// Panicking jobs are reported to the error sink and don't prevent
// the remaining due jobs from being executed.
// Jobs that become due while scanning are executed in the same scan,
// except for the ones scheduled by ScheduleNext after the scan started.
func (s *Scheduler) ScanDue() (executed int) {
	horizon := s.seq.Load()
	for {
		e, ok := s.popDue(s.source.Now(), horizon)
		if !ok {
			return executed
		}
		s.invoke(Job(e.ID), e.Due, e.Fn)
		executed++
	}
}

// Cancel cancels a pending job and returns true.
// Returns false if no job was canceled.
func (s *Scheduler) Cancel(id Job) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.queue.Remove(ksuid.KSUID(id))
}

// Len returns the length of the queue (number of pending jobs).
func (s *Scheduler) Len() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.queue.Len()
}

// NextDue returns the due time of the earliest pending job.
// Returns false if no jobs are pending.
func (s *Scheduler) NextDue() (due Time, ok bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	e, err := s.queue.PeekMin()
	if err != nil {
		return Time{}, false
	}
	return e.Due, true
}

// Scan scans all jobs after the given job executing fn for each
// until either the end of the queue is reached or fn returns false.
// Starts from the front of the queue if after is zero.
// Returns false if after doesn't exist, otherwise returns true.
// fn must not call back into the scheduler.
func (s *Scheduler) Scan(
	after Job,
	fn func(job Job, due Time) bool,
) (ok bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.queue.Scan(
		ksuid.KSUID(after),
		func(e queue.Entry) bool {
			return fn(Job(e.ID), e.Due)
		},
	)
}

// insert puts fn into the queue regardless of its due time.
func (s *Scheduler) insert(due Time, next bool, fn func()) Job {
	id := newJobID()
	e := queue.Entry{
		ID:   ksuid.KSUID(id),
		Due:  due,
		Seq:  s.seq.Inc(),
		Next: next,
		Fn:   fn,
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.queue.Insert(e)
	return id
}

// popDue removes and returns the earliest entry if it's due at now.
// An entry scheduled by ScheduleNext after horizon was taken
// isn't due until the next scan.
// Peeking and extracting happen under the same lock
// so an entry is never extracted twice.
func (s *Scheduler) popDue(now Time, horizon uint64) (queue.Entry, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	e, err := s.queue.PeekMin()
	if err != nil || e.Due.After(now) {
		return queue.Entry{}, false
	}
	if e.Next && int64(e.Seq-horizon) > 0 {
		return queue.Entry{}, false
	}
	if _, err := s.queue.ExtractMin(); err != nil {
		return queue.Entry{}, false
	}
	return e, true
}

// invoke executes fn recovering and reporting panics.
func (s *Scheduler) invoke(id Job, due Time, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.reportFailure(due, newJobError(id, due, r))
		}
	}()
	fn()
}

// isStale reports whether due is on a date before today.
func (s *Scheduler) isStale(due Time) bool {
	today := s.source.Today()
	return dateOf(due, today.Location()).Before(today)
}

func (s *Scheduler) reportFailure(due Time, err error) {
	defer func() { _ = recover() }()
	s.sink.ReportJobFailure(due, err)
}

func (s *Scheduler) reportStale(due Time) {
	defer func() { _ = recover() }()
	s.sink.ReportStaleSchedule(due)
}

type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}

// newJobID generates a new unique identifier.
func newJobID() Job {
	return Job(ksuid.New())
}

// Job is a unique job identifier.
type Job ksuid.KSUID

// String returns the stringified identifier.
func (id Job) String() string {
	return ksuid.KSUID(id).String()
}
