package vsched

import (
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// ErrorSink receives job failures and stale schedule warnings.
// Reports never influence the scheduler's control flow.
type ErrorSink interface {
	// ReportJobFailure is called when the job due at due panicked.
	ReportJobFailure(due Time, err error)

	// ReportStaleSchedule is called when a job is scheduled
	// for a date before today.
	ReportStaleSchedule(due Time)
}

// NewLogSink creates an ErrorSink writing to l.
// If l == nil then a logger named "vsched" derived from
// hclog.Default is used.
func NewLogSink(l hclog.Logger) *LogSink {
	if l == nil {
		l = hclog.Default().Named("vsched")
	}
	return &LogSink{log: l}
}

// LogSink is an ErrorSink that logs reports.
type LogSink struct{ log hclog.Logger }

func (s *LogSink) ReportJobFailure(due Time, err error) {
	s.log.Error("job failed", "due", due, "error", err)
}

func (s *LogSink) ReportStaleSchedule(due Time) {
	s.log.Warn("job scheduled for a date before today", "due", due)
}

// Failure is a job failure recorded by a Collector.
type Failure struct {
	Due Time
	Err error
}

// Collector is an ErrorSink that keeps every report in memory.
// It's safe for concurrent use. The zero value is ready to use.
type Collector struct {
	lock     sync.Mutex
	errs     *multierror.Error
	failures []Failure
	stale    []Time
}

func (c *Collector) ReportJobFailure(due Time, err error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.errs = multierror.Append(c.errs, err)
	c.failures = append(c.failures, Failure{Due: due, Err: err})
}

func (c *Collector) ReportStaleSchedule(due Time) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.errs = multierror.Append(c.errs, &StaleScheduleError{Due: due})
	c.stale = append(c.stale, due)
}

// Err returns all reports combined into a single error
// or nil if nothing was reported.
func (c *Collector) Err() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.errs.ErrorOrNil()
}

// Failures returns a copy of all recorded job failures.
func (c *Collector) Failures() []Failure {
	c.lock.Lock()
	defer c.lock.Unlock()
	return append([]Failure(nil), c.failures...)
}

// StaleSchedules returns a copy of the due times of all stale schedules.
func (c *Collector) StaleSchedules() []Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return append([]Time(nil), c.stale...)
}

// Reset discards all recorded reports.
func (c *Collector) Reset() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.errs, c.failures, c.stale = nil, nil, nil
}
