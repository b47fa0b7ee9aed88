package vsched

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// ErrInvalidInterval is returned when an interval isn't positive.
var ErrInvalidInterval = errors.New("interval must be greater zero")

// JobError is reported when a job panics.
type JobError struct {
	// Job is zero for jobs executed immediately by ScheduleAt.
	Job   Job
	Due   Time
	Value any
	Stack []byte
}

func newJobError(id Job, due Time, recovered any) *JobError {
	return &JobError{Job: id, Due: due, Value: recovered, Stack: debug.Stack()}
}

func (e *JobError) Error() string {
	if e.Job == (Job{}) {
		return fmt.Sprintf("job due %s panicked: %v", e.Due, e.Value)
	}
	return fmt.Sprintf("job %s due %s panicked: %v", e.Job, e.Due, e.Value)
}

// Unwrap returns the recovered value if it's an error.
func (e *JobError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// StaleScheduleError describes a job scheduled for a date before today.
// It's a warning, the job is still executed.
type StaleScheduleError struct{ Due Time }

func (e *StaleScheduleError) Error() string {
	return fmt.Sprintf("stale schedule: %s is before today", e.Due)
}
