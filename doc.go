// Package vsched provides a virtual-time job scheduler.
// The scheduler never sleeps and never starts goroutines:
// jobs that are due immediately are executed by the scheduling call,
// all other jobs are queued until the host calls ScanDue
// with the time source at or past their due time.
// Recurring jobs are scheduled with ScheduleInterval and keep
// their cadence regardless of how late ScanDue is called.
//
// Schedulers created in Concurrent mode can safely be used from
// within multiple goroutines, including from within executing jobs.
package vsched
