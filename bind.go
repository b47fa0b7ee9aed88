package vsched

// Bind returns a job that calls fn with c.
func Bind[C any](c C, fn func(C)) func() {
	return func() { fn(c) }
}

// BindInterval returns an interval job that calls fn with c.
func BindInterval[C any](c C, fn func(C, *IntervalHandle)) IntervalJob {
	return func(h *IntervalHandle) { fn(c, h) }
}

// ScheduleAtWith is ScheduleAt for a job carrying context c.
func ScheduleAtWith[C any](s *Scheduler, due Time, c C, fn func(C)) Job {
	return s.ScheduleAt(due, Bind(c, fn))
}

// ScheduleWithinWith is ScheduleWithin for a job carrying context c.
func ScheduleWithinWith[C any](s *Scheduler, in Duration, c C, fn func(C)) Job {
	return s.ScheduleWithin(in, Bind(c, fn))
}

// ScheduleNextWith is ScheduleNext for a job carrying context c.
func ScheduleNextWith[C any](s *Scheduler, c C, fn func(C)) Job {
	return s.ScheduleNext(Bind(c, fn))
}

// ScheduleIntervalWith is ScheduleInterval for a job carrying context c.
func ScheduleIntervalWith[C any](
	s *Scheduler,
	interval Duration,
	c C,
	fn func(C, *IntervalHandle),
	opts ...IntervalOption,
) (*IntervalHandle, error) {
	return s.ScheduleInterval(interval, BindInterval(c, fn), opts...)
}
