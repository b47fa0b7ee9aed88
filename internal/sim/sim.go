// Package sim drives a scheduler on a virtual clock in fixed steps.
package sim

import (
	"fmt"

	"github.com/romshark/vsched"

	"github.com/hashicorp/go-hclog"
)

// Report summarizes a simulation.
type Report struct {
	Scans    int
	Executed int
	Pending  int
	End      vsched.Time

	// Fires maps job names to the number of job body invocations.
	Fires map[string]int
}

// Run schedules all jobs of c on a virtual clock and advances the clock
// by c.Step, scanning after every step, until c.Until has elapsed.
func Run(c Config, log hclog.Logger) (Report, error) {
	if err := c.Validate(); err != nil {
		return Report{}, err
	}
	jobs, err := c.ParseJobs()
	if err != nil {
		return Report{}, err
	}
	mode, err := c.SchedulerMode()
	if err != nil {
		return Report{}, err
	}

	clock := vsched.NewVirtualClock(c.StartTime())
	s := vsched.NewWith(mode, clock, vsched.NewLogSink(log))

	r := Report{Fires: make(map[string]int, len(jobs))}
	for _, j := range jobs {
		opts := []vsched.IntervalOption{vsched.WithTag(j.Name)}
		if j.MaxTriggers > 0 {
			opts = append(opts, vsched.MaxTriggers(j.MaxTriggers))
		}
		_, err := s.ScheduleInterval(j.Interval, func(h *vsched.IntervalHandle) {
			name := h.Tag().(string)
			r.Fires[name]++
			log.Debug("fired",
				"job", name,
				"due", h.NextDue(),
				"now", clock.Now(),
				"trigger", h.TriggerCount())
		}, opts...)
		if err != nil {
			return r, fmt.Errorf("scheduling job %q: %w", j.Name, err)
		}
		r.Fires[j.Name] = 0
	}

	for clock.Offset() < c.Until {
		clock.AdvanceTime(min(c.Step, c.Until-clock.Offset()))
		r.Scans++
		r.Executed += s.ScanDue()
	}

	r.Pending, r.End = s.Len(), clock.Now()
	log.Info("simulation finished",
		"mode", mode,
		"scans", r.Scans,
		"executed", r.Executed,
		"pending", r.Pending,
		"end", r.End)
	return r, nil
}
