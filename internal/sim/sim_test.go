package sim_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/romshark/vsched"
	"github.com/romshark/vsched/internal/sim"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("VSCHED_START", "2021-06-20T10:00:00Z")
	t.Setenv("VSCHED_STEP", "5s")
	t.Setenv("VSCHED_MODE", "exclusive")
	t.Setenv("VSCHED_JOBS", "a=1s,b=10s/2")

	c, err := sim.Load()
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	require.Equal(t, time.Date(2021, 6, 20, 10, 0, 0, 0, time.UTC), c.StartTime())
	require.Equal(t, 5*time.Second, c.Step)
	require.Equal(t, time.Minute, c.Until)
	require.Equal(t, "info", c.LogLevel)
	require.Equal(t, []string{"a=1s", "b=10s/2"}, c.Jobs)

	mode, err := c.SchedulerMode()
	require.NoError(t, err)
	require.Equal(t, vsched.Exclusive, mode)
}

func TestValidate(t *testing.T) {
	valid := sim.Config{
		Step:     time.Second,
		Until:    time.Minute,
		Mode:     "concurrent",
		LogLevel: "debug",
		Jobs:     []string{"a=1s"},
	}
	require.NoError(t, valid.Validate())
	require.Equal(t, sim.DefaultStart, valid.StartTime())

	for name, mutate := range map[string]func(*sim.Config){
		"step":       func(c *sim.Config) { c.Step = 0 },
		"until":      func(c *sim.Config) { c.Until = -time.Second },
		"mode":       func(c *sim.Config) { c.Mode = "parallel" },
		"log level":  func(c *sim.Config) { c.LogLevel = "loud" },
		"no jobs":    func(c *sim.Config) { c.Jobs = nil },
		"bad job":    func(c *sim.Config) { c.Jobs = []string{"a"} },
		"duplicates": func(c *sim.Config) { c.Jobs = []string{"a=1s", "a=2s"} },
	} {
		t.Run(name, func(t *testing.T) {
			c := valid
			mutate(&c)
			require.Error(t, c.Validate())
		})
	}
}

func TestParseJob(t *testing.T) {
	j, err := sim.ParseJob("backup=1h/3")
	require.NoError(t, err)
	require.Equal(t, sim.JobSpec{
		Name: "backup", Interval: time.Hour, MaxTriggers: 3,
	}, j)

	j, err = sim.ParseJob("tick=250ms")
	require.NoError(t, err)
	require.Equal(t, sim.JobSpec{Name: "tick", Interval: 250 * time.Millisecond}, j)

	for _, s := range []string{
		"", "=1s", "a", "a=", "a=xyz", "a=0s", "a=-1s", "a=1s/", "a=1s/0", "a=1s/x",
	} {
		_, err := sim.ParseJob(s)
		require.Error(t, err, "expected error for %q", s)
	}

	_, err = sim.ParseJob("a=0s")
	require.ErrorIs(t, err, vsched.ErrInvalidInterval)
}

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	log := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Info})

	start := time.Date(2021, 6, 20, 10, 0, 0, 0, time.UTC)
	r, err := sim.Run(sim.Config{
		Start:    start,
		Step:     7 * time.Second,
		Until:    time.Minute,
		Mode:     "exclusive",
		LogLevel: "info",
		Jobs:     []string{"fast=1s", "slow=10s", "limited=5s/3"},
	}, log)
	require.NoError(t, err)

	require.Equal(t, map[string]int{
		"fast":    60,
		"slow":    6,
		"limited": 3,
	}, r.Fires)
	require.Equal(t, 9, r.Scans) // 8 full steps and a final partial one
	require.Equal(t, start.Add(time.Minute), r.End)
	require.Equal(t, 2, r.Pending) // fast and slow stay queued
	require.Contains(t, buf.String(), "simulation finished")
}

func TestRunInvalid(t *testing.T) {
	_, err := sim.Run(sim.Config{}, hclog.NewNullLogger())
	require.ErrorIs(t, err, sim.ErrInvalidStep)
}
