package sim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/romshark/vsched"

	"github.com/hashicorp/go-hclog"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of all environment variables read by Load.
const EnvPrefix = "VSCHED"

// DefaultStart is the virtual start time used when Config.Start is zero.
var DefaultStart = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

var (
	ErrInvalidStep  = errors.New("step must be greater zero")
	ErrInvalidUntil = errors.New("until must be greater zero")
	ErrNoJobs       = errors.New("no jobs defined")
)

// Config is the simulator configuration.
type Config struct {
	// Start is the virtual start time, RFC 3339.
	Start    time.Time     `envconfig:"START"`
	Step     time.Duration `envconfig:"STEP" default:"1s"`
	Until    time.Duration `envconfig:"UNTIL" default:"1m"`
	Mode     string        `envconfig:"MODE" default:"concurrent"`
	LogLevel string        `envconfig:"LOG_LEVEL" default:"info"`

	// Jobs are job definitions in the format accepted by ParseJob.
	Jobs []string `envconfig:"JOBS"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process(EnvPrefix, &c); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	return c, nil
}

// Validate returns an error if any setting is invalid.
func (c Config) Validate() error {
	if c.Step <= 0 {
		return ErrInvalidStep
	}
	if c.Until <= 0 {
		return ErrInvalidUntil
	}
	if _, err := c.SchedulerMode(); err != nil {
		return err
	}
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("unknown log level: %q", c.LogLevel)
	}
	if len(c.Jobs) < 1 {
		return ErrNoJobs
	}
	_, err := c.ParseJobs()
	return err
}

// SchedulerMode returns the scheduler locking mode.
func (c Config) SchedulerMode() (vsched.Mode, error) {
	switch strings.ToLower(c.Mode) {
	case "", "concurrent":
		return vsched.Concurrent, nil
	case "exclusive":
		return vsched.Exclusive, nil
	}
	return 0, fmt.Errorf("unknown mode: %q", c.Mode)
}

// StartTime returns Start or DefaultStart if Start is zero.
func (c Config) StartTime() time.Time {
	if c.Start.IsZero() {
		return DefaultStart
	}
	return c.Start
}

func (c Config) ParseJobs() ([]JobSpec, error) {
	jobs := make([]JobSpec, 0, len(c.Jobs))
	seen := make(map[string]struct{}, len(c.Jobs))
	for _, s := range c.Jobs {
		j, err := ParseJob(s)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[j.Name]; ok {
			return nil, fmt.Errorf("duplicate job name: %q", j.Name)
		}
		seen[j.Name] = struct{}{}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// JobSpec defines a recurring job.
type JobSpec struct {
	Name     string
	Interval time.Duration

	// MaxTriggers is unlimited if zero.
	MaxTriggers int
}

// ParseJob parses a job definition formatted as
// name=interval or name=interval/maxTriggers, e.g. "backup=1h/3".
func ParseJob(s string) (JobSpec, error) {
	name, def, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return JobSpec{}, fmt.Errorf("invalid job %q: expected name=interval[/max]", s)
	}
	interval, limit, hasLimit := strings.Cut(def, "/")

	j := JobSpec{Name: name}
	var err error
	if j.Interval, err = time.ParseDuration(interval); err != nil {
		return JobSpec{}, fmt.Errorf("invalid job %q interval: %w", name, err)
	}
	if j.Interval <= 0 {
		return JobSpec{}, fmt.Errorf("invalid job %q: %w", name, vsched.ErrInvalidInterval)
	}
	if hasLimit {
		if j.MaxTriggers, err = strconv.Atoi(limit); err != nil {
			return JobSpec{}, fmt.Errorf("invalid job %q max triggers: %w", name, err)
		}
		if j.MaxTriggers < 1 {
			return JobSpec{}, fmt.Errorf("invalid job %q: max triggers must be greater zero", name)
		}
	}
	return j, nil
}
