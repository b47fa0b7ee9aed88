package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/romshark/vsched/internal/sim"

	"github.com/hashicorp/go-hclog"
	"github.com/urfave/cli"
)

const description = `Simulates recurring jobs on a virtual clock.
The clock advances by --step and the scheduler is scanned after every step
until --until has elapsed. Settings default to the VSCHED_* environment
variables (VSCHED_START, VSCHED_STEP, VSCHED_UNTIL, VSCHED_MODE,
VSCHED_LOG_LEVEL, VSCHED_JOBS).

Jobs are passed as arguments formatted as name=interval[/max],
for example: vsched-sim --until 1h backup=15m/2 heartbeat=30s`

var flags = []cli.Flag{
	cli.DurationFlag{
		Name:  "step",
		Usage: "virtual time advanced between two scans",
	},
	cli.DurationFlag{
		Name:  "until",
		Usage: "total virtual time to simulate",
	},
	cli.StringFlag{
		Name:  "mode",
		Usage: "scheduler locking mode: concurrent or exclusive",
	},
	cli.StringFlag{
		Name:  "log-level",
		Usage: "trace, debug, info, warn or error",
	},
}

func main() {
	app := cli.App{
		Name:        "vsched-sim",
		HelpName:    "vsched-sim",
		Usage:       "virtual-time scheduler simulator",
		UsageText:   "vsched-sim [options] name=interval[/max] ...",
		Description: description,
		Flags:       flags,
		Action:      run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	c, err := sim.Load()
	if err != nil {
		return err
	}
	if ctx.IsSet("step") {
		c.Step = ctx.Duration("step")
	}
	if ctx.IsSet("until") {
		c.Until = ctx.Duration("until")
	}
	if ctx.IsSet("mode") {
		c.Mode = ctx.String("mode")
	}
	if ctx.IsSet("log-level") {
		c.LogLevel = ctx.String("log-level")
	}
	if ctx.NArg() > 0 {
		c.Jobs = []string(ctx.Args())
	}
	if err := c.Validate(); err != nil {
		return cli.NewExitError(err.Error(), 2)
	}

	log := hclog.New(&hclog.LoggerOptions{
		Name:  "vsched-sim",
		Level: hclog.LevelFromString(c.LogLevel),
	})

	r, err := sim.Run(c, log)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(r.Fires))
	for n := range r.Fires {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Printf("%s\t%d\n", n, r.Fires[n])
	}
	return nil
}
