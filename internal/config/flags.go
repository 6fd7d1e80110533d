package config

import (
	"flag"
	"fmt"
	"time"

	"fidget/internal/util"
)

// Config is the command-line configuration of one run.
type Config struct {
	Seed        uint32
	Tick        time.Duration
	Duration    time.Duration // 0 runs until interrupted
	TuningPath  string
	Stats       bool
	Headless    bool
	DryRun      bool
	ShowVersion bool
}

// ParseFlags parses the command line. args excludes the program name.
func ParseFlags(args []string) (*Config, error) {
	return parseFlags(args, time.Now())
}

func parseFlags(args []string, now time.Time) (*Config, error) {
	flags := flag.NewFlagSet("fidget", flag.ContinueOnError)

	seed := flags.Uint("seed", 0, "random seed; 0 derives one from the clock")
	tick := flags.Duration("tick", 8*time.Millisecond, "control loop tick interval")
	duration := flags.String("duration", "", "how long to run (e.g. \"2h30m\" or minutes); empty runs until interrupted")
	flags.StringVar(duration, "d", "", "shorthand for -duration")
	until := flags.String("until", "", "local clock time to stop at (e.g. \"22:00\" or \"10:30PM\")")
	tuningPath := flags.String("config", "", "path to a tuning YAML file")
	statsOn := flags.Bool("stats", false, "enable performance statistics")
	headless := flags.Bool("headless", false, "run without the terminal UI, shell on stdin")
	dryRun := flags.Bool("dry-run", false, "do not open a pointer device; discard motion")
	showVersion := flags.Bool("version", false, "show version information")
	flags.BoolVar(showVersion, "v", false, "shorthand for -version")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{
		Seed:        uint32(*seed),
		Tick:        *tick,
		TuningPath:  *tuningPath,
		Stats:       *statsOn,
		Headless:    *headless,
		DryRun:      *dryRun,
		ShowVersion: *showVersion,
	}

	if *duration != "" {
		d, err := util.ParseDuration(*duration)
		if err != nil {
			return nil, err
		}
		if d <= 0 {
			return nil, fmt.Errorf("duration must be positive, got %s", *duration)
		}
		cfg.Duration = d
	}
	if *until != "" {
		if cfg.Duration > 0 {
			return nil, fmt.Errorf("use either -duration or -until, not both")
		}
		end, err := util.ParseTimeStringWithNow(*until, now)
		if err != nil {
			return nil, err
		}
		d := end.Sub(now)
		if d <= 0 {
			// A clock time already past today means the same time tomorrow.
			d += 24 * time.Hour
		}
		cfg.Duration = d
	}
	if cfg.Tick <= 0 {
		return nil, fmt.Errorf("tick must be positive, got %s", cfg.Tick)
	}

	return cfg, nil
}
