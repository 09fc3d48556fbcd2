package main

import (
	"flag"
	"strings"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Config represents the command-line parameters for the runner.
type Config struct {
	Scenario  string
	Seed      int64
	TPS       int
	MaxSteps  int
	Fast      bool
	Verbose   bool
	Overrides kvList
}

// NewConfig returns a Config populated with defaults. Zero values defer to
// the scenario.
func NewConfig() *Config {
	return &Config{}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Scenario, "scenario", c.Scenario, "scenario file (INI); empty uses the built-in grid")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for ignition and spread draws (0 keeps the scenario seed)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second (0 keeps the scenario rate)")
	fs.IntVar(&c.MaxSteps, "steps", c.MaxSteps, "stop after this many steps (0 keeps the scenario limit)")
	fs.BoolVar(&c.Fast, "fast", c.Fast, "step as fast as possible instead of pacing ticks")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "log every burning point at debug level")
	fs.Var(&c.Overrides, "set", "parameter override in key=value form (repeatable)")
}
