package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wildfire/internal/core"
	"wildfire/internal/scenario"
	"wildfire/internal/sims/wildfire"
)

func main() {
	cfg := NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := core.NewLogger(os.Stderr, level)

	sc := scenario.Default()
	if cfg.Scenario != "" {
		var err error
		sc, err = scenario.ReadFile(cfg.Scenario)
		if err != nil {
			logger.Error("read scenario", "path", cfg.Scenario, "err", err)
			os.Exit(1)
		}
	}
	if cfg.Seed != 0 {
		sc.Simulation.Seed = cfg.Seed
	}
	if cfg.TPS > 0 {
		sc.Simulation.TPS = cfg.TPS
	}
	if cfg.MaxSteps > 0 {
		sc.Simulation.MaxSteps = cfg.MaxSteps
	}

	sim := wildfire.NewSimulation(sc.WildfireConfig())
	records := sc.Records()
	loadStart := time.Now()
	if err := sim.Load(records); err != nil {
		logger.Error("load points", "records", len(records), "err", err)
		os.Exit(1)
	}
	logger.Info("points loaded", "points", len(sim.Points()), "elapsed", time.Since(loadStart).Round(time.Millisecond))

	sim.SetWind(sc.ResolvedWind())
	for _, kv := range cfg.Overrides {
		key, value, err := core.ParseOverride(kv)
		if err == nil {
			err = core.ApplyOverride(sim, key, value)
		}
		if err != nil {
			logger.Error("apply override", "override", kv, "err", err)
			os.Exit(2)
		}
	}
	logger.Info("parameters", "values", sim.Parameters().Flatten())

	sim.OnSnapshot(func(step int, snapshot []wildfire.Point) {
		report := sim.LastReport()
		logger.Info("step",
			"step", step,
			"burning", report.Burning,
			"ignited", report.Ignited,
			"burnt_out", report.BurntOut,
			"touched", len(snapshot),
		)
		if !logger.Enabled(context.Background(), slog.LevelDebug) {
			return
		}
		for _, p := range snapshot {
			if p.State == wildfire.Burning {
				logger.Debug("burning", "id", p.ID, "lat", p.Lat, "lon", p.Lon, "k", p.Criticality, "remaining", p.BurnTimeRemaining)
			}
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sim.Start(); err != nil {
		logger.Error("start simulation", "err", err)
		os.Exit(1)
	}

	var pacer *core.FixedStep
	if !cfg.Fast {
		pacer = core.NewFixedStep(sc.Simulation.TPS)
	}
	runStart := time.Now()
	err := core.Drive(ctx, sim, pacer, sc.Simulation.MaxSteps)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Warn("interrupted", "step", sim.CurrentStep())
	case err != nil:
		logger.Error("simulation stopped", "step", sim.CurrentStep(), "err", err)
		os.Exit(1)
	}

	st := sim.Stats()
	total := st.Unburnt + st.Burning + st.BurntOut
	logger.Info("summary",
		"steps", st.Step,
		"burnt_out", st.BurntOut,
		"still_burning", st.Burning,
		"peak_burning", st.PeakBurning,
		"fraction", float64(st.BurntOut+st.Burning)/float64(total),
		"elapsed", time.Since(runStart).Round(time.Millisecond),
	)
}
