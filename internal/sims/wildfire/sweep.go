package wildfire

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SweepCase is one Monte Carlo configuration: a wind, a seed and optional
// param overrides applied on top of the parent's config.
type SweepCase struct {
	Name   string
	Wind   Wind
	Seed   int64
	Params *Params
}

// SweepResult captures telemetry from a single sweep run.
type SweepResult struct {
	Case SweepCase
	// Steps is the number of ticks executed before the fire died out or the
	// step budget ran out.
	Steps int
	// BurntOut counts points that finished burning.
	BurntOut int
	// Burning counts points still alight when the run ended.
	Burning     int
	PeakBurning int
	// Fraction is the share of the field touched by fire.
	Fraction float64
	// Extinct reports whether the fire died out within the budget.
	Extinct bool
}

// Sweep runs every case to completion (or maxSteps) on its own copy of the
// field, sharing the read-only spatial index across workers. Results are
// returned in case order. Each case starts from random seed points drawn
// from its own seed, so results do not depend on the worker count.
func (s *Simulation) Sweep(ctx context.Context, cases []SweepCase, maxSteps, workers int) ([]SweepResult, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]SweepResult, len(cases))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range cases {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.runCase(c, maxSteps)
			if err != nil {
				return fmt.Errorf("sweep case %d (%s): %w", i, c.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Simulation) runCase(c SweepCase, maxSteps int) (SweepResult, error) {
	cfg := s.cfg
	if c.Params != nil {
		cfg.Params = *c.Params
	}
	run := s.fork(cfg, c.Seed)
	run.SetWind(c.Wind)
	if err := run.Start(); err != nil {
		return SweepResult{}, err
	}
	for run.Running() && (maxSteps <= 0 || run.CurrentStep() < maxSteps) {
		if err := run.Step(); err != nil {
			return SweepResult{}, err
		}
	}
	st := run.Stats()
	total := run.field.Len()
	return SweepResult{
		Case:        c,
		Steps:       st.Step,
		BurntOut:    st.BurntOut,
		Burning:     st.Burning,
		PeakBurning: st.PeakBurning,
		Fraction:    float64(st.BurntOut+st.Burning) / float64(total),
		Extinct:     st.Burning == 0,
	}, nil
}
