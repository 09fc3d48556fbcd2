package core

import (
	"context"
	"time"
)

// Sim is a tick-driven simulation. It never schedules itself; a host calls
// Step once per tick until Running reports false.
type Sim interface {
	Name() string
	Step() error
	Stop()
	Running() bool
	CurrentStep() int
}

// Drive steps sim until it stops by itself, maxSteps is reached (when
// positive), Step fails, or ctx is done. With a nil pacer steps run back to
// back; otherwise each step waits for the pacer's next tick. The sim is
// stopped on every exit path.
func Drive(ctx context.Context, sim Sim, pacer *FixedStep, maxSteps int) error {
	defer sim.Stop()
	for sim.Running() {
		if maxSteps > 0 && sim.CurrentStep() >= maxSteps {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if pacer != nil && !pacer.ShouldStep() {
			if err := sleep(ctx, pacer.Remaining()); err != nil {
				return err
			}
			continue
		}
		if err := sim.Step(); err != nil {
			return err
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
