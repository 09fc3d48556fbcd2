package core

import "time"

// FixedStep helps run simulation updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	return NewFixedStepWithClock(tps, time.Now)
}

// NewFixedStepWithClock is NewFixedStep with an explicit time source.
func NewFixedStepWithClock(tps int, now func() time.Time) *FixedStep {
	if now == nil {
		now = time.Now
	}
	fs := &FixedStep{now: now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. Non-positive rates fall back to one tick per
// second.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 1
	}
	f.step = time.Second / time.Duration(tps)
}

// Interval returns the duration of one tick.
func (f *FixedStep) Interval() time.Duration { return f.step }

func (f *FixedStep) advance() {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
}

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	f.advance()
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Remaining returns how long until the next tick is due.
func (f *FixedStep) Remaining() time.Duration {
	f.advance()
	if f.accumulator >= f.step {
		return 0
	}
	return f.step - f.accumulator
}
