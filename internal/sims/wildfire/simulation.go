package wildfire

import (
	"fmt"

	"wildfire/internal/spatial"
	"wildfire/pkg/core"
)

// Observer receives the Burning and BurntOut points after seeding and after
// every step.
type Observer func(step int, snapshot []Point)

// Stats summarises the current state of the field.
type Stats struct {
	Step        int
	Unburnt     int
	Burning     int
	BurntOut    int
	PeakBurning int
}

// Simulation is one wildfire session: the point field, its index, the wind,
// the clock and the random source. It is driven by calls to Step and is not
// safe for concurrent use.
type Simulation struct {
	cfg Config

	field *Field
	index *spatial.Index
	wind  Wind

	step    int
	running bool
	peak    int

	rng      Source
	seeded   *core.RNG
	spreader *Spreader
	observer Observer
	last     StepReport
}

// NewSimulation returns an idle simulation with no data loaded. A BurnSteps
// below one is raised to one.
func NewSimulation(cfg Config) *Simulation {
	cfg.Params = cfg.Params.normalized()
	rng := core.NewRNG(cfg.Seed)
	return &Simulation{
		cfg:      cfg,
		rng:      rng,
		seeded:   rng,
		spreader: NewSpreader(cfg.Params),
	}
}

// Name returns the simulation identifier.
func (s *Simulation) Name() string { return "wildfire" }

// Config returns the active configuration.
func (s *Simulation) Config() Config { return s.cfg }

// Load replaces the point field and rebuilds the spatial index. A running
// simulation is stopped first. Invalid input leaves the previous field in
// place; an index failure keeps the new field but the simulation cannot start
// until a successful Load.
func (s *Simulation) Load(records []Record) error {
	s.Stop()
	field, err := NewField(records)
	if err != nil {
		return err
	}
	s.field = field
	s.index = nil
	s.step = 0
	s.peak = 0
	index, err := spatial.Build(field.Coords())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	s.index = index
	return nil
}

// SetWind updates the wind used from the next step onward.
func (s *Simulation) SetWind(w Wind) { s.wind = w }

// Wind returns the current wind.
func (s *Simulation) Wind() Wind { return s.wind }

// SetSource replaces the random source.
func (s *Simulation) SetSource(src Source) {
	if src == nil {
		return
	}
	s.rng = src
	s.seeded = nil
}

// Reseed resets the built-in random source. A zero seed selects the
// configured one.
func (s *Simulation) Reseed(seed int64) {
	effective := seed
	if effective == 0 {
		effective = s.cfg.Seed
	}
	if s.seeded == nil {
		s.seeded = core.NewRNG(effective)
	} else {
		s.seeded.Reseed(effective)
	}
	s.rng = s.seeded
}

// OnSnapshot registers the observer notified after seeding and each step.
func (s *Simulation) OnSnapshot(fn Observer) { s.observer = fn }

func (s *Simulation) checkReady() error {
	if s.field.Len() == 0 {
		return ErrNoData
	}
	if s.index == nil || s.index.Len() != s.field.Len() {
		return ErrIndexUnavailable
	}
	return nil
}

func (s *Simulation) reset() {
	s.field.Reset()
	s.step = 0
	s.peak = 0
	s.last = StepReport{}
}

// Start resets the field and clock and ignites InitialFires distinct random
// points. If no point could be ignited that way, point 0 is ignited. Start is
// a no-op while running.
func (s *Simulation) Start() error {
	if s.running {
		return nil
	}
	if err := s.checkReady(); err != nil {
		return err
	}
	s.reset()

	burn := s.cfg.Params.BurnSteps
	n := s.field.Len()
	count := min(s.cfg.Params.InitialFires, n)
	started := 0
	if count > 0 {
		for _, id := range s.rng.Perm(n)[:count] {
			if s.field.Ignite(id, burn) {
				started++
			}
		}
	}
	if started == 0 {
		s.field.Ignite(0, burn)
	}
	s.begin()
	return nil
}

// StartAt is Start with explicit seed points. Unknown ids are ignored; if
// none of the ids can be ignited, point 0 is used.
func (s *Simulation) StartAt(ids ...int) error {
	if s.running {
		return nil
	}
	if err := s.checkReady(); err != nil {
		return err
	}
	s.reset()

	burn := s.cfg.Params.BurnSteps
	started := 0
	for _, id := range ids {
		if s.field.Ignite(id, burn) {
			started++
		}
	}
	if started == 0 {
		s.field.Ignite(0, burn)
	}
	s.begin()
	return nil
}

func (s *Simulation) begin() {
	s.running = true
	s.peak = s.field.Count(Burning)
	s.last = StepReport{Burning: s.peak}
	s.emit()
}

// Step advances the clock and runs one spread pass. The simulation stops by
// itself when nothing is left burning. Calling Step while idle does nothing.
func (s *Simulation) Step() error {
	if !s.running {
		return nil
	}
	if s.index == nil || s.index.Len() != s.field.Len() {
		s.Stop()
		return ErrIndexUnavailable
	}
	s.step++
	s.last = s.spreader.Advance(s.field, s.index, s.wind, s.step, s.rng)
	if s.last.Burning > s.peak {
		s.peak = s.last.Burning
	}
	s.emit()
	if s.last.Burning == 0 && s.step > 0 {
		s.running = false
	}
	return nil
}

// Stop halts the simulation. It is safe to call repeatedly.
func (s *Simulation) Stop() { s.running = false }

// Running reports whether the simulation accepts steps.
func (s *Simulation) Running() bool { return s.running }

// CurrentStep returns the clock value.
func (s *Simulation) CurrentStep() int { return s.step }

// LastReport returns the report of the most recent step.
func (s *Simulation) LastReport() StepReport { return s.last }

// Snapshot returns copies of every Burning or BurntOut point.
func (s *Simulation) Snapshot() []Point { return s.field.Snapshot() }

// Points returns copies of every point.
func (s *Simulation) Points() []Point { return s.field.Points() }

// Stats counts points per state.
func (s *Simulation) Stats() Stats {
	st := Stats{Step: s.step, PeakBurning: s.peak}
	if s.field == nil {
		return st
	}
	for _, p := range s.field.points {
		switch p.State {
		case Unburnt:
			st.Unburnt++
		case Burning:
			st.Burning++
		case BurntOut:
			st.BurntOut++
		}
	}
	return st
}

func (s *Simulation) emit() {
	if s.observer == nil {
		return
	}
	s.observer(s.step, s.field.Snapshot())
}

// fork returns an idle simulation sharing the read-only index with a private
// copy of the field.
func (s *Simulation) fork(cfg Config, seed int64) *Simulation {
	f := NewSimulation(cfg)
	f.Reseed(seed)
	f.field = s.field.Clone()
	f.index = s.index
	f.wind = s.wind
	return f
}
