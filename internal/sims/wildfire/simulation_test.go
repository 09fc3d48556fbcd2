package wildfire

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wildfire/internal/core"
)

func landscape(x, y int) float64 {
	return 0.55 + 0.45*math.Sin(float64(x)*0.7)*math.Cos(float64(y)*0.4)
}

func TestStartRequiresData(t *testing.T) {
	sim := NewSimulation(DefaultConfig())
	err := sim.Start()
	assert.True(t, errors.Is(err, ErrNoData), "got %v", err)
	assert.False(t, sim.Running())

	err = sim.StartAt(0)
	assert.True(t, errors.Is(err, ErrNoData), "got %v", err)
}

func TestStartRequiresIndex(t *testing.T) {
	sim := NewSimulation(DefaultConfig())
	field, err := NewField(rowRecords(0.9, 0.9))
	require.NoError(t, err)
	sim.field = field

	err = sim.Start()
	assert.True(t, errors.Is(err, ErrIndexUnavailable), "got %v", err)
	assert.False(t, sim.Running())
}

func TestLoadRejectsInvalidInput(t *testing.T) {
	sim := NewSimulation(DefaultConfig())
	err := sim.Load(nil)
	assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
	assert.True(t, errors.Is(sim.Start(), ErrNoData))
}

func TestStartSeedsDistinctFires(t *testing.T) {
	sim := loaded(t, DefaultConfig(), gridRecords(10, 10, 0.0005, landscape))
	require.NoError(t, sim.Start())

	assert.True(t, sim.Running())
	assert.Equal(t, 0, sim.CurrentStep())
	snap := sim.Snapshot()
	require.Len(t, snap, 3)
	for _, p := range snap {
		assert.Equal(t, Burning, p.State)
		assert.Equal(t, 5, p.BurnTimeRemaining)
	}
	assert.Equal(t, 3, sim.Stats().PeakBurning)
}

func TestStartSeedCountLimitedByField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.InitialFires = 10
	sim := loaded(t, cfg, rowRecords(0.2, 0.2))
	require.NoError(t, sim.Start())
	assert.Equal(t, []State{Burning, Burning}, states(sim))
}

func TestStartFallsBackToFirstPoint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.InitialFires = 0
	sim := loaded(t, cfg, rowRecords(0.2, 0.2, 0.2))
	require.NoError(t, sim.Start())
	assert.Equal(t, []State{Burning, Unburnt, Unburnt}, states(sim))

	sim.Stop()
	require.NoError(t, sim.StartAt(-4, 99))
	assert.Equal(t, []State{Burning, Unburnt, Unburnt}, states(sim))
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	sim := loaded(t, certainConfig(), rowRecords(1, 1, 1, 1, 1))
	require.NoError(t, sim.StartAt(0))
	require.NoError(t, sim.Step())
	before := states(sim)

	require.NoError(t, sim.Start())
	assert.Equal(t, before, states(sim))
	assert.Equal(t, 1, sim.CurrentStep())
}

func TestRestartResetsFieldAndClock(t *testing.T) {
	sim := loaded(t, certainConfig(), rowRecords(1, 1, 1, 1, 1))
	require.NoError(t, sim.StartAt(0))
	for i := 0; i < 7 && sim.Running(); i++ {
		require.NoError(t, sim.Step())
	}
	require.NotZero(t, sim.Stats().BurntOut)
	sim.Stop()

	require.NoError(t, sim.StartAt(4))
	assert.Equal(t, 0, sim.CurrentStep())
	assert.Equal(t, []State{Unburnt, Unburnt, Unburnt, Unburnt, Burning}, states(sim))
}

func TestStepWhileIdleDoesNothing(t *testing.T) {
	sim := loaded(t, DefaultConfig(), rowRecords(0.9, 0.9))
	require.NoError(t, sim.Step())
	assert.Equal(t, 0, sim.CurrentStep())
	assert.Empty(t, sim.Snapshot())
}

func TestStopIsIdempotent(t *testing.T) {
	sim := loaded(t, DefaultConfig(), rowRecords(0.9, 0.9))
	require.NoError(t, sim.Start())
	sim.Stop()
	sim.Stop()
	assert.False(t, sim.Running())
	require.NoError(t, sim.Step())
	assert.Equal(t, 0, sim.CurrentStep(), "no steps after stop")
}

func TestAutoTerminationAfterSingleStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.BurnSteps = 1
	sim := loaded(t, cfg, []Record{
		{Lat: baseLat, Lon: baseLon, Criticality: 1},
		{Lat: baseLat + 0.01, Lon: baseLon, Criticality: 1},
		{Lat: baseLat, Lon: baseLon + 0.01, Criticality: 1},
	})
	require.NoError(t, sim.StartAt(0))
	require.True(t, sim.Running())

	require.NoError(t, sim.Step())
	assert.False(t, sim.Running())
	assert.Equal(t, 1, sim.CurrentStep())
	assert.Equal(t, []State{BurntOut, Unburnt, Unburnt}, states(sim))
}

func TestStepWithoutIndexForceStops(t *testing.T) {
	sim := loaded(t, DefaultConfig(), rowRecords(0.9, 0.9))
	require.NoError(t, sim.Start())
	sim.index = nil

	err := sim.Step()
	assert.True(t, errors.Is(err, ErrIndexUnavailable), "got %v", err)
	assert.False(t, sim.Running())
}

func runSnapshots(t *testing.T, seed int64, steps int) [][]Point {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = seed
	cfg.Params.SpreadThreshold = 0.3
	sim := loaded(t, cfg, gridRecords(24, 24, 0.0004, landscape))
	sim.SetWind(NewWind(5, 200))

	var snaps [][]Point
	sim.OnSnapshot(func(step int, snapshot []Point) {
		snaps = append(snaps, snapshot)
	})
	require.NoError(t, sim.Start())
	for i := 0; i < steps && sim.Running(); i++ {
		require.NoError(t, sim.Step())
	}
	return snaps
}

func TestRunsAreDeterministicForSeed(t *testing.T) {
	a := runSnapshots(t, 21, 40)
	b := runSnapshots(t, 21, 40)
	require.Equal(t, len(a), len(b))
	for i := range a {
		if !slices.Equal(a[i], b[i]) {
			t.Fatalf("snapshot %d differs between runs", i)
		}
	}
}

func TestStateTransitionsAreMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.SpreadThreshold = 0.2
	sim := loaded(t, cfg, gridRecords(20, 20, 0.0004, landscape))
	sim.SetWind(NewWind(8, 45))
	require.NoError(t, sim.Start())

	prev := states(sim)
	for sim.Running() && sim.CurrentStep() < 200 {
		require.NoError(t, sim.Step())
		cur := states(sim)
		for i := range cur {
			switch {
			case prev[i] == BurntOut && cur[i] != BurntOut:
				t.Fatalf("step %d: point %d left BurntOut for %s", sim.CurrentStep(), i, cur[i])
			case prev[i] == Burning && cur[i] == Unburnt:
				t.Fatalf("step %d: point %d went from Burning to Unburnt", sim.CurrentStep(), i)
			}
		}
		for _, p := range sim.Points() {
			if p.State == Burning && p.BurnTimeRemaining <= 0 {
				t.Fatalf("step %d: burning point %d has no burn time left", sim.CurrentStep(), p.ID)
			}
		}
		prev = cur
	}
}

func TestObserverSeesSeedingAndEveryStep(t *testing.T) {
	sim := loaded(t, certainConfig(), rowRecords(1, 1, 1))
	var steps []int
	sim.OnSnapshot(func(step int, snapshot []Point) {
		steps = append(steps, step)
		for _, p := range snapshot {
			if p.State == Unburnt {
				t.Fatalf("snapshot at step %d contains unburnt point %d", step, p.ID)
			}
		}
	})
	require.NoError(t, sim.StartAt(0))
	for sim.Running() {
		require.NoError(t, sim.Step())
	}
	require.NotEmpty(t, steps)
	for i, s := range steps {
		assert.Equal(t, i, s)
	}
}

func TestReseedRestoresSequence(t *testing.T) {
	sim := loaded(t, DefaultConfig(), gridRecords(8, 8, 0.0005, landscape))
	require.NoError(t, sim.Start())
	first := sim.Snapshot()
	sim.Stop()

	sim.Reseed(0)
	require.NoError(t, sim.Start())
	assert.Equal(t, first, sim.Snapshot())
}

func TestStatsCountsStates(t *testing.T) {
	sim := loaded(t, certainConfig(), rowRecords(1, 1, 1, 1))
	require.NoError(t, sim.StartAt(0))
	require.NoError(t, sim.Step())
	require.NoError(t, sim.Step())

	st := sim.Stats()
	assert.Equal(t, 2, st.Step)
	assert.Equal(t, 4, st.Unburnt+st.Burning+st.BurntOut)
	assert.Equal(t, 3, st.Burning)
	assert.Equal(t, 1, st.Unburnt)
	assert.Equal(t, 0, st.BurntOut)
	assert.Equal(t, 3, st.PeakBurning)
}

func TestParameterSetters(t *testing.T) {
	sim := loaded(t, DefaultConfig(), rowRecords(0.9, 0.9))

	assert.True(t, sim.SetFloatParameter("wind_from", 450))
	assert.Equal(t, 90.0, sim.Wind().FromDegrees)
	assert.True(t, sim.Wind().HasDirection)
	assert.True(t, sim.SetFloatParameter("wind_speed", 3))
	assert.True(t, sim.Wind().Active())
	assert.False(t, sim.SetFloatParameter("wind_speed", -1))
	assert.False(t, sim.SetFloatParameter("wind_speed", math.NaN()))
	assert.False(t, sim.SetFloatParameter("nonsense", 1))

	assert.True(t, sim.SetFloatParameter("spread_threshold", 2))
	assert.Equal(t, 1.0, sim.Config().Params.SpreadThreshold)
	assert.Equal(t, 1.0, sim.spreader.Params.SpreadThreshold)

	assert.True(t, sim.SetFloatParameter("wind_scaler", 0.2))
	assert.Equal(t, 0.2, sim.spreader.Wind.Scaler)

	assert.True(t, sim.SetIntParameter("burn_steps", 9))
	assert.Equal(t, 9, sim.spreader.Params.BurnSteps)
	assert.False(t, sim.SetIntParameter("burn_steps", 0))
	assert.False(t, sim.SetIntParameter("initial_fires", -1))
}

func TestParametersSnapshot(t *testing.T) {
	sim := NewSimulation(DefaultConfig())
	snap := sim.Parameters()

	p, ok := snap.Lookup("burn_steps")
	require.True(t, ok)
	assert.Equal(t, "5", p.Value)

	p, ok = snap.Lookup("wind_from")
	require.True(t, ok)
	assert.Equal(t, "unset", p.Value)

	sim.SetWind(NewWind(2, 135))
	p, _ = sim.Parameters().Lookup("wind_from")
	assert.Equal(t, "135", p.Value)

	for _, ctrl := range sim.ParameterControls() {
		_, ok := snap.Lookup(ctrl.Key)
		assert.True(t, ok, "control %s missing from snapshot", ctrl.Key)
	}
}

func TestApplyOverrideReachesSimulation(t *testing.T) {
	sim := NewSimulation(DefaultConfig())
	require.NoError(t, core.ApplyOverride(sim, "burn_steps", "7"))
	require.NoError(t, core.ApplyOverride(sim, "search_radius", "0.001"))
	require.NoError(t, core.ApplyOverride(sim, "wind_from", "180"))

	assert.Equal(t, 7, sim.Config().Params.BurnSteps)
	assert.Equal(t, 0.001, sim.Config().Params.SearchRadius)
	assert.Equal(t, 180.0, sim.Wind().FromDegrees)
	assert.Error(t, core.ApplyOverride(sim, "seed", "4"))
}

func TestApplyOverrideRejectsOutOfRangeValues(t *testing.T) {
	sim := NewSimulation(DefaultConfig())
	assert.Error(t, core.ApplyOverride(sim, "spread_threshold", "5"))
	assert.Error(t, core.ApplyOverride(sim, "burn_steps", "0"))
	assert.Error(t, core.ApplyOverride(sim, "wind_speed", "-1"))

	p := sim.Config().Params
	assert.Equal(t, DefaultConfig().Params.SpreadThreshold, p.SpreadThreshold)
	assert.Equal(t, DefaultConfig().Params.BurnSteps, p.BurnSteps)
	assert.Equal(t, 0.0, sim.Wind().Speed)
}

func TestZeroBurnStepsIsRaisedToOne(t *testing.T) {
	sim := loaded(t, Config{}, rowRecords(1, 1))
	assert.Equal(t, 1, sim.Config().Params.BurnSteps)
	assert.Equal(t, 1, sim.spreader.Params.BurnSteps)

	require.NoError(t, sim.Start())
	p, ok := sim.field.Point(0)
	require.True(t, ok)
	assert.Equal(t, Burning, p.State)
	assert.Equal(t, 1, p.BurnTimeRemaining)

	require.NoError(t, sim.Step())
	assert.False(t, sim.Running())
	assert.Equal(t, []State{BurntOut, Unburnt}, states(sim))
}

func TestSweepCaseRaisesZeroBurnSteps(t *testing.T) {
	sim := loaded(t, certainConfig(), rowRecords(1, 1, 1))
	params := certainConfig().Params
	params.BurnSteps = 0
	params.InitialFires = 1
	res, err := sim.runCase(SweepCase{Name: "zero burn", Seed: 3, Params: &params}, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, res.BurntOut, "a one-step burn dies before it can nominate")
	assert.True(t, res.Extinct)
}
