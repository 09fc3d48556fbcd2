package wildfire

import (
	"testing"

	"github.com/stretchr/testify/require"

	"wildfire/pkg/core"
)

const (
	baseLat = 9.95
	baseLon = 76.98
)

// rowRecords lays out points west to east, spacing degrees apart.
func rowRecords(ks ...float64) []Record {
	records := make([]Record, len(ks))
	for i, k := range ks {
		records[i] = Record{Lat: baseLat, Lon: baseLon + float64(i)*0.0001, Criticality: k}
	}
	return records
}

func gridRecords(w, h int, spacing float64, k func(x, y int) float64) []Record {
	records := make([]Record, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			records = append(records, Record{
				Lat:         baseLat + float64(y)*spacing,
				Lon:         baseLon + float64(x)*spacing,
				Criticality: k(x, y),
			})
		}
	}
	return records
}

// certainConfig makes every eligible candidate ignite: no decay, no
// threshold, and neighbours limited to the adjacent row points.
func certainConfig() Config {
	cfg := DefaultConfig()
	cfg.Params.DecayRate = 0
	cfg.Params.SpreadThreshold = 0
	cfg.Params.SearchRadius = 0.00015
	return cfg
}

func loaded(t *testing.T, cfg Config, records []Record) *Simulation {
	t.Helper()
	sim := NewSimulation(cfg)
	require.NoError(t, sim.Load(records))
	return sim
}

func states(sim *Simulation) []State {
	pts := sim.Points()
	out := make([]State, len(pts))
	for i, p := range pts {
		out[i] = p.State
	}
	return out
}

// zeroSource always draws 0, the most favourable value for ignition.
type zeroSource struct{ draws int }

func (z *zeroSource) Float64() float64 { z.draws++; return 0 }
func (z *zeroSource) Perm(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

type countingSource struct {
	*core.RNG
	draws int
}

func (c *countingSource) Float64() float64 {
	c.draws++
	return c.RNG.Float64()
}
