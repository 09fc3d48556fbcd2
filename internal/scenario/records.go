package scenario

import (
	"math"
	"sort"

	"wildfire/internal/sims/wildfire"
	"wildfire/pkg/core"
)

// Records returns the scenario's points. Named points are returned sorted by
// name so ids are stable across runs; a scenario without named points
// generates its grid instead.
func (c *Config) Records() []wildfire.Record {
	if len(c.Point) > 0 {
		names := make([]string, 0, len(c.Point))
		for name := range c.Point {
			names = append(names, name)
		}
		sort.Strings(names)
		records := make([]wildfire.Record, 0, len(names))
		for _, name := range names {
			p := c.Point[name]
			records = append(records, wildfire.Record{Lat: p.Lat, Lon: p.Lon, Criticality: p.Criticality})
		}
		return records
	}
	return c.Grid.Records(c.Simulation.Seed)
}

// jitterStream keeps grid jitter apart from the ignition draws of a
// simulation sharing the same seed.
const jitterStream = 7

// Records generates the grid points row by row from the south-west corner.
// Jitter is drawn from a dedicated stream derived from seed.
func (g *GridConfig) Records(seed int64) []wildfire.Record {
	rows, cols := g.Rows(), g.Cols()
	rng := core.NewRNG(seed).Split(jitterStream)
	records := make([]wildfire.Record, 0, rows*cols)
	k := 2 * math.Pi / g.Wavelength
	for r := 0; r < rows; r++ {
		dy := float64(r) * g.Spacing
		for col := 0; col < cols; col++ {
			dx := float64(col) * g.Spacing
			v := g.Base + g.Amplitude*math.Sin(k*dx)*math.Cos(k*dy)
			if g.Jitter > 0 {
				v += g.Jitter * (rng.Float64() - 0.5)
			}
			records = append(records, wildfire.Record{
				Lat:         g.MinLat + dy,
				Lon:         g.MinLon + dx,
				Criticality: v,
			})
		}
	}
	return records
}
