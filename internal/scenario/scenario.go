// Package scenario reads wildfire run descriptions from INI-style files.
//
// A scenario file looks like:
//
//	[simulation]
//	Seed = 42
//	TPS = 1
//	MaxSteps = 500
//
//	[wind]
//	Speed = 4.5
//	From = 225
//
//	[spread]
//	BurnSteps = 5
//	SpreadThreshold = 0.525
//
//	[grid]
//	MinLat = 9.90
//	MaxLat = 9.95
//	MinLon = 76.95
//	MaxLon = 77.00
//	Spacing = 0.0004
//
//	[point "ridge"]
//	Lat = 9.93
//	Lon = 76.97
//	Criticality = 0.9
//
// Every section is optional. Without a grid or points the default grid is
// used.
package scenario

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/gcfg.v1"

	"wildfire/internal/sims/wildfire"
)

// Bounding box of the sampled area the default grid covers.
const (
	DefaultMinLat = 9.727003
	DefaultMaxLat = 10.167459
	DefaultMinLon = 76.756774
	DefaultMaxLon = 77.202241
)

// MaxGridPoints bounds how many points a grid section may generate.
const MaxGridPoints = 4_000_000

type SimulationConfig struct {
	Seed     int64
	TPS      int
	MaxSteps int
}

type WindConfig struct {
	Speed float64
	// From is the bearing the wind blows from. Empty or "unset" means no
	// direction.
	From string
}

type SpreadConfig struct {
	BurnSteps          int
	SearchRadius       float64
	InitialFires       int
	SpreadThreshold    float64
	DecayRate          float64
	DecayFloor         float64
	WindScaler         float64
	MaxWindBonus       float64
	UpwindPenaltyRatio float64
}

// GridConfig generates regularly spaced points over a bounding box. The
// criticality surface is Base + Amplitude*sin(2πx/Wavelength)*cos(2πy/Wavelength)
// plus uniform jitter, where x and y are degree offsets from the south-west
// corner.
type GridConfig struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
	Spacing        float64

	Base       float64
	Amplitude  float64
	Wavelength float64
	Jitter     float64
}

type PointConfig struct {
	Lat, Lon    float64
	Criticality float64
}

// Config is the raw contents of a scenario file.
type Config struct {
	Simulation SimulationConfig
	Wind       WindConfig
	Spread     SpreadConfig
	Grid       GridConfig
	Point      map[string]*PointConfig
}

// Default returns a scenario over the default bounding box at a coarse
// spacing, with the wildfire package defaults.
func Default() *Config {
	def := wildfire.DefaultConfig()
	p := def.Params
	return &Config{
		Simulation: SimulationConfig{Seed: def.Seed, TPS: 1},
		Spread: SpreadConfig{
			BurnSteps:          p.BurnSteps,
			SearchRadius:       p.SearchRadius,
			InitialFires:       p.InitialFires,
			SpreadThreshold:    p.SpreadThreshold,
			DecayRate:          p.DecayRate,
			DecayFloor:         p.DecayFloor,
			WindScaler:         p.WindScaler,
			MaxWindBonus:       p.MaxWindBonus,
			UpwindPenaltyRatio: p.UpwindPenaltyRatio,
		},
		Grid: GridConfig{
			MinLat:     DefaultMinLat,
			MaxLat:     DefaultMinLat + 0.04,
			MinLon:     DefaultMinLon,
			MaxLon:     DefaultMinLon + 0.04,
			Spacing:    0.0004,
			Base:       0.6,
			Amplitude:  0.3,
			Wavelength: 0.01,
			Jitter:     0.1,
		},
	}
}

// ReadFile parses a scenario file on top of the defaults.
func ReadFile(fname string) (*Config, error) {
	c := Default()
	if err := gcfg.ReadFileInto(c, fname); err != nil {
		return nil, err
	}
	if err := c.CheckInit(); err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return c, nil
}

// ReadString parses scenario text on top of the defaults.
func ReadString(text string) (*Config, error) {
	c := Default()
	if err := gcfg.ReadStringInto(c, text); err != nil {
		return nil, err
	}
	if err := c.CheckInit(); err != nil {
		return nil, err
	}
	return c, nil
}

// CheckInit validates the scenario.
func (c *Config) CheckInit() error {
	if c.Simulation.TPS < 0 {
		return fmt.Errorf("TPS in [simulation] must be non-negative, but is %d", c.Simulation.TPS)
	}
	if c.Simulation.MaxSteps < 0 {
		return fmt.Errorf("MaxSteps in [simulation] must be non-negative, but is %d", c.Simulation.MaxSteps)
	}
	if c.Wind.Speed < 0 {
		return fmt.Errorf("Speed in [wind] must be non-negative, but is %g", c.Wind.Speed)
	}
	if _, err := c.windFrom(); err != nil {
		return err
	}
	if c.Spread.BurnSteps <= 0 {
		return fmt.Errorf("BurnSteps in [spread] must be positive, but is %d", c.Spread.BurnSteps)
	}
	if c.Spread.SearchRadius < 0 {
		return fmt.Errorf("SearchRadius in [spread] must be non-negative, but is %g", c.Spread.SearchRadius)
	}
	if c.Spread.InitialFires < 0 {
		return fmt.Errorf("InitialFires in [spread] must be non-negative, but is %d", c.Spread.InitialFires)
	}
	for name, p := range c.Point {
		if err := p.CheckInit(name); err != nil {
			return err
		}
	}
	if len(c.Point) == 0 {
		return c.Grid.CheckInit()
	}
	return nil
}

// CheckInit validates a named point section.
func (p *PointConfig) CheckInit(name string) error {
	if math.Abs(p.Lat) > 90 {
		return fmt.Errorf("Lat of point '%s' must be in range [-90, 90], but is %g", name, p.Lat)
	}
	if math.Abs(p.Lon) > 180 {
		return fmt.Errorf("Lon of point '%s' must be in range [-180, 180], but is %g", name, p.Lon)
	}
	return nil
}

// CheckInit validates the grid section.
func (g *GridConfig) CheckInit() error {
	for _, v := range []float64{g.MinLat, g.MaxLat, g.MinLon, g.MaxLon, g.Spacing} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("bounds and Spacing in [grid] must be finite")
		}
	}
	if g.Spacing <= 0 {
		return fmt.Errorf("Spacing in [grid] must be positive, but is %g", g.Spacing)
	}
	if g.MaxLat < g.MinLat {
		return fmt.Errorf("MaxLat in [grid] (%g) is below MinLat (%g)", g.MaxLat, g.MinLat)
	}
	if g.MaxLon < g.MinLon {
		return fmt.Errorf("MaxLon in [grid] (%g) is below MinLon (%g)", g.MaxLon, g.MinLon)
	}
	if g.Wavelength <= 0 {
		return fmt.Errorf("Wavelength in [grid] must be positive, but is %g", g.Wavelength)
	}
	rows, cols := g.span(g.MinLat, g.MaxLat), g.span(g.MinLon, g.MaxLon)
	if rows > MaxGridPoints || cols > MaxGridPoints || rows*cols > MaxGridPoints {
		return fmt.Errorf("[grid] would generate %.0f points, more than the limit of %d", rows*cols, MaxGridPoints)
	}
	return nil
}

// span counts the grid lines between lo and hi inclusive. It is computed in
// floating point so CheckInit can bound it before converting to int.
func (g *GridConfig) span(lo, hi float64) float64 {
	return math.Floor((hi-lo)/g.Spacing+1e-9) + 1
}

// Rows is the number of latitude rows the grid generates. Only meaningful
// after CheckInit.
func (g *GridConfig) Rows() int { return int(g.span(g.MinLat, g.MaxLat)) }

// Cols is the number of longitude columns the grid generates.
func (g *GridConfig) Cols() int { return int(g.span(g.MinLon, g.MaxLon)) }

func (c *Config) windFrom() (float64, error) {
	raw := strings.TrimSpace(c.Wind.From)
	if raw == "" || strings.EqualFold(raw, "unset") {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("From in [wind] must be a bearing in degrees, but is '%s'", c.Wind.From)
	}
	return v, nil
}

// ResolvedWind returns the scenario's wind. A missing or "unset" bearing
// yields a wind without direction.
func (c *Config) ResolvedWind() wildfire.Wind {
	from, err := c.windFrom()
	if err != nil {
		from = math.NaN()
	}
	return wildfire.NewWind(c.Wind.Speed, from)
}

// WildfireConfig returns the simulation configuration.
func (c *Config) WildfireConfig() wildfire.Config {
	s := c.Spread
	return wildfire.Config{
		Seed: c.Simulation.Seed,
		Params: wildfire.Params{
			BurnSteps:          s.BurnSteps,
			SearchRadius:       s.SearchRadius,
			InitialFires:       s.InitialFires,
			SpreadThreshold:    s.SpreadThreshold,
			DecayRate:          s.DecayRate,
			DecayFloor:         s.DecayFloor,
			WindScaler:         s.WindScaler,
			MaxWindBonus:       s.MaxWindBonus,
			UpwindPenaltyRatio: s.UpwindPenaltyRatio,
		},
	}
}
