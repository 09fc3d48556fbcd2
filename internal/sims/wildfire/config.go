package wildfire

// Params holds the tunable constants of the spread rule.
type Params struct {
	// BurnSteps is how long an ignited point burns.
	BurnSteps int
	// SearchRadius bounds neighbour queries, in coordinate degrees.
	SearchRadius float64
	// InitialFires is the number of random seed ignitions at start.
	InitialFires int

	SpreadThreshold float64
	DecayRate       float64
	DecayFloor      float64

	WindScaler         float64
	MaxWindBonus       float64
	UpwindPenaltyRatio float64
}

// Config controls a wildfire simulation.
type Config struct {
	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Seed: 1337,
		Params: Params{
			BurnSteps:          5,
			SearchRadius:       0.0006,
			InitialFires:       3,
			SpreadThreshold:    0.525,
			DecayRate:          0.003,
			DecayFloor:         0.1,
			WindScaler:         0.075,
			MaxWindBonus:       0.9,
			UpwindPenaltyRatio: 1.6,
		},
	}
}

// WindModel returns the wind model described by the params.
func (p Params) WindModel() WindModel {
	return WindModel{Scaler: p.WindScaler, MaxBonus: p.MaxWindBonus, PenaltyRatio: p.UpwindPenaltyRatio}
}

// normalized raises BurnSteps to one step; a point that ignites must burn
// for at least the step it was ignited in.
func (p Params) normalized() Params {
	if p.BurnSteps < 1 {
		p.BurnSteps = 1
	}
	return p
}

// DecayFactor is the global criticality multiplier at the given step.
func (p Params) DecayFactor(step int) float64 {
	f := 1 - float64(step)*p.DecayRate
	if f < p.DecayFloor {
		return p.DecayFloor
	}
	return f
}
