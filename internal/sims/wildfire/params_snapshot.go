package wildfire

import (
	"math"
	"strconv"

	"wildfire/internal/core"
)

// Parameters reports the current tunables grouped for display or logging.
func (s *Simulation) Parameters() core.ParameterSnapshot {
	params := s.cfg.Params
	windFrom := "unset"
	if s.wind.HasDirection {
		windFrom = strconv.FormatFloat(s.wind.FromDegrees, 'f', -1, 64)
	}
	groups := []core.ParameterGroup{
		{
			Name: "Run",
			Params: []core.Parameter{
				int64Param("seed", "Seed", s.cfg.Seed),
				intParam("initial_fires", "Initial fires", params.InitialFires),
			},
		},
		{
			Name: "Spread",
			Params: []core.Parameter{
				intParam("burn_steps", "Burn steps", params.BurnSteps),
				floatParam("search_radius", "Search radius (deg)", params.SearchRadius),
				floatParam("spread_threshold", "Spread threshold", params.SpreadThreshold),
				floatParam("decay_rate", "Decay per step", params.DecayRate),
				floatParam("decay_floor", "Decay floor", params.DecayFloor),
			},
		},
		{
			Name: "Wind",
			Params: []core.Parameter{
				floatParam("wind_speed", "Wind speed (m/s)", s.wind.Speed),
				{Key: "wind_from", Label: "Wind from (deg)", Type: core.ParamTypeFloat, Value: windFrom},
				floatParam("wind_scaler", "Wind scaler", params.WindScaler),
				floatParam("max_wind_bonus", "Max wind bonus", params.MaxWindBonus),
				floatParam("upwind_penalty_ratio", "Upwind penalty ratio", params.UpwindPenaltyRatio),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the adjustable parameters and their bounds.
func (s *Simulation) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "initial_fires", Label: "Initial fires", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true},
		{Key: "burn_steps", Label: "Burn steps", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true},
		{Key: "search_radius", Label: "Search radius", Type: core.ParamTypeFloat, Step: 0.0001, Min: 0, HasMin: true},
		{Key: "spread_threshold", Label: "Spread threshold", Type: core.ParamTypeFloat, Step: 0.025, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "decay_rate", Label: "Decay per step", Type: core.ParamTypeFloat, Step: 0.001, Min: 0, HasMin: true},
		{Key: "decay_floor", Label: "Decay floor", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "wind_speed", Label: "Wind speed", Type: core.ParamTypeFloat, Step: 0.5, Min: 0, HasMin: true},
		{Key: "wind_from", Label: "Wind from", Type: core.ParamTypeFloat, Step: 15},
		{Key: "wind_scaler", Label: "Wind scaler", Type: core.ParamTypeFloat, Step: 0.005, Min: 0, HasMin: true},
		{Key: "max_wind_bonus", Label: "Max wind bonus", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "upwind_penalty_ratio", Label: "Upwind penalty ratio", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, HasMin: true},
	}
}

// SetIntParameter updates an integer tunable. Changes apply from the next
// step (or the next start for initial_fires).
func (s *Simulation) SetIntParameter(key string, value int) bool {
	switch key {
	case "initial_fires":
		if value < 0 {
			return false
		}
		s.cfg.Params.InitialFires = value
	case "burn_steps":
		if value < 1 {
			return false
		}
		s.cfg.Params.BurnSteps = value
	default:
		return false
	}
	s.syncSpreader()
	return true
}

// SetFloatParameter updates a floating point tunable or the wind.
func (s *Simulation) SetFloatParameter(key string, value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	p := &s.cfg.Params
	switch key {
	case "search_radius":
		if value < 0 {
			return false
		}
		p.SearchRadius = value
	case "spread_threshold":
		p.SpreadThreshold = clamp01(value)
	case "decay_rate":
		if value < 0 {
			return false
		}
		p.DecayRate = value
	case "decay_floor":
		p.DecayFloor = clamp01(value)
	case "wind_speed":
		if value < 0 {
			return false
		}
		s.wind.Speed = value
		return true
	case "wind_from":
		s.wind.FromDegrees = normalizeBearing(value)
		s.wind.HasDirection = true
		return true
	case "wind_scaler":
		if value < 0 {
			return false
		}
		p.WindScaler = value
	case "max_wind_bonus":
		p.MaxWindBonus = clamp01(value)
	case "upwind_penalty_ratio":
		if value < 0 {
			return false
		}
		p.UpwindPenaltyRatio = value
	default:
		return false
	}
	s.syncSpreader()
	return true
}

func (s *Simulation) syncSpreader() {
	s.spreader.Params = s.cfg.Params
	s.spreader.Wind = s.cfg.Params.WindModel()
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
