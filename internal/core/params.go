package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
)

// Parameter describes a single tunable value exposed by a simulation.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot captures the current set of tunables exposed by a sim.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Lookup finds a parameter by key across all groups.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// Flatten renders the snapshot as "key=value" pairs in group order.
func (s ParameterSnapshot) Flatten() []string {
	var out []string
	for _, g := range s.Groups {
		for _, p := range g.Params {
			out = append(out, p.Key+"="+p.Value)
		}
	}
	return out
}

// ParameterControl describes an adjustable parameter. Steps and bounds are
// optional and interpreted based on the parameter type.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType

	Step float64

	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// InRange reports whether v lies within the control's bounds.
func (c ParameterControl) InRange(v float64) bool {
	if c.HasMin && v < c.Min {
		return false
	}
	if c.HasMax && v > c.Max {
		return false
	}
	return true
}

func (c ParameterControl) boundsError(raw string) error {
	switch {
	case c.HasMin && c.HasMax:
		return fmt.Errorf("parameter %q must be in [%g, %g], got %s", c.Key, c.Min, c.Max, raw)
	case c.HasMin:
		return fmt.Errorf("parameter %q must be at least %g, got %s", c.Key, c.Min, raw)
	default:
		return fmt.Errorf("parameter %q must be at most %g, got %s", c.Key, c.Max, raw)
	}
}

// ParameterControlsProvider exposes the list of adjustable controls.
type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

// IntParameterSetter updates integer parameters.
type IntParameterSetter interface {
	SetIntParameter(key string, value int) bool
}

// FloatParameterSetter updates floating point parameters.
type FloatParameterSetter interface {
	SetFloatParameter(key string, value float64) bool
}

// ApplyOverride parses a raw value for key according to the control target
// declares and forwards it to the matching setter. Values outside the
// control's bounds are rejected.
func ApplyOverride(target ParameterControlsProvider, key, raw string) error {
	key = strings.TrimSpace(key)
	raw = strings.TrimSpace(raw)
	var ctrl *ParameterControl
	for _, c := range target.ParameterControls() {
		if c.Key == key {
			ctrl = &c
			break
		}
	}
	if ctrl == nil {
		return fmt.Errorf("unknown parameter %q", key)
	}

	switch ctrl.Type {
	case ParamTypeInt:
		setter, ok := target.(IntParameterSetter)
		if !ok {
			return fmt.Errorf("parameter %q is not settable", key)
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("parameter %q: %w", key, err)
		}
		if !ctrl.InRange(float64(v)) {
			return ctrl.boundsError(raw)
		}
		if !setter.SetIntParameter(key, v) {
			return fmt.Errorf("parameter %q rejected value %q", key, raw)
		}
	case ParamTypeFloat:
		setter, ok := target.(FloatParameterSetter)
		if !ok {
			return fmt.Errorf("parameter %q is not settable", key)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("parameter %q: %w", key, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("parameter %q must be finite, got %s", key, raw)
		}
		if !ctrl.InRange(v) {
			return ctrl.boundsError(raw)
		}
		if !setter.SetFloatParameter(key, v) {
			return fmt.Errorf("parameter %q rejected value %q", key, raw)
		}
	default:
		return fmt.Errorf("parameter %q has unsupported type %s", key, ctrl.Type)
	}
	return nil
}

// ParseOverride splits a "key=value" string.
func ParseOverride(kv string) (key, value string, err error) {
	parts := strings.SplitN(kv, "=", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
		return "", "", fmt.Errorf("override %q is not in key=value form", kv)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}
