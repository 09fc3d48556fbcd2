package wildfire

import "wildfire/internal/spatial"

// Source supplies the randomness for seeding and ignition draws.
type Source interface {
	Float64() float64
	Perm(n int) []int
}

// StepReport summarises one spread pass.
type StepReport struct {
	Step     int
	BurntOut int
	Ignited  int
	Burning  int
}

// Spreader applies the spread rule for one step.
type Spreader struct {
	Params Params
	Wind   WindModel

	pending    []int
	pendingSet map[int]struct{}
}

// NewSpreader returns a spreader for the given params.
func NewSpreader(p Params) *Spreader {
	return &Spreader{Params: p, Wind: p.WindModel(), pendingSet: make(map[int]struct{})}
}

// EffectiveCriticality returns the ignition probability of a candidate with
// base criticality k at the given step, spreading along (dx, dy). Candidates
// whose decayed criticality is below the spread threshold get zero whatever
// the wind.
func (s *Spreader) EffectiveCriticality(k float64, step int, w Wind, dx, dy float64) float64 {
	base := k * s.Params.DecayFactor(step)
	if base < s.Params.SpreadThreshold {
		return 0
	}
	return clamp01(base + s.Wind.Modifier(w, dx, dy))
}

// Advance runs one step over the field. Points ignited during the step only
// start spreading on the next one.
func (s *Spreader) Advance(field *Field, index *spatial.Index, w Wind, step int, rng Source) StepReport {
	report := StepReport{Step: step}
	if s.pendingSet == nil {
		s.pendingSet = make(map[int]struct{})
	}
	s.pending = s.pending[:0]
	clear(s.pendingSet)

	points := field.points
	for id := range points {
		if points[id].State != Burning {
			continue
		}
		if field.tick(id) {
			report.BurntOut++
			continue
		}
		src := points[id]
		for _, nid := range index.Within(src.Lon, src.Lat, s.Params.SearchRadius) {
			if nid == id || nid < 0 || nid >= len(points) {
				continue
			}
			n := points[nid]
			if n.State != Unburnt {
				continue
			}
			final := s.EffectiveCriticality(n.Criticality, step, w, n.Lon-src.Lon, n.Lat-src.Lat)
			if final <= 0 {
				continue
			}
			if rng.Float64() < final {
				s.nominate(nid)
			}
		}
	}

	for _, id := range s.pending {
		if field.Ignite(id, s.Params.BurnSteps) {
			report.Ignited++
		}
	}
	report.Burning = field.Count(Burning)
	return report
}

func (s *Spreader) nominate(id int) {
	if _, ok := s.pendingSet[id]; ok {
		return
	}
	s.pendingSet[id] = struct{}{}
	s.pending = append(s.pending, id)
}
