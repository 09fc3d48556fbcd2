package wildfire

import (
	"fmt"
	"math"

	"wildfire/internal/spatial"
)

// Field holds every simulation point. It is the only place point state is
// mutated.
type Field struct {
	points []Point
}

// NewField builds a field from input records. Records with a non-finite
// coordinate or criticality are skipped; criticality is clamped to [0, 1].
// Ids are assigned in order over the kept records.
func NewField(records []Record) (*Field, error) {
	points := make([]Point, 0, len(records))
	for _, r := range records {
		if !finite(r.Lat) || !finite(r.Lon) || !finite(r.Criticality) {
			continue
		}
		points = append(points, Point{
			ID:          len(points),
			Lat:         r.Lat,
			Lon:         r.Lon,
			Criticality: clamp01(r.Criticality),
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: %d records, none valid", ErrInvalidInput, len(records))
	}
	return &Field{points: points}, nil
}

// Len reports the number of points.
func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return len(f.points)
}

// Point returns a copy of the point with the given id.
func (f *Field) Point(id int) (Point, bool) {
	if f == nil || id < 0 || id >= len(f.points) {
		return Point{}, false
	}
	return f.points[id], true
}

// Points returns a copy of every point.
func (f *Field) Points() []Point {
	if f == nil {
		return nil
	}
	return append([]Point(nil), f.points...)
}

// Coords returns the (lon, lat) pairs in id order for indexing.
func (f *Field) Coords() []spatial.Coord {
	if f == nil {
		return nil
	}
	coords := make([]spatial.Coord, len(f.points))
	for i, p := range f.points {
		coords[i] = spatial.Coord{X: p.Lon, Y: p.Lat}
	}
	return coords
}

// Reset returns every point to Unburnt.
func (f *Field) Reset() {
	for i := range f.points {
		f.points[i].State = Unburnt
		f.points[i].BurnTimeRemaining = 0
	}
}

// Ignite sets an Unburnt point Burning for burnSteps steps. It reports
// whether the point changed state.
func (f *Field) Ignite(id, burnSteps int) bool {
	if f == nil || id < 0 || id >= len(f.points) || burnSteps <= 0 {
		return false
	}
	p := &f.points[id]
	if p.State != Unburnt {
		return false
	}
	p.State = Burning
	p.BurnTimeRemaining = burnSteps
	return true
}

// tick counts down one step of a Burning point and reports whether it burnt
// out as a result.
func (f *Field) tick(id int) bool {
	p := &f.points[id]
	if p.State != Burning {
		return false
	}
	p.BurnTimeRemaining--
	if p.BurnTimeRemaining <= 0 {
		p.State = BurntOut
		p.BurnTimeRemaining = 0
		return true
	}
	return false
}

// Count returns how many points are in the given state.
func (f *Field) Count(s State) int {
	if f == nil {
		return 0
	}
	n := 0
	for i := range f.points {
		if f.points[i].State == s {
			n++
		}
	}
	return n
}

// Snapshot returns copies of all points that are Burning or BurntOut.
func (f *Field) Snapshot() []Point {
	if f == nil {
		return nil
	}
	var out []Point
	for _, p := range f.points {
		if p.State != Unburnt {
			out = append(out, p)
		}
	}
	return out
}

// Clone returns an independent copy of the field.
func (f *Field) Clone() *Field {
	if f == nil {
		return nil
	}
	return &Field{points: append([]Point(nil), f.points...)}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
