package wildfire

// State enumerates the burn state of a single point.
type State uint8

const (
	Unburnt State = iota
	Burning
	BurntOut
)

func (s State) String() string {
	switch s {
	case Unburnt:
		return "unburnt"
	case Burning:
		return "burning"
	case BurntOut:
		return "burnt_out"
	}
	return "unknown"
}

// Record is one validated input sample.
type Record struct {
	Lat         float64
	Lon         float64
	Criticality float64
}

// Point is a sampled location and its burn state. ID, coordinates and
// Criticality are fixed at load; only State and BurnTimeRemaining change.
type Point struct {
	ID          int
	Lat         float64
	Lon         float64
	Criticality float64

	State State
	// BurnTimeRemaining counts the steps left before a Burning point burns
	// out. It is zero in every other state.
	BurnTimeRemaining int
}
