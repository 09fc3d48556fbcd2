package wildfire

import "math"

// Wind is the ambient wind for a run. FromDegrees is the compass bearing the
// wind blows from; it is ignored unless HasDirection is set.
type Wind struct {
	Speed        float64
	FromDegrees  float64
	HasDirection bool
}

// Calm returns a wind with no speed and no direction data.
func Calm() Wind { return Wind{} }

// NewWind returns a wind blowing from the given bearing. Negative speeds are
// treated as zero.
func NewWind(speed, fromDegrees float64) Wind {
	if speed < 0 || math.IsNaN(speed) {
		speed = 0
	}
	if math.IsNaN(fromDegrees) || math.IsInf(fromDegrees, 0) {
		return Wind{Speed: speed}
	}
	return Wind{Speed: speed, FromDegrees: normalizeBearing(fromDegrees), HasDirection: true}
}

// Active reports whether the wind can influence spread at all.
func (w Wind) Active() bool {
	return w.Speed > 0 && w.HasDirection
}

// TowardRadians converts the meteorological bearing into the mathematical
// angle the wind blows toward (0 = east, counter-clockwise positive).
func (w Wind) TowardRadians() float64 {
	toward := math.Mod(270-w.FromDegrees+360, 360)
	if toward < 0 {
		toward += 360
	}
	return toward * math.Pi / 180
}

func normalizeBearing(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// WindModel maps wind and a spread direction to an additive change in
// ignition probability. Downwind spread gains at most MaxBonus; upwind spread
// loses at most MaxBonus*PenaltyRatio.
type WindModel struct {
	Scaler       float64
	MaxBonus     float64
	PenaltyRatio float64
}

// MaxPenalty is the largest magnitude the modifier can take upwind.
func (m WindModel) MaxPenalty() float64 {
	return m.MaxBonus * m.PenaltyRatio
}

// Modifier returns the wind contribution for spread along (dx, dy), the
// offset from the burning point to the candidate in (lon, lat) degrees.
func (m WindModel) Modifier(w Wind, dx, dy float64) float64 {
	if !w.Active() {
		return 0
	}
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist == 0 {
		return 0
	}
	angle := w.TowardRadians()
	alignment := (dx*math.Cos(angle) + dy*math.Sin(angle)) / dist

	raw := alignment * w.Speed * m.Scaler
	if raw >= 0 {
		return math.Min(raw, m.MaxBonus)
	}
	return math.Max(raw, -m.MaxPenalty())
}
