package world

import (
	"math"

	"github.com/talgya/tradewinds/internal/geo"
)

// CurrentModel scales the cost of a sea-to-sea edge by travel
// direction. Implementations need not be symmetric: sailing with a
// current costs less than sailing against it.
type CurrentModel interface {
	// Multiplier returns the cost factor for traveling from one
	// coordinate to another.
	Multiplier(from, to geo.LatLng) float64
}

// PrevailingCurrents models simple latitude-band surface currents:
// westward flow in the tropics, eastward flow in the mid latitudes,
// westward again near the poles.
type PrevailingCurrents struct {
	// Strength in [0, 1): peak cost reduction when traveling straight
	// with the current, peak surcharge straight against it.
	Strength float64
}

// DefaultCurrents returns the current model used for world builds.
func DefaultCurrents() *PrevailingCurrents {
	return &PrevailingCurrents{Strength: 0.25}
}

// Multiplier implements CurrentModel. The factor is
// 1 - Strength*cos(theta) where theta is the angle between the travel
// bearing and the prevailing current bearing at the mid latitude.
func (c *PrevailingCurrents) Multiplier(from, to geo.LatLng) float64 {
	travel := geo.Bearing(from, to)
	current := currentBearing((from.Lat + to.Lat) / 2)
	m := 1 - c.Strength*math.Cos(travel-current)
	// Keep factors sane even with an aggressive Strength.
	if m < 0.5 {
		m = 0.5
	}
	if m > 1.5 {
		m = 1.5
	}
	return m
}

// currentBearing returns the prevailing current direction, in radians,
// for a latitude band. 0 is due east, pi due west.
func currentBearing(lat float64) float64 {
	abs := math.Abs(lat)
	switch {
	case abs < 23.5:
		return math.Pi // trade-wind belt: westward
	case abs < 55:
		return 0 // westerlies: eastward
	default:
		return math.Pi // polar easterlies: westward
	}
}
