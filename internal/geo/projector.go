// Package geo maps geographic coordinates onto an offset hex grid.
// Uses odd-q offset coordinates (column, row) with latitude increasing
// northward; an odd column's cell centers sit half a row north of the
// even columns beside it.
// See design doc Section 3.
package geo

import "math"

// LatLng is a geographic coordinate pair in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Projector converts between geographic coordinates and hex grid cells.
// The geographic bounding rectangle is normalized to the unit square,
// then quantized onto hexes of the configured size.
//
// The same projector instance must be used for every tile of one graph:
// named provinces and generated filler tiles only land on identical
// cells when they go through identical constants.
type Projector struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64

	// HexSize is the hex radius in normalized planar units.
	HexSize float64
}

// Column spacing is 1.5 hex radii; row spacing is one hex height.
func (p *Projector) colSpacing() float64 { return 1.5 * p.HexSize }
func (p *Projector) rowSpacing() float64 { return p.HexSize * math.Sqrt(3) }

// Cell quantizes a geographic coordinate to its hex grid cell.
func (p *Projector) Cell(pos LatLng) (col, row int32) {
	x := (pos.Lng - p.MinLng) / (p.MaxLng - p.MinLng)
	y := (pos.Lat - p.MinLat) / (p.MaxLat - p.MinLat)

	col = int32(math.Round(x / p.colSpacing()))
	if col%2 != 0 {
		y -= p.rowSpacing() / 2
	}
	row = int32(math.Round(y / p.rowSpacing()))
	return col, row
}

// LatLngAt recovers the approximate geographic coordinate of a cell
// center. Approximate inverse of Cell: quantization loss is bounded by
// half a cell in each axis.
func (p *Projector) LatLngAt(col, row int32) LatLng {
	x := float64(col) * p.colSpacing()
	y := float64(row) * p.rowSpacing()
	if col%2 != 0 {
		y += p.rowSpacing() / 2
	}
	return LatLng{
		Lat: p.MinLat + y*(p.MaxLat-p.MinLat),
		Lng: p.MinLng + x*(p.MaxLng-p.MinLng),
	}
}

// Bearing returns the planar travel bearing from one coordinate to
// another, in radians, where 0 points due east and pi/2 due north.
// Longitude deltas are scaled by the cosine of the mid latitude.
func Bearing(from, to LatLng) float64 {
	midLat := (from.Lat + to.Lat) / 2 * math.Pi / 180
	dx := (to.Lng - from.Lng) * math.Cos(midLat)
	dy := to.Lat - from.Lat
	return math.Atan2(dy, dx)
}

// Neighbor offsets for odd-q offset coordinates. Even and odd columns
// use different offset sets; these tables are part of the grid contract
// and must not be reordered or "simplified".
var (
	evenColNeighbors = [6][2]int32{
		{+1, 0}, {+1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {0, +1},
	}
	oddColNeighbors = [6][2]int32{
		{+1, +1}, {+1, 0}, {0, -1}, {-1, 0}, {-1, +1}, {0, +1},
	}
)

// NeighborOffsets returns the six (dcol, drow) offsets valid for a cell
// in the given column.
func NeighborOffsets(col int32) [6][2]int32 {
	if col%2 != 0 {
		return oddColNeighbors
	}
	return evenColNeighbors
}
