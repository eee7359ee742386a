// Package world provides provinces, terrain, and the geographic data
// the routing graph is built from.
// See design doc Section 3.
package world

// ProvinceID identifies a province. Several province ids may alias one
// grid cell; the graph builder collapses them onto a single node.
type ProvinceID uint32

// Terrain classifies a province for movement-cost purposes.
type Terrain uint8

const (
	TerrainOcean    Terrain = iota // Deep open water, cheapest to cross
	TerrainSea                     // Coastal shelf water
	TerrainCoast                   // Land with a harbor-capable shoreline
	TerrainRiver                   // Land carrying a navigable river
	TerrainPlains                  // Open flatlands
	TerrainForest                  // Dense woodland
	TerrainDesert                  // Arid wasteland
	TerrainSwamp                   // Wetland
	TerrainTundra                  // Frozen steppe
	TerrainMountain                // High ranges, most expensive to cross
)

// movementCost is the fixed entry-cost table, indexed by Terrain.
// Ordered from open water (cheapest) to mountains (most expensive).
// The cost of an edge is the destination tile's entry.
var movementCost = [...]float64{
	TerrainOcean:    1.0,
	TerrainSea:      1.5,
	TerrainCoast:    2.5,
	TerrainRiver:    3.0,
	TerrainPlains:   4.0,
	TerrainForest:   6.0,
	TerrainDesert:   7.0,
	TerrainSwamp:    8.0,
	TerrainTundra:   8.5,
	TerrainMountain: 10.0,
}

// MovementCost returns the cost of entering a tile of this terrain.
func (t Terrain) MovementCost() float64 {
	return movementCost[t]
}

// IsWater reports whether the terrain is pure water. Water provinces
// are traversable but never receive a hub assignment.
func (t Terrain) IsWater() bool {
	return t == TerrainOcean || t == TerrainSea
}

// IsSea reports whether the terrain participates in directional
// currents. Sea-to-sea edges get a bearing-dependent cost multiplier.
func (t Terrain) IsSea() bool {
	return t == TerrainOcean || t == TerrainSea
}

// TerrainName returns a human-readable name for a terrain type.
func TerrainName(t Terrain) string {
	switch t {
	case TerrainOcean:
		return "Ocean"
	case TerrainSea:
		return "Sea"
	case TerrainCoast:
		return "Coast"
	case TerrainRiver:
		return "River"
	case TerrainPlains:
		return "Plains"
	case TerrainForest:
		return "Forest"
	case TerrainDesert:
		return "Desert"
	case TerrainSwamp:
		return "Swamp"
	case TerrainTundra:
		return "Tundra"
	case TerrainMountain:
		return "Mountain"
	default:
		return "Unknown"
	}
}
