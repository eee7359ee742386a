package world

import "github.com/talgya/tradewinds/internal/geo"

// Tile is one province record as consumed by the graph builder.
//
// Pos is optional: a tile without coordinates is skipped during graph
// construction, not an error. Tiles are consumed in order and the first
// tile to claim a grid cell wins, so named provinces must be supplied
// before generic filler tiles.
type Tile struct {
	ID      ProvinceID  `json:"id"`
	Terrain Terrain     `json:"terrain"`
	Pos     *geo.LatLng `json:"pos,omitempty"`
}
