// Package trade assigns provinces to their nearest hub by movement
// cost and derives inter-hub trade routes.
// See design doc Section 3.
package trade

import (
	"log/slog"

	"github.com/talgya/tradewinds/internal/geo"
	"github.com/talgya/tradewinds/internal/routing"
	"github.com/talgya/tradewinds/internal/world"
)

// HubID identifies a trade hub.
type HubID uint32

// Hub is one trade hub: a market anchored on a province.
// Terminal hubs are sinks in the hierarchical flow chain; they never
// report an upstream.
type Hub struct {
	ID       HubID            `json:"id"`
	Province world.ProvinceID `json:"province"` // anchor province
	Name     string           `json:"name"`
	Pos      geo.LatLng       `json:"pos"`
	Terminal bool             `json:"terminal"`
}

// anchorNodes resolves each hub's anchor province to a graph node.
// A hub whose anchor cannot be located is logged and dropped; it takes
// no part in any following computation. The returned slices are
// parallel and preserve input order.
func anchorNodes(g *routing.Graph, hubs []Hub) ([]int32, []Hub) {
	nodes := make([]int32, 0, len(hubs))
	kept := make([]Hub, 0, len(hubs))
	for _, h := range hubs {
		node, ok := g.NodeByProvince(h.Province)
		if !ok {
			slog.Warn("hub anchor not in graph, excluding hub",
				"hub", h.ID, "name", h.Name, "province", h.Province)
			continue
		}
		nodes = append(nodes, node)
		kept = append(kept, h)
	}
	return nodes, kept
}
