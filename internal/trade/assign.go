package trade

import (
	"github.com/talgya/tradewinds/internal/routing"
	"github.com/talgya/tradewinds/internal/world"
)

// Assign labels every land province with its nearest hub by movement
// cost, seeding one multi-source search from all hub anchors at once.
//
// Water provinces are never assigned. Provinces with no finite
// distance to any hub stay out of the result. Ties between equally
// costly hubs go to the lowest hub-list index (the engine's
// determinism rule), so the result is reproducible for a fixed hub
// order.
func Assign(g *routing.Graph, hubs []Hub) map[world.ProvinceID]HubID {
	out := make(map[world.ProvinceID]HubID)

	nodes, kept := anchorNodes(g, hubs)
	if len(nodes) == 0 {
		return out
	}

	res := g.ShortestPaths(nodes)
	g.EachProvince(func(p world.ProvinceID, node int32) {
		if g.Node(node).Terrain.IsWater() {
			return
		}
		label := res.Label[node]
		if label < 0 {
			return // unreachable: stays unassigned
		}
		out[p] = kept[label].ID
	})
	return out
}
