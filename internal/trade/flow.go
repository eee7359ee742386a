package trade

import (
	"log/slog"
	"math"

	"github.com/talgya/tradewinds/internal/routing"
	"github.com/talgya/tradewinds/internal/world"
)

// DeriveUpstream computes the hierarchical flow chain: each
// non-terminal hub's immediate upstream hub, derived from one search
// seeded at every terminal hub.
//
// The upstream is the first other hub's anchor encountered while
// walking the predecessor chain from the hub toward its nearest
// terminal. The walk guards against revisiting nodes so malformed
// predecessor data cannot loop. When no intermediate hub sits on the
// chain, the nearest terminal itself (by source label) becomes the
// upstream. This first-found-on-chain rule can skip a geographically
// closer hub when tie-breaking favored another path; that behavior is
// intentional and kept as is.
//
// Terminal hubs map to an empty, non-nil list. Hubs with unreachable
// or missing anchors are logged and left without an entry.
func DeriveUpstream(g *routing.Graph, hubs []Hub) map[HubID][]HubID {
	out := make(map[HubID][]HubID, len(hubs))

	nodes, kept := anchorNodes(g, hubs)

	var termNodes []int32
	var terminals []Hub
	hubByNode := make(map[int32]Hub, len(kept))
	for i, h := range kept {
		hubByNode[nodes[i]] = h
		if h.Terminal {
			termNodes = append(termNodes, nodes[i])
			terminals = append(terminals, h)
		}
	}
	if len(terminals) == 0 {
		slog.Warn("no terminal hubs, hierarchical derivation is empty")
		return out
	}

	res := g.ShortestPaths(termNodes)

	for i, h := range kept {
		if h.Terminal {
			out[h.ID] = []HubID{}
			continue
		}
		node := nodes[i]
		label := res.Label[node]
		if label < 0 {
			slog.Warn("hub unreachable from every terminal",
				"hub", h.ID, "name", h.Name)
			continue
		}

		upstream := HubID(0)
		found := false
		visited := make(map[int32]bool)
		for cur := res.Prev[node]; cur >= 0 && !visited[cur]; cur = res.Prev[cur] {
			visited[cur] = true
			if other, ok := hubByNode[cur]; ok && other.ID != h.ID {
				upstream = other.ID
				found = true
				break
			}
		}
		if !found {
			upstream = terminals[label].ID
		}
		out[h.ID] = []HubID{upstream}
	}
	return out
}

// HubPair keys the flat route table by ordered (from, to) hub ids.
type HubPair struct {
	From HubID `json:"from"`
	To   HubID `json:"to"`
}

// Route is one flat inter-hub route: the movement cost and the
// hex-level province path from the source anchor to the destination
// anchor, both inclusive.
type Route struct {
	From HubID              `json:"from"`
	To   HubID              `json:"to"`
	Cost float64            `json:"cost"`
	Path []world.ProvinceID `json:"path"`
}

// Routes builds the flat all-pairs route table: one single-source
// search per hub, so the cost is hub-count full-graph passes. Pairs
// with no finite distance are simply absent.
func Routes(g *routing.Graph, hubs []Hub) map[HubPair]Route {
	out := make(map[HubPair]Route)

	nodes, kept := anchorNodes(g, hubs)
	for i, src := range kept {
		res := g.ShortestPaths(nodes[i : i+1])
		for j, dst := range kept {
			if i == j {
				continue
			}
			cost := res.Dist[nodes[j]]
			if math.IsInf(cost, 1) {
				continue
			}
			// Predecessors run destination→source; flip for rendering.
			path := routing.Reverse(g.WalkPath(res.Prev, nodes[j], nodes[i]))
			out[HubPair{src.ID, dst.ID}] = Route{
				From: src.ID,
				To:   dst.ID,
				Cost: cost,
				Path: path,
			}
		}
	}
	return out
}
