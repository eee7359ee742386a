package trade_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/tradewinds/internal/geo"
	"github.com/talgya/tradewinds/internal/routing"
	"github.com/talgya/tradewinds/internal/trade"
	"github.com/talgya/tradewinds/internal/world"
)

// TestUpstreamChain: on a line T - a - A - b - B, hub B's path to the
// terminal passes A's anchor, so A is B's immediate upstream and T is
// A's. Terminals always report an empty list.
func TestUpstreamChain(t *testing.T) {
	proj := testProjector()
	g := lineGraph(proj,
		world.TerrainPlains, world.TerrainPlains, world.TerrainPlains,
		world.TerrainPlains, world.TerrainPlains)
	hubs := []trade.Hub{
		hubAt(proj, 1, 1, true), // terminal at the west end
		hubAt(proj, 2, 3, false),
		hubAt(proj, 3, 5, false),
	}

	got := trade.DeriveUpstream(g, hubs)
	require.Equal(t, map[trade.HubID][]trade.HubID{
		1: {},
		2: {1},
		3: {2},
	}, got)
}

// TestUpstreamFallback: a hub whose chain to the terminal crosses no
// other hub's anchor gets the nearest terminal as upstream.
func TestUpstreamFallback(t *testing.T) {
	proj := testProjector()
	g := lineGraph(proj,
		world.TerrainPlains, world.TerrainPlains, world.TerrainPlains,
		world.TerrainPlains, world.TerrainPlains)
	hubs := []trade.Hub{
		hubAt(proj, 1, 1, true),
		hubAt(proj, 2, 5, false),
	}

	got := trade.DeriveUpstream(g, hubs)
	require.Equal(t, []trade.HubID{1}, got[2])
}

// TestUpstreamReachesTerminal: repeated upstream traversal from any
// hub ends at a terminal in finitely many steps.
func TestUpstreamReachesTerminal(t *testing.T) {
	proj := testProjector()
	terrains := make([]world.Terrain, 9)
	for i := range terrains {
		terrains[i] = world.TerrainPlains
	}
	g := lineGraph(proj, terrains...)
	hubs := []trade.Hub{
		hubAt(proj, 1, 1, true),
		hubAt(proj, 2, 3, false),
		hubAt(proj, 3, 5, false),
		hubAt(proj, 4, 7, false),
		hubAt(proj, 5, 9, false),
	}

	ups := trade.DeriveUpstream(g, hubs)
	byID := map[trade.HubID]trade.Hub{}
	for _, h := range hubs {
		byID[h.ID] = h
	}

	for _, h := range hubs {
		cur := h.ID
		for steps := 0; ; steps++ {
			require.Less(t, steps, len(hubs), "upstream chain from hub %d does not terminate", h.ID)
			if byID[cur].Terminal {
				require.Empty(t, ups[cur])
				break
			}
			chain := ups[cur]
			require.Len(t, chain, 1, "non-terminal hub %d has exactly one upstream", cur)
			cur = chain[0]
		}
	}
}

// TestUpstreamSharedAnchor: a non-terminal hub sitting on a terminal's
// own node has an empty predecessor chain; the nearest-terminal
// fallback kicks in.
func TestUpstreamSharedAnchor(t *testing.T) {
	proj := testProjector()
	g := lineGraph(proj, world.TerrainPlains, world.TerrainPlains)
	hubs := []trade.Hub{
		hubAt(proj, 1, 1, true),
		hubAt(proj, 2, 1, false), // same anchor province as the terminal
	}

	got := trade.DeriveUpstream(g, hubs)
	require.Equal(t, []trade.HubID{1}, got[2])
}

// TestUpstreamNoTerminals: nothing to flow toward.
func TestUpstreamNoTerminals(t *testing.T) {
	proj := testProjector()
	g := lineGraph(proj, world.TerrainPlains, world.TerrainPlains)
	hubs := []trade.Hub{hubAt(proj, 1, 1, false)}

	require.Empty(t, trade.DeriveUpstream(g, hubs))
}

// TestRoutesAllPairs: every ordered pair of reachable hubs gets a
// route with the anchor-to-anchor path in rendering order.
func TestRoutesAllPairs(t *testing.T) {
	proj := testProjector()
	g := lineGraph(proj,
		world.TerrainPlains, world.TerrainPlains, world.TerrainPlains,
		world.TerrainPlains, world.TerrainPlains)
	hubs := []trade.Hub{
		hubAt(proj, 1, 1, false),
		hubAt(proj, 2, 3, false),
		hubAt(proj, 3, 5, false),
	}

	got := trade.Routes(g, hubs)
	require.Len(t, got, 6)

	r := got[trade.HubPair{From: 1, To: 3}]
	require.Equal(t, 16.0, r.Cost, "four plains entries at 4.0 each")
	require.Equal(t, []world.ProvinceID{1, 2, 3, 4, 5}, r.Path)

	back := got[trade.HubPair{From: 3, To: 1}]
	require.Equal(t, []world.ProvinceID{5, 4, 3, 2, 1}, back.Path)
	require.Equal(t, 16.0, back.Cost)
}

// TestRoutesUnreachablePairAbsent: disconnected hubs produce no route
// entry rather than an infinite one.
func TestRoutesUnreachablePairAbsent(t *testing.T) {
	proj := testProjector()
	tiles := []world.Tile{
		tileAt(proj, 1, world.TerrainPlains, 0, 0),
		tileAt(proj, 2, world.TerrainPlains, 20, 20),
	}
	g := (&routing.Builder{Proj: proj}).Build(tiles)
	hubs := []trade.Hub{
		{ID: 1, Province: 1, Pos: proj.LatLngAt(0, 0)},
		{ID: 2, Province: 2, Pos: proj.LatLngAt(20, 20)},
	}

	require.Empty(t, trade.Routes(g, hubs))
}

// TestRoutesDirectionalCosts: the flat table keeps asymmetric costs.
func TestRoutesDirectionalCosts(t *testing.T) {
	proj := testProjector()
	tiles := []world.Tile{
		tileAt(proj, 1, world.TerrainOcean, 0, 0),
		tileAt(proj, 2, world.TerrainOcean, 1, 0),
	}
	g := (&routing.Builder{Proj: proj, Currents: stubCurrent{}}).Build(tiles)
	hubs := []trade.Hub{
		{ID: 1, Province: 1, Pos: proj.LatLngAt(0, 0)},
		{ID: 2, Province: 2, Pos: proj.LatLngAt(1, 0)},
	}

	got := trade.Routes(g, hubs)
	require.Equal(t, 0.5, got[trade.HubPair{From: 1, To: 2}].Cost)
	require.Equal(t, 1.5, got[trade.HubPair{From: 2, To: 1}].Cost)
}

type stubCurrent struct{}

func (stubCurrent) Multiplier(from, to geo.LatLng) float64 {
	if to.Lng > from.Lng {
		return 0.5
	}
	return 1.5
}
