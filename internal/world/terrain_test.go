package world_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/tradewinds/internal/geo"
	"github.com/talgya/tradewinds/internal/world"
)

func pos(lat, lng float64) geo.LatLng {
	return geo.LatLng{Lat: lat, Lng: lng}
}

// TestMovementCostOrdering: open water is the cheapest entry, mountains
// the most expensive.
func TestMovementCostOrdering(t *testing.T) {
	all := []world.Terrain{
		world.TerrainOcean, world.TerrainSea, world.TerrainCoast,
		world.TerrainRiver, world.TerrainPlains, world.TerrainForest,
		world.TerrainDesert, world.TerrainSwamp, world.TerrainTundra,
		world.TerrainMountain,
	}
	for _, tr := range all {
		require.GreaterOrEqual(t, tr.MovementCost(), world.TerrainOcean.MovementCost(),
			"%s at least as expensive as ocean", world.TerrainName(tr))
		require.LessOrEqual(t, tr.MovementCost(), world.TerrainMountain.MovementCost(),
			"%s at most as expensive as mountains", world.TerrainName(tr))
	}
}

func TestWaterClassification(t *testing.T) {
	require.True(t, world.TerrainOcean.IsWater())
	require.True(t, world.TerrainSea.IsWater())
	require.False(t, world.TerrainCoast.IsWater(), "coast is land with a shoreline")
	require.False(t, world.TerrainRiver.IsWater(), "river provinces are land")
}

func TestRiverNetwork(t *testing.T) {
	r := world.NewRiverNetwork()
	require.False(t, r.Connected(1, 2))

	r.Connect(1, 2)
	require.True(t, r.Connected(1, 2))
	require.True(t, r.Connected(2, 1), "crossings are order-insensitive")
	require.False(t, r.Connected(1, 3))

	r.Connect(5, 5)
	require.False(t, r.Connected(5, 5), "self-crossing is a no-op")
	require.Equal(t, 1, r.Len())

	var nilNet *world.RiverNetwork
	require.False(t, nilNet.Connected(1, 2), "nil network is safe")
}

func TestPrevailingCurrents(t *testing.T) {
	c := world.DefaultCurrents()

	// Trade-wind belt: westward travel rides the current.
	tropicsA := pos(10, 0)
	tropicsB := pos(10, -5)
	require.Less(t, c.Multiplier(tropicsA, tropicsB), 1.0, "westward with the current")
	require.Greater(t, c.Multiplier(tropicsB, tropicsA), 1.0, "eastward against it")

	// Mid latitudes flow the other way.
	midA := pos(40, 0)
	midB := pos(40, 5)
	require.Less(t, c.Multiplier(midA, midB), 1.0, "eastward with the westerlies")
	require.Greater(t, c.Multiplier(midB, midA), 1.0)

	// Strength clamps stay sane even when exaggerated.
	wild := &world.PrevailingCurrents{Strength: 5}
	m := wild.Multiplier(tropicsA, tropicsB)
	require.GreaterOrEqual(t, m, 0.5)
	require.LessOrEqual(t, m, 1.5)
}
