package world_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/tradewinds/internal/world"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := world.SmallTestConfig()
	proj := world.DefaultProjector(cfg)

	a := world.Generate(cfg, proj)
	b := world.Generate(cfg, proj)

	require.Equal(t, a.Tiles, b.Tiles)
	require.Equal(t, a.Markets, b.Markets)
	require.Equal(t, a.Rivers.Len(), b.Rivers.Len())
}

// TestNamedTilesFirst: market provinces lead the tile list so they
// claim their cells before filler.
func TestNamedTilesFirst(t *testing.T) {
	cfg := world.SmallTestConfig()
	proj := world.DefaultProjector(cfg)
	w := world.Generate(cfg, proj)

	require.NotEmpty(t, w.Markets)
	for i, m := range w.Markets {
		require.Equal(t, m.Province, w.Tiles[i].ID, "tile %d is market %q", i, m.Name)
		require.False(t, w.Tiles[i].Terrain.IsWater(), "market %q on land", m.Name)
		require.NotNil(t, w.Tiles[i].Pos)
	}
}

func TestTileCount(t *testing.T) {
	cfg := world.SmallTestConfig()
	proj := world.DefaultProjector(cfg)
	w := world.Generate(cfg, proj)

	require.Len(t, w.Tiles, len(w.Markets)+cfg.Cols*cfg.Rows,
		"one filler tile per cell plus the named markets")
	for _, tile := range w.Tiles {
		require.NotNil(t, tile.Pos, "generated tiles always carry coordinates")
	}
}

func TestMarketNamesUnique(t *testing.T) {
	cfg := world.SmallTestConfig()
	proj := world.DefaultProjector(cfg)
	w := world.Generate(cfg, proj)

	seen := map[string]bool{}
	for _, m := range w.Markets {
		require.NotEmpty(t, m.Name)
		require.False(t, seen[m.Name], "duplicate market name %q", m.Name)
		seen[m.Name] = true
	}
}
