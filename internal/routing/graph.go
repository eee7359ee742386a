// Package routing builds the movement-cost graph over the hex grid and
// runs multi-source shortest-path search on it.
//
// A graph is built once from an ordered tile list and is immutable
// afterwards; it is safe to share between concurrent searches.
// See design doc Section 3.
package routing

import (
	"fmt"

	"github.com/talgya/tradewinds/internal/geo"
	"github.com/talgya/tradewinds/internal/world"
)

// Each node has at most six neighbors on a hex grid.
const maxNeighbors = 6

// Node is one grid cell of the built graph. Node ids are dense,
// contiguous, and stable for the lifetime of one graph.
type Node struct {
	ID       int32
	Province world.ProvinceID // claiming province (first tile to hit the cell)
	Terrain  world.Terrain
	Col, Row int32
	Pos      geo.LatLng // approximate cell center, used for bearings
}

// Graph is the immutable movement-cost graph.
//
// Adjacency is a flat arena: slot i*6+k holds node i's k-th outgoing
// edge, with adjLen[i] live slots. Edge costs are directional: the
// cost to enter a sea cell depends on the prevailing current, so
// cost(a→b) need not equal cost(b→a).
type Graph struct {
	nodes     []Node
	cells     map[uint64]int32
	provinces map[world.ProvinceID]int32

	adjNode []int32
	adjCost []float64
	adjLen  []uint8
}

// Builder constructs graphs. Rivers and Currents are optional; a nil
// field simply disables that cost override.
type Builder struct {
	Proj     *geo.Projector
	Rivers   *world.RiverNetwork
	Currents world.CurrentModel
}

func cellKey(col, row int32) uint64 {
	return uint64(uint32(col))<<32 | uint64(uint32(row))
}

// Build consumes an ordered tile list and produces the graph.
//
// Phase one assigns nodes: tiles are projected in input order and the
// first tile to claim a cell wins, so callers must supply named
// provinces before generic filler tiles. Every tile's province id is
// recorded against the cell's node, letting several provinces alias
// one node. Tiles without coordinates are skipped.
//
// Phase two wires up to six edges per node. The entry cost is the
// destination's terrain cost, overridden by the river-transit cost
// when the two provinces share a navigable river, and scaled by the
// current multiplier when both endpoints are sea.
func (b *Builder) Build(tiles []world.Tile) *Graph {
	g := &Graph{
		cells:     make(map[uint64]int32, len(tiles)),
		provinces: make(map[world.ProvinceID]int32, len(tiles)),
	}

	for _, t := range tiles {
		if t.Pos == nil {
			continue
		}
		col, row := b.Proj.Cell(*t.Pos)
		key := cellKey(col, row)
		id, ok := g.cells[key]
		if !ok {
			id = int32(len(g.nodes))
			g.nodes = append(g.nodes, Node{
				ID:       id,
				Province: t.ID,
				Terrain:  t.Terrain,
				Col:      col,
				Row:      row,
				Pos:      b.Proj.LatLngAt(col, row),
			})
			g.cells[key] = id
		}
		g.provinces[t.ID] = id
	}

	n := len(g.nodes)
	g.adjNode = make([]int32, n*maxNeighbors)
	g.adjCost = make([]float64, n*maxNeighbors)
	g.adjLen = make([]uint8, n)

	for i := range g.nodes {
		u := &g.nodes[i]
		for _, d := range geo.NeighborOffsets(u.Col) {
			vid, ok := g.cells[cellKey(u.Col+d[0], u.Row+d[1])]
			if !ok {
				continue
			}
			v := &g.nodes[vid]

			cost := v.Terrain.MovementCost()
			if b.Rivers.Connected(u.Province, v.Province) && world.RiverTransitCost < cost {
				cost = world.RiverTransitCost
			}
			if b.Currents != nil && u.Terrain.IsSea() && v.Terrain.IsSea() {
				cost *= b.Currents.Multiplier(u.Pos, v.Pos)
			}

			slot := i*maxNeighbors + int(g.adjLen[i])
			g.adjNode[slot] = vid
			g.adjCost[slot] = cost
			g.adjLen[i]++
		}
	}

	return g
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Node returns the node with the given id. Passing an out-of-range id
// is a caller bug and panics.
func (g *Graph) Node(id int32) Node {
	if id < 0 || int(id) >= len(g.nodes) {
		panic(fmt.Sprintf("routing: node id %d out of range [0,%d)", id, len(g.nodes)))
	}
	return g.nodes[id]
}

// NodeByProvince resolves a province id to its node. A province
// missing from the graph is normal (edge-of-map data gaps), hence the
// ok flag rather than a panic.
func (g *Graph) NodeByProvince(p world.ProvinceID) (int32, bool) {
	id, ok := g.provinces[p]
	return id, ok
}

// EachProvince calls fn for every recorded province id and its node.
// Iteration order is unspecified.
func (g *Graph) EachProvince(fn func(p world.ProvinceID, node int32)) {
	for p, id := range g.provinces {
		fn(p, id)
	}
}

// Neighbors returns node u's outgoing edges as parallel slices of
// neighbor ids and entry costs. The slices alias the graph's arena and
// must not be modified.
func (g *Graph) Neighbors(u int32) ([]int32, []float64) {
	if u < 0 || int(u) >= len(g.nodes) {
		panic(fmt.Sprintf("routing: node id %d out of range [0,%d)", u, len(g.nodes)))
	}
	start := int(u) * maxNeighbors
	deg := int(g.adjLen[u])
	return g.adjNode[start : start+deg], g.adjCost[start : start+deg]
}

// EdgeCount returns the total number of directed edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, d := range g.adjLen {
		total += int(d)
	}
	return total
}
