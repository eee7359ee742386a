package routing

import (
	"fmt"
	"math"
)

// SearchResult holds the three parallel output buffers of one search,
// each indexed by node id.
type SearchResult struct {
	// Dist is the movement cost from the nearest seeded source;
	// +Inf for unreached nodes.
	Dist []float64
	// Prev is the predecessor node on the shortest path; -1 for
	// sources and unreached nodes.
	Prev []int32
	// Label is the index into the seed list (or the explicit label) of
	// whichever source reached the node first along the shortest path;
	// -1 exactly when Dist is +Inf.
	Label []int32
}

// ShortestPaths runs Dijkstra from every source simultaneously,
// labeling each reached node with the list index of its winning source.
//
// Deterministic: between equally costly sources the lowest list index
// wins. Ties are resolved in the relaxation itself, never by incidental
// queue order, so given an identical graph and source list the output
// buffers are bit-identical across runs.
func (g *Graph) ShortestPaths(sources []int32) *SearchResult {
	return g.shortestPaths(sources, nil)
}

// ShortestPathsLabeled is ShortestPaths with explicit per-source
// labels instead of list indices. len(labels) must equal len(sources).
func (g *Graph) ShortestPathsLabeled(sources []int32, labels []int32) *SearchResult {
	if len(labels) != len(sources) {
		panic(fmt.Sprintf("routing: %d labels for %d sources", len(labels), len(sources)))
	}
	return g.shortestPaths(sources, labels)
}

func (g *Graph) shortestPaths(sources []int32, labels []int32) *SearchResult {
	n := len(g.nodes)
	res := &SearchResult{
		Dist:  make([]float64, n),
		Prev:  make([]int32, n),
		Label: make([]int32, n),
	}
	inf := math.Inf(1)
	for i := 0; i < n; i++ {
		res.Dist[i] = inf
		res.Prev[i] = -1
		res.Label[i] = -1
	}

	heap := newMinHeap(max(n, 1024))

	for i, s := range sources {
		if s < 0 || int(s) >= n {
			panic(fmt.Sprintf("routing: source node id %d out of range [0,%d)", s, n))
		}
		lbl := int32(i)
		if labels != nil {
			lbl = labels[i]
		}
		// A duplicate source keeps the lowest of its labels.
		if res.Dist[s] == 0 {
			if lbl < res.Label[s] {
				res.Label[s] = lbl
			}
			continue
		}
		res.Dist[s] = 0
		res.Label[s] = lbl
		heap.push(0, s)
	}

	for heap.len() > 0 {
		c, u := heap.pop()
		// Stale entry: a better path was recorded after this push.
		// Skipping here is what lets us tolerate duplicate heap
		// entries instead of a decrease-key operation.
		if c > res.Dist[u] {
			continue
		}
		neighbors, costs := g.Neighbors(u)
		for k, v := range neighbors {
			nd := c + costs[k]
			// An equal-cost path also wins when it carries a lower
			// label; re-pushing propagates the winner downstream.
			// Labels only ever decrease at a fixed distance, so the
			// extra relaxations terminate.
			if nd < res.Dist[v] || (nd == res.Dist[v] && res.Label[u] < res.Label[v]) {
				res.Dist[v] = nd
				res.Prev[v] = u
				res.Label[v] = res.Label[u]
				heap.push(nd, v)
			}
		}
	}

	return res
}
