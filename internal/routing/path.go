package routing

import "github.com/talgya/tradewinds/internal/world"

// WalkPath follows predecessors from start, collecting the province id
// of every node visited, until stop is reached (inclusive). A revisited
// node means the predecessor buffer carries a cycle from malformed
// data; the walk terminates there and returns the partial path rather
// than failing. Callers detect truncation by checking the last element
// against the stop node's province.
func (g *Graph) WalkPath(prev []int32, start, stop int32) []world.ProvinceID {
	path := make([]world.ProvinceID, 0, 16)
	seen := make(map[int32]bool, 16)
	for cur := start; cur >= 0; cur = prev[cur] {
		if seen[cur] {
			return path
		}
		seen[cur] = true
		path = append(path, g.Node(cur).Province)
		if cur == stop {
			return path
		}
	}
	return path
}

// Reverse flips a province path in place and returns it.
func Reverse(path []world.ProvinceID) []world.ProvinceID {
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
