package world

// RiverTransitCost is the fixed entry cost of following a navigable
// river between two connected provinces. Applied only when it beats the
// destination's terrain cost.
const RiverTransitCost = 2.0

// RiverNetwork records which province pairs are connected by a
// navigable river. Constructed explicitly and handed to the graph
// builder so independent graphs never share state.
type RiverNetwork struct {
	crossings map[riverKey]struct{}
}

type riverKey uint64

func riverPair(a, b ProvinceID) riverKey {
	if a > b {
		a, b = b, a
	}
	return riverKey(uint64(a)<<32 | uint64(b))
}

// NewRiverNetwork creates an empty river network.
func NewRiverNetwork() *RiverNetwork {
	return &RiverNetwork{crossings: make(map[riverKey]struct{})}
}

// Connect records a navigable river between two provinces.
// Order-insensitive; connecting a province to itself is a no-op.
func (r *RiverNetwork) Connect(a, b ProvinceID) {
	if a == b {
		return
	}
	r.crossings[riverPair(a, b)] = struct{}{}
}

// Connected reports whether two provinces share a navigable river.
// Safe to call on a nil network.
func (r *RiverNetwork) Connected(a, b ProvinceID) bool {
	if r == nil {
		return false
	}
	_, ok := r.crossings[riverPair(a, b)]
	return ok
}

// Len returns the number of recorded crossings.
func (r *RiverNetwork) Len() int {
	if r == nil {
		return 0
	}
	return len(r.crossings)
}
