package routing

// minHeap is a binary min-heap over (cost, node) pairs backed by two
// parallel buffers instead of boxed items, so a full-graph search does
// no per-push allocation once warm. Graphs can exceed 10^5 nodes; the
// buffers double on overflow, copying only the live prefix.
type minHeap struct {
	cost []float64
	node []int32
}

// newMinHeap creates a heap with the given initial capacity.
// Size generously: one slot per expected node avoids regrowth during a
// full-graph run.
func newMinHeap(capacity int) *minHeap {
	if capacity < 16 {
		capacity = 16
	}
	return &minHeap{
		cost: make([]float64, 0, capacity),
		node: make([]int32, 0, capacity),
	}
}

func (h *minHeap) len() int { return len(h.cost) }

// push adds an entry in O(log n).
func (h *minHeap) push(cost float64, node int32) {
	if len(h.cost) == cap(h.cost) {
		h.grow()
	}
	h.cost = append(h.cost, cost)
	h.node = append(h.node, node)
	h.siftUp(len(h.cost) - 1)
}

// pop removes and returns the minimum-cost entry in O(log n).
// Calling pop on an empty heap is a caller bug and panics.
func (h *minHeap) pop() (float64, int32) {
	c, n := h.cost[0], h.node[0]
	last := len(h.cost) - 1
	h.cost[0], h.node[0] = h.cost[last], h.node[last]
	h.cost = h.cost[:last]
	h.node = h.node[:last]
	if last > 0 {
		h.siftDown(0)
	}
	return c, n
}

func (h *minHeap) grow() {
	cost := make([]float64, len(h.cost), 2*cap(h.cost))
	node := make([]int32, len(h.node), 2*cap(h.node))
	copy(cost, h.cost)
	copy(node, h.node)
	h.cost, h.node = cost, node
}

func (h *minHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.cost[parent] <= h.cost[i] {
			return
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h *minHeap) siftDown(i int) {
	n := len(h.cost)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		min := left
		if right := left + 1; right < n && h.cost[right] < h.cost[left] {
			min = right
		}
		if h.cost[i] <= h.cost[min] {
			return
		}
		h.swap(i, min)
		i = min
	}
}

func (h *minHeap) swap(i, j int) {
	h.cost[i], h.cost[j] = h.cost[j], h.cost[i]
	h.node[i], h.node[j] = h.node[j], h.node[i]
}
