package routing

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHeapOrdering pushes shuffled costs and expects ascending pops.
func TestHeapOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const n = 1000

	values := make([]float64, n)
	for i := range values {
		values[i] = rng.Float64() * 100
	}

	h := newMinHeap(4) // tiny capacity to force repeated growth
	for i, v := range values {
		h.push(v, int32(i))
	}
	require.Equal(t, n, h.len())

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	for i := 0; i < n; i++ {
		c, node := h.pop()
		require.Equal(t, sorted[i], c, "pop %d", i)
		require.Equal(t, values[node], c, "cost/node pairing broken at pop %d", i)
	}
	require.Equal(t, 0, h.len())
}

// TestHeapInterleaved mixes pushes and pops.
func TestHeapInterleaved(t *testing.T) {
	h := newMinHeap(16)
	h.push(5, 0)
	h.push(1, 1)
	h.push(3, 2)

	c, node := h.pop()
	require.Equal(t, 1.0, c)
	require.Equal(t, int32(1), node)

	h.push(2, 3)
	c, node = h.pop()
	require.Equal(t, 2.0, c)
	require.Equal(t, int32(3), node)

	c, _ = h.pop()
	require.Equal(t, 3.0, c)
	c, _ = h.pop()
	require.Equal(t, 5.0, c)
}

// TestHeapDuplicates: duplicate node entries are allowed; the engine
// relies on popping both and discarding the stale one.
func TestHeapDuplicates(t *testing.T) {
	h := newMinHeap(16)
	h.push(7, 9)
	h.push(3, 9)

	c, node := h.pop()
	require.Equal(t, 3.0, c)
	require.Equal(t, int32(9), node)
	c, node = h.pop()
	require.Equal(t, 7.0, c)
	require.Equal(t, int32(9), node)
}
