package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cladegrid/internal/bipartition"
)

func mustTable(t *testing.T, nTips int, pairs ...[2]int) *bipartition.Table {
	t.Helper()
	edges := make([]bipartition.Edge, len(pairs))
	for i, p := range pairs {
		edges[i] = bipartition.Edge{Parent: p[0], Child: p[1]}
	}
	table, err := bipartition.Build(edges, nTips)
	require.NoError(t, err)
	return table
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint([]int{1, 2, 3}), Fingerprint([]int{1, 2, 3}))
	assert.NotEqual(t, Fingerprint([]int{1, 2}), Fingerprint([]int{1, 3}))
	assert.NotEqual(t, Fingerprint([]int{12}), Fingerprint([]int{1, 2}))
}

func TestHex(t *testing.T) {
	assert.Equal(t, "0000000000000000", Hex(0))
	assert.Equal(t, "00000000000000ff", Hex(255))
	assert.Len(t, Hex(Fingerprint([]int{1, 2})), 16)
}

func TestFromTable(t *testing.T) {
	// ((1,2),(3,4),5) with a unary node 9 above (3,4).
	table := mustTable(t, 5,
		[2]int{7, 1}, [2]int{7, 2},
		[2]int{8, 3}, [2]int{8, 4},
		[2]int{9, 8},
		[2]int{6, 7}, [2]int{6, 9}, [2]int{6, 5},
	)
	s := FromTable(table)
	require.Len(t, s, 2)
	assert.Contains(t, s, Fingerprint([]int{1, 2}))
	assert.Contains(t, s, Fingerprint([]int{3, 4}))
	assert.NotContains(t, s, Fingerprint([]int{1, 2, 3, 4, 5}))

	sorted := s.Sorted()
	require.Len(t, sorted, 2)
	assert.Less(t, sorted[0], sorted[1])
}

func TestRobinsonFoulds(t *testing.T) {
	// ((1,2),(3,4),5) vs ((1,2),(3,5),4) vs the same topology numbered differently.
	a := FromTable(mustTable(t, 5,
		[2]int{7, 1}, [2]int{7, 2}, [2]int{8, 3}, [2]int{8, 4},
		[2]int{6, 7}, [2]int{6, 8}, [2]int{6, 5},
	))
	b := FromTable(mustTable(t, 5,
		[2]int{7, 1}, [2]int{7, 2}, [2]int{8, 3}, [2]int{8, 5},
		[2]int{6, 7}, [2]int{6, 8}, [2]int{6, 4},
	))
	c := FromTable(mustTable(t, 5,
		[2]int{8, 2}, [2]int{8, 1}, [2]int{7, 4}, [2]int{7, 3},
		[2]int{6, 5}, [2]int{6, 8}, [2]int{6, 7},
	))

	assert.Equal(t, 0, RobinsonFoulds(a, a))
	assert.Equal(t, 0, RobinsonFoulds(a, c))
	assert.Equal(t, 2, RobinsonFoulds(a, b))
	assert.Equal(t, 1, Shared(a, b))
	assert.Equal(t, 2, Shared(a, c))
}

func TestFromTableLabels(t *testing.T) {
	// --- Arrange ---
	// Both trees are ((1,2),(3,4)), but b swaps the names of tips 2 and 3.
	table := mustTable(t, 4,
		[2]int{6, 1}, [2]int{6, 2}, [2]int{7, 3}, [2]int{7, 4},
		[2]int{5, 6}, [2]int{5, 7},
	)
	a := FromTableLabels(table, []string{"X", "Y", "Z", "W"})
	b := FromTableLabels(table, []string{"X", "Z", "Y", "W"})
	renumbered := FromTableLabels(table, []string{"Y", "X", "W", "Z"})

	// --- Assert ---
	assert.Contains(t, a, FingerprintLabels([]string{"Y", "X"}))
	assert.Contains(t, b, FingerprintLabels([]string{"X", "Z"}))
	assert.Equal(t, 0, Shared(a, b))
	assert.Equal(t, 4, RobinsonFoulds(a, b))
	assert.Equal(t, 0, RobinsonFoulds(a, renumbered))
}

func TestFingerprintLabels(t *testing.T) {
	assert.Equal(t, FingerprintLabels([]string{"a", "b"}), FingerprintLabels([]string{"b", "a"}))
	assert.NotEqual(t, FingerprintLabels([]string{"ab"}), FingerprintLabels([]string{"a", "b"}))
}

func TestSameLabels(t *testing.T) {
	assert.True(t, SameLabels([]string{"X", "Y"}, []string{"Y", "X"}))
	assert.False(t, SameLabels([]string{"X", "Y"}, []string{"X", "Z"}))
	assert.False(t, SameLabels([]string{"X"}, []string{"X", "Y"}))
}
