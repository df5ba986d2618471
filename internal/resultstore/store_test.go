package resultstore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cladegrid/internal/bipartition"
)

var scenarioB = []bipartition.Edge{{Parent: 4, Child: 1}, {Parent: 4, Child: 2}, {Parent: 5, Child: 3}, {Parent: 5, Child: 4}}

func TestKey(t *testing.T) {
	base := Key(scenarioB, 3, bipartition.OrderPostorder)
	assert.Equal(t, base, Key(scenarioB, 3, bipartition.OrderPostorder))
	assert.NotEqual(t, base, Key(scenarioB, 4, bipartition.OrderPostorder))
	assert.NotEqual(t, base, Key(scenarioB, 3, bipartition.OrderUnchecked))

	swapped := []bipartition.Edge{{Parent: 4, Child: 2}, {Parent: 4, Child: 1}, {Parent: 5, Child: 3}, {Parent: 5, Child: 4}}
	assert.NotEqual(t, base, Key(swapped, 3, bipartition.OrderPostorder))
}

func TestStore_Build(t *testing.T) {
	ctx := context.Background()
	s, err := New(0)
	require.NoError(t, err)

	first, err := s.Build(ctx, scenarioB, 3, bipartition.Options{})
	require.NoError(t, err)
	second, err := s.Build(ctx, scenarioB, 3, bipartition.Options{})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, Stats{Hits: 1, Misses: 1, Entries: 1}, s.Stats())
}

func TestStore_BuildErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	s, err := New(4)
	require.NoError(t, err)

	bad := []bipartition.Edge{{Parent: 3, Child: 0}}
	_, err = s.Build(ctx, bad, 2, bipartition.Options{})
	assert.ErrorIs(t, err, bipartition.ErrMalformedInput)
	assert.Equal(t, 0, s.Stats().Entries)
}

func TestStore_Eviction(t *testing.T) {
	ctx := context.Background()
	s, err := New(1)
	require.NoError(t, err)

	_, err = s.Build(ctx, scenarioB, 3, bipartition.Options{})
	require.NoError(t, err)
	_, err = s.Build(ctx, []bipartition.Edge{{Parent: 3, Child: 1}, {Parent: 3, Child: 2}}, 2, bipartition.Options{})
	require.NoError(t, err)

	_, ok := s.Get(scenarioB, 3, bipartition.OrderPostorder)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Stats().Entries)
}

func TestStore_DigestCollisionIsAMiss(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	s, err := New(4)
	require.NoError(t, err)

	cherry := []bipartition.Edge{{Parent: 3, Child: 1}, {Parent: 3, Child: 2}}
	cherryTable, err := bipartition.Build(cherry, 2)
	require.NoError(t, err)
	// File the cherry's table under scenario B's digest, as a collision would.
	s.cache.Add(Key(scenarioB, 3, bipartition.OrderPostorder), &entry{
		nTips: 2,
		edges: cherry,
		table: cherryTable,
	})

	// --- Act ---
	table, err := s.Build(ctx, scenarioB, 3, bipartition.Options{})

	// --- Assert ---
	require.NoError(t, err)
	assert.NotSame(t, cherryTable, table)
	assert.Equal(t, []int{1, 2, 3}, table.Of(5))
	assert.Equal(t, uint64(0), s.Stats().Hits)
	assert.Equal(t, uint64(1), s.Stats().Misses)
}

func TestStore_PutCopiesEdges(t *testing.T) {
	s, err := New(4)
	require.NoError(t, err)

	edges := []bipartition.Edge{{Parent: 3, Child: 1}, {Parent: 3, Child: 2}}
	table, err := bipartition.Build(edges, 2)
	require.NoError(t, err)
	s.Put(edges, 2, bipartition.OrderPostorder, table)

	edges[1].Child = 1
	_, ok := s.Get([]bipartition.Edge{{Parent: 3, Child: 1}, {Parent: 3, Child: 2}}, 2, bipartition.OrderPostorder)
	assert.True(t, ok)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s, err := New(8)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table, err := s.Build(ctx, scenarioB, 3, bipartition.Options{})
			assert.NoError(t, err)
			assert.Equal(t, []int{1, 2, 3}, table.Of(5))
		}()
	}
	wg.Wait()

	stats := s.Stats()
	assert.Equal(t, uint64(50), stats.Hits+stats.Misses)
}
