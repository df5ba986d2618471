// Package resultstore memoizes bipartition tables so that identical trees,
// whether repeated in the input or compared against several others, are only
// built once.
package resultstore

import (
	"context"
	"encoding/binary"
	"fmt"
	"slices"
	"sync/atomic"

	xxhash "github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vk/cladegrid/internal/bipartition"
	"github.com/vk/cladegrid/internal/ctxlog"
)

// DefaultSize is the number of tables kept when no size is configured.
const DefaultSize = 256

// Store is a size-bounded, thread-safe cache of built tables.
type Store struct {
	cache  *lru.Cache[uint64, *entry]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// entry keeps the build input next to its table, so a digest collision is
// detected instead of returning another tree's table.
type entry struct {
	nTips    int
	ordering bipartition.Ordering
	edges    []bipartition.Edge
	table    *bipartition.Table
}

func (e *entry) matches(edges []bipartition.Edge, nTips int, ordering bipartition.Ordering) bool {
	return e.nTips == nTips && e.ordering == ordering && slices.Equal(e.edges, edges)
}

// Stats is a snapshot of cache effectiveness.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// New creates a store holding at most size tables. A size of zero or less
// selects DefaultSize.
func New(size int) (*Store, error) {
	if size <= 0 {
		size = DefaultSize
	}
	cache, err := lru.New[uint64, *entry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}
	return &Store{cache: cache}, nil
}

// Key digests everything that determines a build's output.
func Key(edges []bipartition.Edge, nTips int, ordering bipartition.Ordering) uint64 {
	d := xxhash.New()
	var buf [8]byte
	put := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = d.Write(buf[:])
	}
	put(nTips)
	put(int(ordering))
	put(len(edges))
	for _, e := range edges {
		put(e.Parent)
		put(e.Child)
	}
	return d.Sum64()
}

// Get returns the cached table built from exactly this input.
func (s *Store) Get(edges []bipartition.Edge, nTips int, ordering bipartition.Ordering) (*bipartition.Table, bool) {
	e, ok := s.cache.Get(Key(edges, nTips, ordering))
	if !ok || !e.matches(edges, nTips, ordering) {
		s.misses.Add(1)
		return nil, false
	}
	s.hits.Add(1)
	return e.table, true
}

// Put stores a table together with the input it was built from. The edges
// are copied.
func (s *Store) Put(edges []bipartition.Edge, nTips int, ordering bipartition.Ordering, t *bipartition.Table) {
	s.cache.Add(Key(edges, nTips, ordering), &entry{
		nTips:    nTips,
		ordering: ordering,
		edges:    slices.Clone(edges),
		table:    t,
	})
}

// Build returns the cached table for this input or builds and caches it.
// Failed builds are not cached.
func (s *Store) Build(ctx context.Context, edges []bipartition.Edge, nTips int, opts bipartition.Options) (*bipartition.Table, error) {
	if t, ok := s.Get(edges, nTips, opts.Ordering); ok {
		ctxlog.FromContext(ctx).Debug("Result cache hit.", "tips", nTips, "edges", len(edges))
		return t, nil
	}
	t, err := bipartition.BuildWithOptions(ctx, edges, nTips, opts)
	if err != nil {
		return nil, err
	}
	s.Put(edges, nTips, opts.Ordering, t)
	return t, nil
}

// Stats reports hit and miss counts since the store was created.
func (s *Store) Stats() Stats {
	return Stats{
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
		Entries: s.cache.Len(),
	}
}
