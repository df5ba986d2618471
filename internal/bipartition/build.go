package bipartition

import (
	"context"
	"slices"

	"github.com/vk/cladegrid/internal/ctxlog"
	"github.com/vk/cladegrid/internal/dag"
	"golang.org/x/sync/errgroup"
)

// parallelSortThreshold is the node count below which sorting is always
// done on the calling goroutine.
const parallelSortThreshold = 4096

// Build computes the tip set of every node id 1..MaxNodeID(edges) using the
// default options. It returns an error wrapping ErrMalformedInput, and no
// table, when the input is rejected.
func Build(edges []Edge, nTips int) (*Table, error) {
	return BuildWithOptions(context.Background(), edges, nTips, Options{})
}

// BuildWithOptions is Build with an explicit ordering mode and sort
// parallelism. The context is checked between phases.
func BuildWithOptions(ctx context.Context, edges []Edge, nTips int, opts Options) (*Table, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Bipartition build started.", "edges", len(edges), "tips", nTips, "ordering", opts.Ordering.String())

	maxID, err := validate(edges, nTips)
	if err != nil {
		return nil, err
	}

	g, err := newGraph(edges)
	if err != nil {
		return nil, err
	}

	ordered := edges
	switch opts.Ordering {
	case OrderPostorder:
		ordered, err = postorder(g)
		if err != nil {
			return nil, err
		}
		logger.Debug("Edges sorted into postorder.")
	case OrderStrict:
		if err := checkOrder(edges, nTips); err != nil {
			return nil, err
		}
	case OrderUnchecked:
	default:
		return nil, &InputError{Index: -1, Reason: "unknown ordering " + opts.Ordering.String()}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sets := aggregate(ordered, nTips, maxID)
	if err := sortSets(ctx, sets, opts.Workers); err != nil {
		return nil, err
	}

	t := &Table{sets: sets, nTips: nTips, root: findRoot(g, nTips, maxID)}
	logger.Debug("Bipartition build finished.", "nodes", maxID, "root", t.root)
	return t, nil
}

// MaxNodeID returns the largest parent id in edges, or 0 for an empty list.
func MaxNodeID(edges []Edge) int {
	m := 0
	for _, e := range edges {
		if e.Parent > m {
			m = e.Parent
		}
	}
	return m
}

// validate rejects malformed input and returns the node id range.
func validate(edges []Edge, nTips int) (int, error) {
	if len(edges) == 0 {
		return 0, &InputError{Index: -1, Reason: "edge list is empty"}
	}
	if nTips <= 0 {
		return 0, &InputError{Index: -1, Reason: "tip count must be positive"}
	}
	for i, e := range edges {
		switch {
		case e.Parent <= 0:
			return 0, &InputError{Index: i, Parent: e.Parent, Child: e.Child, Reason: "parent id must be positive"}
		case e.Child <= 0:
			return 0, &InputError{Index: i, Parent: e.Parent, Child: e.Child, Reason: "child id must be positive"}
		case e.Parent == e.Child:
			return 0, &InputError{Index: i, Parent: e.Parent, Child: e.Child, Reason: "self-referential edge"}
		case e.Parent <= nTips:
			return 0, &InputError{Index: i, Parent: e.Parent, Child: e.Child, Reason: "parent id is a tip"}
		}
	}

	maxID := MaxNodeID(edges)
	for i, e := range edges {
		if e.Child > nTips && e.Child > maxID {
			return 0, &InputError{Index: i, Parent: e.Parent, Child: e.Child, Reason: "child id exceeds the largest parent id"}
		}
	}
	return maxID, nil
}

// aggregate performs the forward pass. Each parent owns its slice; an
// internal child's tips are copied in, never shared.
func aggregate(edges []Edge, nTips, maxID int) [][]int {
	sets := make([][]int, maxID)
	for i := 1; i <= nTips; i++ {
		sets[i-1] = []int{i}
	}
	for _, e := range edges {
		dst := sets[e.Parent-1]
		if e.Child > nTips {
			dst = append(dst, sets[e.Child-1]...)
		} else {
			dst = append(dst, e.Child)
		}
		sets[e.Parent-1] = dst
	}
	return sets
}

func sortSets(ctx context.Context, sets [][]int, workers int) error {
	if workers < 2 || len(sets) < parallelSortThreshold {
		for _, s := range sets {
			slices.Sort(s)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	chunk := (len(sets) + workers - 1) / workers
	for start := 0; start < len(sets); start += chunk {
		end := min(start+chunk, len(sets))
		part := sets[start:end]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for _, s := range part {
				slices.Sort(s)
			}
			return nil
		})
	}
	return g.Wait()
}

// findRoot picks the smallest internal id that has children and is never a
// child. With the usual numbering this is nTips+1. A graph without such a
// node (only possible in unchecked mode, through a cycle) falls back to maxID.
func findRoot(g *dag.Graph, nTips, maxID int) int {
	for _, id := range g.Roots() {
		if id > nTips {
			return id
		}
	}
	return maxID
}
