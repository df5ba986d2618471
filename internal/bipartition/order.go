package bipartition

import "github.com/vk/cladegrid/internal/dag"

// newGraph loads edges into a dag. Edges have already passed validate.
func newGraph(edges []Edge) (*dag.Graph, error) {
	g := dag.New()
	for i, e := range edges {
		if err := g.AddEdge(e.Parent, e.Child); err != nil {
			return nil, &InputError{Index: i, Parent: e.Parent, Child: e.Child, Reason: err.Error()}
		}
	}
	return g, nil
}

// postorder returns a copy of the graph's edges arranged so that every
// internal child is complete before it is consumed. A cycle is reported as
// malformed input.
func postorder(g *dag.Graph) ([]Edge, error) {
	ordered, err := g.PostOrder()
	if err != nil {
		return nil, &InputError{Index: -1, Reason: err.Error()}
	}

	out := make([]Edge, len(ordered))
	for i, e := range ordered {
		out[i] = Edge{Parent: e[0], Child: e[1]}
	}
	return out, nil
}

// checkOrder verifies edges are postorder-consistent as given: once a node has
// been consumed as a child, no later edge may add children to it.
func checkOrder(edges []Edge, nTips int) error {
	usedAt := make(map[int]int)
	for i, e := range edges {
		if at, ok := usedAt[e.Parent]; ok {
			return &OrderError{Index: i, Node: e.Parent, UsedAt: at}
		}
		if e.Child > nTips {
			if _, ok := usedAt[e.Child]; !ok {
				usedAt[e.Child] = i
			}
		}
	}
	return nil
}
