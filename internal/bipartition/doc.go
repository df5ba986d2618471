// Package bipartition computes, for every node of a rooted tree, the sorted set
// of tip labels beneath it.
//
// A tree is given as an edge list of (parent, child) node ids together with
// the number of tips. Ids 1..nTips are tips; larger ids are internal nodes,
// and the largest parent id bounds the id range. The result is a Table with
// one ascending tip list per node id.
//
// Aggregation is a single forward pass over the edges: a tip child is
// appended to its parent, an internal child's list is copied into its
// parent's list. That pass is only correct when every internal child is
// complete by the time it is referenced, so the edges have to be in a
// postorder-consistent order. The Ordering option decides who guarantees it:
//
//   - OrderPostorder (default) re-orders the edges internally.
//   - OrderStrict consumes the edges as given and fails with
//     ErrOrderingViolation when a node gains children after it was used.
//   - OrderUnchecked consumes the edges as given and trusts the caller.
//     Misordered input silently yields incomplete sets.
package bipartition
