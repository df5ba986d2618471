package dag

import "sync"

// Graph is a rooted, directed graph over integer node ids, where an edge runs
// from a parent to one of its children. All operations on the graph are
// concurrency-safe.
type Graph struct {
	// mutex protects the nodes map during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their id.
	nodes map[int]*node
	// edgeCount is the number of edges added, duplicates included.
	edgeCount int
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using int ids),
// not by direct struct manipulation.
type node struct {
	// id is the unique identifier for the node.
	id int
	// children holds the outgoing edges in insertion order. A child may be
	// listed more than once when the same edge was added twice.
	children []*node
	// parents counts incoming edges.
	parents int
}

// Edge is a (parent, child) pair as returned by PostOrder.
type Edge [2]int
