// Package dag holds the node/edge graph used to put a tree's edge list into a
// processing order. It can detect cycles and emit the edges in postorder, so
// that every edge naming a node as a child comes after all edges leaving that
// node.
package dag
