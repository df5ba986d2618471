package dag

import (
	"fmt"
	"slices"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[int]*node),
	}
}

func (g *Graph) addNodeLocked(id int) *node {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := &node{id: id}
	g.nodes[id] = n
	return n
}

// AddEdge creates a directed edge from the parent node to the child node.
// Both nodes are created on demand. An error is returned if the edge would
// create a self-reference.
func (g *Graph) AddEdge(parent, child int) error {
	if parent == child {
		return fmt.Errorf("self-referential edge not allowed: %d -> %d", parent, parent)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	p := g.addNodeLocked(parent)
	c := g.addNodeLocked(child)
	p.children = append(p.children, c)
	c.parents++
	g.edgeCount++

	return nil
}

// Roots returns the ids of all nodes that never appear as a child, in
// ascending order.
func (g *Graph) Roots() []int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.rootsLocked()
}

func (g *Graph) rootsLocked() []int {
	var roots []int
	for id, n := range g.nodes {
		if n.parents == 0 {
			roots = append(roots, id)
		}
	}
	slices.Sort(roots)
	return roots
}

// PostOrder returns every edge of the graph ordered so that all edges leaving
// a node come before any edge that names that node as a child. Traversal
// starts from the roots in ascending id order and follows children in
// insertion order, so the result is deterministic. An error is returned if
// the graph contains a cycle.
func (g *Graph) PostOrder() ([]Edge, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	const (
		unvisited = iota
		onStack
		done
	)
	state := make(map[int]int, len(g.nodes))
	out := make([]Edge, 0, g.edgeCount)

	// frame is one level of the explicit DFS stack; next is the index of the
	// child to descend into when the frame is resumed.
	type frame struct {
		n    *node
		next int
	}

	walk := func(root *node) error {
		if state[root.id] == done {
			return nil
		}
		stack := []frame{{n: root}}
		state[root.id] = onStack
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(top.n.children) {
				child := top.n.children[top.next]
				top.next++
				switch state[child.id] {
				case onStack:
					return fmt.Errorf("cycle detected involving node %d", child.id)
				case unvisited:
					state[child.id] = onStack
					stack = append(stack, frame{n: child})
				}
				continue
			}
			for _, child := range top.n.children {
				out = append(out, Edge{top.n.id, child.id})
			}
			state[top.n.id] = done
			stack = stack[:len(stack)-1]
		}
		return nil
	}

	for _, id := range g.rootsLocked() {
		if err := walk(g.nodes[id]); err != nil {
			return nil, err
		}
	}
	// Anything still unvisited is only reachable through a cycle.
	for _, id := range g.sortedIDsLocked() {
		if state[id] != done {
			if err := walk(g.nodes[id]); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func (g *Graph) sortedIDsLocked() []int {
	ids := make([]int, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
