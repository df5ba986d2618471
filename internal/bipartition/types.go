package bipartition

import (
	"fmt"
	"slices"
	"strings"
)

// Edge is a directed edge from a parent node to one of its children.
type Edge struct {
	Parent int
	Child  int
}

// Ordering selects how the builder treats the order of the edge list.
type Ordering int

const (
	// OrderPostorder sorts the edges into postorder before aggregating.
	OrderPostorder Ordering = iota
	// OrderStrict aggregates in input order and rejects misordered input.
	OrderStrict
	// OrderUnchecked aggregates in input order without any check.
	OrderUnchecked
)

func (o Ordering) String() string {
	switch o {
	case OrderPostorder:
		return "postorder"
	case OrderStrict:
		return "strict"
	case OrderUnchecked:
		return "unchecked"
	}
	return fmt.Sprintf("Ordering(%d)", int(o))
}

// ParseOrdering maps a configuration value onto an Ordering. The empty string
// selects the default.
func ParseOrdering(s string) (Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "postorder":
		return OrderPostorder, nil
	case "strict":
		return OrderStrict, nil
	case "unchecked":
		return OrderUnchecked, nil
	}
	return 0, fmt.Errorf("unknown ordering %q: must be 'postorder', 'strict' or 'unchecked'", s)
}

// Options tunes a build. The zero value is the default behaviour.
type Options struct {
	Ordering Ordering
	// Workers bounds the goroutines used for the final per-node sort.
	// Values below 2 sort sequentially.
	Workers int
}

// Table maps node ids 1..MaxNodeID to their ascending tip sets. A Table is
// never modified after Build returns it, and callers must not modify the
// slices it hands out.
type Table struct {
	sets  [][]int
	nTips int
	root  int
}

// Len returns the number of node ids covered, which is the largest parent id.
func (t *Table) Len() int {
	return len(t.sets)
}

// NTips returns the tip count the table was built with.
func (t *Table) NTips() int {
	return t.nTips
}

// Root returns the root node id: the smallest internal id that has children
// but is never a child itself, or the largest id if there is none.
func (t *Table) Root() int {
	return t.root
}

// Of returns the tip set of node id, or nil when id is out of range.
func (t *Table) Of(id int) []int {
	if id < 1 || id > len(t.sets) {
		return nil
	}
	return t.sets[id-1]
}

// Sets returns a deep copy of all tip sets, index i holding node i+1.
func (t *Table) Sets() [][]int {
	out := make([][]int, len(t.sets))
	for i, s := range t.sets {
		out[i] = append([]int(nil), s...)
	}
	return out
}

// Contains reports whether tip is below node id.
func (t *Table) Contains(id, tip int) bool {
	_, found := slices.BinarySearch(t.Of(id), tip)
	return found
}

// MRCA returns the node with the smallest tip set containing all given tips.
// Ties go to the smaller id, so a tip is its own MRCA even below a unary
// node. ok is false if no node contains them all.
func (t *Table) MRCA(tips ...int) (id int, ok bool) {
	if len(tips) == 0 {
		return 0, false
	}
	best := -1
	for i := 1; i <= len(t.sets); i++ {
		s := t.sets[i-1]
		if best >= 0 && len(s) >= len(t.sets[best-1]) {
			continue
		}
		all := true
		for _, tip := range tips {
			if !t.Contains(i, tip) {
				all = false
				break
			}
		}
		if all {
			best = i
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}
