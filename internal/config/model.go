package config

import (
	"strconv"

	"github.com/vk/cladegrid/internal/bipartition"
)

// Model is the unified, format-agnostic representation of every tree
// definition found in the configured paths.
type Model struct {
	Trees []*Tree
}

// Tree is the format-agnostic representation of a `tree` block.
type Tree struct {
	Name     string
	Tips     int
	Edges    []bipartition.Edge
	Ordering bipartition.Ordering
	// Labels optionally names tips; Labels[i] is the name of tip i+1.
	Labels []string
	// Source is the file the tree was read from.
	Source string
}

// Tree returns the definition with the given name.
func (m *Model) Tree(name string) (*Tree, bool) {
	for _, t := range m.Trees {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Label returns the name of a tip, falling back to its numeric id.
func (t *Tree) Label(tip int) string {
	if tip >= 1 && tip <= len(t.Labels) {
		return t.Labels[tip-1]
	}
	return strconv.Itoa(tip)
}
