package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is used to decode all top-level blocks from any file.
type fileRoot struct {
	Trees  []*Tree  `hcl:"tree,block"`
	Remain hcl.Body `hcl:",remain"`
}

// Tree is the HCL schema of a `tree` block.
type Tree struct {
	Name     string         `hcl:"name,label"`
	Tips     int            `hcl:"tips"`
	Edges    hcl.Expression `hcl:"edges"`
	Ordering *string        `hcl:"ordering,optional"`
	Labels   []string       `hcl:"labels,optional"`
}
