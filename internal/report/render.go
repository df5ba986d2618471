// Package report renders bipartition tables and tree comparisons as text,
// JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vk/cladegrid/internal/bipartition"
	"github.com/vk/cladegrid/internal/config"
	"github.com/vk/cladegrid/internal/split"
	"gopkg.in/yaml.v3"
)

// Formats lists the accepted output formats.
var Formats = []string{"text", "json", "yaml"}

// Node is one row of a result: a node id and the tips below it.
type Node struct {
	ID     int      `json:"id" yaml:"id"`
	Tips   []int    `json:"tips" yaml:"tips,flow"`
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty,flow"`
	// Clade is the hex fingerprint of an internal node's tip set.
	Clade string `json:"clade,omitempty" yaml:"clade,omitempty"`
}

// Result is the rendered form of one tree's table.
type Result struct {
	Name     string `json:"name" yaml:"name"`
	Source   string `json:"source,omitempty" yaml:"source,omitempty"`
	Tips     int    `json:"tips" yaml:"tips"`
	Root     int    `json:"root" yaml:"root"`
	Ordering string `json:"ordering" yaml:"ordering"`
	Nodes    []Node `json:"nodes" yaml:"nodes"`
}

// Comparison is the clade distance between two trees.
type Comparison struct {
	A              string `json:"a" yaml:"a"`
	B              string `json:"b" yaml:"b"`
	Shared         int    `json:"shared" yaml:"shared"`
	RobinsonFoulds int    `json:"robinson_foulds" yaml:"robinson_foulds"`
}

// NewResult flattens a table into a Result, attaching tip labels when the
// tree defines them.
func NewResult(tree *config.Tree, table *bipartition.Table) Result {
	r := Result{
		Name:     tree.Name,
		Source:   tree.Source,
		Tips:     table.NTips(),
		Root:     table.Root(),
		Ordering: tree.Ordering.String(),
		Nodes:    make([]Node, 0, table.Len()),
	}
	for id := 1; id <= table.Len(); id++ {
		tips := append([]int(nil), table.Of(id)...)
		n := Node{ID: id, Tips: tips}
		if len(tree.Labels) > 0 {
			n.Labels = make([]string, len(tips))
			for i, tip := range tips {
				n.Labels[i] = tree.Label(tip)
			}
		}
		if id > table.NTips() && len(tips) > 0 {
			n.Clade = split.Hex(split.Fingerprint(tips))
		}
		r.Nodes = append(r.Nodes, n)
	}
	return r
}

// Render writes results in the given format.
func Render(w io.Writer, format string, results []Result) error {
	switch format {
	case "json":
		return writeJSON(w, results)
	case "yaml":
		return writeYAML(w, results)
	case "text", "":
		for i, r := range results {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := writeResultText(w, r); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// RenderComparisons writes pairwise comparisons in the given format.
func RenderComparisons(w io.Writer, format string, comparisons []Comparison) error {
	switch format {
	case "json":
		return writeJSON(w, comparisons)
	case "yaml":
		return writeYAML(w, comparisons)
	case "text", "":
		for _, c := range comparisons {
			if _, err := fmt.Fprintf(w, "%s vs %s: shared=%d rf=%d\n", c.A, c.B, c.Shared, c.RobinsonFoulds); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unsupported output format %q", format)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeResultText(w io.Writer, r Result) error {
	if _, err := fmt.Fprintf(w, "tree %s (%d tips, root %d, %s)\n", r.Name, r.Tips, r.Root, r.Ordering); err != nil {
		return err
	}
	for _, n := range r.Nodes {
		members := make([]string, len(n.Tips))
		for i, tip := range n.Tips {
			if len(n.Labels) > 0 {
				members[i] = n.Labels[i]
			} else {
				members[i] = fmt.Sprint(tip)
			}
		}
		line := fmt.Sprintf("  %4d  {%s}", n.ID, strings.Join(members, ", "))
		if n.Clade != "" {
			line += "  " + n.Clade
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
