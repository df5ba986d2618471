// This file translates HCL schema structs into the format-agnostic
// configuration model defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/cladegrid/internal/bipartition"
	"github.com/vk/cladegrid/internal/config"
	"github.com/vk/cladegrid/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// edgeListType is the cty type every `edges` expression is converted to.
var edgeListType = cty.List(cty.List(cty.Number))

// translateTree converts the HCL tree schema into the agnostic model.
func (l *Loader) translateTree(ctx context.Context, t *Tree, filename string) (*config.Tree, error) {
	logger := ctxlog.FromContext(ctx).With("tree", t.Name, "file", filename)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Translating HCL tree to internal config model.")

	if t.Tips <= 0 {
		return nil, fmt.Errorf("in %s, tree '%s': tips must be positive, got %d", filename, t.Name, t.Tips)
	}

	ordering := bipartition.OrderPostorder
	if t.Ordering != nil {
		o, err := bipartition.ParseOrdering(*t.Ordering)
		if err != nil {
			return nil, fmt.Errorf("in %s, tree '%s': %w", filename, t.Name, err)
		}
		ordering = o
	}

	if len(t.Labels) > 0 && len(t.Labels) != t.Tips {
		return nil, fmt.Errorf("in %s, tree '%s': %d labels given for %d tips", filename, t.Name, len(t.Labels), t.Tips)
	}
	seen := make(map[string]int, len(t.Labels))
	for i, label := range t.Labels {
		if prev, dup := seen[label]; dup {
			return nil, fmt.Errorf("in %s, tree '%s': label %q names both tip %d and tip %d", filename, t.Name, label, prev, i+1)
		}
		seen[label] = i + 1
	}

	edges, err := decodeEdges(ctx, t.Edges)
	if err != nil {
		return nil, fmt.Errorf("in %s, tree '%s': %w", filename, t.Name, err)
	}

	return &config.Tree{
		Name:     t.Name,
		Tips:     t.Tips,
		Edges:    edges,
		Ordering: ordering,
		Labels:   t.Labels,
		Source:   filename,
	}, nil
}

// decodeEdges evaluates an `edges` expression and turns each [parent, child]
// row into an Edge.
func decodeEdges(ctx context.Context, expr hcl.Expression) ([]bipartition.Edge, error) {
	if !isExprDefined(ctx, expr, "edges") {
		return nil, fmt.Errorf("edges must be defined")
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid edges expression: %w", diags)
	}
	if val.IsNull() || !val.IsWhollyKnown() {
		return nil, fmt.Errorf("edges must be a known, non-null list")
	}

	listVal, err := convert.Convert(val, edgeListType)
	if err != nil {
		return nil, fmt.Errorf("edges must be a list of [parent, child] number pairs: %w", err)
	}

	var rows [][]int
	if err := gocty.FromCtyValue(listVal, &rows); err != nil {
		return nil, fmt.Errorf("edges must hold whole numbers: %w", err)
	}

	edges := make([]bipartition.Edge, len(rows))
	for i, row := range rows {
		if len(row) != 2 {
			return nil, fmt.Errorf("edge %d has %d values, want [parent, child]", i, len(row))
		}
		edges[i] = bipartition.Edge{Parent: row[0], Child: row[1]}
	}
	ctxlog.FromContext(ctx).Debug("Decoded edge list.", "edges", len(edges))
	return edges, nil
}
