package app

import (
	"context"
	"fmt"

	"github.com/vk/cladegrid/internal/bipartition"
	"github.com/vk/cladegrid/internal/config"
	"github.com/vk/cladegrid/internal/ctxlog"
	"github.com/vk/cladegrid/internal/report"
	"github.com/vk/cladegrid/internal/split"
	"golang.org/x/sync/errgroup"
)

// Run builds the bipartition table of every loaded tree and writes the report.
// The first failing tree cancels the rest and its error is returned.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	trees := a.model.Trees
	if len(trees) == 0 {
		a.logger.Warn("No tree definitions found, nothing to build.", "paths", a.config.TreePaths)
		return nil
	}

	tables, err := a.buildAll(ctx, trees)
	if err != nil {
		return err
	}

	results := make([]report.Result, len(trees))
	for i, tree := range trees {
		results[i] = report.NewResult(tree, tables[i])
	}
	if err := report.Render(a.outW, a.config.OutputFormat, results); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if a.config.Compare {
		if err := report.RenderComparisons(a.outW, a.config.OutputFormat, a.compare(trees, tables)); err != nil {
			return fmt.Errorf("failed to render comparisons: %w", err)
		}
	}

	stats := a.store.Stats()
	a.logger.Debug("App.Run method finished.", "cache_hits", stats.Hits, "cache_misses", stats.Misses)
	return nil
}

func (a *App) buildAll(ctx context.Context, trees []*config.Tree) ([]*bipartition.Table, error) {
	tables := make([]*bipartition.Table, len(trees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers())

	for i, tree := range trees {
		i, tree := i, tree
		g.Go(func() error {
			tctx := ctxlog.With(gctx, "tree", tree.Name)
			table, err := a.store.Build(tctx, tree.Edges, tree.Tips, bipartition.Options{
				Ordering: tree.Ordering,
				Workers:  a.workers(),
			})
			if err != nil {
				return fmt.Errorf("tree %q (%s): %w", tree.Name, tree.Source, err)
			}
			tables[i] = table
			ctxlog.FromContext(tctx).Info("Bipartitions built.", "nodes", table.Len(), "tips", table.NTips(), "root", table.Root())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

// compare returns clade distances for every pair of trees over the same
// tips, in input order. Labelled trees are matched by tip name; unlabelled
// trees by tip id.
func (a *App) compare(trees []*config.Tree, tables []*bipartition.Table) []report.Comparison {
	sets := make([]split.Set, len(tables))
	for i, t := range tables {
		if len(trees[i].Labels) > 0 {
			sets[i] = split.FromTableLabels(t, trees[i].Labels)
		} else {
			sets[i] = split.FromTable(t)
		}
	}

	var out []report.Comparison
	for i := 0; i < len(trees); i++ {
		for j := i + 1; j < len(trees); j++ {
			if reason := incomparable(trees[i], trees[j], tables[i], tables[j]); reason != "" {
				a.logger.Warn("Skipping comparison of trees over "+reason+".",
					"a", trees[i].Name, "b", trees[j].Name)
				continue
			}
			out = append(out, report.Comparison{
				A:              trees[i].Name,
				B:              trees[j].Name,
				Shared:         split.Shared(sets[i], sets[j]),
				RobinsonFoulds: split.RobinsonFoulds(sets[i], sets[j]),
			})
		}
	}
	return out
}

// incomparable names why two trees cannot be compared, or returns "".
func incomparable(a, b *config.Tree, ta, tb *bipartition.Table) string {
	la, lb := len(a.Labels) > 0, len(b.Labels) > 0
	switch {
	case ta.NTips() != tb.NTips():
		return "different tip counts"
	case la != lb:
		return "labelled and unlabelled tips"
	case la && !split.SameLabels(a.Labels, b.Labels):
		return "different tip labels"
	}
	return ""
}
