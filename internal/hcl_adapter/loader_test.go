package hcl_adapter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cladegrid/internal/bipartition"
	"github.com/vk/cladegrid/internal/testutil"
)

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := testutil.WriteFiles(t, map[string]string{
		"a.hcl": `
tree "cherry" {
  tips  = 2
  edges = [[3, 1], [3, 2]]
}
`,
		"nested/b.hcl": `
tree "apes" {
  tips     = 3
  edges    = [[5, 4], [5, 3], [4, 1], [4, 2]]
  ordering = "strict"
  labels   = ["Homo", "Pan", "Gorilla"]
}
`,
		"notes.txt": "ignored",
	})

	// --- Act ---
	model, err := NewLoader().Load(context.Background(), dir, filepath.Join(dir, "missing"))

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, model.Trees, 2)

	cherry, ok := model.Tree("cherry")
	require.True(t, ok)
	assert.Equal(t, 2, cherry.Tips)
	assert.Equal(t, []bipartition.Edge{{Parent: 3, Child: 1}, {Parent: 3, Child: 2}}, cherry.Edges)
	assert.Equal(t, bipartition.OrderPostorder, cherry.Ordering)
	assert.Equal(t, filepath.Join(dir, "a.hcl"), cherry.Source)

	apes, ok := model.Tree("apes")
	require.True(t, ok)
	assert.Equal(t, bipartition.OrderStrict, apes.Ordering)
	assert.Equal(t, []string{"Homo", "Pan", "Gorilla"}, apes.Labels)
	assert.Len(t, apes.Edges, 4)
}

func TestLoader_LoadSingleFileOnce(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{
		"a.hcl": `tree "t" {
  tips  = 1
  edges = [[2, 1]]
}`,
	})
	file := filepath.Join(dir, "a.hcl")

	model, err := NewLoader().Load(context.Background(), file, dir)
	require.NoError(t, err)
	assert.Len(t, model.Trees, 1)
}

func TestLoader_DuplicateNames(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{
		"a.hcl": `tree "t" {
  tips  = 1
  edges = [[2, 1]]
}`,
		"b.hcl": `tree "t" {
  tips  = 1
  edges = [[2, 1]]
}`,
	})

	_, err := NewLoader().Load(context.Background(), dir)
	assert.ErrorContains(t, err, `tree "t"`)
	assert.ErrorContains(t, err, "already defined")
}

func TestLoader_Parse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "syntax error",
			src:     `tree "t" {`,
			wantErr: "failed to parse",
		},
		{
			name:    "missing edges",
			src:     `tree "t" { tips = 2 }`,
			wantErr: "failed to decode",
		},
		{
			name: "row is not a pair",
			src: `tree "t" {
  tips  = 2
  edges = [[3, 1], [3, 2, 4]]
}`,
			wantErr: "edge 1 has 3 values",
		},
		{
			name: "fractional id",
			src: `tree "t" {
  tips  = 2
  edges = [[3, 1.5]]
}`,
			wantErr: "whole numbers",
		},
		{
			name: "not a list of pairs",
			src: `tree "t" {
  tips  = 2
  edges = "3,1"
}`,
			wantErr: "list of [parent, child]",
		},
		{
			name: "unknown ordering",
			src: `tree "t" {
  tips     = 2
  edges    = [[3, 1], [3, 2]]
  ordering = "levelorder"
}`,
			wantErr: "unknown ordering",
		},
		{
			name: "label count mismatch",
			src: `tree "t" {
  tips   = 2
  edges  = [[3, 1], [3, 2]]
  labels = ["A"]
}`,
			wantErr: "1 labels given for 2 tips",
		},
		{
			name: "duplicate label",
			src: `tree "t" {
  tips   = 2
  edges  = [[3, 1], [3, 2]]
  labels = ["A", "A"]
}`,
			wantErr: `label "A" names both tip 1 and tip 2`,
		},
		{
			name: "non-positive tips",
			src: `tree "t" {
  tips  = 0
  edges = [[3, 1]]
}`,
			wantErr: "tips must be positive",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().Parse(context.Background(), "main.hcl", []byte(tc.src))
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoader_Parse_UncheckedOrdering(t *testing.T) {
	t.Parallel()

	trees, err := NewLoader().Parse(context.Background(), "main.hcl", []byte(`
tree "raw" {
  tips     = 2
  edges    = [[3, 1], [3, 2]]
  ordering = "unchecked"
}
`))
	require.NoError(t, err)
	require.Len(t, trees, 1)
	assert.Equal(t, bipartition.OrderUnchecked, trees[0].Ordering)
	assert.Equal(t, "main.hcl", trees[0].Source)
}
