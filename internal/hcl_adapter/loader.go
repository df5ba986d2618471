package hcl_adapter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/cladegrid/internal/config"
	"github.com/vk/cladegrid/internal/ctxlog"
	"github.com/vk/cladegrid/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load discovers every .hcl file under the given paths, decodes their tree
// blocks and merges them into one model. Tree names must be unique across
// all files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	model := &config.Model{}
	seen := make(map[string]string)
	parser := hclparse.NewParser()

	for _, file := range hclFiles {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read HCL file %s: %w", file, err)
		}
		trees, err := l.parse(ctx, parser, file, src)
		if err != nil {
			return nil, err
		}
		for _, tree := range trees {
			if prev, dup := seen[tree.Name]; dup {
				return nil, fmt.Errorf("tree %q in %s is already defined in %s", tree.Name, file, prev)
			}
			seen[tree.Name] = file
			model.Trees = append(model.Trees, tree)
		}
	}

	logger.Debug("HCL loading complete.", "trees", len(model.Trees))
	return model, nil
}

// Parse decodes the tree blocks of a single HCL source.
func (l *Loader) Parse(ctx context.Context, filename string, src []byte) ([]*config.Tree, error) {
	return l.parse(ctx, hclparse.NewParser(), filename, src)
}

func (l *Loader) parse(ctx context.Context, parser *hclparse.Parser, filename string, src []byte) ([]*config.Tree, error) {
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	trees := make([]*config.Tree, 0, len(root.Trees))
	for _, t := range root.Trees {
		tree, err := l.translateTree(ctx, t, filename)
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

// findAllHCLFiles expands files and directories into the list of .hcl files
// to read. Directories are walked in lexical order, hidden ones skipped; a path is listed once even
// when reachable from several arguments.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if filepath.Ext(p) != ".hcl" {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue // A configured path that doesn't exist is skipped.
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", path, err)
		}
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}
