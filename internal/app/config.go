package app

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vk/cladegrid/internal/report"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	TreePaths []string // .hcl files or directories

	LogFormat    string
	LogLevel     string
	OutputFormat string
	// Workers bounds both concurrent tree builds and the per-tree sort.
	// Zero means GOMAXPROCS.
	Workers   int
	CacheSize int
	// Compare adds pairwise clade distances between trees over the same tips.
	Compare bool
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.TreePaths) == 0 {
		return nil, errors.New("at least one tree path is required")
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "text"
	}
	if !slices.Contains(report.Formats, cfg.OutputFormat) {
		return nil, fmt.Errorf("invalid output format %q: must be one of %v", cfg.OutputFormat, report.Formats)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.CacheSize < 0 {
		return nil, fmt.Errorf("cache size must not be negative, got %d", cfg.CacheSize)
	}
	return &cfg, nil
}
