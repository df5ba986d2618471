package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/vk/cladegrid/internal/config"
	"github.com/vk/cladegrid/internal/ctxlog"
	"github.com/vk/cladegrid/internal/resultstore"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	model  *config.Model
	store  *resultstore.Store
}

// NewApp loads every tree definition from the configured paths. Reports go
// to outW and logs to logW, so the two can be separated by the caller.
func NewApp(ctx context.Context, outW, logW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, cfg.TreePaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load tree definitions: %w", err)
	}
	logger.Debug("Tree definitions loaded.", "trees", len(model.Trees))

	store, err := resultstore.New(cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		model:  model,
		store:  store,
	}, nil
}

// Model returns the loaded tree definitions. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}

func (a *App) workers() int {
	if a.config.Workers > 0 {
		return a.config.Workers
	}
	return runtime.GOMAXPROCS(0)
}
