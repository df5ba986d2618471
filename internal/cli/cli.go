package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/cladegrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const longHelp = `cladegrid computes, for every node of a rooted tree, the sorted set of tip
labels beneath it.

Trees are read from .hcl files (or directories of them) containing blocks like:

  tree "example" {
    tips  = 3
    edges = [[4, 1], [4, 2], [5, 3], [5, 4]]
  }
`

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		cfg   app.Config
		trees []string
		ran   bool
	)
	cmd := &cobra.Command{
		Use:           "cladegrid [flags] TREE_PATH...",
		Short:         "Extract clades (bipartitions) from rooted trees",
		Long:          longHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ran = true
			cfg.TreePaths = append(trees, args...)
			return nil
		},
	}
	if args == nil {
		// cobra falls back to os.Args on a nil slice.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	flags := cmd.Flags()
	flags.StringSliceVarP(&trees, "tree", "t", nil, "Path to a tree file or directory (repeatable).")
	flags.StringVar(&cfg.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringVarP(&cfg.OutputFormat, "output", "o", "text", "Report format. Options: 'text', 'json' or 'yaml'.")
	flags.IntVar(&cfg.Workers, "workers", 0, "Number of concurrent workers (0 = GOMAXPROCS).")
	flags.IntVar(&cfg.CacheSize, "cache-size", 0, "Number of built tables to memoize (0 = default).")
	flags.BoolVar(&cfg.Compare, "compare", false, "Also report clade distances between trees over the same tips.")

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if !ran {
		// Help was requested and already printed.
		return nil, true, nil
	}
	slog.Debug("Arguments parsed successfully.", "paths", cfg.TreePaths)

	if len(cfg.TreePaths) == 0 {
		slog.Debug("No tree path provided, printing usage and exiting.")
		_ = cmd.Usage()
		return nil, true, nil
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	cfg.OutputFormat = strings.ToLower(cfg.OutputFormat)

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// ExitCode maps an error returned by the application to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
