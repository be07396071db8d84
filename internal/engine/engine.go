// Package engine provides file-level orchestration of the transpiler.
// It discovers source files, transpiles them concurrently, skips unchanged
// files through the state cache and rebuilds on change in watch mode.
package engine

import (
	"fmt"
	"log/slog"
	"os"

	intconfig "github.com/leapstack-labs/bython/internal/config"
	"github.com/leapstack-labs/bython/internal/state"
	"github.com/leapstack-labs/bython/pkg/transpile"
)

// Engine transpiles source trees.
type Engine struct {
	logger *slog.Logger
	store  state.Store

	sourceExt string
	targetExt string
	outDir    string
	jobs      int
}

// Config holds engine configuration.
type Config struct {
	// SourceExt is the extension of input files (default .by)
	SourceExt string
	// TargetExt is the extension of generated files (default .py)
	TargetExt string
	// OutDir receives generated files; empty writes next to each source
	OutDir string
	// Jobs bounds the number of files transpiled at once
	Jobs int
	// StatePath is the path to the SQLite build cache; empty disables caching
	StatePath string
	// Store overrides StatePath with an already opened cache
	Store state.Store
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine, opening and migrating the build cache if one is
// configured.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	project := intconfig.ProjectConfig{
		OutDir:    cfg.OutDir,
		SourceExt: cfg.SourceExt,
		TargetExt: cfg.TargetExt,
		Jobs:      cfg.Jobs,
	}
	intconfig.ApplyDefaults(&project)
	if err := project.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine configuration: %w", err)
	}

	e := &Engine{
		logger:    logger,
		store:     cfg.Store,
		sourceExt: project.SourceExt,
		targetExt: project.TargetExt,
		outDir:    project.OutDir,
		jobs:      project.Jobs,
	}

	if e.store == nil && cfg.StatePath != "" {
		store := state.NewSQLiteStore(logger)
		if err := store.Open(cfg.StatePath); err != nil {
			return nil, fmt.Errorf("failed to open state store: %w", err)
		}
		if err := store.Migrate(); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to initialize state schema: %w", err)
		}
		e.store = store
	}

	logger.Debug("initializing engine",
		"source_ext", e.sourceExt, "target_ext", e.targetExt,
		"out_dir", e.outDir, "jobs", e.jobs, "cache", e.store != nil)
	return e, nil
}

// Close releases the build cache.
func (e *Engine) Close() error {
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}

// Store returns the build cache, or nil when caching is disabled.
func (e *Engine) Store() state.Store {
	return e.store
}

// TranspileFile reads path and returns its Python translation.
func (e *Engine) TranspileFile(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	out, err := transpile.File(path, string(src))
	if err != nil {
		return "", fmt.Errorf("failed to transpile %s: %w", path, err)
	}
	return out, nil
}
