package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bython/internal/cli/config"
	"github.com/leapstack-labs/bython/internal/cli/output"
	"github.com/leapstack-labs/bython/internal/engine"
	"github.com/leapstack-labs/bython/pkg/transpile"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with engine and renderer.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cmdCtx := NewCommandContextWithoutEngine(cmd)

	eng, err := createEngine(cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return nil, nil, err
	}
	cmdCtx.Engine = eng

	cleanup := func() {
		_ = eng.Close()
	}
	return cmdCtx, cleanup, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine.
// Useful for commands that work on a single file and need no build cache.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration, or defaults when no
// configuration was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

func createEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	engineCfg := engine.Config{
		SourceExt: cfg.SourceExt,
		TargetExt: cfg.TargetExt,
		OutDir:    cfg.OutDir,
		Jobs:      cfg.Jobs,
		Logger:    logger,
	}
	if cfg.Cache && cfg.StatePath != "" {
		engineCfg.StatePath = cfg.StatePath
	}
	return engine.New(engineCfg)
}

// readSource reads a source file, or standard input when path is "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// displayName is the filename recorded in diagnostics.
func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return filepath.Clean(path)
}

// formatDiagnostic renders err as "file:line:column: kind error: message".
func formatDiagnostic(err error) string {
	d := transpile.Diagnose(err)
	if d == nil {
		return ""
	}
	if d.Kind == transpile.KindInternal {
		return d.Message
	}
	loc := d.File
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
	}
	if loc == "" {
		return fmt.Sprintf("%s error: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s error: %s", loc, d.Kind, d.Message)
}
