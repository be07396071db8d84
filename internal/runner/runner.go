// Package runner executes generated Python, either by piping it into an
// external interpreter or by evaluating it with the embedded Starlark
// interpreter.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/leapstack-labs/bython/internal/config"
)

// Runner executes a program's generated text.
type Runner interface {
	// Run executes code. filename is used in diagnostics only.
	Run(ctx context.Context, filename, code string) error
}

// Options configures a runner.
type Options struct {
	// Interpreter is the external command for the python engine
	Interpreter string
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
}

// New returns the runner for engine.
func New(engine config.Engine, opts Options) (Runner, error) {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	switch engine {
	case config.EnginePython:
		interp := opts.Interpreter
		if interp == "" {
			interp = config.DefaultInterpreter
		}
		return &Python{Interpreter: interp, Stdout: opts.Stdout, Stderr: opts.Stderr, logger: opts.Logger}, nil
	case config.EngineStarlark:
		return &Starlark{Stdout: opts.Stdout, logger: opts.Logger}, nil
	}
	return nil, fmt.Errorf("unknown engine %q", engine)
}

// ExitError reports a program that ran but exited unsuccessfully.
type ExitError struct {
	Code int
	err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("program exited with status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.err
}
