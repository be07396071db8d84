package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// fileOptions enables the Python constructs the generator emits that plain
// Starlark rejects.
var fileOptions = &syntax.FileOptions{
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// Starlark evaluates generated code in the embedded interpreter. Only the
// Python subset Starlark understands runs; class definitions fail with a
// Starlark syntax error.
type Starlark struct {
	Stdout io.Writer
	logger *slog.Logger
}

// Run executes code, relaying print output to Stdout. Cancelling ctx stops
// the program at its next step.
func (s *Starlark) Run(ctx context.Context, filename, code string) error {
	if filename == "" {
		filename = "<stdin>"
	}
	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			_, _ = fmt.Fprintln(s.Stdout, msg)
		},
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()

	s.logger.Debug("running starlark", "file", filename)

	if _, err := starlark.ExecFileOptions(fileOptions, thread, filename, code, nil); err != nil {
		return fmt.Errorf("starlark: %w", err)
	}
	return nil
}
