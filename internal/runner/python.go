package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// Python pipes generated code into an external interpreter on stdin.
type Python struct {
	Interpreter string
	Stdout      io.Writer
	Stderr      io.Writer
	logger      *slog.Logger
}

// Run starts the interpreter with "-" and feeds it code. A non-zero exit
// is returned as *ExitError.
func (p *Python) Run(ctx context.Context, filename, code string) error {
	cmd := exec.CommandContext(ctx, p.Interpreter, "-")
	cmd.Stdin = strings.NewReader(code)
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr

	p.logger.Debug("running interpreter", "interpreter", p.Interpreter, "file", filename)

	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.ExitCode(), err: err}
	}
	return fmt.Errorf("failed to run %s: %w", p.Interpreter, err)
}
