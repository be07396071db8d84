package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	intconfig "github.com/leapstack-labs/bython/internal/config"
	"github.com/leapstack-labs/bython/internal/runner"
	"github.com/leapstack-labs/bython/pkg/transpile"
)

// ExitCoder is implemented by errors that carry a process exit status.
type ExitCoder interface {
	ExitCode() int
}

// exitError passes a program's exit status through to main.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file> [--engine python|starlark]",
		Short: "Translate a file and execute the result",
		Long: `Translate a source file and execute the generated Python.

Engines:
  python    Pipe the code into the configured interpreter (default python3).
            Output and exit status are relayed.
  starlark  Run the code in the embedded Starlark interpreter. Only the
            Python subset Starlark understands is supported; classes are not.`,
		Example: `  # Run with python3
  bython run main.by

  # Run without an external interpreter
  bython run main.by --engine starlark

  # Use a specific interpreter
  bython run main.by --interpreter python3.12`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args[0])
		},
	}

	cmd.Flags().String("engine", "", "Execution engine: python or starlark")
	_ = cmd.RegisterFlagCompletionFunc("engine", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(intconfig.EnginePython), string(intconfig.EngineStarlark)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runRun(cmd *cobra.Command, path string) error {
	cmdCtx := NewCommandContextWithoutEngine(cmd)
	cfg := cmdCtx.Cfg

	engineName, err := intconfig.ParseEngine(cfg.Engine)
	if err != nil {
		return err
	}

	src, err := readSource(cmd, path)
	if err != nil {
		return err
	}
	name := displayName(path)
	code, err := transpile.File(name, src)
	if err != nil {
		return fmt.Errorf("%s", formatDiagnostic(err))
	}

	run, err := runner.New(engineName, runner.Options{
		Interpreter: cfg.Interpreter,
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return err
	}

	err = run.Run(cmd.Context(), name, code)
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		return &exitError{code: exitErr.Code, err: err}
	}
	return err
}
