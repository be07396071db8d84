package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bython/internal/cli/output"
	"github.com/leapstack-labs/bython/pkg/transpile"
)

// CheckOutput is the JSON output for the check command.
type CheckOutput struct {
	Files       int                     `json:"files"`
	Diagnostics []*transpile.Diagnostic `json:"diagnostics"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report errors in source files without writing output",
		Long: `Translate every source file under the given paths in memory and report
syntax errors. Nothing is written. The command fails if any file has an
error.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Check the current directory
  bython check

  # Check for CI, as JSON
  bython check src -o json`,
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, paths []string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	eng := cmdCtx.Engine
	r := cmdCtx.Renderer

	sources, err := eng.Discover(paths)
	if err != nil {
		return err
	}

	result := CheckOutput{Files: len(sources), Diagnostics: []*transpile.Diagnostic{}}
	for _, src := range sources {
		if _, err := eng.TranspileFile(src.Path); err != nil {
			result.Diagnostics = append(result.Diagnostics, transpile.Diagnose(err))
		}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(result); err != nil {
			return err
		}
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("Check (%d files)", result.Files)))
		r.Println()
		for _, d := range result.Diagnostics {
			r.Println(output.FormatKeyValue(fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column), string(d.Kind)+": "+d.Message))
		}
	default:
		for _, d := range result.Diagnostics {
			r.Println(fmt.Sprintf("%s %s",
				r.Styles().Error.Render(fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)),
				string(d.Kind)+" error: "+d.Message))
		}
	}

	if n := len(result.Diagnostics); n > 0 {
		return fmt.Errorf("%d of %d files have errors", n, result.Files)
	}
	if r.EffectiveMode() == output.ModeText {
		r.Success(fmt.Sprintf("%d files ok", result.Files))
	}
	return nil
}
