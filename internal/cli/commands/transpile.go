package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bython/internal/cli/output"
	"github.com/leapstack-labs/bython/pkg/transpile"
)

// TranspileOutput is the JSON output for the transpile command.
type TranspileOutput struct {
	File   string `json:"file"`
	Output string `json:"output"`
	Path   string `json:"path,omitempty"`
}

// NewTranspileCommand creates the transpile command.
func NewTranspileCommand() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "transpile <file>",
		Short: "Translate one source file to Python",
		Long: `Translate a single bython file to Python.

The generated code is written to standard output, or to the file named by
--out-file. Use "-" as the file to read from standard input.`,
		Example: `  # Print the Python translation
  bython transpile main.by

  # Write it to a file
  bython transpile main.by --out-file main.py

  # Translate standard input
  echo 'print("hi")' | bython transpile -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranspile(cmd, args[0], outFile)
		},
	}

	cmd.Flags().StringVarP(&outFile, "out-file", "f", "", "Write the generated Python to this file")

	return cmd
}

func runTranspile(cmd *cobra.Command, path, outFile string) error {
	cmdCtx := NewCommandContextWithoutEngine(cmd)
	r := cmdCtx.Renderer

	src, err := readSource(cmd, path)
	if err != nil {
		return err
	}

	name := displayName(path)
	code, err := transpile.File(name, src)
	if err != nil {
		cmdCtx.Logger.Debug("transpile failed", "file", name, "error", err)
		return fmt.Errorf("%s", formatDiagnostic(err))
	}

	if outFile != "" {
		if dir := filepath.Dir(outFile); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := os.WriteFile(outFile, []byte(code), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outFile, err)
		}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(TranspileOutput{File: name, Output: code, Path: outFile})
	case output.ModeMarkdown:
		if outFile != "" {
			r.Println(output.FormatKeyValue("Wrote", outFile))
			return nil
		}
		// Piped output stays raw Python so it can be fed to an interpreter.
		r.Printf("%s", code)
	default:
		if outFile != "" {
			r.Success(fmt.Sprintf("%s -> %s", name, outFile))
			return nil
		}
		r.Printf("%s", code)
	}
	return nil
}
