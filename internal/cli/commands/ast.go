package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/bython/pkg/ast"
	"github.com/leapstack-labs/bython/pkg/parser"
)

// NewASTCommand creates the ast command.
func NewASTCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the syntax tree of a source file",
		Long: `Parse a source file and print its syntax tree. Every node carries a "kind"
field naming its variant.`,
		Example: `  # Dump as JSON
  bython ast main.by

  # Dump as YAML
  bython ast main.by --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAST(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runAST(cmd *cobra.Command, path, format string) error {
	src, err := readSource(cmd, path)
	if err != nil {
		return err
	}
	prog, err := parser.ParseFile(displayName(path), src)
	if err != nil {
		return fmt.Errorf("%s", formatDiagnostic(err))
	}

	tree := ast.Dump(prog)
	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	case "yaml":
		return writeYAML(cmd.OutOrStdout(), tree)
	}
	return fmt.Errorf("unknown format %q (want json or yaml)", format)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
