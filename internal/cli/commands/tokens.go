package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bython/internal/cli/output"
	"github.com/leapstack-labs/bython/pkg/grammar"
)

// TokenOutput is one token in the JSON output of the tokens command.
type TokenOutput struct {
	Kind   string `json:"kind"`
	Value  string `json:"value"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a source file",
		Long:  `Lex a source file and print every significant token with its position.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args[0])
		},
	}
}

func runTokens(cmd *cobra.Command, path string) error {
	r := NewCommandContextWithoutEngine(cmd).Renderer

	src, err := readSource(cmd, path)
	if err != nil {
		return err
	}
	toks, err := grammar.Tokens(displayName(path), src)
	if err != nil {
		return fmt.Errorf("failed to lex %s: %w", displayName(path), err)
	}

	if r.EffectiveMode() == output.ModeJSON {
		out := make([]TokenOutput, 0, len(toks))
		for _, t := range toks {
			out = append(out, TokenOutput{Kind: t.Kind.String(), Value: t.Value, Line: t.Pos.Line, Column: t.Pos.Column})
		}
		return r.JSON(out)
	}

	rows := make([][]string, 0, len(toks))
	for _, t := range toks {
		rows = append(rows, []string{
			fmt.Sprintf("%d:%d", t.Pos.Line, t.Pos.Column),
			t.Kind.String(),
			strconv.Quote(t.Value),
		})
	}
	r.Table([]string{"Pos", "Kind", "Value"}, rows)
	return nil
}
