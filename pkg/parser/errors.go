package parser

import (
	"fmt"

	"github.com/leapstack-labs/bython/pkg/token"
)

// SyntaxError reports source text that the grammar rejects, including
// lexical failures such as an unterminated string.
type SyntaxError struct {
	Pos     token.Position
	Message string
	err     error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.where(), e.Message)
}

func (e *SyntaxError) where() string {
	if e.Pos.Line == 0 {
		return "end of input"
	}
	return fmt.Sprintf("line %d, column %d", e.Pos.Line, e.Pos.Column)
}

// Unwrap returns the grammar engine's diagnostic.
func (e *SyntaxError) Unwrap() error { return e.err }

// StructuralError reports a parse tree the AST builder cannot interpret.
// It signals a grammar/builder mismatch rather than bad input.
type StructuralError struct {
	Pos        token.Position
	Production string
	Message    string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error at line %d, column %d in %s: %s",
		e.Pos.Line, e.Pos.Column, e.Production, e.Message)
}

// Common error messages
const (
	ErrNoAlternative   = "no alternative populated"
	ErrInvalidNumber   = "invalid number literal %q"
	ErrUnknownOperator = "unknown operator %q"
	ErrMissingOperand  = "missing operand"
)
