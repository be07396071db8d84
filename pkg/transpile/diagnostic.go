package transpile

import (
	"errors"

	"github.com/leapstack-labs/bython/pkg/codegen"
	"github.com/leapstack-labs/bython/pkg/parser"
	"github.com/leapstack-labs/bython/pkg/token"
)

// DiagnosticKind classifies a transpile failure.
type DiagnosticKind string

// Diagnostic kinds.
const (
	KindSyntax      DiagnosticKind = "syntax"
	KindStructural  DiagnosticKind = "structural"
	KindUnsupported DiagnosticKind = "unsupported"
	KindInternal    DiagnosticKind = "internal"
)

// Diagnostic is the user-facing form of a transpile error.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind" yaml:"kind"`
	Message string         `json:"message" yaml:"message"`
	File    string         `json:"file,omitempty" yaml:"file,omitempty"`
	Line    int            `json:"line,omitempty" yaml:"line,omitempty"`
	Column  int            `json:"column,omitempty" yaml:"column,omitempty"`
}

// Diagnose classifies err, looking through wrapping. It returns nil for a
// nil error.
func Diagnose(err error) *Diagnostic {
	if err == nil {
		return nil
	}

	var (
		syn   *parser.SyntaxError
		str   *parser.StructuralError
		unsup *codegen.UnsupportedError
	)
	switch {
	case errors.As(err, &syn):
		return newDiagnostic(KindSyntax, syn.Message, syn.Pos)
	case errors.As(err, &str):
		return newDiagnostic(KindStructural, str.Production+": "+str.Message, str.Pos)
	case errors.As(err, &unsup):
		return newDiagnostic(KindUnsupported, "unsupported node "+unsup.Node, unsup.Pos)
	}
	return &Diagnostic{Kind: KindInternal, Message: err.Error()}
}

func newDiagnostic(kind DiagnosticKind, msg string, pos token.Position) *Diagnostic {
	return &Diagnostic{
		Kind:    kind,
		Message: msg,
		File:    pos.Filename,
		Line:    pos.Line,
		Column:  pos.Column,
	}
}
