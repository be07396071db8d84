package codegen

import (
	"fmt"
	"reflect"

	"github.com/leapstack-labs/bython/pkg/ast"
)

// Generate renders prog as Python source. Each block level is indented by
// four spaces and every emitted line ends in a newline; an empty program
// renders as the empty string. Generate either returns the whole text or an
// error, never partial output.
func Generate(prog *ast.Program) (string, error) {
	if prog == nil {
		return "", nil
	}
	p := newPrinter()
	p.formatStatements(prog.Statements)
	if p.err != nil {
		return "", p.err
	}
	return p.String(), nil
}

func unsupported(n ast.Node) *UnsupportedError {
	if isNil(n) {
		return &UnsupportedError{Node: fmt.Sprintf("%T", n)}
	}
	return &UnsupportedError{Pos: n.Pos(), Node: fmt.Sprintf("%T", n)}
}

// isNil reports whether n is nil or a nil pointer held in the interface.
func isNil(n ast.Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
