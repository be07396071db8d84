// Package transpile is the boundary of the core: source text in, Python
// text out. It is safe for concurrent use.
package transpile

import (
	"github.com/leapstack-labs/bython/pkg/codegen"
	"github.com/leapstack-labs/bython/pkg/parser"
)

// Transpile parses src and generates Python. On error no text is returned.
func Transpile(src string) (string, error) {
	return File("", src)
}

// File is Transpile with a filename recorded in error positions.
func File(filename, src string) (string, error) {
	prog, err := parser.ParseFile(filename, src)
	if err != nil {
		return "", err
	}
	return codegen.Generate(prog)
}
