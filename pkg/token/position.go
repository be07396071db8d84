package token

import "fmt"

// Position represents a location in the source code.
type Position struct {
	Filename string
	Line     int // 1-based line number
	Column   int // 1-based column number
	Offset   int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// String formats the position as file:line:column, omitting what is unknown.
func (p Position) String() string {
	switch {
	case !p.IsValid():
		return p.Filename
	case p.Filename == "":
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	default:
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
}
