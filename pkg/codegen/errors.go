package codegen

import (
	"fmt"

	"github.com/leapstack-labs/bython/pkg/token"
)

// UnsupportedError reports a node the generator has no rendering for.
// Generation stops and no text is returned.
type UnsupportedError struct {
	Pos  token.Position
	Node string
}

func (e *UnsupportedError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("unsupported node %s at %s", e.Node, e.Pos)
	}
	return fmt.Sprintf("unsupported node %s", e.Node)
}
