package ast

import "github.com/leapstack-labs/bython/pkg/token"

// Node is the base interface for all AST nodes.
type Node interface {
	// Pos returns the position of the first character of the node.
	Pos() token.Position
}

// Stmt is a marker interface for statement nodes.
type Stmt interface {
	Node
	stmtNode() // Marker method to distinguish statements
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode() // Marker method to distinguish expressions
}

// NodeInfo carries the source position shared by every node.
type NodeInfo struct {
	Position token.Position
}

// Pos implements Node.
func (n NodeInfo) Pos() token.Position { return n.Position }

// Program is the root of the tree: the ordered top-level statements of one
// source file.
type Program struct {
	NodeInfo
	Statements []Stmt
}

// Block is the body of a conditional, loop, function or class.
// An empty block is valid.
type Block struct {
	NodeInfo
	Statements []Stmt
}

// IsEmpty reports whether the block has no statements.
func (b *Block) IsEmpty() bool {
	return b == nil || len(b.Statements) == 0
}
