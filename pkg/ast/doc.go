// Package ast defines the typed syntax tree shared by the parser and the code
// generator.
//
// Statements and expressions are closed variant sets: every variant
// implements the unexported stmtNode or exprNode marker, so no other package
// can add one. Trees are built once by the parser and only read afterwards.
//
// The Golden Rule: pkg/ast imports ONLY pkg/token and stdlib.
package ast
