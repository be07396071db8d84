// Package grammar holds the lexical and syntactic rules of the input
// language. It produces a concrete parse tree that pkg/parser lowers into
// pkg/ast; nothing outside pkg/parser should depend on the tree's shape.
package grammar

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// File is a whole source file.
type File struct {
	Pos        lexer.Position
	Statements []*Statement `Sep* ( @@ ( Sep+ @@ )* Sep* )?`
}

// Block is a brace-delimited statement list. Open is always true on a parsed
// block so that an empty block still yields a non-nil value.
type Block struct {
	Pos        lexer.Position
	Open       bool         `Sep* @"{"`
	Statements []*Statement `Sep* ( @@ ( Sep+ @@ )* Sep* )? "}"`
}

// Statement is exactly one of its alternatives.
type Statement struct {
	Pos    lexer.Position
	If     *IfStmt      `  @@`
	For    *ForStmt     `| @@`
	While  *WhileStmt   `| @@`
	Def    *FunctionDef `| @@`
	Class  *ClassDef    `| @@`
	Print  *PrintStmt   `| @@`
	Return *ReturnStmt  `| @@`
	Simple *SimpleStmt  `| @@`
}

type IfStmt struct {
	Pos       lexer.Position
	Condition *Expression `"if" @@`
	Then      *Block      `@@`
	ElseIf    *IfStmt     `( Sep* "else" ( @@`
	Else      *Block      `             | @@ ) )?`
}

type ForStmt struct {
	Pos      lexer.Position
	Target   string      `"for" ( @(Ident | Dunder) "in" )?`
	Iterator *Expression `@@`
	Body     *Block      `@@`
}

type WhileStmt struct {
	Pos       lexer.Position
	Condition *Expression `"while" @@`
	Body      *Block      `@@`
}

type FunctionDef struct {
	Pos    lexer.Position
	Name   string   `"def" @(Ident | Dunder)`
	Params []string `"(" ( @(Ident | Dunder) ( "," @(Ident | Dunder) )* )? ")"`
	Body   *Block   `@@`
}

type ClassDef struct {
	Pos  lexer.Position
	Name string `"class" @(Ident | Dunder)`
	Body *Block `@@`
}

type PrintStmt struct {
	Pos     lexer.Position
	Content *Expression `"print" "(" @@ ")"`
}

type ReturnStmt struct {
	Pos   lexer.Position
	Value *Expression `"return" @@`
}

// SimpleStmt is an assignment or a call used as a statement; both start
// with a possibly dotted name.
type SimpleStmt struct {
	Pos    lexer.Position
	Target []string    `@(Ident | Dunder) ( "." @(Ident | Dunder) )*`
	Value  *Expression `( "=" @@`
	Call   *Arguments  `| @@ )`
}

// Expression is a flat operand/operator sequence. Precedence is resolved by
// pkg/parser, not here.
type Expression struct {
	Pos   lexer.Position
	Left  *Unary     `@@`
	Right []*OpUnary `@@*`
}

type OpUnary struct {
	Pos     lexer.Position
	Op      string `@( Operator | "and" | "or" )`
	Operand *Unary `@@`
}

type Unary struct {
	Pos     lexer.Position
	Ops     []string `@( "-" | "not" )*`
	Operand *Postfix `@@`
}

// Postfix is a primary followed by member reads. Only a call or a
// parenthesised expression can be followed by members here; plain dotted
// names are consumed by Reference.
type Postfix struct {
	Pos     lexer.Position
	Primary *Primary `@@`
	Members []string `( "." @(Ident | Dunder) )*`
}

type Primary struct {
	Pos    lexer.Position
	New    *Instantiation `  @@`
	Number *string        `| @Number`
	String *string        `| @String`
	Paren  *Expression    `| "(" @@ ")"`
	Ref    *Reference     `| @@`
}

type Instantiation struct {
	Pos   lexer.Position
	Class []string   `"new" @(Ident | Dunder) ( "." @(Ident | Dunder) )*`
	Args  *Arguments `@@`
}

// Reference is a dotted name, optionally called.
type Reference struct {
	Pos  lexer.Position
	Name []string   `@(Ident | Dunder) ( "." @(Ident | Dunder) )*`
	Call *Arguments `@@?`
}

// Arguments is a parenthesised argument list. Open is always true on a
// parsed list so that an empty list still yields a non-nil value.
type Arguments struct {
	Pos  lexer.Position
	Open bool          `@"("`
	Args []*Expression `( @@ ( "," @@ )* )? ")"`
}

var parser = participle.MustBuild[File](
	participle.Lexer(Lexer),
	participle.Elide(elided...),
	participle.UseLookahead(4),
)

// Parse parses src into a concrete parse tree. Errors implement
// participle.Error and carry the offending position.
func Parse(filename, src string) (*File, error) {
	return parser.ParseString(filename, src)
}

// String returns the grammar in EBNF form.
func String() string {
	return parser.String()
}
