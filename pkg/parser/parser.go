// Package parser turns bython source text into an AST.
//
// # Usage
//
//	prog, err := parser.Parse("x = 1 + 2 * 3")
//	if err != nil {
//	    // *SyntaxError or *StructuralError
//	}
//
// # Grammar Overview
//
// Source text is matched against the productions in pkg/grammar and the
// resulting parse tree is lowered into pkg/ast nodes:
//
//	file       → [statement {SEP statement}]
//	statement  → if | for | while | def | class | print | return | simple
//	simple     → name {"." name} ("=" expr | "(" [args] ")")
//	expr       → unary {binop unary}
//	unary      → {"-" | "not"} postfix
//
// Binary operators are resolved by precedence climbing; see expr.go.
package parser

import (
	"errors"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/leapstack-labs/bython/pkg/ast"
	"github.com/leapstack-labs/bython/pkg/grammar"
)

// Parse parses src and returns its AST.
func Parse(src string) (*ast.Program, error) {
	return ParseFile("", src)
}

// ParseFile parses src, recording filename in every node position.
// The first error aborts the parse; no partial tree is returned.
func ParseFile(filename, src string) (*ast.Program, error) {
	file, err := grammar.Parse(filename, src)
	if err != nil {
		return nil, syntaxError(err)
	}

	stmts, err := lowerStatements(file.Statements)
	if err != nil {
		return nil, err
	}
	return &ast.Program{
		NodeInfo:   info(file.Pos),
		Statements: stmts,
	}, nil
}

func syntaxError(err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		return &SyntaxError{
			Pos:     grammar.Position(perr.Position()),
			Message: perr.Message(),
			err:     err,
		}
	}
	return &SyntaxError{Message: err.Error(), err: err}
}

// ---------- Statements ----------

func lowerStatements(in []*grammar.Statement) ([]ast.Stmt, error) {
	out := make([]ast.Stmt, 0, len(in))
	for _, s := range in {
		stmt, err := lowerStatement(s)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

func lowerStatement(s *grammar.Statement) (ast.Stmt, error) {
	switch {
	case s.If != nil:
		return lowerIf(s.If)
	case s.For != nil:
		return lowerFor(s.For)
	case s.While != nil:
		return lowerWhile(s.While)
	case s.Def != nil:
		return lowerFunctionDef(s.Def)
	case s.Class != nil:
		return lowerClassDef(s.Class)
	case s.Print != nil:
		content, err := lowerExpression(s.Print.Content)
		if err != nil {
			return nil, err
		}
		return &ast.Print{NodeInfo: info(s.Print.Pos), Content: content}, nil
	case s.Return != nil:
		value, err := lowerExpression(s.Return.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Return{NodeInfo: info(s.Return.Pos), Value: value}, nil
	case s.Simple != nil:
		return lowerSimple(s.Simple)
	}
	return nil, structural(s.Pos, "Statement", ErrNoAlternative)
}

func lowerIf(s *grammar.IfStmt) (*ast.If, error) {
	cond, err := lowerExpression(s.Condition)
	if err != nil {
		return nil, err
	}
	then, err := lowerBlock(s.Then)
	if err != nil {
		return nil, err
	}
	stmt := &ast.If{NodeInfo: info(s.Pos), Condition: cond, Consequence: then}

	switch {
	case s.ElseIf != nil:
		// else if chains nest as an If inside the alternative block.
		nested, err := lowerIf(s.ElseIf)
		if err != nil {
			return nil, err
		}
		stmt.Alternative = &ast.Block{NodeInfo: nested.NodeInfo, Statements: []ast.Stmt{nested}}
	case s.Else != nil:
		stmt.Alternative, err = lowerBlock(s.Else)
		if err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func lowerFor(s *grammar.ForStmt) (*ast.For, error) {
	iter, err := lowerExpression(s.Iterator)
	if err != nil {
		return nil, err
	}
	body, err := lowerBlock(s.Body)
	if err != nil {
		return nil, err
	}
	return &ast.For{NodeInfo: info(s.Pos), Target: s.Target, Iterator: iter, Body: body}, nil
}

func lowerWhile(s *grammar.WhileStmt) (*ast.While, error) {
	cond, err := lowerExpression(s.Condition)
	if err != nil {
		return nil, err
	}
	body, err := lowerBlock(s.Body)
	if err != nil {
		return nil, err
	}
	return &ast.While{NodeInfo: info(s.Pos), Condition: cond, Body: body}, nil
}

func lowerFunctionDef(s *grammar.FunctionDef) (*ast.FunctionDef, error) {
	body, err := lowerBlock(s.Body)
	if err != nil {
		return nil, err
	}
	params := s.Params
	if params == nil {
		params = []string{}
	}
	return &ast.FunctionDef{NodeInfo: info(s.Pos), Name: s.Name, Params: params, Body: body}, nil
}

func lowerClassDef(s *grammar.ClassDef) (*ast.ClassDef, error) {
	body, err := lowerBlock(s.Body)
	if err != nil {
		return nil, err
	}
	return &ast.ClassDef{NodeInfo: info(s.Pos), Name: s.Name, Body: body}, nil
}

func lowerSimple(s *grammar.SimpleStmt) (ast.Stmt, error) {
	name := strings.Join(s.Target, ".")
	switch {
	case s.Value != nil:
		value, err := lowerExpression(s.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{NodeInfo: info(s.Pos), Name: name, Value: value}, nil
	case s.Call != nil:
		args, err := lowerArguments(s.Call)
		if err != nil {
			return nil, err
		}
		return &ast.CallStmt{NodeInfo: info(s.Pos), Name: name, Arguments: args}, nil
	}
	return nil, structural(s.Pos, "SimpleStmt", ErrNoAlternative)
}

func lowerBlock(b *grammar.Block) (*ast.Block, error) {
	if b == nil {
		return nil, &StructuralError{Production: "Block", Message: ErrNoAlternative}
	}
	stmts, err := lowerStatements(b.Statements)
	if err != nil {
		return nil, err
	}
	return &ast.Block{NodeInfo: info(b.Pos), Statements: stmts}, nil
}
