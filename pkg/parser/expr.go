package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/leapstack-labs/bython/pkg/ast"
	"github.com/leapstack-labs/bython/pkg/grammar"
)

// Expression parsing by precedence climbing.
//
// The grammar yields an expression as a flat sequence of prefix operators,
// operands and infix operators. The sequence is laid out as a stream of
// items and climbed with the precedence table in pkg/ast:
//
//	PrecedenceOr         = 1  (or)
//	PrecedenceAnd        = 2  (and)
//	PrecedenceNot        = 3  (prefix not)
//	PrecedenceComparison = 4  (==, !=, <, >, <=, >=)
//	PrecedenceAddition   = 5  (+, -)
//	PrecedenceMultiply   = 6  (*, /)
//	PrecedenceUnary      = 7  (prefix -)
//
// Every binary tier is left-associative.

type itemKind int

const (
	itemPrefix itemKind = iota
	itemInfix
	itemOperand
)

type item struct {
	kind    itemKind
	text    string
	pos     lexer.Position
	operand *grammar.Postfix
}

type climber struct {
	items []item
	pos   int
}

func lowerExpression(e *grammar.Expression) (ast.Expr, error) {
	if e == nil || e.Left == nil {
		return nil, &StructuralError{Production: "Expression", Message: ErrMissingOperand}
	}

	c := &climber{}
	c.addUnary(e.Left)
	for _, r := range e.Right {
		c.items = append(c.items, item{kind: itemInfix, text: r.Op, pos: r.Pos})
		c.addUnary(r.Operand)
	}

	expr, err := c.parseExpression(ast.PrecedenceOr)
	if err != nil {
		return nil, err
	}
	if c.pos != len(c.items) {
		it := c.items[c.pos]
		return nil, structural(it.pos, "Expression", fmt.Sprintf("unconsumed %q", it.text))
	}
	return expr, nil
}

func (c *climber) addUnary(u *grammar.Unary) {
	if u == nil {
		return
	}
	for _, op := range u.Ops {
		c.items = append(c.items, item{kind: itemPrefix, text: op, pos: u.Pos})
	}
	c.items = append(c.items, item{kind: itemOperand, pos: u.Pos, operand: u.Operand})
}

// parseExpression parses operators whose precedence is at least minPrecedence.
func (c *climber) parseExpression(minPrecedence int) (ast.Expr, error) {
	left, err := c.parsePrefix()
	if err != nil {
		return nil, err
	}

	for c.pos < len(c.items) {
		it := c.items[c.pos]
		op, ok := ast.LookupBinary(it.text)
		if it.kind != itemInfix || !ok {
			return nil, structural(it.pos, "Expression", fmt.Sprintf(ErrUnknownOperator, it.text))
		}
		prec := op.Precedence()
		if prec < minPrecedence {
			break
		}
		c.pos++

		// Left-associative: the right side only takes tighter operators.
		right, err := c.parseExpression(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{NodeInfo: ast.NodeInfo{Position: left.Pos()}, Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (c *climber) parsePrefix() (ast.Expr, error) {
	if c.pos >= len(c.items) {
		return nil, &StructuralError{Production: "Expression", Message: ErrMissingOperand}
	}
	it := c.items[c.pos]
	c.pos++

	switch it.kind {
	case itemPrefix:
		op, ok := ast.LookupUnary(it.text)
		if !ok {
			return nil, structural(it.pos, "Unary", fmt.Sprintf(ErrUnknownOperator, it.text))
		}
		operand, err := c.parseExpression(op.UnaryPrecedence())
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{NodeInfo: info(it.pos), Op: op, Operand: operand}, nil
	case itemOperand:
		return lowerPostfix(it.operand)
	}
	return nil, structural(it.pos, "Expression", fmt.Sprintf(ErrUnknownOperator, it.text))
}

// ---------- Primaries ----------

func lowerPostfix(p *grammar.Postfix) (ast.Expr, error) {
	if p == nil {
		return nil, &StructuralError{Production: "Postfix", Message: ErrMissingOperand}
	}
	expr, err := lowerPrimary(p.Primary)
	if err != nil {
		return nil, err
	}
	for _, member := range p.Members {
		expr = &ast.MemberAccess{NodeInfo: ast.NodeInfo{Position: expr.Pos()}, Object: expr, Member: member}
	}
	return expr, nil
}

func lowerPrimary(p *grammar.Primary) (ast.Expr, error) {
	if p == nil {
		return nil, &StructuralError{Production: "Primary", Message: ErrMissingOperand}
	}
	switch {
	case p.New != nil:
		args, err := lowerArguments(p.New.Args)
		if err != nil {
			return nil, err
		}
		return &ast.ClassInstantiation{
			NodeInfo:  info(p.New.Pos),
			ClassName: strings.Join(p.New.Class, "."),
			Args:      args,
		}, nil

	case p.Number != nil:
		v, err := strconv.ParseFloat(*p.Number, 64)
		if err != nil {
			return nil, structural(p.Pos, "Number", fmt.Sprintf(ErrInvalidNumber, *p.Number))
		}
		return &ast.Number{NodeInfo: info(p.Pos), Value: v}, nil

	case p.String != nil:
		raw := *p.String
		if len(raw) < 2 {
			return nil, structural(p.Pos, "String", "unterminated string literal")
		}
		return &ast.String{NodeInfo: info(p.Pos), Value: raw[1 : len(raw)-1]}, nil

	case p.Paren != nil:
		return lowerExpression(p.Paren)

	case p.Ref != nil:
		return lowerReference(p.Ref)
	}
	return nil, structural(p.Pos, "Primary", ErrNoAlternative)
}

// lowerReference turns a dotted name into a call on the qualified name, or
// into an identifier wrapped in one MemberAccess per trailing member.
func lowerReference(r *grammar.Reference) (ast.Expr, error) {
	if len(r.Name) == 0 {
		return nil, structural(r.Pos, "Reference", ErrMissingOperand)
	}
	if r.Call != nil {
		args, err := lowerArguments(r.Call)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionCall{NodeInfo: info(r.Pos), Name: strings.Join(r.Name, "."), Args: args}, nil
	}

	var expr ast.Expr = &ast.Identifier{NodeInfo: info(r.Pos), Name: r.Name[0]}
	for _, member := range r.Name[1:] {
		expr = &ast.MemberAccess{NodeInfo: info(r.Pos), Object: expr, Member: member}
	}
	return expr, nil
}

func lowerArguments(a *grammar.Arguments) ([]ast.Expr, error) {
	if a == nil {
		return nil, &StructuralError{Production: "Arguments", Message: ErrNoAlternative}
	}
	args := make([]ast.Expr, 0, len(a.Args))
	for _, e := range a.Args {
		arg, err := lowerExpression(e)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// ---------- Helpers ----------

func info(p lexer.Position) ast.NodeInfo {
	return ast.NodeInfo{Position: grammar.Position(p)}
}

func structural(p lexer.Position, production, msg string) *StructuralError {
	return &StructuralError{Pos: grammar.Position(p), Production: production, Message: msg}
}
