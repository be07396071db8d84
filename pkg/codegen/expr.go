package codegen

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/bython/pkg/ast"
)

func (p *Printer) formatExpr(e ast.Expr) {
	if isNil(e) {
		p.fail(unsupported(e))
		return
	}
	switch expr := e.(type) {
	case *ast.Identifier:
		p.write(expr.Name)

	case *ast.Number:
		p.write(strconv.FormatFloat(expr.Value, 'f', -1, 64))

	case *ast.String:
		p.write(`"`)
		p.write(escapeString(expr.Value))
		p.write(`"`)

	case *ast.BinaryOp:
		if !expr.Op.Valid() || expr.Op == ast.Not {
			p.fail(unsupported(e))
			return
		}
		p.formatOperand(expr.Left, expr, false)
		p.write(" ")
		p.write(expr.Op.String())
		p.write(" ")
		p.formatOperand(expr.Right, expr, true)

	case *ast.UnaryOp:
		switch expr.Op {
		case ast.Not:
			p.write("not ")
		case ast.Sub:
			p.write("-")
		default:
			p.fail(unsupported(e))
			return
		}
		p.formatWrapped(expr.Operand, !ast.IsPrimary(expr.Operand))

	case *ast.MemberAccess:
		p.formatWrapped(expr.Object, !ast.IsPrimary(expr.Object))
		p.write(".")
		p.write(expr.Member)

	case *ast.FunctionCall:
		p.formatCall(expr.Name, expr.Args)

	case *ast.ClassInstantiation:
		p.formatCall(expr.ClassName, expr.Args)

	default:
		p.fail(unsupported(e))
	}
}

func (p *Printer) formatCall(name string, args []ast.Expr) {
	p.write(name)
	p.write("(")
	p.formatList(len(args), func(i int) { p.formatExpr(args[i]) }, ", ")
	p.write(")")
}

func (p *Printer) formatWrapped(e ast.Expr, wrap bool) {
	if wrap {
		p.write("(")
	}
	p.formatExpr(e)
	if wrap {
		p.write(")")
	}
}

// formatOperand prints one side of parent, parenthesised when re-parsing the
// text could otherwise yield a different tree.
func (p *Printer) formatOperand(e ast.Expr, parent *ast.BinaryOp, right bool) {
	p.formatWrapped(e, needsParens(e, parent, right))
}

func needsParens(e ast.Expr, parent *ast.BinaryOp, right bool) bool {
	if isNil(e) {
		return false
	}
	switch child := e.(type) {
	case *ast.BinaryOp:
		switch {
		case child.Op.Precedence() != parent.Op.Precedence():
			return true
		case right:
			return true
		default:
			// Python chains comparisons: (a < b) == c is not a < b == c.
			return child.Op.IsComparison()
		}
	case *ast.UnaryOp:
		return child.Op == ast.Not && !parent.Op.IsLogical()
	}
	return false
}

// escapeString escapes every double quote not already escaped by a
// backslash, plus raw newlines, so the result is valid inside "...".
// A trailing lone backslash is doubled so it cannot escape the delimiter.
func escapeString(s string) string {
	var b strings.Builder
	backslashes := 0
	for _, r := range s {
		switch r {
		case '\\':
			backslashes++
			b.WriteRune(r)
			continue
		case '"':
			if backslashes%2 == 0 {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
		backslashes = 0
	}
	if backslashes%2 == 1 {
		b.WriteByte('\\')
	}
	return b.String()
}
