package codegen

import (
	"github.com/leapstack-labs/bython/pkg/ast"
)

func (p *Printer) formatStatements(stmts []ast.Stmt) {
	for _, s := range stmts {
		p.formatStatement(s)
		if p.err != nil {
			return
		}
	}
}

func (p *Printer) formatStatement(s ast.Stmt) {
	if isNil(s) {
		p.fail(unsupported(s))
		return
	}
	switch stmt := s.(type) {
	case *ast.Assignment:
		p.write(stmt.Name)
		p.write(" = ")
		p.formatExpr(stmt.Value)
		p.writeln()

	case *ast.Print:
		p.write("print(")
		p.formatExpr(stmt.Content)
		p.write(")")
		p.writeln()

	case *ast.Return:
		p.write("return ")
		p.formatExpr(stmt.Value)
		p.writeln()

	case *ast.If:
		p.write("if ")
		p.formatIf(stmt)

	case *ast.For:
		p.write("for ")
		if stmt.Target != "" {
			p.write(stmt.Target)
			p.write(" in ")
		}
		p.formatExpr(stmt.Iterator)
		p.write(":")
		p.writeln()
		p.formatBlock(stmt.Body)

	case *ast.While:
		p.write("while ")
		p.formatExpr(stmt.Condition)
		p.write(":")
		p.writeln()
		p.formatBlock(stmt.Body)

	case *ast.FunctionDef:
		p.write("def ")
		p.write(stmt.Name)
		p.write("(")
		p.formatList(len(stmt.Params), func(i int) { p.write(stmt.Params[i]) }, ", ")
		p.write("):")
		p.writeln()
		p.formatBlock(stmt.Body)

	case *ast.CallStmt:
		p.formatCall(stmt.Name, stmt.Arguments)
		p.writeln()

	case *ast.ClassDef:
		p.write("class ")
		p.write(stmt.Name)
		p.write(":")
		p.writeln()
		p.formatBlock(stmt.Body)

	default:
		p.fail(unsupported(s))
	}
}

// formatIf prints the condition and branches of an if statement whose
// keyword has already been written. An alternative holding a single If is
// printed as an elif chain.
func (p *Printer) formatIf(stmt *ast.If) {
	p.formatExpr(stmt.Condition)
	p.write(":")
	p.writeln()
	p.formatBlock(stmt.Consequence)

	if !stmt.HasElse() {
		return
	}
	if len(stmt.Alternative.Statements) == 1 {
		if nested, ok := stmt.Alternative.Statements[0].(*ast.If); ok && nested != nil {
			p.write("elif ")
			p.formatIf(nested)
			return
		}
	}
	p.write("else:")
	p.writeln()
	p.formatBlock(stmt.Alternative)
}

// formatBlock prints a block one level deeper. Empty blocks print pass.
func (p *Printer) formatBlock(b *ast.Block) {
	p.indent()
	defer p.dedent()

	if b.IsEmpty() {
		p.write("pass")
		p.writeln()
		return
	}
	p.formatStatements(b.Statements)
}
