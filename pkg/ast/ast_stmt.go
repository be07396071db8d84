package ast

// ---------- Statement Types ----------

// Assignment binds a value to a name. Name may be dotted (self.count).
type Assignment struct {
	NodeInfo
	Name  string
	Value Expr
}

func (*Assignment) stmtNode() {}

// Print writes one expression.
type Print struct {
	NodeInfo
	Content Expr
}

func (*Print) stmtNode() {}

// Return leaves the enclosing function with a value.
type Return struct {
	NodeInfo
	Value Expr
}

func (*Return) stmtNode() {}

// If is a conditional. Alternative is nil when no else branch was parsed.
type If struct {
	NodeInfo
	Condition   Expr
	Consequence *Block
	Alternative *Block
}

func (*If) stmtNode() {}

// HasElse reports whether an else branch was parsed.
func (s *If) HasElse() bool { return s.Alternative != nil }

// For is a loop over Iterator. Target is the loop variable of the
// "for x in xs" form and empty for the bare "for xs" form.
type For struct {
	NodeInfo
	Target   string
	Iterator Expr
	Body     *Block
}

func (*For) stmtNode() {}

// While loops while Condition holds.
type While struct {
	NodeInfo
	Condition Expr
	Body      *Block
}

func (*While) stmtNode() {}

// FunctionDef defines a function.
type FunctionDef struct {
	NodeInfo
	Name   string
	Params []string
	Body   *Block
}

func (*FunctionDef) stmtNode() {}

// CallStmt is a function call used as a statement. Name may be
// member-qualified (obj.method).
type CallStmt struct {
	NodeInfo
	Name      string
	Arguments []Expr
}

func (*CallStmt) stmtNode() {}

// ClassDef defines a class.
type ClassDef struct {
	NodeInfo
	Name string
	Body *Block
}

func (*ClassDef) stmtNode() {}
