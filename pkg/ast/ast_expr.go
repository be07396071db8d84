package ast

// ---------- Expression Types ----------

// Identifier references a name.
type Identifier struct {
	NodeInfo
	Name string
}

func (*Identifier) exprNode() {}

// Number is a numeric literal.
type Number struct {
	NodeInfo
	Value float64
}

func (*Number) exprNode() {}

// String is a string literal. Value holds the raw contents between the
// delimiters; escape sequences are not processed.
type String struct {
	NodeInfo
	Value string
}

func (*String) exprNode() {}

// BinaryOp applies an infix operator.
type BinaryOp struct {
	NodeInfo
	Left  Expr
	Op    Operator
	Right Expr
}

func (*BinaryOp) exprNode() {}

// UnaryOp applies a prefix operator (Not or Sub).
type UnaryOp struct {
	NodeInfo
	Op      Operator
	Operand Expr
}

func (*UnaryOp) exprNode() {}

// MemberAccess reads Member from Object. Object may itself be a
// MemberAccess, so chains nest to any depth.
type MemberAccess struct {
	NodeInfo
	Object Expr
	Member string
}

func (*MemberAccess) exprNode() {}

// FunctionCall calls a function by name. Name may be member-qualified.
type FunctionCall struct {
	NodeInfo
	Name string
	Args []Expr
}

func (*FunctionCall) exprNode() {}

// ClassInstantiation constructs an instance of ClassName.
type ClassInstantiation struct {
	NodeInfo
	ClassName string
	Args      []Expr
}

func (*ClassInstantiation) exprNode() {}

// IsPrimary reports whether e renders as a single atom that never needs
// parentheses as an operand.
func IsPrimary(e Expr) bool {
	switch e.(type) {
	case *Identifier, *Number, *String, *MemberAccess, *FunctionCall, *ClassInstantiation:
		return true
	default:
		return false
	}
}
