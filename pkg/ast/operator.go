package ast

import "fmt"

// Operator is the closed set of operators the input language knows.
type Operator int

// Operator constants.
const (
	OpInvalid Operator = iota
	Add
	Sub
	Mul
	Div
	Eq
	NotEq
	Lt
	Gt
	LtEq
	GtEq
	And
	Or
	Not
)

// Precedence levels, lowest to highest. Binary operators on the same level
// associate left to right.
//
//	PrecedenceOr         = 1  (or)
//	PrecedenceAnd        = 2  (and)
//	PrecedenceNot        = 3  (prefix not)
//	PrecedenceComparison = 4  (==, !=, <, >, <=, >=)
//	PrecedenceAddition   = 5  (+, -)
//	PrecedenceMultiply   = 6  (*, /)
//	PrecedenceUnary      = 7  (prefix -)
const (
	PrecedenceNone = iota
	PrecedenceOr
	PrecedenceAnd
	PrecedenceNot
	PrecedenceComparison
	PrecedenceAddition
	PrecedenceMultiply
	PrecedenceUnary
)

type operatorInfo struct {
	text       string
	precedence int
}

// operators is the immutable operator table. The parser resolves operator
// text through it and the code generator spells operators from it.
var operators = map[Operator]operatorInfo{
	Or:    {"or", PrecedenceOr},
	And:   {"and", PrecedenceAnd},
	Not:   {"not", PrecedenceNot},
	Eq:    {"==", PrecedenceComparison},
	NotEq: {"!=", PrecedenceComparison},
	Lt:    {"<", PrecedenceComparison},
	Gt:    {">", PrecedenceComparison},
	LtEq:  {"<=", PrecedenceComparison},
	GtEq:  {">=", PrecedenceComparison},
	Add:   {"+", PrecedenceAddition},
	Sub:   {"-", PrecedenceAddition},
	Mul:   {"*", PrecedenceMultiply},
	Div:   {"/", PrecedenceMultiply},
}

var binaryByText = func() map[string]Operator {
	m := make(map[string]Operator, len(operators))
	for op, info := range operators {
		if op != Not {
			m[info.text] = op
		}
	}
	return m
}()

// LookupBinary resolves infix operator text.
func LookupBinary(text string) (Operator, bool) {
	op, ok := binaryByText[text]
	return op, ok
}

// LookupUnary resolves prefix operator text.
func LookupUnary(text string) (Operator, bool) {
	switch text {
	case "not":
		return Not, true
	case "-":
		return Sub, true
	}
	return OpInvalid, false
}

// String returns the operator's spelling in both the input and target
// languages.
func (op Operator) String() string {
	if info, ok := operators[op]; ok {
		return info.text
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// Valid reports whether op is a member of the operator set.
func (op Operator) Valid() bool {
	_, ok := operators[op]
	return ok
}

// Precedence returns the binding power of op used as an infix operator, or
// of Not as a prefix operator. Unknown operators return PrecedenceNone.
func (op Operator) Precedence() int {
	return operators[op].precedence
}

// UnaryPrecedence returns the binding power of op used as a prefix operator.
func (op Operator) UnaryPrecedence() int {
	if op == Sub {
		return PrecedenceUnary
	}
	return op.Precedence()
}

// IsComparison reports whether op is an equality or relational operator.
func (op Operator) IsComparison() bool {
	return op.Precedence() == PrecedenceComparison
}

// IsLogical reports whether op is and/or.
func (op Operator) IsLogical() bool {
	return op == And || op == Or
}
