package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/bython/pkg/ast"
)

// exprOf parses "x = <src>" and returns the assigned value.
func exprOf(t *testing.T, src string) ast.Expr {
	t.Helper()
	prog, err := Parse("x = " + src)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)
	assign, ok := prog.Statements[0].(*ast.Assignment)
	require.True(t, ok, "expected *ast.Assignment, got %T", prog.Statements[0])
	return assign.Value
}

func num(v float64) map[string]any {
	return map[string]any{"kind": "Number", "value": v}
}

func ident(name string) map[string]any {
	return map[string]any{"kind": "Identifier", "name": name}
}

func bin(op string, l, r any) map[string]any {
	return map[string]any{"kind": "BinaryOp", "operator": op, "left": l, "right": r}
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want any
	}{
		{"multiplication binds tighter", "1 + 2 * 3", bin("+", num(1), bin("*", num(2), num(3)))},
		{"subtraction is left associative", "a - b - c", bin("-", bin("-", ident("a"), ident("b")), ident("c"))},
		{"division is left associative", "a / b / c", bin("/", bin("/", ident("a"), ident("b")), ident("c"))},
		{"mixed additive tier", "a + b - c", bin("-", bin("+", ident("a"), ident("b")), ident("c"))},
		{"comparison lowest arithmetic", "a + 1 == b * 2", bin("==", bin("+", ident("a"), num(1)), bin("*", ident("b"), num(2)))},
		{"comparisons are left associative", "a < b == c", bin("==", bin("<", ident("a"), ident("b")), ident("c"))},
		{"parentheses override", "(1 + 2) * 3", bin("*", bin("+", num(1), num(2)), num(3))},
		{"and above or", "a or b and c", bin("or", ident("a"), bin("and", ident("b"), ident("c")))},
		{"comparison above and", "a == 1 and b", bin("and", bin("==", ident("a"), num(1)), ident("b"))},
		{
			"not binds looser than comparison",
			"not a == b",
			map[string]any{"kind": "UnaryOp", "operator": "not", "operand": bin("==", ident("a"), ident("b"))},
		},
		{
			"not binds tighter than and",
			"not a and b",
			bin("and", map[string]any{"kind": "UnaryOp", "operator": "not", "operand": ident("a")}, ident("b")),
		},
		{
			"negation binds tightest",
			"-a * b",
			bin("*", map[string]any{"kind": "UnaryOp", "operator": "-", "operand": ident("a")}, ident("b")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ast.Dump(exprOf(t, tt.src)))
		})
	}
}

func TestParseOperatorsResolved(t *testing.T) {
	tests := map[string]ast.Operator{
		"a + b": ast.Add, "a - b": ast.Sub, "a * b": ast.Mul, "a / b": ast.Div,
		"a == b": ast.Eq, "a != b": ast.NotEq, "a < b": ast.Lt, "a > b": ast.Gt,
		"a <= b": ast.LtEq, "a >= b": ast.GtEq, "a and b": ast.And, "a or b": ast.Or,
	}
	for src, want := range tests {
		t.Run(src, func(t *testing.T) {
			op, ok := exprOf(t, src).(*ast.BinaryOp)
			require.True(t, ok)
			assert.Equal(t, want, op.Op)
		})
	}
}

func TestParseMemberAccessNests(t *testing.T) {
	want := map[string]any{
		"kind": "MemberAccess",
		"object": map[string]any{
			"kind":   "MemberAccess",
			"object": ident("a"),
			"member": "b",
		},
		"member": "c",
	}
	assert.Equal(t, want, ast.Dump(exprOf(t, "a.b.c")))

	deep, ok := exprOf(t, "a.b.c.d.e").(*ast.MemberAccess)
	require.True(t, ok)
	depth := 0
	var e ast.Expr = deep
	for {
		m, ok := e.(*ast.MemberAccess)
		if !ok {
			break
		}
		depth++
		e = m.Object
	}
	assert.Equal(t, 4, depth)
	assert.Equal(t, &ast.Identifier{NodeInfo: ast.NodeInfo{Position: e.Pos()}, Name: "a"}, e)
}

func TestParseCalls(t *testing.T) {
	call, ok := exprOf(t, "obj.method(1, 2)").(*ast.FunctionCall)
	require.True(t, ok)
	assert.Equal(t, "obj.method", call.Name)
	assert.Equal(t, []any{num(1), num(2)}, ast.Dump(call).(map[string]any)["args"])

	empty, ok := exprOf(t, "f()").(*ast.FunctionCall)
	require.True(t, ok)
	assert.Empty(t, empty.Args)

	member, ok := exprOf(t, "f().x").(*ast.MemberAccess)
	require.True(t, ok)
	assert.Equal(t, "x", member.Member)
	assert.IsType(t, &ast.FunctionCall{}, member.Object)

	inst, ok := exprOf(t, "new Counter(1)").(*ast.ClassInstantiation)
	require.True(t, ok)
	assert.Equal(t, "Counter", inst.ClassName)
	assert.Len(t, inst.Args, 1)
}

func TestParseLiterals(t *testing.T) {
	n, ok := exprOf(t, "3.25").(*ast.Number)
	require.True(t, ok)
	assert.InDelta(t, 3.25, n.Value, 0)

	s, ok := exprOf(t, `"say \"hi\""`).(*ast.String)
	require.True(t, ok)
	assert.Equal(t, `say \"hi\"`, s.Value)
}

func TestParseStatements(t *testing.T) {
	prog, err := Parse(`
def add(a, b) {
    return a + b
}
class Counter {
    def __init__(self) {
        self.count = 0
    }
}
for i in items { print(i) }
for items { }
while n > 0 { n = n - 1 }
obj.method(1, 2)
if a { } else if b { } else { print("c") }
`)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 7)

	def := prog.Statements[0].(*ast.FunctionDef)
	assert.Equal(t, "add", def.Name)
	assert.Equal(t, []string{"a", "b"}, def.Params)
	assert.IsType(t, &ast.Return{}, def.Body.Statements[0])

	class := prog.Statements[1].(*ast.ClassDef)
	assert.Equal(t, "Counter", class.Name)
	ctor := class.Body.Statements[0].(*ast.FunctionDef)
	assert.Equal(t, "__init__", ctor.Name)
	assert.Equal(t, "self.count", ctor.Body.Statements[0].(*ast.Assignment).Name)

	loop := prog.Statements[2].(*ast.For)
	assert.Equal(t, "i", loop.Target)
	assert.IsType(t, &ast.Print{}, loop.Body.Statements[0])

	bare := prog.Statements[3].(*ast.For)
	assert.Empty(t, bare.Target)
	assert.True(t, bare.Body.IsEmpty())

	assert.IsType(t, &ast.While{}, prog.Statements[4])

	call := prog.Statements[5].(*ast.CallStmt)
	assert.Equal(t, "obj.method", call.Name)
	assert.Len(t, call.Arguments, 2)

	cond := prog.Statements[6].(*ast.If)
	require.True(t, cond.HasElse())
	nested := cond.Alternative.Statements[0].(*ast.If)
	require.True(t, nested.HasElse())
	assert.IsType(t, &ast.Print{}, nested.Alternative.Statements[0])
}

func TestParseIfWithoutElse(t *testing.T) {
	prog, err := Parse("if x { y = 1 }\nz = 2")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 2)
	assert.False(t, prog.Statements[0].(*ast.If).HasElse())
}

func TestParseEmptyProgram(t *testing.T) {
	prog, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, prog.Statements)
}

func TestParseSemicolons(t *testing.T) {
	prog, err := Parse("a = 1; b = 2;")
	require.NoError(t, err)
	assert.Len(t, prog.Statements, 2)
}

func TestParsePositions(t *testing.T) {
	prog, err := ParseFile("main.by", "x = 1\ny = 2")
	require.NoError(t, err)
	pos := prog.Statements[1].Pos()
	assert.Equal(t, "main.by", pos.Filename)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 1, pos.Column)
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unmatched brace", "if x {\n  y = 1\n"},
		{"missing operand", "x = 1 +"},
		{"bad character", "x = 1 @ 2"},
		{"unterminated string", `x = "abc`},
		{"stray closing paren", "x = 1)"},
		{"call on expression", "x = (f)(1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := Parse(tt.src)
			require.Error(t, err)
			assert.Nil(t, prog)

			var syn *SyntaxError
			require.ErrorAs(t, err, &syn)
			assert.NotEmpty(t, syn.Message)
			assert.Contains(t, err.Error(), "syntax error")
		})
	}
}

func TestStructuralErrorMessage(t *testing.T) {
	err := &StructuralError{Production: "Statement", Message: ErrNoAlternative}
	assert.Contains(t, err.Error(), "Statement")
	assert.Contains(t, err.Error(), ErrNoAlternative)
}

func TestLowerStatementEmptyAlternative(t *testing.T) {
	_, err := lowerStatements(nil)
	require.NoError(t, err)

	_, err = lowerExpression(nil)
	var se *StructuralError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Expression", se.Production)
}

func TestParseUnclosedParenPosition(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"single line", "x = (1 +", 1},
		{"newline inside parentheses", "x = (1 +\n", 2},
		{"after earlier statements", "y = 2\nx = f(a,", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFile("main.by", tt.src)
			var syn *SyntaxError
			require.ErrorAs(t, err, &syn)
			assert.Equal(t, "main.by", syn.Pos.Filename)
			assert.Equal(t, tt.line, syn.Pos.Line)
		})
	}
}

func TestParseReservedWords(t *testing.T) {
	for _, src := range []string{"new = 1", "in = 1", "x = new"} {
		t.Run(src, func(t *testing.T) {
			_, err := Parse(src)
			var syn *SyntaxError
			require.ErrorAs(t, err, &syn)
		})
	}

	prog, err := Parse("newer = renew")
	require.NoError(t, err)
	assert.Equal(t, "newer", prog.Statements[0].(*ast.Assignment).Name)
}
