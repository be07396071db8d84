package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/bython/internal/cli/output"
	"github.com/leapstack-labs/bython/internal/cli/testutil"
	"github.com/leapstack-labs/bython/pkg/transpile"
)

func TestBraceDepth(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"x = 1", 0},
		{"def f() {", 1},
		{"def f() {\n  if x {", 2},
		{"def f() {\n  if x { }\n}", 0},
		{`print("{")`, 0},
		{`print("\"{")`, 0},
		{"# {\nx = 1", 0},
		{"// {\nwhile x {", 1},
		{"}", -1},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, braceDepth(tt.src))
		})
	}
}

func newTestSession() (*replSession, *bytes.Buffer, *bytes.Buffer) {
	tr := testutil.NewTestRenderer(output.ModeAuto, false)
	return newReplSession(tr.Out, tr.ErrOut, tr.Renderer), tr.Out, tr.ErrOut
}

func TestReplSession_MultilineEntry(t *testing.T) {
	s, out, errOut := newTestSession()

	assert.False(t, s.feed("def add(a, b) {"))
	assert.True(t, s.pending())
	assert.Empty(t, out.String())

	assert.False(t, s.feed("    return a + b"))
	assert.False(t, s.feed("}"))
	assert.False(t, s.pending())
	assert.Equal(t, "def add(a, b):\n    return a + b\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestReplSession_UnevenLines(t *testing.T) {
	s, out, _ := newTestSession()

	s.feed("if a { print(1) } else { x = 12345678 }")
	assert.Equal(t, "if a:\n    print(1)\nelse:\n    x = 12345678\n", out.String())
}

func TestReplSession_Errors(t *testing.T) {
	s, out, errOut := newTestSession()

	s.feed("x = (1 +")
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "<repl>:1:9:")
	assert.False(t, s.pending(), "a failed entry is discarded")

	s.feed("x = 2")
	assert.Equal(t, "x = 2\n", out.String())
}

func TestReplSession_DotCommands(t *testing.T) {
	s, out, errOut := newTestSession()

	assert.False(t, s.feed(".help"))
	assert.Contains(t, out.String(), ".quit / .exit")

	out.Reset()
	assert.False(t, s.feed(".ast"))
	assert.Contains(t, out.String(), "output: ast")
	s.feed("x = 1")
	assert.Contains(t, out.String(), "kind: Assignment")

	assert.False(t, s.feed(".nope"))
	assert.Contains(t, errOut.String(), "Unknown command: .nope")

	assert.False(t, s.feed(""))
	assert.True(t, s.feed(".quit"))
	assert.True(t, s.feed(".EXIT"))
}

func TestReplSession_DotInsideEntry(t *testing.T) {
	s, out, _ := newTestSession()

	s.feed("while x {")
	// A pending entry treats dotted lines as source.
	assert.False(t, s.feed(".quit"))
	assert.True(t, s.pending())
	s.reset()
	assert.False(t, s.pending())
	assert.Empty(t, out.String())
}

func TestFormatDiagnostic(t *testing.T) {
	_, err := transpile.File("main.by", "x = 1\ny = (")
	assert.Regexp(t, `^main\.by:2:\d+: syntax error: `, formatDiagnostic(err))
	assert.Empty(t, formatDiagnostic(nil))
	assert.Equal(t, "<stdin>", displayName("-"))
	assert.Equal(t, "src/main.by", displayName("./src//main.by"))
}
