package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"

	"github.com/leapstack-labs/bython/internal/config"
	"github.com/leapstack-labs/bython/internal/testutil"
	"github.com/leapstack-labs/bython/pkg/transpile"
)

func requireCommand(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}

func TestNew(t *testing.T) {
	r, err := New(config.EnginePython, Options{})
	require.NoError(t, err)
	assert.Equal(t, "python3", r.(*Python).Interpreter)

	r, err = New(config.EngineStarlark, Options{})
	require.NoError(t, err)
	assert.IsType(t, &Starlark{}, r)

	_, err = New(config.Engine("lua"), Options{})
	require.Error(t, err)
}

func TestPython_RelaysStdin(t *testing.T) {
	requireCommand(t, "cat")

	var stdout bytes.Buffer
	r, err := New(config.EnginePython, Options{Interpreter: "cat", Stdout: &stdout, Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)

	require.NoError(t, r.Run(context.Background(), "main.by", "print(1)\n"))
	assert.Equal(t, "print(1)\n", stdout.String())
}

func TestPython_ExitStatus(t *testing.T) {
	requireCommand(t, "false")

	r, err := New(config.EnginePython, Options{Interpreter: "false"})
	require.NoError(t, err)

	err = r.Run(context.Background(), "main.by", "")
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, err.Error(), "status 1")
}

func TestPython_MissingInterpreter(t *testing.T) {
	r, err := New(config.EnginePython, Options{Interpreter: "bython-no-such-interpreter"})
	require.NoError(t, err)

	err = r.Run(context.Background(), "main.by", "")
	require.Error(t, err)
	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
	assert.Contains(t, err.Error(), "failed to run")
}

func TestPython_Program(t *testing.T) {
	requireCommand(t, "python3")

	code, err := transpile.Transpile(`
class Counter {
    def __init__(self) { self.count = 0 }
    def inc(self) {
        self.count = self.count + 1
        return self.count
    }
}
c = new Counter()
c.inc()
print(c.inc())
`)
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	r, err := New(config.EnginePython, Options{Stdout: &stdout, Stderr: &stderr})
	require.NoError(t, err)
	require.NoError(t, r.Run(context.Background(), "counter.by", code), stderr.String())
	assert.Equal(t, "2\n", stdout.String())
}

func TestStarlark_Run(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "top level loop",
			source: "n = 3\nwhile n > 0 {\n    print(n)\n    n = n - 1\n}",
			want:   "3\n2\n1\n",
		},
		{
			name:   "recursion",
			source: "def fact(n) {\n    if n <= 1 { return 1 }\n    return n * fact(n - 1)\n}\nprint(fact(5))",
			want:   "120\n",
		},
		{
			name:   "for in",
			source: "for i in range(2) { print(i) }",
			want:   "0\n1\n",
		},
		{
			name:   "else if",
			source: "x = 5\nif x < 0 { print(\"neg\") } else if x == 0 { print(\"zero\") } else { print(\"pos\") }",
			want:   "pos\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := transpile.Transpile(tt.source)
			require.NoError(t, err)

			var stdout bytes.Buffer
			r, err := New(config.EngineStarlark, Options{Stdout: &stdout})
			require.NoError(t, err)
			require.NoError(t, r.Run(context.Background(), "main.by", code))
			assert.Equal(t, tt.want, stdout.String())
		})
	}
}

func TestStarlark_ClassesFail(t *testing.T) {
	code, err := transpile.Transpile("class A { }")
	require.NoError(t, err)

	r, err := New(config.EngineStarlark, Options{})
	require.NoError(t, err)
	err = r.Run(context.Background(), "a.by", code)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "starlark")
}

func TestStarlark_Cancelled(t *testing.T) {
	code, err := transpile.Transpile("while 1 { x = 1 }")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	r, err := New(config.EngineStarlark, Options{})
	require.NoError(t, err)
	err = r.Run(ctx, "loop.by", code)
	require.Error(t, err)

	var evalErr *starlark.EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Contains(t, err.Error(), "context deadline exceeded")
}
