package engine

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/bython/internal/state"
	"github.com/leapstack-labs/bython/internal/testutil"
	"github.com/leapstack-labs/bython/pkg/parser"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = testutil.NewTestLogger(t)
	}
	eng, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })
	return eng
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(Config{SourceExt: ".py", TargetExt: ".py"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid engine configuration")
}

func TestNew_OpensStateStore(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "cache", "state.db")
	eng := newTestEngine(t, Config{StatePath: statePath})
	require.NotNil(t, eng.Store())
	assert.FileExists(t, statePath)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.by"), "x = 1")
	writeFile(t, filepath.Join(dir, "pkg", "util.by"), "y = 2")
	writeFile(t, filepath.Join(dir, "pkg", "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, ".hidden", "skip.by"), "z = 3")

	eng := newTestEngine(t, Config{})

	sources, err := eng.Discover([]string{dir, filepath.Join(dir, "main.by")})
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, filepath.Join(dir, "main.by"), sources[0].Path)
	assert.Equal(t, filepath.Join(dir, "pkg", "util.by"), sources[1].Path)
	assert.Equal(t, dir, sources[1].Root)

	_, err = eng.Discover([]string{filepath.Join(dir, "missing")})
	require.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	src := Source{Path: filepath.Join("proj", "pkg", "util.by"), Root: "proj"}

	tests := []struct {
		name   string
		outDir string
		want   string
	}{
		{"alongside source", "", filepath.Join("proj", "pkg", "util.py")},
		{"into out dir", "build", filepath.Join("build", "pkg", "util.py")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := newTestEngine(t, Config{OutDir: tt.outDir})
			assert.Equal(t, tt.want, eng.OutputPath(src))
		})
	}
}

func TestBuild_WritesOutputs(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	writeFile(t, filepath.Join(dir, "src", "main.by"), "def add(a, b) {\n    return a + b\n}\nprint(add(1, 2))")
	writeFile(t, filepath.Join(dir, "src", "lib", "util.by"), "x = 1")

	eng := newTestEngine(t, Config{OutDir: out, Jobs: 2})
	res, err := eng.Build(context.Background(), []string{filepath.Join(dir, "src")}, BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Built)
	assert.Zero(t, res.Failed)
	assert.False(t, res.HasErrors())
	assert.Empty(t, res.RunID)
	assert.Equal(t, "def add(a, b):\n    return a + b\nprint(add(1, 2))\n", readFile(t, filepath.Join(out, "main.py")))
	assert.Equal(t, "x = 1\n", readFile(t, filepath.Join(out, "lib", "util.py")))
}

func TestBuild_CollectsFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "good.by"), "x = 1")
	writeFile(t, filepath.Join(dir, "bad.by"), "x = 1 +")

	logger, logs := testutil.NewCaptureLogger()
	eng := newTestEngine(t, Config{Logger: logger})
	res, err := eng.Build(context.Background(), []string{dir}, BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Built)
	assert.Equal(t, 1, res.Failed)
	assert.Contains(t, logs.String(), "transpile failed")
	assert.True(t, res.HasErrors())
	assert.NoFileExists(t, filepath.Join(dir, "bad.py"))
	assert.FileExists(t, filepath.Join(dir, "good.py"))

	var syn *parser.SyntaxError
	require.ErrorAs(t, res.Errors(), &syn)
	assert.Equal(t, filepath.Join(dir, "bad.by"), syn.Pos.Filename)
}

func TestBuild_SkipsUnchangedFiles(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "main.by")
	writeFile(t, srcPath, "x = 1")

	eng := newTestEngine(t, Config{StatePath: filepath.Join(dir, ".bython", "state.db")})
	ctx := context.Background()

	first, err := eng.Build(ctx, []string{dir}, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Built)
	assert.NotEmpty(t, first.RunID)

	second, err := eng.Build(ctx, []string{dir}, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Built)
	assert.Equal(t, 1, second.Skipped)
	assert.Equal(t, FileSkipped, second.Files[0].Status)

	t.Run("forced", func(t *testing.T) {
		res, err := eng.Build(ctx, []string{dir}, BuildOptions{Force: true})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Built)
	})

	t.Run("changed source", func(t *testing.T) {
		writeFile(t, srcPath, "x = 2")
		res, err := eng.Build(ctx, []string{dir}, BuildOptions{})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Built)
		assert.Equal(t, "x = 2\n", readFile(t, filepath.Join(dir, "main.py")))
	})

	t.Run("deleted output", func(t *testing.T) {
		require.NoError(t, os.Remove(filepath.Join(dir, "main.py")))
		res, err := eng.Build(ctx, []string{dir}, BuildOptions{})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Built)
	})

	t.Run("runs recorded", func(t *testing.T) {
		run, err := eng.Store().GetLatestRun()
		require.NoError(t, err)
		require.NotNil(t, run)
		assert.Equal(t, state.RunStatusCompleted, run.Status)
		assert.Equal(t, 1, run.Files)
	})
}

func TestBuild_FailedRunRecorded(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.by"), "if x {")

	eng := newTestEngine(t, Config{StatePath: filepath.Join(dir, "state.db")})
	res, err := eng.Build(context.Background(), []string{dir}, BuildOptions{})
	require.NoError(t, err)

	run, err := eng.Store().GetRun(res.RunID)
	require.NoError(t, err)
	assert.Equal(t, state.RunStatusFailed, run.Status)
	assert.Equal(t, 1, run.Errors)
}

func TestBuild_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.by"), "x = 1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := newTestEngine(t, Config{})
	_, err := eng.Build(ctx, []string{dir}, BuildOptions{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestTranspileFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.by")
	writeFile(t, path, "x = (1")

	eng := newTestEngine(t, Config{})
	_, err := eng.TranspileFile(path)
	var syn *parser.SyntaxError
	require.ErrorAs(t, err, &syn)

	_, err = eng.TranspileFile(filepath.Join(dir, "missing.by"))
	require.Error(t, err)
}

// buildRecorder collects OnBuild callbacks from a running watch.
type buildRecorder struct {
	mu      sync.Mutex
	results []*BuildResult
}

func (r *buildRecorder) record(res *BuildResult, err error) {
	if err != nil {
		return
	}
	r.mu.Lock()
	r.results = append(r.results, res)
	r.mu.Unlock()
}

func (r *buildRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

func (r *buildRecorder) last() *BuildResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.results[len(r.results)-1]
}

func TestWatch_RebuildsChangedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.by"), "a = 1")
	writeFile(t, filepath.Join(dir, "b.by"), "b = 1")

	eng := newTestEngine(t, Config{})
	rec := &buildRecorder{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- eng.Watch(ctx, []string{dir}, WatchOptions{Debounce: 20 * time.Millisecond, OnBuild: rec.record})
	}()

	require.Eventually(t, func() bool { return rec.count() == 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 2, rec.last().Built)

	writeFile(t, filepath.Join(dir, "a.by"), "a = 2")
	require.Eventually(t, func() bool {
		return rec.count() >= 2 && readFile(t, filepath.Join(dir, "a.py")) == "a = 2\n"
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, filepath.Join(dir, "a.by"), rec.last().Files[0].Source)

	writeFile(t, filepath.Join(dir, "sub", "c.by"), "c = 1")
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, "sub", "c.py"))
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
