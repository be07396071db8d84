package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/bython/internal/state"
	"github.com/leapstack-labs/bython/pkg/transpile"
)

// FileStatus is the outcome of building one file.
type FileStatus string

// File statuses.
const (
	FileBuilt   FileStatus = "built"
	FileSkipped FileStatus = "skipped"
	FileFailed  FileStatus = "failed"
)

// FileResult describes one file of a build.
type FileResult struct {
	Source   string
	Output   string
	Status   FileStatus
	Err      error
	Duration time.Duration
}

// BuildResult summarizes a build.
type BuildResult struct {
	RunID    string
	Files    []FileResult
	Built    int
	Skipped  int
	Failed   int
	Duration time.Duration
}

// HasErrors reports whether any file failed.
func (r *BuildResult) HasErrors() bool {
	return r.Failed > 0
}

// Errors returns every per-file error joined.
func (r *BuildResult) Errors() error {
	var errs []error
	for _, f := range r.Files {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errors.Join(errs...)
}

// BuildOptions configures a build.
type BuildOptions struct {
	// Force rebuilds every file regardless of the cache
	Force bool
}

// Build transpiles every source file under paths. A failing file does not
// stop the others; per-file errors are reported in the result. The returned
// error is reserved for discovery failures and cancellation.
func (e *Engine) Build(ctx context.Context, paths []string, opts BuildOptions) (*BuildResult, error) {
	sources, err := e.Discover(paths)
	if err != nil {
		return nil, err
	}
	return e.BuildSources(ctx, sources, opts)
}

// BuildSources transpiles the given sources concurrently.
func (e *Engine) BuildSources(ctx context.Context, sources []Source, opts BuildOptions) (*BuildResult, error) {
	start := time.Now()
	result := &BuildResult{Files: make([]FileResult, len(sources))}

	if e.store != nil {
		run, err := e.store.CreateRun()
		if err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
		result.RunID = run.ID
	}

	e.logger.Info("build started", "files", len(sources), "run_id", result.RunID)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.jobs)
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result.Files[i] = e.buildFile(src, opts)
			return nil
		})
	}
	waitErr := g.Wait()

	for _, f := range result.Files {
		switch f.Status {
		case FileBuilt:
			result.Built++
		case FileSkipped:
			result.Skipped++
		case FileFailed:
			result.Failed++
		}
	}
	result.Duration = time.Since(start)

	if e.store != nil {
		status := state.RunStatusCompleted
		if result.HasErrors() || waitErr != nil {
			status = state.RunStatusFailed
		}
		if err := e.store.CompleteRun(result.RunID, status, len(sources), result.Failed); err != nil {
			e.logger.Warn("failed to complete run", "run_id", result.RunID, "error", err)
		}
	}

	if waitErr != nil {
		return result, waitErr
	}

	e.logger.Info("build finished",
		"built", result.Built, "skipped", result.Skipped, "failed", result.Failed,
		"duration", result.Duration)
	return result, nil
}

func (e *Engine) buildFile(src Source, opts BuildOptions) FileResult {
	start := time.Now()
	out := e.OutputPath(src)
	res := FileResult{Source: src.Path, Output: out}

	fail := func(err error) FileResult {
		res.Status = FileFailed
		res.Err = err
		res.Duration = time.Since(start)
		e.logger.Warn("transpile failed", "file", src.Path, "error", err)
		return res
	}

	content, err := os.ReadFile(src.Path)
	if err != nil {
		return fail(fmt.Errorf("failed to read %s: %w", src.Path, err))
	}
	hash := state.HashContent(content)

	if e.store != nil && !opts.Force && e.upToDate(src.Path, hash, out) {
		res.Status = FileSkipped
		res.Duration = time.Since(start)
		e.logger.Debug("file unchanged", "file", src.Path)
		return res
	}

	python, err := transpile.File(src.Path, string(content))
	if err != nil {
		return fail(err)
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fail(fmt.Errorf("failed to create output directory: %w", err))
		}
	}
	if err := os.WriteFile(out, []byte(python), 0o644); err != nil {
		return fail(fmt.Errorf("failed to write %s: %w", out, err))
	}

	if e.store != nil {
		if err := e.store.SetContentHash(src.Path, hash, out); err != nil {
			e.logger.Warn("failed to cache content hash", "file", src.Path, "error", err)
		}
	}

	res.Status = FileBuilt
	res.Duration = time.Since(start)
	e.logger.Debug("file built", "file", src.Path, "output", out)
	return res
}

func (e *Engine) upToDate(path, hash, out string) bool {
	rec, err := e.store.GetContentHash(path)
	if err != nil {
		e.logger.Warn("failed to read content hash", "file", path, "error", err)
		return false
	}
	if rec == nil || rec.ContentHash != hash || rec.OutputPath != out {
		return false
	}
	_, err = os.Stat(out)
	return err == nil
}
