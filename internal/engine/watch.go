package engine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a rebuild.
const DefaultDebounce = 100 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	// Debounce is the quiet period after the last change before rebuilding
	Debounce time.Duration
	// OnBuild is called after the initial build and after every rebuild
	OnBuild func(*BuildResult, error)
}

// Watch builds paths once, then rebuilds changed source files until ctx is
// cancelled. Rebuilds only cover files changed since the previous one.
func (e *Engine) Watch(ctx context.Context, paths []string, opts WatchOptions) error {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	onBuild := opts.OnBuild
	if onBuild == nil {
		onBuild = func(*BuildResult, error) {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// roots maps each watched directory to the root it was given under.
	roots := make(map[string]string)
	// Files named directly are watched through their parent directory;
	// siblings in such a directory are ignored.
	files := make(map[string]bool)
	fileDirs := make(map[string]bool)
	var named []string
	for _, p := range paths {
		if !e.isDir(p) {
			named = append(named, filepath.Clean(p))
			continue
		}
		if err := watchDirRecursive(watcher, p, roots); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}
	for _, p := range named {
		files[p] = true
		dir := filepath.Dir(p)
		if _, ok := roots[dir]; ok && !fileDirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		roots[dir] = dir
		fileDirs[dir] = true
	}

	onBuild(e.Build(ctx, paths, BuildOptions{}))

	pending := make(map[string]Source)
	fire := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			path := filepath.Clean(event.Name)
			parent := filepath.Dir(path)
			if fileDirs[parent] && !files[path] {
				continue
			}
			if event.Op&fsnotify.Create != 0 && e.isDir(path) {
				if isHidden(filepath.Base(path)) {
					continue
				}
				if err := watchDirRecursive(watcher, path, roots); err != nil {
					e.logger.Warn("failed to watch new directory", "dir", path, "error", err)
				}
				// Files created together with the directory raise no events.
				if added, err := e.Discover([]string{path}); err == nil {
					for _, src := range added {
						src.Root = roots[path]
						pending[src.Path] = src
					}
				}
			} else if filepath.Ext(path) == e.sourceExt {
				root, ok := roots[parent]
				if !ok {
					root = parent
				}
				pending[path] = Source{Path: path, Root: root}
			}
			if len(pending) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(opts.Debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			if len(pending) == 0 {
				continue
			}
			sources := make([]Source, 0, len(pending))
			for _, src := range pending {
				sources = append(sources, src)
			}
			clear(pending)
			sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })

			e.logger.Debug("files changed, rebuilding", "files", len(sources))
			onBuild(e.BuildSources(ctx, sources, BuildOptions{}))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Error("watcher error", "error", err)
		}
	}
}

func (e *Engine) isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// watchDirRecursive adds dir and its non-hidden subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string, roots map[string]string) error {
	root := filepath.Clean(dir)
	if r, ok := roots[filepath.Dir(root)]; ok {
		root = r
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		roots[filepath.Clean(path)] = root
		return watcher.Add(path)
	})
}
