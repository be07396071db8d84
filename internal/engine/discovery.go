package engine

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source is one input file and the root it was discovered under. Output
// paths keep the file's position relative to Root.
type Source struct {
	Path string
	Root string
}

// Discover expands paths into source files. Directories are walked
// recursively, skipping hidden directories; files are taken as given.
func (e *Engine) Discover(paths []string) ([]Source, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	seen := make(map[string]bool)
	var sources []Source
	add := func(path, root string) {
		clean := filepath.Clean(path)
		if seen[clean] {
			return
		}
		seen[clean] = true
		sources = append(sources, Source{Path: clean, Root: filepath.Clean(root)})
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p, filepath.Dir(p))
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && isHidden(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == e.sourceExt {
				add(path, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })
	return sources, nil
}

// OutputPath returns where the translation of src is written.
func (e *Engine) OutputPath(src Source) string {
	base := strings.TrimSuffix(src.Path, filepath.Ext(src.Path)) + e.targetExt
	if e.outDir == "" {
		return base
	}
	rel, err := filepath.Rel(src.Root, base)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(base)
	}
	return filepath.Join(e.outDir, rel)
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
