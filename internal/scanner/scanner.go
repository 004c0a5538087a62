// Package scanner discovers git repositories under a projects directory,
// respecting .branchbin index files for grouping and ignoring subdirectories.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agrahamlincoln/branchbin/pkg/git"
)

// IndexFileName is the per-directory index file consulted while scanning.
const IndexFileName = ".branchbin"

// indexFile represents the schema of a .branchbin index file.
type indexFile struct {
	Groups  []string `yaml:"groups"`
	Ignores []string `yaml:"ignores"`
}

// Options controls scanning behavior.
type Options struct {
	ExcludePatterns []string
}

// walker carries the state of one Scan call.
type walker struct {
	opts    Options
	visited map[string]bool
	repos   []string
}

// Scan discovers git repositories under rootPath, in directory order.
//
// The algorithm:
//  1. If a .branchbin file exists in a directory, parse it for groups/ignores
//     and recurse into group subdirectories first.
//  2. Every other immediate child that is a repository is collected.
//  3. Hidden directories (starting with ".") are always skipped.
//  4. Symlink cycles are detected via visited-path tracking.
func Scan(rootPath string, opts Options) ([]string, error) {
	w := &walker{opts: opts, visited: make(map[string]bool)}
	if err := w.scan(rootPath); err != nil {
		return nil, err
	}
	return w.repos, nil
}

func (w *walker) scan(dir string) error {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return fmt.Errorf("resolving symlink %s: %w", dir, err)
	}
	if w.visited[resolved] {
		return nil // cycle detected
	}
	w.visited[resolved] = true

	idx, err := loadIndex(dir)
	if err != nil {
		return err
	}

	ignored := toSet(idx.Ignores)
	groups := toSet(idx.Groups)

	for _, group := range idx.Groups {
		if ignored[group] {
			continue // ignore takes precedence
		}
		groupPath := filepath.Join(dir, group)
		if info, err := os.Stat(groupPath); err != nil || !info.IsDir() {
			continue // missing groups are skipped
		}
		if err := w.scan(groupPath); err != nil {
			return err
		}
	}

	return w.collect(dir, func(name string) bool {
		return groups[name] || ignored[name]
	})
}

// collect appends every repository among the immediate children of dir,
// except hidden, excluded and skipped names.
func (w *walker) collect(dir string, skip func(name string) bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !entry.IsDir() {
			continue
		}
		if skip(name) || isExcluded(name, w.opts.ExcludePatterns) {
			continue
		}
		child := filepath.Join(dir, name)
		if git.IsRepo(child) {
			w.repos = append(w.repos, child)
		}
	}
	return nil
}

// loadIndex loads and validates the index file in dir. A missing or empty
// file yields an empty index.
func loadIndex(dir string) (indexFile, error) {
	path := filepath.Clean(filepath.Join(dir, IndexFileName))
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return indexFile{}, nil
	}
	if err != nil {
		return indexFile{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return indexFile{}, nil
	}

	// Strict schema: only "groups" and "ignores" are allowed.
	var idx indexFile
	if err := yaml.UnmarshalWithOptions(data, &idx, yaml.DisallowUnknownField()); err != nil {
		return indexFile{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return idx, nil
}

// Rel returns repoPath relative to root for display, or repoPath itself
// when it is not below root.
func Rel(root, repoPath string) string {
	rel, err := filepath.Rel(root, repoPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return repoPath
	}
	return rel
}

func toSet(items []string) map[string]bool {
	s := make(map[string]bool, len(items))
	for _, item := range items {
		s[item] = true
	}
	return s
}

func isExcluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
