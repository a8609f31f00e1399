package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-set/v2"
)

// matcher holds the path filters of one Discover call.
type matcher struct {
	workDir  string
	suffixes []string
	include  []string
	exclude  []string
}

// Discover expands opts.Paths into the sorted, de-duplicated list of
// absolute build script paths to lint. A file named directly is kept even
// when an exclude pattern matches it; directories are walked.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := absWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	m := matcher{
		workDir:  workDir,
		suffixes: opts.effectiveSuffixes(),
		include:  opts.IncludeGlobs,
		exclude:  opts.effectiveExcludes(),
	}

	found := set.New[string](64)
	for _, arg := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		path := arg
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			if m.isBuildScript(path) {
				found.Insert(path)
			}
			continue
		}

		walked, err := m.walk(ctx, path, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		found.InsertSlice(walked)
	}

	files := found.Slice()
	slices.Sort(files)
	return files, nil
}

func absWorkDir(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}

// walk returns the build scripts below root. Hidden entries and excluded
// directories are pruned; unreadable directories and broken links are
// skipped silently.
func (m matcher) walk(ctx context.Context, root string, followSymlinks bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || m.excluded(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(realPath)
			if err != nil {
				return nil //nolint:nilerr // Inaccessible targets are skipped.
			}
			if info.IsDir() {
				if !followSymlinks {
					return nil
				}
				// Walk the target; WalkDir does not follow the link itself.
				sub, err := m.walk(ctx, realPath, followSymlinks)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if m.isBuildScript(path) && !m.excluded(path) && m.included(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func (m matcher) isBuildScript(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	for _, suffix := range m.suffixes {
		if strings.HasSuffix(name, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

func (m matcher) excluded(path string) bool {
	return matchAny(m.rel(path), m.exclude)
}

func (m matcher) included(path string) bool {
	return len(m.include) == 0 || matchAny(m.rel(path), m.include)
}

// rel returns path relative to the working directory in slash form.
func (m matcher) rel(path string) string {
	rel, err := filepath.Rel(m.workDir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// matchAny matches relPath against doublestar patterns. A pattern without a
// slash also matches the base name, so "*.kts" works at any depth.
func matchAny(relPath string, patterns []string) bool {
	base := relPath[strings.LastIndex(relPath, "/")+1:]
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, base); ok {
				return true
			}
		}
	}
	return false
}
