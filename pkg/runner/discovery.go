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
)

// Discover finds the source files named by opts. Directories are walked
// for files with a matching extension; hidden entries are skipped. It
// returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		ctx:     ctx,
		workDir: workDir,
		exts:    opts.effectiveExtensions(),
		opts:    opts,
		found:   make(map[string]struct{}),
		walked:  make(map[string]struct{}),
	}

	for _, arg := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}
		if err := d.add(arg); err != nil {
			return nil, err
		}
	}

	files := make([]string, 0, len(d.found))
	for f := range d.found {
		files = append(files, f)
	}
	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

// discoverer collects source files. found is a set so that a file named
// twice, or reached through a symlink, is translated once.
type discoverer struct {
	ctx     context.Context
	workDir string
	exts    []string
	opts    Options

	found  map[string]struct{}
	walked map[string]struct{}
}

// add resolves one command-line path. Files named explicitly skip the
// extension check but not the exclude globs.
func (d *discoverer) add(arg string) error {
	path := arg
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.workDir, path)
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", arg, err)
	}
	if info.IsDir() {
		return d.walk(path)
	}
	if !slices.ContainsFunc(d.opts.ExcludeGlobs, d.matcher(path)) {
		d.found[path] = struct{}{}
	}
	return nil
}

// walk visits the tree under root. Directory symlinks are walked through
// their target when FollowSymlinks is set; a target is walked at most once,
// which also stops symlink cycles.
func (d *discoverer) walk(root string) error {
	if real, err := filepath.EvalSymlinks(root); err == nil {
		if _, done := d.walked[real]; done {
			return nil
		}
		d.walked[real] = struct{}{}
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := d.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := strings.HasPrefix(entry.Name(), ".") && path != root
		excluded := slices.ContainsFunc(d.opts.ExcludeGlobs, d.matcher(path))

		switch {
		case entry.IsDir():
			if hidden || excluded {
				return filepath.SkipDir
			}
		case entry.Type()&fs.ModeSymlink != 0:
			if hidden || excluded {
				return nil
			}
			return d.symlink(path)
		case !hidden && !excluded && d.wanted(path):
			d.found[path] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink handles a symlink met during a walk. Broken links are skipped.
func (d *discoverer) symlink(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // broken symlinks are skipped
	}
	if !info.IsDir() {
		if d.wanted(path) {
			d.found[path] = struct{}{}
		}
		return nil
	}
	if !d.opts.FollowSymlinks {
		return nil
	}
	// WalkDir does not descend into a symlinked root, so walk the target.
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // unresolvable targets are skipped
	}
	return d.walk(target)
}

// wanted reports whether a walked file has a source extension and matches
// the include globs, if any.
func (d *discoverer) wanted(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.ContainsFunc(d.exts, func(e string) bool { return strings.ToLower(e) == ext }) {
		return false
	}
	return len(d.opts.IncludeGlobs) == 0 || slices.ContainsFunc(d.opts.IncludeGlobs, d.matcher(path))
}

// matcher returns a predicate matching path, relative to the working
// directory, against a glob.
func (d *discoverer) matcher(path string) func(string) bool {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		rel = path
	}
	return func(pattern string) bool { return matchGlob(rel, pattern) }
}

// matchGlob matches a slash-separated path against a glob pattern. A
// pattern without a slash also matches the base name. "**" matches any
// number of path segments, including none.
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if !strings.Contains(pattern, "**") {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			ok, _ := filepath.Match(pattern, filepath.Base(path))
			return ok
		}
		return false
	}
	return matchSegments(strings.Split(path, "/"), strings.Split(pattern, "/"))
}

// matchSegments matches path segments against pattern segments, where a
// "**" segment absorbs zero or more path segments.
func matchSegments(path, pattern []string) bool {
	for len(pattern) > 0 {
		head := pattern[0]
		if head == "**" {
			rest := pattern[1:]
			if len(rest) == 0 {
				return true
			}
			for i := range len(path) + 1 {
				if matchSegments(path[i:], rest) {
					return true
				}
			}
			return false
		}
		if len(path) == 0 {
			return false
		}
		if ok, err := filepath.Match(head, path[0]); err != nil || !ok {
			return false
		}
		path, pattern = path[1:], pattern[1:]
	}
	return len(path) == 0
}
