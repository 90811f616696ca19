package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/gotexml/pkg/runner"
)

// makeTree creates files (with placeholder content) under dir.
func makeTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("$x$\n"), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

func assertFiles(t *testing.T, dir string, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d files, got %d: %v", len(want), len(got), got)
	}
	for i, w := range want {
		if exp := filepath.Join(dir, filepath.FromSlash(w)); got[i] != exp {
			t.Errorf("file[%d] = %s, want %s", i, got[i], exp)
		}
	}
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir,
		"paper.tex",
		"chapters/intro.ltx",
		"notes/readme.md",
		"notes/todo.markdown",
		"src/main.go",
		"refs.bib",
	)

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertFiles(t, dir, files,
		"chapters/intro.ltx",
		"notes/readme.md",
		"notes/todo.markdown",
		"paper.tex",
	)
}

func TestDiscover_ExplicitFileSkipsExtensionCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "formulas.txt")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"formulas.txt", "formulas.txt"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertFiles(t, dir, files, "formulas.txt")
}

func TestDiscover_Globs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir,
		"paper.tex",
		"build/paper.tex",
		"drafts/old/a.tex",
		"docs/guide.md",
		"docs/api/ref.md",
	)

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "exclude directories",
			opts: runner.Options{ExcludeGlobs: []string{"build/**", "**/old"}},
			want: []string{"docs/api/ref.md", "docs/guide.md", "paper.tex"},
		},
		{
			name: "exclude by base name",
			opts: runner.Options{ExcludeGlobs: []string{"*.md"}},
			want: []string{"build/paper.tex", "drafts/old/a.tex", "paper.tex"},
		},
		{
			name: "include subtree",
			opts: runner.Options{IncludeGlobs: []string{"docs/**"}},
			want: []string{"docs/api/ref.md", "docs/guide.md"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".md"}},
			want: []string{"docs/api/ref.md", "docs/guide.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts
			opts.WorkingDir = dir
			files, err := runner.Discover(context.Background(), opts)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}
			assertFiles(t, dir, files, tt.want...)
		})
	}
}

func TestDiscover_HiddenEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "paper.tex", ".hidden.tex", ".cache/paper.tex")

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertFiles(t, dir, files, "paper.tex")
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	makeTree(t, dir, "paper.tex")
	makeTree(t, outside, "shared.tex")
	if err := os.Symlink(outside, filepath.Join(dir, "shared")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	opts := runner.Options{WorkingDir: dir}
	files, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 {
		t.Errorf("expected 1 file without FollowSymlinks, got %d: %v", len(files), files)
	}

	opts.FollowSymlinks = true
	files, err = runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files with FollowSymlinks, got %d: %v", len(files), files)
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing.tex"},
		WorkingDir: dir,
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Discover() error = %v, want not-exist", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Discover(ctx, runner.Options{WorkingDir: dir})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Discover() error = %v, want context.Canceled", err)
	}
}

func TestDiscover_SymlinkCycle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "paper.tex")
	if err := os.Symlink(dir, filepath.Join(dir, "loop")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertFiles(t, dir, files, "paper.tex")
}
