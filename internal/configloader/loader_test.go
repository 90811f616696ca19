package configloader

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/gotexml/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
		NonInteractive:     true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Layout.MaxPasses != config.DefaultMaxPasses {
		t.Errorf("MaxPasses = %d, want %d", result.Config.Layout.MaxPasses, config.DefaultMaxPasses)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("LoadedFrom = %v, want none", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gotexml.yml"), `
layout:
  max_passes: 8
output:
  alttext: true
flags:
  symbols:
    "\\vert": middle
`)

	result, err := Load(context.Background(), isolated(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Layout.MaxPasses != 8 {
		t.Errorf("MaxPasses = %d, want 8", cfg.Layout.MaxPasses)
	}
	if cfg.Layout.MaxDepth != config.DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want default", cfg.Layout.MaxDepth)
	}
	if !cfg.Output.AltText {
		t.Error("AltText should be set from the project config")
	}
	if cfg.Flags.Symbols[`\vert`] != "middle" {
		t.Errorf(`Symbols[\vert] = %q, want middle`, cfg.Flags.Symbols[`\vert`])
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("LoadedFrom = %v, want one file", result.LoadedFrom)
	}
}

func TestLoad_SearchesUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "docs", "chapters")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, ".gotexml.yml"), "kind: tex\n")

	path, err := FindProjectConfig(context.Background(), nested)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != filepath.Join(root, ".gotexml.yml") {
		t.Errorf("FindProjectConfig() = %q", path)
	}
}

func TestLayers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	project := filepath.Join(dir, "gotexml.yaml")
	explicit := filepath.Join(dir, "ci.yml")
	writeFile(t, project, "kind: tex\n")
	writeFile(t, explicit, "kind: markdown\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit
	layers, err := Layers(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("Layers() error = %v", err)
	}
	want := []Layer{{Name: "project", Path: project}, {Name: "explicit", Path: explicit}}
	if len(layers) != len(want) {
		t.Fatalf("Layers() = %v, want %v", layers, want)
	}
	for i := range want {
		if layers[i] != want[i] {
			t.Errorf("layer %d = %v, want %v", i, layers[i], want[i])
		}
	}

	opts.IgnoreProjectConfig = true
	layers, err = Layers(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("Layers() error = %v", err)
	}
	if len(layers) != 1 || layers[0].Name != "explicit" {
		t.Errorf("Layers() = %v, want only the explicit file", layers)
	}
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gotexml.yml"), "layout:\n  max_passes: 8\n  max_depth: 16\n")
	explicit := filepath.Join(dir, "ci.yaml")
	writeFile(t, explicit, "layout:\n  max_passes: 12\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit
	opts.CLIConfig = &config.Config{Layout: config.LayoutConfig{MaxDepth: 4}}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := result.Config.Layout.MaxPasses; got != 12 {
		t.Errorf("MaxPasses = %d, want 12 from the explicit file", got)
	}
	if got := result.Config.Layout.MaxDepth; got != 4 {
		t.Errorf("MaxDepth = %d, want 4 from the CLI", got)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gotexml.yml"), "layout:\n  max_passes: 8\nflavor: gfm\n")

	_, err := Load(context.Background(), isolated(dir))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Load() error = %v, want ValidationError", err)
	}
	if verr.Field != "flavor" || verr.Line != 3 {
		t.Errorf("ValidationError = %+v", verr)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "zero passes", content: "layout:\n  max_passes: -1\n", field: "layout.max_passes"},
		{name: "bad kind", content: "kind: rtf\n", field: "kind"},
		{name: "bad flag", content: "flags:\n  roles:\n    open: sideways\n", field: "flags"},
		{name: "bad glob", content: "ignore:\n  - \"[\"\n", field: "ignore[0]"},
		{name: "bad extension", content: "output:\n  extension: xml\n", field: "output.extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, ".gotexml.yml"), tt.content)

			_, err := Load(context.Background(), isolated(dir))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Load() error = %v, want ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GOTEXML_MAX_PASSES", "5")
	t.Setenv("GOTEXML_ALTTEXT", "true")
	t.Setenv("GOTEXML_IGNORE", "vendor/**, build/**")

	cfg := config.NewConfig()
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Layout.MaxPasses != 5 {
		t.Errorf("MaxPasses = %d, want 5", cfg.Layout.MaxPasses)
	}
	if !cfg.Output.AltText {
		t.Error("AltText should be true")
	}
	if strings.Join(cfg.Ignore, "|") != "vendor/**|build/**" {
		t.Errorf("Ignore = %v", cfg.Ignore)
	}
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Setenv("GOTEXML_JOBS", "many")

	err := LoadFromEnv(config.NewConfig())
	if err == nil || !strings.Contains(err.Error(), "GOTEXML_JOBS") {
		t.Errorf("LoadFromEnv() error = %v, want one naming GOTEXML_JOBS", err)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Flags.Roles["fence"] = "middle"
	base.Ignore = []string{"a/**"}

	override := &config.Config{
		Flags:  config.FlagsConfig{Roles: map[string]string{"open": "none"}},
		Output: config.OutputConfig{Display: true},
	}

	got := MergeAll(base, override)
	if got.Flags.Roles["fence"] != "middle" || got.Flags.Roles["open"] != "none" {
		t.Errorf("Roles = %v", got.Flags.Roles)
	}
	if !got.Output.Display {
		t.Error("Display should propagate")
	}
	if len(got.Ignore) != 1 {
		t.Errorf("Ignore = %v, want base kept", got.Ignore)
	}
	if _, ok := base.Flags.Roles["open"]; ok {
		t.Error("merge must not modify its base")
	}
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ProjectConfigFile)
	if err := WriteConfig(path, []byte("kind: tex\n"), false); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}
	if err := WriteConfig(path, []byte("kind: markdown\n"), false); err == nil {
		t.Error("WriteConfig() should refuse to overwrite without force")
	}
	if err := WriteConfig(path, []byte("kind: markdown\n"), true); err != nil {
		t.Fatalf("WriteConfig(force) error = %v", err)
	}
}

func TestLoad_NoticeNeedsTerminal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gotexml.yml"), "kind: tex\n")

	var notice bytes.Buffer
	opts := isolated(dir)
	opts.Notice = &notice
	if _, err := Load(context.Background(), opts); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if notice.Len() != 0 {
		t.Errorf("notice written in non-interactive mode: %q", notice.String())
	}
}
