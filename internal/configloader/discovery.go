package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
)

// ProjectConfigFile is the name `gotexml init` writes.
const ProjectConfigFile = ".gotexml.yml"

// projectConfigFiles are searched for in each directory, first match wins.
var projectConfigFiles = []string{ProjectConfigFile, ".gotexml.yaml", "gotexml.yml", "gotexml.yaml"}

// Layer is one configuration file in the merge order.
type Layer struct {
	// Name is "system", "user", "project" or "explicit".
	Name string
	Path string
}

// Layers returns the configuration files that apply to workDir, lowest
// precedence first: the system file, the user file under XDG_CONFIG_HOME,
// the nearest project file and the explicit file. Layers that do not
// exist or that opts ignores are left out.
func Layers(ctx context.Context, workDir string, opts LoadOptions) ([]Layer, error) {
	var layers []Layer
	add := func(name, path string, ignored bool) {
		if path != "" && !ignored {
			layers = append(layers, Layer{Name: name, Path: path})
		}
	}

	add("system", firstFile(systemConfigDir(), "config.yaml", "config.yml"), opts.IgnoreSystemConfig)
	add("user", firstFile(userConfigDir(), "config.yaml", "config.yml"), opts.IgnoreUserConfig)

	if !opts.IgnoreProjectConfig {
		project, err := FindProjectConfig(ctx, workDir)
		if err != nil {
			return nil, err
		}
		add("project", project, false)
	}

	add("explicit", opts.ExplicitPath, false)
	return layers, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/gotexml"
	}
	if dir := os.Getenv("ProgramData"); dir != "" {
		return filepath.Join(dir, "gotexml")
	}
	return `C:\ProgramData\gotexml`
}

func userConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "gotexml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gotexml")
}

// FindProjectConfig returns the nearest project config file at or above
// startDir, or "" when there is none. The search stops after a VCS root or
// the home directory.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}
		if path := firstFile(dir, projectConfigFiles...); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isVCSRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	return slices.ContainsFunc([]string{".git", ".hg", ".svn"}, func(marker string) bool {
		info, err := os.Stat(filepath.Join(dir, marker))
		return err == nil && info.IsDir()
	})
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names ...string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
