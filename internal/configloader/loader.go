// Package configloader resolves the gotexml configuration.
// It implements XDG-compliant discovery, hierarchical merging, environment
// variable overrides and validation.
package configloader

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gotexml/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// NonInteractive suppresses the discovery notice.
	NonInteractive bool

	// Notice receives one line per loaded file when the session is
	// interactive. Nil disables the notice.
	Notice io.Writer

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Layers lists the configuration files that were merged, lowest
	// precedence first.
	Layers []Layer

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GOTEXML_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gotexml.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/gotexml/config.yaml)
//  6. System config (/etc/gotexml/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	layers, err := Layers(ctx, workDir, opts)
	if err != nil {
		return nil, fmt.Errorf("discover config files: %w", err)
	}

	result := &LoadResult{Layers: layers}
	cfg := config.NewConfig()
	for _, layer := range layers {
		fileCfg, err := loadConfigFile(layer.Path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.Name, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.Path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	if opts.Notice != nil && !opts.NonInteractive && isInteractive() {
		for _, path := range result.LoadedFrom {
			_, _ = fmt.Fprintf(opts.Notice, "gotexml: using config %s\n", path)
		}
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file. Validation
// errors carry the file path.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(content, &node); err != nil {
		return nil, &ValidationError{FilePath: path, Message: fmt.Sprintf("parse YAML: %v", err)}
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}

	if field, line, ok := unknownField(&node); ok {
		return nil, &ValidationError{
			FilePath: path,
			Line:     line,
			Field:    field,
			Message:  "unknown configuration key",
		}
	}
	return cfg, nil
}

// knownKeys lists the top-level configuration keys.
var knownKeys = map[string]bool{
	"flags":           true,
	"layout":          true,
	"output":          true,
	"kind":            true,
	"extensions":      true,
	"ignore":          true,
	"follow_symlinks": true,
}

// unknownField returns the first top-level key of a document that is not a
// configuration key.
func unknownField(doc *yaml.Node) (string, int, bool) {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return "", 0, false
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return "", 0, false
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		if !knownKeys[key.Value] {
			return key.Value, key.Line, true
		}
	}
	return "", 0, false
}

// WriteConfig writes data to path, refusing to replace an existing file
// unless force is set.
func WriteConfig(path string, data []byte, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, configFilePermissions)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// isInteractive returns true if stderr is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
