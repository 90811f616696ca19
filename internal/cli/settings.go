package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gotexml/internal/configloader"
	"github.com/yaklabco/gotexml/internal/logging"
	"github.com/yaklabco/gotexml/pkg/config"
	"github.com/yaklabco/gotexml/pkg/document"
	"github.com/yaklabco/gotexml/pkg/layout"
	"github.com/yaklabco/gotexml/pkg/runner"
	"github.com/yaklabco/gotexml/pkg/texmath"
)

// loadConfig resolves the layered configuration with cliCfg on top.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Notice:       cmd.ErrOrStderr(),
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, workDir, nil
}

// translateOptions builds the per-formula settings from cfg.
func translateOptions(cfg *config.Config) (document.Options, error) {
	table, err := layout.TableFromConfig(cfg.Flags.Roles, cfg.Flags.Symbols)
	if err != nil {
		return document.Options{}, fmt.Errorf("%w: flags: %w", ErrConfig, err)
	}
	return document.Options{
		Layout: layout.Options{
			Classifier: table,
			MaxPasses:  cfg.Layout.MaxPasses,
		},
		Parse:      texmath.Options{MaxDepth: cfg.Layout.MaxDepth},
		DisplayAll: cfg.Output.Display,
	}, nil
}

// runnerOptions builds the options of a translation run.
func runnerOptions(cfg *config.Config, paths []string, workDir string) (runner.Options, error) {
	topts, err := translateOptions(cfg)
	if err != nil {
		return runner.Options{}, err
	}

	var kind document.Kind
	if cfg.Kind != "" {
		kind, err = document.ParseKind(cfg.Kind)
		if err != nil {
			return runner.Options{}, fmt.Errorf("%w: %w", ErrConfig, err)
		}
	}

	return runner.Options{
		Paths:          paths,
		WorkingDir:     workDir,
		Extensions:     cfg.Extensions,
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: cfg.FollowSymlinks,
		Jobs:           cfg.Jobs,
		Kind:           kind,
		Translate:      topts,
		Write:          document.WriteOptions{AltText: cfg.Output.AltText},
		OutDir:         cfg.Output.Dir,
		OutExt:         cfg.Output.Extension,
		Stdout:         cfg.Stdout,
	}, nil
}

// traceLogger turns layout passes into debug records. It returns nil when
// debug logging is off, which disables tracing in the engine.
func traceLogger(logger *log.Logger) func(string, *document.Formula, layout.PassTrace) {
	if logger.GetLevel() > log.DebugLevel {
		return nil
	}
	return func(path string, f *document.Formula, pt layout.PassTrace) {
		logger.Debug("layout pass",
			logging.FieldPath, path,
			logging.FieldLine, f.Line,
			logging.FieldColumn, f.Column,
			logging.FieldPass, pt.Pass,
			logging.FieldFlags, pt.Flags.String(),
			logging.FieldRanges, pt.Ranges.String(),
			logging.FieldFinal, pt.Final,
		)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
