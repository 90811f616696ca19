package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gotexml/pkg/config"
	"github.com/yaklabco/gotexml/pkg/document"
	"github.com/yaklabco/gotexml/pkg/layout"
	"github.com/yaklabco/gotexml/pkg/mathlist"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "layout.max_passes").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, json, summary", cfg.Format)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Layout.MaxPasses < 1 {
		result.fail("layout.max_passes", cfg.Layout.MaxPasses, "max_passes must be >= 1")
	}
	if cfg.Layout.MaxDepth < 1 {
		result.fail("layout.max_depth", cfg.Layout.MaxDepth, "max_depth must be >= 1")
	}
	if cfg.Kind != "" {
		if _, err := document.ParseKind(cfg.Kind); err != nil {
			result.fail("kind", cfg.Kind, "%v", err)
		}
	}
	if !strings.HasPrefix(cfg.Output.Extension, ".") {
		result.fail("output.extension", cfg.Output.Extension, "extension must start with a dot")
	}
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.fail(fmt.Sprintf("extensions[%d]", i), ext, "extension must start with a dot")
		}
	}

	validateFlags(cfg, result)
	validateIgnorePatterns(cfg, result)
	return result
}

// validateFlags checks that the flag overrides name known roles and flags.
func validateFlags(cfg *config.Config, result *ValidationResult) {
	if _, err := layout.TableFromConfig(cfg.Flags.Roles, cfg.Flags.Symbols); err != nil {
		result.fail("flags", nil, "%v", err)
		return
	}
	for symbol, flag := range cfg.Flags.Symbols {
		if f, _ := mathlist.ParseFlag(flag); f == mathlist.FlagDummy {
			result.warn("flags.symbols."+symbol, flag, "dummy is reserved for script placeholders")
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
