package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/gotexml/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Booleans: only true propagates, a layer cannot unset a flag
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Layout.MaxPasses != 0 {
		result.Layout.MaxPasses = override.Layout.MaxPasses
	}
	if override.Layout.MaxDepth != 0 {
		result.Layout.MaxDepth = override.Layout.MaxDepth
	}
	if override.Output.Dir != "" {
		result.Output.Dir = override.Output.Dir
	}
	if override.Output.Extension != "" {
		result.Output.Extension = override.Output.Extension
	}
	if override.Kind != "" {
		result.Kind = override.Kind
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	result.Output.Display = result.Output.Display || override.Output.Display
	result.Output.AltText = result.Output.AltText || override.Output.AltText
	result.FollowSymlinks = result.FollowSymlinks || override.FollowSymlinks
	result.Stdout = result.Stdout || override.Stdout

	result.Flags.Roles = mergeMap(result.Flags.Roles, override.Flags.Roles)
	result.Flags.Symbols = mergeMap(result.Flags.Symbols, override.Flags.Symbols)

	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}
	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}

	return result
}

// mergeMap returns base with the entries of override added or replaced.
func mergeMap(base, override map[string]string) map[string]string {
	if base == nil {
		base = make(map[string]string, len(override))
	}
	maps.Copy(base, override)
	return base
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
