package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gotexml/pkg/config"
)

// envVarPrefix is the prefix for all gotexml environment variables.
const envVarPrefix = "GOTEXML_"

// envVar binds one environment variable to a configuration field.
type envVar struct {
	help  string
	apply func(cfg *config.Config, value string) error
}

func envString(help string, set func(*config.Config, string)) envVar {
	return envVar{help: help, apply: func(cfg *config.Config, v string) error {
		set(cfg, v)
		return nil
	}}
}

func envBool(help string, set func(*config.Config, bool)) envVar {
	return envVar{help: help, apply: func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		set(cfg, b)
		return nil
	}}
}

func envInt(help string, set func(*config.Config, int)) envVar {
	return envVar{help: help, apply: func(cfg *config.Config, v string) error {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		set(cfg, i)
		return nil
	}}
}

func envSlice(help string, set func(*config.Config, []string)) envVar {
	return envVar{help: help, apply: func(cfg *config.Config, v string) error {
		set(cfg, parseSliceValue(v))
		return nil
	}}
}

// envVars maps environment variable names (without prefix) to config fields.
var envVars = map[string]envVar{
	"MAX_PASSES": envInt("Upper bound on layout passes per list",
		func(c *config.Config, v int) { c.Layout.MaxPasses = v }),
	"MAX_DEPTH": envInt("Upper bound on formula nesting depth",
		func(c *config.Config, v int) { c.Layout.MaxDepth = v }),
	"OUT_DIR": envString("Directory for translated files",
		func(c *config.Config, v string) { c.Output.Dir = v }),
	"EXTENSION": envString("Extension of translated files",
		func(c *config.Config, v string) { c.Output.Extension = v }),
	"DISPLAY": envBool("Render every formula in display style: true or false",
		func(c *config.Config, v bool) { c.Output.Display = v }),
	"ALTTEXT": envBool("Add TeX alttext to formulas: true or false",
		func(c *config.Config, v bool) { c.Output.AltText = v }),
	"KIND": envString("Force the source kind: tex or markdown",
		func(c *config.Config, v string) { c.Kind = v }),
	"EXTENSIONS": envSlice("Comma-separated list of source extensions",
		func(c *config.Config, v []string) { c.Extensions = v }),
	"IGNORE": envSlice("Comma-separated list of ignore patterns",
		func(c *config.Config, v []string) { c.Ignore = v }),
	"FOLLOW_SYMLINKS": envBool("Descend into symlinked directories: true or false",
		func(c *config.Config, v bool) { c.FollowSymlinks = v }),
	"FORMAT": envString("Report format: text, json, or summary",
		func(c *config.Config, v string) { c.Format = config.OutputFormat(v) }),
	"JOBS": envInt("Number of parallel workers (0 = auto)",
		func(c *config.Config, v int) { c.Jobs = v }),
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOTEXML_ (e.g., GOTEXML_MAX_PASSES).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, name := range sortedEnvNames() {
		value := os.Getenv(envVarPrefix + name)
		if value == "" {
			continue
		}
		if err := envVars[name].apply(cfg, value); err != nil {
			return fmt.Errorf("%s%s: %w", envVarPrefix, name, err)
		}
	}
	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func sortedEnvNames() []string {
	names := make([]string, 0, len(envVars))
	for name := range envVars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListEnvVars returns every supported environment variable with its
// description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for name, v := range envVars {
		out[envVarPrefix+name] = v.help
	}
	return out
}
