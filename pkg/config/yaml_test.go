package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotexml/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.DefaultMaxPasses, cfg.Layout.MaxPasses)
	assert.Equal(t, config.DefaultMaxDepth, cfg.Layout.MaxDepth)
	assert.Equal(t, ".xml", cfg.Output.Extension)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.NotNil(t, cfg.Flags.Roles)
	assert.NotNil(t, cfg.Flags.Symbols)
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies maps and slices", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		original.Flags.Symbols[`\vert`] = "middle"
		original.Ignore = []string{"build/**"}
		original.Jobs = 4

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, 4, clone.Jobs)

		clone.Flags.Symbols[`\vert`] = "none"
		clone.Ignore[0] = "vendor/**"
		assert.Equal(t, "middle", original.Flags.Symbols[`\vert`])
		assert.Equal(t, "build/**", original.Ignore[0])
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Flags.Roles["fence"] = "none"
	cfg.Output.Dir = "out"
	cfg.Output.AltText = true
	cfg.Ignore = []string{"vendor/**"}
	cfg.Jobs = 8

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_passes: 64")
	assert.NotContains(t, string(data), "jobs")

	got, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "none", got.Flags.Roles["fence"])
	assert.Equal(t, "out", got.Output.Dir)
	assert.True(t, got.Output.AltText)
	assert.Equal(t, []string{"vendor/**"}, got.Ignore)
	assert.Zero(t, got.Jobs)
}

func TestFromYAMLInvalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("layout: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("minimal template parses", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, 64, cfg.Layout.MaxPasses)
		assert.Equal(t, ".xml", cfg.Output.Extension)
	})

	t.Run("full template has header and defaults", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), config.DefaultTemplateHeader()))

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultMaxDepth, cfg.Layout.MaxDepth)
	})
}
