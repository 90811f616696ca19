package config

import (
	"bytes"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default instead of a commented
	// minimal file.
	Full bool
}

// GenerateTemplate creates a configuration file for `gotexml init`.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if !opts.Full {
		return []byte(minimalTemplate), nil
	}

	body, err := NewConfig().ToYAML()
	if err != nil {
		return nil, fmt.Errorf("generate template: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")
	buf.Write(body)
	buf.WriteString(flagsHelp)
	return buf.Bytes(), nil
}

// DefaultTemplateHeader returns the header of generated configuration files.
func DefaultTemplateHeader() string {
	return `# gotexml configuration
# See: https://github.com/yaklabco/gotexml`
}

const minimalTemplate = `# gotexml configuration
# See: https://github.com/yaklabco/gotexml

layout:
  # Upper bound on rewrite passes per formula list.
  max_passes: 64
  # Upper bound on brace and \left nesting in a formula.
  max_depth: 128

output:
  # Directory for translated files; empty writes next to each source.
  # dir: build/xml
  extension: .xml
  # Render every formula in display style.
  display: false
  # Add the TeX form of each formula as alttext.
  alttext: false

# Force the source kind instead of detecting it: tex or markdown.
# kind: tex

# File patterns to skip (glob patterns)
# ignore:
#   - "vendor/**"
#   - "build/**"
` + flagsHelp

const flagsHelp = `
# Layout flag overrides. Values: left, middle, right, big, binary,
# relation, dummy, none.
# flags:
#   roles:
#     fence: none
#   symbols:
#     "\\vert": middle
#     "\\prod": big
`
