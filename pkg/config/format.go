package config

import "fmt"

// ValidFormats lists the accepted report formats.
func ValidFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatSummary}
}

// IsValid reports whether f is a known report format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}

// ParseFormat converts a string to an OutputFormat. An empty string yields
// FormatText.
func ParseFormat(s string) (OutputFormat, error) {
	if s == "" {
		return FormatText, nil
	}
	f := OutputFormat(s)
	if !f.IsValid() {
		return "", fmt.Errorf("unknown format %q (valid: text, json, summary)", s)
	}
	return f, nil
}
