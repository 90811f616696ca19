// Package pretty renders diagnostics, diffs, summaries and layout passes
// for the terminal.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Severity styles
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Diagnostic components
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Cause      lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableSeparator lipgloss.Style

	// Explain styles
	PassTitle lipgloss.Style
	Flag      lipgloss.Style
	Range     lipgloss.Style
	Synthetic lipgloss.Style
	Branch    lipgloss.Style

	// Help styles
	HelpCommand lipgloss.Style
	HelpHeading lipgloss.Style
	HelpName    lipgloss.Style
	HelpFlag    lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// ANSI 16-color palette indices used by the styles.
const (
	colorGray    = "8"
	colorSilver  = "7"
	colorRed     = "9"
	colorGreen   = "10"
	colorYellow  = "11"
	colorBlue    = "12"
	colorMagenta = "13"
	colorCyan    = "14"
)

// NewStyles creates the output styles. Without color every style renders
// its text unchanged.
func NewStyles(colorEnabled bool) *Styles {
	style := func(color string, bold bool) lipgloss.Style {
		st := lipgloss.NewStyle()
		if !colorEnabled {
			return st
		}
		if color != "" {
			st = st.Foreground(lipgloss.Color(color))
		}
		return st.Bold(bold)
	}

	return &Styles{
		Error:   style(colorRed, true),
		Warning: style(colorYellow, true),

		FilePath:   style("", true),
		Location:   style(colorGray, false),
		Cause:      style(colorGray, false),
		Message:    style("", false),
		SourceLine: style(colorSilver, false),
		Caret:      style(colorRed, false),

		DiffHeader:  style("", true),
		DiffHunk:    style(colorCyan, false),
		DiffAdd:     style(colorGreen, false),
		DiffRemove:  style(colorRed, false),
		DiffContext: style(colorGray, false),

		SummaryTitle: style("", true),
		SummaryValue: style("", false),
		Success:      style(colorGreen, true),
		Failure:      style(colorRed, true),

		TableHeader:    style(colorSilver, true),
		TableErrorRow:  style(colorRed, false),
		TableWarnRow:   style(colorYellow, false),
		TableSeparator: style(colorGray, false),

		PassTitle: style(colorCyan, true),
		Flag:      style(colorMagenta, false),
		Range:     style(colorBlue, false),
		Synthetic: style(colorGreen, false),
		Branch:    style(colorGray, false),

		HelpCommand: style(colorCyan, true),
		HelpHeading: style(colorYellow, true),
		HelpName:    style(colorGreen, false),
		HelpFlag:    style(colorBlue, false),

		Dim:  style(colorGray, false),
		Bold: style("", true),
	}
}

// IsColorEnabled resolves a --color mode for writer. Any mode other than
// "always" or "never" means auto: color only on a terminal, and never when
// NO_COLOR is set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
