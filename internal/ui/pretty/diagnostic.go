package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gotexml/pkg/document"
)

// FormatDiagnostic formats a single diagnostic for terminal output.
// With showContext the formula source is printed under the message.
func (s *Styles) FormatDiagnostic(diag *document.Diagnostic, showContext bool) string {
	var builder strings.Builder

	// Location: path:line:col
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.Path),
		diag.Line,
		diag.Column,
	)

	// Main line: location  severity  message  (cause)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.Cause.Render("("+string(diag.Cause)+")"),
	))

	if showContext && diag.Formula != "" {
		builder.WriteString(s.FormatSourceContext(firstLine(diag.Formula), 0))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev document.Severity) string {
	switch sev {
	case document.SeverityError:
		return s.Error.Render("error")
	case document.SeverityWarning:
		return s.Warning.Render("warning")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker.
// A column of zero omits the caret.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with diagnostic output
	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

func firstLine(src string) string {
	line, rest, found := strings.Cut(src, "\n")
	if found && strings.TrimSpace(rest) != "" {
		return line + " …"
	}
	return line
}
