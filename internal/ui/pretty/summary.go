package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gotexml/pkg/document"
	"github.com/yaklabco/gotexml/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 issues (3 errors) in 2 files, 41 formulas, 12 groups, 3 written".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	work := fmt.Sprintf("%d formulas, %d groups", stats.Formulas, stats.Groups)
	if stats.FilesWritten > 0 {
		work += fmt.Sprintf(", %d written", stats.FilesWritten)
	}

	if stats.DiagnosticsTotal == 0 {
		return s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d files translated, %s)", stats.FilesProcessed, work)) + "\n"
	}

	issueWord := "issues"
	if stats.DiagnosticsTotal == 1 {
		issueWord = "issue"
	}

	var severityParts []string
	if errors := stats.DiagnosticsBySeverity[document.SeverityError]; errors > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d errors", errors)))
	}
	if warnings := stats.DiagnosticsBySeverity[document.SeverityWarning]; warnings > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d warnings", warnings)))
	}

	var parts []string
	if len(severityParts) > 0 {
		parts = append(parts, fmt.Sprintf("%d %s (%s)", stats.DiagnosticsTotal, issueWord, strings.Join(severityParts, ", ")))
	} else {
		parts = append(parts, fmt.Sprintf("%d %s", stats.DiagnosticsTotal, issueWord))
	}

	fileWord := wordFiles
	if stats.FilesWithIssues == 1 {
		fileWord = wordFile
	}
	parts[0] += fmt.Sprintf(" in %d %s", stats.FilesWithIssues, fileWord)
	parts = append(parts, work)

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files translated:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:     " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Formulas:          " +
		s.SummaryValue.Render(strconv.Itoa(stats.Formulas)) + "\n")
	if stats.FormulasFailed > 0 {
		builder.WriteString("    Failed:          " +
			s.Error.Render(strconv.Itoa(stats.FormulasFailed)) + "\n")
	}
	builder.WriteString("  Groups inserted:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.Groups)) + "\n")
	builder.WriteString("  Layout passes:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.Passes)) + "\n")

	builder.WriteString("\n")

	builder.WriteString("  Total issues:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)) + "\n")
	if errors := stats.DiagnosticsBySeverity[document.SeverityError]; errors > 0 {
		builder.WriteString("    Errors:          " +
			s.Error.Render(strconv.Itoa(errors)) + "\n")
	}
	if warnings := stats.DiagnosticsBySeverity[document.SeverityWarning]; warnings > 0 {
		builder.WriteString("    Warnings:        " +
			s.Warning.Render(strconv.Itoa(warnings)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0 || stats.DiagnosticsBySeverity[document.SeverityError] > 0:
		builder.WriteString(s.Failure.Render("Translation finished with errors"))
	case stats.DiagnosticsBySeverity[document.SeverityWarning] > 0:
		builder.WriteString(s.Warning.Render("Translation finished with warnings"))
	default:
		builder.WriteString(s.Success.Render("Translation succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
