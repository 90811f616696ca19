// Package analysis turns a translation run into the views the reporters
// render: a flat diagnostic list, per-file and per-cause aggregates, and
// totals.
package analysis

import (
	"cmp"
	"slices"
	"time"

	"github.com/yaklabco/gotexml/pkg/document"
	"github.com/yaklabco/gotexml/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through the outcomes to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if result == nil {
		return report
	}

	causes := make(map[document.Cause]*CauseAnalysis)
	causeFiles := make(map[document.Cause]map[string]bool)

	for _, file := range result.Files {
		report.Totals.Files++
		fa := FileAnalysis{Path: file.Path, Kind: string(file.Kind), Output: file.Output}

		if file.Error != nil {
			report.Totals.FilesErrored++
			fa.Error = file.Error.Error()
		}
		if file.Written {
			report.Totals.FilesWritten++
		}
		if tr := file.Translation; tr != nil {
			s := tr.Stats()
			fa.Formulas = s.Formulas
			fa.Groups = s.Groups
			report.Totals.Formulas += s.Formulas
			report.Totals.FormulasFailed += s.Failed
			report.Totals.Groups += s.Groups
			report.Totals.Passes += s.Passes
		}
		if len(file.Diagnostics) > 0 {
			report.Totals.FilesWithIssues++
		}

		for _, d := range file.Diagnostics {
			report.Totals.Issues++
			fa.Issues++
			switch d.Severity {
			case document.SeverityError:
				report.Totals.Errors++
				fa.Errors++
			case document.SeverityWarning:
				report.Totals.Warnings++
				fa.Warnings++
			}

			ca, ok := causes[d.Cause]
			if !ok {
				ca = &CauseAnalysis{Cause: string(d.Cause)}
				causes[d.Cause] = ca
				causeFiles[d.Cause] = make(map[string]bool)
			}
			ca.Issues++
			causeFiles[d.Cause][file.Path] = true

			if opts.IncludeDiagnostics {
				report.Diagnostics = append(report.Diagnostics, DiagnosticEntry{
					FilePath: d.Path,
					Line:     d.Line,
					Column:   d.Column,
					Severity: string(d.Severity),
					Cause:    string(d.Cause),
					Message:  d.Message,
					Formula:  d.Formula,
				})
			}
		}

		if opts.IncludeByFile && (fa.Issues > 0 || fa.Error != "") {
			report.ByFile = append(report.ByFile, fa)
		}
	}

	if opts.IncludeByCause {
		for cause, ca := range causes {
			for f := range causeFiles[cause] {
				ca.Files = append(ca.Files, f)
			}
			slices.Sort(ca.Files)
			report.ByCause = append(report.ByCause, *ca)
		}
		sortCauses(report.ByCause, opts.SortBy, opts.SortDesc)
	}
	sortFiles(report.ByFile, opts.SortBy, opts.SortDesc)

	return report
}

func sortCauses(causes []CauseAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(causes, func(left, right CauseAnalysis) int {
		if sortBy != SortByAlpha {
			result := cmp.Compare(left.Issues, right.Issues)
			if desc {
				result = -result
			}
			if result != 0 {
				return result
			}
		}
		return cmp.Compare(left.Cause, right.Cause)
	})
}

func sortFiles(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortStableFunc(files, func(left, right FileAnalysis) int {
		switch sortBy {
		case SortByAlpha:
			return cmp.Compare(left.Path, right.Path)
		case SortBySeverity:
			// Errors first, then warnings (always descending by severity)
			result := cmp.Compare(right.Errors, left.Errors)
			if result == 0 {
				result = cmp.Compare(right.Warnings, left.Warnings)
			}
			if result == 0 {
				result = cmp.Compare(right.Issues, left.Issues)
			}
			return result
		default: // SortByCount
			result := cmp.Compare(left.Issues, right.Issues)
			if desc {
				result = -result
			}
			return result
		}
	})
}
