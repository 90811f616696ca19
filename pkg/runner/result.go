package runner

import (
	"errors"

	"github.com/yaklabco/gotexml/pkg/document"
	"github.com/yaklabco/gotexml/pkg/xmldiff"
)

// FileOutcome is the result of translating one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Kind is the source kind the file was read as.
	Kind document.Kind

	// Translation is nil when the file could not be extracted.
	Translation *document.Translation

	// Diagnostics lists the problems found in the file.
	Diagnostics []document.Diagnostic

	// Output is the path of the written translation, empty in stdout mode
	// or when nothing was written.
	Output string

	// Written is false when the output already held the same XML.
	Written bool

	// XML holds the translation in stdout mode.
	XML []byte

	// Diff is the pending change to Output in dry-run mode, nil when the
	// output is up to date.
	Diff *xmldiff.Diff

	// Error is set if the file could not be read, detected or written.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files translated.
	FilesProcessed int

	// FilesErrored is the number of files that could not be processed.
	FilesErrored int

	// FilesWritten is the number of output files created or changed.
	FilesWritten int

	// FilesChanged is the number of output files a dry run would change.
	FilesChanged int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	Formulas       int
	FormulasFailed int

	// Groups is the number of groups the layout engine inserted.
	Groups int

	// Passes is the number of layout passes over all formulas.
	Passes int

	DiagnosticsTotal int

	// DiagnosticsBySeverity maps severity levels to counts.
	DiagnosticsBySeverity map[document.Severity]int

	// DiagnosticsByCause maps causes to counts.
	DiagnosticsByCause map[document.Cause]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, in discovery order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any diagnostic with error severity occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[document.SeverityError] > 0
}

// HasLayoutFailures reports whether the layout engine rejected a formula.
func (r *Result) HasLayoutFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsByCause[document.CauseLayout] > 0
}

// Err joins the errors of the files that could not be processed.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range r.Files {
		if f.Error != nil {
			errs = append(errs, f.Error)
		}
	}
	return errors.Join(errs...)
}

func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[document.Severity]int),
		DiagnosticsByCause:    make(map[document.Cause]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
	} else {
		r.Stats.FilesProcessed++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
	if outcome.Diff.HasChanges() {
		r.Stats.FilesChanged++
	}

	if tr := outcome.Translation; tr != nil {
		s := tr.Stats()
		r.Stats.Formulas += s.Formulas
		r.Stats.FormulasFailed += s.Failed
		r.Stats.Groups += s.Groups
		r.Stats.Passes += s.Passes
	}

	if len(outcome.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
	}
	for _, d := range outcome.Diagnostics {
		r.Stats.DiagnosticsTotal++
		r.Stats.DiagnosticsBySeverity[d.Severity]++
		r.Stats.DiagnosticsByCause[d.Cause]++
	}
}
