package analysis

import "time"

// Report contains pre-computed views of a translation run.
// Computed once by Analyze, used by all renderers.
type Report struct {
	// Diagnostics is the flat list for detailed output.
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`

	// ByFile groups diagnostics by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByCause groups diagnostics by the stage that raised them.
	ByCause []CauseAnalysis `json:"byCause,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// DiagnosticEntry represents a single diagnostic in the report.
type DiagnosticEntry struct {
	FilePath string `json:"filePath"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Cause    string `json:"cause"`
	Message  string `json:"message"`
	Formula  string `json:"formula,omitempty"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesProcessed"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	FilesWritten    int `json:"filesWritten"`
	Formulas        int `json:"formulas"`
	FormulasFailed  int `json:"formulasFailed"`
	Groups          int `json:"groups"`
	Passes          int `json:"passes"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are any errors.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path     string `json:"path"`
	Kind     string `json:"kind,omitempty"`
	Output   string `json:"output,omitempty"`
	Formulas int    `json:"formulas"`
	Groups   int    `json:"groups"`
	Issues   int    `json:"issues"`
	Errors   int    `json:"errors"`
	Warnings int    `json:"warnings"`
	Error    string `json:"error,omitempty"`
}

// CauseAnalysis contains aggregated data for one diagnostic cause.
type CauseAnalysis struct {
	Cause  string   `json:"cause"`
	Issues int      `json:"issues"`
	Files  []string `json:"files,omitempty"`
}
