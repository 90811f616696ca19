package document

import (
	"fmt"
)

// Severity indicates the importance of a diagnostic.
type Severity string

// Severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Cause tells which stage rejected a formula or a file.
type Cause string

// Causes.
const (
	// CauseExtract: the source could not be split into formulas.
	CauseExtract Cause = "extract"
	// CauseParse: the formula source is malformed.
	CauseParse Cause = "parse"
	// CauseLayout: the layout engine detected an internal inconsistency.
	CauseLayout Cause = "layout"
	// CauseInternal: any other failure.
	CauseInternal Cause = "internal"
)

// Diagnostic describes a problem found while translating a document.
type Diagnostic struct {
	Path     string
	Line     int
	Column   int
	Severity Severity
	Cause    Cause
	Message  string

	// Formula is the source of the offending formula, if any.
	Formula string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.Path, d.Line, d.Column, d.Severity, d.Message)
}

// ExtractDiagnostic converts an extraction error into a diagnostic.
func ExtractDiagnostic(err *ExtractError) Diagnostic {
	return Diagnostic{
		Path:     err.Path,
		Line:     err.Line,
		Column:   err.Column,
		Severity: SeverityError,
		Cause:    CauseExtract,
		Message:  err.Msg,
	}
}
