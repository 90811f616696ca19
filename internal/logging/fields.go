// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Configuration fields.
	FieldKind      = "kind"
	FieldJobs      = "jobs"
	FieldMaxPasses = "max_passes"
	FieldOutDir    = "out_dir"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesFailed     = "files_failed"
	FieldFormulas        = "formulas"
	FieldFormulasFailed  = "formulas_failed"
	FieldGroups          = "groups"
	FieldDuration        = "duration"

	// Layout trace fields.
	FieldFormula = "formula"
	FieldLine    = "line"
	FieldColumn  = "column"
	FieldPass    = "pass"
	FieldFlags   = "flags"
	FieldRanges  = "ranges"
	FieldFinal   = "final"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
