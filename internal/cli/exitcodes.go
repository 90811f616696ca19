package cli

import (
	"context"
	"errors"
	"io/fs"

	"github.com/yaklabco/gotexml/pkg/document"
	"github.com/yaklabco/gotexml/pkg/fsutil"
	"github.com/yaklabco/gotexml/pkg/layout"
	"github.com/yaklabco/gotexml/pkg/runner"
)

// Exit codes for gotexml.
const (
	// ExitSuccess indicates every formula was translated.
	ExitSuccess = 0

	// ExitFormulaErrors indicates the run completed but some formulas or
	// sources were rejected.
	ExitFormulaErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error, such as a layout
	// invariant violation.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors that only carry an exit status.
var (
	// ErrFormulaErrors is returned when formulas failed to translate.
	ErrFormulaErrors = errors.New("some formulas could not be translated")

	// ErrUsage marks invalid command-line usage.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration errors.
	ErrConfig = errors.New("invalid configuration")
)

// ExitCodeFromResult determines the exit code of a completed run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}

	switch {
	case result.HasLayoutFailures():
		return ExitInternalError
	case result.Stats.FilesErrored > 0:
		if isIOError(result.Err()) {
			return ExitIOError
		}
		return ExitFormulaErrors
	case result.Stats.DiagnosticsBySeverity[document.SeverityError] > 0:
		return ExitFormulaErrors
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command to an exit status.
func ExitCode(err error) int {
	var exitErr *exitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.code
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, layout.ErrLayoutInvariant):
		return ExitInternalError
	case isIOError(err):
		return ExitIOError
	case errors.Is(err, context.Canceled):
		return ExitInternalError
	default:
		return ExitFormulaErrors
	}
}

// IsSilent reports whether err only signals an exit status and needs no
// log record.
func IsSilent(err error) bool {
	var exitErr *exitError
	return errors.Is(err, ErrFormulaErrors) || errors.As(err, &exitErr)
}

// exitError carries the exit status of a run whose outcome was already
// reported.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return "translation failed"
}

func isIOError(err error) bool {
	if err == nil {
		return false
	}
	var pathErr *fs.PathError
	return errors.Is(err, fsutil.ErrNotFound) ||
		errors.Is(err, fsutil.ErrPermissionDenied) ||
		errors.Is(err, fsutil.ErrIsDirectory) ||
		errors.As(err, &pathErr)
}
