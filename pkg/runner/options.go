// Package runner provides multi-file translation orchestration.
package runner

import (
	"github.com/yaklabco/gotexml/pkg/document"
	"github.com/yaklabco/gotexml/pkg/layout"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// picked up when walking directories. Defaults to DefaultExtensions().
	// Files named explicitly in Paths are processed whatever their extension.
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Kind forces the source kind. Empty detects it per file.
	Kind document.Kind

	// Translate configures formula translation.
	Translate document.Options

	// Write configures the XML output.
	Write document.WriteOptions

	// OutDir receives the translations; relative paths are resolved
	// against WorkingDir. Empty writes each translation next to its source.
	OutDir string

	// OutExt is the extension of translation files. Defaults to ".xml".
	OutExt string

	// Stdout keeps the XML in FileOutcome.XML instead of writing files.
	Stdout bool

	// DryRun compares each translation with its existing output file and
	// records the difference in FileOutcome.Diff instead of writing.
	DryRun bool

	// Trace, if set, receives the layout passes of every formula. It is
	// called from worker goroutines.
	Trace func(path string, f *document.Formula, pass layout.PassTrace)
}

// DefaultExtensions returns the extensions picked up when walking
// directories.
func DefaultExtensions() []string {
	return []string{".tex", ".ltx", ".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) outExt() string {
	if o.OutExt == "" {
		return ".xml"
	}
	return o.OutExt
}
