package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/yaklabco/gotexml/pkg/document"
	"github.com/yaklabco/gotexml/pkg/fsutil"
	"github.com/yaklabco/gotexml/pkg/langdetect"
	"github.com/yaklabco/gotexml/pkg/layout"
	"github.com/yaklabco/gotexml/pkg/xmldiff"
)

// ErrUnknownKind is returned for a file that is neither LaTeX nor Markdown.
var ErrUnknownKind = errors.New("cannot tell whether the file is LaTeX or Markdown")

// ErrOutputIsSource is returned when a translation would replace its source.
var ErrOutputIsSource = errors.New("output path is the source file")

// Runner translates many files concurrently.
type Runner struct{}

// New creates a new Runner.
func New() *Runner {
	return &Runner{}
}

// Run discovers files under opts.Paths and translates them concurrently.
// Outcomes are returned in discovery order whatever order the workers
// finish in. A cancelled context stops the feed; the outcomes gathered so
// far are returned with the error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan int)
	outcomes := make([]*FileOutcome, len(files))

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workCh {
				if ctx.Err() != nil {
					return
				}
				outcome := r.processFile(ctx, workDir, files[idx], opts)
				outcomes[idx] = &outcome
			}
		}()
	}

feed:
	for idx := range files {
		select {
		case <-ctx.Done():
			break feed
		case workCh <- idx:
		}
	}
	close(workCh)
	wg.Wait()

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

// processFile reads, detects, extracts, translates and writes one file.
func (r *Runner) processFile(ctx context.Context, workDir, path string, opts Options) FileOutcome {
	display := displayPath(workDir, path)
	outcome := FileOutcome{Path: display}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	kind := opts.Kind
	if kind == "" {
		detected, ok := langdetect.DetectSource(path, content)
		if !ok {
			outcome.Error = fmt.Errorf("%s: %w", display, ErrUnknownKind)
			return outcome
		}
		kind = detected
	}
	outcome.Kind = kind

	doc, err := document.Extract(display, kind, content)
	if err != nil {
		var xerr *document.ExtractError
		if errors.As(err, &xerr) {
			outcome.Diagnostics = append(outcome.Diagnostics, document.ExtractDiagnostic(xerr))
			return outcome
		}
		outcome.Error = err
		return outcome
	}

	topts := opts.Translate
	if opts.Trace != nil {
		topts.Trace = func(f *document.Formula, pt layout.PassTrace) { opts.Trace(display, f, pt) }
	}
	tr, err := document.NewTranslator(topts).Translate(ctx, doc)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Translation = tr
	outcome.Diagnostics = append(outcome.Diagnostics, tr.Diagnostics...)

	var buf bytes.Buffer
	if err := document.WriteXML(&buf, tr, opts.Write); err != nil {
		outcome.Error = err
		return outcome
	}

	if opts.Stdout {
		outcome.XML = buf.Bytes()
		return outcome
	}

	outDir := opts.OutDir
	if outDir != "" && !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}
	src := path
	if outDir != "" && display != path {
		src = display
	}
	outcome.Output = fsutil.OutputPath(src, outDir, opts.outExt())
	if filepath.Clean(outcome.Output) == filepath.Clean(path) {
		outcome.Error = fmt.Errorf("%s: %w", display, ErrOutputIsSource)
		outcome.Output = ""
		return outcome
	}
	if opts.DryRun {
		old, _, err := fsutil.ReadFile(ctx, outcome.Output)
		if err != nil && !errors.Is(err, fsutil.ErrNotFound) {
			outcome.Error = err
			return outcome
		}
		outcome.Diff = xmldiff.Compute(displayPath(workDir, outcome.Output), old, buf.Bytes())
		return outcome
	}
	outcome.Written, err = fsutil.WriteIfChanged(ctx, outcome.Output, buf.Bytes(), 0)
	if err != nil {
		outcome.Error = err
	}
	return outcome
}

// displayPath returns path relative to workDir when it lies inside it.
func displayPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
