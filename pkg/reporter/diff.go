package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gotexml/internal/ui/pretty"
	"github.com/yaklabco/gotexml/pkg/runner"
)

// DiffReporter writes the pending output changes of a dry run as unified
// diffs. Diagnostics are listed before the diff of their file.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var total, inserted, deleted int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		for i := range file.Diagnostics {
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&file.Diagnostics[i], r.opts.ShowContext))
			total++
		}

		if !file.Diff.HasChanges() {
			continue
		}
		inserted += file.Diff.Inserted
		deleted += file.Diff.Deleted
		fmt.Fprint(r.bw, r.styles.FormatDiff(file.Diff))
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatDiffSummary(result.Stats.FilesChanged, inserted, deleted))
	}
	return total, nil
}
