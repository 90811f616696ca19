package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gotexml/internal/ui/pretty"
	"github.com/yaklabco/gotexml/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to translate."))
		}
		return 0, nil
	}

	var total int
	if r.opts.GroupByFile {
		total = r.reportGrouped(result)
	} else {
		total = r.reportFlat(result)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportGrouped writes diagnostics grouped by file.
func (r *TextReporter) reportGrouped(result *runner.Result) int {
	var total int

	for _, file := range result.Files {
		if file.Error != nil {
			r.fileError(file)
			continue
		}
		if len(file.Diagnostics) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.Path, len(file.Diagnostics)))
		for i := range file.Diagnostics {
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&file.Diagnostics[i], r.opts.ShowContext))
			total++
		}

		// Blank line between files
		fmt.Fprintln(r.bw)
	}

	return total
}

// reportFlat writes diagnostics without grouping.
func (r *TextReporter) reportFlat(result *runner.Result) int {
	var total int

	for _, file := range result.Files {
		if file.Error != nil {
			r.fileError(file)
			continue
		}
		for i := range file.Diagnostics {
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&file.Diagnostics[i], r.opts.ShowContext))
			total++
		}
	}

	return total
}

func (r *TextReporter) fileError(file runner.FileOutcome) {
	fmt.Fprintf(r.bw, "%s: %s\n",
		r.styles.FilePath.Render(file.Path),
		r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
	)
}
