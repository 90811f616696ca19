package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gotexml/internal/ui/pretty"
	"github.com/yaklabco/gotexml/pkg/analysis"
)

// maxPathWidth is the widest file path shown before it is cut from the left.
const maxPathWidth = 48

// column describes one column of a summary table.
type column struct {
	title string
	width int
	right bool
}

var (
	causeColumns = []column{
		{title: "Cause", width: 20},
		{title: "Issues", width: 9, right: true},
		{title: "Files", width: 9, right: true},
	}
	fileColumns = []column{
		{title: "File", width: maxPathWidth + 2},
		{title: "Formulas", width: 9, right: true},
		{title: "Issues", width: 9, right: true},
		{title: "Errors", width: 9, right: true},
		{title: "Warnings", width: 9, right: true},
	}
)

// cell pads s to the column width. Padding happens before styling so that
// escape sequences do not count towards the width.
func (c column) cell(s string) string {
	if gap := c.width - len([]rune(s)); gap > 0 {
		if c.right {
			return strings.Repeat(" ", gap) + s
		}
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// SummaryRenderer formats results as a cause table, a file table and a
// total line.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Issues == 0 && report.Totals.FilesErrored == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		r.renderTotals(report.Totals)
		return nil
	}

	tables := []func(){
		func() { r.renderCauses(report.ByCause) },
		func() { r.renderFiles(report.ByFile) },
	}
	if r.opts.FilesFirst {
		tables[0], tables[1] = tables[1], tables[0]
	}
	for _, render := range tables {
		render()
		fmt.Fprintln(r.out)
	}
	r.renderTotals(report.Totals)
	return nil
}

// table writes a titled table header and returns a function writing one
// row. The first cell of a row is rendered with the given style.
func (r *SummaryRenderer) table(title string, cols []column) func(first lipgloss.Style, cells ...string) {
	width := len(cols) - 1
	for _, c := range cols {
		width += c.width
	}
	rule := r.styles.TableSeparator.Render(strings.Repeat("─", width))

	heads := make([]string, len(cols))
	for i, c := range cols {
		heads[i] = r.styles.TableHeader.Render(c.cell(c.title))
	}
	fmt.Fprintln(r.out, r.styles.Bold.Render(title))
	fmt.Fprintln(r.out, rule)
	fmt.Fprintln(r.out, strings.Join(heads, " "))
	fmt.Fprintln(r.out, rule)

	return func(first lipgloss.Style, cells ...string) {
		row := make([]string, len(cells))
		for i, s := range cells {
			row[i] = cols[min(i, len(cols)-1)].cell(s)
		}
		row[0] = first.Render(row[0])
		fmt.Fprintln(r.out, strings.Join(row, " "))
	}
}

func (r *SummaryRenderer) renderCauses(causes []analysis.CauseAnalysis) {
	if len(causes) == 0 {
		return
	}
	row := r.table("Causes Summary", causeColumns)
	for _, c := range causes {
		row(r.styles.TableErrorRow, c.Cause, strconv.Itoa(c.Issues), strconv.Itoa(len(c.Files)))
	}
}

func (r *SummaryRenderer) renderFiles(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}
	row := r.table("Files Summary", fileColumns)
	for _, f := range files {
		path := f.Path
		if runes := []rune(path); len(runes) > maxPathWidth {
			path = "…" + string(runes[len(runes)-maxPathWidth+1:])
		}

		style := r.styles.SummaryValue
		switch {
		case f.Errors > 0 || f.Error != "":
			style = r.styles.TableErrorRow
		case f.Warnings > 0:
			style = r.styles.TableWarnRow
		}

		if f.Error != "" {
			fmt.Fprintln(r.out, style.Render(fileColumns[0].cell(path))+" "+r.styles.Error.Render(f.Error))
			continue
		}
		row(style, path, strconv.Itoa(f.Formulas), strconv.Itoa(f.Issues),
			strconv.Itoa(f.Errors), strconv.Itoa(f.Warnings))
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	var b strings.Builder
	b.WriteString(plural(totals.Issues, "issue"))

	var severities []string
	if totals.Errors > 0 {
		severities = append(severities, r.styles.Error.Render(fmt.Sprintf("%d errors", totals.Errors)))
	}
	if totals.Warnings > 0 {
		severities = append(severities, r.styles.Warning.Render(fmt.Sprintf("%d warnings", totals.Warnings)))
	}
	if len(severities) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(severities, ", "))
	}

	fmt.Fprintf(&b, " in %s (%d formulas, %d groups, %d passes)",
		plural(totals.Files, "file"), totals.Formulas, totals.Groups, totals.Passes)
	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+b.String())
}

func plural(n int, word string) string {
	if n != 1 {
		word += "s"
	}
	return strconv.Itoa(n) + " " + word
}
