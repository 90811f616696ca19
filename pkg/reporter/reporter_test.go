package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotexml/pkg/document"
	"github.com/yaklabco/gotexml/pkg/reporter"
	"github.com/yaklabco/gotexml/pkg/runner"
	"github.com/yaklabco/gotexml/pkg/xmldiff"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, reporter.FormatText.IsValid())
	assert.True(t, reporter.FormatJSON.IsValid())
	assert.True(t, reporter.FormatSummary.IsValid())
	assert.False(t, reporter.Format("").IsValid())
	assert.False(t, reporter.Format("diff").IsValid())
}

func TestNew_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func sampleResult() *runner.Result {
	diags := []document.Diagnostic{
		{
			Path:     "paper.tex",
			Line:     4,
			Column:   9,
			Severity: document.SeverityError,
			Cause:    document.CauseParse,
			Message:  "unbalanced braces: missing }",
			Formula:  `\frac{a`,
		},
		{
			Path:     "paper.tex",
			Line:     9,
			Column:   2,
			Severity: document.SeverityError,
			Cause:    document.CauseLayout,
			Message:  "layout invariant violated",
			Formula:  `\int ((a))`,
		},
	}
	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "clean.tex", Kind: document.KindTeX, Written: true, Output: "clean.xml"},
			{Path: "paper.tex", Kind: document.KindTeX, Diagnostics: diags},
			{Path: "broken.md", Error: errors.New("permission denied")},
		},
		Stats: runner.Stats{
			FilesDiscovered:       3,
			FilesProcessed:        3,
			FilesErrored:          1,
			FilesWritten:          1,
			FilesWithIssues:       1,
			Formulas:              6,
			FormulasFailed:        2,
			Groups:                2,
			DiagnosticsTotal:      2,
			DiagnosticsBySeverity: map[document.Severity]int{document.SeverityError: 2},
		},
	}
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{
		Writer:      &buf,
		Format:      reporter.FormatText,
		Color:       "never",
		ShowContext: true,
		ShowSummary: true,
		GroupByFile: true,
	})
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := buf.String()
	assert.Contains(t, out, "paper.tex (2 issues)\n")
	assert.Contains(t, out, "  paper.tex:4:9  error  unbalanced braces: missing }  (parse)\n")
	assert.Contains(t, out, "        \\frac{a\n")
	assert.Contains(t, out, "(layout)")
	assert.Contains(t, out, "broken.md: error: permission denied\n")
	assert.NotContains(t, out, "clean.tex")
	assert.True(t, strings.HasSuffix(out, "2 issues (2 errors) in 1 file, 6 formulas, 2 groups, 1 written\n"))
}

func TestTextReporter_Flat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := buf.String()
	assert.NotContains(t, out, "(2 issues)")
	assert.NotContains(t, out, `\frac{a`+"\n")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestTextReporter_NoFiles(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, "No files to translate.\n", buf.String())
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	result := sampleResult()
	result.Files[0].Diff = xmldiff.Compute("clean.xml", []byte("<a/>\n"), []byte("<b/>\n"))
	result.Stats.FilesChanged = 1

	var buf bytes.Buffer
	rep := reporter.NewDiffReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
	})

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := buf.String()
	assert.Contains(t, out, "diff --git a/clean.xml b/clean.xml\n")
	assert.Contains(t, out, "-<a/>\n+<b/>\n")
	assert.Contains(t, out, "(parse)")
	assert.Contains(t, out, "broken.md: error: permission denied\n")
	assert.True(t, strings.HasSuffix(out, "1 file would change, 1 insertion(+), 1 deletion(-)\n"))
}

func TestDiffReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewDiffReporter(reporter.Options{Writer: &buf, Color: "never"})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, buf.String())
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatJSON, Compact: true})
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "compact output is a single line")

	var decoded struct {
		Version     string `json:"version"`
		Diagnostics []struct {
			FilePath string `json:"filePath"`
			Line     int    `json:"line"`
			Cause    string `json:"cause"`
			Formula  string `json:"formula"`
		} `json:"diagnostics"`
		ByFile []struct {
			Path  string `json:"path"`
			Error string `json:"error"`
		} `json:"byFile"`
		Summary struct {
			Files          int `json:"filesProcessed"`
			FilesErrored   int `json:"filesErrored"`
			FormulasFailed int `json:"formulasFailed"`
			Issues         int `json:"totalIssues"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "1.0.0", decoded.Version)
	require.Len(t, decoded.Diagnostics, 2)
	assert.Equal(t, "paper.tex", decoded.Diagnostics[0].FilePath)
	assert.Equal(t, 4, decoded.Diagnostics[0].Line)
	assert.Equal(t, "parse", decoded.Diagnostics[0].Cause)
	assert.Equal(t, `\frac{a`, decoded.Diagnostics[0].Formula)
	assert.Len(t, decoded.ByFile, 2)
	assert.Equal(t, 3, decoded.Summary.Files)
	assert.Equal(t, 1, decoded.Summary.FilesErrored)
	assert.Equal(t, 2, decoded.Summary.Issues)
}

func TestJSONReporter_EmptyDiagnosticsIsArray(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatJSON})
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, buf.String(), `"diagnostics": []`)
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatSummary, Color: "never"})
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := buf.String()
	assert.Contains(t, out, "Causes Summary")
	assert.Contains(t, out, "Files Summary")
	assert.Contains(t, out, "permission denied")
	assert.Contains(t, out, "Total: 2 issues (2 errors) in 3 files")
}
