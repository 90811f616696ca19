package analysis_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotexml/pkg/analysis"
	"github.com/yaklabco/gotexml/pkg/document"
	"github.com/yaklabco/gotexml/pkg/runner"
)

func diag(path string, cause document.Cause) document.Diagnostic {
	return document.Diagnostic{
		Path:     path,
		Line:     1,
		Column:   2,
		Severity: document.SeverityError,
		Cause:    cause,
		Message:  "boom",
	}
}

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "a.tex",
				Diagnostics: []document.Diagnostic{
					diag("a.tex", document.CauseParse),
					diag("a.tex", document.CauseParse),
					diag("a.tex", document.CauseLayout),
				},
				Written: true,
			},
			{
				Path:        "b.md",
				Diagnostics: []document.Diagnostic{diag("b.md", document.CauseParse)},
			},
			{Path: "c.tex"},
			{Path: "d.txt", Error: errors.New("unreadable")},
		},
	}
}

func TestAnalyze_EmptyResult(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(&runner.Result{}, analysis.DefaultOptions())

	require.NotNil(t, report)
	assert.Equal(t, analysis.ReportVersion, report.Version)
	assert.Zero(t, report.Totals.Issues)
	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByCause)
}

func TestAnalyze_Totals(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.DefaultOptions())

	totals := report.Totals
	assert.Equal(t, 4, totals.Files)
	assert.Equal(t, 2, totals.FilesWithIssues)
	assert.Equal(t, 1, totals.FilesErrored)
	assert.Equal(t, 1, totals.FilesWritten)
	assert.Equal(t, 4, totals.Issues)
	assert.Equal(t, 4, totals.Errors)
	assert.True(t, totals.HasErrors())
	assert.Len(t, report.Diagnostics, 4)
}

func TestAnalyze_ByCause(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.DefaultOptions())

	require.Len(t, report.ByCause, 2)
	assert.Equal(t, "parse", report.ByCause[0].Cause)
	assert.Equal(t, 3, report.ByCause[0].Issues)
	assert.Equal(t, []string{"a.tex", "b.md"}, report.ByCause[0].Files)
	assert.Equal(t, "layout", report.ByCause[1].Cause)
}

func TestAnalyze_ByFileSorting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		sort  analysis.SortField
		desc  bool
		paths []string
	}{
		{name: "count descending", sort: analysis.SortByCount, desc: true, paths: []string{"a.tex", "b.md", "d.txt"}},
		{name: "count ascending", sort: analysis.SortByCount, paths: []string{"d.txt", "b.md", "a.tex"}},
		{name: "alphabetical", sort: analysis.SortByAlpha, paths: []string{"a.tex", "b.md", "d.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := analysis.DefaultOptions()
			opts.SortBy = tt.sort
			opts.SortDesc = tt.desc
			report := analysis.Analyze(sampleResult(), opts)

			var paths []string
			for _, f := range report.ByFile {
				paths = append(paths, f.Path)
			}
			assert.Equal(t, tt.paths, paths)
		})
	}
}

func TestAnalyze_OptionalViews(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.Options{})
	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByCause)
	assert.Equal(t, 4, report.Totals.Issues)
}

func TestSortFieldIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, analysis.SortByCount.IsValid())
	assert.False(t, analysis.SortField("random").IsValid())
}
