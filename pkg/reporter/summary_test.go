package reporter

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotexml/pkg/analysis"
)

func TestSummaryRenderer_EmptyReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderer := NewSummaryRenderer(Options{Writer: &buf, Color: "never"})

	report := &analysis.Report{Totals: analysis.Totals{Files: 1, Formulas: 3, Groups: 1, Passes: 4}}
	require.NoError(t, renderer.Render(context.Background(), report))

	output := buf.String()
	assert.Contains(t, output, "No issues found")
	assert.Contains(t, output, "Total: 0 issues in 1 file (3 formulas, 1 groups, 4 passes)")
	assert.NotContains(t, output, "Causes Summary")
}

func sampleReport() *analysis.Report {
	return &analysis.Report{
		ByCause: []analysis.CauseAnalysis{
			{Cause: "parse", Issues: 3, Files: []string{"a.tex", "b.md"}},
			{Cause: "layout", Issues: 1, Files: []string{"a.tex"}},
		},
		ByFile: []analysis.FileAnalysis{
			{Path: "a.tex", Formulas: 10, Issues: 3, Errors: 3},
			{Path: "b.md", Formulas: 2, Issues: 1, Warnings: 1},
		},
		Totals: analysis.Totals{Files: 2, Issues: 4, Errors: 3, Warnings: 1},
	}
}

func TestSummaryRenderer_Order(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		filesFirst bool
	}{
		{name: "causes first"},
		{name: "files first", filesFirst: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			renderer := NewSummaryRenderer(Options{Writer: &buf, Color: "never", FilesFirst: tt.filesFirst})
			require.NoError(t, renderer.Render(context.Background(), sampleReport()))

			output := buf.String()
			causes := strings.Index(output, "Causes Summary")
			files := strings.Index(output, "Files Summary")
			require.NotEqual(t, -1, causes)
			require.NotEqual(t, -1, files)
			assert.Equal(t, tt.filesFirst, files < causes)
		})
	}
}

func TestSummaryRenderer_Rows(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderer := NewSummaryRenderer(Options{Writer: &buf, Color: "never"})
	require.NoError(t, renderer.Render(context.Background(), sampleReport()))

	output := buf.String()
	assert.Contains(t, output, "Cause                   Issues     Files\n")
	assert.Contains(t, output, "parse                        3         2\n")
	assert.Contains(t, output, "a.tex"+strings.Repeat(" ", 45)+"        10         3         3         0\n")
	assert.Contains(t, output, "Total: 4 issues (3 errors, 1 warnings) in 2 files")
}

func TestSummaryRenderer_TruncatesLongPaths(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("d/", 40) + "paper.tex"
	report := &analysis.Report{
		ByFile: []analysis.FileAnalysis{{Path: long, Issues: 1, Errors: 1}},
		Totals: analysis.Totals{Files: 1, Issues: 1, Errors: 1},
	}

	var buf bytes.Buffer
	renderer := NewSummaryRenderer(Options{Writer: &buf, Color: "never"})
	require.NoError(t, renderer.Render(context.Background(), report))

	assert.NotContains(t, buf.String(), long)
	assert.Contains(t, buf.String(), "…")
}

func TestColumnCell(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab  ", column{width: 4}.cell("ab"))
	assert.Equal(t, "  ab", column{width: 4, right: true}.cell("ab"))
	assert.Equal(t, "abcdef", column{width: 4}.cell("abcdef"))
	assert.Equal(t, "…b  ", column{width: 4}.cell("…b"))
}

func TestPlural(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1 file", plural(1, "file"))
	assert.Equal(t, "0 files", plural(0, "file"))
}
