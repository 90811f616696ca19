package document_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotexml/pkg/document"
	"github.com/yaklabco/gotexml/pkg/layout"
)

const texSource = `% preamble comment
Let $x^2$ be given. % trailing
We have \[ \int_0^1 f(x)\,dx \] and \(a\).

\begin{equation}
E = mc^2
\end{equation}
Price: \$5, 50\% off.
`

func TestExtractTeX(t *testing.T) {
	t.Parallel()

	doc, err := document.ExtractTeX("paper.tex", []byte(texSource))
	require.NoError(t, err)
	require.Len(t, doc.Paragraphs, 2)
	assert.Equal(t, document.KindTeX, doc.Kind)

	first := doc.Paragraphs[0]
	assert.Equal(t, 2, first.Line)
	require.Len(t, first.Spans, 7)
	assert.Equal(t, "Let ", first.Spans[0].Text)
	assert.Equal(t, " be given. We have ", first.Spans[2].Text)
	assert.Equal(t, ".", first.Spans[6].Text)

	formulas := doc.Formulas()
	require.Len(t, formulas, 4)

	assert.Equal(t, "x^2", formulas[0].Source)
	assert.False(t, formulas[0].Display)
	assert.Equal(t, 2, formulas[0].Line)
	assert.Equal(t, 6, formulas[0].Column)

	assert.Equal(t, `\int_0^1 f(x)\,dx`, strings.TrimSpace(formulas[1].Source))
	assert.True(t, formulas[1].Display)
	assert.Equal(t, 3, formulas[1].Line)
	assert.Equal(t, 11, formulas[1].Column)

	assert.Equal(t, "a", formulas[2].Source)
	assert.False(t, formulas[2].Display)

	assert.Equal(t, "E = mc^2", strings.TrimSpace(formulas[3].Source))
	assert.True(t, formulas[3].Display)
	assert.Equal(t, 5, doc.Paragraphs[1].Line)

	last := doc.Paragraphs[1].Spans
	assert.Equal(t, ` Price: $5, 50\% off.`, last[len(last)-1].Text)
}

func TestExtractTeXUnterminated(t *testing.T) {
	t.Parallel()

	_, err := document.ExtractTeX("a.tex", []byte("ok\n\na $x + y\n"))
	require.Error(t, err)

	var xerr *document.ExtractError
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, 3, xerr.Line)
	assert.Equal(t, 3, xerr.Column)
	assert.Equal(t, "unterminated formula: missing $", xerr.Msg)
	assert.Equal(t, "a.tex:3:3: unterminated formula: missing $", err.Error())
}

func TestExtractTeXEnvironments(t *testing.T) {
	t.Parallel()

	src := "\\begin{displaymath}a\\end{displaymath} \\begin{itemize}b\\end{itemize} \\begin{equation*}c\\end{equation*}"
	doc, err := document.ExtractTeX("a.tex", []byte(src))
	require.NoError(t, err)

	formulas := doc.Formulas()
	require.Len(t, formulas, 2)
	assert.Equal(t, "a", formulas[0].Source)
	assert.Equal(t, "c", formulas[1].Source)
	assert.Equal(t, ` \begin{itemize}b\end{itemize} `, doc.Paragraphs[0].Spans[1].Text)
}

const markdownSource = "# Heading with $a+b$\n" +
	"\n" +
	"Some text with $x_1$ and `code $y$` and costs $5.\n" +
	"\n" +
	"```math\n" +
	"\\int_0^1 f\n" +
	"```\n" +
	"\n" +
	"    indented $z$ code\n" +
	"- item $w$\n"

func TestExtractMarkdown(t *testing.T) {
	t.Parallel()

	doc, err := document.ExtractMarkdown("notes.md", []byte(markdownSource))
	require.NoError(t, err)
	assert.Equal(t, document.KindMarkdown, doc.Kind)

	formulas := doc.Formulas()
	require.Len(t, formulas, 4)

	assert.Equal(t, "a+b", formulas[0].Source)
	assert.Equal(t, 1, formulas[0].Line)

	assert.Equal(t, "x_1", formulas[1].Source)
	assert.Equal(t, 3, formulas[1].Line)
	assert.Equal(t, 17, formulas[1].Column)

	assert.Equal(t, `\int_0^1 f`, formulas[2].Source)
	assert.True(t, formulas[2].Display)
	assert.Equal(t, 6, formulas[2].Line)

	assert.Equal(t, "w", formulas[3].Source)
	assert.Equal(t, 10, formulas[3].Line)

	text := doc.Paragraphs[1].Spans[2].Text
	assert.Equal(t, " and `code $y$` and costs $5.", text)
}

func TestExtractDispatch(t *testing.T) {
	t.Parallel()

	doc, err := document.Extract("a.md", document.KindMarkdown, []byte("$x$"))
	require.NoError(t, err)
	assert.Len(t, doc.Formulas(), 1)

	_, err = document.Extract("a.txt", document.Kind("rtf"), nil)
	assert.Error(t, err)

	kind, err := document.ParseKind("LaTeX")
	require.NoError(t, err)
	assert.Equal(t, document.KindTeX, kind)
}

func translate(t *testing.T, src string, opts document.Options) *document.Translation {
	t.Helper()

	doc, err := document.ExtractTeX("paper.tex", []byte(src))
	require.NoError(t, err)

	tr, err := document.NewTranslator(opts).Translate(context.Background(), doc)
	require.NoError(t, err)
	return tr
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	tr := translate(t, `$\int (x+y) dx$ and $\frac{a$`, document.Options{})
	require.Len(t, tr.Formulas, 2)

	ok := tr.Formulas[0]
	require.NoError(t, ok.Err)
	assert.Equal(t, "f1", ok.ID)
	assert.Equal(t, `\int mrow{( x + y )} d x`, ok.Math.String())

	bad := tr.Formulas[1]
	assert.Nil(t, bad.Math)
	require.Error(t, bad.Err)

	require.Len(t, tr.Diagnostics, 1)
	d := tr.Diagnostics[0]
	assert.Equal(t, document.CauseParse, d.Cause)
	assert.Equal(t, document.SeverityError, d.Severity)
	assert.Equal(t, "unbalanced braces: missing }", d.Message)
	assert.Equal(t, 1, d.Line)
	assert.Equal(t, 27, d.Column)
	assert.Equal(t, `\frac{a`, d.Formula)

	assert.Equal(t, document.Stats{Formulas: 2, Failed: 1, Groups: 1, Passes: 1}, tr.Stats())
}

func TestTranslateLayoutFailure(t *testing.T) {
	t.Parallel()

	opts := document.Options{Layout: layout.Options{MaxPasses: 1}}
	tr := translate(t, `$\int ((a))$`, opts)

	require.Len(t, tr.Diagnostics, 1)
	d := tr.Diagnostics[0]
	assert.Equal(t, document.CauseLayout, d.Cause)
	assert.Contains(t, d.Message, "paper.tex:1:2")
	assert.ErrorIs(t, tr.Formulas[0].Err, layout.ErrLayoutInvariant)
}

func TestTranslateTrace(t *testing.T) {
	t.Parallel()

	var passes []layout.PassTrace
	opts := document.Options{Trace: func(_ *document.Formula, pt layout.PassTrace) {
		passes = append(passes, pt)
	}}
	translate(t, `$\int ((a))$`, opts)

	require.Len(t, passes, 2)
	assert.False(t, passes[0].Final)
	assert.True(t, passes[1].Final)
}

func TestTranslateCancelled(t *testing.T) {
	t.Parallel()

	doc, err := document.ExtractTeX("a.tex", []byte("$x$"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = document.NewTranslator(document.Options{}).Translate(ctx, doc)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteXML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		opts  document.Options
		wopts document.WriteOptions
		want  string
	}{
		{
			name: "inline formula",
			src:  "Let $x$ be.",
			want: `<p line="1">Let <formula type="inline" id="f1">` +
				`<math xmlns="http://www.w3.org/1998/Math/MathML" display="inline"><mi>x</mi></math>` +
				`</formula> be.</p>`,
		},
		{
			name: "failed formula keeps its source",
			src:  `$\frac{a$`,
			want: `<p line="1"><formula type="inline" id="f1" error="1:6: unbalanced braces: missing }">\frac{a</formula></p>`,
		},
		{
			name:  "display everything with alt text",
			src:   "$x$",
			opts:  document.Options{DisplayAll: true},
			wopts: document.WriteOptions{AltText: true},
			want: `<p line="1"><formula type="display" id="f1">` +
				`<math xmlns="http://www.w3.org/1998/Math/MathML" display="block" alttext="x"><mi>x</mi></math>` +
				`</formula></p>`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tr := translate(t, tc.src, tc.opts)

			var buf bytes.Buffer
			require.NoError(t, document.WriteXML(&buf, tr, tc.wopts))

			want := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
				`<document source="paper.tex" kind="tex">` + "\n" +
				tc.want + "\n</document>\n"
			assert.Equal(t, want, buf.String())
		})
	}
}
