// Package document extracts formulas from LaTeX and Markdown sources,
// translates them to MathML, and writes the result as XML.
package document

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind identifies the source syntax of a document.
type Kind string

// Document kinds.
const (
	KindTeX      Kind = "tex"
	KindMarkdown Kind = "markdown"
)

// ParseKind converts a kind name.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindTeX, "latex":
		return KindTeX, nil
	case KindMarkdown, "md":
		return KindMarkdown, nil
	default:
		return "", fmt.Errorf("unknown document kind %q", s)
	}
}

// Formula is one math formula found in a document.
type Formula struct {
	// Source is the TeX source between the math delimiters.
	Source string

	// Display is true for display math ($$..$$, \[..\], environments).
	Display bool

	// Line and Column locate the first character of Source (1-based).
	Line   int
	Column int
}

// Locate converts a position inside Source to a document position.
func (f *Formula) Locate(line, column int) (int, int) {
	if line <= 1 {
		return f.Line, f.Column + column - 1
	}
	return f.Line + line - 1, column
}

// Span is a run of text or a formula. Exactly one of Text and Formula is
// set.
type Span struct {
	Text    string
	Formula *Formula
}

// Paragraph is a run of spans separated from its neighbours by blank lines
// or block boundaries.
type Paragraph struct {
	Line  int
	Spans []Span
}

// Document is a source file split into paragraphs.
type Document struct {
	Path       string
	Kind       Kind
	Paragraphs []Paragraph
}

// Formulas returns every formula of the document in order.
func (d *Document) Formulas() []*Formula {
	var out []*Formula
	for _, p := range d.Paragraphs {
		for _, s := range p.Spans {
			if s.Formula != nil {
				out = append(out, s.Formula)
			}
		}
	}
	return out
}

// ExtractError reports a source defect that prevents extraction, such as
// an unterminated formula.
type ExtractError struct {
	Path   string
	Line   int
	Column int
	Msg    string
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Msg)
}

// Extract dispatches on kind.
func Extract(path string, kind Kind, content []byte) (*Document, error) {
	switch kind {
	case KindTeX:
		return ExtractTeX(path, content)
	case KindMarkdown:
		return ExtractMarkdown(path, content)
	default:
		return nil, fmt.Errorf("extract %s: unsupported document kind %q", path, kind)
	}
}

// lineIndex maps byte offsets to 1-based line and column numbers.
type lineIndex struct {
	src    string
	starts []int
}

func newLineIndex(src string) *lineIndex {
	starts := []int{0}
	for i := range len(src) {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{src: src, starts: starts}
}

// pos returns the line and rune column of off.
func (idx *lineIndex) pos(off int) (int, int) {
	lo, hi := 0, len(idx.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if idx.starts[mid] <= off {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	start := idx.starts[lo]
	return lo + 1, utf8.RuneCountInString(idx.src[start:off]) + 1
}

// collapseSpace replaces every whitespace run with a single space.
func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	if space {
		b.WriteByte(' ')
	}
	return b.String()
}

// trimSpans trims the outer whitespace of a paragraph and drops text spans
// left empty.
func trimSpans(spans []Span) []Span {
	if n := len(spans); n > 0 && spans[0].Formula == nil {
		spans[0].Text = strings.TrimLeft(spans[0].Text, " ")
	}
	if n := len(spans); n > 0 && spans[n-1].Formula == nil {
		spans[n-1].Text = strings.TrimRight(spans[n-1].Text, " ")
	}
	out := spans[:0]
	for _, s := range spans {
		if s.Formula == nil && s.Text == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
