package document

import (
	"errors"
	"iter"
	"strings"
)

// ExtractTeX splits a LaTeX source into paragraphs and finds its formulas.
//
// Paragraphs are separated by blank lines and comments are removed first.
// Formulas are written as $..$, $$..$$, \(..\), \[..\] or as the body of an
// equation, equation* or displaymath environment. Text between formulas is
// kept as written, with whitespace collapsed.
func ExtractTeX(path string, content []byte) (*Document, error) {
	src := stripComments(string(content))
	idx := newLineIndex(src)
	doc := &Document{Path: path, Kind: KindTeX}

	for start, end := range texParagraphs(src) {
		para, err := texParagraph(src[start:end], start, idx)
		if err != nil {
			var u *unterminated
			if errors.As(err, &u) {
				line, col := idx.pos(start + u.off)
				return nil, &ExtractError{Path: path, Line: line, Column: col, Msg: u.Error()}
			}
			return nil, err
		}
		if len(para.Spans) > 0 {
			doc.Paragraphs = append(doc.Paragraphs, para)
		}
	}
	return doc, nil
}

func texParagraph(text string, base int, idx *lineIndex) (Paragraph, error) {
	pieces, err := texSyntax.split(text)
	if err != nil {
		return Paragraph{}, err
	}

	var para Paragraph
	for _, p := range pieces {
		line, col := idx.pos(base + p.off)
		if para.Line == 0 {
			para.Line = line
		}
		if !p.math {
			para.Spans = append(para.Spans, Span{Text: collapseSpace(p.text)})
			continue
		}
		para.Spans = append(para.Spans, Span{Formula: &Formula{
			Source:  p.text,
			Display: p.display,
			Line:    line,
			Column:  col,
		}})
	}
	para.Spans = trimSpans(para.Spans)
	return para, nil
}

// texParagraphs yields the byte ranges of the runs of non-blank lines.
func texParagraphs(src string) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		start := -1
		off := 0
		for off <= len(src) {
			end := strings.IndexByte(src[off:], '\n')
			if end < 0 {
				end = len(src)
			} else {
				end += off
			}
			blank := strings.TrimSpace(src[off:end]) == ""
			switch {
			case blank && start >= 0:
				if !yield(start, off) {
					return
				}
				start = -1
			case !blank && start < 0:
				start = off
			}
			off = end + 1
		}
		if start >= 0 {
			yield(start, len(src))
		}
	}
}

// stripComments removes % comments, keeping line breaks so that offsets
// before a comment do not move.
func stripComments(src string) string {
	if !strings.Contains(src, "%") {
		return src
	}
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		lines[i] = line[:commentStart(line)]
	}
	return strings.Join(lines, "\n")
}

// commentStart returns the offset of the first unescaped % of line, or its
// length.
func commentStart(line string) int {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '%':
			return i
		}
	}
	return len(line)
}
