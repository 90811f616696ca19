package document

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// mathLanguage is the info string of fenced code blocks holding display
// math.
const mathLanguage = "math"

// ExtractMarkdown finds the formulas of a Markdown source.
//
// Fenced code blocks with the info string "math" are display formulas.
// Paragraphs and headings are scanned for $..$ and $$..$$; code spans,
// code blocks and HTML blocks are left alone. A $ that cannot open or close
// a formula, as in "costs $5", is kept as text.
func ExtractMarkdown(path string, content []byte) (*Document, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(content))

	x := &markdownExtractor{
		source: content,
		idx:    newLineIndex(string(content)),
		doc:    &Document{Path: path, Kind: KindMarkdown},
	}
	err := ast.Walk(root, x.visit)
	if err != nil {
		return nil, err
	}
	return x.doc, nil
}

type markdownExtractor struct {
	source []byte
	idx    *lineIndex
	doc    *Document
}

func (x *markdownExtractor) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	switch node := n.(type) {
	case *ast.FencedCodeBlock:
		if bytes.Equal(node.Language(x.source), []byte(mathLanguage)) {
			x.mathBlock(node)
		}
		return ast.WalkSkipChildren, nil
	case *ast.CodeBlock, *ast.HTMLBlock:
		return ast.WalkSkipChildren, nil
	case *ast.Paragraph, *ast.Heading, *ast.TextBlock:
		x.textBlock(node)
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (x *markdownExtractor) mathBlock(node ast.Node) {
	lines := node.Lines()
	if lines.Len() == 0 {
		return
	}

	var b strings.Builder
	for i := range lines.Len() {
		seg := lines.At(i)
		b.Write(seg.Value(x.source))
	}
	line, col := x.idx.pos(lines.At(0).Start)
	x.doc.Paragraphs = append(x.doc.Paragraphs, Paragraph{
		Line: line,
		Spans: []Span{{Formula: &Formula{
			Source:  strings.TrimRight(b.String(), "\n"),
			Display: true,
			Line:    line,
			Column:  col,
		}}},
	})
}

// textBlock scans the lines of a paragraph or heading. The lines are
// joined with newlines; starts records where each line begins in the
// joined text and in the source.
func (x *markdownExtractor) textBlock(node ast.Node) {
	lines := node.Lines()
	if lines.Len() == 0 {
		return
	}

	var (
		b      strings.Builder
		starts []int
		srcOff []int
	)
	for i := range lines.Len() {
		seg := lines.At(i)
		if i > 0 {
			b.WriteByte('\n')
		}
		starts = append(starts, b.Len())
		srcOff = append(srcOff, seg.Start)
		b.Write(bytes.TrimRight(seg.Value(x.source), "\r\n"))
	}
	joined := b.String()

	locate := func(off int) (int, int) {
		k := 0
		for k+1 < len(starts) && starts[k+1] <= off {
			k++
		}
		return x.idx.pos(srcOff[k] + off - starts[k])
	}

	// Lenient splitting never fails.
	pieces, _ := markdownSyntax.split(joined)

	var para Paragraph
	para.Line, _ = locate(0)
	for _, p := range pieces {
		if !p.math {
			para.Spans = append(para.Spans, Span{Text: collapseSpace(p.text)})
			continue
		}
		line, col := locate(p.off)
		para.Spans = append(para.Spans, Span{Formula: &Formula{
			Source:  p.text,
			Display: p.display,
			Line:    line,
			Column:  col,
		}})
	}
	para.Spans = trimSpans(para.Spans)
	if len(para.Spans) > 0 {
		x.doc.Paragraphs = append(x.doc.Paragraphs, para)
	}
}
