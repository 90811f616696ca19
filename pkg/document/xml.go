package document

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/yaklabco/gotexml/pkg/mathml"
)

// WriteOptions controls WriteXML.
type WriteOptions struct {
	// AltText adds the TeX form of every formula as an alttext attribute.
	AltText bool
}

// WriteXML writes a translated document:
//
//	<document source="paper.tex" kind="tex">
//	<p line="3">Let <formula type="inline" id="f1"><math ...>...</math></formula>.</p>
//	</document>
//
// A formula that failed is written with an error attribute and its raw
// source instead of MathML.
func WriteXML(w io.Writer, tr *Translation, opts WriteOptions) error {
	results := make(map[*Formula]*FormulaResult, len(tr.Formulas))
	for i := range tr.Formulas {
		results[tr.Formulas[i].Formula] = &tr.Formulas[i]
	}

	x := xml.NewEncoder(w)
	xw := &xmlWriter{x: x, math: mathml.NewEncoder(x)}

	xw.token(xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0" encoding="UTF-8"`)})
	xw.text("\n")
	xw.start("document", attr("source", tr.Document.Path), attr("kind", string(tr.Document.Kind)))

	for _, para := range tr.Document.Paragraphs {
		xw.text("\n")
		xw.start("p", attr("line", strconv.Itoa(para.Line)))
		for _, span := range para.Spans {
			if span.Formula == nil {
				xw.text(span.Text)
				continue
			}
			res, ok := results[span.Formula]
			if !ok {
				return fmt.Errorf("write %s: formula at %d:%d was not translated",
					tr.Document.Path, span.Formula.Line, span.Formula.Column)
			}
			xw.formula(res, tr.DisplayAll, opts)
		}
		xw.end("p")
	}

	xw.text("\n")
	xw.end("document")
	xw.text("\n")
	if xw.err != nil {
		return fmt.Errorf("write %s: %w", tr.Document.Path, xw.err)
	}
	if err := x.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", tr.Document.Path, err)
	}
	return nil
}

type xmlWriter struct {
	x    *xml.Encoder
	math *mathml.Encoder
	err  error
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func (xw *xmlWriter) token(t xml.Token) {
	if xw.err != nil {
		return
	}
	xw.err = xw.x.EncodeToken(t)
}

func (xw *xmlWriter) start(name string, attrs ...xml.Attr) {
	xw.token(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func (xw *xmlWriter) end(name string) {
	xw.token(xml.EndElement{Name: xml.Name{Local: name}})
}

func (xw *xmlWriter) text(s string) {
	if s != "" {
		xw.token(xml.CharData(s))
	}
}

func (xw *xmlWriter) formula(res *FormulaResult, displayAll bool, opts WriteOptions) {
	display := displayAll || res.Formula.Display
	kind := "inline"
	if display {
		kind = "display"
	}

	attrs := []xml.Attr{attr("type", kind), attr("id", res.ID)}
	if res.Err != nil {
		attrs = append(attrs, attr("error", res.Err.Error()))
		xw.start("formula", attrs...)
		xw.text(res.Formula.Source)
		xw.end("formula")
		return
	}

	xw.start("formula", attrs...)
	if xw.err == nil {
		mopts := mathml.MathOptions{Display: display}
		if opts.AltText {
			mopts.AltText = mathml.RenderTeX(res.Math)
		}
		xw.err = xw.math.EncodeMath(res.Math, mopts)
	}
	xw.end("formula")
}
