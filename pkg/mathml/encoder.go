package mathml

import (
	"bytes"
	"encoding/xml"

	"github.com/yaklabco/gotexml/pkg/mathlist"
	"github.com/yaklabco/gotexml/pkg/texmath"
)

// Namespace is the MathML namespace.
const Namespace = "http://www.w3.org/1998/Math/MathML"

// MathOptions controls the <math> element written by EncodeMath.
type MathOptions struct {
	// Display selects display style: display="block" and limits under
	// and over operators such as \sum.
	Display bool

	// AltText, if set, is written as the alttext attribute.
	AltText string
}

// Encoder writes math lists as MathML tokens on an xml.Encoder.
type Encoder struct {
	x *xml.Encoder

	display bool
	err     error
}

// NewEncoder creates an encoder writing to x. The caller flushes x.
func NewEncoder(x *xml.Encoder) *Encoder {
	return &Encoder{x: x}
}

// Marshal returns the MathML form of list.
func Marshal(list *mathlist.List, opts MathOptions) ([]byte, error) {
	var buf bytes.Buffer
	x := xml.NewEncoder(&buf)
	if err := NewEncoder(x).EncodeMath(list, opts); err != nil {
		return nil, err
	}
	if err := x.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeMath writes list as one <math> element.
func (enc *Encoder) EncodeMath(list *mathlist.List, opts MathOptions) error {
	enc.display = opts.Display
	enc.err = nil

	display := "inline"
	if opts.Display {
		display = "block"
	}
	attrs := []xml.Attr{attr("xmlns", Namespace), attr("display", display)}
	if opts.AltText != "" {
		attrs = append(attrs, attr("alttext", opts.AltText))
	}

	enc.start("math", attrs...)
	enc.list(list, "")
	enc.end("math")
	return enc.err
}

func (enc *Encoder) token(t xml.Token) {
	if enc.err != nil {
		return
	}
	enc.err = enc.x.EncodeToken(t)
}

func (enc *Encoder) start(name string, attrs ...xml.Attr) {
	enc.token(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func (enc *Encoder) end(name string) {
	enc.token(xml.EndElement{Name: xml.Name{Local: name}})
}

func (enc *Encoder) leaf(tag Tag) {
	if tag.IsZero() {
		return
	}
	enc.start(tag.Name, tag.Attrs...)
	if tag.Text != "" {
		enc.token(xml.CharData(tag.Text))
	}
	enc.end(tag.Name)
}

// list writes the elements of l. A font marker changes the font for the
// rest of l.
func (enc *Encoder) list(l *mathlist.List, font string) {
	for _, e := range l.All() {
		if e.Kind == mathlist.KindFont {
			font = e.Font
			continue
		}
		enc.element(e, font)
	}
}

// arg writes l as exactly one MathML element, wrapping it in an mrow
// unless it holds a single visible element.
func (enc *Encoder) arg(l *mathlist.List, font string) {
	if l.Len() == 1 {
		if e := l.At(0); e.Kind != mathlist.KindDummy && e.Kind != mathlist.KindFont {
			enc.element(e, font)
			return
		}
	}
	enc.row(l, font)
}

func (enc *Encoder) row(l *mathlist.List, font string) {
	enc.start("mrow")
	enc.list(l, font)
	enc.end("mrow")
}

func (enc *Encoder) element(e *mathlist.Element, font string) {
	switch e.Kind {
	case mathlist.KindGroup:
		enc.row(e.Children, font)
	case mathlist.KindScript:
		enc.script(e, font)
	case mathlist.KindFenced:
		enc.fenced(e, font)
	case mathlist.KindCommand:
		enc.command(e, font)
	case mathlist.KindChar, mathlist.KindSpace:
		enc.leaf(Render(e, font))
	case mathlist.KindDummy, mathlist.KindFont:
	}
}

func (enc *Encoder) command(e *mathlist.Element, font string) {
	if tag := Render(e, font); !tag.IsZero() {
		enc.leaf(tag)
		return
	}

	switch e.Text {
	case `\frac`, `\dfrac`, `\tfrac`:
		enc.start("mfrac")
		enc.args(e.Args, font)
		enc.end("mfrac")
		return
	case `\binom`, `\dbinom`, `\tbinom`:
		enc.start("mrow")
		enc.leaf(Tag{Name: "mo", Text: "("})
		enc.start("mfrac", attr("linethickness", "0"))
		enc.args(e.Args, font)
		enc.end("mfrac")
		enc.leaf(Tag{Name: "mo", Text: ")"})
		enc.end("mrow")
		return
	case `\sqrt`:
		if len(e.Args) > 1 && e.Args[1] != nil {
			enc.start("mroot")
			enc.arg(e.Args[0], font)
			enc.arg(e.Args[1], font)
			enc.end("mroot")
			return
		}
		enc.start("msqrt")
		enc.list(e.Args[0], font)
		enc.end("msqrt")
		return
	}

	if f, ok := texmath.FontOf(e.Text); ok {
		for _, a := range e.Args {
			enc.arg(a, f)
		}
		return
	}

	if accent, ok := texmath.LookupAccent(e.Text); ok && len(e.Args) == 1 {
		stretchy := "false"
		if accent.Stretchy {
			stretchy = "true"
		}
		mark := Tag{Name: "mo", Text: accent.Glyph, Attrs: []xml.Attr{attr("stretchy", stretchy)}}
		if accent.Under {
			enc.start("munder", attr("accentunder", "true"))
			enc.arg(e.Args[0], font)
			enc.leaf(mark)
			enc.end("munder")
			return
		}
		enc.start("mover", attr("accent", "true"))
		enc.arg(e.Args[0], font)
		enc.leaf(mark)
		enc.end("mover")
		return
	}

	enc.start("mrow")
	enc.args(e.Args, font)
	enc.end("mrow")
}

func (enc *Encoder) args(args []*mathlist.List, font string) {
	for _, a := range args {
		enc.arg(a, font)
	}
}

// script writes a script node. Operators with limits in display style, and
// operators followed by \limits, get their scripts under and over.
func (enc *Encoder) script(e *mathlist.Element, font string) {
	base := scriptPart(e, mathlist.ScriptBase)
	sub := scriptPart(e, mathlist.ScriptSub)
	sup := scriptPart(e, mathlist.ScriptSup)

	limits := e.Limits || (enc.display && hasLimits(base))

	var name string
	switch {
	case sub != nil && sup != nil:
		name = pick(limits, "munderover", "msubsup")
	case sub != nil:
		name = pick(limits, "munder", "msub")
	case sup != nil:
		name = pick(limits, "mover", "msup")
	default:
		enc.arg(base, font)
		return
	}

	enc.start(name)
	enc.arg(base, font)
	if sub != nil {
		enc.arg(sub, font)
	}
	if sup != nil {
		enc.arg(sup, font)
	}
	enc.end(name)
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

// hasLimits reports whether base is a single operator whose scripts go
// under and over in display style.
func hasLimits(base *mathlist.List) bool {
	if base.Len() != 1 {
		return false
	}
	e := base.At(0)
	if e.Kind != mathlist.KindCommand {
		return false
	}
	sym, ok := texmath.Lookup(e.Text)
	return ok && sym.Limits
}

func (enc *Encoder) fenced(e *mathlist.Element, font string) {
	enc.start("mrow")
	enc.fence(e.Text)
	enc.list(e.Children, font)
	enc.fence(e.Close)
	enc.end("mrow")
}

// fence writes a stretchy delimiter. The null delimiter "." writes nothing.
func (enc *Encoder) fence(name string) {
	if name == "." || name == "" {
		return
	}
	glyph := name
	if sym, ok := texmath.Lookup(name); ok {
		glyph = sym.Glyph
	}
	enc.leaf(Tag{
		Name:  "mo",
		Text:  glyph,
		Attrs: []xml.Attr{attr("fence", "true"), attr("stretchy", "true")},
	})
}
