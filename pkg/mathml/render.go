// Package mathml renders laid-out math lists as MathML.
package mathml

import (
	"encoding/xml"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/gotexml/pkg/mathlist"
	"github.com/yaklabco/gotexml/pkg/texmath"
)

// Tag is the MathML token element for one leaf.
type Tag struct {
	Name  string
	Text  string
	Attrs []xml.Attr
}

// IsZero reports whether the leaf renders nothing.
func (t Tag) IsZero() bool {
	return t.Name == ""
}

// variants maps font names to mathvariant values.
var variants = map[string]string{
	"rm":   "normal",
	"bf":   "bold",
	"it":   "italic",
	"sf":   "sans-serif",
	"tt":   "monospace",
	"cal":  "script",
	"bb":   "double-struck",
	"frak": "fraktur",
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// Render maps a leaf element to its MathML token element. font is the
// active font name ("" for the default). Dummies, font markers and
// elements with nested lists other than text commands render as a zero Tag.
func Render(e *mathlist.Element, font string) Tag {
	switch e.Kind {
	case mathlist.KindChar:
		return renderChar(e, font)
	case mathlist.KindCommand:
		return renderCommand(e, font)
	case mathlist.KindSpace:
		width, ok := texmath.SpaceWidth(e.Text)
		if !ok {
			return Tag{}
		}
		return Tag{Name: "mspace", Attrs: []xml.Attr{attr("width", width)}}
	default:
		return Tag{}
	}
}

func renderChar(e *mathlist.Element, font string) Tag {
	r, _ := utf8.DecodeRuneInString(e.Text)
	switch {
	case unicode.IsDigit(r):
		return Tag{Name: "mn", Text: e.Text, Attrs: variantAttrs(font)}
	case unicode.IsLetter(r):
		return Tag{Name: "mi", Text: e.Text, Attrs: variantAttrs(font)}
	}

	text := e.Text
	if sym, ok := texmath.Lookup(e.Text); ok {
		text = sym.Glyph
	}
	return Tag{Name: "mo", Text: text, Attrs: operatorAttrs(e)}
}

func renderCommand(e *mathlist.Element, font string) Tag {
	if texmath.IsTextCommand(e.Text) {
		return Tag{Name: "mtext", Text: rawText(e)}
	}
	if e.Text == `\operatorname` {
		return Tag{Name: "mi", Text: rawText(e), Attrs: []xml.Attr{attr("mathvariant", "normal")}}
	}
	if len(e.Args) > 0 {
		return Tag{}
	}

	sym, ok := texmath.Lookup(e.Text)
	if !ok {
		return Tag{Name: "mi", Text: strings.TrimPrefix(e.Text, `\`)}
	}
	switch sym.Class {
	case texmath.ClassIdent:
		return Tag{Name: "mi", Text: sym.Glyph, Attrs: variantAttrs(font)}
	case texmath.ClassFunction:
		return Tag{Name: "mi", Text: sym.Glyph}
	default:
		return Tag{Name: "mo", Text: sym.Glyph, Attrs: operatorAttrs(e)}
	}
}

func variantAttrs(font string) []xml.Attr {
	v, ok := variants[font]
	if !ok {
		return nil
	}
	return []xml.Attr{attr("mathvariant", v)}
}

func operatorAttrs(e *mathlist.Element) []xml.Attr {
	var attrs []xml.Attr
	if e.Role == mathlist.RoleBigOp {
		attrs = append(attrs, attr("largeop", "true"))
	}
	if e.Flag.IsSmall() {
		attrs = append(attrs, attr("stretchy", "false"))
	}
	return attrs
}

// rawText returns the text argument of a \text-like command.
func rawText(e *mathlist.Element) string {
	if len(e.Args) == 0 || e.Args[0] == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range e.Args[0].All() {
		b.WriteString(c.Text)
	}
	return b.String()
}
