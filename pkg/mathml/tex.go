package mathml

import (
	"strings"

	"github.com/yaklabco/gotexml/pkg/mathlist"
	"github.com/yaklabco/gotexml/pkg/texmath"
)

// RenderTeX returns the TeX source form of list. Synthetic groups add no
// braces and dummies produce nothing, so the result reads like the
// formula as written.
func RenderTeX(list *mathlist.List) string {
	var b strings.Builder
	writeTeXList(&b, list)
	return strings.TrimSpace(b.String())
}

func writeTeXList(b *strings.Builder, list *mathlist.List) {
	for _, e := range list.All() {
		writeTeX(b, e)
	}
}

// writeControl writes a command name, followed by a space when it is a
// control word.
func writeControl(b *strings.Builder, name string) {
	b.WriteString(name)
	if len(name) > 2 || (len(name) == 2 && isASCIILetter(name[1])) {
		b.WriteByte(' ')
	}
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func writeBraced(b *strings.Builder, list *mathlist.List) {
	b.WriteByte('{')
	if list != nil {
		writeTeXList(b, list)
	}
	b.WriteByte('}')
}

func writeTeX(b *strings.Builder, e *mathlist.Element) {
	switch e.Kind {
	case mathlist.KindChar:
		b.WriteString(e.Text)

	case mathlist.KindSpace, mathlist.KindFont:
		writeControl(b, e.Text)

	case mathlist.KindCommand:
		writeCommandTeX(b, e)

	case mathlist.KindGroup:
		if e.Synthetic {
			writeTeXList(b, e.Children)
			return
		}
		writeBraced(b, e.Children)

	case mathlist.KindFenced:
		open, _ := DelimiterText(e.Text)
		closing, _ := DelimiterText(e.Close)
		b.WriteString(`\left`)
		b.WriteString(open)
		writeTeXList(b, e.Children)
		b.WriteString(`\right`)
		b.WriteString(closing)

	case mathlist.KindScript:
		writeScriptTeX(b, e)

	case mathlist.KindDummy:
	}
}

func writeCommandTeX(b *strings.Builder, e *mathlist.Element) {
	if len(e.Args) == 0 {
		writeControl(b, e.Text)
		return
	}

	b.WriteString(e.Text)
	switch {
	case texmath.IsTextCommand(e.Text), e.Text == `\operatorname`:
		b.WriteByte('{')
		b.WriteString(rawText(e))
		b.WriteByte('}')
	case e.Text == `\sqrt`:
		if len(e.Args) > 1 && e.Args[1] != nil {
			b.WriteByte('[')
			writeTeXList(b, e.Args[1])
			b.WriteByte(']')
		}
		writeBraced(b, e.Args[0])
	default:
		for _, arg := range e.Args {
			writeBraced(b, arg)
		}
	}
}

func writeScriptTeX(b *strings.Builder, e *mathlist.Element) {
	writeTeXList(b, scriptPart(e, mathlist.ScriptBase))
	if e.Limits {
		b.WriteString(`\limits `)
	}

	sup := scriptPart(e, mathlist.ScriptSup)
	primes := 0
	for _, c := range sup.All() {
		if c.Kind != mathlist.KindChar || c.Text != "'" {
			break
		}
		primes++
		b.WriteByte('\'')
	}

	if sub := scriptPart(e, mathlist.ScriptSub); sub != nil {
		b.WriteByte('_')
		writeBraced(b, sub)
	}
	if sup != nil && sup.Len() > primes {
		b.WriteString("^{")
		for i, c := range sup.All() {
			if i >= primes {
				writeTeX(b, c)
			}
		}
		b.WriteByte('}')
	}
}

func scriptPart(e *mathlist.Element, slot int) *mathlist.List {
	if slot >= len(e.Args) {
		return nil
	}
	return e.Args[slot]
}
