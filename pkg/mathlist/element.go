package mathlist

import (
	"strconv"
	"strings"
)

// Script argument slots.
const (
	ScriptBase = 0
	ScriptSub  = 1
	ScriptSup  = 2
)

// Position is a 1-based line and column inside a formula source.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Element is one atomic unit of a formula.
//
// The payload depends on Kind:
//   - KindChar: Text holds the glyph (a run of digits is one element).
//   - KindCommand: Text holds the command name with its backslash, Args the
//     arguments in order.
//   - KindGroup: Children holds the nested list.
//   - KindFont: Font holds the font name that applies from here on.
//   - KindSpace: Text holds the spacing command.
//   - KindScript: Args holds base, subscript and superscript; missing parts
//     are nil.
//   - KindFenced: Text and Close hold the delimiters, Children the content.
//   - KindDummy: no payload; marks a script whose base is the previous
//     element once grouping is done.
type Element struct {
	Kind Kind
	Text string

	// Close is the closing delimiter of a KindFenced element.
	Close string

	// Role is assigned by the producer.
	Role Role

	// Flag is assigned by the layout engine.
	Flag Flag

	// Font applies to KindFont markers and font commands such as \mathrm.
	Font string

	Args     []*List
	Children *List

	// Synthetic marks groups created by the layout engine, as opposed to
	// author-written braces.
	Synthetic bool

	// Big marks groups whose content holds a big element.
	Big bool

	// Limits requests under/over placement of scripts on a big operator.
	Limits bool

	Pos Position
}

// NewChar creates a character element.
func NewChar(text string, role Role) *Element {
	return &Element{Kind: KindChar, Text: text, Role: role}
}

// NewCommand creates a command element with the given arguments.
func NewCommand(name string, role Role, args ...*List) *Element {
	return &Element{Kind: KindCommand, Text: name, Role: role, Args: args}
}

// NewGroup creates a group that takes ownership of children.
func NewGroup(children *List, synthetic bool) *Element {
	if children == nil {
		children = New()
	}
	return &Element{Kind: KindGroup, Children: children, Synthetic: synthetic}
}

// NewScript creates a script node. sub and sup may be nil.
func NewScript(base, sub, sup *List) *Element {
	if base == nil {
		base = New()
	}
	return &Element{Kind: KindScript, Args: []*List{base, sub, sup}}
}

// NewDummy creates a script placeholder.
func NewDummy() *Element {
	return &Element{Kind: KindDummy, Role: RoleDummy}
}

// IsLeaf reports whether the element carries no nested list.
func (e *Element) IsLeaf() bool {
	return e.Children == nil && len(e.Args) == 0
}

// IsScript reports whether the element is a sub/superscript node.
func (e *Element) IsScript() bool {
	return e.Kind == KindScript
}

// SetBase replaces the base of a script node.
func (e *Element) SetBase(base *Element) {
	if e.Kind != KindScript {
		return
	}
	if len(e.Args) == 0 {
		e.Args = make([]*List, ScriptSup+1)
	}
	e.Args[ScriptBase] = New(base)
}

// Lists returns every nested list of the element, in order.
func (e *Element) Lists() []*List {
	var lists []*List
	if e.Children != nil {
		lists = append(lists, e.Children)
	}
	for _, arg := range e.Args {
		if arg != nil {
			lists = append(lists, arg)
		}
	}
	return lists
}

// String returns a compact debug form of the element.
func (e *Element) String() string {
	var b strings.Builder
	e.writeTo(&b)
	return b.String()
}

func (e *Element) writeTo(b *strings.Builder) {
	switch e.Kind {
	case KindGroup:
		if e.Synthetic {
			b.WriteString("mrow")
		}
		b.WriteByte('{')
		e.Children.writeTo(b)
		b.WriteByte('}')
	case KindFenced:
		b.WriteString(`\left`)
		b.WriteString(e.Text)
		b.WriteByte(' ')
		e.Children.writeTo(b)
		b.WriteString(` \right`)
		b.WriteString(e.Close)
	case KindScript:
		writeArg(b, e.Args, ScriptBase, "")
		writeArg(b, e.Args, ScriptSub, "_")
		writeArg(b, e.Args, ScriptSup, "^")
	case KindDummy:
		b.WriteString("<dummy>")
	case KindFont:
		b.WriteString(e.Text)
	case KindChar, KindSpace, KindCommand:
		b.WriteString(e.Text)
		for _, arg := range e.Args {
			b.WriteByte('{')
			if arg != nil {
				arg.writeTo(b)
			}
			b.WriteByte('}')
		}
	}
}

func writeArg(b *strings.Builder, args []*List, slot int, prefix string) {
	if slot >= len(args) || args[slot] == nil {
		return
	}
	b.WriteString(prefix)
	b.WriteByte('{')
	args[slot].writeTo(b)
	b.WriteByte('}')
}
