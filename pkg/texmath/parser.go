package texmath

import (
	"github.com/yaklabco/gotexml/pkg/mathlist"
)

// DefaultMaxDepth bounds the nesting of groups and arguments.
const DefaultMaxDepth = 128

// Options controls Parse.
type Options struct {
	// MaxDepth bounds the nesting of groups. Defaults to DefaultMaxDepth.
	MaxDepth int
}

// Parse parses the TeX math source src into a flat list of elements with
// their roles. Braces, command arguments, scripts and \left...\right pairs
// become nested lists.
//
// A script that follows a small delimiter, as in (a+b)^2, is produced as a
// dummy element followed by a script node with an empty base, so that the
// layout engine can still group the delimiter. A script on a big operator
// keeps the big-operator role.
func Parse(src string, opts Options) (*mathlist.List, error) {
	p := &parser{
		s:        NewScanner(src),
		maxDepth: opts.MaxDepth,
	}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}
	return p.parseList(stopEOF, Token{Pos: mathlist.Position{Line: 1, Column: 1}})
}

// stop tells parseList which token ends the list.
type stop uint8

const (
	stopEOF stop = iota
	stopBrace
	stopRight
	stopBracket
)

type parser struct {
	s       *Scanner
	pending []Token

	depth    int
	maxDepth int
}

func (p *parser) next() Token {
	if n := len(p.pending); n > 0 {
		tok := p.pending[n-1]
		p.pending = p.pending[:n-1]
		return tok
	}
	return p.s.Next()
}

func (p *parser) unread(tok Token) {
	p.pending = append(p.pending, tok)
}

// nextSignificant skips spaces and comments.
func (p *parser) nextSignificant() Token {
	for {
		tok := p.next()
		if tok.Kind != TokSpace && tok.Kind != TokComment {
			return tok
		}
	}
}

func (p *parser) peekSignificant() Token {
	tok := p.nextSignificant()
	p.unread(tok)
	return tok
}

func (p *parser) parseList(until stop, open Token) (*mathlist.List, error) {
	if p.depth >= p.maxDepth {
		return nil, errorf(open.Pos, "groups nested deeper than %d", p.maxDepth)
	}
	p.depth++
	defer func() { p.depth-- }()

	list := mathlist.New()
	for {
		tok := p.next()
		switch tok.Kind {
		case TokEOF:
			switch until {
			case stopBrace:
				return nil, errorf(open.Pos, "unbalanced braces: missing }")
			case stopRight:
				return nil, errorf(open.Pos, `\left without matching \right`)
			case stopBracket:
				return nil, errorf(open.Pos, "missing ] after optional argument")
			}
			return list, nil

		case TokRBrace:
			if until == stopBrace {
				return list, nil
			}
			return nil, errorf(tok.Pos, "unbalanced braces: unexpected }")

		case TokSpace, TokComment:

		case TokLBrace:
			children, err := p.parseList(stopBrace, tok)
			if err != nil {
				return nil, err
			}
			group := mathlist.NewGroup(children, false)
			group.Pos = tok.Pos
			list.PushBack(group)

		case TokSup, TokSub:
			if err := p.parseScripts(list, tok); err != nil {
				return nil, err
			}

		case TokNumber:
			list.PushBack(&mathlist.Element{Kind: mathlist.KindChar, Text: tok.Text, Pos: tok.Pos})

		case TokChar:
			switch tok.Text {
			case "]":
				if until == stopBracket {
					return list, nil
				}
			case "'":
				if err := p.parseScripts(list, tok); err != nil {
					return nil, err
				}
				continue
			case "~":
				list.PushBack(&mathlist.Element{Kind: mathlist.KindSpace, Text: "~", Pos: tok.Pos})
				continue
			case "#":
				return nil, errorf(tok.Pos, "macro parameter character # in math")
			}
			list.PushBack(charElement(tok))

		case TokCommand:
			if tok.Text == `\right` {
				if until == stopRight {
					return list, nil
				}
				return nil, errorf(tok.Pos, `\right without matching \left`)
			}
			if err := p.parseCommand(list, tok); err != nil {
				return nil, err
			}
		}
	}
}

func charElement(tok Token) *mathlist.Element {
	e := &mathlist.Element{Kind: mathlist.KindChar, Text: tok.Text, Pos: tok.Pos}
	if sym, ok := Lookup(tok.Text); ok {
		e.Role = sym.Role
	}
	return e
}

func (p *parser) parseCommand(list *mathlist.List, tok Token) error {
	name := tok.Text

	if sym, ok := Lookup(name); ok {
		e := mathlist.NewCommand(name, sym.Role)
		e.Pos = tok.Pos
		list.PushBack(e)
		return nil
	}
	if _, ok := SpaceWidth(name); ok {
		list.PushBack(&mathlist.Element{Kind: mathlist.KindSpace, Text: name, Pos: tok.Pos})
		return nil
	}
	if font, ok := fontSwitches[name]; ok {
		list.PushBack(&mathlist.Element{Kind: mathlist.KindFont, Text: name, Font: font, Pos: tok.Pos})
		return nil
	}
	if ignored[name] {
		return nil
	}

	var (
		e   *mathlist.Element
		err error
	)
	switch {
	case name == `\left`:
		e, err = p.parseFenced(tok)
	case name == `\middle`:
		e, err = p.parseMiddle(tok)
	case name == `\limits`, name == `\nolimits`:
		return p.setLimits(list, tok)
	case IsTextCommand(name), name == `\operatorname`:
		e, err = p.parseText(tok)
	case name == `\sqrt`:
		e, err = p.parseSqrt(tok)
	case isFraction(name):
		e, err = p.parseArgs(tok, 2)
	default:
		if font, ok := fontCommands[name]; ok {
			e, err = p.parseArgs(tok, 1)
			if e != nil {
				e.Font = font
			}
			break
		}
		if _, ok := LookupAccent(name); ok {
			e, err = p.parseArgs(tok, 1)
			break
		}
		return errorf(tok.Pos, "unknown command %s", name)
	}
	if err != nil {
		return err
	}
	list.PushBack(e)
	return nil
}

func isFraction(name string) bool {
	switch name {
	case `\frac`, `\dfrac`, `\tfrac`, `\binom`, `\dbinom`, `\tbinom`:
		return true
	default:
		return false
	}
}

// parseArgs parses n mandatory arguments of the command tok.
func (p *parser) parseArgs(tok Token, n int) (*mathlist.Element, error) {
	e := mathlist.NewCommand(tok.Text, mathlist.RoleOrd)
	e.Pos = tok.Pos
	for range n {
		arg, err := p.parseArg(tok)
		if err != nil {
			return nil, err
		}
		e.Args = append(e.Args, arg)
	}
	return e, nil
}

// parseArg parses one argument of owner: a braced list or a single token.
// A number contributes only its first digit, as in \frac12.
func (p *parser) parseArg(owner Token) (*mathlist.List, error) {
	tok := p.nextSignificant()
	switch tok.Kind {
	case TokLBrace:
		return p.parseList(stopBrace, tok)
	case TokNumber:
		first, rest := splitNumber(tok)
		if rest.Text != "" {
			p.unread(rest)
		}
		return mathlist.New(&mathlist.Element{Kind: mathlist.KindChar, Text: first.Text, Pos: first.Pos}), nil
	case TokChar:
		if tok.Text == "#" || tok.Text == "'" {
			break
		}
		return mathlist.New(charElement(tok)), nil
	case TokCommand:
		if tok.Text == `\right` || tok.Text == `\left` {
			break
		}
		list := mathlist.New()
		if err := p.parseCommand(list, tok); err != nil {
			return nil, err
		}
		if list.IsEmpty() {
			break
		}
		return list, nil
	}
	return nil, errorf(owner.Pos, "missing argument for %s before %s", owner.Text, tok)
}

func splitNumber(tok Token) (Token, Token) {
	first := tok
	first.Text = tok.Text[:1]
	rest := tok
	rest.Text = tok.Text[1:]
	rest.Pos.Column++
	return first, rest
}

// parseScripts attaches the scripts starting at tok to the last element of
// list. Consecutive scripts and primes share one script node.
func (p *parser) parseScripts(list *mathlist.List, tok Token) error {
	script := newScript(list, tok.Pos)
	primed := false

	for {
		switch tok.Kind {
		case TokChar:
			prime := &mathlist.Element{Kind: mathlist.KindChar, Text: "'", Pos: tok.Pos}
			if script.Args[mathlist.ScriptSup] == nil {
				script.Args[mathlist.ScriptSup] = mathlist.New()
			} else if !primed {
				return errorf(tok.Pos, "double superscript")
			}
			script.Args[mathlist.ScriptSup].PushBack(prime)
			primed = true

		case TokSup:
			arg, err := p.parseArg(Token{Kind: TokSup, Text: "^", Pos: tok.Pos})
			if err != nil {
				return err
			}
			sup := script.Args[mathlist.ScriptSup]
			switch {
			case sup == nil:
				script.Args[mathlist.ScriptSup] = arg
			case primed:
				for _, e := range arg.Drain() {
					sup.PushBack(e)
				}
				primed = false
			default:
				return errorf(tok.Pos, "double superscript")
			}

		case TokSub:
			if script.Args[mathlist.ScriptSub] != nil {
				return errorf(tok.Pos, "double subscript")
			}
			arg, err := p.parseArg(Token{Kind: TokSub, Text: "_", Pos: tok.Pos})
			if err != nil {
				return err
			}
			script.Args[mathlist.ScriptSub] = arg
		}

		next := p.peekSignificant()
		if next.Kind != TokSup && next.Kind != TokSub && !(next.Kind == TokChar && next.Text == "'") {
			break
		}
		tok = p.nextSignificant()
	}

	list.PushBack(script)
	return nil
}

// newScript creates the script node for a script written after the last
// element of list, taking that element as base when it can be one.
func newScript(list *mathlist.List, pos mathlist.Position) *mathlist.Element {
	prev := list.Back()

	var script *mathlist.Element
	switch {
	case prev == nil, prev.Kind == mathlist.KindFont, prev.Kind == mathlist.KindSpace:
		script = mathlist.NewScript(nil, nil, nil)
	case IsSmallDelimiter(prev):
		dummy := mathlist.NewDummy()
		dummy.Pos = pos
		list.PushBack(dummy)
		script = mathlist.NewScript(nil, nil, nil)
	default:
		list.PopBack()
		script = mathlist.NewScript(mathlist.New(prev), nil, nil)
		script.Limits = prev.Limits
		if prev.Role == mathlist.RoleBigOp {
			script.Role = mathlist.RoleBigOp
		}
	}
	script.Pos = pos
	return script
}

func (p *parser) setLimits(list *mathlist.List, tok Token) error {
	prev := list.Back()
	if prev == nil || prev.Kind != mathlist.KindCommand {
		return errorf(tok.Pos, "%s is allowed only after an operator", tok.Text)
	}
	sym, ok := Lookup(prev.Text)
	if !ok || (sym.Role != mathlist.RoleBigOp && sym.Class != ClassFunction) {
		return errorf(tok.Pos, "%s is allowed only after an operator", tok.Text)
	}
	prev.Limits = tok.Text == `\limits`
	return nil
}

// parseDelimiter reads the delimiter after \left, \middle or \right and
// returns its name.
func (p *parser) parseDelimiter(owner Token) (string, error) {
	tok := p.nextSignificant()
	name := tok.Text
	switch {
	case tok.Kind == TokChar && name == "<":
		name = `\langle`
	case tok.Kind == TokChar && name == ">":
		name = `\rangle`
	case tok.Kind != TokChar && tok.Kind != TokCommand:
		return "", errorf(owner.Pos, "missing delimiter after %s", owner.Text)
	}
	if sym, ok := Lookup(name); !ok || !sym.Delim {
		return "", errorf(tok.Pos, "unknown delimiter %s after %s", tok.Text, owner.Text)
	}
	return name, nil
}

func (p *parser) parseFenced(tok Token) (*mathlist.Element, error) {
	open, err := p.parseDelimiter(tok)
	if err != nil {
		return nil, err
	}
	children, err := p.parseList(stopRight, tok)
	if err != nil {
		return nil, err
	}
	closing, err := p.parseDelimiter(Token{Kind: TokCommand, Text: `\right`, Pos: tok.Pos})
	if err != nil {
		return nil, err
	}
	return &mathlist.Element{
		Kind:     mathlist.KindFenced,
		Text:     open,
		Close:    closing,
		Children: children,
		Pos:      tok.Pos,
	}, nil
}

func (p *parser) parseMiddle(tok Token) (*mathlist.Element, error) {
	name, err := p.parseDelimiter(tok)
	if err != nil {
		return nil, err
	}
	kind := mathlist.KindChar
	if len(name) > 1 && name[0] == '\\' {
		kind = mathlist.KindCommand
	}
	return &mathlist.Element{Kind: kind, Text: name, Role: mathlist.RoleFence, Pos: tok.Pos}, nil
}

// parseText reads the raw text argument of \text-like commands.
func (p *parser) parseText(tok Token) (*mathlist.Element, error) {
	open := p.nextSignificant()
	if open.Kind != TokLBrace {
		return nil, errorf(tok.Pos, "missing argument for %s before %s", tok.Text, open)
	}
	text, ok := p.s.ReadGroup()
	if !ok {
		return nil, errorf(open.Pos, "unbalanced braces: missing }")
	}
	arg := mathlist.New(&mathlist.Element{Kind: mathlist.KindChar, Text: text, Pos: open.Pos})
	e := mathlist.NewCommand(tok.Text, mathlist.RoleOrd, arg)
	e.Pos = tok.Pos
	return e, nil
}

// parseSqrt parses \sqrt[index]{radicand}. The radicand is the first
// argument; the index, when given, the second.
func (p *parser) parseSqrt(tok Token) (*mathlist.Element, error) {
	var index *mathlist.List
	next := p.nextSignificant()
	if next.Kind == TokChar && next.Text == "[" {
		var err error
		index, err = p.parseList(stopBracket, next)
		if err != nil {
			return nil, err
		}
	} else {
		p.unread(next)
	}

	radicand, err := p.parseArg(tok)
	if err != nil {
		return nil, err
	}
	e := mathlist.NewCommand(tok.Text, mathlist.RoleOrd, radicand)
	if index != nil {
		e.Args = append(e.Args, index)
	}
	e.Pos = tok.Pos
	return e, nil
}
