// Package texmath parses TeX math source into flat math lists.
//
// The parser knows a fixed set of commands. It does not expand macros:
// a command outside its tables is reported as an error.
package texmath

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/gotexml/pkg/mathlist"
)

// TokenKind identifies the lexical class of a Token.
type TokenKind uint8

// Token kinds.
const (
	TokEOF TokenKind = iota
	TokCommand
	TokChar
	TokNumber
	TokLBrace
	TokRBrace
	TokSup
	TokSub
	TokSpace
	TokComment
)

var tokenKindNames = [...]string{
	TokEOF:     "EOF",
	TokCommand: "Command",
	TokChar:    "Char",
	TokNumber:  "Number",
	TokLBrace:  "LBrace",
	TokRBrace:  "RBrace",
	TokSup:     "Sup",
	TokSub:     "Sub",
	TokSpace:   "Space",
	TokComment: "Comment",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", k)
}

// Token is one lexical unit of a formula.
type Token struct {
	Kind TokenKind
	Text string
	Pos  mathlist.Position
}

func (t Token) String() string {
	if t.Kind == TokEOF {
		return "end of formula"
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}

// Scanner splits a formula into tokens.
type Scanner struct {
	src  string
	off  int
	line int
	col  int
}

// NewScanner creates a scanner over src.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src, line: 1, col: 1}
}

// Next returns the next token. At the end of input it keeps returning a
// TokEOF token.
func (s *Scanner) Next() Token {
	pos := mathlist.Position{Line: s.line, Column: s.col}
	if s.off >= len(s.src) {
		return Token{Kind: TokEOF, Pos: pos}
	}

	start := s.off
	r := s.read()
	switch {
	case r == '\\':
		return s.command(start, pos)
	case r == '{':
		return Token{Kind: TokLBrace, Text: "{", Pos: pos}
	case r == '}':
		return Token{Kind: TokRBrace, Text: "}", Pos: pos}
	case r == '^':
		return Token{Kind: TokSup, Text: "^", Pos: pos}
	case r == '_':
		return Token{Kind: TokSub, Text: "_", Pos: pos}
	case r == '%':
		for s.off < len(s.src) && s.peek() != '\n' {
			s.read()
		}
		return Token{Kind: TokComment, Text: s.src[start:s.off], Pos: pos}
	case unicode.IsSpace(r):
		for s.off < len(s.src) && unicode.IsSpace(s.peek()) {
			s.read()
		}
		return Token{Kind: TokSpace, Text: s.src[start:s.off], Pos: pos}
	case isDigit(r):
		s.number()
		return Token{Kind: TokNumber, Text: s.src[start:s.off], Pos: pos}
	}
	return Token{Kind: TokChar, Text: s.src[start:s.off], Pos: pos}
}

// command scans a control word (\alpha) or a control symbol (\{, \,).
func (s *Scanner) command(start int, pos mathlist.Position) Token {
	if s.off >= len(s.src) {
		return Token{Kind: TokCommand, Text: `\`, Pos: pos}
	}
	if !isLetter(s.peek()) {
		s.read()
		return Token{Kind: TokCommand, Text: s.src[start:s.off], Pos: pos}
	}
	for s.off < len(s.src) && isLetter(s.peek()) {
		s.read()
	}
	return Token{Kind: TokCommand, Text: s.src[start:s.off], Pos: pos}
}

// number scans the rest of a digit run with at most one decimal point
// followed by a digit.
func (s *Scanner) number() {
	seenDot := false
	for s.off < len(s.src) {
		r := s.peek()
		if isDigit(r) {
			s.read()
			continue
		}
		if r == '.' && !seenDot && s.off+1 < len(s.src) && isDigit(rune(s.src[s.off+1])) {
			seenDot = true
			s.read()
			continue
		}
		return
	}
}

func (s *Scanner) peek() rune {
	r, _ := utf8.DecodeRuneInString(s.src[s.off:])
	return r
}

func (s *Scanner) read() rune {
	r, size := utf8.DecodeRuneInString(s.src[s.off:])
	s.off += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// ReadGroup returns the raw text up to the brace closing an already
// consumed opening brace, and consumes that brace. ok is false when the
// input ends first.
func (s *Scanner) ReadGroup() (string, bool) {
	depth := 1
	start := s.off
	for s.off < len(s.src) {
		switch s.read() {
		case '\\':
			if s.off < len(s.src) {
				s.read()
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s.src[start : s.off-1], true
			}
		}
	}
	return s.src[start:], false
}
