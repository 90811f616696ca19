package document

import (
	"strings"
)

// delimPair is one way of writing a formula.
type delimPair struct {
	open    string
	close   string
	display bool
}

// syntax describes how formulas are written in a source language.
type syntax struct {
	// pairs are tried in order; longer openers come first.
	pairs []delimPair

	// envs lists the environments whose body is display math.
	envs map[string]bool

	// codeSpans makes backtick runs opaque.
	codeSpans bool

	// lenient treats a $ that cannot open or close a formula as text,
	// instead of reporting an unterminated formula.
	lenient bool
}

var texSyntax = syntax{
	pairs: []delimPair{
		{open: "$$", close: "$$", display: true},
		{open: "$", close: "$"},
		{open: `\(`, close: `\)`},
		{open: `\[`, close: `\]`, display: true},
	},
	envs: map[string]bool{
		"equation":    true,
		"equation*":   true,
		"displaymath": true,
	},
}

var markdownSyntax = syntax{
	pairs: []delimPair{
		{open: "$$", close: "$$", display: true},
		{open: "$", close: "$"},
	},
	codeSpans: true,
	lenient:   true,
}

// piece is a run of text or the source of one formula.
type piece struct {
	text    string
	math    bool
	display bool

	// off is the offset of text in the split string.
	off int
}

// unterminated reports a formula opener without its closer.
type unterminated struct {
	off   int
	close string
}

func (e *unterminated) Error() string {
	return "unterminated formula: missing " + e.close
}

// split cuts s into text and formula pieces.
func (sx syntax) split(s string) ([]piece, error) {
	var (
		pieces []piece
		text   strings.Builder
	)
	textStart := 0
	flush := func() {
		if text.Len() > 0 {
			pieces = append(pieces, piece{text: text.String(), off: textStart})
			text.Reset()
		}
	}

	i := 0
	for i < len(s) {
		if text.Len() == 0 {
			textStart = i
		}

		if strings.HasPrefix(s[i:], `\$`) {
			text.WriteByte('$')
			i += 2
			continue
		}

		if pair, ok := sx.opener(s, i); ok {
			start := i + len(pair.open)
			end, found := sx.closer(s, start, pair)
			if !found {
				if sx.lenient {
					text.WriteString(pair.open)
					i = start
					continue
				}
				return nil, &unterminated{off: i, close: pair.close}
			}
			flush()
			pieces = append(pieces, piece{text: s[start:end], math: true, display: pair.display, off: start})
			i = end + len(pair.close)
			continue
		}

		switch {
		case s[i] == '\\' && i+1 < len(s):
			text.WriteString(s[i : i+2])
			i += 2
		case s[i] == '`' && sx.codeSpans:
			i = codeSpan(s, i, &text)
		default:
			text.WriteByte(s[i])
			i++
		}
	}
	flush()
	return pieces, nil
}

// opener returns the delimiter pair opening a formula at s[i:].
func (sx syntax) opener(s string, i int) (delimPair, bool) {
	for _, pair := range sx.pairs {
		if !strings.HasPrefix(s[i:], pair.open) {
			continue
		}
		if sx.lenient && pair.open == "$" {
			next := i + 1
			if next >= len(s) || isSpace(s[next]) {
				return delimPair{}, false
			}
		}
		return pair, true
	}

	if sx.envs != nil && strings.HasPrefix(s[i:], `\begin{`) {
		rest := s[i+len(`\begin{`):]
		name, _, ok := strings.Cut(rest, "}")
		if ok && sx.envs[name] {
			return delimPair{open: `\begin{` + name + `}`, close: `\end{` + name + `}`, display: true}, true
		}
	}
	return delimPair{}, false
}

// closer returns the offset of the closing delimiter of pair at or after
// start. Escaped characters never close a formula.
func (sx syntax) closer(s string, start int, pair delimPair) (int, bool) {
	for k := start; k < len(s); k++ {
		if s[k] == '\\' {
			if strings.HasPrefix(s[k:], pair.close) {
				return k, true
			}
			k++
			continue
		}
		if !strings.HasPrefix(s[k:], pair.close) {
			continue
		}
		if sx.lenient && pair.close == "$" {
			if k == start || isSpace(s[k-1]) {
				continue
			}
			if k+1 < len(s) && s[k+1] >= '0' && s[k+1] <= '9' {
				continue
			}
		}
		return k, true
	}
	return 0, false
}

// codeSpan copies the code span starting with the backtick run at s[i:]
// into text and returns the offset after it. A run without a matching
// closing run is copied as is.
func codeSpan(s string, i int, text *strings.Builder) int {
	n := 0
	for i+n < len(s) && s[i+n] == '`' {
		n++
	}
	fence := s[i : i+n]

	for k := i + n; k < len(s); {
		j := strings.Index(s[k:], fence)
		if j < 0 {
			break
		}
		j += k
		m := 0
		for j+m < len(s) && s[j+m] == '`' {
			m++
		}
		if m == n {
			text.WriteString(s[i : j+n])
			return j + n
		}
		k = j + m
	}
	text.WriteString(fence)
	return i + n
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
