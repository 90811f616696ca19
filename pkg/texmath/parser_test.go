package texmath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotexml/pkg/mathlist"
	"github.com/yaklabco/gotexml/pkg/texmath"
)

func TestScanner(t *testing.T) {
	t.Parallel()

	s := texmath.NewScanner("\\alpha_{12}^x % c\n\\,")

	var kinds []texmath.TokenKind
	var texts []string
	var last texmath.Token
	for {
		tok := s.Next()
		if tok.Kind == texmath.TokEOF {
			break
		}
		kinds = append(kinds, tok.Kind)
		texts = append(texts, tok.Text)
		last = tok
	}

	assert.Equal(t, []texmath.TokenKind{
		texmath.TokCommand, texmath.TokSub, texmath.TokLBrace, texmath.TokNumber,
		texmath.TokRBrace, texmath.TokSup, texmath.TokChar, texmath.TokSpace,
		texmath.TokComment, texmath.TokSpace, texmath.TokCommand,
	}, kinds)
	assert.Equal(t, []string{`\alpha`, "_", "{", "12", "}", "^", "x", " ", "% c", "\n", `\,`}, texts)
	assert.Equal(t, mathlist.Position{Line: 2, Column: 1}, last.Pos)
}

func TestScannerNumbers(t *testing.T) {
	t.Parallel()

	s := texmath.NewScanner("2.5x 3.")
	assert.Equal(t, "2.5", s.Next().Text)
	assert.Equal(t, "x", s.Next().Text)
	s.Next()
	assert.Equal(t, "3", s.Next().Text)
	assert.Equal(t, ".", s.Next().Text)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "integral with limits",
			src:  `\int_0^\infty f(x+y)\,dx = |z|`,
			want: `{\int}_{0}^{\infty} f ( x + y ) \, d x = | z |`,
		},
		{
			name: "script after a closing parenthesis",
			src:  `(a+b)^2`,
			want: `( a + b ) <dummy> {}^{2}`,
		},
		{
			name: "script after a delimiter command",
			src:  `\langle x \rangle^2`,
			want: `\langle x \rangle <dummy> {}^{2}`,
		},
		{
			name: "script at the start",
			src:  `^2 x`,
			want: `{}^{2} x`,
		},
		{
			name: "subscript and superscript",
			src:  `x^2_1`,
			want: `{x}_{1}^{2}`,
		},
		{
			name: "primes",
			src:  `f''`,
			want: `{f}^{' '}`,
		},
		{
			name: "prime then superscript",
			src:  `f'^2`,
			want: `{f}^{' 2}`,
		},
		{
			name: "fraction with digit arguments",
			src:  `\frac12`,
			want: `\frac{1}{2}`,
		},
		{
			name: "root with index",
			src:  `\sqrt[3]{x}`,
			want: `\sqrt{x}{3}`,
		},
		{
			name: "fence",
			src:  `\left( \frac{a}{b} \right]`,
			want: `\left( \frac{a}{b} \right]`,
		},
		{
			name: "fence with angle brackets",
			src:  `\left< a \middle| b \right>`,
			want: `\left\langle a | b \right\rangle`,
		},
		{
			name: "text",
			src:  `\text{if } x`,
			want: `\text{if } x`,
		},
		{
			name: "font switch in braces",
			src:  `{\rm d}x`,
			want: `{\rm d} x`,
		},
		{
			name: "limits",
			src:  `\sum\limits_{i=1}^n`,
			want: `{\sum}_{i = 1}^{n}`,
		},
		{
			name: "decimal number",
			src:  `2.5x`,
			want: `2.5 x`,
		},
		{
			name: "style commands are dropped",
			src:  `\displaystyle a`,
			want: `a`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			list, err := texmath.Parse(tc.src, texmath.Options{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, list.String())
		})
	}
}

func TestParseRoles(t *testing.T) {
	t.Parallel()

	list, err := texmath.Parse(`a = b + c, \sum ( \rangle |`, texmath.Options{})
	require.NoError(t, err)

	want := []mathlist.Role{
		mathlist.RoleOrd,
		mathlist.RoleRelation,
		mathlist.RoleOrd,
		mathlist.RoleBinary,
		mathlist.RoleOrd,
		mathlist.RolePunct,
		mathlist.RoleBigOp,
		mathlist.RoleOpen,
		mathlist.RoleClose,
		mathlist.RoleFence,
	}
	require.Equal(t, len(want), list.Len())
	for i, e := range list.All() {
		assert.Equal(t, want[i], e.Role, "element %d (%s)", i, e)
	}
}

func TestParseScriptNodes(t *testing.T) {
	t.Parallel()

	t.Run("big operator keeps its role", func(t *testing.T) {
		t.Parallel()

		list, err := texmath.Parse(`\sum\limits_{i=1}^n`, texmath.Options{})
		require.NoError(t, err)
		require.Equal(t, 1, list.Len())

		script := list.At(0)
		assert.True(t, script.IsScript())
		assert.Equal(t, mathlist.RoleBigOp, script.Role)
		assert.True(t, script.Limits)
	})

	t.Run("font commands carry the font", func(t *testing.T) {
		t.Parallel()

		list, err := texmath.Parse(`\mathbf{v}`, texmath.Options{})
		require.NoError(t, err)
		assert.Equal(t, "bf", list.At(0).Font)
	})

	t.Run("positions", func(t *testing.T) {
		t.Parallel()

		list, err := texmath.Parse("a +\n  b", texmath.Options{})
		require.NoError(t, err)
		assert.Equal(t, mathlist.Position{Line: 2, Column: 3}, list.At(2).Pos)
	})
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		wantMsg string
		wantPos mathlist.Position
	}{
		{"missing brace", `{a`, "unbalanced braces: missing }", mathlist.Position{Line: 1, Column: 1}},
		{"extra brace", `a}`, "unbalanced braces: unexpected }", mathlist.Position{Line: 1, Column: 2}},
		{"missing right", `\left( a`, `\left without matching \right`, mathlist.Position{Line: 1, Column: 1}},
		{"missing left", `a \right)`, `\right without matching \left`, mathlist.Position{Line: 1, Column: 3}},
		{"missing argument", `\frac{a}`, `missing argument for \frac before end of formula`, mathlist.Position{Line: 1, Column: 1}},
		{"unknown delimiter command", `\left\foo a \right)`, `unknown delimiter \foo after \left`, mathlist.Position{Line: 1, Column: 6}},
		{"letter as delimiter", `\left x \right)`, `unknown delimiter x after \left`, mathlist.Position{Line: 1, Column: 7}},
		{"double superscript", `x^2^3`, "double superscript", mathlist.Position{Line: 1, Column: 4}},
		{"double subscript", `x_2_3`, "double subscript", mathlist.Position{Line: 1, Column: 4}},
		{"unknown command", `\foo`, `unknown command \foo`, mathlist.Position{Line: 1, Column: 1}},
		{"dangling superscript", `x^`, `missing argument for ^ before end of formula`, mathlist.Position{Line: 1, Column: 2}},
		{"limits on a letter", `x\limits`, `\limits is allowed only after an operator`, mathlist.Position{Line: 1, Column: 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			list, err := texmath.Parse(tc.src, texmath.Options{})
			assert.Nil(t, list)
			require.Error(t, err)
			assert.ErrorIs(t, err, texmath.ErrSyntax)

			var perr *texmath.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.wantMsg, perr.Msg)
			assert.Equal(t, tc.wantPos, perr.Pos)
		})
	}
}

func TestParseMaxDepth(t *testing.T) {
	t.Parallel()

	_, err := texmath.Parse(`{{{a}}}`, texmath.Options{MaxDepth: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nested deeper than 2")

	_, err = texmath.Parse(`{{{a}}}`, texmath.Options{})
	assert.NoError(t, err)
}

func TestLookup(t *testing.T) {
	t.Parallel()

	sym, ok := texmath.Lookup(`\int`)
	require.True(t, ok)
	assert.Equal(t, "∫", sym.Glyph)
	assert.Equal(t, mathlist.RoleBigOp, sym.Role)
	assert.False(t, sym.Limits)

	sym, ok = texmath.Lookup(`\lim`)
	require.True(t, ok)
	assert.Equal(t, texmath.ClassFunction, sym.Class)
	assert.True(t, sym.Limits)

	_, ok = texmath.Lookup(`\frac`)
	assert.False(t, ok)
}
