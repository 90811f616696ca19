package texmath

import (
	"github.com/yaklabco/gotexml/pkg/mathlist"
)

// Class tells the MathML encoder which token element renders a symbol.
type Class uint8

// Symbol classes.
const (
	// ClassOperator symbols render as mo.
	ClassOperator Class = iota
	// ClassIdent symbols render as mi.
	ClassIdent
	// ClassFunction symbols render as an upright mi holding the name.
	ClassFunction
)

// Symbol describes a character or a command without arguments.
type Symbol struct {
	Glyph string
	Role  mathlist.Role
	Class Class

	// Limits is set for operators whose scripts go above and below in
	// display style.
	Limits bool

	// Delim is set for symbols accepted after \left and \right.
	Delim bool
}

func op(glyph string, role mathlist.Role) Symbol {
	return Symbol{Glyph: glyph, Role: role}
}

func ident(glyph string) Symbol {
	return Symbol{Glyph: glyph, Class: ClassIdent}
}

func delim(glyph string, role mathlist.Role) Symbol {
	return Symbol{Glyph: glyph, Role: role, Delim: true}
}

func bigop(glyph string, limits bool) Symbol {
	return Symbol{Glyph: glyph, Role: mathlist.RoleBigOp, Limits: limits}
}

func function(name string, limits bool) Symbol {
	return Symbol{Glyph: name, Class: ClassFunction, Limits: limits}
}

var symbols = map[string]Symbol{
	// Characters.
	"(":  delim("(", mathlist.RoleOpen),
	")":  delim(")", mathlist.RoleClose),
	"[":  delim("[", mathlist.RoleOpen),
	"]":  delim("]", mathlist.RoleClose),
	"|":  delim("|", mathlist.RoleFence),
	"/":  {Glyph: "/", Delim: true},
	".":  {Glyph: ".", Delim: true},
	"+":  op("+", mathlist.RoleBinary),
	"-":  op("−", mathlist.RoleBinary),
	"*":  op("∗", mathlist.RoleBinary),
	"=":  op("=", mathlist.RoleRelation),
	"<":  op("<", mathlist.RoleRelation),
	">":  op(">", mathlist.RoleRelation),
	",":  op(",", mathlist.RolePunct),
	";":  op(";", mathlist.RolePunct),
	":":  op(":", mathlist.RoleRelation),
	"!":  op("!", mathlist.RoleOrd),
	"?":  op("?", mathlist.RoleOrd),
	"'":  op("′", mathlist.RoleOrd),
	"&":  op("&", mathlist.RoleOrd),
	"@":  op("@", mathlist.RoleOrd),
	"\"": op("\"", mathlist.RoleOrd),

	// Control symbols.
	`\{`: delim("{", mathlist.RoleOpen),
	`\}`: delim("}", mathlist.RoleClose),
	`\|`: delim("‖", mathlist.RoleFence),
	`\%`: op("%", mathlist.RoleOrd),
	`\$`: op("$", mathlist.RoleOrd),
	`\#`: op("#", mathlist.RoleOrd),
	`\&`: op("&", mathlist.RoleOrd),
	`\_`: op("_", mathlist.RoleOrd),

	// Delimiters.
	`\lbrace`:      delim("{", mathlist.RoleOpen),
	`\rbrace`:      delim("}", mathlist.RoleClose),
	`\lbrack`:      delim("[", mathlist.RoleOpen),
	`\rbrack`:      delim("]", mathlist.RoleClose),
	`\langle`:      delim("⟨", mathlist.RoleOpen),
	`\rangle`:      delim("⟩", mathlist.RoleClose),
	`\lceil`:       delim("⌈", mathlist.RoleOpen),
	`\rceil`:       delim("⌉", mathlist.RoleClose),
	`\lfloor`:      delim("⌊", mathlist.RoleOpen),
	`\rfloor`:      delim("⌋", mathlist.RoleClose),
	`\lgroup`:      delim("⟮", mathlist.RoleOpen),
	`\rgroup`:      delim("⟯", mathlist.RoleClose),
	`\lmoustache`:  delim("⎰", mathlist.RoleOpen),
	`\rmoustache`:  delim("⎱", mathlist.RoleClose),
	`\lvert`:       delim("|", mathlist.RoleOpen),
	`\rvert`:       delim("|", mathlist.RoleClose),
	`\lVert`:       delim("‖", mathlist.RoleOpen),
	`\rVert`:       delim("‖", mathlist.RoleClose),
	`\vert`:        delim("|", mathlist.RoleFence),
	`\Vert`:        delim("‖", mathlist.RoleFence),
	`\backslash`:   {Glyph: "\\", Delim: true},
	`\uparrow`:     {Glyph: "↑", Role: mathlist.RoleRelation, Delim: true},
	`\downarrow`:   {Glyph: "↓", Role: mathlist.RoleRelation, Delim: true},
	`\updownarrow`: {Glyph: "↕", Role: mathlist.RoleRelation, Delim: true},
	`\Uparrow`:     {Glyph: "⇑", Role: mathlist.RoleRelation, Delim: true},
	`\Downarrow`:   {Glyph: "⇓", Role: mathlist.RoleRelation, Delim: true},
	`\Updownarrow`: {Glyph: "⇕", Role: mathlist.RoleRelation, Delim: true},

	// Big operators.
	`\int`:       bigop("∫", false),
	`\iint`:      bigop("∬", false),
	`\iiint`:     bigop("∭", false),
	`\oint`:      bigop("∮", false),
	`\sum`:       bigop("∑", true),
	`\prod`:      bigop("∏", true),
	`\coprod`:    bigop("∐", true),
	`\bigcup`:    bigop("⋃", true),
	`\bigcap`:    bigop("⋂", true),
	`\bigvee`:    bigop("⋁", true),
	`\bigwedge`:  bigop("⋀", true),
	`\bigoplus`:  bigop("⨁", true),
	`\bigotimes`: bigop("⨂", true),
	`\bigodot`:   bigop("⨀", true),
	`\biguplus`:  bigop("⨄", true),
	`\bigsqcup`:  bigop("⨆", true),

	// Binary operators.
	`\pm`:       op("±", mathlist.RoleBinary),
	`\mp`:       op("∓", mathlist.RoleBinary),
	`\times`:    op("×", mathlist.RoleBinary),
	`\div`:      op("÷", mathlist.RoleBinary),
	`\cdot`:     op("⋅", mathlist.RoleBinary),
	`\ast`:      op("∗", mathlist.RoleBinary),
	`\star`:     op("⋆", mathlist.RoleBinary),
	`\circ`:     op("∘", mathlist.RoleBinary),
	`\bullet`:   op("∙", mathlist.RoleBinary),
	`\cup`:      op("∪", mathlist.RoleBinary),
	`\cap`:      op("∩", mathlist.RoleBinary),
	`\oplus`:    op("⊕", mathlist.RoleBinary),
	`\ominus`:   op("⊖", mathlist.RoleBinary),
	`\otimes`:   op("⊗", mathlist.RoleBinary),
	`\wedge`:    op("∧", mathlist.RoleBinary),
	`\land`:     op("∧", mathlist.RoleBinary),
	`\vee`:      op("∨", mathlist.RoleBinary),
	`\lor`:      op("∨", mathlist.RoleBinary),
	`\setminus`: op("∖", mathlist.RoleBinary),

	// Relations.
	`\le`:             op("≤", mathlist.RoleRelation),
	`\leq`:            op("≤", mathlist.RoleRelation),
	`\ge`:             op("≥", mathlist.RoleRelation),
	`\geq`:            op("≥", mathlist.RoleRelation),
	`\ne`:             op("≠", mathlist.RoleRelation),
	`\neq`:            op("≠", mathlist.RoleRelation),
	`\equiv`:          op("≡", mathlist.RoleRelation),
	`\approx`:         op("≈", mathlist.RoleRelation),
	`\sim`:            op("∼", mathlist.RoleRelation),
	`\simeq`:          op("≃", mathlist.RoleRelation),
	`\cong`:           op("≅", mathlist.RoleRelation),
	`\propto`:         op("∝", mathlist.RoleRelation),
	`\subset`:         op("⊂", mathlist.RoleRelation),
	`\supset`:         op("⊃", mathlist.RoleRelation),
	`\subseteq`:       op("⊆", mathlist.RoleRelation),
	`\supseteq`:       op("⊇", mathlist.RoleRelation),
	`\in`:             op("∈", mathlist.RoleRelation),
	`\notin`:          op("∉", mathlist.RoleRelation),
	`\ni`:             op("∋", mathlist.RoleRelation),
	`\to`:             op("→", mathlist.RoleRelation),
	`\rightarrow`:     op("→", mathlist.RoleRelation),
	`\leftarrow`:      op("←", mathlist.RoleRelation),
	`\gets`:           op("←", mathlist.RoleRelation),
	`\leftrightarrow`: op("↔", mathlist.RoleRelation),
	`\Rightarrow`:     op("⇒", mathlist.RoleRelation),
	`\Leftarrow`:      op("⇐", mathlist.RoleRelation),
	`\Leftrightarrow`: op("⇔", mathlist.RoleRelation),
	`\iff`:            op("⟺", mathlist.RoleRelation),
	`\implies`:        op("⟹", mathlist.RoleRelation),
	`\mapsto`:         op("↦", mathlist.RoleRelation),
	`\ll`:             op("≪", mathlist.RoleRelation),
	`\gg`:             op("≫", mathlist.RoleRelation),
	`\perp`:           op("⊥", mathlist.RoleRelation),
	`\parallel`:       op("∥", mathlist.RoleRelation),
	`\mid`:            op("∣", mathlist.RoleRelation),
	`\colon`:          op(":", mathlist.RolePunct),

	// Ordinary operators.
	`\ldots`:  op("…", mathlist.RoleOrd),
	`\dots`:   op("…", mathlist.RoleOrd),
	`\cdots`:  op("⋯", mathlist.RoleOrd),
	`\vdots`:  op("⋮", mathlist.RoleOrd),
	`\ddots`:  op("⋱", mathlist.RoleOrd),
	`\forall`: op("∀", mathlist.RoleOrd),
	`\exists`: op("∃", mathlist.RoleOrd),
	`\neg`:    op("¬", mathlist.RoleOrd),
	`\lnot`:   op("¬", mathlist.RoleOrd),
	`\prime`:  op("′", mathlist.RoleOrd),

	// Identifiers.
	`\infty`:    ident("∞"),
	`\partial`:  ident("∂"),
	`\nabla`:    ident("∇"),
	`\ell`:      ident("ℓ"),
	`\hbar`:     ident("ℏ"),
	`\emptyset`: ident("∅"),
	`\aleph`:    ident("ℵ"),
	`\Re`:       ident("ℜ"),
	`\Im`:       ident("ℑ"),
	`\imath`:    ident("ı"),
	`\jmath`:    ident("ȷ"),

	`\alpha`:      ident("α"),
	`\beta`:       ident("β"),
	`\gamma`:      ident("γ"),
	`\delta`:      ident("δ"),
	`\epsilon`:    ident("ϵ"),
	`\varepsilon`: ident("ε"),
	`\zeta`:       ident("ζ"),
	`\eta`:        ident("η"),
	`\theta`:      ident("θ"),
	`\vartheta`:   ident("ϑ"),
	`\iota`:       ident("ι"),
	`\kappa`:      ident("κ"),
	`\lambda`:     ident("λ"),
	`\mu`:         ident("μ"),
	`\nu`:         ident("ν"),
	`\xi`:         ident("ξ"),
	`\pi`:         ident("π"),
	`\varpi`:      ident("ϖ"),
	`\rho`:        ident("ρ"),
	`\varrho`:     ident("ϱ"),
	`\sigma`:      ident("σ"),
	`\varsigma`:   ident("ς"),
	`\tau`:        ident("τ"),
	`\upsilon`:    ident("υ"),
	`\phi`:        ident("ϕ"),
	`\varphi`:     ident("φ"),
	`\chi`:        ident("χ"),
	`\psi`:        ident("ψ"),
	`\omega`:      ident("ω"),
	`\Gamma`:      ident("Γ"),
	`\Delta`:      ident("Δ"),
	`\Theta`:      ident("Θ"),
	`\Lambda`:     ident("Λ"),
	`\Xi`:         ident("Ξ"),
	`\Pi`:         ident("Π"),
	`\Sigma`:      ident("Σ"),
	`\Upsilon`:    ident("Υ"),
	`\Phi`:        ident("Φ"),
	`\Psi`:        ident("Ψ"),
	`\Omega`:      ident("Ω"),

	// Functions.
	`\sin`:    function("sin", false),
	`\cos`:    function("cos", false),
	`\tan`:    function("tan", false),
	`\cot`:    function("cot", false),
	`\sec`:    function("sec", false),
	`\csc`:    function("csc", false),
	`\arcsin`: function("arcsin", false),
	`\arccos`: function("arccos", false),
	`\arctan`: function("arctan", false),
	`\sinh`:   function("sinh", false),
	`\cosh`:   function("cosh", false),
	`\tanh`:   function("tanh", false),
	`\log`:    function("log", false),
	`\ln`:     function("ln", false),
	`\lg`:     function("lg", false),
	`\exp`:    function("exp", false),
	`\arg`:    function("arg", false),
	`\deg`:    function("deg", false),
	`\dim`:    function("dim", false),
	`\ker`:    function("ker", false),
	`\hom`:    function("hom", false),
	`\det`:    function("det", true),
	`\gcd`:    function("gcd", true),
	`\Pr`:     function("Pr", true),
	`\lim`:    function("lim", true),
	`\liminf`: function("lim inf", true),
	`\limsup`: function("lim sup", true),
	`\max`:    function("max", true),
	`\min`:    function("min", true),
	`\sup`:    function("sup", true),
	`\inf`:    function("inf", true),
}

// Lookup returns the symbol for a character ("(") or an argument-less
// command ("\alpha").
func Lookup(name string) (Symbol, bool) {
	s, ok := symbols[name]
	return s, ok
}

// IsSmallDelimiter reports whether e is a delimiter the layout engine may
// have to keep small: an open, close or fence character or command.
func IsSmallDelimiter(e *mathlist.Element) bool {
	if e == nil || (e.Kind != mathlist.KindChar && e.Kind != mathlist.KindCommand) || len(e.Args) > 0 {
		return false
	}
	switch e.Role {
	case mathlist.RoleOpen, mathlist.RoleClose, mathlist.RoleFence:
		return true
	default:
		return false
	}
}

// Command tables for commands with arguments.
var (
	// fontCommands apply a font to their single argument.
	fontCommands = map[string]string{
		`\mathrm`:     "rm",
		`\mathbf`:     "bf",
		`\mathit`:     "it",
		`\mathsf`:     "sf",
		`\mathtt`:     "tt",
		`\mathcal`:    "cal",
		`\mathbb`:     "bb",
		`\mathfrak`:   "frak",
		`\mathscr`:    "cal",
		`\boldsymbol`: "bf",
		`\mathnormal`: "",
	}

	// fontSwitches change the font until the end of the enclosing group.
	fontSwitches = map[string]string{
		`\rm`:  "rm",
		`\bf`:  "bf",
		`\it`:  "it",
		`\sf`:  "sf",
		`\tt`:  "tt",
		`\cal`: "cal",
	}

	// textCommands take their argument as raw text.
	textCommands = map[string]bool{
		`\text`:   true,
		`\textrm`: true,
		`\textit`: true,
		`\textbf`: true,
		`\mbox`:   true,
		`\hbox`:   true,
	}

	// spaces maps spacing commands to MathML widths.
	spaces = map[string]string{
		`\,`:         "0.167em",
		`\thinspace`: "0.167em",
		`\:`:         "0.222em",
		`\>`:         "0.222em",
		`\;`:         "0.278em",
		`\!`:         "-0.167em",
		`\ `:         "0.333em",
		`~`:          "0.333em",
		`\quad`:      "1em",
		`\qquad`:     "2em",
	}

	// ignored commands change only the rendering style.
	ignored = map[string]bool{
		`\displaystyle`:      true,
		`\textstyle`:         true,
		`\scriptstyle`:       true,
		`\scriptscriptstyle`: true,
		`\nonumber`:          true,
		`\notag`:             true,
		`\\`:                 true,
	}
)

// Accent describes an accent command such as \hat.
type Accent struct {
	Glyph string
	Under bool

	// Stretchy accents span their whole argument.
	Stretchy bool
}

var accents = map[string]Accent{
	`\hat`:       {Glyph: "^"},
	`\widehat`:   {Glyph: "^", Stretchy: true},
	`\tilde`:     {Glyph: "~"},
	`\widetilde`: {Glyph: "~", Stretchy: true},
	`\bar`:       {Glyph: "¯"},
	`\overline`:  {Glyph: "¯", Stretchy: true},
	`\underline`: {Glyph: "_", Under: true, Stretchy: true},
	`\vec`:       {Glyph: "→"},
	`\dot`:       {Glyph: "˙"},
	`\ddot`:      {Glyph: "¨"},
	`\acute`:     {Glyph: "´"},
	`\grave`:     {Glyph: "`"},
	`\breve`:     {Glyph: "˘"},
	`\check`:     {Glyph: "ˇ"},
}

// LookupAccent returns the accent for an accent command.
func LookupAccent(name string) (Accent, bool) {
	a, ok := accents[name]
	return a, ok
}

// SpaceWidth returns the MathML width of a spacing command.
func SpaceWidth(name string) (string, bool) {
	w, ok := spaces[name]
	return w, ok
}

// FontOf returns the font applied by a font command or a font switch.
func FontOf(name string) (string, bool) {
	if f, ok := fontCommands[name]; ok {
		return f, true
	}
	f, ok := fontSwitches[name]
	return f, ok
}

// IsTextCommand reports whether name takes its argument as raw text.
func IsTextCommand(name string) bool {
	return textCommands[name]
}
