package mathml

type delimiterForm struct {
	tex  string
	name string
}

// delimiters maps a delimiter, as written after \left or \right, to its
// TeX form and its attribute name.
var delimiters = map[string]delimiterForm{
	"<":            {"<", "<"},
	">":            {">", ">"},
	".":            {".", "."},
	"(":            {"(", "("},
	")":            {")", ")"},
	"[":            {"[", "["},
	"]":            {"]", "]"},
	`\lbrack`:      {"[", "["},
	`\rbrack`:      {"]", "]"},
	"|":            {"|", "|"},
	`\vert`:        {"|", "|"},
	`\lvert`:       {"|", "|"},
	`\rvert`:       {"|", "|"},
	"/":            {"/", "/"},
	`\|`:           {`\Vert `, "Vert"},
	`\Vert`:        {`\Vert `, "Vert"},
	`\lVert`:       {`\Vert `, "Vert"},
	`\rVert`:       {`\Vert `, "Vert"},
	`\langle`:      {`\langle `, "langle"},
	`\rangle`:      {`\rangle `, "rangle"},
	`\{`:           {`\lbrace `, "lbrace"},
	`\}`:           {`\rbrace `, "rbrace"},
	`\lbrace`:      {`\lbrace `, "lbrace"},
	`\rbrace`:      {`\rbrace `, "rbrace"},
	`\lceil`:       {`\lceil `, "lceil"},
	`\rceil`:       {`\rceil `, "rceil"},
	`\lfloor`:      {`\lfloor `, "lfloor"},
	`\rfloor`:      {`\rfloor `, "rfloor"},
	`\lgroup`:      {`\lgroup `, "lgroup"},
	`\rgroup`:      {`\rgroup `, "rgroup"},
	`\lmoustache`:  {`\lmoustache `, "lmoustache"},
	`\rmoustache`:  {`\rmoustache `, "rmoustache"},
	`\backslash`:   {`\backslash `, "backslash"},
	`\uparrow`:     {`\uparrow `, "uparrow"},
	`\downarrow`:   {`\downarrow `, "downarrow"},
	`\updownarrow`: {`\updownarrow `, "updownarrow"},
	`\Uparrow`:     {`\Uparrow `, "Uparrow"},
	`\Downarrow`:   {`\Downarrow `, "Downarrow"},
	`\Updownarrow`: {`\Updownarrow `, "Updownarrow"},
}

// DelimiterText returns the TeX form of a delimiter. Control words keep a
// trailing space so that the result can be followed by a letter.
func DelimiterText(name string) (string, bool) {
	d, ok := delimiters[name]
	return d.tex, ok
}

// DelimiterName returns the bare name of a delimiter, as used in attribute
// values.
func DelimiterName(name string) (string, bool) {
	d, ok := delimiters[name]
	return d.name, ok
}
