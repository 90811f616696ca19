// Package langdetect decides whether a source file is LaTeX or Markdown.
// It uses go-enry for files whose name does not settle the question.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gotexml/pkg/document"
)

// Language names as go-enry reports them.
const (
	enryTeX      = "TeX"
	enryMarkdown = "Markdown"
)

// extensions maps well-known file extensions to a source kind.
var extensions = map[string]document.Kind{
	".tex":      document.KindTeX,
	".ltx":      document.KindTeX,
	".latex":    document.KindTeX,
	".sty":      document.KindTeX,
	".md":       document.KindMarkdown,
	".markdown": document.KindMarkdown,
	".mdown":    document.KindMarkdown,
	".mkd":      document.KindMarkdown,
}

// Extensions returns the file extensions recognized without looking at
// the content.
func Extensions() []string {
	out := make([]string, 0, len(extensions))
	for ext := range extensions {
		out = append(out, ext)
	}
	return out
}

// DetectSource returns the source kind of a file.
//
// The extension is tried first, then go-enry's extension table, then its
// classifier restricted to TeX and Markdown. The second result is false
// when neither is a safe guess.
func DetectSource(path string, content []byte) (document.Kind, bool) {
	if kind, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return kind, true
	}

	if lang, safe := enry.GetLanguageByExtension(path); safe {
		if kind, ok := kindOf(lang); ok {
			return kind, true
		}
	}

	if len(content) == 0 {
		return "", false
	}

	if kind, ok := detectByPattern(content); ok {
		return kind, true
	}

	lang, _ := enry.GetLanguageByClassifier(content, []string{enryTeX, enryMarkdown})
	return kindOf(lang)
}

// detectByPattern checks for markers that settle the kind on their own.
func detectByPattern(content []byte) (document.Kind, bool) {
	s := string(content)
	switch {
	case strings.Contains(s, `\documentclass`), strings.Contains(s, `\begin{document}`):
		return document.KindTeX, true
	case strings.HasPrefix(strings.TrimSpace(s), "# "), strings.Contains(s, "\n```"):
		return document.KindMarkdown, true
	}
	return "", false
}

func kindOf(lang string) (document.Kind, bool) {
	switch lang {
	case enryTeX:
		return document.KindTeX, true
	case enryMarkdown:
		return document.KindMarkdown, true
	}
	return "", false
}
