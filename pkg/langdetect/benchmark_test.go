package langdetect

import (
	"testing"
)

func BenchmarkDetectByExtension(b *testing.B) {
	content := []byte("Let $x^2$ be given.\n")
	b.ResetTimer()
	for range b.N {
		DetectSource("paper.tex", content)
	}
}

func BenchmarkDetectLaTeXContent(b *testing.B) {
	content := []byte(`\documentclass{article}
\usepackage{amsmath}
\begin{document}
We have \[ \int_0^1 f(x)\,dx \] and more.
\end{document}
`)
	b.ResetTimer()
	for range b.N {
		DetectSource("paper.txt", content)
	}
}

func BenchmarkDetectMarkdownContent(b *testing.B) {
	content := []byte("# Notes\n\nSome $a+b$ and `code`.\n\n- item\n- item\n")
	b.ResetTimer()
	for range b.N {
		DetectSource("notes", content)
	}
}

func BenchmarkDetectEmpty(b *testing.B) {
	content := []byte("")
	b.ResetTimer()
	for range b.N {
		DetectSource("empty", content)
	}
}
