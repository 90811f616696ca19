package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gotexml/pkg/xmldiff"
)

// FormatDiff formats a pending output change as a colored unified diff
// with a git-style header.
func (s *Styles) FormatDiff(d *xmldiff.Diff) string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	builder.WriteString(s.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)) + "\n")
	for _, line := range strings.Split(strings.TrimSuffix(d.String(), "\n"), "\n") {
		builder.WriteString(s.diffLine(line) + "\n")
	}
	return builder.String()
}

func (s *Styles) diffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "@@"):
		return s.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		return s.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		return s.DiffRemove.Render(line)
	default:
		return s.DiffContext.Render(line)
	}
}

// FormatDiffSummary formats the closing line of a dry run, such as
// "2 files would change, 5 insertions(+), 1 deletion(-)".
func (s *Styles) FormatDiffSummary(files, inserted, deleted int) string {
	if files == 0 {
		return s.Success.Render("All translations are up to date.") + "\n"
	}

	fileWord := wordFiles
	if files == 1 {
		fileWord = wordFile
	}
	parts := []string{fmt.Sprintf("%d %s would change", files, fileWord)}

	if inserted > 0 {
		word := "insertions"
		if inserted == 1 {
			word = "insertion"
		}
		parts = append(parts, s.DiffAdd.Render(fmt.Sprintf("%d %s(+)", inserted, word)))
	}
	if deleted > 0 {
		word := "deletions"
		if deleted == 1 {
			word = "deletion"
		}
		parts = append(parts, s.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deleted, word)))
	}
	return strings.Join(parts, ", ") + "\n"
}
