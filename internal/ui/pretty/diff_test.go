package pretty_test

import (
	"testing"

	"github.com/yaklabco/gotexml/internal/ui/pretty"
	"github.com/yaklabco/gotexml/pkg/xmldiff"
)

func TestFormatDiff(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	if got := styles.FormatDiff(nil); got != "" {
		t.Errorf("FormatDiff(nil) = %q, want empty", got)
	}

	d := xmldiff.Compute("out/paper.xml", []byte("a\nb\n"), []byte("a\nc\n"))
	want := "diff --git a/out/paper.xml b/out/paper.xml\n" +
		"--- a/out/paper.xml\n" +
		"+++ b/out/paper.xml\n" +
		"@@ -1,2 +1,2 @@\n" +
		" a\n" +
		"-b\n" +
		"+c\n"
	if got := styles.FormatDiff(d); got != want {
		t.Errorf("FormatDiff() =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatDiffSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name     string
		files    int
		inserted int
		deleted  int
		want     string
	}{
		{name: "up to date", want: "All translations are up to date.\n"},
		{
			name: "one file", files: 1, inserted: 1,
			want: "1 file would change, 1 insertion(+)\n",
		},
		{
			name: "several files", files: 2, inserted: 5, deleted: 2,
			want: "2 files would change, 5 insertions(+), 2 deletions(-)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := styles.FormatDiffSummary(tt.files, tt.inserted, tt.deleted); got != tt.want {
				t.Errorf("FormatDiffSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}
