package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotexml/internal/ui/pretty"
	"github.com/yaklabco/gotexml/pkg/layout"
	"github.com/yaklabco/gotexml/pkg/mathlist"
	"github.com/yaklabco/gotexml/pkg/texmath"
)

func TestFormatPass(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	pt := layout.PassTrace{
		Pass: 1,
		Flags: layout.FlaggedList{
			{Pos: 0, Flag: mathlist.FlagBig},
			{Pos: 1, Flag: mathlist.FlagSmallLeft},
			{Pos: 3, Flag: mathlist.FlagSmallRight},
			{Pos: 4, Flag: mathlist.FlagBig},
		},
		Ranges: layout.RangeSet{{Start: 1, End: 3}},
		Before: `\int ( a )`,
	}

	out := styles.FormatPass(pt)
	assert.Contains(t, out, "Pass 1\n")
	assert.Contains(t, out, `list:  \int ( a )`)
	assert.Contains(t, out, "flags: 0b 1l 3r 4b")
	assert.Contains(t, out, "ranges: (1,3)")

	final := styles.FormatPass(layout.PassTrace{Pass: 2, Final: true})
	assert.Contains(t, final, "Pass 2 (final)")
	assert.Contains(t, final, "flags: none")
	assert.Contains(t, final, "ranges: none")
}

func TestFormatTree(t *testing.T) {
	t.Parallel()

	list, err := texmath.Parse(`\int (x+y)^2 dx`, texmath.Options{})
	require.NoError(t, err)
	out, _, err := layout.ApplyTree(list, layout.Options{})
	require.NoError(t, err)

	styles := pretty.NewStyles(false)
	tree := styles.FormatTree("formula", out)

	assert.Contains(t, tree, "formula")
	assert.Contains(t, tree, "mrow")
	assert.Contains(t, tree, "script")
	assert.Contains(t, tree, "base")
	assert.Contains(t, tree, "sup")
	assert.Contains(t, tree, "x ord")
}

func TestFormatTree_Empty(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "empty\n", styles.FormatTree("empty", mathlist.New()))
}
