package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/yaklabco/gotexml/pkg/layout"
	"github.com/yaklabco/gotexml/pkg/mathlist"
)

// FormatPass formats one layout pass: the list it analysed, its flagged
// positions and the ranges it found.
func (s *Styles) FormatPass(pt layout.PassTrace) string {
	var builder strings.Builder

	title := fmt.Sprintf("Pass %d", pt.Pass)
	if pt.Final {
		title += " (final)"
	}
	builder.WriteString(s.PassTitle.Render(title) + "\n")

	if pt.Before != "" {
		builder.WriteString("  " + s.Dim.Render("list:  ") + pt.Before + "\n")
	}

	flags := pt.Flags.String()
	if flags == "" {
		flags = s.Dim.Render("none")
	} else {
		flags = s.Flag.Render(flags)
	}
	builder.WriteString("  " + s.Dim.Render("flags: ") + flags + "\n")

	ranges := pt.Ranges.String()
	if len(pt.Ranges) == 0 {
		ranges = s.Dim.Render("none")
	} else {
		ranges = s.Range.Render(ranges)
	}
	builder.WriteString("  " + s.Dim.Render("ranges:") + " " + ranges + "\n")

	return builder.String()
}

// FormatTree renders a math list as a tree. Groups inserted by the layout
// engine are highlighted.
func (s *Styles) FormatTree(label string, list *mathlist.List) string {
	root := tree.Root(s.Bold.Render(label)).
		EnumeratorStyle(s.Branch)
	s.addChildren(root, list)
	return root.String() + "\n"
}

func (s *Styles) addChildren(parent *tree.Tree, list *mathlist.List) {
	if list == nil {
		return
	}
	for _, e := range list.Elements() {
		if e.IsLeaf() {
			parent.Child(s.elementLabel(e))
			continue
		}
		node := tree.Root(s.elementLabel(e)).EnumeratorStyle(s.Branch)
		switch e.Kind {
		case mathlist.KindScript:
			for slot, name := range []string{"base", "sub", "sup"} {
				if slot >= len(e.Args) || e.Args[slot] == nil {
					continue
				}
				part := tree.Root(s.Dim.Render(name)).EnumeratorStyle(s.Branch)
				s.addChildren(part, e.Args[slot])
				node.Child(part)
			}
		default:
			for _, l := range e.Lists() {
				s.addChildren(node, l)
			}
		}
		parent.Child(node)
	}
}

func (s *Styles) elementLabel(e *mathlist.Element) string {
	switch e.Kind {
	case mathlist.KindGroup:
		switch {
		case e.Synthetic && e.Flag == mathlist.FlagBig:
			return s.Synthetic.Render("mrow (big)")
		case e.Synthetic:
			return s.Synthetic.Render("mrow")
		case e.Big:
			return "group (big)"
		default:
			return "group"
		}
	case mathlist.KindScript:
		return "script"
	case mathlist.KindFenced:
		return fmt.Sprintf(`\left%s … \right%s`, e.Text, e.Close)
	case mathlist.KindDummy:
		return s.Dim.Render("dummy")
	case mathlist.KindChar, mathlist.KindCommand, mathlist.KindFont, mathlist.KindSpace:
		return fmt.Sprintf("%s %s", e.Text, s.Dim.Render(e.Role.String()))
	default:
		return e.String()
	}
}
