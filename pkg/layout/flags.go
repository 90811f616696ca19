// Package layout decides where synthetic groups must be inserted into a
// flat math list so that small delimiters keep their natural size next to
// big operators, and rebuilds the list with those groups in place.
//
// Consider \int_0^\infty f(x+y) dx = |z|. The integral is big, and a
// renderer stretches the parentheses and bars to its height unless they
// sit in their own row. The engine classifies the list
// (0b 2l 4B 6r 9R 10m 12m 13b), wraps the parentheses (2,6) in a first
// pass, and the bars in a second pass over the rebuilt list.
package layout

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gotexml/pkg/mathlist"
)

// FlagEntry records the flag of one element of the flat list.
type FlagEntry struct {
	Pos  int
	Flag mathlist.Flag
}

func (e FlagEntry) String() string {
	return strconv.Itoa(e.Pos) + string(e.Flag.Code())
}

// FlaggedList is the ordered list of flagged positions of a formula,
// terminated by a Big sentinel at the list length. An empty FlaggedList
// means no grouping is needed.
type FlaggedList []FlagEntry

func (fl FlaggedList) String() string {
	parts := make([]string, len(fl))
	for i, e := range fl {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

func (fl FlaggedList) hasSmall() bool {
	for _, e := range fl {
		if e.Flag.IsSmall() {
			return true
		}
	}
	return false
}

// BuildFlags classifies every element of list, stores the flag on the
// element, and returns the flagged positions.
//
// The result is empty unless the formula has a small delimiter and a big
// element that is not enclosed by a delimiter pair. More than one delimiter
// pair around a big element always counts as unbalanced.
func BuildFlags(list *mathlist.List, cls Classifier) FlaggedList {
	var (
		fl        FlaggedList
		balance   int
		pairs     int
		seenBig   bool
		seenSmall bool
		outerBig  bool
	)

	for i, e := range list.All() {
		flag := classify(e, cls)
		e.Flag = flag

		switch flag {
		case mathlist.FlagSmallLeft:
			pairs++
			balance++
			seenSmall = true
		case mathlist.FlagSmallRight:
			balance--
			seenSmall = true
		case mathlist.FlagSmallMiddle:
			seenSmall = true
		case mathlist.FlagBig:
			if balance <= 0 {
				outerBig = true
			}
			seenBig = true
		case mathlist.FlagBinary, mathlist.FlagRelation:
		default:
			continue
		}
		fl = append(fl, FlagEntry{Pos: i, Flag: flag})
	}

	if seenBig && pairs > 1 {
		outerBig = true
	}
	if !outerBig || !seenSmall {
		return nil
	}
	return append(fl, FlagEntry{Pos: list.Len(), Flag: mathlist.FlagBig})
}

// classify returns the flag of e. Synthetic groups keep the flag the
// replay gave them.
func classify(e *mathlist.Element, cls Classifier) mathlist.Flag {
	if !e.Synthetic {
		return cls.Classify(e)
	}
	if e.Big {
		return mathlist.FlagBig
	}
	return mathlist.FlagNone
}
