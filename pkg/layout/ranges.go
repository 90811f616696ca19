package layout

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gotexml/pkg/mathlist"
)

// Range marks the elements Start..End (both included) of the flat list as
// one synthetic group.
type Range struct {
	Start int
	End   int
}

func (r Range) String() string {
	return strconv.Itoa(r.Start) + "," + strconv.Itoa(r.End)
}

// RangeSet holds ranges in discovery order.
type RangeSet []Range

func (rs RangeSet) String() string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = "(" + r.String() + ")"
	}
	return strings.Join(parts, " ")
}

// FindRanges computes the ranges of original that must be grouped.
//
// final is false when the ranges come from innermost delimiter pairs: the
// caller must replay them and run the analysis again on the result.
func FindRanges(flags FlaggedList, original *mathlist.List) (RangeSet, bool, error) {
	return finder{}.find(flags, original.Len())
}

// finder carries the optional trace hook of one analysis.
type finder struct {
	tracef func(format string, args ...any)
}

func (f finder) trace(format string, args ...any) {
	if f.tracef != nil {
		f.tracef(format, args...)
	}
}

func (f finder) find(flags FlaggedList, length int) (RangeSet, bool, error) {
	if len(flags) == 0 {
		return nil, true, nil
	}
	if err := checkFlags(flags, length); err != nil {
		return nil, false, err
	}

	if matched(flags) {
		rs := pairs(flags)
		f.trace("matched %s", rs)
		return rs, true, nil
	}
	if rs := nestedPairs(flags); len(rs) > 0 {
		f.trace("nested %s", rs)
		return rs, false, nil
	}

	var res RangeSet
	rest := flags
	start := -1
	for len(rest) > 0 {
		if matched(rest) {
			rs := pairs(rest)
			f.trace("matched %s", rs)
			return append(res, rs...), true, nil
		}

		segment, end, tail, err := splitAtBig(rest)
		if err != nil {
			return nil, false, err
		}
		rest = tail

		if segment.hasSmall() {
			segment = reduce(segment)
			segment = append(segment, FlagEntry{Pos: end, Flag: mathlist.FlagRelation})
			f.trace("segment start=%d %s", start, segment)
			rs, err := f.segmentRanges(segment, start)
			if err != nil {
				return nil, false, err
			}
			res = append(res, rs...)
		}
		start = end

		if d1, d2, ok := twoMarkers(rest); ok {
			f.trace("two markers %d %d", d1, d2)
			return append(res, Range{Start: d1, End: d2}), true, nil
		}
	}
	return res, true, nil
}

// checkFlags verifies the ordering and sentinel invariants of flags.
func checkFlags(flags FlaggedList, length int) error {
	for i := 1; i < len(flags); i++ {
		if flags[i].Pos <= flags[i-1].Pos {
			return violation("find ranges", "flag positions not increasing at %d", flags[i].Pos)
		}
	}
	last := flags[len(flags)-1]
	if last.Flag != mathlist.FlagBig || last.Pos != length {
		return violation("find ranges", "missing end sentinel: last entry %s, list length %d", last, length)
	}
	return nil
}

// matched reports whether the small delimiters of fl pair up without
// nesting: every left is closed by the next right, and at most one middle
// appears inside each pair.
func matched(fl FlaggedList) bool {
	outside := true
	allowMid := false
	for _, e := range fl {
		switch {
		case e.Flag == mathlist.FlagSmallMiddle:
			if !allowMid {
				return false
			}
			allowMid = false
		case outside && e.Flag == mathlist.FlagSmallLeft:
			outside = false
			allowMid = true
		case !outside && e.Flag == mathlist.FlagSmallRight:
			outside = true
			allowMid = false
		case e.Flag == mathlist.FlagSmallLeft, e.Flag == mathlist.FlagSmallRight:
			return false
		}
	}
	return outside
}

// pairs returns the left/right pairs of a list accepted by matched.
func pairs(fl FlaggedList) RangeSet {
	var rs RangeSet
	left := 0
	for _, e := range fl {
		switch e.Flag {
		case mathlist.FlagSmallLeft:
			left = e.Pos
		case mathlist.FlagSmallRight:
			rs = append(rs, Range{Start: left, End: e.Pos})
		}
	}
	return rs
}

// nestedPairs returns the innermost left/right pairs of fl. A pair may hold
// one middle; a second middle, or one outside any pair, breaks it.
func nestedPairs(fl FlaggedList) RangeSet {
	var rs RangeSet
	left := -1
	allowMid := false
	for _, e := range fl {
		switch e.Flag {
		case mathlist.FlagSmallMiddle:
			if !allowMid {
				left = -1
			}
			allowMid = false
		case mathlist.FlagSmallLeft:
			left = e.Pos
			allowMid = true
		case mathlist.FlagSmallRight:
			if left >= 0 {
				rs = append(rs, Range{Start: left, End: e.Pos})
			}
			left = -1
		}
	}
	return rs
}

// splitAtBig returns the entries before the first big entry, the position of
// that entry, and the entries after it.
func splitAtBig(fl FlaggedList) (FlaggedList, int, FlaggedList, error) {
	for i, e := range fl {
		if e.Flag == mathlist.FlagBig {
			return fl[:i:i], e.Pos, fl[i+1:], nil
		}
	}
	return nil, 0, nil, violation("find ranges", "no big entry left in %s", fl)
}

// splitAtCut is splitAtBig for relation and binary cuts.
func splitAtCut(fl FlaggedList) (FlaggedList, int, FlaggedList, error) {
	for i, e := range fl {
		if e.Flag == mathlist.FlagRelation || e.Flag == mathlist.FlagBinary {
			return fl[:i:i], e.Pos, fl[i+1:], nil
		}
	}
	return nil, 0, nil, violation("segment ranges", "no cut entry left in %s", fl)
}

// acceptable reports whether no piece of fl, when cut at relations (and at
// binary operators if withBinary), holds exactly one small delimiter.
// f(a+b)=c is acceptable when cut at =, not when cut at +; ]a,b[ is
// acceptable even though its delimiters face away from each other.
func acceptable(fl FlaggedList, withBinary bool) bool {
	small := 0
	for _, e := range fl {
		if e.Flag.IsSmall() {
			small++
		}
		if e.Flag == mathlist.FlagRelation || (withBinary && e.Flag == mathlist.FlagBinary) {
			if small == 1 {
				return false
			}
			small = 0
		}
	}
	return small != 1
}

// reduce drops binary entries, and then relation entries, until the
// segment is acceptable. The result never shares storage with seg.
func reduce(seg FlaggedList) FlaggedList {
	if acceptable(seg, true) {
		return append(FlaggedList(nil), seg...)
	}
	seg = without(seg, mathlist.FlagBinary)
	if acceptable(seg, false) {
		return seg
	}
	return without(seg, mathlist.FlagRelation)
}

func without(fl FlaggedList, flag mathlist.Flag) FlaggedList {
	out := make(FlaggedList, 0, len(fl))
	for _, e := range fl {
		if e.Flag != flag {
			out = append(out, e)
		}
	}
	return out
}

// segmentRanges splits a reduced segment, terminated by a relation marker,
// at its cuts and computes the ranges of every piece that holds a small
// delimiter. start is the position of the big entry before the segment.
func (f finder) segmentRanges(seg FlaggedList, start int) (RangeSet, error) {
	var res RangeSet
	for len(seg) > 0 {
		piece, cut, tail, err := splitAtCut(seg)
		if err != nil {
			return nil, err
		}
		seg = tail
		if piece.hasSmall() {
			res = append(res, f.pieceRanges(piece, start+1, cut-1)...)
		}
		start = cut
	}
	return res, nil
}

// pieceRanges returns the left/right pairs of piece when its small
// delimiters pair up cleanly, and otherwise the whole piece first..last.
func (f finder) pieceRanges(piece FlaggedList, first, last int) RangeSet {
	var rs RangeSet
	open := false
	failed := false
	left := -1
	for _, e := range piece {
		if !e.Flag.IsSmall() {
			continue
		}
		if !open {
			if e.Flag != mathlist.FlagSmallLeft {
				failed = true
				break
			}
			left = e.Pos
			open = true
			continue
		}
		if e.Flag == mathlist.FlagSmallLeft {
			failed = true
			break
		}
		if e.Flag == mathlist.FlagSmallRight {
			open = false
			rs = append(rs, Range{Start: left, End: e.Pos})
		}
	}

	if !failed && !open && len(rs) > 0 {
		f.trace("pairs %s", rs)
		return rs
	}
	if first >= last {
		return nil
	}
	f.trace("whole piece %d %d", first, last)
	return RangeSet{{Start: first, End: last}}
}

// twoMarkers reports whether fl holds exactly two small delimiters, and
// returns their positions.
func twoMarkers(fl FlaggedList) (int, int, bool) {
	d1, d2 := -1, -1
	for _, e := range fl {
		if !e.Flag.IsSmall() {
			continue
		}
		switch {
		case d1 < 0:
			d1 = e.Pos
		case d2 < 0:
			d2 = e.Pos
		default:
			return 0, 0, false
		}
	}
	return d1, d2, d2 >= 0
}
