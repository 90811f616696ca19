package layout

import (
	"github.com/yaklabco/gotexml/pkg/mathlist"
)

// Rebuild drains original and returns a new list where every range is
// replaced by one synthetic group. big reports whether a big element was
// seen.
//
// Ranges are consumed in the order given and must be disjoint and
// increasing. In the final pass, and inside groups, a dummy element is
// dropped and the script node that follows it takes the previous element
// as its base.
func Rebuild(original *mathlist.List, ranges RangeSet, final bool) (*mathlist.List, bool, error) {
	if err := checkRanges(ranges, original.Len()); err != nil {
		return nil, false, err
	}

	r := &replay{
		final: final,
		queue: ranges,
		out:   mathlist.New(),
	}
	for i, e := range original.Drain() {
		r.step(i, e)
	}
	if r.inside || len(r.queue) > 0 {
		return nil, false, violation("rebuild", "list ended inside a group, %d range(s) pending", len(r.queue))
	}
	return r.out, r.big, nil
}

// checkRanges verifies that ranges lie inside a list of the given length,
// are non-empty, and follow each other without overlap.
func checkRanges(ranges RangeSet, length int) error {
	prevEnd := -1
	for _, rg := range ranges {
		if rg.Start <= prevEnd || rg.Start >= rg.End || rg.End >= length {
			return violation("rebuild", "range (%s) out of order or out of bounds (length %d)", rg, length)
		}
		prevEnd = rg.End
	}
	return nil
}

// replay is the state of one Rebuild call.
type replay struct {
	final bool
	queue RangeSet

	inside bool
	acc    *mathlist.List
	accBig bool

	out        *mathlist.List
	afterDummy bool
	big        bool
}

func (r *replay) step(i int, e *mathlist.Element) {
	if e.Flag == mathlist.FlagBig {
		r.big = true
	}

	if r.afterDummy {
		r.afterDummy = false
		if e.IsScript() {
			r.absorb(e)
		}
	}
	armed := e.Flag == mathlist.FlagDummy && (r.final || r.inside)
	if armed {
		r.afterDummy = true
	}

	if r.atBoundary(i) {
		if !r.inside {
			r.acc = mathlist.New()
			r.accBig = false
		}
		if !armed {
			r.place(e)
		}
		r.toggle()
		return
	}

	if !armed {
		r.place(e)
	}
}

func (r *replay) atBoundary(i int) bool {
	if len(r.queue) == 0 {
		return false
	}
	if r.inside {
		return r.queue[0].End == i
	}
	return r.queue[0].Start == i
}

// place appends e to the group being built at a boundary or inside a
// range, and to the output otherwise.
func (r *replay) place(e *mathlist.Element) {
	if r.acc != nil {
		if e.Flag == mathlist.FlagBig {
			r.accBig = true
		}
		r.acc.PushBack(e)
		return
	}
	r.out.PushBack(e)
}

func (r *replay) toggle() {
	if !r.inside {
		r.inside = true
		return
	}

	group := mathlist.NewGroup(r.acc, true)
	if r.accBig {
		group.Big = true
		group.Flag = mathlist.FlagBig
	}
	r.out.PushBack(group)
	r.queue = r.queue[1:]
	r.inside = false
	r.acc = nil
	r.accBig = false
}

// absorb makes the last element of the active container the base of the
// script node e.
func (r *replay) absorb(e *mathlist.Element) {
	container := r.out
	if r.acc != nil {
		container = r.acc
	}
	prev := container.PopBack()
	if prev == nil {
		return
	}
	e.SetBase(prev)
}
