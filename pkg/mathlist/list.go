package mathlist

import (
	"iter"
	"strings"
)

// List is an ordered, mutable sequence of elements. The zero value is an
// empty list ready to use.
type List struct {
	elems []*Element
}

// New creates a list holding elems.
func New(elems ...*Element) *List {
	l := &List{}
	if len(elems) > 0 {
		l.elems = append(make([]*Element, 0, len(elems)), elems...)
	}
	return l
}

// Len returns the number of elements. A nil list is empty.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.elems)
}

// IsEmpty returns true if the list has no elements.
func (l *List) IsEmpty() bool {
	return l.Len() == 0
}

// At returns the element at index i.
func (l *List) At(i int) *Element {
	return l.elems[i]
}

// Front returns the first element, or nil.
func (l *List) Front() *Element {
	if l.Len() == 0 {
		return nil
	}
	return l.elems[0]
}

// Back returns the last element, or nil.
func (l *List) Back() *Element {
	if l.Len() == 0 {
		return nil
	}
	return l.elems[len(l.elems)-1]
}

// PushBack appends e.
func (l *List) PushBack(e *Element) {
	l.elems = append(l.elems, e)
}

// PushFront prepends e.
func (l *List) PushFront(e *Element) {
	l.elems = append(l.elems, nil)
	copy(l.elems[1:], l.elems)
	l.elems[0] = e
}

// PopBack removes and returns the last element, or nil if the list is empty.
func (l *List) PopBack() *Element {
	n := l.Len()
	if n == 0 {
		return nil
	}
	e := l.elems[n-1]
	l.elems[n-1] = nil
	l.elems = l.elems[:n-1]
	return e
}

// PopFront removes and returns the first element, or nil if the list is empty.
func (l *List) PopFront() *Element {
	if l.Len() == 0 {
		return nil
	}
	e := l.elems[0]
	l.elems[0] = nil
	l.elems = l.elems[1:]
	return e
}

// Splice replaces the elements in [start, end) with repl and returns the
// removed elements.
func (l *List) Splice(start, end int, repl ...*Element) []*Element {
	removed := append([]*Element(nil), l.elems[start:end]...)
	tail := append([]*Element(nil), l.elems[end:]...)
	l.elems = append(append(l.elems[:start], repl...), tail...)
	return removed
}

// Elements returns a copy of the element slice.
func (l *List) Elements() []*Element {
	if l == nil {
		return nil
	}
	return append([]*Element(nil), l.elems...)
}

// Drain empties the list and returns its former elements.
func (l *List) Drain() []*Element {
	elems := l.elems
	l.elems = nil
	return elems
}

// All iterates over index/element pairs.
func (l *List) All() iter.Seq2[int, *Element] {
	return func(yield func(int, *Element) bool) {
		if l == nil {
			return
		}
		for i, e := range l.elems {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Leaves returns the elements of the list with synthetic groups flattened
// away. Author groups and other nested lists are kept whole.
func (l *List) Leaves() []*Element {
	var out []*Element
	for _, e := range l.All() {
		if e.Kind == KindGroup && e.Synthetic {
			out = append(out, e.Children.Leaves()...)
			continue
		}
		out = append(out, e)
	}
	return out
}

// String returns a compact debug form of the list.
func (l *List) String() string {
	var b strings.Builder
	l.writeTo(&b)
	return b.String()
}

func (l *List) writeTo(b *strings.Builder) {
	for i, e := range l.All() {
		if i > 0 {
			b.WriteByte(' ')
		}
		e.writeTo(b)
	}
}
