package mathlist

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(e *Element) error

// Walk performs a pre-order traversal of every element of l and of every
// list nested inside it. If walkFunc returns a non-nil error, the walk stops
// immediately and returns that error.
func Walk(l *List, walkFunc WalkFunc) error {
	for _, e := range l.All() {
		if err := walkFunc(e); err != nil {
			return err
		}
		for _, nested := range e.Lists() {
			if err := Walk(nested, walkFunc); err != nil {
				return err
			}
		}
	}
	return nil
}

// WalkLists calls fn for every list nested in l, innermost first, and then
// for l itself. fn may replace the contents of the list it receives.
func WalkLists(l *List, fn func(owner *Element, list *List) error) error {
	return walkLists(nil, l, fn)
}

func walkLists(owner *Element, l *List, fn func(*Element, *List) error) error {
	for _, e := range l.All() {
		for _, nested := range e.Lists() {
			if err := walkLists(e, nested, fn); err != nil {
				return err
			}
		}
	}
	return fn(owner, l)
}

// Flatten returns every leaf element reachable from l in document order.
func Flatten(l *List) []*Element {
	var leaves []*Element
	//nolint:errcheck // the callback never fails
	Walk(l, func(e *Element) error {
		if e.IsLeaf() {
			leaves = append(leaves, e)
		}
		return nil
	})
	return leaves
}

// Depth returns the nesting depth of l: 1 for a flat list, 0 for an empty one.
func Depth(l *List) int {
	best := 0
	for _, e := range l.All() {
		d := 1
		for _, nested := range e.Lists() {
			if nd := Depth(nested) + 1; nd > d {
				d = nd
			}
		}
		if d > best {
			best = d
		}
	}
	return best
}
