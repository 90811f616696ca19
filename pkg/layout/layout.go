package layout

import (
	"github.com/yaklabco/gotexml/pkg/mathlist"
)

// DefaultMaxPasses bounds the number of analysis passes over one list.
const DefaultMaxPasses = 64

// PassTrace describes one analysis pass.
type PassTrace struct {
	Pass   int
	Flags  FlaggedList
	Ranges RangeSet
	Final  bool

	// Before is the debug form of the list the pass analysed.
	Before string
}

// Options controls Apply and ApplyTree.
type Options struct {
	// Classifier maps elements to flags. Defaults to DefaultTable().
	Classifier Classifier

	// MaxPasses bounds the passes per list. Defaults to DefaultMaxPasses.
	MaxPasses int

	// Location is attached to invariant errors.
	Location Location

	// Trace, if set, receives every pass.
	Trace func(PassTrace)

	// Tracef, if set, receives the individual decisions of the analysis.
	Tracef func(format string, args ...any)
}

func (o Options) classifier() Classifier {
	if o.Classifier == nil {
		return DefaultTable()
	}
	return o.Classifier
}

func (o Options) maxPasses() int {
	if o.MaxPasses <= 0 {
		return DefaultMaxPasses
	}
	return o.MaxPasses
}

// Result summarizes the work done on a list.
type Result struct {
	// Passes is the number of analysis passes run.
	Passes int

	// Groups is the number of synthetic groups inserted.
	Groups int

	// Big reports whether the list holds a big element.
	Big bool
}

func (r *Result) add(other Result) {
	r.Passes += other.Passes
	r.Groups += other.Groups
}

// Apply runs the flag/range/replay cycle on list until the analysis is
// final. list is consumed; on error nothing is returned.
//
// Each non-final pass must shrink the list. A pass that does not, or more
// than MaxPasses passes, is reported as an invariant violation.
func Apply(list *mathlist.List, opts Options) (*mathlist.List, Result, error) {
	var res Result
	cls := opts.classifier()
	f := finder{tracef: opts.Tracef}

	for {
		if res.Passes >= opts.maxPasses() {
			return nil, Result{}, withLocation(
				violation("apply", "no final pass after %d passes", res.Passes), opts.Location)
		}
		res.Passes++

		var before string
		if opts.Trace != nil {
			before = list.String()
		}

		flags := BuildFlags(list, cls)
		ranges, final, err := f.find(flags, list.Len())
		if err != nil {
			return nil, Result{}, withLocation(err, opts.Location)
		}
		if opts.Trace != nil {
			opts.Trace(PassTrace{
				Pass:   res.Passes,
				Flags:  flags,
				Ranges: ranges,
				Final:  final,
				Before: before,
			})
		}

		length := list.Len()
		out, big, err := Rebuild(list, ranges, final)
		if err != nil {
			return nil, Result{}, withLocation(err, opts.Location)
		}
		res.Groups += len(ranges)
		res.Big = big

		if final {
			return out, res, nil
		}
		if out.Len() >= length {
			return nil, Result{}, withLocation(
				violation("apply", "pass %d did not shrink the list (%d elements)", res.Passes, length),
				opts.Location)
		}
		list = out
	}
}

// ApplyTree applies Apply to every list nested in root, innermost first,
// and then to root itself. Author groups and fences whose content holds a
// big element are marked Big, so the enclosing list treats them as big.
func ApplyTree(root *mathlist.List, opts Options) (*mathlist.List, Result, error) {
	var total Result

	err := mathlist.WalkLists(root, func(owner *mathlist.Element, list *mathlist.List) error {
		if list == root {
			return nil
		}
		out, res, err := Apply(list, opts)
		if err != nil {
			return err
		}
		total.add(res)
		*list = *out
		if owner != nil && res.Big && owner.Children == list {
			owner.Big = true
		}
		return nil
	})
	if err != nil {
		return nil, Result{}, err
	}

	out, res, err := Apply(root, opts)
	if err != nil {
		return nil, Result{}, err
	}
	total.add(res)
	total.Big = res.Big
	return out, total, nil
}
