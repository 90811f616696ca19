package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLayoutInvariant is matched by every *InvariantError through errors.Is.
var ErrLayoutInvariant = errors.New("layout invariant violation")

// KindLayoutInvariantViolation is the error kind reported to callers.
const KindLayoutInvariantViolation = "LayoutInvariantViolation"

// Location identifies the formula being laid out.
type Location struct {
	// Source is the file or input name.
	Source string

	// Line and Column locate the formula in Source (1-based, 0 if unknown).
	Line   int
	Column int
}

func (l Location) String() string {
	switch {
	case l.Source == "" && l.Line <= 0:
		return ""
	case l.Line <= 0:
		return l.Source
	case l.Column <= 0:
		return fmt.Sprintf("%s:%d", l.Source, l.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", l.Source, l.Line, l.Column)
	}
}

// InvariantError reports a violated internal invariant of the layout
// engine. These are programmer errors in the element producer or in the
// engine itself, never user-correctable formula defects.
type InvariantError struct {
	// Kind is always KindLayoutInvariantViolation.
	Kind string

	// Op names the stage that detected the violation.
	Op string

	// Detail describes the violation.
	Detail string

	// Location is the formula source location, when the caller supplied one.
	Location Location
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	parts := make([]string, 0, 3)
	if loc := e.Location.String(); loc != "" {
		parts = append(parts, loc)
	}
	parts = append(parts, e.Kind+" in "+e.Op, e.Detail)
	return strings.Join(parts, ": ")
}

// Is makes errors.Is(err, ErrLayoutInvariant) succeed.
func (e *InvariantError) Is(target error) bool {
	return target == ErrLayoutInvariant
}

func violation(op, format string, args ...any) *InvariantError {
	return &InvariantError{
		Kind:   KindLayoutInvariantViolation,
		Op:     op,
		Detail: fmt.Sprintf(format, args...),
	}
}

// withLocation fills in the location of an invariant error, if err is one.
func withLocation(err error, loc Location) error {
	var inv *InvariantError
	if errors.As(err, &inv) && inv.Location == (Location{}) {
		inv.Location = loc
	}
	return err
}
