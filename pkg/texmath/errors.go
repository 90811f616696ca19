package texmath

import (
	"errors"
	"fmt"

	"github.com/yaklabco/gotexml/pkg/mathlist"
)

// ErrSyntax is matched by every *ParseError.
var ErrSyntax = errors.New("math syntax error")

// ParseError reports a defect in a formula source.
type ParseError struct {
	Pos mathlist.Position
	Msg string
}

func (e *ParseError) Error() string {
	if !e.Pos.IsValid() {
		return e.Msg
	}
	return e.Pos.String() + ": " + e.Msg
}

// Is reports whether target is ErrSyntax.
func (e *ParseError) Is(target error) bool {
	return target == ErrSyntax
}

func errorf(pos mathlist.Position, format string, args ...any) error {
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
