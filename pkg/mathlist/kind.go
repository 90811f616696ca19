// Package mathlist defines the math element list shared by the formula
// parser, the layout engine and the MathML encoder.
package mathlist

import (
	"fmt"
	"strings"
)

// Kind classifies the payload of an Element.
type Kind uint8

// Element kinds.
const (
	KindChar Kind = iota
	KindCommand
	KindGroup
	KindFont
	KindSpace
	KindScript
	KindFenced
	KindDummy
)

var kindNames = [...]string{
	KindChar:    "Char",
	KindCommand: "Command",
	KindGroup:   "Group",
	KindFont:    "Font",
	KindSpace:   "Space",
	KindScript:  "Script",
	KindFenced:  "Fenced",
	KindDummy:   "Dummy",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Role is the producer-side role of an element. The layout engine maps
// roles to flags through a classification table.
type Role uint8

// Element roles.
const (
	RoleOrd Role = iota
	RoleOpen
	RoleClose
	RoleFence
	RoleBigOp
	RoleBinary
	RoleRelation
	RolePunct
	RoleDummy
)

var roleNames = [...]string{
	RoleOrd:      "ord",
	RoleOpen:     "open",
	RoleClose:    "close",
	RoleFence:    "fence",
	RoleBigOp:    "bigop",
	RoleBinary:   "binary",
	RoleRelation: "relation",
	RolePunct:    "punct",
	RoleDummy:    "dummy",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", r)
}

// ParseRole converts a role name as written in configuration files.
func ParseRole(s string) (Role, error) {
	for i, name := range roleNames {
		if strings.EqualFold(s, name) {
			return Role(i), nil
		}
	}
	return RoleOrd, fmt.Errorf("unknown role %q", s)
}

// Flag is the structural classification used for grouping analysis.
type Flag uint8

// Structural flags.
const (
	FlagNone Flag = iota
	FlagSmallLeft
	FlagSmallMiddle
	FlagSmallRight
	FlagBig
	FlagBinary
	FlagRelation
	FlagDummy
)

var flagNames = [...]string{
	FlagNone:        "none",
	FlagSmallLeft:   "left",
	FlagSmallMiddle: "middle",
	FlagSmallRight:  "right",
	FlagBig:         "big",
	FlagBinary:      "binary",
	FlagRelation:    "relation",
	FlagDummy:       "dummy",
}

// flagCodes are the one-letter codes used in traces: "0b 2l 4B 6r".
var flagCodes = [...]byte{
	FlagNone:        'x',
	FlagSmallLeft:   'l',
	FlagSmallMiddle: 'm',
	FlagSmallRight:  'r',
	FlagBig:         'b',
	FlagBinary:      'B',
	FlagRelation:    'R',
	FlagDummy:       'd',
}

func (f Flag) String() string {
	if int(f) < len(flagNames) {
		return flagNames[f]
	}
	return fmt.Sprintf("Flag(%d)", f)
}

// Code returns the one-letter trace code of the flag.
func (f Flag) Code() byte {
	if int(f) < len(flagCodes) {
		return flagCodes[f]
	}
	return '?'
}

// IsSmall reports whether f is one of the small delimiter flags.
func (f Flag) IsSmall() bool {
	return f == FlagSmallLeft || f == FlagSmallMiddle || f == FlagSmallRight
}

// ParseFlag converts a flag name as written in configuration files.
// The long forms "small-left", "small-middle" and "small-right" are accepted.
func ParseFlag(s string) (Flag, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "small-")
	for i, n := range flagNames {
		if name == n {
			return Flag(i), nil
		}
	}
	return FlagNone, fmt.Errorf("unknown flag %q", s)
}
