package layout

import (
	"fmt"
	"maps"

	"github.com/yaklabco/gotexml/pkg/mathlist"
)

// Classifier maps a math element to its structural flag.
type Classifier interface {
	Classify(e *mathlist.Element) mathlist.Flag
}

// Table is a Classifier driven by the element role, with per-symbol
// overrides keyed by element text.
type Table struct {
	Roles   map[mathlist.Role]mathlist.Flag
	Symbols map[string]mathlist.Flag
}

// DefaultTable returns the built-in role to flag mapping.
func DefaultTable() *Table {
	return &Table{
		Roles: map[mathlist.Role]mathlist.Flag{
			mathlist.RoleOpen:     mathlist.FlagSmallLeft,
			mathlist.RoleClose:    mathlist.FlagSmallRight,
			mathlist.RoleFence:    mathlist.FlagSmallMiddle,
			mathlist.RoleBigOp:    mathlist.FlagBig,
			mathlist.RoleBinary:   mathlist.FlagBinary,
			mathlist.RoleRelation: mathlist.FlagRelation,
			mathlist.RoleDummy:    mathlist.FlagDummy,
		},
		Symbols: map[string]mathlist.Flag{},
	}
}

// Classify implements Classifier.
func (t *Table) Classify(e *mathlist.Element) mathlist.Flag {
	switch e.Kind {
	case mathlist.KindGroup, mathlist.KindFenced:
		if e.Big {
			return mathlist.FlagBig
		}
		return mathlist.FlagNone
	case mathlist.KindDummy:
		return mathlist.FlagDummy
	}
	if f, ok := t.Symbols[e.Text]; ok && e.Kind != mathlist.KindScript {
		return f
	}
	if f, ok := t.Roles[e.Role]; ok {
		return f
	}
	return mathlist.FlagNone
}

// TableFromConfig builds a table from the default mapping plus overrides.
// roles maps role names to flag names; symbols maps element texts such as
// "|" or `\int` to flag names.
func TableFromConfig(roles, symbols map[string]string) (*Table, error) {
	table := DefaultTable()
	for name, flagName := range roles {
		role, err := mathlist.ParseRole(name)
		if err != nil {
			return nil, fmt.Errorf("roles: %w", err)
		}
		flag, err := mathlist.ParseFlag(flagName)
		if err != nil {
			return nil, fmt.Errorf("roles.%s: %w", name, err)
		}
		table.Roles[role] = flag
	}
	for symbol, flagName := range symbols {
		flag, err := mathlist.ParseFlag(flagName)
		if err != nil {
			return nil, fmt.Errorf("symbols.%s: %w", symbol, err)
		}
		table.Symbols[symbol] = flag
	}
	return table, nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	return &Table{
		Roles:   maps.Clone(t.Roles),
		Symbols: maps.Clone(t.Symbols),
	}
}
