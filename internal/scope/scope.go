package scope

import (
	"errors"

	"zephyr/internal/symbols"
)

// ErrAlreadyDeclared is returned when a name (or constructor arity, or operator key)
// is taken in the scope being declared into.
var ErrAlreadyDeclared = errors.New("already declared")

// Kind distinguishes the three scope levels.
type Kind uint8

const (
	KindProgram Kind = iota + 1
	KindType
	KindBlock
)

func (k Kind) String() string {
	switch k {
	case KindProgram:
		return "program"
	case KindType:
		return "type"
	case KindBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope is a lookup context chained to its parent.
type Scope interface {
	Kind() Kind
	Parent() Scope
	// Lookup searches this scope then its ancestors and returns the nearest match.
	Lookup(name string) (symbols.Symbol, bool)
}

// EnclosingType walks up to the nearest type scope.
func EnclosingType(s Scope) (*Type, bool) {
	for ; s != nil; s = s.Parent() {
		if ts, ok := s.(*Type); ok {
			return ts, true
		}
	}
	return nil, false
}

// EnclosingProgram walks up to the root.
func EnclosingProgram(s Scope) (*Program, bool) {
	for ; s != nil; s = s.Parent() {
		if ps, ok := s.(*Program); ok {
			return ps, true
		}
	}
	return nil, false
}
