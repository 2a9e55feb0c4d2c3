package symbols

import (
	"fmt"
	"slices"
	"strings"

	"zephyr/internal/source"
)

// TypeState tracks how far a type has progressed through binding.
type TypeState uint8

const (
	// StateDeclared: the name is known; members are not.
	StateDeclared TypeState = iota
	// StateMembersDeclared: every member signature is known; bodies are not bound.
	StateMembersDeclared
	// StateDefined: initializers and bodies are bound.
	StateDefined
)

func (s TypeState) String() string {
	switch s {
	case StateDeclared:
		return "declared"
	case StateMembersDeclared:
		return "members-declared"
	case StateDefined:
		return "defined"
	default:
		return fmt.Sprintf("TypeState(%d)", s)
	}
}

// TypeSymbol describes a type. Identity is nominal: see Equal.
type TypeSymbol struct {
	named
	// Elem is the element type of an array type, nil otherwise.
	Elem *TypeSymbol
	// Placeholder marks a generic parameter inside a generic type declaration.
	Placeholder bool
	// Host marks builtin and native types whose bodies are evaluated by the host.
	Host  bool
	State TypeState

	members  []Symbol
	byName   map[string]Symbol
	ctors    []*ConstructorSymbol
	unary    []*UnaryOperatorSymbol
	binary   []*BinaryOperatorSymbol
	generics []string
}

func NewType(name string, decl source.Span) *TypeSymbol {
	return &TypeSymbol{named: named{name: name, decl: decl}, byName: make(map[string]Symbol)}
}

// NewPlaceholder creates the symbol for a generic parameter such as T in `type Box<T>`.
func NewPlaceholder(name string, decl source.Span) *TypeSymbol {
	t := NewType(name, decl)
	t.Placeholder = true
	t.State = StateDefined
	return t
}

// ArrayOf returns the array type with element elem. Array types are created on
// demand and compare equal by name, so no interning is required.
func ArrayOf(elem *TypeSymbol) *TypeSymbol {
	t := NewType(elem.Name()+"[]", source.Span{})
	t.Elem = elem
	t.Host = true
	t.State = StateDefined
	return t
}

// ArrayOfRank wraps elem rank times.
func ArrayOfRank(elem *TypeSymbol, rank int) *TypeSymbol {
	for range rank {
		elem = ArrayOf(elem)
	}
	return elem
}

func (*TypeSymbol) Kind() Kind { return KindType }

func (t *TypeSymbol) String() string { return t.name }

// Equal reports nominal equality: two types are equal iff their names are.
func (t *TypeSymbol) Equal(other *TypeSymbol) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.name == other.name
}

func (t *TypeSymbol) IsArray() bool { return t != nil && t.Elem != nil }

// Rank is the array nesting depth; 0 for non-arrays.
func (t *TypeSymbol) Rank() int {
	rank := 0
	for e := t; e.IsArray(); e = e.Elem {
		rank++
	}
	return rank
}

// Base strips every array layer.
func (t *TypeSymbol) Base() *TypeSymbol {
	e := t
	for e.IsArray() {
		e = e.Elem
	}
	return e
}

// SetGenerics records the generic parameter names in declaration order.
func (t *TypeSymbol) SetGenerics(names []string) {
	t.generics = slices.Clone(names)
}

func (t *TypeSymbol) Generics() []string { return t.generics }

func (t *TypeSymbol) IsGeneric() bool { return len(t.generics) > 0 }

// GenericIndex returns the position of a generic parameter name, or -1.
func (t *TypeSymbol) GenericIndex(name string) int {
	return slices.Index(t.generics, name)
}

// Member returns the field or function called name.
func (t *TypeSymbol) Member(name string) (Symbol, bool) {
	s, ok := t.byName[name]
	return s, ok
}

// Members returns fields and functions in declaration order.
func (t *TypeSymbol) Members() []Symbol { return t.members }

func (t *TypeSymbol) Field(name string) (*FieldSymbol, bool) {
	f, ok := t.byName[name].(*FieldSymbol)
	return f, ok
}

func (t *TypeSymbol) Function(name string) (*FunctionSymbol, bool) {
	f, ok := t.byName[name].(*FunctionSymbol)
	return f, ok
}

func (t *TypeSymbol) Fields() []*FieldSymbol {
	var out []*FieldSymbol
	for _, m := range t.members {
		if f, ok := m.(*FieldSymbol); ok {
			out = append(out, f)
		}
	}
	return out
}

func (t *TypeSymbol) Functions() []*FunctionSymbol {
	var out []*FunctionSymbol
	for _, m := range t.members {
		if f, ok := m.(*FunctionSymbol); ok {
			out = append(out, f)
		}
	}
	return out
}

// AddMember appends a field or function; false if the name is taken.
func (t *TypeSymbol) AddMember(m Symbol) bool {
	if _, exists := t.byName[m.Name()]; exists {
		return false
	}
	t.byName[m.Name()] = m
	t.members = append(t.members, m)
	return true
}

// ReplaceMember swaps the member with the same name; used when a generated default
// is superseded. Returns false if no such member exists.
func (t *TypeSymbol) ReplaceMember(m Symbol) bool {
	idx := slices.IndexFunc(t.members, func(s Symbol) bool { return s.Name() == m.Name() })
	if idx < 0 {
		return false
	}
	t.members[idx] = m
	t.byName[m.Name()] = m
	return true
}

// Constructor returns the constructor taking arity parameters.
func (t *TypeSymbol) Constructor(arity int) (*ConstructorSymbol, bool) {
	for _, c := range t.ctors {
		if len(c.Params) == arity {
			return c, true
		}
	}
	return nil, false
}

func (t *TypeSymbol) Constructors() []*ConstructorSymbol { return t.ctors }

// AddConstructor rejects a second constructor with the same arity.
func (t *TypeSymbol) AddConstructor(c *ConstructorSymbol) bool {
	if _, exists := t.Constructor(len(c.Params)); exists {
		return false
	}
	t.ctors = append(t.ctors, c)
	return true
}

func (t *TypeSymbol) UnaryOperator(op string) (*UnaryOperatorSymbol, bool) {
	for _, u := range t.unary {
		if u.name == op {
			return u, true
		}
	}
	return nil, false
}

func (t *TypeSymbol) UnaryOperators() []*UnaryOperatorSymbol { return t.unary }

func (t *TypeSymbol) AddUnaryOperator(u *UnaryOperatorSymbol) bool {
	if _, exists := t.UnaryOperator(u.name); exists {
		return false
	}
	t.unary = append(t.unary, u)
	return true
}

// BinaryOperator looks an operator up by its text and right operand type.
func (t *TypeSymbol) BinaryOperator(op string, right *TypeSymbol) (*BinaryOperatorSymbol, bool) {
	for _, b := range t.binary {
		if b.name == op && b.Right.Type.Equal(right) {
			return b, true
		}
	}
	return nil, false
}

func (t *TypeSymbol) BinaryOperators() []*BinaryOperatorSymbol { return t.binary }

func (t *TypeSymbol) AddBinaryOperator(b *BinaryOperatorSymbol) bool {
	if _, exists := t.BinaryOperator(b.name, b.Right.Type); exists {
		return false
	}
	t.binary = append(t.binary, b)
	return true
}

// Signature renders a short human description, e.g. `Box<T>`.
func (t *TypeSymbol) Signature() string {
	if len(t.generics) == 0 {
		return t.name
	}
	return t.name + "<" + strings.Join(t.generics, ", ") + ">"
}
