package symbols

import (
	"zephyr/internal/source"
)

// Kind classifies the semantic meaning of a symbol.
type Kind uint8

const (
	KindType Kind = iota + 1
	KindField
	KindFunction
	KindConstructor
	KindParameter
	KindVariable
	KindUnaryOperator
	KindBinaryOperator
	KindExport
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindField:
		return "field"
	case KindFunction:
		return "function"
	case KindConstructor:
		return "constructor"
	case KindParameter:
		return "parameter"
	case KindVariable:
		return "variable"
	case KindUnaryOperator:
		return "unary operator"
	case KindBinaryOperator:
		return "binary operator"
	case KindExport:
		return "export"
	default:
		return "invalid"
	}
}

// Symbol describes a named entity available in a scope.
type Symbol interface {
	Name() string
	Kind() Kind
	// Decl is the span of the declaring syntax; empty for builtins and generated members.
	Decl() source.Span
}

// Value is a symbol that can be read as an expression: variables, parameters and fields.
type Value interface {
	Symbol
	ValueType() *TypeSymbol
	IsReadOnly() bool
}

// Callable is anything with a parameter list and a bound body.
type Callable interface {
	Symbol
	Parameters() []*ParameterSymbol
	ReturnType() *TypeSymbol
}

// Visibility of a member. The zero value is Private.
type Visibility uint8

const (
	Private Visibility = iota
	Public
)

func (v Visibility) String() string {
	if v == Public {
		return "public"
	}
	return "private"
}

type named struct {
	name string
	decl source.Span
}

func (n *named) Name() string      { return n.name }
func (n *named) Decl() source.Span { return n.decl }
