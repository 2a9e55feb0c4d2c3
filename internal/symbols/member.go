package symbols

import (
	"strings"

	"zephyr/internal/source"
)

// FieldSymbol is a field of a type. Shared fields are static.
type FieldSymbol struct {
	named
	ReadOnly   bool
	Shared     bool
	Visibility Visibility
	Type       *TypeSymbol
	Owner      *TypeSymbol
}

func NewField(name string, typ *TypeSymbol, decl source.Span) *FieldSymbol {
	return &FieldSymbol{named: named{name: name, decl: decl}, Type: typ}
}

func (*FieldSymbol) Kind() Kind                 { return KindField }
func (f *FieldSymbol) ValueType() *TypeSymbol { return f.Type }
func (f *FieldSymbol) IsReadOnly() bool       { return f.ReadOnly }

// ParameterSymbol is a callable parameter.
type ParameterSymbol struct {
	named
	ReadOnly bool
	Type     *TypeSymbol
}

func NewParameter(name string, typ *TypeSymbol, decl source.Span) *ParameterSymbol {
	return &ParameterSymbol{named: named{name: name, decl: decl}, Type: typ}
}

func (*ParameterSymbol) Kind() Kind                 { return KindParameter }
func (p *ParameterSymbol) ValueType() *TypeSymbol { return p.Type }
func (p *ParameterSymbol) IsReadOnly() bool       { return p.ReadOnly }

// FunctionSymbol is a named member function. Return is the void type for procedures.
type FunctionSymbol struct {
	named
	Shared     bool
	Visibility Visibility
	Params     []*ParameterSymbol
	Return     *TypeSymbol
	Owner      *TypeSymbol
	// Generated marks members synthesized by the binder (default toString/equals).
	Generated bool
}

func NewFunction(name string, params []*ParameterSymbol, ret *TypeSymbol, decl source.Span) *FunctionSymbol {
	return &FunctionSymbol{named: named{name: name, decl: decl}, Params: params, Return: ret}
}

func (*FunctionSymbol) Kind() Kind                            { return KindFunction }
func (f *FunctionSymbol) Parameters() []*ParameterSymbol { return f.Params }
func (f *FunctionSymbol) ReturnType() *TypeSymbol        { return f.Return }

func (f *FunctionSymbol) String() string {
	return f.name + "(" + paramList(f.Params) + "): " + f.Return.Name()
}

// ConstructorSymbol is keyed by arity within its owner.
type ConstructorSymbol struct {
	named
	Visibility Visibility
	Params     []*ParameterSymbol
	Owner      *TypeSymbol
	Generated  bool
}

func NewConstructor(owner *TypeSymbol, params []*ParameterSymbol, decl source.Span) *ConstructorSymbol {
	return &ConstructorSymbol{named: named{name: "constructor", decl: decl}, Params: params, Owner: owner}
}

func (*ConstructorSymbol) Kind() Kind                            { return KindConstructor }
func (c *ConstructorSymbol) Parameters() []*ParameterSymbol { return c.Params }

// ReturnType of a constructor is its owner; bodies never return a value.
func (c *ConstructorSymbol) ReturnType() *TypeSymbol { return c.Owner }

func (c *ConstructorSymbol) String() string {
	return c.Owner.Name() + "(" + paramList(c.Params) + ")"
}

// UnaryOperatorSymbol is keyed by its operator text.
type UnaryOperatorSymbol struct {
	named
	Return *TypeSymbol
	Owner  *TypeSymbol
}

func NewUnaryOperator(op string, ret *TypeSymbol, decl source.Span) *UnaryOperatorSymbol {
	return &UnaryOperatorSymbol{named: named{name: op, decl: decl}, Return: ret}
}

func (*UnaryOperatorSymbol) Kind() Kind                       { return KindUnaryOperator }
func (*UnaryOperatorSymbol) Parameters() []*ParameterSymbol { return nil }
func (u *UnaryOperatorSymbol) ReturnType() *TypeSymbol      { return u.Return }

// BinaryOperatorSymbol is keyed by operator text and right operand type.
type BinaryOperatorSymbol struct {
	named
	Right  *ParameterSymbol
	Return *TypeSymbol
	Owner  *TypeSymbol
}

func NewBinaryOperator(op string, right *ParameterSymbol, ret *TypeSymbol, decl source.Span) *BinaryOperatorSymbol {
	return &BinaryOperatorSymbol{named: named{name: op, decl: decl}, Right: right, Return: ret}
}

func (*BinaryOperatorSymbol) Kind() Kind { return KindBinaryOperator }
func (b *BinaryOperatorSymbol) Parameters() []*ParameterSymbol {
	return []*ParameterSymbol{b.Right}
}
func (b *BinaryOperatorSymbol) ReturnType() *TypeSymbol { return b.Return }

// VariableSymbol is a local variable. Generics maps placeholder names to concrete
// types when the variable was initialized from a generic instance creation.
type VariableSymbol struct {
	named
	ReadOnly bool
	Type     *TypeSymbol
	Generics map[string]*TypeSymbol
}

func NewVariable(name string, typ *TypeSymbol, readOnly bool, decl source.Span) *VariableSymbol {
	return &VariableSymbol{named: named{name: name, decl: decl}, Type: typ, ReadOnly: readOnly}
}

func (*VariableSymbol) Kind() Kind                 { return KindVariable }
func (v *VariableSymbol) ValueType() *TypeSymbol { return v.Type }
func (v *VariableSymbol) IsReadOnly() bool       { return v.ReadOnly }

// ExportSymbol names a type made visible to importers.
type ExportSymbol struct {
	named
}

func NewExport(name string, decl source.Span) *ExportSymbol {
	return &ExportSymbol{named: named{name: name, decl: decl}}
}

func (*ExportSymbol) Kind() Kind { return KindExport }

func paramList(params []*ParameterSymbol) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.name + ": " + p.Type.Name()
	}
	return strings.Join(parts, ", ")
}
