package bound

import (
	"zephyr/internal/source"
	"zephyr/internal/symbols"
)

// ErrorExpr stands in for anything that failed to bind.
type ErrorExpr struct {
	Loc source.Span
}

// LiteralExpr holds a decoded constant: bool, int64, float64, string or rune.
type LiteralExpr struct {
	Value any
	Typ   *symbols.TypeSymbol
	Loc   source.Span
}

type UnaryExpr struct {
	Op      *symbols.UnaryOperatorSymbol
	Operand Expr
	Loc     source.Span
}

type BinaryExpr struct {
	Left  Expr
	Op    *symbols.BinaryOperatorSymbol
	Right Expr
	Loc   source.Span
}

type ConditionalExpr struct {
	Cond Expr
	Then Expr
	Else Expr
	Loc  source.Span
}

// InstanceCreationExpr is `new T<G>(args)`. Generics maps the type's placeholder
// names to the supplied arguments.
type InstanceCreationExpr struct {
	Typ         *symbols.TypeSymbol
	Constructor *symbols.ConstructorSymbol
	Args        []Expr
	Generics    map[string]*symbols.TypeSymbol
	Loc         source.Span
}

// VariableExpr reads a local variable or parameter.
type VariableExpr struct {
	Var symbols.Value
	Loc source.Span
}

// AssignmentExpr stores Value into Target: a VariableExpr, FieldAccessExpr or
// ArrayAccessExpr.
type AssignmentExpr struct {
	Target Expr
	Value  Expr
	Loc    source.Span
}

// FieldAccessExpr reads a field. Target is a TypeExpr for shared fields. Typ is the
// declared field type; a ConversionExpr around the access carries the substituted
// type when the target has known generic arguments.
type FieldAccessExpr struct {
	Target Expr
	Field  *symbols.FieldSymbol
	Typ    *symbols.TypeSymbol
	Loc    source.Span
}

// FunctionCallExpr calls a member function. Target is a TypeExpr for shared
// functions. Typ is the declared return type, converted like FieldAccessExpr.
type FunctionCallExpr struct {
	Target   Expr
	Function *symbols.FunctionSymbol
	Args     []Expr
	Typ      *symbols.TypeSymbol
	Loc      source.Span
}

type ThisExpr struct {
	Typ *symbols.TypeSymbol
	Loc source.Span
}

// TypeExpr is a type name used as a value, the target of static member access.
type TypeExpr struct {
	Typ *symbols.TypeSymbol
	Loc source.Span
}

// Operation identifies a host-evaluated body; the builtin package defines the values.
type Operation interface {
	OpName() string
}

// InternalCallExpr invokes a host operation on `this` and the callable's parameters.
type InternalCallExpr struct {
	Op   Operation
	Args []Expr
	Typ  *symbols.TypeSymbol
	Loc  source.Span
}

type ArrayLiteralExpr struct {
	Elems []Expr
	Typ   *symbols.TypeSymbol
	Loc   source.Span
}

type ArrayAccessExpr struct {
	Target Expr
	Index  Expr
	Typ    *symbols.TypeSymbol
	Loc    source.Span
}

// ArraySize is one dimension of an array creation with its optional fill value.
type ArraySize struct {
	Size Expr
	Init Expr
}

type ArrayCreationExpr struct {
	Elem  *symbols.TypeSymbol
	Sizes []ArraySize
	Typ   *symbols.TypeSymbol
	Loc   source.Span
}

// ConversionExpr marks a value flowing into a slot of another static type: a
// generic placeholder, `any`, or a specialized empty array.
type ConversionExpr struct {
	X   Expr
	Typ *symbols.TypeSymbol
	Loc source.Span
}

// TypeCheckExpr is `x is T`; Typ is bool.
type TypeCheckExpr struct {
	X      Expr
	Target *symbols.TypeSymbol
	Typ    *symbols.TypeSymbol
	Loc    source.Span
}

// TypeEqualsExpr compares the runtime types and values of Left and Right. Generated
// equals bodies return it.
type TypeEqualsExpr struct {
	Left  Expr
	Right Expr
	Typ   *symbols.TypeSymbol
	Loc   source.Span
}

func (e *ErrorExpr) Span() source.Span            { return e.Loc }
func (e *LiteralExpr) Span() source.Span          { return e.Loc }
func (e *UnaryExpr) Span() source.Span            { return e.Loc }
func (e *BinaryExpr) Span() source.Span           { return e.Loc }
func (e *ConditionalExpr) Span() source.Span      { return e.Loc }
func (e *InstanceCreationExpr) Span() source.Span { return e.Loc }
func (e *VariableExpr) Span() source.Span         { return e.Loc }
func (e *AssignmentExpr) Span() source.Span       { return e.Loc }
func (e *FieldAccessExpr) Span() source.Span      { return e.Loc }
func (e *FunctionCallExpr) Span() source.Span     { return e.Loc }
func (e *ThisExpr) Span() source.Span             { return e.Loc }
func (e *TypeExpr) Span() source.Span             { return e.Loc }
func (e *InternalCallExpr) Span() source.Span     { return e.Loc }
func (e *ArrayLiteralExpr) Span() source.Span     { return e.Loc }
func (e *ArrayAccessExpr) Span() source.Span      { return e.Loc }
func (e *ArrayCreationExpr) Span() source.Span    { return e.Loc }
func (e *ConversionExpr) Span() source.Span       { return e.Loc }
func (e *TypeCheckExpr) Span() source.Span        { return e.Loc }
func (e *TypeEqualsExpr) Span() source.Span       { return e.Loc }

func (*ErrorExpr) Kind() Kind            { return KindError }
func (*LiteralExpr) Kind() Kind          { return KindLiteral }
func (*UnaryExpr) Kind() Kind            { return KindUnary }
func (*BinaryExpr) Kind() Kind           { return KindBinary }
func (*ConditionalExpr) Kind() Kind      { return KindConditional }
func (*InstanceCreationExpr) Kind() Kind { return KindInstanceCreation }
func (*VariableExpr) Kind() Kind         { return KindVariable }
func (*AssignmentExpr) Kind() Kind       { return KindAssignment }
func (*FieldAccessExpr) Kind() Kind      { return KindFieldAccess }
func (*FunctionCallExpr) Kind() Kind     { return KindFunctionCall }
func (*ThisExpr) Kind() Kind             { return KindThis }
func (*TypeExpr) Kind() Kind             { return KindTypeExpression }
func (*InternalCallExpr) Kind() Kind     { return KindInternalCall }
func (*ArrayLiteralExpr) Kind() Kind     { return KindArrayLiteral }
func (*ArrayAccessExpr) Kind() Kind      { return KindArrayAccess }
func (*ArrayCreationExpr) Kind() Kind    { return KindArrayCreation }
func (*ConversionExpr) Kind() Kind       { return KindConversion }
func (*TypeCheckExpr) Kind() Kind        { return KindTypeCheck }
func (*TypeEqualsExpr) Kind() Kind       { return KindTypeEquals }

func (*ErrorExpr) Type() *symbols.TypeSymbol              { return symbols.Error }
func (e *LiteralExpr) Type() *symbols.TypeSymbol          { return e.Typ }
func (e *UnaryExpr) Type() *symbols.TypeSymbol            { return e.Op.Return }
func (e *BinaryExpr) Type() *symbols.TypeSymbol           { return e.Op.Return }
func (e *ConditionalExpr) Type() *symbols.TypeSymbol      { return e.Then.Type() }
func (e *InstanceCreationExpr) Type() *symbols.TypeSymbol { return e.Typ }
func (e *VariableExpr) Type() *symbols.TypeSymbol         { return e.Var.ValueType() }
func (e *AssignmentExpr) Type() *symbols.TypeSymbol       { return e.Target.Type() }
func (e *FieldAccessExpr) Type() *symbols.TypeSymbol      { return e.Typ }
func (e *FunctionCallExpr) Type() *symbols.TypeSymbol     { return e.Typ }
func (e *ThisExpr) Type() *symbols.TypeSymbol             { return e.Typ }
func (e *TypeExpr) Type() *symbols.TypeSymbol             { return e.Typ }
func (e *InternalCallExpr) Type() *symbols.TypeSymbol     { return e.Typ }
func (e *ArrayLiteralExpr) Type() *symbols.TypeSymbol     { return e.Typ }
func (e *ArrayAccessExpr) Type() *symbols.TypeSymbol      { return e.Typ }
func (e *ArrayCreationExpr) Type() *symbols.TypeSymbol    { return e.Typ }
func (e *ConversionExpr) Type() *symbols.TypeSymbol       { return e.Typ }
func (e *TypeCheckExpr) Type() *symbols.TypeSymbol        { return e.Typ }
func (e *TypeEqualsExpr) Type() *symbols.TypeSymbol       { return e.Typ }

// IsError reports whether e failed to bind.
func IsError(e Expr) bool {
	return e == nil || symbols.IsError(e.Type())
}
