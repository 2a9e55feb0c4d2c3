package builtin

import (
	"fmt"

	"zephyr/internal/bound"
	"zephyr/internal/scope"
	"zephyr/internal/source"
	"zephyr/internal/symbols"
)

type paramSpec struct {
	name string
	typ  *symbols.TypeSymbol
}

type fieldSpec struct {
	name     string
	typ      *symbols.TypeSymbol
	shared   bool
	readOnly bool
	// value is a constant initializer; when nil the field is computed by op.
	value any
	op    Op
}

type funcSpec struct {
	name   string
	params []paramSpec
	ret    *symbols.TypeSymbol
	shared bool
	op     Op
}

type ctorSpec struct {
	params []paramSpec
	op     Op
}

type unarySpec struct {
	op  string
	ret *symbols.TypeSymbol
}

type binarySpec struct {
	op    string
	right *symbols.TypeSymbol
	ret   *symbols.TypeSymbol
}

// HostType is a builtin or native type: its members are declared from tables and
// their bodies are single InternalCall nodes evaluated by the host.
type HostType struct {
	sym   *symbols.TypeSymbol
	scope *scope.Type

	fields []fieldSpec
	ctors  []ctorSpec
	funcs  []funcSpec
	unary  []unarySpec
	binary []binarySpec
	// unaryOps and binaryOps map operator text to the op implementing it.
	unaryOps  map[string]Op
	binaryOps map[string]Op
}

func (h *HostType) Symbol() *symbols.TypeSymbol { return h.sym }
func (h *HostType) Scope() *scope.Type          { return h.scope }

// build runs the declare stages then the define stages.
func (h *HostType) build() *HostType {
	h.scope = scope.NewType(nil, h.sym)
	h.declareFields()
	h.declareConstructors()
	h.declareFunctions()
	h.declareOperators()
	h.sym.State = symbols.StateMembersDeclared
	h.defineFields()
	h.defineConstructors()
	h.defineFunctions()
	h.defineOperators()
	h.sym.State = symbols.StateDefined
	return h
}

func (h *HostType) declareFields() {
	for _, fs := range h.fields {
		f := symbols.NewField(fs.name, fs.typ, source.Span{})
		f.Shared = fs.shared
		f.ReadOnly = fs.readOnly
		f.Visibility = symbols.Public
		mustDeclare(h.scope.DeclareField(f))
	}
}

func (h *HostType) declareConstructors() {
	for _, cs := range h.ctors {
		c := symbols.NewConstructor(h.sym, params(cs.params), source.Span{})
		c.Visibility = symbols.Public
		mustDeclare(h.scope.DeclareConstructor(c))
	}
}

func (h *HostType) declareFunctions() {
	for _, fs := range h.funcs {
		f := symbols.NewFunction(fs.name, params(fs.params), fs.ret, source.Span{})
		f.Shared = fs.shared
		f.Visibility = symbols.Public
		mustDeclare(h.scope.DeclareFunction(f))
	}
}

func (h *HostType) declareOperators() {
	for _, us := range h.unary {
		mustDeclare(h.scope.DeclareUnaryOperator(symbols.NewUnaryOperator(us.op, us.ret, source.Span{})))
	}
	for _, bs := range h.binary {
		right := symbols.NewParameter("other", bs.right, source.Span{})
		mustDeclare(h.scope.DeclareBinaryOperator(symbols.NewBinaryOperator(bs.op, right, bs.ret, source.Span{})))
	}
}

func (h *HostType) defineFields() {
	for _, fs := range h.fields {
		f, _ := h.sym.Field(fs.name)
		if fs.value != nil {
			h.scope.DefineField(f, &bound.LiteralExpr{Value: fs.value, Typ: fs.typ})
			continue
		}
		h.scope.DefineField(f, &bound.InternalCallExpr{Op: fs.op, Args: h.thisArg(fs.shared), Typ: fs.typ})
	}
}

func (h *HostType) defineConstructors() {
	for i, cs := range h.ctors {
		c := h.sym.Constructors()[i]
		h.scope.DefineConstructor(c, h.hostBody(cs.op, false, c.Params, h.sym))
	}
}

func (h *HostType) defineFunctions() {
	for _, fs := range h.funcs {
		f, _ := h.sym.Function(fs.name)
		h.scope.DefineFunction(f, h.hostBody(fs.op, fs.shared, f.Params, f.Return))
	}
}

// defineOperators maps every declared operator to its op; a declared operator
// without one is an internal fault.
func (h *HostType) defineOperators() {
	for _, u := range h.sym.UnaryOperators() {
		h.scope.DefineUnaryOperator(u, h.hostBody(h.opFor(h.unaryOps, u.Name()), false, nil, u.Return))
	}
	for _, b := range h.sym.BinaryOperators() {
		h.scope.DefineBinaryOperator(b, h.hostBody(h.opFor(h.binaryOps, b.Name()), false, b.Parameters(), b.Return))
	}
}

func (h *HostType) opFor(table map[string]Op, text string) Op {
	op, ok := table[text]
	if !ok {
		panic(fmt.Errorf("builtin: %s declares operator %q without a host op", h.sym.Name(), text))
	}
	return op
}

func (h *HostType) thisArg(shared bool) []bound.Expr {
	if shared {
		return nil
	}
	return []bound.Expr{&bound.ThisExpr{Typ: h.sym}}
}

// hostBody builds `{ return @op(this, params...); }`, or a bare call followed by
// `return` when the result is void.
func (h *HostType) hostBody(op Op, shared bool, ps []*symbols.ParameterSymbol, ret *symbols.TypeSymbol) *bound.BlockStmt {
	args := h.thisArg(shared)
	for _, p := range ps {
		args = append(args, &bound.VariableExpr{Var: p})
	}
	call := &bound.InternalCallExpr{Op: op, Args: args, Typ: ret}
	if ret.Equal(Void) {
		return &bound.BlockStmt{Stmts: []bound.Stmt{&bound.ExpressionStmt{X: call}, &bound.ReturnStmt{}}}
	}
	return &bound.BlockStmt{Stmts: []bound.Stmt{&bound.ReturnStmt{Value: call}}}
}

func params(specs []paramSpec) []*symbols.ParameterSymbol {
	out := make([]*symbols.ParameterSymbol, len(specs))
	for i, ps := range specs {
		out[i] = symbols.NewParameter(ps.name, ps.typ, source.Span{})
	}
	return out
}

func mustDeclare(err error) {
	if err != nil {
		panic(fmt.Errorf("builtin: inconsistent member table: %w", err))
	}
}
