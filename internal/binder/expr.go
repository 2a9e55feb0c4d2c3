package binder

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"zephyr/internal/ast"
	"zephyr/internal/bound"
	"zephyr/internal/builtin"
	"zephyr/internal/diag"
	"zephyr/internal/lexer"
	"zephyr/internal/source"
	"zephyr/internal/symbols"
	"zephyr/internal/token"
)

func (b *binder) bindExpr(e ast.Expr) bound.Expr {
	switch e.ExprKind() {
	case ast.ExprParen:
		return b.bindExpr(e.(*ast.ParenExpr).Inner)
	case ast.ExprLiteral:
		return b.bindLiteral(e.(*ast.LiteralExpr))
	case ast.ExprUnary:
		return b.bindUnary(e.(*ast.UnaryExpr))
	case ast.ExprBinary:
		return b.bindBinary(e.(*ast.BinaryExpr))
	case ast.ExprConditional:
		return b.bindConditional(e.(*ast.ConditionalExpr))
	case ast.ExprName:
		return b.bindName(e.(*ast.NameExpr))
	case ast.ExprThis:
		return b.bindThis(e.(*ast.ThisExpr))
	case ast.ExprMember:
		return b.bindMember(e.(*ast.MemberExpr))
	case ast.ExprIndex:
		return b.bindIndex(e.(*ast.IndexExpr))
	case ast.ExprArrayCreation:
		return b.bindArrayCreation(e.(*ast.ArrayCreationExpr))
	case ast.ExprArrayLiteral:
		return b.bindArrayLiteral(e.(*ast.ArrayLiteralExpr))
	case ast.ExprNew:
		return b.bindNew(e.(*ast.NewExpr))
	case ast.ExprCall:
		return b.bindCall(e.(*ast.CallExpr))
	case ast.ExprAssign:
		return b.bindAssign(e.(*ast.AssignExpr))
	case ast.ExprTypeCheck:
		return b.bindTypeCheck(e.(*ast.TypeCheckExpr))
	default:
		panic(fmt.Errorf("binder: unexpected expression %T", e))
	}
}

func (b *binder) bindLiteral(e *ast.LiteralExpr) bound.Expr {
	tok := e.Tok
	lit := &bound.LiteralExpr{Loc: tok.Span}
	switch tok.Kind {
	case token.IntLit:
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			b.errorf(diag.SemaInvalidNumberLiteral, tok.Span, "invalid int literal %s", tok.Text)
			return errorExpr(tok.Span)
		}
		lit.Value, lit.Typ = v, builtin.Int
	case token.FloatLit:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			b.errorf(diag.SemaInvalidNumberLiteral, tok.Span, "invalid double literal %s", tok.Text)
			return errorExpr(tok.Span)
		}
		lit.Value, lit.Typ = v, builtin.Double
	case token.StringLit:
		s, err := lexer.Unquote(tok.Text)
		if err != nil {
			// already reported by the lexer
			return errorExpr(tok.Span)
		}
		lit.Value, lit.Typ = s, builtin.String
	case token.CharLit:
		s, err := lexer.Unquote(tok.Text)
		if err != nil {
			return errorExpr(tok.Span)
		}
		r, _ := utf8.DecodeRuneInString(s)
		lit.Value, lit.Typ = r, builtin.Char
	case token.KwTrue, token.KwFalse:
		lit.Value, lit.Typ = tok.Kind == token.KwTrue, builtin.Bool
	default:
		panic(fmt.Errorf("binder: unexpected literal token %v", tok.Kind))
	}
	return lit
}

func (b *binder) bindUnary(e *ast.UnaryExpr) bound.Expr {
	operand := b.bindExpr(e.Operand)
	if bound.IsError(operand) {
		return errorExpr(e.Loc)
	}
	op, ok := memberType(operand.Type()).UnaryOperator(e.Op.Text)
	if !ok {
		b.errorf(diag.SemaUndefinedUnaryOperator, e.Op.Span, "operator %s is not defined for %s", e.Op.Text, operand.Type().Name())
		return errorExpr(e.Loc)
	}
	return &bound.UnaryExpr{Op: op, Operand: operand, Loc: e.Loc}
}

// bindBinary looks the operator up on the left type by (operator, right type). A
// string on the left turns every non-string right operand into its toString()
// result before the lookup; an `any` overload accepts every right operand.
func (b *binder) bindBinary(e *ast.BinaryExpr) bound.Expr {
	left := b.bindExpr(e.Left)
	right := b.bindExpr(e.Right)
	if bound.IsError(left) || bound.IsError(right) {
		return errorExpr(e.Loc)
	}
	lt := memberType(left.Type())
	text := e.Op.Text
	rt := right.Type()

	if left.Type().Equal(builtin.String) && !rt.Equal(builtin.String) {
		if str, ok := toStringCall(right); ok {
			right = str
		}
	}
	if op, ok := lt.BinaryOperator(text, right.Type()); ok {
		return &bound.BinaryExpr{Left: left, Op: op, Right: right, Loc: e.Loc}
	}
	if op, ok := lt.BinaryOperator(text, builtin.Any); ok && !right.Type().Equal(builtin.Void) {
		conv := &bound.ConversionExpr{X: right, Typ: builtin.Any, Loc: right.Span()}
		return &bound.BinaryExpr{Left: left, Op: op, Right: conv, Loc: e.Loc}
	}

	b.errorf(diag.SemaUndefinedBinaryOperator, e.Op.Span, "operator %s is not defined for %s and %s",
		text, left.Type().Name(), rt.Name())
	return errorExpr(e.Loc)
}

// toStringCall builds `x.toString()` for any value whose type has the member.
func toStringCall(x bound.Expr) (bound.Expr, bool) {
	f, ok := memberType(x.Type()).Function("toString")
	if !ok || f.Shared || len(f.Params) != 0 || !f.Return.Equal(builtin.String) {
		return nil, false
	}
	return &bound.FunctionCallExpr{Target: x, Function: f, Typ: builtin.String, Loc: x.Span()}, true
}

func (b *binder) bindConditional(e *ast.ConditionalExpr) bound.Expr {
	cond := b.bindExpr(e.Cond)
	then := b.bindExpr(e.Then)
	els := b.bindExpr(e.Else)
	if !bound.IsError(cond) && !cond.Type().Equal(builtin.Bool) {
		b.errorf(diag.SemaInvalidConditionType, e.Cond.Span(), "condition must be bool, found %s", cond.Type().Name())
		return errorExpr(e.Loc)
	}
	if bound.IsError(cond) || bound.IsError(then) || bound.IsError(els) {
		return errorExpr(e.Loc)
	}
	if !then.Type().Equal(els.Type()) {
		b.errorf(diag.SemaMismatchingTypes, e.Loc, "conditional branches have different types %s and %s",
			then.Type().Name(), els.Type().Name())
		return errorExpr(e.Loc)
	}
	return &bound.ConditionalExpr{Cond: cond, Then: then, Else: els, Loc: e.Loc}
}

// bindName resolves a bare identifier: locals and parameters, then members of the
// enclosing type, then type names used as static targets.
func (b *binder) bindName(e *ast.NameExpr) bound.Expr {
	name := e.Name.Name
	sp := e.Name.Loc
	if sym, ok := b.scope.Lookup(name); ok {
		switch sym := sym.(type) {
		case *symbols.VariableSymbol, *symbols.ParameterSymbol:
			return &bound.VariableExpr{Var: sym.(symbols.Value), Loc: sp}
		case *symbols.FieldSymbol:
			return b.implicitField(sym, sp)
		case *symbols.FunctionSymbol:
			b.errorf(diag.SemaFunctionMustBeCalled, sp, "function %s must be called", name)
			return errorExpr(sp)
		case *symbols.TypeSymbol:
			return &bound.TypeExpr{Typ: sym, Loc: sp}
		}
	}
	b.errorf(diag.SemaUndefinedName, sp, "%s is not defined", name)
	return errorExpr(sp)
}

// implicitField reads a field of the enclosing type without a target.
func (b *binder) implicitField(f *symbols.FieldSymbol, sp source.Span) bound.Expr {
	if f.Shared {
		return &bound.FieldAccessExpr{Target: &bound.TypeExpr{Typ: f.Owner, Loc: sp}, Field: f, Typ: f.Type, Loc: sp}
	}
	if !b.fn.hasThis() {
		b.errorf(diag.SemaInstanceFieldOnType, sp, "instance field %s cannot be used without an instance", f.Name())
		return errorExpr(sp)
	}
	this := &bound.ThisExpr{Typ: b.currentType(), Loc: sp}
	return &bound.FieldAccessExpr{Target: this, Field: f, Typ: f.Type, Loc: sp}
}

func (b *binder) bindThis(e *ast.ThisExpr) bound.Expr {
	if !b.fn.hasThis() {
		b.errorf(diag.SemaThisOutsideCallable, e.Loc, "this can only be used inside an instance member")
		return errorExpr(e.Loc)
	}
	return &bound.ThisExpr{Typ: b.currentType(), Loc: e.Loc}
}
