package parser

import (
	"zephyr/internal/ast"
	"zephyr/internal/diag"
	"zephyr/internal/source"
	"zephyr/internal/token"
)

// parseParams parses '(' (name: Type (, name: Type)*)? ')'.
func (p *Parser) parseParams() ([]*ast.Param, bool) {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' to open parameter list")
	if !ok {
		return nil, false
	}
	var params []*ast.Param
	for !p.atOr(token.RParen, token.EOF) {
		name, ok := p.parseIdent("parameter name")
		if !ok {
			return nil, false
		}
		typ, ok := p.parseTypeClause()
		if !ok {
			return nil, false
		}
		params = append(params, &ast.Param{Name: name, Type: typ, Loc: name.Loc.Cover(typ.Loc)})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list"); !ok {
		p.report(diag.SynUnclosedParen, diag.SevInfo, open.Span, "parameter list opened here")
		return nil, false
	}
	return params, true
}

// parseFunction parses `fn name(params) (: Type)? block`.
func (p *Parser) parseFunction(start source.Span, mods ast.Modifiers) (ast.Member, bool) {
	p.advance()
	name, ok := p.parseIdent("function name")
	if !ok {
		return nil, false
	}
	params, ok := p.parseParams()
	if !ok {
		return nil, false
	}
	fn := &ast.FunctionDecl{Mods: mods, Name: name, Params: params}
	if p.at(token.Colon) {
		ret, ok := p.parseTypeClause()
		if !ok {
			return nil, false
		}
		fn.Return = ret
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	fn.Body = body
	fn.Loc = p.spanFrom(start)
	return fn, true
}

// parseConstructor parses `constructor(params) block`. Only visibility modifiers apply.
func (p *Parser) parseConstructor(start source.Span, mods ast.Modifiers) (ast.Member, bool) {
	kw := p.advance()
	if mods.Shared {
		p.report(diag.SynModifierNotAllowed, diag.SevError, mods.Loc, "constructors cannot be shared")
		mods.Shared = false
	}
	params, ok := p.parseParams()
	if !ok {
		return nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return &ast.ConstructorDecl{
		Mods:    mods,
		Keyword: kw.Span,
		Params:  params,
		Body:    body,
		Loc:     p.spanFrom(start),
	}, true
}

// parseOperator parses `operator OP(params): Type block`. Zero parameters make a
// unary operator, one makes a binary operator.
func (p *Parser) parseOperator(start source.Span, mods ast.Modifiers) (ast.Member, bool) {
	p.advance()
	if !mods.Loc.Empty() {
		p.report(diag.SynModifierNotAllowed, diag.SevError, mods.Loc, "operators cannot have modifiers")
		mods = ast.Modifiers{}
	}
	op := p.lx.Peek()
	if !op.IsOverloadable() {
		p.err(diag.SynInvalidOperator, "'"+op.Text+"' cannot be overloaded")
		return nil, false
	}
	p.advance()
	params, ok := p.parseParams()
	if !ok {
		return nil, false
	}
	var ret *ast.TypeRef
	if p.at(token.Colon) {
		if ret, ok = p.parseTypeClause(); !ok {
			return nil, false
		}
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	loc := p.spanFrom(start)
	switch len(params) {
	case 0:
		if !isUnaryOperator(op.Kind) {
			p.report(diag.SynInvalidOperator, diag.SevError, op.Span, "'"+op.Text+"' is not a unary operator")
			return nil, false
		}
		return &ast.UnaryOperatorDecl{Mods: mods, Op: op, Return: ret, Body: body, Loc: loc}, true
	case 1:
		if _, ok := binaryPrec[op.Kind]; !ok {
			p.report(diag.SynInvalidOperator, diag.SevError, op.Span, "'"+op.Text+"' is not a binary operator")
			return nil, false
		}
		return &ast.BinaryOperatorDecl{Mods: mods, Op: op, Right: params[0], Return: ret, Body: body, Loc: loc}, true
	default:
		p.report(diag.SynInvalidOperator, diag.SevError, op.Span, "operators take zero or one parameter")
		return nil, false
	}
}
