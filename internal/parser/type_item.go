package parser

import (
	"zephyr/internal/ast"
	"zephyr/internal/diag"
	"zephyr/internal/source"
	"zephyr/internal/token"
)

var memberStarters = []token.Kind{
	token.KwPub, token.KwPriv, token.KwShared,
	token.KwVar, token.KwConst, token.KwFn, token.KwConstructor, token.KwOperator,
}

// parseTypeDecl parses `type Name<T, U> { members }`.
func (p *Parser) parseTypeDecl() (ast.Decl, bool) {
	kw := p.advance()
	name, ok := p.parseIdent("type name")
	if !ok {
		return nil, false
	}
	decl := &ast.TypeDecl{Name: name}
	if p.at(token.Lt) {
		p.advance()
		for {
			g, ok := p.parseIdent("generic parameter name")
			if !ok {
				return nil, false
			}
			decl.Generics = append(decl.Generics, g)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if _, ok := p.expect(token.Gt, diag.SynUnexpectedToken, "expected '>' after generic parameters"); !ok {
			return nil, false
		}
	}
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to open type body")
	if !ok {
		return nil, false
	}
	for !p.atOr(token.RBrace, token.EOF) {
		m, ok := p.parseMember()
		if !ok {
			p.resyncMember()
			continue
		}
		decl.Members = append(decl.Members, m)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close type body"); !ok {
		p.report(diag.SynUnclosedBrace, diag.SevInfo, open.Span, "type body opened here")
	}
	decl.Loc = p.spanFrom(kw.Span)
	return decl, true
}

// resyncMember skips to the next member starter or the closing brace, eating a ';'.
func (p *Parser) resyncMember() {
	p.resyncUntil(append([]token.Kind{token.Semicolon}, memberStarters...)...)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

func (p *Parser) parseModifiers() ast.Modifiers {
	var mods ast.Modifiers
	for p.atOr(token.KwPub, token.KwPriv, token.KwShared) {
		tok := p.advance()
		if mods.Loc.Empty() {
			mods.Loc = tok.Span
		} else {
			mods.Loc = mods.Loc.Cover(tok.Span)
		}
		switch tok.Kind {
		case token.KwShared:
			if mods.Shared {
				p.report(diag.SynDuplicateModifier, diag.SevError, tok.Span, "duplicate modifier 'shared'")
			}
			mods.Shared = true
		default:
			vis := ast.VisPublic
			if tok.Kind == token.KwPriv {
				vis = ast.VisPrivate
			}
			if mods.Visibility != ast.VisDefault {
				p.report(diag.SynDuplicateModifier, diag.SevError, tok.Span, "visibility already specified")
			}
			mods.Visibility = vis
		}
	}
	return mods
}

func (p *Parser) parseMember() (ast.Member, bool) {
	start := p.lx.Peek().Span
	mods := p.parseModifiers()
	switch p.lx.Peek().Kind {
	case token.KwVar, token.KwConst:
		return p.parseField(start, mods)
	case token.KwFn:
		return p.parseFunction(start, mods)
	case token.KwConstructor:
		return p.parseConstructor(start, mods)
	case token.KwOperator:
		return p.parseOperator(start, mods)
	default:
		p.err(diag.SynUnexpectedToken, "expected member declaration, got '"+p.lx.Peek().Text+"'")
		if !p.atOr(memberStarters...) && !p.at(token.RBrace) {
			p.advance()
		}
		return nil, false
	}
}

// parseField parses `(var|const) name: Type (= init)?;`.
func (p *Parser) parseField(start source.Span, mods ast.Modifiers) (ast.Member, bool) {
	kw := p.advance()
	name, ok := p.parseIdent("field name")
	if !ok {
		return nil, false
	}
	typ, ok := p.parseTypeClause()
	if !ok {
		return nil, false
	}
	field := &ast.FieldDecl{Mods: mods, Const: kw.Kind == token.KwConst, Name: name, Type: typ}
	if p.at(token.Assign) {
		p.advance()
		init, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		field.Init = init
	}
	if !p.expectSemicolon("field declaration") {
		return nil, false
	}
	field.Loc = p.spanFrom(start)
	return field, true
}
