package parser

import (
	"zephyr/internal/ast"
	"zephyr/internal/diag"
	"zephyr/internal/source"
	"zephyr/internal/token"
)

// advance consumes the next token and remembers its span.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagnosticSpan points at the next token, or just past the last one at EOF.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF {
		return p.lastSpan.AtEnd()
	}
	return peek.Span
}

// expect consumes a token of kind k or reports code and returns false.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagnosticSpan()
	if k == token.Semicolon {
		// a missing ';' belongs to the end of the previous token
		sp = p.lastSpan.AtEnd()
	}
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

func (p *Parser) expectSemicolon(after string) bool {
	_, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after "+after)
	return ok
}

func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.diagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil {
		return false
	}
	if sev == diag.SevError {
		if p.opts.Enough() {
			return false
		}
		p.opts.CurrentErrors++
	}
	diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, msg).Emit()
	return true
}

// spanFrom covers from start to the last consumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

func (p *Parser) parseIdent(what string) (ast.Ident, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return ast.Ident{Name: tok.Text, Loc: tok.Span}, true
	}
	p.err(diag.SynExpectIdentifier, "expected "+what+", got '"+p.lx.Peek().Text+"'")
	return ast.Ident{Loc: p.diagnosticSpan()}, false
}

// parseQualifiedName parses ident ('.' ident)*.
func (p *Parser) parseQualifiedName(what string) (ast.QualifiedName, bool) {
	first, ok := p.parseIdent(what)
	if !ok {
		return ast.QualifiedName{}, false
	}
	q := ast.QualifiedName{Parts: []ast.Ident{first}, Loc: first.Loc}
	for p.at(token.Dot) {
		p.advance()
		next, ok := p.parseIdent("identifier after '.'")
		if !ok {
			return q, false
		}
		q.Parts = append(q.Parts, next)
		q.Loc = q.Loc.Cover(next.Loc)
	}
	return q, true
}

// parseTypeRef parses qname ('[' ']')*.
func (p *Parser) parseTypeRef() (*ast.TypeRef, bool) {
	if !p.at(token.Ident) {
		p.err(diag.SynExpectType, "expected type, got '"+p.lx.Peek().Text+"'")
		return nil, false
	}
	name, ok := p.parseQualifiedName("type name")
	if !ok {
		return nil, false
	}
	ref := &ast.TypeRef{Name: name, Loc: name.Loc}
	for p.at(token.LBracket) {
		p.advance()
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' in array type"); !ok {
			return nil, false
		}
		ref.Rank++
	}
	ref.Loc = p.spanFrom(ref.Loc)
	return ref, true
}

// parseTypeClause parses ':' typeRef.
func (p *Parser) parseTypeClause() (*ast.TypeRef, bool) {
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' before type"); !ok {
		return nil, false
	}
	return p.parseTypeRef()
}
