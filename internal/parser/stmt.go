package parser

import (
	"zephyr/internal/ast"
	"zephyr/internal/diag"
	"zephyr/internal/token"
)

var stmtStarters = []token.Kind{
	token.LBrace, token.KwVar, token.KwConst, token.KwIf, token.KwWhile, token.KwDo,
	token.KwFor, token.KwBreak, token.KwContinue, token.KwReturn,
}

// parseBlock parses '{' stmt* '}'. Broken statements are skipped, not propagated.
func (p *Parser) parseBlock() (*ast.BlockStmt, bool) {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to open block")
	if !ok {
		return nil, false
	}
	block := &ast.BlockStmt{}
	for !p.atOr(token.RBrace, token.EOF) {
		stmt, ok := p.parseStmt()
		if !ok {
			p.resyncStmt()
			continue
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block"); !ok {
		p.report(diag.SynUnclosedBrace, diag.SevInfo, open.Span, "block opened here")
	}
	block.Loc = p.spanFrom(open.Span)
	return block, true
}

// resyncStmt skips to the end of the broken statement: past a ';', or up to a
// '}' or the next statement keyword.
func (p *Parser) resyncStmt() {
	p.resyncUntil(append([]token.Kind{token.Semicolon}, stmtStarters[1:]...)...)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

func (p *Parser) parseStmt() (ast.Stmt, bool) {
	switch p.lx.Peek().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwVar, token.KwConst:
		return p.parseVarStmt()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDoWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwBreak:
		kw := p.advance()
		if !p.expectSemicolon("'break'") {
			return nil, false
		}
		return &ast.BreakStmt{Loc: p.spanFrom(kw.Span)}, true
	case token.KwContinue:
		kw := p.advance()
		if !p.expectSemicolon("'continue'") {
			return nil, false
		}
		return &ast.ContinueStmt{Loc: p.spanFrom(kw.Span)}, true
	case token.KwReturn:
		return p.parseReturn()
	default:
		return p.parseExprStmt()
	}
}

// parseVarStmt parses `(var|const) name: Type (= init)?;`.
func (p *Parser) parseVarStmt() (ast.Stmt, bool) {
	kw := p.advance()
	name, ok := p.parseIdent("variable name")
	if !ok {
		return nil, false
	}
	typ, ok := p.parseTypeClause()
	if !ok {
		return nil, false
	}
	stmt := &ast.VarStmt{Const: kw.Kind == token.KwConst, Name: name, Type: typ}
	if p.at(token.Assign) {
		p.advance()
		if stmt.Init, ok = p.parseExpr(); !ok {
			return nil, false
		}
	}
	if !p.expectSemicolon("variable declaration") {
		return nil, false
	}
	stmt.Loc = p.spanFrom(kw.Span)
	return stmt, true
}

func (p *Parser) parseExprStmt() (ast.Stmt, bool) {
	x, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if !p.expectSemicolon("expression") {
		return nil, false
	}
	return &ast.ExprStmt{X: x, Loc: p.spanFrom(x.Span())}, true
}

func (p *Parser) parseReturn() (ast.Stmt, bool) {
	kw := p.advance()
	stmt := &ast.ReturnStmt{}
	if !p.at(token.Semicolon) {
		value, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		stmt.Value = value
	}
	if !p.expectSemicolon("return") {
		return nil, false
	}
	stmt.Loc = p.spanFrom(kw.Span)
	return stmt, true
}

// parseCondition parses '(' expr ')'.
func (p *Parser) parseCondition(after string) (ast.Expr, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after '"+after+"'"); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after condition"); !ok {
		return nil, false
	}
	return cond, true
}

func (p *Parser) parseIf() (ast.Stmt, bool) {
	kw := p.advance()
	cond, ok := p.parseCondition("if")
	if !ok {
		return nil, false
	}
	then, ok := p.parseStmt()
	if !ok {
		return nil, false
	}
	stmt := &ast.IfStmt{Cond: cond, Then: then}
	if p.at(token.KwElse) {
		p.advance()
		if stmt.Else, ok = p.parseStmt(); !ok {
			return nil, false
		}
	}
	stmt.Loc = p.spanFrom(kw.Span)
	return stmt, true
}

func (p *Parser) parseWhile() (ast.Stmt, bool) {
	kw := p.advance()
	cond, ok := p.parseCondition("while")
	if !ok {
		return nil, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return nil, false
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Loc: p.spanFrom(kw.Span)}, true
}

// parseDoWhile parses `do stmt while (cond);`.
func (p *Parser) parseDoWhile() (ast.Stmt, bool) {
	kw := p.advance()
	body, ok := p.parseStmt()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' after do body"); !ok {
		return nil, false
	}
	cond, ok := p.parseCondition("while")
	if !ok {
		return nil, false
	}
	if !p.expectSemicolon("do-while") {
		return nil, false
	}
	return &ast.DoWhileStmt{Body: body, Cond: cond, Loc: p.spanFrom(kw.Span)}, true
}

// parseFor parses `for (init? ; cond? ; step?) stmt`. The init clause is a
// variable declaration or an expression statement and owns its ';'.
func (p *Parser) parseFor() (ast.Stmt, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'for'"); !ok {
		return nil, false
	}
	stmt := &ast.ForStmt{}
	var ok bool
	switch {
	case p.at(token.Semicolon):
		p.advance()
	case p.atOr(token.KwVar, token.KwConst):
		if stmt.Init, ok = p.parseVarStmt(); !ok {
			return nil, false
		}
	default:
		if stmt.Init, ok = p.parseExprStmt(); !ok {
			return nil, false
		}
	}
	if !p.at(token.Semicolon) {
		if stmt.Cond, ok = p.parseExpr(); !ok {
			return nil, false
		}
	}
	if !p.expectSemicolon("for condition") {
		return nil, false
	}
	if !p.at(token.RParen) {
		if stmt.Step, ok = p.parseExpr(); !ok {
			return nil, false
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after for clauses"); !ok {
		return nil, false
	}
	if stmt.Body, ok = p.parseStmt(); !ok {
		return nil, false
	}
	stmt.Loc = p.spanFrom(kw.Span)
	return stmt, true
}
