package parser

import (
	"zephyr/internal/ast"
	"zephyr/internal/diag"
	"zephyr/internal/source"
	"zephyr/internal/token"
)

// parseExpr parses a full expression, assignment included.
func (p *Parser) parseExpr() (ast.Expr, bool) {
	return p.parseAssignment()
}

// parseAssignment is right-associative: a = b = c parses as a = (b = c).
func (p *Parser) parseAssignment() (ast.Expr, bool) {
	target, ok := p.parseConditional()
	if !ok {
		return nil, false
	}
	if !p.lx.Peek().IsAssign() {
		return target, true
	}
	op := p.advance()
	value, ok := p.parseAssignment()
	if !ok {
		return nil, false
	}
	return &ast.AssignExpr{Op: op, Target: target, Value: value, Loc: target.Span().Cover(value.Span())}, true
}

func (p *Parser) parseConditional() (ast.Expr, bool) {
	cond, ok := p.parseBinaryExpr(precLogicalOr)
	if !ok {
		return nil, false
	}
	if !p.at(token.Question) {
		return cond, true
	}
	p.advance()
	then, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in conditional expression"); !ok {
		return nil, false
	}
	els, ok := p.parseConditional()
	if !ok {
		return nil, false
	}
	return &ast.ConditionalExpr{Cond: cond, Then: then, Else: els, Loc: cond.Span().Cover(els.Span())}, true
}

// parseBinaryExpr climbs the precedence table; all binary operators are left-associative.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.Expr, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	for {
		tok := p.lx.Peek()
		prec := binaryPrecedence(tok.Kind)
		if prec == precNone || prec < minPrec {
			return left, true
		}
		p.advance()

		if tok.Kind == token.KwIs {
			typ, ok := p.parseTypeRef()
			if !ok {
				return nil, false
			}
			left = &ast.TypeCheckExpr{X: left, Type: typ, Loc: left.Span().Cover(typ.Loc)}
			continue
		}

		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return nil, false
		}
		left = &ast.BinaryExpr{Op: tok, Left: left, Right: right, Loc: left.Span().Cover(right.Span())}
	}
}

func (p *Parser) parseUnary() (ast.Expr, bool) {
	if !isUnaryOperator(p.lx.Peek().Kind) {
		return p.parsePostfix()
	}
	op := p.advance()
	operand, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	return &ast.UnaryExpr{Op: op, Operand: operand, Loc: op.Span.Cover(operand.Span())}, true
}

// parsePostfix applies member access, indexing and calls to a primary.
func (p *Parser) parsePostfix() (ast.Expr, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	for {
		switch p.lx.Peek().Kind {
		case token.Dot:
			p.advance()
			name, ok := p.parseIdent("member name after '.'")
			if !ok {
				return nil, false
			}
			expr = &ast.MemberExpr{Target: expr, Name: name, Loc: expr.Span().Cover(name.Loc)}
		case token.LBracket:
			open := p.advance()
			index, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after index"); !ok {
				p.report(diag.SynUnclosedBracket, diag.SevInfo, open.Span, "index opened here")
				return nil, false
			}
			expr = &ast.IndexExpr{Target: expr, Index: index, Loc: p.spanFrom(expr.Span())}
		case token.LParen:
			args, ok := p.parseArgs(token.LParen, token.RParen)
			if !ok {
				return nil, false
			}
			expr = &ast.CallExpr{Callee: expr, Args: args, Loc: p.spanFrom(expr.Span())}
		default:
			return expr, true
		}
	}
}

// parseArgs parses open (expr (, expr)*)? close.
func (p *Parser) parseArgs(open, closing token.Kind) ([]ast.Expr, bool) {
	openTok := p.advance()
	var args []ast.Expr
	for !p.atOr(closing, token.EOF) {
		arg, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	code, what := diag.SynUnclosedParen, "')'"
	if closing == token.RBracket {
		code, what = diag.SynUnclosedBracket, "']'"
	}
	if _, ok := p.expect(closing, code, "expected "+what+" after arguments"); !ok {
		p.report(code, diag.SevInfo, openTok.Span, "opened here")
		return nil, false
	}
	return args, true
}

func (p *Parser) parsePrimary() (ast.Expr, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit, token.FloatLit, token.StringLit, token.CharLit, token.KwTrue, token.KwFalse:
		p.advance()
		return &ast.LiteralExpr{Tok: tok}, true
	case token.Ident:
		p.advance()
		return &ast.NameExpr{Name: ast.Ident{Name: tok.Text, Loc: tok.Span}}, true
	case token.KwThis:
		p.advance()
		return &ast.ThisExpr{Loc: tok.Span}, true
	case token.LParen:
		open := p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
			p.report(diag.SynUnclosedParen, diag.SevInfo, open.Span, "parenthesis opened here")
			return nil, false
		}
		return &ast.ParenExpr{Inner: inner, Loc: p.spanFrom(open.Span)}, true
	case token.LBracket:
		elems, ok := p.parseArgs(token.LBracket, token.RBracket)
		if !ok {
			return nil, false
		}
		return &ast.ArrayLiteralExpr{Elems: elems, Loc: p.spanFrom(tok.Span)}, true
	case token.KwNew:
		return p.parseNew()
	default:
		p.err(diag.SynExpectExpression, "expected expression, got '"+tok.Text+"'")
		return nil, false
	}
}

// parseNew parses instance creation `new T<G>(args)` and array creation
// `new T[n : init][m]`.
func (p *Parser) parseNew() (ast.Expr, bool) {
	kw := p.advance()
	name, ok := p.parseQualifiedName("type name after 'new'")
	if !ok {
		return nil, false
	}
	if p.at(token.LBracket) {
		return p.parseArrayCreation(kw.Span, name)
	}
	expr := &ast.NewExpr{Type: name}
	if p.at(token.Lt) {
		p.advance()
		expr.HasGen = true
		for !p.atOr(token.Gt, token.EOF) {
			g, ok := p.parseTypeRef()
			if !ok {
				return nil, false
			}
			expr.Generics = append(expr.Generics, g)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if _, ok := p.expect(token.Gt, diag.SynUnexpectedToken, "expected '>' after generic arguments"); !ok {
			return nil, false
		}
	}
	if !p.at(token.LParen) {
		p.err(diag.SynUnexpectedToken, "expected '(' or '[' after type in 'new'")
		return nil, false
	}
	if expr.Args, ok = p.parseArgs(token.LParen, token.RParen); !ok {
		return nil, false
	}
	expr.Loc = p.spanFrom(kw.Span)
	return expr, true
}

func (p *Parser) parseArrayCreation(start source.Span, elem ast.QualifiedName) (ast.Expr, bool) {
	expr := &ast.ArrayCreationExpr{Elem: elem}
	for p.at(token.LBracket) {
		open := p.advance()
		if p.at(token.RBracket) {
			// `new T[]` carries no size; the binder rejects it
			p.advance()
			continue
		}
		size, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		clause := &ast.ArraySize{Size: size}
		if p.at(token.Colon) {
			p.advance()
			if clause.Init, ok = p.parseExpr(); !ok {
				return nil, false
			}
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after array size"); !ok {
			return nil, false
		}
		clause.Loc = p.spanFrom(open.Span)
		expr.Sizes = append(expr.Sizes, clause)
	}
	expr.Loc = p.spanFrom(start)
	return expr, true
}
