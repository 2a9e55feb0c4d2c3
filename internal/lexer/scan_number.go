package lexer

import (
	"zephyr/internal/diag"
	"zephyr/internal/token"
)

// scanNumber scans an integer or float literal: digits ('.' digits)? (('e'|'E') sign? digits)?
// A dot not followed by a digit is left for member access, so `5.toString()` lexes as
// IntLit Dot Ident.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	lx.eatDigits()
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.eatDigits()
	}

	if ch := lx.cursor.Peek(); ch == 'e' || ch == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if ch := lx.cursor.Peek(); ch == '+' || ch == '-' {
			lx.cursor.Bump()
		}
		if isDec(lx.cursor.Peek()) {
			kind = token.FloatLit
			lx.eatDigits()
		} else {
			lx.cursor.Reset(mark)
		}
	}

	// 12abc is one malformed literal, not a number followed by a name.
	if ch := lx.cursor.Peek(); isIdentStartByte(ch) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexBadNumber, sp, "malformed number literal '"+lx.text(sp)+"'")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) eatDigits() {
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}
