package lexer

import (
	"zephyr/internal/diag"
	"zephyr/internal/token"
)

// pairOps are the two-byte operators; they win over their one-byte prefixes.
var pairOps = map[[2]byte]token.Kind{
	{'&', '&'}: token.AndAnd,
	{'|', '|'}: token.OrOr,
	{'=', '='}: token.EqEq,
	{'!', '='}: token.BangEq,
	{'<', '='}: token.LtEq,
	{'>', '='}: token.GtEq,
	{'<', '<'}: token.Shl,
	{'>', '>'}: token.Shr,
	{'+', '='}: token.PlusAssign,
	{'-', '='}: token.MinusAssign,
	{'*', '='}: token.StarAssign,
	{'/', '='}: token.SlashAssign,
	{'%', '='}: token.PercentAssign,
}

var singleOps = [...]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash, '%': token.Percent,
	'=': token.Assign, '!': token.Bang, '<': token.Lt, '>': token.Gt,
	'&': token.Amp, '|': token.Pipe, '^': token.Caret, '~': token.Tilde,
	'?': token.Question, ':': token.Colon, ';': token.Semicolon, ',': token.Comma, '.': token.Dot,
	'(': token.LParen, ')': token.RParen, '{': token.LBrace, '}': token.RBrace,
	'[': token.LBracket, ']': token.RBracket,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	kind := token.Invalid
	if b0, b1, ok := lx.cursor.Peek2(); ok {
		if k, found := pairOps[[2]byte{b0, b1}]; found {
			lx.cursor.Bump()
			kind = k
		}
	}
	ch := lx.cursor.Bump()
	if kind == token.Invalid && int(ch) < len(singleOps) {
		kind = singleOps[ch]
	}

	sp := lx.cursor.SpanFrom(start)
	tok := token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
	if kind == token.Invalid {
		lx.report(diag.LexUnknownChar, sp, "unknown character '"+tok.Text+"'")
	}
	return tok
}
