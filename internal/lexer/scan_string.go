package lexer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"zephyr/internal/diag"
	"zephyr/internal/token"
)

var errBadEscape = errors.New("unknown escape sequence")

// scanString scans a double-quoted literal. Text keeps the quotes; Unquote decodes it.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote

	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp) + `"`}
		}
		ch := lx.cursor.Bump()
		if ch == '"' {
			break
		}
		if ch == '\\' {
			lx.scanEscape()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
}

// scanChar scans a single-quoted literal holding exactly one (possibly escaped) rune.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()

	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnterminatedChar, sp, "unterminated character literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		ch := lx.cursor.Bump()
		if ch == '\'' {
			break
		}
		if ch == '\\' {
			lx.scanEscape()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if value, err := Unquote(text); err != nil || utf8.RuneCountInString(value) != 1 {
		lx.report(diag.LexBadCharLiteral, sp, "character literal must contain exactly one character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.CharLit, Span: sp, Text: text}
}

func (lx *Lexer) scanEscape() {
	escStart := lx.cursor.Mark() - 1
	if lx.cursor.EOF() {
		return
	}
	ch := lx.cursor.Bump()
	if _, ok := escapeValue(ch); !ok {
		sp := lx.cursor.SpanFrom(escStart)
		lx.report(diag.LexBadEscape, sp, fmt.Sprintf("unknown escape sequence '\\%c'", ch))
	}
}

func escapeValue(ch byte) (byte, bool) {
	switch ch {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	case '\\', '"', '\'':
		return ch, true
	default:
		return 0, false
	}
}

// Unquote decodes a string or char literal including its surrounding quotes.
func Unquote(text string) (string, error) {
	if len(text) < 2 {
		return "", fmt.Errorf("literal %q too short", text)
	}
	body := text[1 : len(text)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' {
			b.WriteByte(body[i])
			continue
		}
		i++
		if i >= len(body) {
			return "", errBadEscape
		}
		v, ok := escapeValue(body[i])
		if !ok {
			return "", fmt.Errorf("%w '\\%c'", errBadEscape, body[i])
		}
		b.WriteByte(v)
	}
	return b.String(), nil
}
