package lexer

import (
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

const utf8RuneSelf = utf8.RuneSelf

const (
	classIdentStart uint8 = 1 << iota
	classDigit
)

// asciiClass classifies the ASCII bytes that start or continue identifiers
// and numbers; everything else is zero.
var asciiClass = func() (t [utf8.RuneSelf]uint8) {
	t['_'] = classIdentStart
	for c := 'a'; c <= 'z'; c++ {
		t[c] = classIdentStart
		t[c-'a'+'A'] = classIdentStart
	}
	for c := '0'; c <= '9'; c++ {
		t[c] = classDigit
	}
	return t
}()

func isIdentStartByte(b byte) bool {
	return b < utf8.RuneSelf && asciiClass[b]&classIdentStart != 0
}

func isIdentContinueByte(b byte) bool {
	return b < utf8.RuneSelf && asciiClass[b] != 0
}

func isDec(b byte) bool {
	return b < utf8.RuneSelf && asciiClass[b]&classDigit != 0
}

// Non-ASCII identifiers follow Unicode letters, digits and combining marks;
// the scanner NFC-normalizes them afterwards.
func isIdentStartRune(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// peekRune decodes the rune at the cursor; size is 0 at end of input and 1
// for an invalid byte.
func (lx *Lexer) peekRune() (r rune, size int) {
	rest := lx.file.Content[lx.cursor.Off:]
	switch {
	case len(rest) == 0:
		return utf8.RuneError, 0
	case rest[0] < utf8.RuneSelf:
		return rune(rest[0]), 1
	}
	return utf8.DecodeRune(rest)
}

func (lx *Lexer) bumpRune() {
	_, size := lx.peekRune()
	if n, err := safecast.Conv[uint32](size); err == nil {
		lx.cursor.Off += n
	}
}
