package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	KwImport      // import
	KwExport      // export
	KwAs          // as
	KwNative      // native
	KwType        // type
	KwPub         // pub
	KwPriv        // priv
	KwShared      // shared
	KwVar         // var
	KwConst       // const
	KwFn          // fn
	KwConstructor // constructor
	KwOperator    // operator
	KwIf          // if
	KwElse        // else
	KwWhile       // while
	KwDo          // do
	KwFor         // for
	KwBreak       // break
	KwContinue    // continue
	KwReturn      // return
	KwNew         // new
	KwThis        // this
	KwIs          // is
	KwTrue        // true
	KwFalse       // false

	// IntLit represents the integer literal token.
	IntLit
	// FloatLit represents the float literal token.
	FloatLit
	// StringLit represents the string literal token; Text keeps the quotes.
	StringLit
	// CharLit represents the character literal token; Text keeps the quotes.
	CharLit

	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	EqEq          // ==
	Bang          // !
	BangEq        // !=
	Lt            // <
	LtEq          // <=
	Gt            // >
	GtEq          // >=
	Shl           // <<
	Shr           // >>
	Amp           // &
	Pipe          // |
	Caret         // ^
	Tilde         // ~
	AndAnd        // &&
	OrOr          // ||
	Question      // ?
	Colon         // :
	Semicolon     // ;
	Comma         // ,
	Dot           // .
	LParen        // (
	RParen        // )
	LBrace        // {
	RBrace        // }
	LBracket      // [
	RBracket      // ]
)

var kindNames = [...]string{
	Invalid:       "invalid",
	EOF:           "end of file",
	Ident:         "identifier",
	KwImport:      "import",
	KwExport:      "export",
	KwAs:          "as",
	KwNative:      "native",
	KwType:        "type",
	KwPub:         "pub",
	KwPriv:        "priv",
	KwShared:      "shared",
	KwVar:         "var",
	KwConst:       "const",
	KwFn:          "fn",
	KwConstructor: "constructor",
	KwOperator:    "operator",
	KwIf:          "if",
	KwElse:        "else",
	KwWhile:       "while",
	KwDo:          "do",
	KwFor:         "for",
	KwBreak:       "break",
	KwContinue:    "continue",
	KwReturn:      "return",
	KwNew:         "new",
	KwThis:        "this",
	KwIs:          "is",
	KwTrue:        "true",
	KwFalse:       "false",
	IntLit:        "integer literal",
	FloatLit:      "float literal",
	StringLit:     "string literal",
	CharLit:       "char literal",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	EqEq:          "==",
	Bang:          "!",
	BangEq:        "!=",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	Shl:           "<<",
	Shr:           ">>",
	Amp:           "&",
	Pipe:          "|",
	Caret:         "^",
	Tilde:         "~",
	AndAnd:        "&&",
	OrOr:          "||",
	Question:      "?",
	Colon:         ":",
	Semicolon:     ";",
	Comma:         ",",
	Dot:           ".",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "invalid"
}
