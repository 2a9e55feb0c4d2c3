package token

var keywords = map[string]Kind{
	"import":      KwImport,
	"export":      KwExport,
	"as":          KwAs,
	"native":      KwNative,
	"type":        KwType,
	"pub":         KwPub,
	"priv":        KwPriv,
	"shared":      KwShared,
	"var":         KwVar,
	"const":       KwConst,
	"fn":          KwFn,
	"constructor": KwConstructor,
	"operator":    KwOperator,
	"if":          KwIf,
	"else":        KwElse,
	"while":       KwWhile,
	"do":          KwDo,
	"for":         KwFor,
	"break":       KwBreak,
	"continue":    KwContinue,
	"return":      KwReturn,
	"new":         KwNew,
	"this":        KwThis,
	"is":          KwIs,
	"true":        KwTrue,
	"false":       KwFalse,
}

// LookupKeyword reports the keyword kind for ident. Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
