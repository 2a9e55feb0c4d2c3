package parser

import "zephyr/internal/token"

// Binary precedence, loosest first. Assignment and the conditional are handled
// above the table.
const (
	precNone = iota
	precLogicalOr
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precComparison
	precShift
	precAdditive
	precMultiplicative
)

var binaryPrec = map[token.Kind]int{
	token.OrOr:    precLogicalOr,
	token.AndAnd:  precLogicalAnd,
	token.Pipe:    precBitOr,
	token.Caret:   precBitXor,
	token.Amp:     precBitAnd,
	token.EqEq:    precEquality,
	token.BangEq:  precEquality,
	token.Lt:      precComparison,
	token.LtEq:    precComparison,
	token.Gt:      precComparison,
	token.GtEq:    precComparison,
	token.Shl:     precShift,
	token.Shr:     precShift,
	token.Plus:    precAdditive,
	token.Minus:   precAdditive,
	token.Star:    precMultiplicative,
	token.Slash:   precMultiplicative,
	token.Percent: precMultiplicative,
}

// binaryPrecedence returns the precedence of k, or precNone when k is not a binary operator.
// `is` binds at comparison level.
func binaryPrecedence(k token.Kind) int {
	if k == token.KwIs {
		return precComparison
	}
	return binaryPrec[k]
}

func isUnaryOperator(k token.Kind) bool {
	switch k {
	case token.Plus, token.Minus, token.Bang, token.Tilde:
		return true
	default:
		return false
	}
}
