package parser

import "github.com/hassan/langcore/internal/lexer"

// Precedence follows the teacher's Pratt-parsing approach (precedence
// climbing): parseExpression always starts at PrecAssignment and climbs as
// long as the next token's precedence is at least the precedence it was
// called with.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecConditional
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecBitOr
	PrecBitXor
	PrecBitAnd
	PrecShift
	PrecTerm
	PrecFactor
	PrecUnary
	PrecCast
	PrecCall
)

func getPrecedence(tt lexer.TokenType) Precedence {
	switch tt {
	case lexer.TokenAssign:
		return PrecAssignment
	case lexer.TokenQuestion:
		return PrecConditional
	case lexer.TokenOr:
		return PrecOr
	case lexer.TokenAnd:
		return PrecAnd
	case lexer.TokenEqual, lexer.TokenNotEqual:
		return PrecEquality
	case lexer.TokenLess, lexer.TokenLessEqual, lexer.TokenGreater, lexer.TokenGreaterEqual:
		return PrecComparison
	case lexer.TokenBitOr:
		return PrecBitOr
	case lexer.TokenBitXor:
		return PrecBitXor
	case lexer.TokenBitAnd:
		return PrecBitAnd
	case lexer.TokenShl, lexer.TokenShr:
		return PrecShift
	case lexer.TokenPlus, lexer.TokenMinus:
		return PrecTerm
	case lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent:
		return PrecFactor
	case lexer.TokenAs:
		return PrecCast
	case lexer.TokenDot, lexer.TokenLeftParen, lexer.TokenLeftBracket:
		return PrecCall
	default:
		return PrecNone
	}
}

func isRightAssociative(tt lexer.TokenType) bool {
	return tt == lexer.TokenAssign
}
