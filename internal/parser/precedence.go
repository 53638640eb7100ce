package parser

import (
	"github.com/hassan/minicc/internal/lexer"
)

// Precedence represents operator precedence levels.
//
// DESIGN CHOICE: Use integer precedence levels rather than enums because:
// - Easy to compare (higher number = higher precedence)
// - Matches how Pratt parsing works
//
// PRECEDENCE RULES (from lowest to highest):
// 1. Logical OR (||)
// 2. Logical AND (&&)
// 3. Equality (==, !=)
// 4. Comparison (<, <=, >, >=)
// 5. Bitwise OR (|)
// 6. Bitwise XOR (^)
// 7. Bitwise AND (&)
// 8. Addition/Subtraction (+, -)
// 9. Multiplication/Division (*, /, %)
// 10. Unary (!, -, ~)
// 11. Function call (())
//
// These match C conventions, which are well-understood by programmers.
// Assignment is missing on purpose: it is a statement, not an operator.
type Precedence int

const (
	PrecNone       Precedence = iota
	PrecOr                    // ||
	PrecAnd                   // &&
	PrecEquality              // ==, !=
	PrecComparison            // <, <=, >, >=
	PrecBitOr                 // |
	PrecBitXor                // ^
	PrecBitAnd                // &
	PrecTerm                  // +, -
	PrecFactor                // *, /, %
	PrecUnary                 // !, -, ~
	PrecCall                  // ()
	PrecPrimary               // literals, identifiers, grouping
)

// getPrecedence returns the precedence level for a given token type.
//
// DESIGN CHOICE: Function rather than map because:
// - Faster (no map lookup, direct switch with jump table)
// - Compile-time checking (typos in token types are caught)
//
// This is used by the Pratt parser to decide when to stop parsing.
// Every binary operator in the language is left-associative, so there
// is no associativity table to go with it.
func getPrecedence(tokenType lexer.TokenType) Precedence {
	switch tokenType {
	// Logical OR
	case lexer.TokenOr:
		return PrecOr

	// Logical AND
	case lexer.TokenAnd:
		return PrecAnd

	// Equality
	case lexer.TokenEqual, lexer.TokenNotEqual:
		return PrecEquality

	// Comparison
	case lexer.TokenLess,
		lexer.TokenLessEqual,
		lexer.TokenGreater,
		lexer.TokenGreaterEqual:
		return PrecComparison

	// Bitwise OR
	case lexer.TokenBitOr:
		return PrecBitOr

	// Bitwise XOR
	case lexer.TokenBitXor:
		return PrecBitXor

	// Bitwise AND
	case lexer.TokenBitAnd:
		return PrecBitAnd

	// Addition and subtraction
	case lexer.TokenPlus, lexer.TokenMinus:
		return PrecTerm

	// Multiplication, division, modulo
	case lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent:
		return PrecFactor

	// Function calls
	case lexer.TokenLeftParen:
		return PrecCall

	default:
		return PrecNone
	}
}
