package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hassan/minicc/internal/lexer"
)

func TestGetPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		token    lexer.TokenType
		expected Precedence
	}{
		// Logical OR (lowest)
		{"logical or", lexer.TokenOr, PrecOr},

		// Logical AND
		{"logical and", lexer.TokenAnd, PrecAnd},

		// Equality
		{"equal", lexer.TokenEqual, PrecEquality},
		{"not equal", lexer.TokenNotEqual, PrecEquality},

		// Comparison
		{"less than", lexer.TokenLess, PrecComparison},
		{"less equal", lexer.TokenLessEqual, PrecComparison},
		{"greater than", lexer.TokenGreater, PrecComparison},
		{"greater equal", lexer.TokenGreaterEqual, PrecComparison},

		// Bitwise OR
		{"bit or", lexer.TokenBitOr, PrecBitOr},

		// Bitwise XOR
		{"bit xor", lexer.TokenBitXor, PrecBitXor},

		// Bitwise AND
		{"bit and", lexer.TokenBitAnd, PrecBitAnd},

		// Term (addition/subtraction)
		{"plus", lexer.TokenPlus, PrecTerm},
		{"minus", lexer.TokenMinus, PrecTerm},

		// Factor (multiplication/division/modulo)
		{"star", lexer.TokenStar, PrecFactor},
		{"slash", lexer.TokenSlash, PrecFactor},
		{"percent", lexer.TokenPercent, PrecFactor},

		// Call (highest)
		{"left paren", lexer.TokenLeftParen, PrecCall},

		// Non-operators
		{"assign", lexer.TokenAssign, PrecNone},
		{"identifier", lexer.TokenIdentifier, PrecNone},
		{"number", lexer.TokenNumber, PrecNone},
		{"semicolon", lexer.TokenSemicolon, PrecNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getPrecedence(tt.token))
		})
	}
}

func TestPrecedenceOrdering(t *testing.T) {
	// Test that precedence increases as expected
	assert.Less(t, PrecNone, PrecOr, "non-operators bind weakest")
	assert.Less(t, PrecOr, PrecAnd, "OR should have lower precedence than AND")
	assert.Less(t, PrecAnd, PrecEquality, "AND should have lower precedence than Equality")
	assert.Less(t, PrecEquality, PrecComparison, "Equality should have lower precedence than Comparison")
	assert.Less(t, PrecComparison, PrecBitOr, "Comparison should have lower precedence than BitOr")
	assert.Less(t, PrecBitOr, PrecBitXor, "BitOr should have lower precedence than BitXor")
	assert.Less(t, PrecBitXor, PrecBitAnd, "BitXor should have lower precedence than BitAnd")
	assert.Less(t, PrecBitAnd, PrecTerm, "BitAnd should have lower precedence than Term")
	assert.Less(t, PrecTerm, PrecFactor, "Term should have lower precedence than Factor")
	assert.Less(t, PrecFactor, PrecUnary, "Factor should have lower precedence than Unary")
	assert.Less(t, PrecUnary, PrecCall, "Unary should have lower precedence than Call")
	assert.Less(t, PrecCall, PrecPrimary, "Call should have lower precedence than Primary")
}
