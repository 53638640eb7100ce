package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToken_String(t *testing.T) {
	tests := []struct {
		name     string
		token    Token
		expected string
	}{
		{
			name: "identifier token",
			token: Token{
				Type:     TokenIdentifier,
				Lexeme:   "foo",
				Position: Position{Filename: "test.mc", Line: 1, Column: 1},
			},
			expected: "IDENTIFIER(foo) at test.mc:1:1",
		},
		{
			name: "number token",
			token: Token{
				Type:     TokenNumber,
				Lexeme:   "42",
				Position: Position{Filename: "test.mc", Line: 5, Column: 10},
			},
			expected: "NUMBER(42) at test.mc:5:10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.token.String())
		})
	}
}

func TestTokenType_String(t *testing.T) {
	tests := []struct {
		name     string
		tt       TokenType
		expected string
	}{
		{"EOF", TokenEOF, "EOF"},
		{"Invalid", TokenInvalid, "INVALID"},
		{"Number", TokenNumber, "NUMBER"},
		{"String", TokenString, "STRING"},
		{"Identifier", TokenIdentifier, "IDENTIFIER"},
		{"If keyword", TokenIf, "IF"},
		{"Plus operator", TokenPlus, "PLUS"},
		{"Percent operator", TokenPercent, "PERCENT"},
		{"Left paren", TokenLeftParen, "LPAREN"},
		{"Unknown type", TokenType(9999), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.tt.String())
		})
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		expected   TokenType
	}{
		{"func keyword", "func", TokenFunc},
		{"if keyword", "if", TokenIf},
		{"else keyword", "else", TokenElse},
		{"while keyword", "while", TokenWhile},
		{"return keyword", "return", TokenReturn},
		{"break keyword", "break", TokenBreak},
		{"continue keyword", "continue", TokenContinue},
		{"true keyword", "true", TokenTrue},
		{"false keyword", "false", TokenFalse},
		{"not a keyword", "foobar", TokenIdentifier},
		{"case sensitive - If", "If", TokenIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LookupKeyword(tt.identifier))
		})
	}
}

func TestTokenType_IsKeyword(t *testing.T) {
	tests := []struct {
		name     string
		tt       TokenType
		expected bool
	}{
		{"Func keyword", TokenFunc, true},
		{"While keyword", TokenWhile, true},
		{"Continue keyword", TokenContinue, true},
		{"True is a literal, not a keyword", TokenTrue, false},
		{"Identifier", TokenIdentifier, false},
		{"Number", TokenNumber, false},
		{"Plus operator", TokenPlus, false},
		{"EOF", TokenEOF, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.tt.IsKeyword())
		})
	}
}

func TestTokenType_IsOperator(t *testing.T) {
	tests := []struct {
		name     string
		tt       TokenType
		expected bool
	}{
		{"Plus", TokenPlus, true},
		{"Percent", TokenPercent, true},
		{"LessEqual", TokenLessEqual, true},
		{"BitNot", TokenBitNot, true},
		{"Assign", TokenAssign, true},
		{"Left paren is a delimiter", TokenLeftParen, false},
		{"Identifier", TokenIdentifier, false},
		{"If keyword", TokenIf, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.tt.IsOperator())
		})
	}
}

func TestTokenType_IsLiteral(t *testing.T) {
	tests := []struct {
		name     string
		tt       TokenType
		expected bool
	}{
		{"Number", TokenNumber, true},
		{"String", TokenString, true},
		{"True", TokenTrue, true},
		{"False", TokenFalse, true},
		{"Identifier", TokenIdentifier, false},
		{"Plus operator", TokenPlus, false},
		{"If keyword", TokenIf, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.tt.IsLiteral())
		})
	}
}
