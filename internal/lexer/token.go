package lexer

// TokenType represents the type of a token.
//
// DESIGN CHOICE: An int-based enum (via iota) rather than strings because:
// 1. Faster comparisons
// 2. Type safety (the compiler catches typos)
// 3. Easy to extend without breaking existing code
type TokenType int

// Token type enumeration.
//
// ORGANIZATION: Tokens are grouped logically:
// 1. Special tokens (EOF, Invalid, Comment)
// 2. Literals
// 3. Identifiers and keywords
// 4. Operators
// 5. Delimiters
//
// The mini language deliberately has no shift, compound-assignment, or
// increment operators: the target machine has no shift opcodes and the
// backend contract keeps assignment a statement, so the lexer does not
// recognize what the rest of the compiler could never accept.
const (
	// Special tokens

	// TokenEOF marks the end of the input. A token rather than an error so
	// the parser needs no special case and "unexpected end of file" still
	// has a position.
	TokenEOF TokenType = iota

	// TokenInvalid represents a lexical error. Returning a token (with the
	// error alongside) lets the parser recover and keep finding errors.
	TokenInvalid

	// TokenComment represents a comment. Comments are tokenized rather than
	// silently skipped so a future formatter could preserve them; the parser
	// ignores them.
	TokenComment

	// Literals

	// TokenNumber represents an integer literal. The mini language has
	// machine-word integers only; the digits are kept in Token.Lexeme and
	// converted by the parser.
	TokenNumber

	// TokenString represents a string literal. The lexer recognizes strings
	// so they fail with a clear parser message instead of a stream of
	// "unexpected character" lexical errors.
	TokenString

	// TokenTrue and TokenFalse are boolean literals. They compile to the
	// words 1 and 0.
	TokenTrue
	TokenFalse

	// Identifiers and keywords

	// TokenIdentifier represents a variable or function name.
	TokenIdentifier

	TokenFunc
	TokenIf
	TokenElse
	TokenWhile
	TokenReturn
	TokenBreak
	TokenContinue

	// Operators

	TokenPlus    // +
	TokenMinus   // -
	TokenStar    // *
	TokenSlash   // /
	TokenPercent // %

	TokenEqual        // ==
	TokenNotEqual     // !=
	TokenLess         // <
	TokenLessEqual    // <=
	TokenGreater      // >
	TokenGreaterEqual // >=

	TokenAnd // && (logical AND)
	TokenOr  // || (logical OR)
	TokenNot // ! (logical NOT)

	TokenBitAnd // & (bitwise AND)
	TokenBitOr  // | (bitwise OR)
	TokenBitXor // ^ (bitwise XOR)
	TokenBitNot // ~ (bitwise NOT)

	TokenAssign // =

	// Delimiters

	TokenLeftParen  // (
	TokenRightParen // )
	TokenLeftBrace  // {
	TokenRightBrace // }
	TokenSemicolon  // ;
	TokenComma      // ,
)

// Token represents a single lexical token.
//
// DESIGN CHOICE: Token is a value type because tokens are small, never
// mutated after creation, and copying them avoids GC pressure.
type Token struct {
	// Type is the token type.
	Type TokenType

	// Lexeme is the actual text from the source. For identifiers and
	// literals this carries the payload; for keywords and operators it is
	// the expected spelling.
	Lexeme string

	// Position is where this token starts in the source.
	Position Position

	// Length is the token's length in bytes.
	Length int
}

// String renders the token as "TYPE(lexeme) at position", e.g.
// "IDENTIFIER(foo) at main.mc:4:2". Used in debug output and parser errors.
func (t Token) String() string {
	return t.Type.String() + "(" + t.Lexeme + ") at " + t.Position.String()
}

// String returns the name of a token type.
//
// Implemented by hand rather than with stringer so the names read well in
// error messages without a generate step.
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenInvalid:
		return "INVALID"
	case TokenComment:
		return "COMMENT"
	case TokenNumber:
		return "NUMBER"
	case TokenString:
		return "STRING"
	case TokenTrue:
		return "TRUE"
	case TokenFalse:
		return "FALSE"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenFunc:
		return "FUNC"
	case TokenIf:
		return "IF"
	case TokenElse:
		return "ELSE"
	case TokenWhile:
		return "WHILE"
	case TokenReturn:
		return "RETURN"
	case TokenBreak:
		return "BREAK"
	case TokenContinue:
		return "CONTINUE"
	case TokenPlus:
		return "PLUS"
	case TokenMinus:
		return "MINUS"
	case TokenStar:
		return "STAR"
	case TokenSlash:
		return "SLASH"
	case TokenPercent:
		return "PERCENT"
	case TokenEqual:
		return "EQUAL"
	case TokenNotEqual:
		return "NOTEQUAL"
	case TokenLess:
		return "LESS"
	case TokenLessEqual:
		return "LESSEQUAL"
	case TokenGreater:
		return "GREATER"
	case TokenGreaterEqual:
		return "GREATEREQUAL"
	case TokenAnd:
		return "AND"
	case TokenOr:
		return "OR"
	case TokenNot:
		return "NOT"
	case TokenBitAnd:
		return "BITAND"
	case TokenBitOr:
		return "BITOR"
	case TokenBitXor:
		return "BITXOR"
	case TokenBitNot:
		return "BITNOT"
	case TokenAssign:
		return "ASSIGN"
	case TokenLeftParen:
		return "LPAREN"
	case TokenRightParen:
		return "RPAREN"
	case TokenLeftBrace:
		return "LBRACE"
	case TokenRightBrace:
		return "RBRACE"
	case TokenSemicolon:
		return "SEMICOLON"
	case TokenComma:
		return "COMMA"
	default:
		return "UNKNOWN"
	}
}

// keywords maps keyword spellings to their token types.
// Initialized once and never modified.
var keywords = map[string]TokenType{
	"func":     TokenFunc,
	"if":       TokenIf,
	"else":     TokenElse,
	"while":    TokenWhile,
	"return":   TokenReturn,
	"break":    TokenBreak,
	"continue": TokenContinue,
	"true":     TokenTrue,
	"false":    TokenFalse,
}

// LookupKeyword checks whether an identifier is actually a keyword.
// Returns the keyword token type if it is, or TokenIdentifier if not.
func LookupKeyword(identifier string) TokenType {
	if tokenType, ok := keywords[identifier]; ok {
		return tokenType
	}
	return TokenIdentifier
}

// IsKeyword reports whether the token type is a keyword.
func (tt TokenType) IsKeyword() bool {
	return tt >= TokenFunc && tt <= TokenContinue
}

// IsOperator reports whether the token type is an operator.
func (tt TokenType) IsOperator() bool {
	return tt >= TokenPlus && tt <= TokenAssign
}

// IsLiteral reports whether the token type is a literal value.
func (tt TokenType) IsLiteral() bool {
	return tt >= TokenNumber && tt <= TokenFalse
}
