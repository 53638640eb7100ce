package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Lexer performs lexical analysis, converting mini-language source into a
// stream of tokens.
//
// RESPONSIBILITIES:
// 1. Break source into tokens
// 2. Track position information for error reporting
// 3. Skip whitespace, tokenize comments
// 4. Recognize keywords, identifiers, literals, and operators
//
// The lexer does NOT parse syntax or attach meaning; those are the parser's
// and the IR generator's jobs.
//
// DESIGN CHOICE: A struct with methods rather than a functional approach
// because position state (current offset, line, line start) threads through
// every operation, and the shape matches bufio.Scanner-style Go APIs.
type Lexer struct {
	// source is the complete source being lexed. Whole-file storage keeps
	// lookahead and lexeme extraction trivial; source files are small.
	source string

	// filename is used in every reported position.
	filename string

	// start is the byte offset where the current token began.
	start int

	// current is the byte offset being examined.
	current int

	// line is the current 1-based line number.
	line int

	// lineStart is the byte offset where the current line started.
	// Columns are computed on demand as current - lineStart + 1.
	lineStart int

	// startPos is the position where the current token began. Captured
	// before scanning so multi-line tokens (block comments) report their
	// first line, not their last.
	startPos Position
}

// New creates a Lexer for the given source.
func New(source, filename string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
		line:     1,
	}
}

// NextToken returns the next token from the source.
//
// The parser calls this repeatedly until it receives TokenEOF. Lexical
// errors return a TokenInvalid token together with a positioned error, so
// the caller can both report the problem and keep scanning.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	l.start = l.current
	l.startPos = Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.start - l.lineStart + 1,
		Offset:   l.start,
	}

	if l.isAtEnd() {
		return l.makeToken(TokenEOF, ""), nil
	}

	ch, _ := l.advance()

	// Identifiers and keywords start with a letter or underscore.
	if isLetter(ch) {
		return l.scanIdentifier(), nil
	}

	// Numbers start with a digit.
	if isDigit(ch) {
		return l.scanNumber()
	}

	// Everything else is an operator, delimiter, comment, or invalid.
	// A switch keeps the whole token map in one place.
	switch ch {
	case '(':
		return l.makeToken(TokenLeftParen, "("), nil
	case ')':
		return l.makeToken(TokenRightParen, ")"), nil
	case '{':
		return l.makeToken(TokenLeftBrace, "{"), nil
	case '}':
		return l.makeToken(TokenRightBrace, "}"), nil
	case ';':
		return l.makeToken(TokenSemicolon, ";"), nil
	case ',':
		return l.makeToken(TokenComma, ","), nil
	case '~':
		return l.makeToken(TokenBitNot, "~"), nil
	case '+':
		return l.makeToken(TokenPlus, "+"), nil
	case '-':
		return l.makeToken(TokenMinus, "-"), nil
	case '*':
		return l.makeToken(TokenStar, "*"), nil
	case '%':
		return l.makeToken(TokenPercent, "%"), nil

	case '/':
		if l.match('/') {
			return l.scanLineComment(), nil
		} else if l.match('*') {
			return l.scanBlockComment()
		}
		return l.makeToken(TokenSlash, "/"), nil

	case '&':
		if l.match('&') {
			return l.makeToken(TokenAnd, "&&"), nil
		}
		return l.makeToken(TokenBitAnd, "&"), nil

	case '|':
		if l.match('|') {
			return l.makeToken(TokenOr, "||"), nil
		}
		return l.makeToken(TokenBitOr, "|"), nil

	case '^':
		return l.makeToken(TokenBitXor, "^"), nil

	case '=':
		if l.match('=') {
			return l.makeToken(TokenEqual, "=="), nil
		}
		return l.makeToken(TokenAssign, "="), nil

	case '!':
		if l.match('=') {
			return l.makeToken(TokenNotEqual, "!="), nil
		}
		return l.makeToken(TokenNot, "!"), nil

	case '<':
		if l.match('=') {
			return l.makeToken(TokenLessEqual, "<="), nil
		}
		return l.makeToken(TokenLess, "<"), nil

	case '>':
		if l.match('=') {
			return l.makeToken(TokenGreaterEqual, ">="), nil
		}
		return l.makeToken(TokenGreater, ">"), nil

	case '"':
		return l.scanString()

	default:
		return l.makeToken(TokenInvalid, string(ch)),
			l.error(fmt.Sprintf("unexpected character: %q", ch))
	}
}

// advance reads and returns the next character, advancing the position.
// Returns the rune and its byte size so multi-byte UTF-8 stays correct.
func (l *Lexer) advance() (rune, int) {
	if l.isAtEnd() {
		return 0, 0
	}
	ch, size := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += size
	return ch, size
}

// peek returns the current character without advancing, or 0 at EOF.
func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return ch
}

// peekNext returns the character after the current one without advancing.
func (l *Lexer) peekNext() rune {
	if l.current >= len(l.source) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.current:])
	if l.current+size >= len(l.source) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.current+size:])
	return ch
}

// match consumes the current character if it equals expected.
// Used for two-character operators: after '=', match('=') detects "==".
func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() {
		return false
	}
	ch, size := utf8.DecodeRuneInString(l.source[l.current:])
	if ch != expected {
		return false
	}
	l.current += size
	return true
}

// isAtEnd reports whether all source has been consumed.
func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// skipWhitespace skips spaces, tabs, carriage returns, and newlines,
// updating line tracking as it goes.
func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\r', '\t':
			l.advance()
		case '\n':
			l.advance()
			l.line++
			l.lineStart = l.current
		default:
			return
		}
	}
}

// scanIdentifier scans an identifier or keyword.
//
// RULES: starts with a letter or underscore, continues with letters,
// digits, or underscores.
func (l *Lexer) scanIdentifier() Token {
	for !l.isAtEnd() {
		ch := l.peek()
		if isLetter(ch) || isDigit(ch) {
			l.advance()
		} else {
			break
		}
	}

	text := l.source[l.start:l.current]
	return l.makeToken(LookupKeyword(text), text)
}

// scanNumber scans an integer literal.
//
// The mini language has machine-word integers only. A decimal point
// followed by a digit is caught here with a dedicated message rather than
// surfacing later as a baffling "unexpected character: '.'".
func (l *Lexer) scanNumber() (Token, error) {
	for !l.isAtEnd() && isDigit(l.peek()) {
		l.advance()
	}

	if !l.isAtEnd() && l.peek() == '.' && isDigit(l.peekNext()) {
		return l.makeToken(TokenInvalid, l.source[l.start:l.current]),
			l.error("float literals are not supported")
	}

	text := l.source[l.start:l.current]
	return l.makeToken(TokenNumber, text), nil
}

// scanString scans a string literal, escape sequences included.
// The raw text (quotes and all) is kept in the lexeme; the parser decides
// what to do with it.
func (l *Lexer) scanString() (Token, error) {
	for !l.isAtEnd() {
		ch := l.peek()

		if ch == '"' {
			l.advance()
			text := l.source[l.start:l.current]
			return l.makeToken(TokenString, text), nil
		}

		if ch == '\n' {
			return l.makeToken(TokenInvalid, ""),
				l.error("unterminated string literal")
		}

		if ch == '\\' {
			l.advance()
			if !l.isAtEnd() {
				l.advance()
			}
		} else {
			l.advance()
		}
	}

	return l.makeToken(TokenInvalid, ""),
		l.error("unterminated string literal")
}

// scanLineComment scans a line comment (// ...).
func (l *Lexer) scanLineComment() Token {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}

	text := l.source[l.start:l.current]
	return l.makeToken(TokenComment, text)
}

// scanBlockComment scans a block comment (/* ... */).
// Block comments nest, so code containing comments can itself be
// commented out.
func (l *Lexer) scanBlockComment() (Token, error) {
	depth := 1

	for !l.isAtEnd() && depth > 0 {
		ch := l.peek()

		if ch == '/' && l.peekNext() == '*' {
			l.advance()
			l.advance()
			depth++
		} else if ch == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			depth--
		} else {
			if ch == '\n' {
				l.line++
				l.lineStart = l.current + 1
			}
			l.advance()
		}
	}

	if depth > 0 {
		return l.makeToken(TokenInvalid, ""),
			l.error("unterminated block comment")
	}

	text := l.source[l.start:l.current]
	return l.makeToken(TokenComment, text), nil
}

// makeToken creates a token for the text scanned since start.
func (l *Lexer) makeToken(tokenType TokenType, lexeme string) Token {
	return Token{
		Type:     tokenType,
		Lexeme:   lexeme,
		Position: l.tokenPosition(),
		Length:   l.current - l.start,
	}
}

// tokenPosition returns the position of the token currently being scanned.
func (l *Lexer) tokenPosition() Position {
	return l.startPos
}

// error creates an error carrying the current token's position.
func (l *Lexer) error(message string) error {
	return fmt.Errorf("%s: %s", l.tokenPosition().String(), message)
}

// isLetter reports whether ch can start or continue an identifier.
// Unicode letters are allowed; there is no ambiguity with operators.
func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

// isDigit reports whether ch is an ASCII decimal digit.
// Numeric literals are ASCII only, as in most languages.
func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
