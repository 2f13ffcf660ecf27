package filter

import (
	"strings"
	"unicode"
)

// Lexer tokenizes a filter query string.
type Lexer struct {
	input        string // The input string being tokenized
	position     int    // Current position in input (points to current char)
	readPosition int    // Current reading position in input (after current char)
	ch           byte   // Current char under examination
	afterEqual   bool   // True if the last token was EQUAL
}

// NewLexer creates a new Lexer for the given input string.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()

	return l
}

// NextToken reads and returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	startPosition := l.position

	if l.afterEqual {
		l.afterEqual = false

		// Values may contain '!', '=' or brackets, only '|' ends them.
		if l.ch != 0 && l.ch != '|' {
			return NewToken(VALUE, l.readValue(), startPosition)
		}
	}

	var tok Token

	switch l.ch {
	case '!':
		tok = NewToken(BANG, string(l.ch), startPosition)
		l.readChar()
	case '|':
		tok = NewToken(PIPE, string(l.ch), startPosition)
		l.readChar()
	case '=':
		tok = NewToken(EQUAL, string(l.ch), startPosition)
		l.readChar()
		l.afterEqual = true
	case 0:
		tok = NewToken(EOF, "", startPosition)
	default:
		if isIdentifierChar(l.ch) {
			return NewToken(IDENT, l.readIdentifier(), startPosition)
		}

		tok = NewToken(ILLEGAL, string(l.ch), startPosition)
		l.readChar()
	}

	return tok
}

// readChar advances the lexer's position and updates the current character.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII code for "NUL", signifies end of input
		l.position = l.readPosition
		l.readPosition++

		return
	}

	l.ch = l.input[l.readPosition]
	l.position = l.readPosition
	l.readPosition++
}

// skipWhitespace skips over whitespace characters.
func (l *Lexer) skipWhitespace() {
	for l.ch != 0 && unicode.IsSpace(rune(l.ch)) {
		l.readChar()
	}
}

// readIdentifier reads a field name.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isIdentifierChar(l.ch) {
		l.readChar()
	}

	return l.input[position:l.position]
}

// readValue reads a value up to the next '|'. Trailing whitespace is trimmed.
func (l *Lexer) readValue() string {
	position := l.position
	for l.ch != 0 && l.ch != '|' {
		l.readChar()
	}

	return strings.TrimSpace(l.input[position:l.position])
}

// isIdentifierChar returns true if the character can be part of a field name.
func isIdentifierChar(ch byte) bool {
	return ch == '_' || ch == '-' || ch == '.' ||
		('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ('0' <= ch && ch <= '9')
}
