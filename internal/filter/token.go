package filter

// TokenType identifies the kind of a lexed token.
type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF
	IDENT
	VALUE
	BANG
	PIPE
	EQUAL
)

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	IDENT:   "IDENT",
	VALUE:   "VALUE",
	BANG:    "BANG",
	PIPE:    "PIPE",
	EQUAL:   "EQUAL",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return "UNKNOWN"
}

// Token is a lexed token with its position in the query.
type Token struct {
	Literal  string
	Type     TokenType
	Position int
}

// NewToken creates a token.
func NewToken(tokenType TokenType, literal string, position int) Token {
	return Token{Type: tokenType, Literal: literal, Position: position}
}
