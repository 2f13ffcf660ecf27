package filter

import (
	"fmt"

	"github.com/fcollections/fcollections/internal/errors"
)

// ErrorCode categorizes parse errors for hint lookup.
type ErrorCode int

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodeUnexpectedToken
	ErrorCodeUnexpectedEOF
	ErrorCodeEmptyExpression
	ErrorCodeIllegalToken
	ErrorCodeMissingOperand
	ErrorCodeMissingValue
)

// ParseError represents an error that occurred during parsing.
type ParseError struct {
	Message      string
	Query        string    // Original filter query
	TokenLiteral string    // The problematic token
	Position     int
	ErrorCode    ErrorCode // For hint lookup
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Position, e.Message)
}

// NewParseError creates a new ParseError with full context for diagnostics.
func NewParseError(message string, position int, query, tokenLiteral string, code ErrorCode) error {
	return errors.New(ParseError{
		Message:      message,
		Position:     position,
		Query:        query,
		TokenLiteral: tokenLiteral,
		ErrorCode:    code,
	})
}

// InvalidValueError is returned when a field rejects the value of an attribute filter.
type InvalidValueError struct {
	Err        error
	Expression string
}

func (e InvalidValueError) Error() string {
	return fmt.Sprintf("invalid filter '%s': %v", e.Expression, e.Err)
}

func (e InvalidValueError) Unwrap() error {
	return e.Err
}
