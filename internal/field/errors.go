package field

import (
	"fmt"

	"github.com/fcollections/fcollections/internal/errors"
)

// DecodeError is returned when captured text cannot be parsed into the field type.
type DecodeError struct {
	Err   error
	Field string
	Raw   string
}

// NewDecodeError returns a DecodeError with a stack trace.
func NewDecodeError(field, raw string, err error) error {
	return errors.New(DecodeError{Field: field, Raw: raw, Err: err})
}

func (err DecodeError) Error() string {
	return fmt.Sprintf("field %q: cannot decode %q: %v", err.Field, err.Raw, err.Err)
}

func (err DecodeError) Unwrap() error {
	return err.Err
}

// EncodeError is returned when a value does not have the field type.
type EncodeError struct {
	Value any
	Field string
}

// NewEncodeError returns an EncodeError with a stack trace.
func NewEncodeError(field string, value any) error {
	return errors.New(EncodeError{Field: field, Value: value})
}

func (err EncodeError) Error() string {
	return fmt.Sprintf("field %q: cannot encode value %v of type %T", err.Field, err.Value, err.Value)
}

// ReferenceError is returned when a reference cannot be used with a field.
type ReferenceError struct {
	Reference Reference
	Field     string
	Reason    string
}

// NewReferenceError returns a ReferenceError with a stack trace.
func NewReferenceError(field string, ref Reference, reason string) error {
	return errors.New(ReferenceError{Field: field, Reference: ref, Reason: reason})
}

func (err ReferenceError) Error() string {
	return fmt.Sprintf("field %q: invalid reference %q: %s", err.Field, err.Reference, err.Reason)
}

// UnknownFieldError is returned when a filter or a configuration key names a field
// that no convention declares.
type UnknownFieldError struct {
	Name  string
	Known []string
}

// NewUnknownFieldError returns an UnknownFieldError with a stack trace.
func NewUnknownFieldError(name string, known []string) error {
	return errors.New(UnknownFieldError{Name: name, Known: known})
}

func (err UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q, expected one of %v", err.Name, err.Known)
}
