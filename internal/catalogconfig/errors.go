package catalogconfig

import (
	"fmt"
	"strings"
)

type NotFoundError struct {
	path string
}

func (err NotFoundError) Error() string {
	return fmt.Sprintf("could not read catalog config file %s: file not found", err.path)
}

func NewNotFoundError(path string) *NotFoundError {
	return &NotFoundError{
		path: path,
	}
}

type FileReadError struct {
	underlyingErr error
	path          string
}

func (err FileReadError) Error() string {
	return fmt.Sprintf("could not read catalog config file %s: %s", err.path, err.underlyingErr)
}

func (err FileReadError) Unwrap() error {
	return err.underlyingErr
}

func NewFileReadError(path string, err error) *FileReadError {
	return &FileReadError{
		path:          path,
		underlyingErr: err,
	}
}

type DecodeError struct {
	underlyingErr error
	path          string
}

func (err DecodeError) Error() string {
	return fmt.Sprintf("could not decode catalog config file %s: %s", err.path, err.underlyingErr)
}

func (err DecodeError) Unwrap() error {
	return err.underlyingErr
}

func NewDecodeError(path string, err error) *DecodeError {
	return &DecodeError{
		path:          path,
		underlyingErr: err,
	}
}

// DuplicateDatabaseError is returned when two database blocks share a label.
type DuplicateDatabaseError struct {
	Name string
}

func (err DuplicateDatabaseError) Error() string {
	return fmt.Sprintf("database %q is declared more than once", err.Name)
}

// UnknownDatabaseError is returned when looking up an undeclared database.
type UnknownDatabaseError struct {
	Name  string
	Known []string
}

func (err UnknownDatabaseError) Error() string {
	if len(err.Known) == 0 {
		return fmt.Sprintf("unknown database %q, no database is declared", err.Name)
	}

	return fmt.Sprintf("unknown database %q, expected one of %s", err.Name, strings.Join(err.Known, ", "))
}
