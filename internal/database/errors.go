package database

import (
	"fmt"

	"github.com/fcollections/fcollections/internal/errors"
)

var (
	// ErrNoReader is returned by reading operations of a database without Reader.
	ErrNoReader = errors.New("the database has no reader")
	// ErrCapabilityNotAvailable is returned when an optional capability was not
	// configured.
	ErrCapabilityNotAvailable = errors.New("capability not available")
)

// NotExistingPathError is returned when the database root does not exist.
type NotExistingPathError struct {
	Path string
}

// NewNotExistingPathError returns a NotExistingPathError with a stack trace.
func NewNotExistingPathError(path string) error {
	return errors.New(NotExistingPathError{Path: path})
}

func (err NotExistingPathError) Error() string {
	return fmt.Sprintf("the path %s doesn't exist in the file system", err.Path)
}

// InvalidProductError reports a product component referencing an unknown field.
type InvalidProductError struct {
	Err       error
	Product   string
	Component string
}

// NewInvalidProductError returns an InvalidProductError with a stack trace.
func NewInvalidProductError(product, component string, err error) error {
	return errors.New(InvalidProductError{Product: product, Component: component, Err: err})
}

func (err InvalidProductError) Error() string {
	return fmt.Sprintf("product %s: %s: %v", err.Product, err.Component, err.Err)
}

func (err InvalidProductError) Unwrap() error {
	return err.Err
}

// CapabilityError names the capability missing for an operation.
type CapabilityError struct {
	Capability string
}

func (err CapabilityError) Error() string {
	return fmt.Sprintf("%s: %v", err.Capability, ErrCapabilityNotAvailable)
}

func (err CapabilityError) Unwrap() error {
	return ErrCapabilityNotAvailable
}
