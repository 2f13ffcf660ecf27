package errors

import "errors"

// As reports whether err wraps a value assignable to target, the way callers
// match the value typed errors of the catalog (DecodeError, UnknownFieldError).
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join merges the failures of independent branches, such as the copies of a
// download, into one error. Nil errors are dropped.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
