package discovery

import (
	"fmt"
	"strings"

	"github.com/fcollections/fcollections/internal/errors"
)

// LayoutMismatchError reports a path whose name matches the convention of no
// layout at its depth, which usually means a layout does not reflect the actual
// tree structure.
type LayoutMismatchError struct {
	Path    string
	Layouts []string
	Depth   int
}

// NewLayoutMismatchError returns a LayoutMismatchError with a stack trace.
func NewLayoutMismatchError(path string, depth int, layouts []string) error {
	return errors.New(LayoutMismatchError{Path: path, Depth: depth, Layouts: layouts})
}

func (err LayoutMismatchError) Error() string {
	return fmt.Sprintf("%s does not match the conventions at depth %d of layouts %s", err.Path, err.Depth, strings.Join(err.Layouts, ", "))
}

// ListingError reports a directory that could not be listed. Only the branch
// rooted at the directory is lost.
type ListingError struct {
	Err error
	Dir string
}

// NewListingError returns a ListingError with a stack trace.
func NewListingError(dir string, err error) error {
	return errors.New(ListingError{Dir: dir, Err: err})
}

func (err ListingError) Error() string {
	return fmt.Sprintf("failed to list %s: %v", err.Dir, err.Err)
}

func (err ListingError) Unwrap() error {
	return err.Err
}

// DecodeDiagnostic reports a path whose name matches a convention pattern but
// holds a value its field cannot decode.
type DecodeDiagnostic struct {
	Err  error
	Path string
}

func (err DecodeDiagnostic) Error() string {
	return fmt.Sprintf("%s is excluded: %v", err.Path, err.Err)
}

func (err DecodeDiagnostic) Unwrap() error {
	return err.Err
}
