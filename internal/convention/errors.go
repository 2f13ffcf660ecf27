package convention

import (
	"fmt"
	"strings"
)

// SchemaError is returned by New when the pattern or the template disagree with
// the declared fields.
type SchemaError struct {
	Pattern string
	Reason  string
	Names   []string
}

func (err SchemaError) Error() string {
	return fmt.Sprintf("convention %q: %s: %s", err.Pattern, err.Reason, strings.Join(err.Names, ", "))
}

// MissingFieldError is returned by Generate when a value needed by the template is absent.
type MissingFieldError struct {
	Field    string
	Template string
}

func (err MissingFieldError) Error() string {
	return fmt.Sprintf("cannot generate %q: missing value for field %q", err.Template, err.Field)
}

// NoTemplateError is returned by Generate for conventions that only parse.
type NoTemplateError struct {
	Pattern string
}

func (err NoTemplateError) Error() string {
	return fmt.Sprintf("convention %q is only configured for parsing, it has no generation template", err.Pattern)
}
