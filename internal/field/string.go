package field

import (
	"strings"

	"github.com/fcollections/fcollections/internal/errors"
)

// String keeps the captured text as is.
type String struct {
	Base
}

// NewString returns a string field.
func NewString(name string, opts ...Option) *String {
	return &String{Base: NewBase(name, opts...)}
}

// Description implements Field.
func (f *String) Description() string {
	return f.Describe("String field. Filter with a value, a list (a,b) or a glob pattern (a*).")
}

// Decode implements Field.
func (f *String) Decode(raw string) (any, error) {
	return raw, nil
}

// Encode implements Field.
func (f *String) Encode(value any) (string, error) {
	v, ok := value.(string)
	if !ok {
		return "", NewEncodeError(f.Name(), value)
	}

	return v, nil
}

// Compare implements Field.
func (f *String) Compare(a, b any) int {
	return compareAs(a, b, asString, strings.Compare)
}

// Normalize implements Field.
func (f *String) Normalize(ref Reference) (Reference, error) {
	return f.scalar().normalize(ref)
}

// Test implements Field.
func (f *String) Test(candidate any, ref Reference) bool {
	return f.scalar().test(candidate, ref)
}

// ParseReference implements Field.
func (f *String) ParseReference(text string) (Reference, error) {
	return parseReference(f.Name(), text, func(text string) (any, error) { return text, nil }, false, true)
}

func (f *String) scalar() scalar {
	return scalar{
		name: f.Name(),
		coerce: func(value any) (any, error) {
			if v, ok := value.(string); ok {
				return v, nil
			}

			return nil, errors.Errorf("expected a string, got %T", value)
		},
		compare: f.Compare,
		encode:  f.Encode,
		globs:   true,
	}
}

func asString(value any) (string, bool) {
	v, ok := value.(string)
	return v, ok
}
