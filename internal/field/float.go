package field

import (
	"cmp"
	"fmt"
	"strconv"

	"github.com/fcollections/fcollections/internal/errors"
)

// Float decodes decimal numbers into float64 values.
type Float struct {
	Base
	format string
}

// NewFloat returns a float field.
func NewFloat(name string, opts ...Option) *Float {
	return &Float{Base: NewBase(name, opts...)}
}

// WithFormat sets the fmt verb used to encode values, e.g. `%.2f`.
func (f *Float) WithFormat(format string) *Float {
	f.format = format
	return f
}

// Description implements Field.
func (f *Float) Description() string {
	return f.Describe("Float field. Filter with a value (0.5), a list or a half-open range (0.1..0.5).")
}

// Decode implements Field.
func (f *Float) Decode(raw string) (any, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, NewDecodeError(f.Name(), raw, err)
	}

	return value, nil
}

// Encode implements Field.
func (f *Float) Encode(value any) (string, error) {
	v, ok := asFloat(value)
	if !ok {
		return "", NewEncodeError(f.Name(), value)
	}

	if f.format != "" {
		return fmt.Sprintf(f.format, v), nil
	}

	return strconv.FormatFloat(v, 'g', -1, 64), nil
}

// Compare implements Field.
func (f *Float) Compare(a, b any) int {
	return compareAs(a, b, asFloat, cmp.Compare[float64])
}

// Normalize implements Field.
func (f *Float) Normalize(ref Reference) (Reference, error) {
	return f.scalar().normalize(ref)
}

// Test implements Field.
func (f *Float) Test(candidate any, ref Reference) bool {
	return f.scalar().test(candidate, ref)
}

// ParseReference implements Field.
func (f *Float) ParseReference(text string) (Reference, error) {
	return parseReference(f.Name(), text, func(text string) (any, error) { return f.coerce(text) }, false, false)
}

func (f *Float) coerce(value any) (any, error) {
	if text, ok := value.(string); ok {
		return f.Decode(text)
	}

	if v, ok := asFloat(value); ok {
		return v, nil
	}

	return nil, errors.Errorf("expected a float, got %T", value)
}

func (f *Float) scalar() scalar {
	return scalar{name: f.Name(), coerce: f.coerce, compare: f.Compare, encode: f.Encode}
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	default:
		if i, ok := asInt(value); ok {
			return float64(i), true
		}

		return 0, false
	}
}
