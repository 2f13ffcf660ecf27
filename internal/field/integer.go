package field

import (
	"cmp"
	"fmt"
	"math"
	"strconv"

	"github.com/fcollections/fcollections/internal/errors"
)

// Integer decodes base 10 integers into int values.
type Integer struct {
	Base
	width int
}

// NewInteger returns an integer field.
func NewInteger(name string, opts ...Option) *Integer {
	return &Integer{Base: NewBase(name, opts...)}
}

// WithWidth zero pads encoded values to width digits, e.g. cycle `001`.
func (f *Integer) WithWidth(width int) *Integer {
	f.width = width
	return f
}

// Description implements Field.
func (f *Integer) Description() string {
	return f.Describe("Integer field. Filter with a value (3), a list (1,2,3) or a half-open range (1..4, stop excluded).")
}

// Decode implements Field. Out of range text is a DecodeError.
func (f *Integer) Decode(raw string) (any, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, NewDecodeError(f.Name(), raw, err)
	}

	return value, nil
}

// Encode implements Field.
func (f *Integer) Encode(value any) (string, error) {
	v, ok := asInt(value)
	if !ok {
		return "", NewEncodeError(f.Name(), value)
	}

	if f.width > 0 {
		return fmt.Sprintf("%0*d", f.width, v), nil
	}

	return strconv.Itoa(v), nil
}

// Compare implements Field.
func (f *Integer) Compare(a, b any) int {
	return compareAs(a, b, asInt, cmp.Compare[int])
}

// Normalize implements Field.
func (f *Integer) Normalize(ref Reference) (Reference, error) {
	return f.scalar().normalize(ref)
}

// Test implements Field.
func (f *Integer) Test(candidate any, ref Reference) bool {
	return f.scalar().test(candidate, ref)
}

// ParseReference implements Field.
func (f *Integer) ParseReference(text string) (Reference, error) {
	return parseReference(f.Name(), text, f.coerceText, false, false)
}

func (f *Integer) coerceText(text string) (any, error) {
	return f.coerce(text)
}

func (f *Integer) coerce(value any) (any, error) {
	if text, ok := value.(string); ok {
		return f.Decode(text)
	}

	if v, ok := asInt(value); ok {
		return v, nil
	}

	return nil, errors.Errorf("expected an integer, got %T", value)
}

func (f *Integer) scalar() scalar {
	return scalar{name: f.Name(), coerce: f.coerce, compare: f.Compare, encode: f.Encode}
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint:
		if v > math.MaxInt {
			return 0, false
		}

		return int(v), true
	case uint64:
		if v > math.MaxInt {
			return 0, false
		}

		return int(v), true
	default:
		return 0, false
	}
}

// compareAs converts both values before comparing them. A value of an unexpected
// type sorts before every valid value, and two such values compare equal.
func compareAs[T any](a, b any, conv func(any) (T, bool), compare func(T, T) int) int {
	va, aok := conv(a)
	vb, bok := conv(b)

	switch {
	case aok && bok:
		return compare(va, vb)
	case bok:
		return -1
	case aok:
		return 1
	default:
		return 0
	}
}
