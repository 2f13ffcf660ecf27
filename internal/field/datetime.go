package field

import (
	"fmt"
	"slices"
	"time"

	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/period"
)

// DateTime decodes a timestamp using one or more Go time layouts.
type DateTime struct {
	Base
	layouts []string
}

// NewDateTime returns a timestamp field. Decoding tries the layouts in order and
// encoding uses the first one.
func NewDateTime(name string, layouts []string, opts ...Option) *DateTime {
	return &DateTime{Base: NewBase(name, opts...), layouts: slices.Clone(layouts)}
}

// Description implements Field.
func (f *DateTime) Description() string {
	return f.Describe(fmt.Sprintf(
		"DateTime field (layouts %v). Filter with a time (2024-01-01), a list, a closed interval (2024-01-01..2024-02-01) or a period.",
		f.layouts))
}

// Decode implements Field.
func (f *DateTime) Decode(raw string) (any, error) {
	for _, layout := range f.layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}

	return nil, NewDecodeError(f.Name(), raw, errors.Errorf("expected one of the layouts %v", f.layouts))
}

// Encode implements Field.
func (f *DateTime) Encode(value any) (string, error) {
	t, ok := value.(time.Time)
	if !ok || len(f.layouts) == 0 {
		return "", NewEncodeError(f.Name(), value)
	}

	return t.Format(f.layouts[0]), nil
}

// Compare implements Field.
func (f *DateTime) Compare(a, b any) int {
	return compareAs(a, b, asTime, time.Time.Compare)
}

// Normalize implements Field. An Equal reference may hold a period.Period, in
// which case the candidate must lie within that period.
func (f *DateTime) Normalize(ref Reference) (Reference, error) {
	s := f.scalar()

	return NormalizeWith(ref, func(ref Reference) (Reference, error) {
		if eq, ok := ref.(Equal); ok {
			if _, ok := eq.Value.(period.Period); ok {
				return eq, nil
			}
		}

		return s.normalizeLeaf(ref)
	})
}

// Test implements Field.
func (f *DateTime) Test(candidate any, ref Reference) bool {
	s := f.scalar()

	return TestWith(candidate, ref, func(candidate any, ref Reference) bool {
		if eq, ok := ref.(Equal); ok {
			if p, ok := eq.Value.(period.Period); ok {
				t, ok := candidate.(time.Time)
				return ok && p.Contains(t)
			}
		}

		return s.testLeaf(candidate, ref)
	})
}

// ParseReference implements Field. Ranges are closed intervals.
func (f *DateTime) ParseReference(text string) (Reference, error) {
	return parseReference(f.Name(), text, func(text string) (any, error) { return coerceTime(text, f.layouts) }, true, false)
}

func (f *DateTime) scalar() scalar {
	return scalar{
		name:    f.Name(),
		coerce:  func(value any) (any, error) { return coerceTime(value, f.layouts) },
		compare: f.Compare,
		encode:  f.Encode,
	}
}

func asTime(value any) (time.Time, bool) {
	t, ok := value.(time.Time)
	return t, ok
}

func coerceTime(value any, layouts []string) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		return ParseTime(v, layouts...)
	default:
		return time.Time{}, errors.Errorf("expected a time, got %T", value)
	}
}
