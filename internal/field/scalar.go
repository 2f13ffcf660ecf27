package field

import (
	"fmt"
)

// scalar implements the reference protocol shared by fields whose values are
// totally ordered: equality, membership, half-open ranges, closed intervals and,
// when globs is set, patterns on the encoded text.
type scalar struct {
	coerce  func(value any) (any, error)
	compare func(a, b any) int
	encode  func(value any) (string, error)
	match   func(candidate, value any) bool
	name    string
	globs   bool
}

func (s scalar) normalize(ref Reference) (Reference, error) {
	return NormalizeWith(ref, s.normalizeLeaf)
}

func (s scalar) normalizeLeaf(ref Reference) (Reference, error) {
	switch ref := ref.(type) {
	case Equal:
		value, err := s.coerceReference(ref, ref.Value)
		if err != nil {
			return nil, err
		}

		return Equal{Value: value}, nil
	case OneOf:
		values := make([]any, 0, len(ref.Values))

		for _, value := range ref.Values {
			coerced, err := s.coerceReference(ref, value)
			if err != nil {
				return nil, err
			}

			values = append(values, coerced)
		}

		return OneOf{Values: values}, nil
	case Between:
		start, stop, err := s.coerceBounds(ref, ref.Start, ref.Stop)
		if err != nil {
			return nil, err
		}

		return Between{Start: start, Stop: stop}, nil
	case Within:
		start, end, err := s.coerceBounds(ref, ref.Start, ref.End)
		if err != nil {
			return nil, err
		}

		return Within{Start: start, End: end}, nil
	case Pattern:
		if !s.globs {
			return nil, NewReferenceError(s.name, ref, "patterns are only supported by string and enum fields")
		}

		if ref.compiled != nil {
			return ref, nil
		}

		compiled, err := NewPattern(ref.Text)
		if err != nil {
			return nil, NewReferenceError(s.name, ref, "invalid pattern")
		}

		return compiled, nil
	default:
		return nil, NewReferenceError(s.name, ref, fmt.Sprintf("unsupported reference type %T", ref))
	}
}

func (s scalar) coerceReference(ref Reference, value any) (any, error) {
	coerced, err := s.coerce(value)
	if err != nil {
		return nil, NewReferenceError(s.name, ref, err.Error())
	}

	return coerced, nil
}

func (s scalar) coerceBounds(ref Reference, lower, upper any) (any, any, error) {
	var err error

	if lower != nil {
		if lower, err = s.coerceReference(ref, lower); err != nil {
			return nil, nil, err
		}
	}

	if upper != nil {
		if upper, err = s.coerceReference(ref, upper); err != nil {
			return nil, nil, err
		}
	}

	return lower, upper, nil
}

func (s scalar) test(candidate any, ref Reference) bool {
	return TestWith(candidate, ref, s.testLeaf)
}

func (s scalar) testLeaf(candidate any, ref Reference) bool {
	switch ref := ref.(type) {
	case Equal:
		return s.equal(candidate, ref.Value)
	case OneOf:
		for _, value := range ref.Values {
			if s.equal(candidate, value) {
				return true
			}
		}

		return false
	case Between:
		if ref.Start != nil && s.compare(candidate, ref.Start) < 0 {
			return false
		}

		return ref.Stop == nil || s.compare(candidate, ref.Stop) < 0
	case Within:
		if ref.Start != nil && s.compare(candidate, ref.Start) < 0 {
			return false
		}

		return ref.End == nil || s.compare(candidate, ref.End) <= 0
	case Pattern:
		if label, ok := candidate.(string); ok && ref.Match(label) {
			return true
		}

		text, err := s.encode(candidate)
		if err != nil {
			return false
		}

		return ref.Match(text)
	default:
		return false
	}
}

func (s scalar) equal(candidate, value any) bool {
	if s.match != nil {
		return s.match(candidate, value)
	}

	return s.compare(candidate, value) == 0
}
